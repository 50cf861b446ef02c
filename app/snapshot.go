package app

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// SavePNG writes img to path, creating parent directories. A scale other than 1
// resizes the image with nearest-neighbour sampling first.
func SavePNG(path string, img image.Image, scale int) error {
	if scale > 1 {
		b := img.Bounds()
		img = transform.Resize(img, b.Dx()*scale, b.Dy()*scale, transform.NearestNeighbor)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("snapshot: %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Snapshotter writes every Every-th frame to Dir as <Prefix>-<frame>.png.
type Snapshotter struct {
	Dir    string
	Prefix string
	Every  uint64
	Scale  int

	saved int
}

// OnFrame matches hal.HeadlessConfig.OnFrame.
func (s *Snapshotter) OnFrame(frame uint64, img *image.RGBA) error {
	if s.Every == 0 || frame%s.Every != 0 {
		return nil
	}
	prefix := s.Prefix
	if prefix == "" {
		prefix = "frame"
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("%s-%06d.png", prefix, frame))
	if err := SavePNG(path, clone.AsRGBA(img), s.Scale); err != nil {
		return err
	}
	s.saved++
	return nil
}

// Saved returns the number of files written.
func (s *Snapshotter) Saved() int { return s.saved }
