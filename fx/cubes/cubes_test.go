package cubes

import (
	"image"
	"math/rand/v2"
	"testing"

	"backdrop/gfx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := New(DefaultConfig(), 800, 600, rand.New(rand.NewPCG(1, 1)))
	require.Len(t, s.Primitives(), 15)
	assert.Equal(t, gfx.Scalar(800), s.Effect().(*Effect).Config().Perspective)
	for _, c := range s.Primitives() {
		assert.True(t, c.Size >= 20 && c.Size < 80)
		assert.True(t, c.Color.H >= 200 && c.Color.H < 260)
	}
}

func TestWrapAcrossEdges(t *testing.T) {
	s := New(DefaultConfig(), 800, 600, rand.New(rand.NewPCG(1, 1)))
	p := s.Primitives()
	p[0].Pos = gfx.V3(899.5, 300, 0)
	p[0].Vel = gfx.V3(1, 0, 0)
	p[1].Pos = gfx.V3(-99.5, 300, 0)
	p[1].Vel = gfx.V3(-1, 0, 0)
	p[2].Pos = gfx.V3(400, 699.5, 0)
	p[2].Vel = gfx.V3(0, 1, 0)

	s.Advance()
	assert.Equal(t, gfx.Scalar(-100), p[0].Pos.X)
	assert.Equal(t, gfx.Scalar(900), p[1].Pos.X)
	assert.Equal(t, gfx.Scalar(-100), p[2].Pos.Y)

	for i := 0; i < 2000; i++ {
		s.Advance()
		for _, c := range p {
			require.True(t, c.Pos.X >= -100 && c.Pos.X <= 900, "x=%v", c.Pos.X)
			require.True(t, c.Pos.Y >= -100 && c.Pos.Y <= 700, "y=%v", c.Pos.Y)
			require.True(t, c.Pos.Z >= -500 && c.Pos.Z <= 1000, "z=%v", c.Pos.Z)
		}
	}
}

func TestDepthWraps(t *testing.T) {
	s := New(DefaultConfig(), 800, 600, nil)
	p := s.Primitives()
	p[0].Pos = gfx.V3(400, 300, 999.75)
	p[0].Vel = gfx.V3(0, 0, 0.5)
	p[1].Pos = gfx.V3(400, 300, -499.75)
	p[1].Vel = gfx.V3(0, 0, -0.5)
	s.Advance()
	assert.Equal(t, gfx.Scalar(-500), p[0].Pos.Z)
	assert.Equal(t, gfx.Scalar(0.5), p[0].Vel.Z)
	assert.Equal(t, gfx.Scalar(1000), p[1].Pos.Z)
	assert.Equal(t, gfx.Scalar(-0.5), p[1].Vel.Z)
}

func TestSpawnRanges(t *testing.T) {
	s := New(DefaultConfig(), 800, 600, rand.New(rand.NewPCG(3, 3)))
	for _, c := range s.Primitives() {
		assert.True(t, c.Pos.Z >= 0 && c.Pos.Z < 1000, "z=%v", c.Pos.Z)
		assert.True(t, c.Vel.X >= -0.25 && c.Vel.X < 0.25, "vx=%v", c.Vel.X)
		assert.True(t, c.Vel.Z >= -0.25 && c.Vel.Z < 0.25, "vz=%v", c.Vel.Z)
		assert.True(t, c.Spin.X >= -0.01 && c.Spin.X < 0.01, "spin=%v", c.Spin.X)
	}
}

func TestPointerAttractionOnlyWhenActive(t *testing.T) {
	s := New(DefaultConfig(), 800, 600, nil)
	p := s.Primitives()
	p[0].Pos = gfx.V3(100, 100, 0)
	p[0].Vel = gfx.Vec3{}
	s.Advance()
	assert.Equal(t, gfx.V3(100, 100, 0), p[0].Pos)

	s.PointerMove(500, 100)
	s.Advance()
	assert.InDelta(t, 100+400*0.0001, p[0].Pos.X, 1e-4)
	assert.Equal(t, gfx.Scalar(100), p[0].Pos.Y)
}

func TestResizeKeepsCubes(t *testing.T) {
	s := New(DefaultConfig(), 800, 600, nil)
	before := append([]Cube(nil), s.Primitives()...)
	s.Resize(1024, 768)
	assert.Equal(t, before, s.Primitives())
}

func TestRenderClearsThenDrawsFaces(t *testing.T) {
	s := New(DefaultConfig(), 800, 600, nil)
	rec := gfx.NewRecorder(800, 600)
	s.Render(rec)
	assert.Equal(t, 0, rec.Index(gfx.OpClear))
	assert.Equal(t, 15*6, rec.Count(gfx.OpFillPolygon))
	assert.Equal(t, 15*6, rec.Count(gfx.OpStrokePolygon))
}

func TestRenderToCanvas(t *testing.T) {
	s := New(DefaultConfig(), 320, 200, rand.New(rand.NewPCG(9, 9)))
	c := gfx.NewCanvas(image.NewRGBA(image.Rect(0, 0, 320, 200)))
	for i := 0; i < 10; i++ {
		s.Advance()
		s.Render(c)
	}
	bg := DefaultConfig().Background
	differs := false
	img := c.Image()
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if img.Pix[i] != bg.R || img.Pix[i+1] != bg.G || img.Pix[i+2] != bg.B {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}

func TestProjectCentre(t *testing.T) {
	s := New(DefaultConfig(), 800, 600, nil)
	e := s.Effect().(*Effect)
	p := e.Project(s.Env(), gfx.V3(400, 300, 500))
	assert.Equal(t, gfx.Scalar(400), p.X)
	assert.Equal(t, gfx.Scalar(300), p.Y)
	assert.InDelta(t, 800.0/1300.0, p.Scale, 1e-6)
}
