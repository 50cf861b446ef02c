//go:build !cgo

package hal

import "errors"

// WindowConfig controls the desktop window host.
type WindowConfig struct {
	Width, Height int
	Title         string
	Scale         int
}

func RunWindow(_ AppFunc, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
