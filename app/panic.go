package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"backdrop/gfx"
	"backdrop/hal"
)

// guard turns a panic inside step into an error. The panic value and stack are
// logged and painted onto the framebuffer first.
func (s *system) guard(step func() error) func() error {
	return func() (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			stack := debug.Stack()
			s.logf("app: panic: %v", r)
			for _, line := range strings.Split(string(stack), "\n") {
				if line != "" {
					s.logf("%s", line)
				}
			}
			paintPanic(s.fb, r, stack)
			err = fmt.Errorf("app: panic: %v", r)
		}()
		return step()
	}
}

var (
	panicBG = gfx.RGB(0xFF, 0xFF, 0xFF)
	panicFG = gfx.RGB(0, 0, 0)
)

func paintPanic(fb hal.Framebuffer, value any, stack []byte) {
	if fb == nil {
		return
	}
	fb.Lock()
	defer func() {
		fb.Unlock()
		_ = fb.Present()
	}()

	c := gfx.NewCanvas(fb.Image())
	c.Clear(panicBG)

	lines := []string{"backdrop panic:", fmt.Sprintf("panic: %v", value)}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line != "" {
				lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
			}
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	w, h := c.Size()
	charW := max(gfx.TextWidth("0"), 1)
	cols := max(w/charW, 1)
	lineH := gfx.FontHeight + 2

	y := gfx.FontHeight
	for _, line := range lines {
		for len(line) > 0 {
			if y > h {
				return
			}
			chunk, rest := takeRunes(line, cols)
			c.Text(0, y, chunk, panicFG)
			y += lineH
			line = strings.TrimLeft(rest, " ")
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
