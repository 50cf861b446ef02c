package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorderOrder(t *testing.T) {
	r := NewRecorder(100, 50)
	var target Target = r
	target.Fill(RGBA(0, 0, 0, 25))
	target.Line(0, 0, 1, 1, 1, RGB(1, 1, 1))
	target.FillCircle(3, 3, 2, RGB(2, 2, 2))
	target.FillCircle(4, 4, 2, RGB(3, 3, 3))

	assert.Equal(t, 0, r.Index(OpFill))
	assert.Equal(t, 1, r.Index(OpLine))
	assert.Equal(t, 3, r.LastIndex(OpCircle))
	assert.Equal(t, 2, r.Count(OpCircle))
	assert.Equal(t, -1, r.Index(OpText))
	assert.Equal(t, "circle", r.Ops[2].Kind.String())

	r.Reset()
	assert.Empty(t, r.Ops)
}
