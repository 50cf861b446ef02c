package waves

import (
	"math/rand/v2"
	"testing"

	"backdrop/gfx"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightAtOriginIsZero(t *testing.T) {
	assert.Equal(t, gfx.Scalar(0), Height(0, 0, 0, DefaultConfig()))
}

func TestHeightComponents(t *testing.T) {
	c := DefaultConfig()
	want := func(ox, oy, tm gfx.Scalar) gfx.Scalar {
		r := math32.Sqrt(ox*ox + oy*oy)
		return 50*math32.Sin(0.01*r+tm) + 30*math32.Sin(0.01*ox+1.5*tm) + 20*math32.Sin(0.01*oy+0.8*tm)
	}
	for _, tc := range []struct{ ox, oy, t gfx.Scalar }{
		{0, 0, 1}, {100, 0, 0}, {0, -200, 0.5}, {-480, 260, 3.2},
	} {
		assert.InDelta(t, want(tc.ox, tc.oy, tc.t), Height(tc.ox, tc.oy, tc.t, c), 1e-3, "%+v", tc)
	}
	assert.Zero(t, c.Tilt)
}

func TestGridLayout(t *testing.T) {
	s := New(DefaultConfig(), 800, 600, nil)
	nodes := s.Primitives()
	require.Len(t, nodes, 50*30)

	assert.Equal(t, Node{Col: 0, Row: 0, OX: -500, OY: -300}, nodes[0])
	assert.Equal(t, Node{Col: 0, Row: 1, OX: -500, OY: -280}, nodes[1])
	assert.Equal(t, Node{Col: 1, Row: 0, OX: -480, OY: -300}, nodes[30])
}

func TestFirstAdvanceUsesClockZero(t *testing.T) {
	s := New(DefaultConfig(), 800, 600, rand.New(rand.NewPCG(1, 1)))
	s.Advance()

	var centre *Node
	for i := range s.Primitives() {
		n := &s.Primitives()[i]
		if n.OX == 0 && n.OY == 0 {
			centre = n
		}
	}
	require.NotNil(t, centre)
	assert.Equal(t, gfx.Scalar(0), centre.Z)
	assert.InDelta(t, 0.02, s.Env().Time, 1e-6)

	s.Advance()
	assert.Equal(t, Height(0, 0, 0.02, DefaultConfig()), centre.Z)
}

func TestPointerBoost(t *testing.T) {
	e := &Effect{cfg: DefaultConfig()}
	assert.Equal(t, gfx.Scalar(200), e.Boost(0))
	assert.Equal(t, gfx.Scalar(100), e.Boost(50))
	assert.Equal(t, gfx.Scalar(2), e.Boost(99))
	assert.Equal(t, gfx.Scalar(0), e.Boost(100))
	assert.Equal(t, gfx.Scalar(0), e.Boost(250))

	s := New(DefaultConfig(), 800, 600, nil)
	s.PointerMove(400, 300)
	s.Advance()
	for _, n := range s.Primitives() {
		if n.OX == 0 && n.OY == 0 {
			assert.Equal(t, gfx.Scalar(200), n.Z)
		}
	}
}

func TestRenderLayering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cols, cfg.Rows = 4, 3
	s := New(cfg, 200, 200, nil)
	s.Advance()

	rec := gfx.NewRecorder(200, 200)
	s.Render(rec)
	assert.Equal(t, 0, rec.Index(gfx.OpFill))
	assert.Equal(t, 3*3+4*2, rec.Count(gfx.OpLine))
	assert.Equal(t, 12, rec.Count(gfx.OpCircle))
	assert.Less(t, rec.LastIndex(gfx.OpLine), rec.Index(gfx.OpCircle))
}

func TestProjectionStaysFinite(t *testing.T) {
	s := New(DefaultConfig(), 800, 600, nil)
	e := s.Effect().(*Effect)
	s.PointerMove(400, 300)
	for i := 0; i < 20; i++ {
		s.Advance()
	}
	for _, n := range s.Primitives() {
		p := e.Project(s.Env(), n)
		require.Greater(t, p.Scale, gfx.Scalar(0))
		require.False(t, p.X != p.X || p.Y != p.Y)
	}
}
