package geometry

import (
	"math/rand/v2"
	"testing"

	"backdrop/gfx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleCubeProjectsOntoItsPosition(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 1
	s := New(cfg, 800, 600, rand.New(rand.NewPCG(1, 1)))
	require.Len(t, s.Primitives(), 1)

	s.Primitives()[0] = Shape{Kind: KindCube, Size: 40, Pos: gfx.V3(100, 100, 0)}
	s.Advance()

	e := s.Effect().(*Effect)
	p := e.ProjectCenter(s.Primitives()[0])
	assert.Equal(t, gfx.Scalar(1), p.Scale)
	assert.Equal(t, gfx.Scalar(100), p.X)
	assert.Equal(t, gfx.Scalar(100), p.Y)
}

func TestDefaults(t *testing.T) {
	s := New(DefaultConfig(), 800, 600, rand.New(rand.NewPCG(2, 2)))
	assert.Len(t, s.Primitives(), 12)
	assert.Equal(t, gfx.Scalar(600), s.Effect().(*Effect).Config().Perspective)
}

func TestWrapProperty(t *testing.T) {
	s := New(DefaultConfig(), 640, 480, rand.New(rand.NewPCG(3, 3)))
	p := s.Primitives()
	p[0].Pos = gfx.V3(740.5, 10, 0)
	p[0].Vel = gfx.V3(0.5, 0, 0)
	p[1].Pos = gfx.V3(10, -100.25, 0)
	p[1].Vel = gfx.V3(0, -0.5, 0)
	s.Advance()
	assert.Equal(t, gfx.Scalar(-100), p[0].Pos.X)
	assert.Equal(t, gfx.Scalar(580), p[1].Pos.Y)

	s.PointerMove(320, 240)
	for i := 0; i < 3000; i++ {
		s.Advance()
		for _, sh := range p {
			require.True(t, sh.Pos.X >= -100 && sh.Pos.X <= 740)
			require.True(t, sh.Pos.Y >= -100 && sh.Pos.Y <= 580)
			require.True(t, sh.Pos.Z >= -300 && sh.Pos.Z <= 300)
		}
	}
}

func TestKindsFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kinds = []string{"Octahedron", "bogus"}
	s := New(cfg, 800, 600, rand.New(rand.NewPCG(4, 4)))
	for _, sh := range s.Primitives() {
		assert.Equal(t, KindOctahedron, sh.Kind)
	}

	cfg.Kinds = nil
	s = New(cfg, 800, 600, nil)
	for _, sh := range s.Primitives() {
		assert.Equal(t, KindCube, sh.Kind)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("ICOSAHEDRON")
	require.NoError(t, err)
	assert.Equal(t, KindIcosahedron, k)
	assert.Equal(t, "icosahedron", k.String())

	_, err = ParseKind("dodecahedron")
	assert.Error(t, err)
}

func TestMeshesAreWellFormed(t *testing.T) {
	for k := KindCube; k <= KindIcosahedron; k++ {
		m := MeshOf(k)
		require.NotEmpty(t, m.Faces, k.String())
		for _, f := range m.Faces {
			require.GreaterOrEqual(t, len(f), 3)
			for _, vi := range f {
				require.True(t, vi >= 0 && vi < len(m.Vertices), "%s face index %d", k, vi)
			}
		}
	}
	assert.Len(t, MeshOf(KindIcosahedron).Faces, 20)
	assert.Len(t, MeshOf(KindIcosahedron).Vertices, 12)
	for _, v := range MeshOf(KindIcosahedron).Vertices {
		assert.InDelta(t, 1, gfx.Len(v), 1e-5)
	}
}

func TestVerticesFollowRotation(t *testing.T) {
	e := newEffect(DefaultConfig())
	sh := Shape{Kind: KindOctahedron, Size: 20, Pos: gfx.V3(50, 60, 0)}
	verts := e.Vertices(sh, nil)
	assert.Equal(t, gfx.V3(60, 60, 0), verts[0])

	again := e.Vertices(Shape{Kind: KindOctahedron, Size: 20, Pos: gfx.V3(50, 60, 0), Rot: gfx.V3(0.4, 0.5, 0.6)}, nil)
	assert.NotEqual(t, verts[0], again[0])
	assert.InDelta(t, 10, gfx.Dist(again[0], sh.Pos), 1e-4)
}

func TestDrawFacesPerShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 2
	cfg.Kinds = []string{"tetrahedron"}
	s := New(cfg, 800, 600, nil)
	rec := gfx.NewRecorder(800, 600)
	s.Render(rec)
	assert.Equal(t, 0, rec.Index(gfx.OpFill))
	assert.Equal(t, 8, rec.Count(gfx.OpFillPolygon))
	assert.Equal(t, 8, rec.Count(gfx.OpStrokePolygon))
}

func TestDepthWraps(t *testing.T) {
	s := New(DefaultConfig(), 640, 480, rand.New(rand.NewPCG(5, 5)))
	p := s.Primitives()
	p[0].Pos = gfx.V3(100, 100, 299.5)
	p[0].Vel = gfx.V3(0, 0, 1)
	p[1].Pos = gfx.V3(100, 100, -299.5)
	p[1].Vel = gfx.V3(0, 0, -1)
	s.Advance()
	assert.Equal(t, gfx.Scalar(-300), p[0].Pos.Z)
	assert.Equal(t, gfx.Scalar(1), p[0].Vel.Z)
	assert.Equal(t, gfx.Scalar(300), p[1].Pos.Z)
	assert.Equal(t, gfx.Scalar(-1), p[1].Vel.Z)
}

func TestSpawnRanges(t *testing.T) {
	s := New(DefaultConfig(), 640, 480, rand.New(rand.NewPCG(6, 6)))
	for _, sh := range s.Primitives() {
		assert.True(t, sh.Size >= 40 && sh.Size < 120, "size=%v", sh.Size)
		assert.True(t, sh.Pos.Z >= -250 && sh.Pos.Z < 250, "z=%v", sh.Pos.Z)
		assert.True(t, sh.Vel.X >= -1 && sh.Vel.X < 1, "vx=%v", sh.Vel.X)
		assert.True(t, sh.Spin.Y >= -0.025 && sh.Spin.Y < 0.025, "spin=%v", sh.Spin.Y)
		assert.True(t, sh.Color.H >= 0 && sh.Color.H < 360, "hue=%v", sh.Color.H)
	}
}

func TestFacesDarkenByIndex(t *testing.T) {
	e := newEffect(DefaultConfig())
	tet := Shape{Kind: KindTetrahedron, Color: gfx.HSLA(30, 0.7, 0.6, 1)}
	for fi := range 4 {
		assert.InDelta(t, 0.6-0.15*float64(fi), e.FaceColor(tet, fi).L, 1e-9)
	}
	cube := Shape{Kind: KindCube, Color: gfx.HSLA(30, 0.7, 0.6, 1)}
	for fi := range 6 {
		assert.InDelta(t, 0.6-0.10*float64(fi), e.FaceColor(cube, fi).L, 1e-9)
	}
	// Lightness bottoms out at black rather than going negative.
	assert.Equal(t, 0.0, e.FaceColor(Shape{Kind: KindTetrahedron, Color: gfx.HSLA(0, 1, 0.2, 1)}, 3).L)
}
