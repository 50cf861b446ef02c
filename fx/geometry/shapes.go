package geometry

import (
	"fmt"
	"strings"

	"backdrop/gfx"

	"github.com/chewxy/math32"
)

// Kind selects a polyhedron.
type Kind uint8

const (
	KindCube Kind = iota
	KindTetrahedron
	KindOctahedron
	KindIcosahedron
)

var kindNames = [...]string{
	KindCube:        "cube",
	KindTetrahedron: "tetrahedron",
	KindOctahedron:  "octahedron",
	KindIcosahedron: "icosahedron",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a polyhedron name.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(s, n) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("geometry: unknown shape %q", s)
}

// Mesh is a unit-radius polyhedron: vertices plus faces as vertex index loops.
//
// Face i is filled Shade*i darker than the base lightness.
type Mesh struct {
	Vertices []gfx.Vec3
	Faces    [][]int
	Shade    float64
}

var meshes = [...]Mesh{
	KindCube: {
		Vertices: []gfx.Vec3{
			{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
			{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
		},
		Faces: [][]int{
			{0, 1, 2, 3}, {4, 5, 6, 7}, {0, 1, 5, 4},
			{3, 2, 6, 7}, {0, 3, 7, 4}, {1, 2, 6, 5},
		},
		Shade: 0.10,
	},
	KindTetrahedron: {
		Vertices: []gfx.Vec3{
			{X: 1, Y: 1, Z: 1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: -1},
		},
		Faces: [][]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}},
		Shade: 0.15,
	},
	KindOctahedron: {
		Vertices: []gfx.Vec3{
			{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
		},
		Faces: [][]int{
			{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
			{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
		},
		Shade: 0.06,
	},
	KindIcosahedron: icosahedron(),
}

func icosahedron() Mesh {
	phi := (1 + math32.Sqrt(5)) / 2
	n := 1 / math32.Sqrt(1+phi*phi)
	a, b := n, phi*n
	return Mesh{
		Vertices: []gfx.Vec3{
			{X: -a, Y: b}, {X: a, Y: b}, {X: -a, Y: -b}, {X: a, Y: -b},
			{Y: -a, Z: b}, {Y: a, Z: b}, {Y: -a, Z: -b}, {Y: a, Z: -b},
			{X: b, Z: -a}, {X: b, Z: a}, {X: -b, Z: -a}, {X: -b, Z: a},
		},
		Faces: [][]int{
			{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
			{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
			{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
			{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
		},
		Shade: 0.025,
	}
}

// MeshOf returns the template mesh for k. Unknown kinds fall back to the cube.
func MeshOf(k Kind) *Mesh {
	if int(k) < len(meshes) {
		return &meshes[k]
	}
	return &meshes[KindCube]
}
