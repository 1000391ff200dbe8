// Package mesh assembles a dense grid mesh from a depth field: flat
// vertex/face/normal/UV buffers ready for rigging and export.
package mesh

import (
	"fmt"

	"avatarforge/internal/depth"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh3D is a grid mesh in flat buffers: 3 floats per vertex position and
// normal, 2 per texture coordinate, 3 indices per triangle face. Built
// once from a depth field and never mutated.
type Mesh3D struct {
	Resolution int
	Vertices   []float32
	Faces      []uint32
	Normals    []float32
	UVs        []float32
}

// VertexCount returns the number of vertices.
func (m *Mesh3D) VertexCount() int { return len(m.Vertices) / 3 }

// FaceCount returns the number of triangles.
func (m *Mesh3D) FaceCount() int { return len(m.Faces) / 3 }

// Assemble converts a depth field into a grid mesh. A field at resolution
// R yields exactly R² vertices and 2(R-1)² triangles with a consistent
// counter-clockwise winding (viewed from +z).
func Assemble(field *depth.Field) *Mesh3D {
	r := field.Resolution
	m := &Mesh3D{
		Resolution: r,
		Vertices:   make([]float32, 0, r*r*3),
		Normals:    make([]float32, 0, r*r*3),
		UVs:        make([]float32, 0, r*r*2),
		Faces:      make([]uint32, 0, (r-1)*(r-1)*6),
	}

	for gy := 0; gy < r; gy++ {
		ny := norm(gy, r)
		for gx := 0; gx < r; gx++ {
			nx := norm(gx, r)
			z := field.At(gx, gy)

			// World position: image center at the origin, y up.
			m.Vertices = append(m.Vertices,
				float32((nx-0.5)*2.0),
				float32((0.5-ny)*2.0),
				float32(z),
			)

			// Normals are approximated from the vertex's x/y deviation from
			// center rather than the true surface gradient. A deliberate
			// simplification: it gives the renderer a smooth dome-like
			// shading without a second pass over the field.
			n := mgl64.Vec3{(nx - 0.5) * 0.5, (0.5 - ny) * 0.5, 1.0}.Normalize()
			m.Normals = append(m.Normals, float32(n.X()), float32(n.Y()), float32(n.Z()))

			m.UVs = append(m.UVs, float32(nx), float32(ny))
		}
	}

	// Two triangles per grid quad, split along the same diagonal so every
	// interior vertex is shared by exactly six triangles.
	for gy := 0; gy < r-1; gy++ {
		for gx := 0; gx < r-1; gx++ {
			v00 := uint32(gy*r + gx)
			v10 := v00 + 1
			v01 := v00 + uint32(r)
			v11 := v01 + 1
			m.Faces = append(m.Faces, v00, v01, v11)
			m.Faces = append(m.Faces, v00, v11, v10)
		}
	}

	return m
}

// Validate checks the structural invariants: matching buffer lengths and
// in-range face indices.
func (m *Mesh3D) Validate() error {
	if len(m.Vertices) != len(m.Normals) {
		return fmt.Errorf("mesh: %d vertex floats vs %d normal floats", len(m.Vertices), len(m.Normals))
	}
	if len(m.Vertices)/3 != len(m.UVs)/2 {
		return fmt.Errorf("mesh: %d vertices vs %d uv pairs", len(m.Vertices)/3, len(m.UVs)/2)
	}
	nVerts := uint32(len(m.Vertices) / 3)
	for i, idx := range m.Faces {
		if idx >= nVerts {
			return fmt.Errorf("mesh: face index %d at %d out of range (%d vertices)", idx, i, nVerts)
		}
	}
	return nil
}

func norm(i, r int) float64 {
	if r <= 1 {
		return 0
	}
	return float64(i) / float64(r-1)
}
