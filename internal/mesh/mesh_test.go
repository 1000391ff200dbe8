package mesh

import (
	"math"
	"testing"

	"avatarforge/internal/depth"
	"avatarforge/internal/imaging"
)

func flatField(r int, value float64) *depth.Field {
	img := imaging.SolidFill(4, 4, 0, 0, 0, 0)
	f := depth.Synthesize(img, r, 1.0)
	for i := range f.Values {
		f.Values[i] = value
	}
	return f
}

func TestGridCounts(t *testing.T) {
	for _, r := range []int{2, 16, 33} {
		m := Assemble(flatField(r, 0.5))
		if got, want := m.VertexCount(), r*r; got != want {
			t.Fatalf("R=%d: %d vertices, want %d", r, got, want)
		}
		if got, want := m.FaceCount(), 2*(r-1)*(r-1); got != want {
			t.Fatalf("R=%d: %d faces, want %d", r, got, want)
		}
		if got, want := len(m.UVs), r*r*2; got != want {
			t.Fatalf("R=%d: %d uv floats, want %d", r, got, want)
		}
		if err := m.Validate(); err != nil {
			t.Fatalf("R=%d: %v", r, err)
		}
	}
}

func TestBufferInvariants(t *testing.T) {
	m := Assemble(flatField(8, 0.5))
	if len(m.Vertices) != len(m.Normals) {
		t.Fatal("vertex and normal buffers differ in length")
	}
	if len(m.Vertices)/3 != len(m.UVs)/2 {
		t.Fatal("vertex and uv counts differ")
	}
	nVerts := uint32(len(m.Vertices) / 3)
	for _, idx := range m.Faces {
		if idx >= nVerts {
			t.Fatalf("face index %d out of range", idx)
		}
	}
}

func TestVertexDepthAndPosition(t *testing.T) {
	m := Assemble(flatField(4, 0.44))

	// Every z equals the field value
	for v := 0; v < m.VertexCount(); v++ {
		if z := m.Vertices[v*3+2]; math.Abs(float64(z)-0.44) > 1e-6 {
			t.Fatalf("vertex %d z = %f, want 0.44", v, z)
		}
	}
	// Corners of the grid map to the corners of the [-1,1] square, y up
	if x, y := m.Vertices[0], m.Vertices[1]; x != -1 || y != 1 {
		t.Fatalf("first vertex at (%f,%f), want (-1,1)", x, y)
	}
	last := (m.VertexCount() - 1) * 3
	if x, y := m.Vertices[last], m.Vertices[last+1]; x != 1 || y != -1 {
		t.Fatalf("last vertex at (%f,%f), want (1,-1)", x, y)
	}
}

func TestManifoldGridValence(t *testing.T) {
	const r = 8
	m := Assemble(flatField(r, 0.5))

	counts := make([]int, m.VertexCount())
	for _, idx := range m.Faces {
		counts[idx]++
	}

	for gy := 0; gy < r; gy++ {
		for gx := 0; gx < r; gx++ {
			c := counts[gy*r+gx]
			interior := gx > 0 && gx < r-1 && gy > 0 && gy < r-1
			if interior && c != 6 {
				t.Fatalf("interior vertex (%d,%d) shared by %d triangles, want 6", gx, gy, c)
			}
			if !interior && (c < 1 || c > 6) {
				t.Fatalf("boundary vertex (%d,%d) shared by %d triangles", gx, gy, c)
			}
		}
	}
}

func TestConsistentWinding(t *testing.T) {
	m := Assemble(flatField(6, 0.5))

	for f := 0; f < m.FaceCount(); f++ {
		i0, i1, i2 := m.Faces[f*3], m.Faces[f*3+1], m.Faces[f*3+2]
		ax, ay := m.Vertices[i0*3], m.Vertices[i0*3+1]
		bx, by := m.Vertices[i1*3], m.Vertices[i1*3+1]
		cx, cy := m.Vertices[i2*3], m.Vertices[i2*3+1]

		// Signed area in the xy plane: positive for counter-clockwise
		cross := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
		if cross <= 0 {
			t.Fatalf("face %d wound clockwise (cross %f)", f, cross)
		}
	}
}

func TestNormalsAreUnitLength(t *testing.T) {
	m := Assemble(flatField(5, 0.3))
	for v := 0; v < m.VertexCount(); v++ {
		nx := float64(m.Normals[v*3])
		ny := float64(m.Normals[v*3+1])
		nz := float64(m.Normals[v*3+2])
		if l := math.Sqrt(nx*nx + ny*ny + nz*nz); math.Abs(l-1) > 1e-5 {
			t.Fatalf("normal %d has length %f", v, l)
		}
		if nz <= 0 {
			t.Fatalf("normal %d points away from the camera", v)
		}
	}
}
