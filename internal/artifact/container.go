// Package artifact packages a generated mesh and rig into a single
// exchangeable container and moves it through a pluggable store.
package artifact

import (
	"fmt"

	"avatarforge/internal/mesh"
	"avatarforge/internal/rig"

	"github.com/vmihailenco/msgpack/v5"
)

// BoneRecord is the container form of a skeleton joint.
type BoneRecord struct {
	Name   string `msgpack:"name"`
	Parent int    `msgpack:"parent"`
}

// Container is the exchange artifact: mesh buffers, bone hierarchy, and
// morph-target names for one avatar. Encoding is msgpack, deterministic
// for identical inputs.
type Container struct {
	ID            string `msgpack:"id"`
	CharacterType string `msgpack:"character_type"`
	Tier          string `msgpack:"tier"`
	Resolution    int    `msgpack:"resolution"`

	Vertices []float32 `msgpack:"vertices"`
	Faces    []uint32  `msgpack:"faces"`
	Normals  []float32 `msgpack:"normals"`
	UVs      []float32 `msgpack:"uvs"`

	Bones        []BoneRecord `msgpack:"bones"`
	MorphTargets []string     `msgpack:"morph_targets"`
}

// Build assembles a container from the pipeline outputs.
func Build(id, characterType string, m *mesh.Mesh3D, alloc rig.RigAllocation) Container {
	bones := make([]BoneRecord, len(alloc.Bones))
	for i, b := range alloc.Bones {
		bones[i] = BoneRecord{Name: b.Name, Parent: b.Parent}
	}
	return Container{
		ID:            id,
		CharacterType: characterType,
		Tier:          alloc.Tier,
		Resolution:    m.Resolution,
		Vertices:      m.Vertices,
		Faces:         m.Faces,
		Normals:       m.Normals,
		UVs:           m.UVs,
		Bones:         bones,
		MorphTargets:  alloc.MorphTargets,
	}
}

// Encode serializes the container.
func Encode(c Container) ([]byte, error) {
	data, err := msgpack.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("artifact: encode %s: %w", c.ID, err)
	}
	return data, nil
}

// Decode deserializes a container.
func Decode(data []byte) (Container, error) {
	var c Container
	if err := msgpack.Unmarshal(data, &c); err != nil {
		return Container{}, fmt.Errorf("artifact: decode: %w", err)
	}
	return c, nil
}

// Rough per-vertex cost of the encoded container: position + normal
// (6 float32), uv (2 float32), and ~6 face indices (4 bytes each).
const bytesPerVertex = 56

// ClampResolution halves the mesh resolution until the estimated artifact
// size fits the tier's output budget. An over-tight budget clamps rather
// than errors; the floor keeps the mesh renderable.
func ClampResolution(base, maxOutputSizeMB int) int {
	const floor = 16
	budget := maxOutputSizeMB << 20
	r := base
	for r > floor && r*r*bytesPerVertex > budget {
		r /= 2
	}
	if r < floor {
		r = floor
	}
	return r
}
