// Package mesh builds the static triangle topology of a square height-field
// grid and serializes per-frame vertex data for upload or export.
package mesh

import (
	"errors"
	"fmt"
)

// ErrInvalidWidth is returned for grids narrower than two vertices.
var ErrInvalidWidth = errors.New("mesh: grid width must be at least 2")

// Topology is the index buffer of a width×width vertex grid. Vertices are
// numbered row-major, i·width + j. It never changes once built.
type Topology struct {
	Width       int
	VertexCount int
	IndexCount  int
	Indices     []uint32
}

// BuildTopology triangulates a width×width grid with two triangles per cell.
// For a cell with top-left vertex a and the vertex below it b the triangles
// are (a, a+1, b) and (a+1, b, b+1).
func BuildTopology(width int) (*Topology, error) {
	if width < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWidth, width)
	}

	cells := width - 1
	indices := make([]uint32, 0, 6*cells*cells)
	w := uint32(width)

	for i := uint32(0); i < uint32(cells); i++ {
		for j := uint32(0); j < uint32(cells); j++ {
			a := i*w + j
			b := (i+1)*w + j
			indices = append(indices,
				a, a+1, b,
				a+1, b, b+1,
			)
		}
	}

	return &Topology{
		Width:       width,
		VertexCount: width * width,
		IndexCount:  len(indices),
		Indices:     indices,
	}, nil
}

// Triangles returns the number of triangles in the topology.
func (t *Topology) Triangles() int {
	return t.IndexCount / 3
}
