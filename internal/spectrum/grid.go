package spectrum

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Grid is the N×N lattice of wavevectors over a square patch of side Length.
// Index n' in [0, N) stands for the signed frequency n = n' - N/2, so row
// and column 0 hold the most negative frequency.
type Grid struct {
	N      int
	Length float64
}

// Frequency returns the signed frequency index for lattice index i.
func (g Grid) Frequency(i int) int {
	return i - g.N/2
}

// Wavevector returns k = 2π·(n, m)/L for lattice indices (i, j).
func (g Grid) Wavevector(i, j int) mgl64.Vec2 {
	scale := 2 * math.Pi / g.Length
	return mgl64.Vec2{
		scale * float64(g.Frequency(i)),
		scale * float64(g.Frequency(j)),
	}
}

// Mirror returns the lattice index holding -n for lattice index i. The most
// negative frequency has no positive partner on the lattice and wraps onto
// itself, which is exact for the periodic transform.
func (g Grid) Mirror(i int) int {
	return (2*(g.N/2) - i + g.N) % g.N
}

// Position returns the world-space coordinate of sample i along one axis,
// L·(i - N/2)/N.
func (g Grid) Position(i int) float64 {
	return g.Length * (float64(i) - float64(g.N)/2) / float64(g.N)
}
