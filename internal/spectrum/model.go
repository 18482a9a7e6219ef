package spectrum

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	drawMean   = 0.5
	drawStdDev = 0.1
)

// Model draws Fourier amplitudes from the Phillips spectrum. The random
// source is owned by the model, so two models with the same seed produce the
// same amplitudes. A Model is not safe for concurrent use.
type Model struct {
	params Params
	src    *rand.PCG
	normal distuv.Normal
}

// NewModel returns a model seeded with seed.
func NewModel(p Params, seed uint64) *Model {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Model{
		params: p,
		src:    src,
		normal: distuv.Normal{Mu: drawMean, Sigma: drawStdDev, Src: src},
	}
}

// Reseed restarts the random stream.
func (m *Model) Reseed(seed uint64) {
	m.src.Seed(seed, seed^0x9e3779b97f4a7c15)
}

// Phillips evaluates the model's spectrum at k.
func (m *Model) Phillips(k mgl64.Vec2) float64 {
	return Phillips(m.params, k)
}

// Dispersion evaluates ω(k) with the model's gravity.
func (m *Model) Dispersion(k mgl64.Vec2) float64 {
	return Dispersion(m.params.gravity(), k)
}

// InitialAmplitude draws h0(k) = (ξ1 + iξ2)·sqrt(Phillips(k))/√2.
// Every call consumes two fresh draws.
func (m *Model) InitialAmplitude(k mgl64.Vec2) complex128 {
	xi1, xi2 := m.draw(), m.draw()
	scale := math.Sqrt(m.Phillips(k)) / math.Sqrt2
	return complex(xi1*scale, xi2*scale)
}

// Sample returns h(k,t) with freshly drawn h0(k) and h0(-k). Repeated calls
// for the same k and t return different values; use a Field to keep one
// table of initial amplitudes across a whole grid.
func (m *Model) Sample(k mgl64.Vec2, t float64) complex128 {
	h0 := m.InitialAmplitude(k)
	h0Neg := m.InitialAmplitude(k.Mul(-1))
	return Evolve(h0, h0Neg, m.Dispersion(k), t)
}

func (m *Model) draw() float64 {
	v := m.normal.Rand()
	if m.params.ClampDraws {
		v = math.Min(math.Max(v, 0), 1)
	}
	return v
}
