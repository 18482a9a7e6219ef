package waves

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/stat/distuv"
)

// fadeEpsilon is the amplitude below which a fading wave is replaced.
const fadeEpsilon = 1e-4

// SineWave is W(x, z, t) = amp·sin(D·(x,z)·ω + t·φ) with ω = 2/wavelength
// and φ = 2·speed/wavelength. Its amplitude breathes between 0 and MaxAmp.
type SineWave struct {
	MaxAmp     float32
	Amp        float32
	Direction  mgl32.Vec2
	Wavelength float32
	Speed      float32
	Rising     bool
	ChangeRate float32
}

// Height evaluates the wave at (x, z) and time t.
func (w SineWave) Height(x, z, t float32) float32 {
	omega := 2 / w.Wavelength
	phi := 2 * w.Speed / w.Wavelength
	return w.Amp * float32(math.Sin(float64(w.Direction.Dot(mgl32.Vec2{x, z})*omega+t*phi)))
}

// Gradient returns the partial derivatives of Height along x and z.
func (w SineWave) Gradient(x, z, t float32) (dx, dz float32) {
	omega := 2 / w.Wavelength
	phi := 2 * w.Speed / w.Wavelength
	c := w.Amp * omega * float32(math.Cos(float64(w.Direction.Dot(mgl32.Vec2{x, z})*omega+t*phi)))
	return c * w.Direction.X(), c * w.Direction.Y()
}

// SineSet is a group of breathing sine waves sharing one random source.
type SineSet struct {
	Waves []SineWave
	rng   *rand.Rand
}

// NewSineSet draws count waves at full amplitude.
func NewSineSet(rng *rand.Rand, count int) *SineSet {
	s := &SineSet{Waves: make([]SineWave, count), rng: rng}
	for i := range s.Waves {
		s.Waves[i] = s.randomWave()
		s.Waves[i].Amp = s.Waves[i].MaxAmp
	}
	return s
}

// Update grows rising waves until they reach MaxAmp, then lets them decay.
// A wave that has faded out is replaced by a fresh one starting from zero.
func (s *SineSet) Update(dt float32) {
	for i := range s.Waves {
		w := &s.Waves[i]
		switch {
		case w.Amp < fadeEpsilon && !w.Rising:
			*w = s.randomWave()
		case !w.Rising:
			w.Amp -= w.ChangeRate * dt
		default:
			w.Amp += w.ChangeRate * dt
			if w.Amp > w.MaxAmp {
				w.Rising = false
			}
		}
	}
}

// Height sums every wave at (x, z) and time t.
func (s *SineSet) Height(x, z, t float32) float32 {
	var h float32
	for _, w := range s.Waves {
		h += w.Height(x, z, t)
	}
	return h
}

// Gradient sums the slopes of every wave at (x, z) and time t.
func (s *SineSet) Gradient(x, z, t float32) (dx, dz float32) {
	for _, w := range s.Waves {
		gx, gz := w.Gradient(x, z, t)
		dx += gx
		dz += gz
	}
	return dx, dz
}

func (s *SineSet) randomWave() SineWave {
	uniform := func(lo, hi float64) float32 {
		return float32(distuv.Uniform{Min: lo, Max: hi, Src: s.rng}.Rand())
	}
	dx := uniform(-1, 1)
	return SineWave{
		MaxAmp:     uniform(0.025, 0.05),
		Direction:  mgl32.Vec2{dx, float32(math.Sqrt(float64(1 - dx*dx)))},
		Wavelength: uniform(0.25, 0.75),
		Speed:      uniform(0.1, 0.4),
		ChangeRate: uniform(0.005, 0.035),
		Rising:     true,
	}
}
