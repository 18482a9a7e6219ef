// Package waves provides analytic Gerstner and sine wave sets, the cheap
// alternatives to spectral synthesis for shading and distant water.
package waves

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/stat/distuv"
)

const gravity = 9.8

// GerstnerWave is one trochoidal wave. A point (u, v) on the rest plane
// moves to
//
//	x = u + Q·A·D.x·cos(θ)
//	y = A·sin(θ)
//	z = v + Q·A·D.y·cos(θ)
//
// with θ = w·(D·(u,v)) + φ·t, w = sqrt(2π·g/l) and φ = 2π·s/l.
type GerstnerWave struct {
	// Steepness Q, usually in [0, 1]; larger values sharpen crests.
	Steepness float32
	// Amplitude A, the maximum height.
	Amplitude float32
	// Direction D, unit length in the xz plane.
	Direction mgl32.Vec2
	// Wavelength l.
	Wavelength float32
	// Speed s.
	Speed float32
}

// Frequency returns w = sqrt(2π·g/l).
func (w GerstnerWave) Frequency() float32 {
	return float32(math.Sqrt(2 * math.Pi * gravity / float64(w.Wavelength)))
}

// Phase returns φ = 2π·s/l.
func (w GerstnerWave) Phase() float32 {
	return 2 * math.Pi * w.Speed / w.Wavelength
}

// Offset returns the displacement of rest point (u, v) at time t.
func (w GerstnerWave) Offset(u, v, t float32) mgl32.Vec3 {
	theta := float64(w.Frequency()*w.Direction.Dot(mgl32.Vec2{u, v}) + w.Phase()*t)
	sin, cos := math.Sincos(theta)
	qa := w.Steepness * w.Amplitude
	return mgl32.Vec3{
		qa * w.Direction.X() * float32(cos),
		w.Amplitude * float32(sin),
		qa * w.Direction.Y() * float32(cos),
	}
}

// GerstnerSet is a sum of Gerstner waves.
type GerstnerSet []GerstnerWave

// NewGerstnerSet draws count waves travelling roughly along wind. Each
// direction deviates from the wind by up to 60 degrees. Amplitudes fall in
// [0.05, 0.1), steepness in [0.3, 0.4), speed in [0.5, 1) and the wavelength
// is 20 to 40 times the amplitude.
func NewGerstnerSet(rng *rand.Rand, wind mgl32.Vec2, count int) GerstnerSet {
	uniform := func(lo, hi float64) float32 {
		return float32(distuv.Uniform{Min: lo, Max: hi, Src: rng}.Rand())
	}

	base := 0.0
	if wind.Len() > 0 {
		base = math.Atan2(float64(wind.Y()), float64(wind.X()))
	}

	set := make(GerstnerSet, count)
	for i := range set {
		angle := base + float64(uniform(-math.Pi/3, math.Pi/3))
		amp := uniform(0.05, 0.1)
		set[i] = GerstnerWave{
			Steepness:  uniform(0.3, 0.4),
			Amplitude:  amp,
			Direction:  mgl32.Vec2{float32(math.Cos(angle)), float32(math.Sin(angle))},
			Wavelength: amp * uniform(20, 40),
			Speed:      uniform(0.5, 1),
		}
	}
	return set
}

// Position returns where rest point (u, v) sits at time t.
func (s GerstnerSet) Position(u, v, t float32) mgl32.Vec3 {
	p := mgl32.Vec3{u, 0, v}
	for _, w := range s {
		p = p.Add(w.Offset(u, v, t))
	}
	return p
}

// Tilt returns how far the unnormalized surface normal at rest point (u, v)
// leans away from straight up. Adding it to another surface's normal
// superimposes the two slopes.
func (s GerstnerSet) Tilt(u, v, t float32) mgl32.Vec3 {
	var d mgl32.Vec3
	for _, w := range s {
		freq := w.Frequency()
		theta := float64(freq*w.Direction.Dot(mgl32.Vec2{u, v}) + w.Phase()*t)
		sin, cos := math.Sincos(theta)
		wa := freq * w.Amplitude
		d[0] -= w.Direction.X() * wa * float32(cos)
		d[1] -= w.Steepness * wa * float32(sin)
		d[2] -= w.Direction.Y() * wa * float32(cos)
	}
	return d
}

// Normal returns the analytic surface normal at rest point (u, v).
func (s GerstnerSet) Normal(u, v, t float32) mgl32.Vec3 {
	return mgl32.Vec3{0, 1, 0}.Add(s.Tilt(u, v, t)).Normalize()
}
