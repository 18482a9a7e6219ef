// Package spectrum models the statistical ocean wave spectrum: the Phillips
// energy distribution, the deep-water dispersion relation and the Gaussian
// Fourier amplitudes derived from them.
package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Gravity is the default gravitational acceleration in m/s².
	Gravity = 9.8
	// MinWavenumber is the |k| below which the Phillips spectrum is zero.
	// It keeps the 1/|k|⁴ term away from the k = 0 singularity.
	MinWavenumber = 0.01
)

// Params describe the wind-driven sea state.
type Params struct {
	// Wind carries direction and speed (m/s) in one vector.
	Wind mgl64.Vec2
	// Amplitude is the Phillips constant A, the overall energy scale.
	Amplitude float64
	// Gravity defaults to Gravity when zero.
	Gravity float64
	// ClampDraws clamps every Gaussian draw to [0, 1].
	ClampDraws bool
}

func (p Params) gravity() float64 {
	if p.Gravity == 0 {
		return Gravity
	}
	return p.Gravity
}

// Phillips returns the spectral energy at wavevector k:
//
//	A · exp(-1/(|k|·Lw)²) / |k|⁴ · (k̂·ŵ)²,  Lw = |wind|²/g
//
// It returns 0 when |k| < MinWavenumber or when there is no wind.
func Phillips(p Params, k mgl64.Vec2) float64 {
	kLen := k.Len()
	if kLen < MinWavenumber {
		return 0
	}
	windLen := p.Wind.Len()
	if windLen == 0 {
		return 0
	}

	lw := windLen * windLen / p.gravity()
	kl := kLen * lw
	alignment := k.Dot(p.Wind) / (kLen * windLen)

	k2 := kLen * kLen
	return p.Amplitude * math.Exp(-1/(kl*kl)) / (k2 * k2) * alignment * alignment
}

// Dispersion returns the angular frequency ω = sqrt(g·|k|) of a deep-water
// gravity wave.
func Dispersion(g float64, k mgl64.Vec2) float64 {
	return math.Sqrt(g * k.Len())
}

// Evolve advances the initial amplitudes of k and -k to time t:
//
//	h(k,t) = h0(k)·e^(iωt) + conj(h0(-k))·e^(-iωt)
//
// Evolving the pair this way keeps h(-k,t) = conj(h(k,t)), so the synthesized
// height field is real.
func Evolve(h0, h0Neg complex128, omega, t float64) complex128 {
	sin, cos := math.Sincos(omega * t)
	return h0*complex(cos, sin) + cmplx.Conj(h0Neg)*complex(cos, -sin)
}
