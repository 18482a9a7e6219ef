package ocean

import (
	"fmt"
	"math"

	"OceanFFT/internal/fft"
)

// fftState holds the plan and the complex work buffers of FFT mode. Each
// buffer is N×N, indexed like the spectrum lattice before the transform and
// like the spatial grid after it.
type fftState struct {
	plan   *fft.Plan
	height []complex128
	slopeX []complex128
	slopeZ []complex128
	dispX  []complex128
	dispZ  []complex128
}

func newFFTState(n int, withDisplacement bool) (*fftState, error) {
	plan, err := fft.NewPlan(n)
	if err != nil {
		return nil, err
	}
	st := &fftState{
		plan:   plan,
		height: make([]complex128, n*n),
		slopeX: make([]complex128, n*n),
		slopeZ: make([]complex128, n*n),
	}
	if withDisplacement {
		st.dispX = make([]complex128, n*n)
		st.dispZ = make([]complex128, n*n)
	}
	if err := st.check(); err != nil {
		return nil, err
	}
	return st, nil
}

// check verifies every work buffer matches the plan, so generateFFT can use
// the non-failing transform.
func (st *fftState) check() error {
	n := st.plan.Len()
	for _, b := range []struct {
		name string
		buf  []complex128
	}{
		{"height", st.height},
		{"slopeX", st.slopeX},
		{"slopeZ", st.slopeZ},
	} {
		if len(b.buf) != n*n {
			return fmt.Errorf("%w: %s buffer has %d values, plan expects %dx%d", fft.ErrInvalidInput, b.name, len(b.buf), n, n)
		}
	}
	if (st.dispX == nil) != (st.dispZ == nil) {
		return fmt.Errorf("%w: displacement buffers must be allocated together", fft.ErrInvalidInput)
	}
	if st.dispX != nil && (len(st.dispX) != n*n || len(st.dispZ) != n*n) {
		return fmt.Errorf("%w: displacement buffers have %d and %d values, plan expects %dx%d", fft.ErrInvalidInput, len(st.dispX), len(st.dispZ), n, n)
	}
	return nil
}

// checkerboard returns (-1)^(i+j).
func checkerboard(i, j int) float64 {
	if (i+j)&1 == 0 {
		return 1
	}
	return -1
}

// generateFFT realizes the same sum as generateDirect with one 2D transform
// per output field.
//
// Lattice index a stands for frequency a - N/2 and grid sample i sits at
// L·(i - N/2)/N, so e^(i·k·x) factors into e^(2πi·a·i/N)·(-1)^a·(-1)^i for
// even N. The (-1)^(a+b) factor is folded into the spectrum before the
// transform and the (-1)^(i+j) checkerboard is applied after the column pass.
func (s *Synthesizer) generateFFT() {
	n := s.cfg.Resolution
	st := s.fast
	kn := s.waveNumber
	withDisp := st.dispX != nil

	for a := 0; a < n; a++ {
		kx := kn[a]
		for b := 0; b < n; b++ {
			kz := kn[b]
			idx := a*n + b
			h := s.amps[idx] * complex(checkerboard(a, b), 0)

			st.height[idx] = h
			st.slopeX[idx] = h * complex(0, kx)
			st.slopeZ[idx] = h * complex(0, kz)

			if withDisp {
				kLen := math.Hypot(kx, kz)
				if kLen > 0 {
					st.dispX[idx] = h * complex(0, -kx/kLen)
					st.dispZ[idx] = h * complex(0, -kz/kLen)
				} else {
					st.dispX[idx] = 0
					st.dispZ[idx] = 0
				}
			}
		}
	}

	// Sizes were verified by newFFTState.
	st.plan.MustTransform2D(st.height)
	st.plan.MustTransform2D(st.slopeX)
	st.plan.MustTransform2D(st.slopeZ)
	if withDisp {
		st.plan.MustTransform2D(st.dispX)
		st.plan.MustTransform2D(st.dispZ)
	}

	residue := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p := i*n + j
			sign := checkerboard(i, j)

			s.heights[p] = float32(sign * real(st.height[p]))
			s.setNormal(p, sign*real(st.slopeX[p]), sign*real(st.slopeZ[p]))
			if withDisp {
				s.displacements[2*p] = float32(sign * real(st.dispX[p]))
				s.displacements[2*p+1] = float32(sign * real(st.dispZ[p]))
			}
			residue = math.Max(residue, math.Abs(imag(st.height[p])))
		}
	}
	s.residue = residue
}
