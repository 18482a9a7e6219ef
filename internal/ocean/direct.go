package ocean

import "math"

// directState caches e^(i·k·x) for every (grid sample, wavevector) pair of
// one axis. Both axes share the same wavenumbers and positions, so a single
// N×N table serves x and z.
type directState struct {
	phase []complex128
}

func newDirectState(waveNumber, position []float64) *directState {
	n := len(position)
	st := &directState{phase: make([]complex128, n*n)}
	for i, x := range position {
		for a, k := range waveNumber {
			sin, cos := math.Sincos(k * x)
			st.phase[i*n+a] = complex(cos, sin)
		}
	}
	return st
}

// generateDirect evaluates Σ h(k,t)·e^(i·k·x) at every grid point.
func (s *Synthesizer) generateDirect() {
	n := s.cfg.Resolution
	phase := s.direct.phase
	kn := s.waveNumber
	withDisp := s.displacements != nil

	residue := 0.0
	for i := 0; i < n; i++ {
		rowX := phase[i*n : (i+1)*n]
		for j := 0; j < n; j++ {
			rowZ := phase[j*n : (j+1)*n]

			var height complex128
			var gradX, gradZ, dispX, dispZ float64
			for a := 0; a < n; a++ {
				kx := kn[a]
				amps := s.amps[a*n : (a+1)*n]
				ex := rowX[a]
				for b := 0; b < n; b++ {
					term := amps[b] * ex * rowZ[b]
					height += term

					im := imag(term)
					kz := kn[b]
					gradX -= kx * im
					gradZ -= kz * im

					if withDisp {
						// Re(-i·term) = Im(term), weighted by k/|k|.
						kLen := math.Hypot(kx, kz)
						if kLen > 0 {
							dispX += im * kx / kLen
							dispZ += im * kz / kLen
						}
					}
				}
			}

			p := i*n + j
			s.heights[p] = float32(real(height))
			s.setNormal(p, gradX, gradZ)
			if withDisp {
				s.displacements[2*p] = float32(dispX)
				s.displacements[2*p+1] = float32(dispZ)
			}
			residue = math.Max(residue, math.Abs(imag(height)))
		}
	}
	s.residue = residue
}
