package spectrum

// Field evaluates a Model over a Grid. It owns the table of initial
// amplitudes h0 so that h(k) and h(-k) are built from the same draws.
//
// With Resample set the table is redrawn on every Amplitudes call, which
// makes the surface reshuffle each frame. Without it the table is drawn once
// and only the dispersion phase advances.
type Field struct {
	Grid     Grid
	Resample bool

	model *Model
	h0    []complex128
	omega []float64
}

// NewField prepares a field. The h0 table is drawn lazily on first use.
func NewField(m *Model, g Grid, resample bool) *Field {
	f := &Field{
		Grid:     g,
		Resample: resample,
		model:    m,
		omega:    make([]float64, g.N*g.N),
	}
	for i := 0; i < g.N; i++ {
		for j := 0; j < g.N; j++ {
			f.omega[i*g.N+j] = m.Dispersion(g.Wavevector(i, j))
		}
	}
	return f
}

// Redraw replaces the initial amplitude table with fresh draws.
func (f *Field) Redraw() {
	n := f.Grid.N
	if f.h0 == nil {
		f.h0 = make([]complex128, n*n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			f.h0[i*n+j] = f.model.InitialAmplitude(f.Grid.Wavevector(i, j))
		}
	}
}

// Initial returns the current h0 table, drawing it if needed. The slice is
// owned by the field.
func (f *Field) Initial() []complex128 {
	if f.h0 == nil {
		f.Redraw()
	}
	return f.h0
}

// Amplitudes writes h(k,t) for every lattice point into dst in row-major
// order. dst must hold N×N values.
func (f *Field) Amplitudes(dst []complex128, t float64) {
	if f.h0 == nil || f.Resample {
		f.Redraw()
	}

	n := f.Grid.N
	for i := 0; i < n; i++ {
		mi := f.Grid.Mirror(i)
		for j := 0; j < n; j++ {
			idx := i*n + j
			neg := mi*n + f.Grid.Mirror(j)
			dst[idx] = Evolve(f.h0[idx], f.h0[neg], f.omega[idx], t)
		}
	}
}
