// Package ocean synthesizes a time-varying ocean height field from a wave
// spectrum. A Synthesizer evaluates the inverse Fourier sum over an N×N grid
// either directly or with a 2D FFT and fills flat float32 buffers laid out
// for graphics upload.
package ocean

import (
	"math"
	"time"

	"OceanFFT/internal/logger"
	"OceanFFT/internal/mesh"
	"OceanFFT/internal/spectrum"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Spectrum supplies h(k,t) for every wavevector of the grid, written
// row-major into dst (N×N values). spectrum.Field is the production
// implementation; tests inject fixed samples.
type Spectrum interface {
	Amplitudes(dst []complex128, t float64)
}

// Option customizes a Synthesizer at construction.
type Option func(*Synthesizer)

// WithSpectrum replaces the Phillips spectrum with s.
func WithSpectrum(s Spectrum) Option {
	return func(o *Synthesizer) {
		o.spectrum = s
	}
}

// WithLogger sets the logger used for construction and frame timing.
func WithLogger(l *zap.Logger) Option {
	return func(o *Synthesizer) {
		o.log = l
	}
}

// Synthesizer owns the height, normal and displacement buffers of one ocean
// patch. Generate overwrites them in place, so it must not run while another
// goroutine reads the buffers of the previous frame.
type Synthesizer struct {
	cfg      Config
	grid     spectrum.Grid
	spectrum Spectrum
	log      *zap.Logger
	topology *mesh.Topology

	amps []complex128
	// waveNumber[a] is the wavevector component 2π·n/L of lattice index a,
	// identical for both axes.
	waveNumber []float64
	// position[i] is the world coordinate of grid sample i, identical for
	// both axes.
	position []float64

	direct *directState
	fast   *fftState

	heights       []float32
	normals       []float32
	displacements []float32
	vertices      []float32

	time    float64
	frames  uint64
	residue float64
}

// New validates cfg and allocates every buffer the synthesizer needs.
func New(cfg Config, opts ...Option) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := cfg.Resolution
	topology, err := mesh.BuildTopology(n)
	if err != nil {
		return nil, err
	}

	s := &Synthesizer{
		cfg:        cfg,
		grid:       spectrum.Grid{N: n, Length: cfg.Length},
		log:        logger.Log,
		topology:   topology,
		amps:       make([]complex128, n*n),
		waveNumber: make([]float64, n),
		position:   make([]float64, n),
		heights:    make([]float32, n*n),
		normals:    make([]float32, 3*n*n),
		vertices:   make([]float32, 3*n*n),
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.WithDisplacement() {
		s.displacements = make([]float32, 2*n*n)
	}

	for i := 0; i < n; i++ {
		s.waveNumber[i] = 2 * math.Pi * float64(s.grid.Frequency(i)) / cfg.Length
		s.position[i] = s.grid.Position(i)
	}

	if s.spectrum == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		model := spectrum.NewModel(spectrum.Params{
			Wind:       mgl64.Vec2{cfg.Wind[0], cfg.Wind[1]},
			Amplitude:  cfg.Amplitude,
			Gravity:    cfg.Gravity,
			ClampDraws: true,
		}, seed)
		s.spectrum = spectrum.NewField(model, s.grid, cfg.Resample)
	}

	switch cfg.Mode {
	case ModeFFT:
		st, err := newFFTState(n, cfg.WithDisplacement())
		if err != nil {
			return nil, err
		}
		s.fast = st
	case ModeDirect:
		s.direct = newDirectState(s.waveNumber, s.position)
	}

	s.log.Info("Ocean synthesizer created",
		zap.Stringer("mode", cfg.Mode),
		zap.Int("resolution", n),
		zap.Float64("length", cfg.Length),
		zap.Float64("amplitude", cfg.Amplitude),
		zap.Float64("choppiness", cfg.Choppiness),
		zap.Bool("resample", cfg.Resample),
		zap.Int("vertices", topology.VertexCount),
		zap.Int("indices", topology.IndexCount))

	return s, nil
}

// Generate synthesizes the surface at simulation time t (seconds).
func (s *Synthesizer) Generate(t float64) {
	start := time.Now()

	s.spectrum.Amplitudes(s.amps, t)

	switch s.cfg.Mode {
	case ModeFFT:
		s.generateFFT()
	case ModeDirect:
		s.generateDirect()
	}
	s.assembleVertices()

	s.time = t
	s.frames++

	if ce := s.log.Check(zap.DebugLevel, "Ocean frame generated"); ce != nil {
		ce.Write(
			zap.Stringer("mode", s.cfg.Mode),
			zap.Float64("time", t),
			zap.Uint64("frame", s.frames),
			zap.Duration("elapsed", time.Since(start)),
			zap.Float64("imaginaryResidue", s.residue))
	}
}

// assembleVertices writes displaced positions from heights and displacements.
func (s *Synthesizer) assembleVertices() {
	n := s.cfg.Resolution
	lambda := s.cfg.Choppiness
	for i := 0; i < n; i++ {
		x := s.position[i]
		for j := 0; j < n; j++ {
			p := i*n + j
			z := s.position[j]
			vx, vz := x, z
			if s.displacements != nil {
				vx += lambda * float64(s.displacements[2*p])
				vz += lambda * float64(s.displacements[2*p+1])
			}
			s.vertices[3*p] = float32(vx)
			s.vertices[3*p+1] = s.heights[p]
			s.vertices[3*p+2] = float32(vz)
		}
	}
}

// setNormal stores the slope vector (-∂H/∂x, 1, -∂H/∂z) for grid point p.
func (s *Synthesizer) setNormal(p int, gradX, gradZ float64) {
	s.normals[3*p] = float32(-gradX)
	s.normals[3*p+1] = 1
	s.normals[3*p+2] = float32(-gradZ)
}

// Config returns the configuration the synthesizer was built with.
func (s *Synthesizer) Config() Config {
	return s.cfg
}

// Resolution returns N.
func (s *Synthesizer) Resolution() int {
	return s.cfg.Resolution
}

// Mode returns the evaluation mode fixed at construction.
func (s *Synthesizer) Mode() Mode {
	return s.cfg.Mode
}

// Time returns the simulation time of the last Generate call.
func (s *Synthesizer) Time() float64 {
	return s.time
}

// Frames returns how many times Generate has run.
func (s *Synthesizer) Frames() uint64 {
	return s.frames
}

// Heights returns the N×N height field, row-major. The slice is owned by the
// synthesizer and overwritten by the next Generate call.
func (s *Synthesizer) Heights() []float32 {
	return s.heights
}

// Height returns the height at grid point (i, j).
func (s *Synthesizer) Height(i, j int) float32 {
	return s.heights[i*s.cfg.Resolution+j]
}

// Normals returns 3 floats per vertex: the unnormalized slope vector
// (-∂H/∂x, 1, -∂H/∂z).
func (s *Synthesizer) Normals() []float32 {
	return s.normals
}

// Displacements returns 2 floats per vertex of horizontal displacement
// before choppiness scaling, or nil when choppiness is zero.
func (s *Synthesizer) Displacements() []float32 {
	return s.displacements
}

// Vertices returns 3 floats per vertex: x + λ·Dx, height, z + λ·Dz.
func (s *Synthesizer) Vertices() []float32 {
	return s.vertices
}

// Indices returns the static triangle index buffer.
func (s *Synthesizer) Indices() []uint32 {
	return s.topology.Indices
}

// Topology returns the static grid topology.
func (s *Synthesizer) Topology() *mesh.Topology {
	return s.topology
}

// ImaginaryResidue returns the largest imaginary part left in the height sum
// of the last frame. For a conjugate-symmetric spectrum it stays near
// machine epsilon.
func (s *Synthesizer) ImaginaryResidue() float64 {
	return s.residue
}

// Frame copies the current buffers into a mesh.Frame.
func (s *Synthesizer) Frame() *mesh.Frame {
	f := &mesh.Frame{
		Time:     float32(s.time),
		Width:    s.cfg.Resolution,
		Vertices: append([]float32(nil), s.vertices...),
		Normals:  append([]float32(nil), s.normals...),
		Indices:  append([]uint32(nil), s.topology.Indices...),
	}
	if s.displacements != nil {
		f.Displacements = append([]float32(nil), s.displacements...)
	}
	return f
}
