// Package water drives a spectral ocean from the render loop: it advances
// simulation time, regenerates the surface every frame and hands the
// buffers to the renderer.
package water

import (
	"fmt"
	"math"
	"time"

	"OceanFFT/internal/logger"
	"OceanFFT/internal/mesh"
	"OceanFFT/internal/ocean"

	"go.uber.org/zap"
)

// Uploader receives ocean buffers. It is the renderer's side of the
// hand-off: indices once per topology, vertices and normals every frame.
// The slices are only valid for the duration of the call.
type Uploader interface {
	UploadIndices(indices []uint32)
	UploadVertices(vertices, normals []float32)
}

// Simulation implements behaviour.Behaviour for one ocean patch.
type Simulation struct {
	Ocean    *ocean.Synthesizer
	Uploader Uploader

	StartTime   time.Time
	CurrentTime float64

	// WaveSpeedMultiplier scales wall-clock time into simulation time.
	WaveSpeedMultiplier float64
	// FixedStep is the simulation time added per UpdateFixed call.
	FixedStep float64
	Paused    bool

	// Now is the clock used by Update; tests replace it.
	Now func() time.Time

	started bool

	detailCfg Detail
	detail    overlay
	vertices  []float32
	normals   []float32
	lastTime  float64
}

// NewSimulation builds the synthesizer described by cfg.
func NewSimulation(cfg Config, uploader Uploader) (*Simulation, error) {
	synth, err := ocean.New(cfg.Ocean)
	if err != nil {
		return nil, fmt.Errorf("failed to create ocean: %w", err)
	}
	detail, err := newOverlay(cfg.Detail, cfg.Ocean.Wind)
	if err != nil {
		return nil, err
	}

	ws := &Simulation{
		Ocean:               synth,
		Uploader:            uploader,
		WaveSpeedMultiplier: cfg.WaveSpeedMultiplier,
		FixedStep:           cfg.FixedStep,
		Now:                 time.Now,
		detailCfg:           cfg.Detail,
		detail:              detail,
	}
	if ws.WaveSpeedMultiplier == 0 {
		ws.WaveSpeedMultiplier = 1
	}
	return ws, nil
}

// Start implements the Behaviour interface - uploads the static topology
// and the surface at t=0.
func (ws *Simulation) Start() {
	ws.StartTime = ws.Now()
	ws.CurrentTime = 0
	ws.lastTime = 0
	ws.started = true

	if ws.Uploader != nil {
		ws.Uploader.UploadIndices(ws.Ocean.Indices())
	}
	ws.step()

	logger.Log.Info("Ocean simulation started",
		zap.Stringer("mode", ws.Ocean.Mode()),
		zap.Int("resolution", ws.Ocean.Resolution()),
		zap.Int("triangles", ws.Ocean.Topology().Triangles()))
}

// Update implements the Behaviour interface - called every frame with
// wall-clock time.
func (ws *Simulation) Update() {
	if ws.Paused || !ws.started {
		return
	}
	ws.CurrentTime = ws.Now().Sub(ws.StartTime).Seconds() * ws.WaveSpeedMultiplier
	ws.step()
}

// UpdateFixed implements the Behaviour interface - advances by FixedStep.
// With FixedStep zero it does nothing, so wall-clock Update owns time.
func (ws *Simulation) UpdateFixed() {
	if ws.Paused || !ws.started || ws.FixedStep <= 0 {
		return
	}
	ws.CurrentTime += ws.FixedStep * ws.WaveSpeedMultiplier
	ws.step()
}

func (ws *Simulation) step() {
	ws.Ocean.Generate(ws.CurrentTime)
	if ws.detail != nil {
		ws.vertices = append(ws.vertices[:0], ws.Ocean.Vertices()...)
		ws.normals = append(ws.normals[:0], ws.Ocean.Normals()...)
		ws.detail.apply(ws.vertices, ws.normals, ws.CurrentTime, math.Max(ws.CurrentTime-ws.lastTime, 0))
	}
	ws.lastTime = ws.CurrentTime
	if ws.Uploader != nil {
		ws.Uploader.UploadVertices(ws.Vertices(), ws.Normals())
	}
}

// Vertices returns the last uploaded vertex buffer, detail waves included.
func (ws *Simulation) Vertices() []float32 {
	if ws.detail != nil {
		return ws.vertices
	}
	return ws.Ocean.Vertices()
}

// Normals returns the last uploaded normal buffer.
func (ws *Simulation) Normals() []float32 {
	if ws.detail != nil {
		return ws.normals
	}
	return ws.Ocean.Normals()
}

// Frame snapshots the last uploaded surface.
func (ws *Simulation) Frame() *mesh.Frame {
	f := ws.Ocean.Frame()
	if ws.detail != nil {
		f.Vertices = append([]float32(nil), ws.vertices...)
		f.Normals = append([]float32(nil), ws.normals...)
	}
	return f
}

// GetConfig returns the current configuration for saving
func (ws *Simulation) GetConfig() Config {
	return Config{
		Ocean:               ws.Ocean.Config(),
		WaveSpeedMultiplier: ws.WaveSpeedMultiplier,
		FixedStep:           ws.FixedStep,
		Detail:              ws.detailCfg,
	}
}

// ApplyConfig rebuilds the ocean from config. On error the running ocean is
// left untouched. A new resolution means a new topology, so indices are
// uploaded again.
func (ws *Simulation) ApplyConfig(config Config) error {
	synth, err := ocean.New(config.Ocean)
	if err != nil {
		logger.Log.Warn("Rejected ocean configuration", zap.Error(err))
		return err
	}
	detail, err := newOverlay(config.Detail, config.Ocean.Wind)
	if err != nil {
		logger.Log.Warn("Rejected detail configuration", zap.Error(err))
		return err
	}

	ws.Ocean = synth
	ws.detailCfg = config.Detail
	ws.detail = detail
	ws.vertices, ws.normals = nil, nil
	ws.WaveSpeedMultiplier = config.WaveSpeedMultiplier
	if ws.WaveSpeedMultiplier == 0 {
		ws.WaveSpeedMultiplier = 1
	}
	ws.FixedStep = config.FixedStep

	if ws.started {
		if ws.Uploader != nil {
			ws.Uploader.UploadIndices(ws.Ocean.Indices())
		}
		ws.step()
	}

	logger.Log.Info("Ocean configuration applied",
		zap.Stringer("mode", config.Ocean.Mode),
		zap.Int("resolution", config.Ocean.Resolution),
		zap.String("detail", string(config.Detail.Kind)))
	return nil
}
