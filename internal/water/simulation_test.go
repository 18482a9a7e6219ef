package water

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"OceanFFT/internal/behaviour"
	"OceanFFT/internal/ocean"
)

var _ behaviour.Behaviour = (*Simulation)(nil)

type recordingUploader struct {
	indexUploads  int
	vertexUploads int
	lastIndices   int
	lastVertices  int
	lastNormals   int
}

func (u *recordingUploader) UploadIndices(indices []uint32) {
	u.indexUploads++
	u.lastIndices = len(indices)
}

func (u *recordingUploader) UploadVertices(vertices, normals []float32) {
	u.vertexUploads++
	u.lastVertices = len(vertices)
	u.lastNormals = len(normals)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Ocean.Resolution = 8
	cfg.Ocean.Seed = 42
	return cfg
}

func newTestSimulation(t *testing.T) (*Simulation, *recordingUploader, *fakeClock) {
	t.Helper()
	up := &recordingUploader{}
	sim, err := NewSimulation(testConfig(), up)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	sim.Now = clock.Now
	return sim, up, clock
}

func TestSimulationStartUploads(t *testing.T) {
	sim, up, _ := newTestSimulation(t)
	sim.Start()

	if up.indexUploads != 1 || up.lastIndices != 6*7*7 {
		t.Errorf("expected one index upload of %d, got %d uploads of %d", 6*7*7, up.indexUploads, up.lastIndices)
	}
	if up.vertexUploads != 1 || up.lastVertices != 3*64 || up.lastNormals != 3*64 {
		t.Errorf("unexpected vertex upload: %+v", up)
	}
	if sim.Ocean.Frames() != 1 {
		t.Errorf("Start should generate the first frame, got %d frames", sim.Ocean.Frames())
	}
}

func TestSimulationUpdateUsesClock(t *testing.T) {
	sim, up, clock := newTestSimulation(t)
	sim.WaveSpeedMultiplier = 2
	sim.Start()

	clock.now = clock.now.Add(1500 * time.Millisecond)
	sim.Update()

	if sim.CurrentTime != 3 {
		t.Errorf("expected simulation time 3, got %g", sim.CurrentTime)
	}
	if sim.Ocean.Time() != 3 {
		t.Errorf("ocean should be generated at t=3, got %g", sim.Ocean.Time())
	}
	if up.vertexUploads != 2 {
		t.Errorf("expected 2 vertex uploads, got %d", up.vertexUploads)
	}
}

func TestSimulationUpdateBeforeStartIsNoop(t *testing.T) {
	sim, up, _ := newTestSimulation(t)
	sim.Update()
	sim.UpdateFixed()
	if up.vertexUploads != 0 || sim.Ocean.Frames() != 0 {
		t.Error("no frames should be generated before Start")
	}
}

func TestSimulationFixedStep(t *testing.T) {
	sim, _, _ := newTestSimulation(t)
	sim.FixedStep = 0.5
	sim.Start()

	sim.UpdateFixed()
	sim.UpdateFixed()
	if sim.CurrentTime != 1 {
		t.Errorf("expected time 1 after two fixed steps, got %g", sim.CurrentTime)
	}
}

func TestSimulationPaused(t *testing.T) {
	sim, up, clock := newTestSimulation(t)
	sim.Start()
	sim.Paused = true

	clock.now = clock.now.Add(time.Second)
	sim.Update()
	sim.UpdateFixed()
	if up.vertexUploads != 1 {
		t.Errorf("paused simulation should not upload, got %d uploads", up.vertexUploads)
	}
}

func TestApplyConfigRebuildsOcean(t *testing.T) {
	sim, up, _ := newTestSimulation(t)
	sim.Start()

	cfg := sim.GetConfig()
	cfg.Ocean.Resolution = 16
	if err := sim.ApplyConfig(cfg); err != nil {
		t.Fatalf("ApplyConfig failed: %v", err)
	}

	if sim.Ocean.Resolution() != 16 {
		t.Errorf("expected resolution 16, got %d", sim.Ocean.Resolution())
	}
	if up.indexUploads != 2 || up.lastIndices != 6*15*15 {
		t.Errorf("new topology should be uploaded, got %d uploads of %d", up.indexUploads, up.lastIndices)
	}
}

func TestApplyConfigRejectsInvalid(t *testing.T) {
	sim, _, _ := newTestSimulation(t)
	before := sim.Ocean

	cfg := sim.GetConfig()
	cfg.Ocean.Resolution = 12
	if err := sim.ApplyConfig(cfg); !errors.Is(err, ocean.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if sim.Ocean != before {
		t.Error("invalid config should leave the running ocean in place")
	}
}

func TestNewSimulationRejectsInvalid(t *testing.T) {
	cfg := testConfig()
	cfg.Ocean.Wind = [2]float64{}
	if _, err := NewSimulation(cfg, nil); !errors.Is(err, ocean.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "water.json")
	cfg := testConfig()
	cfg.Ocean.Mode = ocean.ModeDirect
	cfg.Ocean.Choppiness = 0.7
	cfg.WaveSpeedMultiplier = 0.5

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded config differs:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	if err := os.WriteFile(path, []byte(`{"ocean":{"resolution":32}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Ocean.Resolution != 32 {
		t.Errorf("expected resolution 32, got %d", cfg.Ocean.Resolution)
	}
	if cfg.Ocean.Length != 10 || cfg.WaveSpeedMultiplier != 1 {
		t.Errorf("missing fields should keep defaults, got %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSimulationDrivenByManager(t *testing.T) {
	sim, up, clock := newTestSimulation(t)
	m := behaviour.NewManager()
	m.Add(sim)

	m.UpdateAll()
	clock.now = clock.now.Add(time.Second)
	m.UpdateAll()

	if up.indexUploads != 1 {
		t.Errorf("topology should be uploaded once, got %d", up.indexUploads)
	}
	// Start generates t=0, then the two Update calls generate t=0 and t=1.
	if sim.Ocean.Frames() != 3 || sim.CurrentTime != 1 {
		t.Errorf("expected 3 frames ending at t=1, got %d at t=%g", sim.Ocean.Frames(), sim.CurrentTime)
	}
}
