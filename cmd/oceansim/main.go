// Command oceansim runs the ocean synthesizer headless: it steps a water
// simulation at a fixed rate, packs every frame the way a renderer would
// upload it and optionally writes the last frame to disk.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"OceanFFT/internal/behaviour"
	"OceanFFT/internal/logger"
	"OceanFFT/internal/mesh"
	"OceanFFT/internal/ocean"
	"OceanFFT/internal/water"

	"go.uber.org/zap"
)

// packingUploader converts buffers into the byte layout of a graphics upload
// and keeps the latest copy.
type packingUploader struct {
	indexBytes  []byte
	vertexBytes []byte
	normalBytes []byte
	uploads     int
}

func (u *packingUploader) UploadIndices(indices []uint32) {
	u.indexBytes = mesh.Uint32Bytes(indices)
}

func (u *packingUploader) UploadVertices(vertices, normals []float32) {
	u.vertexBytes = mesh.Float32Bytes(vertices)
	u.normalBytes = mesh.Float32Bytes(normals)
	u.uploads++
}

func main() {
	var (
		configPath = flag.String("config", "", "JSON water config (defaults are used when empty)")
		modeName   = flag.String("mode", "", "override synthesis mode: fft or direct")
		resolution = flag.Int("n", 0, "override grid resolution")
		choppiness = flag.Float64("choppy", -1, "override choppiness (negative keeps the config value)")
		resample   = flag.Bool("resample", false, "redraw the random spectrum every frame")
		seed       = flag.Uint64("seed", 0, "spectrum seed (0 picks a time-based seed)")
		detail     = flag.String("detail", "", "layer analytic waves over the ocean: gerstner or sine")
		detailN    = flag.Int("detail-count", 0, "number of detail waves (0 keeps the config value)")
		frames     = flag.Int("frames", 120, "number of fixed steps to simulate")
		outPath    = flag.String("out", "", "write the last frame as a compressed binary file")
		saveConfig = flag.String("save-config", "", "write the effective config as JSON and exit")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if err := logger.Init(*debug); err != nil {
		logger.Log.Warn("Debug logging unavailable", zap.Error(err))
	}
	defer logger.Sync()

	if err := run(options{
		configPath: *configPath,
		modeName:   *modeName,
		resolution: *resolution,
		choppiness: *choppiness,
		resample:   *resample,
		seed:       *seed,
		detail:     *detail,
		detailN:    *detailN,
		frames:     *frames,
		outPath:    *outPath,
		saveConfig: *saveConfig,
	}); err != nil {
		logger.Log.Error("oceansim failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

type options struct {
	configPath string
	modeName   string
	resolution int
	choppiness float64
	resample   bool
	seed       uint64
	detail     string
	detailN    int
	frames     int
	outPath    string
	saveConfig string
}

func run(opts options) error {
	cfg := water.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := water.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if opts.modeName != "" {
		mode, err := ocean.ParseMode(opts.modeName)
		if err != nil {
			return err
		}
		cfg.Ocean.Mode = mode
	}
	if opts.resolution > 0 {
		cfg.Ocean.Resolution = opts.resolution
	}
	if opts.choppiness >= 0 {
		cfg.Ocean.Choppiness = opts.choppiness
	}
	if opts.resample {
		cfg.Ocean.Resample = true
	}
	if opts.seed != 0 {
		cfg.Ocean.Seed = opts.seed
	}

	if opts.detail != "" {
		cfg.Detail.Kind = water.DetailKind(opts.detail)
	}
	if opts.detailN > 0 {
		cfg.Detail.Count = opts.detailN
	}

	uploader := &packingUploader{}
	sim, err := water.NewSimulation(cfg, uploader)
	if err != nil {
		return err
	}

	if opts.saveConfig != "" {
		return water.SaveConfig(opts.saveConfig, cfg)
	}
	if sim.FixedStep <= 0 {
		sim.FixedStep = 1.0 / 60
	}

	manager := behaviour.NewManager()
	manager.Add(sim)

	start := time.Now()
	for i := 0; i < opts.frames; i++ {
		manager.UpdateAllFixed()
	}
	elapsed := time.Since(start)

	perFrame := time.Duration(0)
	if opts.frames > 0 {
		perFrame = elapsed / time.Duration(opts.frames)
	}
	logger.Log.Info("Simulation finished",
		zap.Stringer("mode", cfg.Ocean.Mode),
		zap.Int("resolution", cfg.Ocean.Resolution),
		zap.String("detail", string(cfg.Detail.Kind)),
		zap.Int("frames", opts.frames),
		zap.Int("uploads", uploader.uploads),
		zap.Int("vertexBytes", len(uploader.vertexBytes)),
		zap.Int("normalBytes", len(uploader.normalBytes)),
		zap.Int("indexBytes", len(uploader.indexBytes)),
		zap.Duration("elapsed", elapsed),
		zap.Duration("perFrame", perFrame),
		zap.Float64("simTime", sim.CurrentTime))

	if opts.outPath == "" {
		return nil
	}

	data, err := mesh.EncodeFrameBinary(sim.Frame())
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	if err := os.WriteFile(opts.outPath, data, 0o644); err != nil {
		return err
	}
	logger.Log.Info("Frame written",
		zap.String("path", opts.outPath),
		zap.Int("bytes", len(data)))
	return nil
}
