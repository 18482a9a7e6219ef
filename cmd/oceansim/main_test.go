package main

import (
	"os"
	"path/filepath"
	"testing"

	"OceanFFT/internal/mesh"
	"OceanFFT/internal/water"
)

func TestRunWritesFrame(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.bin")
	err := run(options{
		modeName:   "fft",
		resolution: 8,
		choppiness: 0.5,
		seed:       7,
		frames:     3,
		outPath:    out,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("frame file missing: %v", err)
	}
	frame, err := mesh.DecodeFrameBinary(data)
	if err != nil {
		t.Fatalf("DecodeFrameBinary failed: %v", err)
	}
	if frame.Width != 8 || frame.Displacements == nil {
		t.Errorf("unexpected frame: width %d, displacement %v", frame.Width, frame.Displacements != nil)
	}
}

func TestRunRejectsBadMode(t *testing.T) {
	if err := run(options{modeName: "sideways", choppiness: -1}); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestRunRejectsBadResolution(t *testing.T) {
	if err := run(options{modeName: "fft", resolution: 12, choppiness: -1, frames: 1}); err == nil {
		t.Error("expected an error for a non power-of-two fft grid")
	}
}

func TestRunSavesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := run(options{modeName: "direct", resolution: 6, choppiness: -1, saveConfig: path}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	cfg, err := water.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Ocean.Resolution != 6 {
		t.Errorf("expected resolution 6, got %d", cfg.Ocean.Resolution)
	}
}

func TestRunWritesDetailedFrame(t *testing.T) {
	dir := t.TempDir()
	write := func(name, detail string) *mesh.Frame {
		out := filepath.Join(dir, name)
		err := run(options{
			modeName:   "fft",
			resolution: 8,
			choppiness: -1,
			seed:       7,
			detail:     detail,
			detailN:    2,
			frames:     2,
			outPath:    out,
		})
		if err != nil {
			t.Fatalf("run with detail %q failed: %v", detail, err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("frame file missing: %v", err)
		}
		frame, err := mesh.DecodeFrameBinary(data)
		if err != nil {
			t.Fatalf("DecodeFrameBinary failed: %v", err)
		}
		return frame
	}

	plain := write("plain.bin", "")
	detailed := write("gerstner.bin", "gerstner")
	same := true
	for i := range plain.Vertices {
		if plain.Vertices[i] != detailed.Vertices[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("gerstner detail should change the written vertices")
	}
}

func TestRunRejectsBadDetail(t *testing.T) {
	if err := run(options{resolution: 8, choppiness: -1, detail: "foam", frames: 1}); err == nil {
		t.Error("expected an error for an unknown detail kind")
	}
}
