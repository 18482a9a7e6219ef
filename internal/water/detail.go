package water

import (
	"fmt"
	"math/rand/v2"

	"OceanFFT/internal/ocean"
	"OceanFFT/internal/waves"

	"github.com/go-gl/mathgl/mgl32"
)

// DetailKind selects the analytic waves layered over the spectral surface.
type DetailKind string

const (
	DetailNone     DetailKind = ""
	DetailGerstner DetailKind = "gerstner"
	DetailSine     DetailKind = "sine"
)

const defaultDetailCount = 4

// Detail configures small analytic waves added on top of every synthesized
// frame. Gerstner waves follow the ocean's wind; sine waves breathe in and
// out over time.
type Detail struct {
	Kind  DetailKind `json:"kind,omitempty"`
	Count int        `json:"count,omitempty"`
	Seed  uint64     `json:"seed,omitempty"`
}

// overlay modifies a copy of the synthesizer's vertex and normal buffers.
// Normals stay unnormalized, so slopes add.
type overlay interface {
	apply(vertices, normals []float32, t, dt float64)
}

func newOverlay(d Detail, wind [2]float64) (overlay, error) {
	if d.Count < 0 {
		return nil, fmt.Errorf("%w: detail count %d is negative", ocean.ErrInvalidConfiguration, d.Count)
	}
	count := d.Count
	if count == 0 {
		count = defaultDetailCount
	}
	rng := rand.New(rand.NewPCG(d.Seed, d.Seed^0x5851f42d4c957f2d))

	switch d.Kind {
	case DetailNone:
		return nil, nil
	case DetailGerstner:
		w := mgl32.Vec2{float32(wind[0]), float32(wind[1])}
		return &gerstnerOverlay{set: waves.NewGerstnerSet(rng, w, count)}, nil
	case DetailSine:
		return &sineOverlay{set: waves.NewSineSet(rng, count)}, nil
	}
	return nil, fmt.Errorf("%w: unknown detail kind %q", ocean.ErrInvalidConfiguration, d.Kind)
}

type gerstnerOverlay struct {
	set waves.GerstnerSet
}

func (o *gerstnerOverlay) apply(vertices, normals []float32, t, _ float64) {
	tf := float32(t)
	for p := 0; p+2 < len(vertices); p += 3 {
		u, v := vertices[p], vertices[p+2]
		pos := o.set.Position(u, v, tf)
		vertices[p] = pos.X()
		vertices[p+1] += pos.Y()
		vertices[p+2] = pos.Z()

		tilt := o.set.Tilt(u, v, tf)
		normals[p] += tilt.X()
		normals[p+1] += tilt.Y()
		normals[p+2] += tilt.Z()
	}
}

type sineOverlay struct {
	set *waves.SineSet
}

func (o *sineOverlay) apply(vertices, normals []float32, t, dt float64) {
	o.set.Update(float32(dt))
	tf := float32(t)
	for p := 0; p+2 < len(vertices); p += 3 {
		x, z := vertices[p], vertices[p+2]
		vertices[p+1] += o.set.Height(x, z, tf)
		dx, dz := o.set.Gradient(x, z, tf)
		normals[p] -= dx
		normals[p+2] -= dz
	}
}
