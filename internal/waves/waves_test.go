package waves

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewGerstnerSetRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	wind := mgl32.Vec2{1, 0}
	set := NewGerstnerSet(rng, wind, 32)

	if len(set) != 32 {
		t.Fatalf("expected 32 waves, got %d", len(set))
	}
	for i, w := range set {
		if w.Amplitude < 0.05 || w.Amplitude >= 0.1 {
			t.Errorf("wave %d amplitude %g out of range", i, w.Amplitude)
		}
		if w.Steepness < 0.3 || w.Steepness >= 0.4 {
			t.Errorf("wave %d steepness %g out of range", i, w.Steepness)
		}
		if w.Speed < 0.5 || w.Speed >= 1 {
			t.Errorf("wave %d speed %g out of range", i, w.Speed)
		}
		ratio := w.Wavelength / w.Amplitude
		if ratio < 19.99 || ratio > 40.01 {
			t.Errorf("wave %d wavelength/amplitude ratio %g out of range", i, ratio)
		}
		if math.Abs(float64(w.Direction.Len())-1) > 1e-5 {
			t.Errorf("wave %d direction not normalized: %v", i, w.Direction)
		}
		if w.Direction.Dot(wind) < 0.5-1e-5 {
			t.Errorf("wave %d deviates more than 60 degrees from the wind: %v", i, w.Direction)
		}
	}
}

func TestGerstnerOffset(t *testing.T) {
	w := GerstnerWave{
		Steepness:  0.5,
		Amplitude:  0.1,
		Direction:  mgl32.Vec2{1, 0},
		Wavelength: 2,
		Speed:      1,
	}

	// At the origin and t=0, θ = 0: full horizontal push, no height.
	off := w.Offset(0, 0, 0)
	if !off.ApproxEqual(mgl32.Vec3{0.05, 0, 0}) {
		t.Errorf("Offset at origin: got %v", off)
	}

	// A quarter period later the crest sits on the origin.
	tq := (math.Pi / 2) / w.Phase()
	off = w.Offset(0, 0, tq)
	if math.Abs(float64(off.Y()-0.1)) > 1e-5 || math.Abs(float64(off.X())) > 1e-5 {
		t.Errorf("Offset at quarter period: got %v", off)
	}
}

func TestGerstnerSetPositionAndNormal(t *testing.T) {
	set := GerstnerSet{{
		Steepness:  0,
		Amplitude:  0.1,
		Direction:  mgl32.Vec2{0, 1},
		Wavelength: 3,
		Speed:      0.5,
	}}

	p := set.Position(1, 2, 0.3)
	if p.X() != 1 || p.Z() != 2 {
		t.Errorf("zero steepness should not move the point horizontally: %v", p)
	}

	n := set.Normal(1, 2, 0.3)
	if math.Abs(float64(n.Len())-1) > 1e-5 {
		t.Errorf("normal should be unit length, got %v", n)
	}
	if n.Y() <= 0 {
		t.Errorf("normal should point up, got %v", n)
	}

	flat := GerstnerSet{}
	if !flat.Normal(0, 0, 0).ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Error("empty set should have an up normal")
	}
}

func TestNewSineSetStartsAtFullAmplitude(t *testing.T) {
	s := NewSineSet(rand.New(rand.NewPCG(3, 4)), 4)
	for i, w := range s.Waves {
		if w.Amp != w.MaxAmp {
			t.Errorf("wave %d amp %g, want max %g", i, w.Amp, w.MaxAmp)
		}
		if w.MaxAmp < 0.025 || w.MaxAmp >= 0.05 {
			t.Errorf("wave %d max amp %g out of range", i, w.MaxAmp)
		}
		if math.Abs(float64(w.Direction.Len())-1) > 1e-5 {
			t.Errorf("wave %d direction not normalized: %v", i, w.Direction)
		}
	}
}

func TestSineSetBreathes(t *testing.T) {
	s := NewSineSet(rand.New(rand.NewPCG(5, 6)), 1)
	w := &s.Waves[0]

	// Starting at max amplitude while rising, one step tips it into decay.
	s.Update(0.1)
	if w.Rising {
		t.Fatal("wave above max amplitude should start decaying")
	}

	peak := w.Amp
	s.Update(0.1)
	if w.Amp >= peak {
		t.Errorf("decaying wave should lose amplitude: %g -> %g", peak, w.Amp)
	}

	// Decay until it fades and is replaced.
	for i := 0; i < 100000 && !w.Rising; i++ {
		s.Update(0.1)
	}
	if !w.Rising || w.Amp != 0 {
		t.Errorf("faded wave should restart rising from zero, got rising=%v amp=%g", w.Rising, w.Amp)
	}
}

func TestSineHeight(t *testing.T) {
	w := SineWave{Amp: 0.5, Direction: mgl32.Vec2{1, 0}, Wavelength: 2, Speed: 0}
	// ω = 1, so the height at x = π/2 is the full amplitude.
	if h := w.Height(math.Pi/2, 0, 0); math.Abs(float64(h-0.5)) > 1e-5 {
		t.Errorf("Height: got %g, want 0.5", h)
	}

	s := &SineSet{Waves: []SineWave{w, w}}
	if h := s.Height(math.Pi/2, 0, 0); math.Abs(float64(h-1)) > 1e-5 {
		t.Errorf("SineSet.Height: got %g, want 1", h)
	}
}

func TestGerstnerTiltMatchesNormal(t *testing.T) {
	set := NewGerstnerSet(rand.New(rand.NewPCG(7, 8)), mgl32.Vec2{1, 1}, 4)
	tilt := set.Tilt(0.4, -1.2, 2)
	want := mgl32.Vec3{0, 1, 0}.Add(tilt).Normalize()
	if !set.Normal(0.4, -1.2, 2).ApproxEqual(want) {
		t.Errorf("Normal should be the normalized tilted up vector")
	}
	if (GerstnerSet{}).Tilt(1, 1, 1) != (mgl32.Vec3{}) {
		t.Error("empty set should not tilt")
	}
}

func TestSineGradient(t *testing.T) {
	w := SineWave{Amp: 0.5, Direction: mgl32.Vec2{0.6, 0.8}, Wavelength: 2, Speed: 0.3}
	const x, z, tm, h = 0.7, -0.2, 1.5, 1e-3

	dx, dz := w.Gradient(x, z, tm)
	fx := (w.Height(x+h, z, tm) - w.Height(x-h, z, tm)) / (2 * h)
	fz := (w.Height(x, z+h, tm) - w.Height(x, z-h, tm)) / (2 * h)
	if math.Abs(float64(dx-fx)) > 1e-3 || math.Abs(float64(dz-fz)) > 1e-3 {
		t.Errorf("Gradient (%g, %g), finite difference (%g, %g)", dx, dz, fx, fz)
	}

	s := &SineSet{Waves: []SineWave{w, w}}
	sx, sz := s.Gradient(x, z, tm)
	if math.Abs(float64(sx-2*dx)) > 1e-6 || math.Abs(float64(sz-2*dz)) > 1e-6 {
		t.Errorf("SineSet.Gradient should sum waves, got (%g, %g)", sx, sz)
	}
}
