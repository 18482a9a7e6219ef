package ocean

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"OceanFFT/internal/fft"
	"OceanFFT/internal/mesh"
)

// ErrInvalidConfiguration is returned by New and Config.Validate when the
// configuration cannot produce a synthesizer.
var ErrInvalidConfiguration = errors.New("ocean: invalid configuration")

// Mode selects how the inverse Fourier sum is evaluated.
type Mode int

const (
	// ModeFFT realizes the sum with a separable 2D FFT, O(N² log N).
	ModeFFT Mode = iota
	// ModeDirect evaluates the sum at every grid point, O(N⁴).
	ModeDirect
)

func (m Mode) String() string {
	switch m {
	case ModeFFT:
		return "fft"
	case ModeDirect:
		return "direct"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "fft" or "direct", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fft":
		return ModeFFT, nil
	case "direct":
		return ModeDirect, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfiguration, s)
}

// MarshalText encodes the mode by name so configs stay readable.
func (m Mode) MarshalText() ([]byte, error) {
	if m != ModeFFT && m != ModeDirect {
		return nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidConfiguration, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Config holds the construction parameters of a Synthesizer.
type Config struct {
	// Wind direction and speed in one vector (x, z).
	Wind [2]float64 `json:"wind"`
	// Resolution N of the N×N grid. FFT mode requires a power of two.
	Resolution int `json:"resolution"`
	// Amplitude is the Phillips constant A.
	Amplitude float64 `json:"amplitude"`
	// Length L of the square patch in world units.
	Length float64 `json:"length"`
	// Choppiness scales the horizontal displacement. Zero disables it and
	// no displacement buffer is allocated.
	Choppiness float64 `json:"choppiness"`
	Mode       Mode    `json:"mode"`
	// Resample redraws the random spectrum on every Generate call instead of
	// drawing it once and only advancing the phase.
	Resample bool `json:"resample"`
	// Seed for the spectrum's random source. Zero picks a time-based seed.
	Seed uint64 `json:"seed"`
	// Gravity defaults to 9.8 when zero.
	Gravity float64 `json:"gravity,omitempty"`
}

// DefaultConfig matches the classic demo ocean: a 16×16 FFT grid over a
// 10 m patch with a light diagonal wind.
func DefaultConfig() Config {
	return Config{
		Wind:       [2]float64{2, 2},
		Resolution: 16,
		Amplitude:  0.2,
		Length:     10,
		Mode:       ModeFFT,
	}
}

// WithDisplacement reports whether choppy displacement is computed.
func (c Config) WithDisplacement() bool {
	return c.Choppiness > 0
}

// Validate reports the first problem that would prevent construction.
func (c Config) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"wind x", c.Wind[0]},
		{"wind z", c.Wind[1]},
		{"amplitude", c.Amplitude},
		{"length", c.Length},
		{"choppiness", c.Choppiness},
		{"gravity", c.Gravity},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s %g is not finite", ErrInvalidConfiguration, f.name, f.value)
		}
	}

	switch {
	case c.Mode != ModeFFT && c.Mode != ModeDirect:
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfiguration, int(c.Mode))
	case c.Resolution < 2:
		return fmt.Errorf("%w: resolution %d is below 2", ErrInvalidConfiguration, c.Resolution)
	case c.Resolution > mesh.MaxFrameWidth:
		return fmt.Errorf("%w: resolution %d exceeds %d", ErrInvalidConfiguration, c.Resolution, mesh.MaxFrameWidth)
	case c.Mode == ModeFFT && !fft.IsPowerOfTwo(c.Resolution):
		return fmt.Errorf("%w: resolution %d is not a power of two, required by fft mode", ErrInvalidConfiguration, c.Resolution)
	case c.Length <= 0:
		return fmt.Errorf("%w: length %g must be positive", ErrInvalidConfiguration, c.Length)
	case c.Amplitude < 0:
		return fmt.Errorf("%w: amplitude %g is negative", ErrInvalidConfiguration, c.Amplitude)
	case c.Wind[0] == 0 && c.Wind[1] == 0:
		return fmt.Errorf("%w: wind vector is zero", ErrInvalidConfiguration)
	case c.Choppiness < 0:
		return fmt.Errorf("%w: choppiness %g is negative", ErrInvalidConfiguration, c.Choppiness)
	case c.Gravity < 0:
		return fmt.Errorf("%w: gravity %g is negative", ErrInvalidConfiguration, c.Gravity)
	}
	return nil
}
