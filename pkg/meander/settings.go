package meander

import (
	"fmt"
	"strings"

	"github.com/matzehuels/meander/pkg/errors"
)

// CornerStyle selects how the 90 degree corners of a meander are drawn.
type CornerStyle int

const (
	// CornerRound draws quarter-circle arcs.
	CornerRound CornerStyle = iota
	// CornerChamfer cuts corners with a 45 degree segment.
	CornerChamfer
)

func (c CornerStyle) String() string {
	switch c {
	case CornerRound:
		return "round"
	case CornerChamfer:
		return "chamfer"
	default:
		return fmt.Sprintf("CornerStyle(%d)", int(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c CornerStyle) MarshalText() ([]byte, error) {
	switch c {
	case CornerRound, CornerChamfer:
		return []byte(c.String()), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidSettings, "unknown corner style %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CornerStyle) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "round", "":
		*c = CornerRound
	case "chamfer":
		*c = CornerChamfer
	default:
		return errors.New(errors.ErrCodeInvalidSettings, "unknown corner style %q (want round or chamfer)", string(text))
	}
	return nil
}

// Settings holds the user-configured meander parameters. All lengths are in
// board units (nanometers in the defaults). Settings are copied into every
// Line and Shape at construction and never mutated afterwards.
type Settings struct {
	// MinAmplitude and MaxAmplitude bound the detour height.
	MinAmplitude int `json:"min_amplitude" toml:"min_amplitude"`
	MaxAmplitude int `json:"max_amplitude" toml:"max_amplitude"`

	// Spacing is the minimum pitch between adjacent meander legs.
	Spacing int `json:"spacing" toml:"spacing"`

	// Step is the amplitude decrement while searching for a fit, and the
	// shortest remaining baseline worth trying to meander.
	Step int `json:"step" toml:"step"`

	CornerStyle            CornerStyle `json:"corner_style" toml:"corner_style"`
	CornerRadiusPercentage int         `json:"corner_radius_percentage" toml:"corner_radius_percentage"`

	// SingleSided restricts placement to SINGLE units that all bulge to the
	// same side of the baseline.
	SingleSided bool `json:"single_sided" toml:"single_sided"`

	// TargetLength is the desired total track length. Zero disables trimming.
	TargetLength int64 `json:"target_length,omitempty" toml:"target_length"`

	// LengthTolerance is the accepted deviation from TargetLength.
	LengthTolerance int64 `json:"length_tolerance,omitempty" toml:"length_tolerance"`
}

// DefaultSettings returns the stock meander settings in nanometers.
func DefaultSettings() Settings {
	return Settings{
		MinAmplitude:           100_000,
		MaxAmplitude:           1_000_000,
		Spacing:                600_000,
		Step:                   50_000,
		CornerStyle:            CornerRound,
		CornerRadiusPercentage: 100,
		SingleSided:            false,
		TargetLength:           100_000_000,
		LengthTolerance:        100_000,
	}
}

// Validate checks the settings for values the generator cannot work with.
func (s Settings) Validate() error {
	switch {
	case s.MinAmplitude < 0:
		return errors.New(errors.ErrCodeInvalidSettings, "min_amplitude must not be negative, got %d", s.MinAmplitude)
	case s.MaxAmplitude < s.MinAmplitude:
		return errors.New(errors.ErrCodeInvalidSettings, "max_amplitude (%d) must not be below min_amplitude (%d)", s.MaxAmplitude, s.MinAmplitude)
	case s.Spacing <= 0:
		return errors.New(errors.ErrCodeInvalidSettings, "spacing must be positive, got %d", s.Spacing)
	case s.Step <= 0:
		return errors.New(errors.ErrCodeInvalidSettings, "step must be positive, got %d", s.Step)
	case s.CornerRadiusPercentage < 0 || s.CornerRadiusPercentage > 100:
		return errors.New(errors.ErrCodeInvalidSettings, "corner_radius_percentage must be within 0..100, got %d", s.CornerRadiusPercentage)
	case s.CornerStyle != CornerRound && s.CornerStyle != CornerChamfer:
		return errors.New(errors.ErrCodeInvalidSettings, "unknown corner style %d", int(s.CornerStyle))
	case s.TargetLength < 0:
		return errors.New(errors.ErrCodeInvalidSettings, "target_length must not be negative, got %d", s.TargetLength)
	case s.LengthTolerance < 0:
		return errors.New(errors.ErrCodeInvalidSettings, "length_tolerance must not be negative, got %d", s.LengthTolerance)
	}
	return nil
}
