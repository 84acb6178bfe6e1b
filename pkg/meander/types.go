package meander

import "fmt"

// Type identifies the role of a meander unit within a line.
type Type int

const (
	// TypeSingle is a self-contained bump that leaves and rejoins the
	// baseline on the same side.
	TypeSingle Type = iota
	// TypeStart opens a chain of alternating detours.
	TypeStart
	// TypeFinish closes a chain of alternating detours.
	TypeFinish
	// TypeTurn is one alternating detour in the middle of a chain.
	TypeTurn
	// TypeCheckStart probes whether a Start followed by a Turn fits.
	TypeCheckStart
	// TypeCheckFinish probes whether a Turn followed by a Finish fits.
	TypeCheckFinish
	// TypeCorner is a zero-length anchor point (or a pass-through arc).
	TypeCorner
	// TypeEmpty is a straight run along the baseline.
	TypeEmpty
)

var typeNames = [...]string{
	TypeSingle:      "single",
	TypeStart:       "start",
	TypeFinish:      "finish",
	TypeTurn:        "turn",
	TypeCheckStart:  "check_start",
	TypeCheckFinish: "check_finish",
	TypeCorner:      "corner",
	TypeEmpty:       "empty",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	for i, name := range typeNames {
		if name == string(text) {
			*t = Type(i)
			return nil
		}
	}
	return fmt.Errorf("unknown meander type %q", string(text))
}

// Oracle decides whether a candidate shape is acceptable on the board.
// CheckFit must not modify the shape. Clearance is the minimum copper to
// copper distance and feeds into the spacing of generated shapes.
type Oracle interface {
	CheckFit(s *Shape) bool
	Clearance() int
}
