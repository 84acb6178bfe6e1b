package meander

import "github.com/matzehuels/meander/pkg/geometry"

type permissiveOracle struct{ clearance int }

func (o permissiveOracle) CheckFit(*Shape) bool { return true }
func (o permissiveOracle) Clearance() int       { return o.clearance }

type blockedOracle struct{}

func (blockedOracle) CheckFit(*Shape) bool { return false }
func (blockedOracle) Clearance() int       { return 10 }

// selfCheckOracle accepts shapes that keep clear of the line they are
// being placed on.
type selfCheckOracle struct {
	line      *Line
	clearance int
}

func (o *selfCheckOracle) CheckFit(s *Shape) bool {
	return o.line.CheckSelfIntersections(s, o.clearance)
}

func (o *selfCheckOracle) Clearance() int { return o.clearance }

// amplitudeCap rejects everything taller than limit.
type amplitudeCap struct{ limit int }

func (o amplitudeCap) CheckFit(s *Shape) bool { return s.Amplitude() <= o.limit }
func (o amplitudeCap) Clearance() int         { return 10 }

// finishRefused accepts every shape except Finish units.
type finishRefused struct{ refused int }

func (o *finishRefused) CheckFit(s *Shape) bool {
	if s.Type() == TypeFinish {
		o.refused++
		return false
	}
	return true
}

func (o *finishRefused) Clearance() int { return 10 }

func testSettings() Settings {
	return Settings{
		Spacing:                100,
		MinAmplitude:           50,
		MaxAmplitude:           200,
		Step:                   10,
		SingleSided:            false,
		CornerStyle:            CornerRound,
		CornerRadiusPercentage: 50,
	}
}

func unitTypes(l *Line) []Type {
	types := make([]Type, 0, len(l.Units()))
	for _, u := range l.Units() {
		types = append(types, u.Type())
	}
	return types
}

func baseline(length int) geometry.Seg {
	return geometry.NewSeg(geometry.Pt(0, 0), geometry.Pt(length, 0))
}
