// Package meander generates and places trace length tuning meanders.
//
// A meander lengthens a routed track by replacing a straight baseline with a
// sequence of U-shaped detours. The package has two layers:
//
//   - [Shape] is one meander unit. Given a type, anchor point, direction and
//     side, it generates the unit's polyline (two polylines for a
//     differential pair) and searches for the largest amplitude an [Oracle]
//     accepts.
//   - [Line] walks a baseline segment and fills it with units: a Start, any
//     number of alternating Turns and a Finish when there is room on both
//     sides, Single bumps when there is not, and plain corners when nothing
//     fits.
//
// # Oracle
//
// The package performs no collision detection against the board. Every
// candidate shape is handed to the caller's [Oracle], which typically
// combines a board clearance check with [Line.CheckSelfIntersections]:
//
//	type board struct{ line *meander.Line }
//
//	func (b *board) CheckFit(s *meander.Shape) bool {
//	    return b.line.CheckSelfIntersections(s, width+clearance) && obstaclesClear(s)
//	}
//
// # Units
//
// All lengths are integers in board units. [DefaultSettings] uses
// nanometers.
//
// # Concurrency
//
// Lines and shapes are not safe for concurrent use. A line is cheap to
// rebuild; interactive callers Clear it and meander again on every update.
package meander
