package meander

import (
	"math"

	"github.com/jbeda/geom"

	"github.com/matzehuels/meander/pkg/geometry"
)

// chamferCorrection scales the dual-mode chamfer shift so that the inner and
// outer lines of a chamfered corner stay parallel.
var chamferCorrection = math.Tan(22.5 * math.Pi / 180.0)

// genParams is everything the generator reads from a shape.
type genParams struct {
	style        CornerStyle
	dual         bool
	cornerRadius int
	spacing      int
	amplitude    int
	targetBase   int
}

// pen traces a chain with relative moves. dir keeps the magnitude it was
// started with; forward and miter resize it as needed.
type pen struct {
	pos    geom.Coord
	dir    geom.Coord
	chain  geometry.Chain
	style  CornerStyle
	dual   bool
	offset int
	meanCr int
}

func (p *pen) start(where, dir geom.Coord) {
	p.chain.Clear()
	p.chain.Append(geometry.FromCoord(where))
	p.pos = where
	p.dir = dir
}

func (p *pen) forward(length int) {
	p.pos = p.pos.Plus(geometry.Resize(p.dir, float64(length)))
	p.chain.Append(geometry.FromCoord(p.pos))
}

// turn rotates the heading by 90 degrees: clockwise when cw is set,
// counter-clockwise otherwise.
func (p *pen) turn(cw bool) {
	if cw {
		p.dir = geom.Coord{X: p.dir.Y, Y: -p.dir.X}
	} else {
		p.dir = geom.Coord{X: -p.dir.Y, Y: p.dir.X}
	}
}

func (p *pen) miter(radius int, side bool) {
	if radius <= 0 {
		p.turn(side)
		return
	}
	u := geometry.Resize(p.dir, float64(radius))
	p.appendMiter(u, side)
	p.turn(side)
}

// appendMiter adds a 90 degree corner of size |u| starting at the pen
// position and moves the pen to the corner's far end.
func (p *pen) appendMiter(u geom.Coord, side bool) {
	at := p.pos
	if u.X == 0 && u.Y == 0 {
		p.chain.Append(geometry.FromCoord(at))
		return
	}

	sign := 1.0
	if side {
		sign = -1.0
	}
	v := geometry.Perp(u)
	end := at.Plus(u).Plus(v.Times(sign))

	p.chain.Append(geometry.FromCoord(at))

	switch p.style {
	case CornerRound:
		angle := math.Pi / 2
		if side {
			angle = -angle
		}
		center := at.Plus(v.Times(sign))
		p.chain.AppendArc(geometry.Arc{
			Center: geometry.FromCoord(center),
			Start:  geometry.FromCoord(at),
			End:    geometry.FromCoord(end),
			Angle:  angle,
		})

	case CornerChamfer:
		radius := u.Magnitude()
		var correction float64
		if p.dual && radius > float64(p.meanCr) {
			correction = float64(-2*abs(p.offset)) * chamferCorrection
		}
		cu := geometry.Resize(u, correction)
		cv := geometry.Resize(v, correction)

		p.chain.Append(geometry.FromCoord(at.Minus(cu)))
		p.chain.Append(geometry.FromCoord(at.Plus(u).Plus(v.Plus(cv).Times(sign))))
	}

	p.chain.Append(geometry.FromCoord(end))
	p.pos = end
}

func (p *pen) uShape(sides, corner, top int) {
	p.forward(sides)
	p.miter(corner, true)
	p.forward(top)
	p.miter(corner, true)
	p.forward(sides)
}

// generate builds the polyline of one meander unit anchored at anchor on a
// baseline running along dir. offset shifts the line laterally (dual mode).
// When side is set the shape is mirrored about the baseline. The returned
// radius is the corner radius actually used after clamping.
func generate(anchor geometry.Point, dir geometry.Point, side bool, typ Type, offset int, g genParams) (geometry.Chain, int) {
	cr := g.cornerRadius
	spc := g.spacing
	amplitude := g.amplitude
	target := g.targetBase

	if side {
		offset = -offset
	}

	d := dir.Coord()
	p := anchor.Coord()
	dirUB := geometry.Resize(d, float64(offset))
	dirVB := geometry.Perp(dirUB)

	if 2*cr > amplitude {
		cr = amplitude / 2
	}
	if 2*cr > spc {
		cr = spc / 2
	}
	if cr-offset < 0 {
		cr = offset
	}

	sCorner := cr - offset
	uCorner := cr + offset
	startSide := amplitude - 2*cr + abs(offset)
	turnSide := amplitude - cr
	top := spc - 2*cr

	pn := &pen{style: g.style, dual: g.dual, offset: offset, meanCr: cr}
	pn.start(p.Plus(dirVB), d)

	switch typ {
	case TypeEmpty:
		pn.chain.Append(geometry.FromCoord(p.Plus(dirVB).Plus(d)))

	case TypeStart:
		if target != 0 {
			top = max(top, target-sCorner-uCorner*2+offset)
		}
		pn.miter(sCorner, false)
		pn.uShape(startSide, uCorner, top)
		pn.forward(min(sCorner, uCorner))
		pn.forward(abs(offset))

	case TypeFinish:
		if target != 0 {
			top = max(top, target-cr-spc)
		}
		pn.start(p.Minus(dirUB), d)
		pn.turn(false)
		pn.forward(min(sCorner, uCorner))
		pn.forward(abs(offset))
		pn.uShape(startSide, uCorner, top)
		pn.miter(sCorner, false)

		tail := 2*spc - cr
		if target >= spc+cr {
			tail = target
		}
		pn.chain.Append(geometry.FromCoord(p.Plus(dirVB).Plus(geometry.Resize(d, float64(tail)))))

	case TypeTurn:
		if target != 0 {
			top = max(top, target-uCorner*2+offset*2)
		}
		pn.start(p.Minus(dirUB), d)
		pn.turn(false)
		pn.forward(abs(offset))
		pn.uShape(turnSide, uCorner, top)
		pn.forward(abs(offset))

	case TypeSingle:
		if target != 0 {
			top = max(top, (target-sCorner*2-uCorner*2)/2)
		}
		pn.miter(sCorner, false)
		pn.uShape(startSide, uCorner, top)
		pn.miter(sCorner, false)
		pn.chain.Append(geometry.FromCoord(p.Plus(dirVB).Plus(geometry.Resize(d, float64(2*spc)))))
	}

	if side {
		axis := geometry.NewSeg(anchor, anchor.Add(dir))
		return pn.chain.Mirror(axis), cr
	}
	return pn.chain, cr
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
