package svg

import "strings"

// Segment is one path command with its absolute arguments.
type Segment struct {
	Cmd  byte
	Args []float64
}

// Path accumulates path commands in the order they are issued.
type Path struct {
	segs []Segment
}

func (p *Path) MoveTo(x, y float64) {
	p.segs = append(p.segs, Segment{Cmd: 'M', Args: []float64{x, y}})
}

func (p *Path) LineTo(x, y float64) {
	p.segs = append(p.segs, Segment{Cmd: 'L', Args: []float64{x, y}})
}

func (p *Path) BezierCurveTo(x1, y1, x2, y2, x, y float64) {
	p.segs = append(p.segs, Segment{Cmd: 'C', Args: []float64{x1, y1, x2, y2, x, y}})
}

func (p *Path) ClosePath() {
	p.segs = append(p.segs, Segment{Cmd: 'Z'})
}

func (p *Path) Segments() []Segment { return p.segs }

func (p *Path) Empty() bool { return len(p.segs) == 0 }

// Closed reports whether the last command closes the current subpath.
func (p *Path) Closed() bool {
	return len(p.segs) > 0 && p.segs[len(p.segs)-1].Cmd == 'Z'
}

// Start is the point of the first move.
func (p *Path) Start() (x, y float64, ok bool) {
	if len(p.segs) == 0 || p.segs[0].Cmd != 'M' {
		return 0, 0, false
	}
	return p.segs[0].Args[0], p.segs[0].Args[1], true
}

// String renders the path data attribute value, e.g. "M0,0L10,0L10,10Z".
func (p *Path) String() string {
	var b strings.Builder
	for _, s := range p.segs {
		b.WriteByte(s.Cmd)
		for i, a := range s.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(Num(a))
		}
	}
	return b.String()
}
