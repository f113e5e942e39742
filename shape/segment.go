package shape

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/rigid/diag"
)

// Segment is a thick line between two points given relative to the owning
// body's position. Used mostly for static ground and world borders, the way
// the world edges are fenced with segments in a tile level.
type Segment struct {
	A, B   cp.Vector
	Radius float64
}

// NewSegment builds a segment shape with the given half-thickness.
func NewSegment(a, b cp.Vector, radius float64) *Segment {
	diag.Assertf(radius >= 0, "radius >= 0", "segment radius %v", radius)
	return &Segment{A: a, B: b, Radius: radius}
}

func (s *Segment) Kind() Kind { return KindSegment }

func (s *Segment) BB(pos cp.Vector) cp.BB {
	a := pos.Add(s.A)
	b := pos.Add(s.B)
	return cp.BB{
		L: math.Min(a.X, b.X) - s.Radius,
		B: math.Min(a.Y, b.Y) - s.Radius,
		R: math.Max(a.X, b.X) + s.Radius,
		T: math.Max(a.Y, b.Y) + s.Radius,
	}
}

func (s *Segment) Moment(mass float64) float64 {
	return cp.MomentForSegment(mass, s.A, s.B, s.Radius)
}

func (s *Segment) Area() float64 {
	return cp.AreaForSegment(s.A, s.B, s.Radius)
}
