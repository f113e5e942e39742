package shape

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/rigid/diag"
)

// Circle is a disc centered on the owning body's position.
type Circle struct {
	Radius float64
}

// NewCircle builds a circle shape.
func NewCircle(radius float64) *Circle {
	diag.Assertf(radius > 0, "radius > 0", "circle radius %v", radius)
	return &Circle{Radius: radius}
}

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) BB(pos cp.Vector) cp.BB {
	return cp.NewBBForCircle(pos, c.Radius)
}

func (c *Circle) Moment(mass float64) float64 {
	return cp.MomentForCircle(mass, 0, c.Radius, cp.Vector{})
}

func (c *Circle) Area() float64 {
	return cp.AreaForCircle(0, c.Radius)
}
