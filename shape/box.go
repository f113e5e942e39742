package shape

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/rigid/diag"
)

// Box is an axis-aligned rectangle centered on the owning body's position.
type Box struct {
	Width, Height float64
}

// NewBox builds a box shape.
func NewBox(width, height float64) *Box {
	diag.Assertf(width > 0 && height > 0, "width > 0 && height > 0",
		"box %vx%v", width, height)
	return &Box{Width: width, Height: height}
}

func (b *Box) Kind() Kind { return KindBox }

func (b *Box) BB(pos cp.Vector) cp.BB {
	return cp.NewBBForExtents(pos, b.Width/2, b.Height/2)
}

func (b *Box) Moment(mass float64) float64 {
	return cp.MomentForBox(mass, b.Width, b.Height)
}

func (b *Box) Area() float64 {
	return b.Width * b.Height
}
