// Package shape holds the geometry the simulation collides: circles, boxes
// and segments, plus the process-wide type registry the driver installs
// before any body exists. Geometry math comes from github.com/jakecoffman/cp.
package shape

import "github.com/jakecoffman/cp"

// Kind identifies a shape type in the registry.
type Kind uint8

const (
	KindCircle Kind = iota
	KindBox
	KindSegment

	numKinds = 3
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindBox:
		return "box"
	case KindSegment:
		return "segment"
	default:
		return "invalid"
	}
}

// Shape is the opaque geometry attached to a body. Implementations are
// immutable after construction.
type Shape interface {
	Kind() Kind
	// BB returns the bounding box of the shape placed at pos.
	BB(pos cp.Vector) cp.BB
	// Moment returns the moment of inertia for the given mass.
	Moment(mass float64) float64
	Area() float64
}
