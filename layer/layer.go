// Package layer defines the two-tier collision layer taxonomy: object
// layers tag individual bodies, broadphase layers select which bounding
// structure a body lives in. Both sets are fixed at build time; an index
// outside either set is a programming fault, never a recoverable error.
package layer

import "github.com/milk9111/rigid/diag"

// ObjectLayer classifies a body for collision-eligibility policy.
type ObjectLayer uint8

const (
	// ObjectLayerNonMoving tags static geometry. Non-moving bodies only
	// ever collide with moving ones.
	ObjectLayerNonMoving ObjectLayer = iota
	// ObjectLayerMoving tags dynamic bodies, which collide with everything.
	ObjectLayerMoving

	// NumObjectLayers is the cardinality of the object layer set.
	NumObjectLayers = 2
)

// BroadPhaseLayer selects the broadphase bounding structure a body is
// stored in.
type BroadPhaseLayer uint8

const (
	BroadPhaseLayerNonMoving BroadPhaseLayer = iota
	BroadPhaseLayerMoving

	// NumBroadPhaseLayers is the cardinality of the broadphase layer set.
	NumBroadPhaseLayers = 2
)

func (l ObjectLayer) String() string {
	switch l {
	case ObjectLayerNonMoving:
		return "NON_MOVING"
	case ObjectLayerMoving:
		return "MOVING"
	default:
		return "INVALID"
	}
}

func (l BroadPhaseLayer) String() string {
	switch l {
	case BroadPhaseLayerNonMoving:
		return "NON_MOVING"
	case BroadPhaseLayerMoving:
		return "MOVING"
	default:
		return "INVALID"
	}
}

// Valid reports whether l is inside the known object layer set.
func (l ObjectLayer) Valid() bool { return int(l) < NumObjectLayers }

// Valid reports whether l is inside the known broadphase layer set.
func (l BroadPhaseLayer) Valid() bool { return int(l) < NumBroadPhaseLayers }

func assertObjectLayer(l ObjectLayer) {
	diag.Assertf(l.Valid(), "objectLayer < NumObjectLayers",
		"unknown object layer %d", l)
}
