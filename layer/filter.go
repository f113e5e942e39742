package layer

// CanCollide decides whether two object layers may ever be considered for
// collision. Non-moving bodies only test against moving ones, so two pieces
// of static geometry are never paired; moving bodies test against
// everything. The engine may query either ordering.
func CanCollide(a, b ObjectLayer) bool {
	switch a {
	case ObjectLayerNonMoving:
		return b == ObjectLayerMoving
	case ObjectLayerMoving:
		return true
	default:
		assertObjectLayer(a)
		return false
	}
}

// CanCollideBroadPhase applies the same policy at broadphase-layer
// granularity. It runs before CanCollide so the broadphase can skip whole
// bounding structures without per-body tests.
func CanCollideBroadPhase(a ObjectLayer, b BroadPhaseLayer) bool {
	switch a {
	case ObjectLayerNonMoving:
		return b == BroadPhaseLayerMoving
	case ObjectLayerMoving:
		return true
	default:
		assertObjectLayer(a)
		return false
	}
}

// PairFilter is the signature the world consumes for the fine-grained
// object-layer test.
type PairFilter func(a, b ObjectLayer) bool

// BroadPhaseFilter is the signature the world consumes for the coarse
// object-vs-broadphase-layer pre-filter.
type BroadPhaseFilter func(a ObjectLayer, b BroadPhaseLayer) bool
