package layer

import "github.com/milk9111/rigid/diag"

// BroadPhaseLayerMap is the object-layer to broadphase-layer lookup table.
// The table is populated at construction and read-only afterwards; lookups
// are pure and constant-time. The default mapping is 1:1, but the table
// itself permits many object layers sharing one broadphase layer.
type BroadPhaseLayerMap struct {
	table [NumObjectLayers]BroadPhaseLayer
}

// NewBroadPhaseLayerMap builds the default mapping: NON_MOVING and MOVING
// each get their own broadphase tree.
func NewBroadPhaseLayerMap() *BroadPhaseLayerMap {
	m := &BroadPhaseLayerMap{}
	m.table[ObjectLayerNonMoving] = BroadPhaseLayerNonMoving
	m.table[ObjectLayerMoving] = BroadPhaseLayerMoving
	return m
}

// BroadPhaseLayer returns the broadphase layer the given object layer maps
// to. An out-of-range object layer indicates a corrupted body or a taxonomy
// mismatch and is fatal.
func (m *BroadPhaseLayerMap) BroadPhaseLayer(l ObjectLayer) BroadPhaseLayer {
	assertObjectLayer(l)
	return m.table[l]
}

// NumLayers returns the number of broadphase layers in the mapping's range.
func (m *BroadPhaseLayerMap) NumLayers() int { return NumBroadPhaseLayers }

// LayerName returns a human-readable name for a broadphase layer. Debug
// capability only; simulation correctness never depends on it.
func (m *BroadPhaseLayerMap) LayerName(l BroadPhaseLayer) string {
	diag.Assertf(l.Valid(), "broadPhaseLayer < NumBroadPhaseLayers",
		"unknown broadphase layer %d", l)
	return l.String()
}
