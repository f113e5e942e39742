package world

import (
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/rigid/arena"
	"github.com/milk9111/rigid/diag"
	"github.com/milk9111/rigid/jobs"
	"github.com/milk9111/rigid/layer"
)

// bpEntry is one body's bounds inside a broadphase layer. idx points into
// World.bodies and is only valid for the current step.
type bpEntry struct {
	idx int32
	bb  cp.BB
}

// bpLayer is the bounding structure for one broadphase layer: entries
// sorted by left edge, swept during pair collection. Buffers persist across
// steps to avoid churn; contents are rebuilt every collision step.
type bpLayer struct {
	entries []bpEntry
}

// bodyPair is a broadphase candidate pair, indices into World.bodies.
type bodyPair struct {
	a, b int32
}

// rebuildBroadPhase refreshes every layer's bounding structure, one job per
// broadphase layer.
func (w *World) rebuildBroadPhase(pool *jobs.Pool) {
	bar := pool.Barrier()
	defer bar.Release()
	for i := range w.layers {
		bpl := layer.BroadPhaseLayer(i)
		lay := &w.layers[i]
		bar.Run(func() {
			lay.entries = lay.entries[:0]
			for bi, b := range w.bodies {
				if w.bpMap.BroadPhaseLayer(b.layer) != bpl {
					continue
				}
				lay.entries = append(lay.entries, bpEntry{idx: int32(bi), bb: b.bb})
			}
			sort.Slice(lay.entries, func(a, b int) bool {
				return lay.entries[a].bb.L < lay.entries[b].bb.L
			})
		})
	}
	bar.Wait()
}

// collectPairs sweeps the broadphase layers for candidate pairs. Only
// dynamic bodies initiate queries; each layer is pre-filtered with the
// coarse object-vs-broadphase-layer predicate before per-body tests, then
// the fine object-layer pair filter and a bounds overlap decide. Pairs live
// in the scratch arena and are capped at MaxBodyPairs.
func (w *World) collectPairs(scratch *arena.Arena) []bodyPair {
	pairs := arena.AllocSlice[bodyPair](scratch, w.cfg.MaxBodyPairs)
	count := 0
	for bi, b := range w.bodies {
		if b.motion != MotionDynamic {
			continue
		}
		for li := range w.layers {
			if !w.bpFilter(b.layer, layer.BroadPhaseLayer(li)) {
				continue
			}
			for _, e := range w.layers[li].entries {
				if e.bb.L > b.bb.R {
					break // sorted by left edge, nothing further can overlap
				}
				if e.bb.R < b.bb.L || e.bb.B > b.bb.T || e.bb.T < b.bb.B {
					continue
				}
				o := w.bodies[e.idx]
				if o == b {
					continue
				}
				// both dynamic: pair once, initiated by the lower id
				if o.motion == MotionDynamic && o.id < b.id {
					continue
				}
				if !w.pairFilter(b.layer, o.layer) {
					continue
				}
				diag.Assertf(count < w.cfg.MaxBodyPairs, "pairCount < MaxBodyPairs",
					"body pair capacity exceeded (max %d)", w.cfg.MaxBodyPairs)
				pairs[count] = bodyPair{a: int32(bi), b: e.idx}
				count++
			}
		}
	}
	return pairs[:count]
}
