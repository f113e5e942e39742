package world

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/rigid/arena"
	"github.com/milk9111/rigid/diag"
	"github.com/milk9111/rigid/jobs"
	"github.com/milk9111/rigid/shape"
)

// contact is one narrow-phase result, allocated from the scratch arena.
// Body references are indices into World.bodies so the arena block stays
// pointer-free.
type contact struct {
	a, b   int32
	point  cp.Vector
	normal cp.Vector // from a to b
	depth  float64
	ok     bool
}

// narrowPhase runs precise contact generation over the candidate pairs,
// fanning pair chunks out across the pool. Each job writes disjoint slots
// of the candidate slice; the surviving contacts are compacted afterwards
// and capped at MaxContactConstraints.
func (w *World) narrowPhase(pairs []bodyPair, scratch *arena.Arena, pool *jobs.Pool) []contact {
	if len(pairs) == 0 {
		return nil
	}
	candidates := arena.AllocSlice[contact](scratch, len(pairs))

	bar := pool.Barrier()
	chunk := (len(pairs) + pool.Workers() - 1) / pool.Workers()
	for start := 0; start < len(pairs); start += chunk {
		end := start + chunk
		if end > len(pairs) {
			end = len(pairs)
		}
		in := pairs[start:end]
		out := candidates[start:end]
		bar.Run(func() {
			for i := range in {
				out[i] = w.collide(in[i].a, in[i].b)
			}
		})
	}
	bar.Wait()
	bar.Release()

	count := 0
	for i := range candidates {
		if !candidates[i].ok {
			continue
		}
		diag.Assertf(count < w.cfg.MaxContactConstraints,
			"contactCount < MaxContactConstraints",
			"contact constraint capacity exceeded (max %d)", w.cfg.MaxContactConstraints)
		candidates[count] = candidates[i]
		count++
	}
	return candidates[:count]
}

// collide dispatches on the pair's shape kinds. The contact normal always
// points from a to b.
func (w *World) collide(ai, bi int32) contact {
	a := w.bodies[ai]
	b := w.bodies[bi]

	flipped := false
	if a.shape.Kind() > b.shape.Kind() {
		a, b = b, a
		ai, bi = bi, ai
		flipped = true
	}

	var c contact
	switch sa := a.shape.(type) {
	case *shape.Circle:
		switch sb := b.shape.(type) {
		case *shape.Circle:
			c = circleCircle(a.pos, sa.Radius, b.pos, sb.Radius)
		case *shape.Box:
			c = circleBox(a.pos, sa.Radius, b)
		case *shape.Segment:
			c = circleSegment(a.pos, sa.Radius, b.pos, sb)
		}
	case *shape.Box:
		switch b.shape.(type) {
		case *shape.Box:
			c = boxBox(a.bb, b.bb)
		case *shape.Segment:
			// ground segments are thin and axis-friendly enough that the
			// box-vs-segment case reduces to a bounds pushout
			c = boxBox(a.bb, b.bb)
		}
	case *shape.Segment:
		// segment pairs are static geometry, pruned by the layer filters
	}

	if !c.ok {
		return c
	}
	c.a, c.b = ai, bi
	if flipped {
		c.a, c.b = bi, ai
		c.normal = c.normal.Neg()
	}
	return c
}

func circleCircle(pa cp.Vector, ra float64, pb cp.Vector, rb float64) contact {
	d := pb.Sub(pa)
	dist := d.Length()
	rsum := ra + rb
	if dist >= rsum {
		return contact{}
	}
	normal := cp.Vector{X: 0, Y: 1}
	if dist > 1e-9 {
		normal = d.Mult(1 / dist)
	}
	return contact{
		point:  pa.Add(normal.Mult(ra)),
		normal: normal,
		depth:  rsum - dist,
		ok:     true,
	}
}

func circleBox(center cp.Vector, radius float64, box *Body) contact {
	bb := box.bb
	closest := cp.Vector{
		X: math.Min(math.Max(center.X, bb.L), bb.R),
		Y: math.Min(math.Max(center.Y, bb.B), bb.T),
	}
	d := closest.Sub(center)
	dist := d.Length()
	if dist > 1e-9 {
		if dist >= radius {
			return contact{}
		}
		normal := d.Mult(1 / dist)
		return contact{
			point:  closest,
			normal: normal,
			depth:  radius - dist,
			ok:     true,
		}
	}
	// center inside the box: push out along the shallowest axis
	c := boxBox(cp.NewBBForCircle(center, radius), bb)
	return c
}

func circleSegment(center cp.Vector, radius float64, segPos cp.Vector, seg *shape.Segment) contact {
	a := segPos.Add(seg.A)
	b := segPos.Add(seg.B)
	ab := b.Sub(a)
	t := 0.0
	if l2 := ab.Dot(ab); l2 > 1e-12 {
		t = math.Min(math.Max(center.Sub(a).Dot(ab)/l2, 0), 1)
	}
	closest := a.Add(ab.Mult(t))
	return circleCircle(center, radius, closest, seg.Radius)
}

// boxBox resolves two axis-aligned bounds along the minimum penetration
// axis.
func boxBox(a, b cp.BB) contact {
	overlapX := math.Min(a.R, b.R) - math.Max(a.L, b.L)
	overlapY := math.Min(a.T, b.T) - math.Max(a.B, b.B)
	if overlapX <= 0 || overlapY <= 0 {
		return contact{}
	}
	ca := cp.Vector{X: (a.L + a.R) / 2, Y: (a.B + a.T) / 2}
	cb := cp.Vector{X: (b.L + b.R) / 2, Y: (b.B + b.T) / 2}
	point := cp.Vector{
		X: (math.Max(a.L, b.L) + math.Min(a.R, b.R)) / 2,
		Y: (math.Max(a.B, b.B) + math.Min(a.T, b.T)) / 2,
	}
	if overlapX < overlapY {
		normal := cp.Vector{X: 1}
		if cb.X < ca.X {
			normal.X = -1
		}
		return contact{point: point, normal: normal, depth: overlapX, ok: true}
	}
	normal := cp.Vector{Y: 1}
	if cb.Y < ca.Y {
		normal.Y = -1
	}
	return contact{point: point, normal: normal, depth: overlapY, ok: true}
}
