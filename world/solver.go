package world

import (
	"math"

	"github.com/milk9111/rigid/common"
)

const (
	// penetrationSlop is how much overlap the solver tolerates before
	// pushing bodies apart, keeping resting contacts from jittering.
	penetrationSlop = 0.01
	// correctionPercent is the share of remaining penetration removed per
	// step.
	correctionPercent = 0.8
)

// solve runs the velocity solver over the step's contacts for the
// configured iteration count, then removes residual penetration. Sequential
// on purpose: contacts share bodies, so impulse application has data
// dependencies the job pool must not reorder.
func (w *World) solve(contacts []contact) {
	for iter := 0; iter < w.cfg.Iterations; iter++ {
		for i := range contacts {
			c := &contacts[i]
			a := w.bodies[c.a]
			b := w.bodies[c.b]
			invSum := a.invMass + b.invMass
			if invSum == 0 {
				continue
			}

			rv := b.vel.Sub(a.vel)
			vn := rv.Dot(c.normal)
			if vn > 0 {
				continue
			}

			e := math.Min(a.restitution, b.restitution)
			j := -(1 + e) * vn / invSum
			impulse := c.normal.Mult(j)
			a.vel = a.vel.Sub(impulse.Mult(a.invMass))
			b.vel = b.vel.Add(impulse.Mult(b.invMass))

			rv = b.vel.Sub(a.vel)
			tangent := rv.Sub(c.normal.Mult(rv.Dot(c.normal)))
			if tl := tangent.Length(); tl > 1e-9 {
				tangent = tangent.Mult(1 / tl)
				jt := -rv.Dot(tangent) / invSum
				mu := math.Sqrt(a.friction * b.friction)
				jt = common.Clamp(jt, -j*mu, j*mu)
				friction := tangent.Mult(jt)
				a.vel = a.vel.Sub(friction.Mult(a.invMass))
				b.vel = b.vel.Add(friction.Mult(b.invMass))
			}
		}
	}

	for i := range contacts {
		c := &contacts[i]
		a := w.bodies[c.a]
		b := w.bodies[c.b]
		invSum := a.invMass + b.invMass
		if invSum == 0 {
			continue
		}
		depth := c.depth - penetrationSlop
		if depth <= 0 {
			continue
		}
		correction := c.normal.Mult(correctionPercent * depth / invSum)
		if a.invMass > 0 {
			a.pos = a.pos.Sub(correction.Mult(a.invMass))
			a.bb = a.shape.BB(a.pos)
		}
		if b.invMass > 0 {
			b.pos = b.pos.Add(correction.Mult(b.invMass))
			b.bb = b.shape.BB(b.pos)
		}
	}
}
