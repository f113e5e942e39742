// Package world owns the mutable simulation aggregate: bodies, the
// per-layer broadphase structures and the contact solver. Capacity limits
// for bodies, body pairs and contact constraints are fixed at construction
// and sized for the host's worst case; exceeding one is a fatal capacity
// fault, never silent growth. The collision filters and the broadphase
// layer mapping are wired in at construction and consulted for every
// candidate pair.
package world

import (
	"sync/atomic"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/rigid/arena"
	"github.com/milk9111/rigid/diag"
	"github.com/milk9111/rigid/jobs"
	"github.com/milk9111/rigid/layer"
	"github.com/milk9111/rigid/shape"
)

// Config carries the fixed capacity limits and solver tuning for a world.
type Config struct {
	MaxBodies             int
	MaxBodyPairs          int
	MaxContactConstraints int
	Gravity               cp.Vector
	Iterations            int
}

// ContactEvent reports one solved contact of a collision step.
type ContactEvent struct {
	A, B   BodyID
	Point  cp.Vector
	Normal cp.Vector // points from A to B
	Depth  float64
}

// ContactListener receives contact events after each collision step's solve
// phase, on the goroutine that called Update.
type ContactListener func(ContactEvent)

// World is the simulation aggregate. Exactly one Update may be in flight at
// a time, and hosts mutate bodies only between Update calls.
type World struct {
	cfg        Config
	bpMap      *layer.BroadPhaseLayerMap
	pairFilter layer.PairFilter
	bpFilter   layer.BroadPhaseFilter

	bodies []*Body
	index  map[BodyID]int32
	nextID BodyID

	layers [layer.NumBroadPhaseLayers]bpLayer

	listener ContactListener
	stepping atomic.Bool
}

// New builds a world with fixed capacity limits, wiring in the broadphase
// layer mapping and both collision filters.
func New(cfg Config, m *layer.BroadPhaseLayerMap, pair layer.PairFilter, bp layer.BroadPhaseFilter) *World {
	diag.Assert(m != nil, "mapper != nil", "world built without broadphase layer map")
	diag.Assert(pair != nil, "pairFilter != nil", "world built without object layer filter")
	diag.Assert(bp != nil, "broadPhaseFilter != nil", "world built without broadphase filter")
	diag.Assertf(cfg.MaxBodies > 0, "MaxBodies > 0", "MaxBodies %d", cfg.MaxBodies)
	diag.Assertf(cfg.MaxBodyPairs > 0, "MaxBodyPairs > 0", "MaxBodyPairs %d", cfg.MaxBodyPairs)
	diag.Assertf(cfg.MaxContactConstraints > 0, "MaxContactConstraints > 0",
		"MaxContactConstraints %d", cfg.MaxContactConstraints)
	if cfg.Iterations < 1 {
		cfg.Iterations = 1
	}
	return &World{
		cfg:    cfg,
		bpMap:  m,
		pairFilter: pair,
		bpFilter:   bp,
		bodies: make([]*Body, 0, cfg.MaxBodies),
		index:  make(map[BodyID]int32, cfg.MaxBodies),
	}
}

// SetContactListener installs the contact event callback. Host-side, between
// steps.
func (w *World) SetContactListener(fn ContactListener) {
	w.assertNotStepping()
	w.listener = fn
}

// SetGravity applies new gravity between steps.
func (w *World) SetGravity(g cp.Vector) {
	w.assertNotStepping()
	w.cfg.Gravity = g
}

// Gravity returns the current gravity vector.
func (w *World) Gravity() cp.Vector { return w.cfg.Gravity }

// SetIterations applies a new solver iteration count between steps.
func (w *World) SetIterations(n int) {
	w.assertNotStepping()
	diag.Assertf(n >= 1, "iterations >= 1", "iterations %d", n)
	w.cfg.Iterations = n
}

// CreateBody adds a body to the world. Creating more than MaxBodies is a
// capacity fault.
func (w *World) CreateBody(s BodySettings) *Body {
	w.assertNotStepping()
	diag.Assert(s.Shape != nil, "settings.Shape != nil", "body created without shape")
	diag.Assert(shape.Instance != nil, "shape.Instance != nil",
		"body created before shape registry install")
	diag.Assertf(shape.Instance.Registered(s.Shape.Kind()), "shape kind registered",
		"shape kind %d not registered", s.Shape.Kind())
	diag.Assertf(s.Layer.Valid(), "settings.Layer < NumObjectLayers",
		"unknown object layer %d", s.Layer)
	diag.Assertf(len(w.bodies) < w.cfg.MaxBodies, "BodyCount < MaxBodies",
		"body capacity exceeded (max %d)", w.cfg.MaxBodies)

	invMass := 0.0
	if s.Motion == MotionDynamic {
		mass := s.Mass
		if mass <= 0 {
			mass = 1
		}
		invMass = 1 / mass
	}

	w.nextID++
	b := &Body{
		id:          w.nextID,
		shape:       s.Shape,
		layer:       s.Layer,
		motion:      s.Motion,
		pos:         s.Position,
		vel:         s.Velocity,
		bb:          s.Shape.BB(s.Position),
		invMass:     invMass,
		restitution: s.Restitution,
		friction:    s.Friction,
	}
	w.index[b.id] = int32(len(w.bodies))
	w.bodies = append(w.bodies, b)
	return b
}

// DestroyBody removes a body from the world.
func (w *World) DestroyBody(b *Body) {
	w.assertNotStepping()
	diag.Assert(b != nil, "body != nil", "nil body destroyed")
	i, ok := w.index[b.id]
	diag.Assertf(ok, "body registered", "body %d destroyed twice or never created", b.id)

	last := int32(len(w.bodies) - 1)
	if i != last {
		moved := w.bodies[last]
		w.bodies[i] = moved
		w.index[moved.id] = i
	}
	w.bodies = w.bodies[:last]
	delete(w.index, b.id)
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int { return len(w.bodies) }

// Lookup returns the body with the given id, or nil.
func (w *World) Lookup(id BodyID) *Body {
	i, ok := w.index[id]
	if !ok {
		return nil
	}
	return w.bodies[i]
}

// ForEachBody visits every live body. Host-side, between steps.
func (w *World) ForEachBody(fn func(*Body)) {
	for _, b := range w.bodies {
		fn(b)
	}
}

// Update advances the world by dt, subdivided into collisionSteps discrete
// detect-and-solve passes with subSteps integration substeps each. Blocks
// until the whole step completes. Scratch is fully rewound by exit; the
// collision steps run strictly in sequence while work inside one step fans
// out across the job pool.
func (w *World) Update(dt float64, collisionSteps, subSteps int, scratch *arena.Arena, pool *jobs.Pool) {
	diag.Assertf(dt >= 0, "dt >= 0", "negative delta time %v", dt)
	diag.Assertf(collisionSteps >= 1, "collisionSteps >= 1", "collisionSteps %d", collisionSteps)
	diag.Assertf(subSteps >= 1, "integrationSubSteps >= 1", "integrationSubSteps %d", subSteps)
	diag.Assert(scratch != nil, "scratch != nil", "Update without scratch arena")
	diag.Assert(pool != nil, "pool != nil", "Update without job pool")
	diag.Assert(w.stepping.CompareAndSwap(false, true), "one Update in flight",
		"reentrant Update on world")
	defer w.stepping.Store(false)

	if dt == 0 {
		return
	}

	h := dt / float64(collisionSteps)
	for step := 0; step < collisionSteps; step++ {
		mark := scratch.Mark()

		w.integrate(h, subSteps, pool)
		w.rebuildBroadPhase(pool)
		pairs := w.collectPairs(scratch)
		contacts := w.narrowPhase(pairs, scratch, pool)
		w.solve(contacts)
		w.fireContacts(contacts)

		scratch.Rewind(mark)
	}
}

// integrate applies gravity and advances dynamic bodies through the
// integration substeps, fanning body chunks out across the pool.
func (w *World) integrate(h float64, subSteps int, pool *jobs.Pool) {
	n := len(w.bodies)
	if n == 0 {
		return
	}
	sh := h / float64(subSteps)
	gravity := w.cfg.Gravity

	bar := pool.Barrier()
	defer bar.Release()
	chunk := (n + pool.Workers() - 1) / pool.Workers()
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		bodies := w.bodies[start:end]
		bar.Run(func() {
			for _, b := range bodies {
				if b.motion != MotionDynamic {
					continue
				}
				for s := 0; s < subSteps; s++ {
					b.vel = b.vel.Add(gravity.Mult(sh))
					b.pos = b.pos.Add(b.vel.Mult(sh))
				}
				b.bb = b.shape.BB(b.pos)
			}
		})
	}
	bar.Wait()
}

func (w *World) fireContacts(contacts []contact) {
	if w.listener == nil {
		return
	}
	for i := range contacts {
		c := &contacts[i]
		w.listener(ContactEvent{
			A:      w.bodies[c.a].id,
			B:      w.bodies[c.b].id,
			Point:  c.point,
			Normal: c.normal,
			Depth:  c.depth,
		})
	}
}

func (w *World) assertNotStepping() {
	diag.Assert(!w.stepping.Load(), "no Update in flight",
		"world mutated during Update")
}
