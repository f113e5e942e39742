package sim

import (
	"runtime"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/rigid/arena"
	"github.com/milk9111/rigid/diag"
	"github.com/milk9111/rigid/jobs"
	"github.com/milk9111/rigid/layer"
	"github.com/milk9111/rigid/shape"
	"github.com/milk9111/rigid/world"
)

const (
	// maxJobs bounds the jobs that may be scheduled concurrently inside one
	// step; maxBarriers bounds the phase fan-ins held at once.
	maxJobs     = 256
	maxBarriers = 8
)

// Driver owns the simulation world's lifecycle: the shape registry
// singleton, the scratch arena, the worker job pool and the world itself.
// At most one driver may be live in a process; constructing a second while
// one is up is a programming fault. Close tears everything down in reverse
// construction order.
type Driver struct {
	cfg    Config
	arena  *arena.Arena
	pool   *jobs.Pool
	bpMap  *layer.BroadPhaseLayerMap
	world  *world.World
	closed bool
}

// New builds a driver. Diagnostic sinks install first since everything
// after may already report through them.
func New(cfg Config) *Driver {
	if cfg.Trace != nil {
		diag.SetTrace(cfg.Trace)
	}
	if cfg.AssertFailed != nil {
		diag.SetAssertFailed(cfg.AssertFailed)
	}
	cfg.normalize()

	reg := shape.Install()
	reg.RegisterTypes()

	workers := cfg.Workers
	if workers <= 0 {
		// leave one execution unit to the host thread calling Step
		workers = runtime.NumCPU() - 1
	}

	bpMap := layer.NewBroadPhaseLayerMap()
	d := &Driver{
		cfg:   cfg,
		arena: arena.New(cfg.ArenaSize),
		pool:  jobs.NewPool(workers, maxJobs, maxBarriers),
		bpMap: bpMap,
		world: world.New(world.Config{
			MaxBodies:             cfg.MaxBodies,
			MaxBodyPairs:          cfg.MaxBodyPairs,
			MaxContactConstraints: cfg.MaxContactConstraints,
			Gravity:               cp.Vector{X: cfg.GravityX, Y: cfg.GravityY},
			Iterations:            cfg.Iterations,
		}, bpMap, layer.CanCollide, layer.CanCollideBroadPhase),
	}
	diag.Tracef("sim: driver up: %d workers, %d byte arena, caps %d/%d/%d",
		d.pool.Workers(), d.arena.Size(),
		cfg.MaxBodies, cfg.MaxBodyPairs, cfg.MaxContactConstraints)
	return d
}

// Step advances the simulation by dt seconds, subdivided into
// collisionSteps detect-and-solve passes of integrationSubSteps substeps
// each. Synchronous: it blocks until the whole step, including all fanned
// out jobs, completes. The scratch arena is reset at entry and must be
// drained again by exit.
func (d *Driver) Step(dt float64, collisionSteps, integrationSubSteps int) {
	diag.Assert(!d.closed, "!driver.closed", "Step after Close")
	d.arena.Reset()
	d.world.Update(dt, collisionSteps, integrationSubSteps, d.arena, d.pool)
	diag.Assertf(d.arena.Used() == 0, "arena.Used() == 0",
		"scratch arena leaked %d bytes across step", d.arena.Used())
}

// World returns the non-owning handle collaborators use to create, destroy
// and query bodies between steps. Single-threaded host-side mutation only.
func (d *Driver) World() *world.World { return d.world }

// Arena exposes scratch usage stats for sizing the block to the worst case.
func (d *Driver) Arena() *arena.Arena { return d.arena }

// ApplyTuning applies reloadable tuning between steps, typically after a
// config watcher event. Capacity fields are fixed at construction and
// ignored here.
func (d *Driver) ApplyTuning(cfg Config) {
	diag.Assert(!d.closed, "!driver.closed", "ApplyTuning after Close")
	d.world.SetGravity(cp.Vector{X: cfg.GravityX, Y: cfg.GravityY})
	if cfg.Iterations >= 1 {
		d.world.SetIterations(cfg.Iterations)
	}
}

// Close tears the driver down: job pool first, then the shape registry
// singleton, reverse of construction. Closing twice is a programming fault.
func (d *Driver) Close() {
	diag.Assert(!d.closed, "!driver.closed", "driver closed twice")
	d.closed = true
	d.pool.Close()
	shape.Uninstall()
	diag.Tracef("sim: driver down, arena high water %d bytes", d.arena.HighWater())
}
