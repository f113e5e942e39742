// Command fall runs a headless simulation: a static ground with a fenced
// arena and a stack of falling circles, stepped at a fixed rate while
// logging contact counts and scratch arena stats.
package main

import (
	"flag"
	"log"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/rigid/layer"
	"github.com/milk9111/rigid/shape"
	"github.com/milk9111/rigid/sim"
	"github.com/milk9111/rigid/world"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	seconds := flag.Float64("seconds", 5, "simulated seconds to run")
	balls := flag.Int("balls", 50, "number of falling circles")
	collisionSteps := flag.Int("steps", 1, "collision steps per frame")
	subSteps := flag.Int("substeps", 1, "integration substeps per collision step")
	flag.Parse()

	cfg := sim.DefaultConfig()
	if *configPath != "" {
		loaded, err := sim.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	d := sim.New(cfg)
	defer d.Close()

	buildScene(d.World(), *balls)

	var contacts int
	d.World().SetContactListener(func(world.ContactEvent) { contacts++ })

	const frame = 1.0 / 60.0
	frames := int(*seconds / frame)
	for i := 0; i < frames; i++ {
		d.Step(frame, *collisionSteps, *subSteps)
		if (i+1)%60 == 0 {
			log.Printf("t=%.1fs bodies=%d contacts=%d arena high water=%d",
				float64(i+1)*frame, d.World().BodyCount(), contacts, d.Arena().HighWater())
		}
	}

	d.World().ForEachBody(func(b *world.Body) {
		if b.Motion() != world.MotionDynamic {
			return
		}
		p := b.Position()
		log.Printf("body %d rests at (%.1f, %.1f)", b.ID(), p.X, p.Y)
	})
}

func buildScene(w *world.World, balls int) {
	const width, height = 800.0, 600.0

	w.CreateBody(world.BodySettings{
		Shape:    shape.NewBox(width, 40),
		Layer:    layer.ObjectLayerNonMoving,
		Motion:   world.MotionStatic,
		Position: cp.Vector{X: width / 2, Y: height - 20},
		Friction: 0.8,
	})
	for _, seg := range []struct{ a, b cp.Vector }{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: height}},
		{a: cp.Vector{X: width, Y: 0}, b: cp.Vector{X: width, Y: height}},
	} {
		w.CreateBody(world.BodySettings{
			Shape:    shape.NewSegment(seg.a, seg.b, 1),
			Layer:    layer.ObjectLayerNonMoving,
			Motion:   world.MotionStatic,
			Friction: 0.8,
		})
	}

	for i := 0; i < balls; i++ {
		col := i % 10
		row := i / 10
		w.CreateBody(world.BodySettings{
			Shape:       shape.NewCircle(10),
			Layer:       layer.ObjectLayerMoving,
			Motion:      world.MotionDynamic,
			Position:    cp.Vector{X: 100 + float64(col)*60 + float64(row%2)*7, Y: 50 - float64(row)*30},
			Mass:        1,
			Restitution: 0.3,
			Friction:    0.6,
		})
	}
}
