// Command viewer opens a window drawing the simulation's shapes while it
// steps, for eyeballing layer filtering and solver behavior. Click to drop
// circles.
package main

import (
	"flag"
	"image/color"
	"log"
	"math"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/rigid/layer"
	"github.com/milk9111/rigid/shape"
	"github.com/milk9111/rigid/sim"
	"github.com/milk9111/rigid/world"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

var (
	staticColor  = color.RGBA{R: 0x66, G: 0xb2, B: 0xff, A: 0xff}
	dynamicColor = color.RGBA{R: 0xe5, G: 0x66, B: 0xe5, A: 0xff}
)

type viewer struct {
	driver    *sim.Driver
	watcher   *sim.Watcher
	maxBodies int
}

func (v *viewer) Update() error {
	if v.watcher != nil {
		select {
		case path := <-v.watcher.Events:
			cfg, err := sim.LoadConfig(path)
			if err != nil {
				log.Printf("config reload: %v", err)
				break
			}
			v.driver.ApplyTuning(cfg)
			log.Printf("config reloaded from %s", path)
		default:
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) &&
		v.driver.World().BodyCount() < v.maxBodies {
		mx, my := ebiten.CursorPosition()
		v.driver.World().CreateBody(world.BodySettings{
			Shape:       shape.NewCircle(12),
			Layer:       layer.ObjectLayerMoving,
			Motion:      world.MotionDynamic,
			Position:    cp.Vector{X: float64(mx), Y: float64(my)},
			Mass:        1,
			Restitution: 0.4,
			Friction:    0.6,
		})
	}

	v.driver.Step(1.0/60.0, 1, 1)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{A: 0xff})
	v.driver.World().ForEachBody(func(b *world.Body) {
		c := dynamicColor
		if b.Motion() == world.MotionStatic {
			c = staticColor
		}
		switch s := b.Shape().(type) {
		case *shape.Circle:
			drawCircle(screen, b.Position(), s.Radius, c)
		case *shape.Box:
			bb := b.BB()
			ebitenutil.DrawLine(screen, bb.L, bb.B, bb.R, bb.B, c)
			ebitenutil.DrawLine(screen, bb.R, bb.B, bb.R, bb.T, c)
			ebitenutil.DrawLine(screen, bb.R, bb.T, bb.L, bb.T, c)
			ebitenutil.DrawLine(screen, bb.L, bb.T, bb.L, bb.B, c)
		case *shape.Segment:
			a := b.Position().Add(s.A)
			bp := b.Position().Add(s.B)
			ebitenutil.DrawLine(screen, a.X, a.Y, bp.X, bp.Y, c)
		}
	})
}

func drawCircle(screen *ebiten.Image, pos cp.Vector, radius float64, c color.Color) {
	steps := 20
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / float64(steps))
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		ebitenutil.DrawLine(screen, prev.X, prev.Y, cur.X, cur.Y, c)
		prev = cur
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	flag.Parse()

	cfg := sim.DefaultConfig()
	var watcher *sim.Watcher
	if *configPath != "" {
		loaded, err := sim.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded

		watcher, err = sim.NewWatcher(filepath.Dir(*configPath))
		if err != nil {
			log.Fatal(err)
		}
		defer watcher.Close()
	}

	d := sim.New(cfg)
	defer d.Close()

	w := d.World()
	w.CreateBody(world.BodySettings{
		Shape:    shape.NewBox(screenWidth, 40),
		Layer:    layer.ObjectLayerNonMoving,
		Motion:   world.MotionStatic,
		Position: cp.Vector{X: screenWidth / 2, Y: screenHeight - 20},
		Friction: 0.8,
	})
	w.CreateBody(world.BodySettings{
		Shape:    shape.NewSegment(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 0, Y: screenHeight}, 1),
		Layer:    layer.ObjectLayerNonMoving,
		Motion:   world.MotionStatic,
		Friction: 0.8,
	})
	w.CreateBody(world.BodySettings{
		Shape:    shape.NewSegment(cp.Vector{X: screenWidth, Y: 0}, cp.Vector{X: screenWidth, Y: screenHeight}, 1),
		Layer:    layer.ObjectLayerNonMoving,
		Motion:   world.MotionStatic,
		Friction: 0.8,
	})

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("rigid viewer")
	if err := ebiten.RunGame(&viewer{driver: d, watcher: watcher, maxBodies: cfg.MaxBodies}); err != nil {
		log.Fatal(err)
	}
}
