package world

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/rigid/layer"
	"github.com/milk9111/rigid/shape"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func vecApprox(a, b cp.Vector) bool { return approx(a.X, b.X) && approx(a.Y, b.Y) }

func TestCircleCircle(t *testing.T) {
	cases := []struct {
		name       string
		pa         cp.Vector
		ra         float64
		pb         cp.Vector
		rb         float64
		hit        bool
		wantNormal cp.Vector
		wantDepth  float64
	}{
		{"separated", cp.Vector{X: 0}, 1, cp.Vector{X: 3}, 1, false, cp.Vector{}, 0},
		{"touching_is_no_contact", cp.Vector{X: 0}, 1, cp.Vector{X: 2}, 1, false, cp.Vector{}, 0},
		{"overlapping", cp.Vector{X: 0}, 2, cp.Vector{X: 3}, 2, true, cp.Vector{X: 1}, 1},
		{"diagonal", cp.Vector{}, 1, cp.Vector{X: 1, Y: 1}, 1, true,
			cp.Vector{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}, 2 - math.Sqrt2},
		{"concentric_falls_back_to_up", cp.Vector{X: 5, Y: 5}, 1, cp.Vector{X: 5, Y: 5}, 1, true,
			cp.Vector{Y: 1}, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := circleCircle(c.pa, c.ra, c.pb, c.rb)
			if got.ok != c.hit {
				t.Fatalf("ok = %v, want %v", got.ok, c.hit)
			}
			if !c.hit {
				return
			}
			if !vecApprox(got.normal, c.wantNormal) {
				t.Fatalf("normal = %+v, want %+v", got.normal, c.wantNormal)
			}
			if !approx(got.depth, c.wantDepth) {
				t.Fatalf("depth = %v, want %v", got.depth, c.wantDepth)
			}
		})
	}
}

func TestCircleBox(t *testing.T) {
	box := &Body{shape: shape.NewBox(10, 10)}
	box.SetPosition(cp.Vector{}) // bb {-5,-5,5,5}

	t.Run("face_contact", func(t *testing.T) {
		got := circleBox(cp.Vector{X: 0, Y: -7}, 3, box)
		if !got.ok {
			t.Fatalf("expected contact")
		}
		if !vecApprox(got.normal, cp.Vector{Y: 1}) {
			t.Fatalf("normal = %+v, want face normal {0 1}", got.normal)
		}
		if !approx(got.depth, 1) {
			t.Fatalf("depth = %v, want 1", got.depth)
		}
		if !vecApprox(got.point, cp.Vector{X: 0, Y: -5}) {
			t.Fatalf("point = %+v, want the clamped face point", got.point)
		}
	})

	t.Run("corner_miss", func(t *testing.T) {
		// diagonal distance to the corner is sqrt(8) > 2
		if got := circleBox(cp.Vector{X: 7, Y: 7}, 2, box); got.ok {
			t.Fatalf("corner miss reported contact: %+v", got)
		}
	})

	t.Run("corner_hit", func(t *testing.T) {
		got := circleBox(cp.Vector{X: 6, Y: 6}, 2, box)
		if !got.ok {
			t.Fatalf("expected corner contact")
		}
		want := cp.Vector{X: -math.Sqrt2 / 2, Y: -math.Sqrt2 / 2}
		if !vecApprox(got.normal, want) {
			t.Fatalf("normal = %+v, want %+v", got.normal, want)
		}
	})

	t.Run("center_inside", func(t *testing.T) {
		got := circleBox(cp.Vector{X: 4.5, Y: 0}, 1, box)
		if !got.ok {
			t.Fatalf("expected contact for center inside the box")
		}
		// shallowest pushout is through the right face
		if !vecApprox(got.normal, cp.Vector{X: -1}) {
			t.Fatalf("normal = %+v, want {-1 0}", got.normal)
		}
	})
}

func TestCircleSegment(t *testing.T) {
	seg := shape.NewSegment(cp.Vector{X: -10, Y: 0}, cp.Vector{X: 10, Y: 0}, 1)

	t.Run("above_midspan", func(t *testing.T) {
		got := circleSegment(cp.Vector{X: 0, Y: -3}, 3, cp.Vector{}, seg)
		if !got.ok {
			t.Fatalf("expected contact")
		}
		if !vecApprox(got.normal, cp.Vector{Y: 1}) {
			t.Fatalf("normal = %+v, want {0 1}", got.normal)
		}
		if !approx(got.depth, 1) {
			t.Fatalf("depth = %v, want 1", got.depth)
		}
	})

	t.Run("past_endpoint", func(t *testing.T) {
		// closest feature is the capped endpoint, not the infinite line
		got := circleSegment(cp.Vector{X: 13, Y: 0}, 3, cp.Vector{}, seg)
		if !got.ok {
			t.Fatalf("expected endpoint contact")
		}
		if !vecApprox(got.normal, cp.Vector{X: -1}) {
			t.Fatalf("normal = %+v, want {-1 0}", got.normal)
		}
		if !approx(got.depth, 1) {
			t.Fatalf("depth = %v, want 1", got.depth)
		}
	})

	t.Run("clear", func(t *testing.T) {
		if got := circleSegment(cp.Vector{X: 0, Y: -5}, 3, cp.Vector{}, seg); got.ok {
			t.Fatalf("non-touching segment reported contact: %+v", got)
		}
	})
}

func TestBoxBox(t *testing.T) {
	cases := []struct {
		name       string
		a, b       cp.BB
		hit        bool
		wantNormal cp.Vector
		wantDepth  float64
	}{
		{"separated", cp.BB{L: 0, B: 0, R: 2, T: 2}, cp.BB{L: 5, B: 0, R: 7, T: 2}, false, cp.Vector{}, 0},
		{"x_is_min_axis", cp.BB{L: 0, B: 0, R: 4, T: 10}, cp.BB{L: 3, B: 0, R: 7, T: 10}, true, cp.Vector{X: 1}, 1},
		{"y_is_min_axis", cp.BB{L: 0, B: 0, R: 10, T: 4}, cp.BB{L: 0, B: 3, R: 10, T: 7}, true, cp.Vector{Y: 1}, 1},
		{"normal_flips_toward_b", cp.BB{L: 3, B: 0, R: 7, T: 10}, cp.BB{L: 0, B: 0, R: 4, T: 10}, true, cp.Vector{X: -1}, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := boxBox(c.a, c.b)
			if got.ok != c.hit {
				t.Fatalf("ok = %v, want %v", got.ok, c.hit)
			}
			if !c.hit {
				return
			}
			if !vecApprox(got.normal, c.wantNormal) {
				t.Fatalf("normal = %+v, want %+v", got.normal, c.wantNormal)
			}
			if !approx(got.depth, c.wantDepth) {
				t.Fatalf("depth = %v, want %v", got.depth, c.wantDepth)
			}
		})
	}
}

func TestCollideNormalizesShapeOrder(t *testing.T) {
	env := newTestEnv(t, Config{})
	w := env.world

	box := w.CreateBody(BodySettings{
		Shape:    shape.NewBox(10, 10),
		Layer:    layer.ObjectLayerNonMoving,
		Motion:   MotionStatic,
		Position: cp.Vector{},
	})
	ball := w.CreateBody(movingCircle(cp.Vector{X: 0, Y: -6}, 2))

	boxIdx := w.index[box.ID()]
	ballIdx := w.index[ball.ID()]

	// the contact normal points from the first body of the pair to the
	// second, whichever order the pair arrives in
	forward := w.collide(ballIdx, boxIdx)
	backward := w.collide(boxIdx, ballIdx)
	if !forward.ok || !backward.ok {
		t.Fatalf("expected contact both ways: %+v / %+v", forward, backward)
	}
	if forward.a != ballIdx || forward.b != boxIdx {
		t.Fatalf("forward pair indices %d/%d, want %d/%d", forward.a, forward.b, ballIdx, boxIdx)
	}
	if backward.a != boxIdx || backward.b != ballIdx {
		t.Fatalf("backward pair indices %d/%d, want %d/%d", backward.a, backward.b, boxIdx, ballIdx)
	}
	if !vecApprox(forward.normal, backward.normal.Neg()) {
		t.Fatalf("normals not mirrored: %+v vs %+v", forward.normal, backward.normal)
	}
	if !approx(forward.depth, backward.depth) {
		t.Fatalf("depths differ: %v vs %v", forward.depth, backward.depth)
	}
}
