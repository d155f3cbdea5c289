package physics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/collisions/vmath"
)

const eps = 1e-9

func TestElastic_Conservation(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	for range 1000 {
		m1, m2 := rng.Float64()*10+0.1, rng.Float64()*10+0.1
		v1 := vmath.V(rng.NormFloat64(), rng.NormFloat64())
		v2 := vmath.V(rng.NormFloat64(), rng.NormFloat64())
		n := vmath.V(rng.NormFloat64(), rng.NormFloat64())

		u1, u2 := Elastic(m1, m2, v1, v2, n)

		p0 := v1.Scale(m1).Add(v2.Scale(m2))
		p1 := u1.Scale(m1).Add(u2.Scale(m2))
		if p0.Sub(p1).Length() > eps*(1+p0.Length()) {
			t.Errorf("momentum %v -> %v", p0, p1)
		}
		e0 := KineticEnergy(m1, v1) + KineticEnergy(m2, v2)
		e1 := KineticEnergy(m1, u1) + KineticEnergy(m2, u2)
		if math.Abs(e0-e1) > eps*(1+e0) {
			t.Errorf("energy %v -> %v", e0, e1)
		}

		// Tangential components unchanged
		tan := vmath.Normalize(n).Perp()
		if math.Abs(v1.Dot(tan)-u1.Dot(tan)) > eps || math.Abs(v2.Dot(tan)-u2.Dot(tan)) > eps {
			t.Errorf("tangential velocity changed")
		}
	}
}

func TestBallBall_HeadOn(t *testing.T) {
	p1, p2 := vmath.V(-2, 0), vmath.V(2, 0)
	v1, v2 := vmath.V(1, 0), vmath.V(-1, 0)

	dt := BallBall(p2.Sub(p1), v2.Sub(v1), 2)
	if dt != 1 {
		t.Fatalf("contact time = %v, want 1", dt)
	}

	c1, _ := Integrate(p1, v1, vmath.Vec{}, dt)
	c2, _ := Integrate(p2, v2, vmath.Vec{}, dt)
	u1, u2 := Elastic(1, 1, v1, v2, c2.Sub(c1))
	if u1 != vmath.V(-1, 0) || u2 != vmath.V(1, 0) {
		t.Errorf("post velocities %v %v", u1, u2)
	}
}

func TestBallBall_Receding(t *testing.T) {
	if dt := BallBall(vmath.V(4, 0), vmath.V(1, 0), 2); !math.IsNaN(dt) {
		t.Errorf("receding pair got dt %v", dt)
	}
	if dt := BallBall(vmath.V(4, 0), vmath.V(0, -1), 2); !math.IsNaN(dt) {
		t.Errorf("perpendicular miss got dt %v", dt)
	}
}

func TestBallSegment_GravityBounce(t *testing.T) {
	const (
		y0 = 10.0
		r  = 1.0
		g  = -10.0
	)
	floor := vmath.NewSegment(vmath.V(-5, 0), vmath.V(5, 0))
	p, v, grav := vmath.V(0, y0), vmath.V(0.5, 0), vmath.V(0, g)

	dt := BallSegment(p, v, grav, r, floor)
	// y0 + g t²/2 = r
	want := math.Sqrt(2 * (r - y0) / g)
	if math.Abs(dt-want) > eps {
		t.Fatalf("contact time = %v, want %v", dt, want)
	}

	cp, cv := Integrate(p, v, grav, dt)
	if math.Abs(cp.Y-r) > eps {
		t.Errorf("contact height = %v", cp.Y)
	}
	out, ok := ReflectSegment(cp, cv, floor)
	if !ok {
		t.Fatal("falling ball should reflect")
	}
	if out.Y != -cv.Y || out.X != cv.X {
		t.Errorf("bounce %v -> %v", cv, out)
	}
}

func TestBallSegment_OutsideFace(t *testing.T) {
	floor := vmath.NewSegment(vmath.V(-5, 0), vmath.V(5, 0))
	dt := BallSegment(vmath.V(20, 10), vmath.V(0, -1), vmath.Vec{}, 1, floor)
	if !math.IsNaN(dt) {
		t.Errorf("ball beside segment got dt %v", dt)
	}
	dt = BallSegment(vmath.V(0, 10), vmath.V(0, -1), vmath.Vec{}, 1, floor)
	if math.Abs(dt-9) > eps {
		t.Errorf("linear approach dt = %v, want 9", dt)
	}
	dt = BallSegment(vmath.V(0, 10), vmath.V(0, 1), vmath.Vec{}, 1, floor)
	if !math.IsNaN(dt) {
		t.Errorf("ball moving away got dt %v", dt)
	}
}

func TestBallVertex(t *testing.T) {
	// Straight line towards the vertex, no gravity
	dt := BallVertex(vmath.V(-5, 0), vmath.V(1, 0), vmath.Vec{}, 1)
	if math.Abs(dt-4) > eps {
		t.Errorf("dt = %v, want 4", dt)
	}

	// Dropped onto a vertex under gravity: 10 - 5t² = 1
	dt = BallVertex(vmath.V(0, 10), vmath.Vec{}, vmath.V(0, -10), 1)
	if want := math.Sqrt(1.8); math.Abs(dt-want) > 1e-7 {
		t.Errorf("gravity dt = %v, want %v", dt, want)
	}

	// Thrown upward then falling back: contact on the way down only
	dt = BallVertex(vmath.V(0, 2), vmath.V(0, 10), vmath.V(0, -10), 1)
	// 2 + 10t - 5t² = 1
	if want := (10 + math.Sqrt(120)) / 10; math.Abs(dt-want) > 1e-7 {
		t.Errorf("lob dt = %v, want %v", dt, want)
	}

	out, ok := ReflectVertex(vmath.V(-1, 0), vmath.V(1, 0.5), vmath.V(0, 0))
	if !ok || out != vmath.V(-1, 0.5) {
		t.Errorf("reflect = %v %v", out, ok)
	}
	if _, ok := ReflectVertex(vmath.V(-1, 0), vmath.V(-1, 0), vmath.V(0, 0)); ok {
		t.Error("receding body should not reflect")
	}
}

func TestBallPiston(t *testing.T) {
	// Ball below piston moving up, piston moving down
	dt := BallPiston(0, 1, 0, 1, 5, -1, 2)
	if math.Abs(dt-2) > eps {
		t.Errorf("dt = %v, want 2", dt)
	}
	// Ball above piston span [5,7] falling onto it
	dt = BallPiston(10, -1, 0, 1, 5, 0, 2)
	if math.Abs(dt-2) > eps {
		t.Errorf("dt = %v, want 2", dt)
	}
	// Separating
	if dt := BallPiston(0, -1, 0, 1, 5, 0, 2); !math.IsNaN(dt) {
		t.Errorf("separating got %v", dt)
	}
	// Ball at rest beneath piston, gravity pulls it up into contact: 4 = t²/2
	dt = BallPiston(0, 0, 1, 1, 5, 0, 2)
	if math.Abs(dt-math.Sqrt(8)) > eps {
		t.Errorf("gravity dt = %v", dt)
	}
}

func TestPistonPiston(t *testing.T) {
	if dt := PistonPiston(0, 1, 1, 5, -1, 1); math.Abs(dt-2) > eps {
		t.Errorf("dt = %v, want 2", dt)
	}
	if dt := PistonPiston(5, -1, 1, 0, 1, 1); math.Abs(dt-2) > eps {
		t.Errorf("swapped dt = %v, want 2", dt)
	}
	if dt := PistonPiston(0, -1, 1, 5, 1, 1); !math.IsNaN(dt) {
		t.Errorf("separating got %v", dt)
	}
	u1, u2 := Elastic1D(1, 3, 2, 0)
	if math.Abs(u1+1) > eps || math.Abs(u2-1) > eps {
		t.Errorf("Elastic1D = %v %v", u1, u2)
	}
}

func TestPistonVertex(t *testing.T) {
	if dt := PistonVertex(0, 2, 1, 5); math.Abs(dt-2) > eps {
		t.Errorf("rising dt = %v", dt)
	}
	if dt := PistonVertex(8, -1, 1, 5); math.Abs(dt-3) > eps {
		t.Errorf("falling dt = %v", dt)
	}
	if dt := PistonVertex(8, 1, 1, 5); !math.IsNaN(dt) {
		t.Errorf("away got %v", dt)
	}
}

func TestAxisCrossing(t *testing.T) {
	tests := []struct {
		name            string
		p, v, g, lo, hi float64
		want            float64
	}{
		{"rising linear", 1, 1, 0, 0, 2.5, 1.5},
		{"falling linear", 1, -2, 0, 0, 2.5, 0.5},
		{"at rest", 1, 0, 0, 0, 2.5, math.NaN()},
		{"gravity pulls down", 1, 0, -2, 0, 2.5, 1},
		{"thrown up falls back", 0.5, 1, -2, 0, 2.5, (1 + math.Sqrt(3)) / 2},
		{"on lower edge moving up", 0, 1, 0, 0, 2.5, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AxisCrossing(tt.p, tt.v, tt.g, tt.lo, tt.hi)
			if math.IsNaN(tt.want) {
				if !math.IsNaN(got) {
					t.Errorf("got %v, want NaN", got)
				}
				return
			}
			if math.Abs(got-tt.want) > eps {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalEnergy(t *testing.T) {
	// Equal unit masses, head-on at relative speed 2: mu = 1/2, E = 1/2 * 1/2 * 4
	if e := NormalEnergy(1, 1, vmath.V(2, 0), vmath.V(-2, 0)); math.Abs(e-1) > eps {
		t.Errorf("NormalEnergy = %v, want 1", e)
	}
}
