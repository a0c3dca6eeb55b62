package systems

import (
	"math/rand"
	"testing"

	"github.com/mossfeld/henyard/config"
)

func testYard(t *testing.T) *Yard {
	t.Helper()
	if err := config.Init(""); err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	return NewYard(&config.Cfg().Yard)
}

func TestCoopPushOut(t *testing.T) {
	y := testYard(t)
	c := &y.Coop

	tests := []struct {
		name string
		x, y float32
	}{
		{"center", c.CX, c.CY},
		{"off center", c.CX + 1, c.CY - 0.5},
		{"near wall", c.CX + c.HW - 0.1, c.CY},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := c.PushOut(tt.x, tt.y)
			if c.Contains(gx, gy) {
				t.Errorf("PushOut(%v, %v) = (%v, %v), still inside the footprint", tt.x, tt.y, gx, gy)
			}
		})
	}

	// Points already outside stay put.
	gx, gy := c.PushOut(10, 10)
	if gx != 10 || gy != 10 {
		t.Errorf("PushOut moved an outside point to (%v, %v)", gx, gy)
	}
}

func TestSoftPull(t *testing.T) {
	y := testYard(t)

	px, py := y.SoftPull(5, 5)
	if px != 0 || py != 0 {
		t.Errorf("pull inside the fence = (%v, %v), want none", px, py)
	}

	px, py = y.SoftPull(y.FenceHalf+2, 0)
	if px >= 0 {
		t.Errorf("pull x = %v, want toward center (negative)", px)
	}
	if py != 0 {
		t.Errorf("pull y = %v, want 0 on the axis", py)
	}
}

func TestClampLimits(t *testing.T) {
	y := testYard(t)
	gx, gy := y.Clamp(100, -100)
	if gx != y.ClampHalf || gy != -y.ClampHalf {
		t.Errorf("Clamp(100, -100) = (%v, %v), want (%v, %v)", gx, gy, y.ClampHalf, -y.ClampHalf)
	}
}

func TestBoundaryOrdering(t *testing.T) {
	y := testYard(t)
	if !(y.FenceHalf < y.BoundsHalf && y.BoundsHalf < y.ClampHalf && y.ClampHalf < y.EscapeHalf) {
		t.Errorf("boundary radii out of order: fence %v bounds %v clamp %v escape %v",
			y.FenceHalf, y.BoundsHalf, y.ClampHalf, y.EscapeHalf)
	}
}

func TestNestRowInsideCoop(t *testing.T) {
	y := testYard(t)
	if len(y.Nests) != config.Cfg().Yard.Coop.NestCount {
		t.Fatalf("nest count = %d, want %d", len(y.Nests), config.Cfg().Yard.Coop.NestCount)
	}
	for i, n := range y.Nests {
		if !y.Coop.Contains(n.X, n.Y) {
			t.Errorf("nest %d at (%v, %v) outside the coop", i, n.X, n.Y)
		}
	}
}

func TestNearestEdgeDir(t *testing.T) {
	y := testYard(t)
	tests := []struct {
		x, y         float32
		wantX, wantY float32
	}{
		{29, 0, 1, 0},
		{-29, 3, -1, 0},
		{0, -29, 0, -1},
		{2, 28, 0, 1},
	}
	for _, tt := range tests {
		gx, gy := y.NearestEdgeDir(tt.x, tt.y)
		if gx != tt.wantX || gy != tt.wantY {
			t.Errorf("NearestEdgeDir(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, gx, gy, tt.wantX, tt.wantY)
		}
	}
}

func TestRandomInteriorAvoidsCoop(t *testing.T) {
	y := testYard(t)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		px, py := y.RandomInterior(rng)
		if absf(px) > y.FenceHalf || absf(py) > y.FenceHalf {
			t.Fatalf("interior point (%v, %v) outside the fence", px, py)
		}
		if y.Coop.Contains(px, py) {
			t.Fatalf("interior point (%v, %v) inside the coop", px, py)
		}
	}
}

func TestRandomEdgeOutsideBounds(t *testing.T) {
	y := testYard(t)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		px, py := y.RandomEdge(rng)
		if absf(px) != y.ClampHalf && absf(py) != y.ClampHalf {
			t.Fatalf("edge point (%v, %v) not on the clamp boundary", px, py)
		}
	}
}
