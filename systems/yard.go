package systems

import (
	"math/rand"

	"github.com/mossfeld/henyard/config"
)

// Coop is the fixed obstacle footprint with a door and a row of nests.
type Coop struct {
	CX, CY float32 // footprint center
	HW, HD float32 // half extents

	DoorX, DoorY float32
	DoorR        float32

	Margin float32 // push-out margin around the footprint
}

// Contains reports whether a point is inside the footprint plus margin.
func (c *Coop) Contains(x, y float32) bool {
	return absf(x-c.CX) < c.HW+c.Margin && absf(y-c.CY) < c.HD+c.Margin
}

// PushOut resolves a point out of the footprint along the vector from the
// coop center, leaving points outside untouched.
func (c *Coop) PushOut(x, y float32) (float32, float32) {
	if !c.Contains(x, y) {
		return x, y
	}
	dx := x - c.CX
	dy := y - c.CY
	if absf(dx) < 1e-4 && absf(dy) < 1e-4 {
		// Dead center; eject through the door side
		dx, dy = DirTo(c.CX, c.CY, c.DoorX, c.DoorY)
	}
	// Scale the center offset so the point lands just outside the boundary
	tx, ty := float32(1e9), float32(1e9)
	if absf(dx) > 1e-6 {
		tx = (c.HW + c.Margin) / absf(dx)
	}
	if absf(dy) > 1e-6 {
		ty = (c.HD + c.Margin) / absf(dy)
	}
	t := tx
	if ty < t {
		t = ty
	}
	return c.CX + dx*t*1.01, c.CY + dy*t*1.01
}

// AtDoor reports whether a point is within reach of the coop door.
func (c *Coop) AtDoor(x, y float32) bool {
	return Dist2(x, y, c.DoorX, c.DoorY) <= c.DoorR*c.DoorR
}

// Pond is the duck attractor.
type Pond struct {
	CX, CY float32
	R      float32
}

// Nest is a fixed egg slot inside the coop.
type Nest struct {
	X, Y float32
}

// Yard holds the play-area geometry: nested boundary radii, the coop
// footprint, the pond and the nest row. Boundary precedence is danger
// steering, then coop push-out, then soft fence pull, then the hard clamp.
type Yard struct {
	FenceHalf  float32 // soft pull starts beyond this
	BoundsHalf float32 // out-of-bounds grace accrues beyond this
	ClampHalf  float32 // birds never clamp past this
	EscapeHalf float32 // carrying predators vanish past this

	Coop  Coop
	Pond  Pond
	Nests []Nest
}

// NewYard builds the yard from configuration, laying nests out in a row
// along the back wall of the coop.
func NewYard(yc *config.YardConfig) *Yard {
	coop := Coop{
		CX:     float32(yc.Coop.CenterX),
		CY:     float32(yc.Coop.CenterY),
		HW:     float32(yc.Coop.HalfWidth),
		HD:     float32(yc.Coop.HalfDepth),
		DoorX:  float32(yc.Coop.DoorX),
		DoorY:  float32(yc.Coop.DoorY),
		DoorR:  float32(yc.Coop.DoorRadius),
		Margin: float32(yc.Coop.AvoidMargin),
	}

	n := yc.Coop.NestCount
	nests := make([]Nest, n)
	for i := range nests {
		frac := (float32(i) + 0.5) / float32(n)
		nests[i] = Nest{
			X: coop.CX - coop.HW + 2*coop.HW*frac,
			Y: coop.CY - coop.HD + 0.6,
		}
	}

	return &Yard{
		FenceHalf:  float32(yc.FenceHalf),
		BoundsHalf: float32(yc.BoundsHalf),
		ClampHalf:  float32(yc.ClampHalf),
		EscapeHalf: float32(yc.EscapeHalf),
		Coop:       coop,
		Pond: Pond{
			CX: float32(yc.Pond.CenterX),
			CY: float32(yc.Pond.CenterY),
			R:  float32(yc.Pond.Radius),
		},
		Nests: nests,
	}
}

// InBounds reports whether a point is inside the yard boundary.
func (y *Yard) InBounds(px, py float32) bool {
	return absf(px) <= y.BoundsHalf && absf(py) <= y.BoundsHalf
}

// Escaped reports whether a point has left the playable area entirely.
func (y *Yard) Escaped(px, py float32) bool {
	return absf(px) > y.EscapeHalf || absf(py) > y.EscapeHalf
}

// Clamp limits a point to the hard outer boundary.
func (y *Yard) Clamp(px, py float32) (float32, float32) {
	return clampf(px, -y.ClampHalf, y.ClampHalf), clampf(py, -y.ClampHalf, y.ClampHalf)
}

// SoftPull returns a unit pull toward the yard center when the point is
// beyond the fence, or (0, 0) inside it.
func (y *Yard) SoftPull(px, py float32) (float32, float32) {
	if absf(px) <= y.FenceHalf && absf(py) <= y.FenceHalf {
		return 0, 0
	}
	return Norm(-px, -py)
}

// NearestEdgeDir returns the unit direction from a point toward the nearest
// yard edge. Carrying predators use it to exit with prey.
func (y *Yard) NearestEdgeDir(px, py float32) (float32, float32) {
	// Pick the axis closest to an edge
	dxEdge := y.BoundsHalf - absf(px)
	dyEdge := y.BoundsHalf - absf(py)
	if dxEdge <= dyEdge {
		if px >= 0 {
			return 1, 0
		}
		return -1, 0
	}
	if py >= 0 {
		return 0, 1
	}
	return 0, -1
}

// RandomInterior returns a uniformly random point inside the fence that is
// not inside the coop footprint.
func (y *Yard) RandomInterior(rng *rand.Rand) (float32, float32) {
	for {
		px := (rng.Float32()*2 - 1) * y.FenceHalf
		py := (rng.Float32()*2 - 1) * y.FenceHalf
		if !y.Coop.Contains(px, py) {
			return px, py
		}
	}
}

// RandomEdge returns a random point just outside the yard boundary, used
// for predator spawns.
func (y *Yard) RandomEdge(rng *rand.Rand) (float32, float32) {
	along := (rng.Float32()*2 - 1) * y.BoundsHalf
	switch rng.Intn(4) {
	case 0:
		return y.ClampHalf, along
	case 1:
		return -y.ClampHalf, along
	case 2:
		return along, y.ClampHalf
	default:
		return along, -y.ClampHalf
	}
}
