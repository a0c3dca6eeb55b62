package systems

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/mossfeld/henyard/components"
)

// VisitorPhase is the visitor's linear state machine.
type VisitorPhase uint8

const (
	VisitorEntering VisitorPhase = iota
	VisitorWandering
	VisitorSitting
	VisitorLeaving
)

// String returns the phase name.
func (p VisitorPhase) String() string {
	switch p {
	case VisitorWandering:
		return "wandering"
	case VisitorSitting:
		return "sitting"
	case VisitorLeaving:
		return "leaving"
	default:
		return "entering"
	}
}

// Visitor is the singleton ambient NPC. At most one exists at a time; the
// spawn timer in the session gates the next one.
type Visitor struct {
	Phase VisitorPhase
	X, Y  float32

	TargetX, TargetY float32
	HasTarget        bool

	SitTimer   float32
	TreatTimer float32

	Perched []ecs.Entity // birds riding the visitor's head, bounded
}

// NewVisitor spawns a visitor at the east edge walking in.
func NewVisitor(yard *Yard, rng *rand.Rand) *Visitor {
	return &Visitor{
		Phase: VisitorEntering,
		X:     yard.ClampHalf + 2,
		Y:     (rng.Float32()*2 - 1) * yard.FenceHalf * 0.5,
	}
}

// UpdateVisitor advances the visitor one frame. Returns true once the
// visitor has walked off the play area and should be removed.
func UpdateVisitor(fr *Frame, v *Visitor) bool {
	t := fr.Tune
	dt := fr.DT

	switch v.Phase {
	case VisitorEntering:
		v.X -= t.VisitorWalkSpeed * dt
		if v.X <= t.EnterX {
			v.Phase = VisitorWandering
			v.TargetX, v.TargetY = fr.Yard.RandomInterior(fr.RNG)
			v.HasTarget = true
		}

	case VisitorWandering:
		if !v.HasTarget {
			// Recoverable anomaly: wandering with nowhere to go. Force a
			// safe exit instead of stalling the frame loop.
			slog.Warn("visitor wandering without a target, forcing leave",
				"x", v.X, "y", v.Y)
			v.Phase = VisitorLeaving
			break
		}
		if walkTo(v, v.TargetX, v.TargetY, t.VisitorWalkSpeed, dt) {
			v.Phase = VisitorSitting
			v.HasTarget = false
			v.SitTimer = t.SitDuration
			v.TreatTimer = t.TreatInterval
		}

	case VisitorSitting:
		v.SitTimer -= dt
		v.TreatTimer -= dt
		if v.TreatTimer <= 0 {
			v.TreatTimer = t.TreatInterval
			fr.FX.Emit(Event{Kind: EventTreatTossed})
		}

		attractNearby(fr, v)

		if v.SitTimer <= 0 {
			// Transition out of sitting releases every perched bird
			fr.FX.Emit(Event{Kind: EventPerchCleared})
			v.Phase = VisitorLeaving
		}

	case VisitorLeaving:
		v.X += t.VisitorWalkSpeed * dt
		if v.X >= t.ExitX {
			return true
		}
	}

	return false
}

// attractNearby marks free birds inside the attraction radius. The mark is
// applied by the resolver; birds then steer toward the visitor themselves.
func attractNearby(fr *Frame, v *Visitor) {
	t := fr.Tune
	r2 := t.AttractRadius * t.AttractRadius
	for _, b := range fr.Flock {
		if !b.Free {
			continue
		}
		if bird := fr.BirdMap.Get(b.E); bird == nil || bird.Phase == components.BirdAttracted {
			continue
		}
		if Dist2(v.X, v.Y, b.X, b.Y) <= r2 && fr.RNG.Float32() < t.AttractChance {
			fr.FX.Emit(Event{Kind: EventBirdAttracted, Bird: b.E})
		}
	}
}

// walkTo moves the visitor toward a point, returning true on arrival.
func walkTo(v *Visitor, tx, ty, speed, dt float32) bool {
	dx := tx - v.X
	dy := ty - v.Y
	if dx*dx+dy*dy <= 0.25 {
		return true
	}
	nx, ny := Norm(dx, dy)
	v.X += nx * speed * dt
	v.Y += ny * speed * dt
	return false
}
