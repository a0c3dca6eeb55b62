package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/mossfeld/henyard/components"
)

// UpdatePredator runs one predator's decision pass for the frame. Hawks
// stalk a locked target before capturing; dogs capture on contact. Captures
// and escapes are emitted as events and applied by the resolver so both
// sides of the bird/predator association change in one place.
func UpdatePredator(fr *Frame, e ecs.Entity, pos *components.Position, vel *components.Velocity, p *components.Predator) {
	t := fr.Tune
	kt := t.Kind(p.Kind)
	dt := fr.DT

	switch p.Phase {
	case components.PredFleeing:
		dx, dy := Norm(pos.X-fr.Player.X, pos.Y-fr.Player.Y)
		vel.X = dx * kt.Speed
		vel.Y = dy * kt.Speed
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		if kt.Flying {
			p.Alt = clampf(p.Alt+t.ClimbRate*dt, 0, t.CruiseAltitude)
		}
		if Dist2(pos.X, pos.Y, fr.Player.X, fr.Player.Y) > t.FleeRadius*t.FleeRadius {
			p.Phase = components.PredHunting
		}

	case components.PredCarrying:
		ex, ey := fr.Yard.NearestEdgeDir(pos.X, pos.Y)
		vel.X = ex * kt.CarrySpeed
		vel.Y = ey * kt.CarrySpeed
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		if kt.Flying {
			p.Alt = clampf(p.Alt+t.ClimbRate*dt, 0, t.CruiseAltitude)
		}
		// The carried bird's position is slaved to the predator
		if fr.World.Alive(p.Prey) {
			if bp := fr.PosMap.Get(p.Prey); bp != nil {
				bp.X, bp.Y = pos.X, pos.Y
			}
		}
		if fr.Yard.Escaped(pos.X, pos.Y) {
			fr.FX.Emit(Event{Kind: EventPredatorEscaped, Predator: e, Bird: p.Prey})
		}
		return // carrying predators ignore obstacles; they are leaving

	case components.PredStalking:
		if !stalkTargetValid(fr, p.Target) {
			p.Phase = components.PredHunting
			p.Target = ecs.Entity{}
			p.StalkTimer = 0
			break
		}
		tp := fr.PosMap.Get(p.Target)
		// Hover above the locked target
		stepToward(pos, vel, tp.X, tp.Y, kt.Speed, dt)
		p.Alt = clampf(p.Alt-t.ClimbRate*dt, 2, t.CruiseAltitude)
		p.StalkTimer += dt
		if p.StalkTimer >= kt.StalkTime {
			fr.FX.Emit(Event{Kind: EventBirdCaptured, Bird: p.Target, Predator: e})
		}

	case components.PredHunting:
		target, d2, ok := fr.NearestFreeBird(pos.X, pos.Y)
		if !ok {
			// No-target idle: flyers climb back to cruise and re-arm the
			// one-shot dive cue
			if kt.Flying {
				p.Alt = clampf(p.Alt+t.ClimbRate*dt, 0, t.CruiseAltitude)
				if p.Alt >= t.CruiseAltitude*0.95 {
					p.ScreechDone = false
				}
			} else {
				p.ScreechDone = false
			}
			vel.X, vel.Y = 0, 0
			break
		}

		if kt.Flying {
			p.Alt = clampf(p.Alt-t.ClimbRate*dt, 1, t.CruiseAltitude)
			if !p.ScreechDone {
				fr.FX.PlayCue(CueHawkScreech)
				p.ScreechDone = true
			}
		} else if !p.ScreechDone {
			fr.FX.PlayCue(CueDogBark)
			p.ScreechDone = true
		}

		stepToward(pos, vel, target.X, target.Y, kt.Speed, dt)

		if d2 <= t.CaptureRadius*t.CaptureRadius {
			if kt.StalkTime > 0 {
				p.Phase = components.PredStalking
				p.Target = target.E
				p.StalkTimer = 0
			} else {
				fr.FX.Emit(Event{Kind: EventBirdCaptured, Bird: target.E, Predator: e})
			}
		}
	}

	// Ground obstacle handling: no walking through the coop, soft nudges
	// away from the player and the visitor.
	if !kt.Flying || p.Alt < 2 {
		pos.X, pos.Y = fr.Yard.Coop.PushOut(pos.X, pos.Y)
	}
	nudgeAway(pos, fr.Player.X, fr.Player.Y, t.AvoidRadius, dt)
	if v := fr.Visitor; v != nil {
		nudgeAway(pos, v.X, v.Y, t.AvoidRadius, dt)
	}
}

// stalkTargetValid reports whether a stalking lock still holds: the target
// bird must still be alive and free for the taking. A target that ran away
// was removed in an earlier frame's sweep, so liveness comes first.
func stalkTargetValid(fr *Frame, target ecs.Entity) bool {
	if !fr.World.Alive(target) {
		return false
	}
	b := fr.BirdMap.Get(target)
	if b == nil {
		return false
	}
	return b.Phase != components.BirdCaptured && b.Phase != components.BirdPerched
}

// nudgeAway softly pushes a position out of another agent's personal space.
// A positional nudge, not a hard block.
func nudgeAway(pos *components.Position, ox, oy, radius, dt float32) {
	d2 := Dist2(pos.X, pos.Y, ox, oy)
	if d2 >= radius*radius || d2 < 1e-6 {
		return
	}
	dx, dy := Norm(pos.X-ox, pos.Y-oy)
	pos.X += dx * 4 * dt
	pos.Y += dy * 4 * dt
}
