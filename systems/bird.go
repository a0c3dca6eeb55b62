package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/mossfeld/henyard/components"
)

// UpdateBird runs one bird's decision pass and motion integration for the
// frame. Decision priority: danger, player scare, visitor attraction, feed
// seeking, coop visiting (chickens), wandering. Captured and perched birds
// skip locomotion entirely; their positions are owned elsewhere.
func UpdateBird(fr *Frame, e ecs.Entity, pos *components.Position, vel *components.Velocity, b *components.Bird) {
	t := fr.Tune
	dt := fr.DT

	switch b.Phase {
	case components.BirdPerched, components.BirdCaptured:
		return
	}

	if b.FleeTimer > 0 {
		b.FleeTimer -= dt
	}
	b.WanderTimer -= dt
	if b.Species == components.SpeciesChicken && !coopPhase(b.Phase) {
		b.CoopTimer -= dt
	}

	// Danger first: a predator inside the alert radius always restarts the
	// flee, even mid-flee.
	if th, d2, ok := fr.NearestThreat(pos.X, pos.Y); ok && d2 <= t.AlertRadius*t.AlertRadius {
		fleeFrom(fr, b, pos, th.X, th.Y, t.FleeMultiplier)
	} else if fr.Player.Scaring && b.Phase != components.BirdFleeing &&
		Dist2(pos.X, pos.Y, fr.Player.X, fr.Player.Y) <= t.ScareRadius*t.ScareRadius {
		fleeFrom(fr, b, pos, fr.Player.X, fr.Player.Y, t.ScareMultiplier)
		if b.Species == components.SpeciesDuck {
			fr.FX.PlayCue(CueDuckQuack)
		} else {
			fr.FX.PlayCue(CueChickenSquawk)
		}
	}

	if b.Phase == components.BirdFleeing {
		if b.FleeTimer > 0 {
			vel.X = b.HeadingX * t.WanderSpeed * b.FleeSpeed
			vel.Y = b.HeadingY * t.WanderSpeed * b.FleeSpeed
			pos.X += vel.X * dt
			pos.Y += vel.Y * dt
			// Danger overrides obstacle and soft-boundary handling; only the
			// hard clamp applies while fleeing.
			finishBirdFrame(fr, e, pos, b, false)
			return
		}
		b.Phase = components.BirdWandering
		b.WanderTimer = 0
	}

	// Visitor attraction holds until the visitor stops sitting.
	if b.Phase == components.BirdAttracted {
		v := fr.Visitor
		if v == nil || v.Phase != VisitorSitting {
			b.Phase = components.BirdWandering
			b.WanderTimer = 0
		} else {
			arrived := stepToward(pos, vel, v.X+0.8, v.Y+0.8, t.WanderSpeed, dt)
			if arrived && len(v.Perched) < t.MaxPerched && fr.RNG.Float32() < t.PerchChance {
				fr.FX.Emit(Event{Kind: EventBirdPerched, Bird: e})
			}
			finishBirdFrame(fr, e, pos, b, true)
			return
		}
	}

	// Feed seeking overrides wandering and coop visiting.
	if corn, d2, ok := fr.NearestCorn(pos.X, pos.Y); ok {
		if b.Phase == components.BirdWandering || b.Phase == components.BirdSeekingFeed || coopPhase(b.Phase) {
			b.Phase = components.BirdSeekingFeed
			if d2 <= t.EatRadius*t.EatRadius {
				// Pecking at the pile; the pile burns down on its own clock
				vel.X, vel.Y = 0, 0
			} else {
				stepToward(pos, vel, corn.X, corn.Y, t.SeekSpeed, dt)
			}
			finishBirdFrame(fr, e, pos, b, true)
			return
		}
	} else if b.Phase == components.BirdSeekingFeed {
		b.Phase = components.BirdWandering
		b.WanderTimer = 0
	}

	// Coop visits run on a long randomized per-bird cadence.
	if b.Species == components.SpeciesChicken {
		if b.Phase == components.BirdWandering && b.CoopTimer <= 0 {
			b.Phase = components.BirdCoopWalking
		}
		switch b.Phase {
		case components.BirdCoopWalking:
			coop := &fr.Yard.Coop
			if stepToward(pos, vel, coop.DoorX, coop.DoorY, t.WanderSpeed, dt) {
				b.Phase = components.BirdCoopInside
				b.CoopTimer = t.CoopStay
				pos.X, pos.Y = coop.CX, coop.CY
			}
			finishBirdFrame(fr, e, pos, b, true)
			return
		case components.BirdCoopInside:
			vel.X, vel.Y = 0, 0
			if b.CoopTimer <= 0 {
				b.Phase = components.BirdCoopReturning
			} else {
				b.CoopTimer -= dt
			}
			return
		case components.BirdCoopReturning:
			coop := &fr.Yard.Coop
			ox, oy := DirTo(coop.CX, coop.CY, coop.DoorX, coop.DoorY)
			outX := coop.DoorX + ox*2
			outY := coop.DoorY + oy*2
			if stepToward(pos, vel, outX, outY, t.WanderSpeed, dt) {
				b.Phase = components.BirdWandering
				reseedWander(fr, pos, b)
				reseedCoopVisit(fr, b)
			}
			finishBirdFrame(fr, e, pos, b, true)
			return
		}
	}

	// Plain wandering
	if b.WanderTimer <= 0 {
		reseedWander(fr, pos, b)
	}
	vel.X = b.HeadingX * t.WanderSpeed
	vel.Y = b.HeadingY * t.WanderSpeed
	pos.X += vel.X * dt
	pos.Y += vel.Y * dt

	finishBirdFrame(fr, e, pos, b, true)
}

// coopPhase reports whether the phase is part of a coop visit.
func coopPhase(p components.BirdPhase) bool {
	return p == components.BirdCoopWalking || p == components.BirdCoopInside || p == components.BirdCoopReturning
}

// fleeFrom points the bird directly away from a threat at an elevated speed
// and starts the suppression cooldown.
func fleeFrom(fr *Frame, b *components.Bird, pos *components.Position, tx, ty, mult float32) {
	dx, dy := Norm(pos.X-tx, pos.Y-ty)
	if dx == 0 && dy == 0 {
		a := fr.RNG.Float64() * 2 * math.Pi
		dx, dy = float32(math.Cos(a)), float32(math.Sin(a))
	}
	b.Phase = components.BirdFleeing
	b.HeadingX, b.HeadingY = dx, dy
	b.FleeSpeed = mult
	b.FleeTimer = fr.Tune.FleeCooldown
}

// reseedWander picks a fresh random heading and cadence. Ducks blend the
// heading toward the pond when they are outside it.
func reseedWander(fr *Frame, pos *components.Position, b *components.Bird) {
	t := fr.Tune
	a := fr.RNG.Float64() * 2 * math.Pi
	hx, hy := float32(math.Cos(a)), float32(math.Sin(a))

	if b.Species == components.SpeciesDuck {
		pond := &fr.Yard.Pond
		if Dist2(pos.X, pos.Y, pond.CX, pond.CY) > pond.R*pond.R {
			px, py := DirTo(pos.X, pos.Y, pond.CX, pond.CY)
			hx = hx*(1-t.PondBias) + px*t.PondBias
			hy = hy*(1-t.PondBias) + py*t.PondBias
		}
	}

	b.HeadingX, b.HeadingY = Norm(hx, hy)
	b.WanderTimer = t.WanderMin + fr.RNG.Float32()*(t.WanderMax-t.WanderMin)
}

// reseedCoopVisit schedules the next coop visit for a chicken.
func reseedCoopVisit(fr *Frame, b *components.Bird) {
	t := fr.Tune
	b.CoopTimer = t.CoopVisitMin + fr.RNG.Float32()*(t.CoopVisitMax-t.CoopVisitMin)
}

// finishBirdFrame applies the post-locomotion pipeline in priority order:
// coop push-out (skipped during coop visits), soft fence pull (skipped while
// fleeing), hard clamp, then the out-of-bounds grace timer.
func finishBirdFrame(fr *Frame, e ecs.Entity, pos *components.Position, b *components.Bird, soft bool) {
	t := fr.Tune
	yard := fr.Yard

	if !coopPhase(b.Phase) {
		pos.X, pos.Y = yard.Coop.PushOut(pos.X, pos.Y)
	}

	if soft {
		px, py := yard.SoftPull(pos.X, pos.Y)
		pos.X += px * t.WanderSpeed * fr.DT
		pos.Y += py * t.WanderSpeed * fr.DT
	}

	pos.X, pos.Y = yard.Clamp(pos.X, pos.Y)

	if !yard.InBounds(pos.X, pos.Y) {
		b.OutTimer += fr.DT
		if b.OutTimer >= t.OutGrace {
			fr.FX.Emit(Event{Kind: EventBirdRanAway, Bird: e})
		}
	} else {
		b.OutTimer = 0
	}
}

// stepToward moves toward a target at the given speed, returning true once
// within a small arrival radius.
func stepToward(pos *components.Position, vel *components.Velocity, tx, ty, speed, dt float32) bool {
	dx := tx - pos.X
	dy := ty - pos.Y
	d2 := dx*dx + dy*dy
	if d2 <= 0.25 {
		vel.X, vel.Y = 0, 0
		return true
	}
	nx, ny := Norm(dx, dy)
	vel.X = nx * speed
	vel.Y = ny * speed
	pos.X += vel.X * dt
	pos.Y += vel.Y * dt
	return false
}
