package systems

import (
	"testing"

	"github.com/mossfeld/henyard/components"
)

func TestBirdFleesFromNearbyPredator(t *testing.T) {
	f := newFixture(t)
	be := f.addBird(components.SpeciesChicken, 0, 0)
	pe := f.addPredator(components.KindDog, 2, 0)
	f.markThreat(pe)

	f.stepBird(be)

	pos, _, b := f.bird(be)
	if b.Phase != components.BirdFleeing {
		t.Fatalf("phase = %v, want fleeing", b.Phase)
	}
	if b.HeadingX >= 0 {
		t.Errorf("heading x = %v, want away from threat (negative)", b.HeadingX)
	}
	if pos.X >= 0 {
		t.Errorf("pos x = %v, want moved away from threat", pos.X)
	}
	if b.FleeSpeed != f.fr.Tune.FleeMultiplier {
		t.Errorf("flee speed = %v, want predator multiplier %v", b.FleeSpeed, f.fr.Tune.FleeMultiplier)
	}
}

func TestPlayerScareTriggersFleeWithCue(t *testing.T) {
	tests := []struct {
		name    string
		species components.Species
		cue     Cue
	}{
		{"chicken squawks", components.SpeciesChicken, CueChickenSquawk},
		{"duck quacks", components.SpeciesDuck, CueDuckQuack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			be := f.addBird(tt.species, 0, 0)
			f.fr.Player = PlayerInfo{X: 1, Y: 0, Scaring: true}

			f.stepBird(be)

			_, _, b := f.bird(be)
			if b.Phase != components.BirdFleeing {
				t.Fatalf("phase = %v, want fleeing", b.Phase)
			}
			if b.FleeSpeed != f.fr.Tune.ScareMultiplier {
				t.Errorf("flee speed = %v, want scare multiplier %v", b.FleeSpeed, f.fr.Tune.ScareMultiplier)
			}
			if !f.hasCue(tt.cue) {
				t.Errorf("cue %q not emitted", tt.cue)
			}
		})
	}
}

func TestScareDoesNotRedirectActiveFlee(t *testing.T) {
	f := newFixture(t)
	be := f.addBird(components.SpeciesChicken, 0, 0)
	_, _, b := f.bird(be)
	b.Phase = components.BirdFleeing
	b.HeadingX, b.HeadingY = 0, 1
	b.FleeSpeed = f.fr.Tune.FleeMultiplier
	b.FleeTimer = 2
	f.fr.Player = PlayerInfo{X: 1, Y: 0, Scaring: true}

	f.stepBird(be)

	if b.HeadingX != 0 || b.HeadingY != 1 {
		t.Errorf("heading changed to (%v, %v), scare must not restart an active flee", b.HeadingX, b.HeadingY)
	}
}

func TestPredatorRestartsFleeMidFlee(t *testing.T) {
	f := newFixture(t)
	be := f.addBird(components.SpeciesChicken, 0, 0)
	_, _, b := f.bird(be)
	b.Phase = components.BirdFleeing
	b.HeadingX, b.HeadingY = 0, 1
	b.FleeTimer = 1

	pe := f.addPredator(components.KindDog, 3, 0)
	f.markThreat(pe)

	f.stepBird(be)

	if b.HeadingX >= 0 {
		t.Errorf("heading x = %v, danger must redirect the flee away from the predator", b.HeadingX)
	}
	if b.FleeTimer < f.fr.Tune.FleeCooldown-f.fr.DT {
		t.Errorf("flee timer = %v, want restarted to ~%v", b.FleeTimer, f.fr.Tune.FleeCooldown)
	}
}

func TestOutOfBoundsGrace(t *testing.T) {
	t.Run("expires into ran-away", func(t *testing.T) {
		f := newFixture(t)
		be := f.addBird(components.SpeciesChicken, 31.5, 0)
		_, _, b := f.bird(be)
		b.OutTimer = f.fr.Tune.OutGrace

		f.stepBird(be)

		if got := f.events(EventBirdRanAway); len(got) != 1 || got[0].Bird != be {
			t.Fatalf("ran-away events = %v, want exactly one for the bird", got)
		}
	})

	t.Run("resets on re-entry", func(t *testing.T) {
		f := newFixture(t)
		be := f.addBird(components.SpeciesChicken, 5, 5)
		_, _, b := f.bird(be)
		b.OutTimer = 12

		f.stepBird(be)

		if b.OutTimer != 0 {
			t.Errorf("out timer = %v, want 0 after returning in bounds", b.OutTimer)
		}
		if len(f.events(EventBirdRanAway)) != 0 {
			t.Error("ran-away emitted for a bird in bounds")
		}
	})

	t.Run("accrues while outside", func(t *testing.T) {
		f := newFixture(t)
		be := f.addBird(components.SpeciesChicken, 31.5, 0)
		_, _, b := f.bird(be)
		b.OutTimer = 4

		f.stepBird(be)

		if b.OutTimer <= 4 {
			t.Errorf("out timer = %v, want increased past 4", b.OutTimer)
		}
		if len(f.events(EventBirdRanAway)) != 0 {
			t.Error("ran-away emitted before grace expired")
		}
	})
}

func TestFeedSeekingOverridesWandering(t *testing.T) {
	f := newFixture(t)
	be := f.addBird(components.SpeciesChicken, 0, 0)
	f.fr.Corn = []CornSpot{{X: 4, Y: 0}}

	f.stepBird(be)

	pos, _, b := f.bird(be)
	if b.Phase != components.BirdSeekingFeed {
		t.Fatalf("phase = %v, want seeking feed", b.Phase)
	}
	if pos.X <= 0 {
		t.Errorf("pos x = %v, want moved toward corn", pos.X)
	}
}

func TestBirdPecksInsideEatRadius(t *testing.T) {
	f := newFixture(t)
	eat := f.fr.Tune.EatRadius
	be := f.addBird(components.SpeciesChicken, eat*0.9, 0)
	f.fr.Corn = []CornSpot{{X: 0, Y: 0}}

	f.stepBird(be)

	pos, vel, b := f.bird(be)
	if b.Phase != components.BirdSeekingFeed {
		t.Fatalf("phase = %v, want seeking feed", b.Phase)
	}
	if vel.X != 0 || vel.Y != 0 {
		t.Errorf("velocity = (%v, %v), want stopped to peck inside the eat radius", vel.X, vel.Y)
	}
	if pos.X != eat*0.9 {
		t.Errorf("pos x = %v, want unchanged while pecking", pos.X)
	}
}

func TestDangerOverridesFeedSeeking(t *testing.T) {
	f := newFixture(t)
	be := f.addBird(components.SpeciesChicken, 0, 0)
	f.fr.Corn = []CornSpot{{X: 4, Y: 0}}
	pe := f.addPredator(components.KindDog, -3, 0)
	f.markThreat(pe)

	f.stepBird(be)

	_, _, b := f.bird(be)
	if b.Phase != components.BirdFleeing {
		t.Errorf("phase = %v, danger must outrank feed seeking", b.Phase)
	}
}

func TestChickenCoopVisitCycle(t *testing.T) {
	f := newFixture(t)
	coop := &f.fr.Yard.Coop
	be := f.addBird(components.SpeciesChicken, coop.DoorX, coop.DoorY+0.3)
	_, _, b := f.bird(be)
	b.CoopTimer = 0

	f.stepBird(be)
	if b.Phase != components.BirdCoopInside {
		t.Fatalf("phase = %v, want inside after arriving at the door", b.Phase)
	}
	pos, _, _ := f.bird(be)
	if pos.X != coop.CX || pos.Y != coop.CY {
		t.Errorf("pos = (%v, %v), want snapped to coop center", pos.X, pos.Y)
	}
	if b.CoopTimer != f.fr.Tune.CoopStay {
		t.Errorf("coop timer = %v, want stay duration %v", b.CoopTimer, f.fr.Tune.CoopStay)
	}

	// Stay expires, the bird walks back out and reseeds its next visit.
	b.CoopTimer = 0
	f.stepBird(be)
	if b.Phase != components.BirdCoopReturning {
		t.Fatalf("phase = %v, want returning after stay expired", b.Phase)
	}

	for i := 0; i < 600 && b.Phase == components.BirdCoopReturning; i++ {
		f.stepBird(be)
	}
	if b.Phase != components.BirdWandering {
		t.Fatalf("phase = %v, want wandering after leaving the coop", b.Phase)
	}
	if b.CoopTimer < f.fr.Tune.CoopVisitMin || b.CoopTimer > f.fr.Tune.CoopVisitMax {
		t.Errorf("next visit in %v, want within [%v, %v]", b.CoopTimer, f.fr.Tune.CoopVisitMin, f.fr.Tune.CoopVisitMax)
	}
}

func TestCapturedAndPerchedBirdsSkipLocomotion(t *testing.T) {
	for _, phase := range []components.BirdPhase{components.BirdCaptured, components.BirdPerched} {
		t.Run(phase.String(), func(t *testing.T) {
			f := newFixture(t)
			be := f.addBird(components.SpeciesChicken, 3, 3)
			_, _, b := f.bird(be)
			b.Phase = phase
			b.WanderTimer = 1

			f.stepBird(be)

			pos, _, _ := f.bird(be)
			if pos.X != 3 || pos.Y != 3 {
				t.Errorf("pos = (%v, %v), want unchanged", pos.X, pos.Y)
			}
			if b.WanderTimer != 1 {
				t.Errorf("wander timer = %v, want untouched", b.WanderTimer)
			}
		})
	}
}

func TestAttractedBirdReleasesWhenVisitorStandsUp(t *testing.T) {
	f := newFixture(t)
	be := f.addBird(components.SpeciesChicken, 2, 2)
	_, _, b := f.bird(be)
	b.Phase = components.BirdAttracted
	f.fr.Visitor = &Visitor{Phase: VisitorLeaving, X: 5, Y: 5}

	f.stepBird(be)

	if b.Phase == components.BirdAttracted {
		t.Errorf("phase = %v, want released once the visitor is no longer sitting", b.Phase)
	}
}

func TestDuckWanderBiasTowardPond(t *testing.T) {
	f := newFixture(t)
	pond := &f.fr.Yard.Pond

	// Far from the pond, the reseeded heading should on average point at it.
	var sumDot float32
	const samples = 200
	for i := 0; i < samples; i++ {
		be := f.addBird(components.SpeciesDuck, -20, -20)
		pos, _, b := f.bird(be)
		reseedWander(&f.fr, pos, b)
		px, py := DirTo(pos.X, pos.Y, pond.CX, pond.CY)
		sumDot += b.HeadingX*px + b.HeadingY*py
	}
	if mean := sumDot / samples; mean <= 0.1 {
		t.Errorf("mean heading alignment with pond = %v, want clearly positive", mean)
	}
}
