package systems

import (
	"testing"

	"github.com/mossfeld/henyard/components"
)

func TestVisitorWalksFullCycle(t *testing.T) {
	f := newFixture(t)
	v := NewVisitor(f.fr.Yard, f.fr.RNG)
	f.fr.Visitor = v

	if v.Phase != VisitorEntering {
		t.Fatalf("phase = %v, want entering on spawn", v.Phase)
	}
	if v.X <= f.fr.Tune.EnterX {
		t.Fatalf("spawn x = %v, want outside the enter threshold %v", v.X, f.fr.Tune.EnterX)
	}

	step := func(limit int, done func() bool) {
		t.Helper()
		for i := 0; i < limit; i++ {
			if done() {
				return
			}
			if UpdateVisitor(&f.fr, v) {
				return
			}
		}
		t.Fatalf("visitor stuck in phase %v at (%v, %v)", v.Phase, v.X, v.Y)
	}

	step(5000, func() bool { return v.Phase == VisitorWandering })
	if !v.HasTarget {
		t.Fatal("wandering without a bench target")
	}

	step(5000, func() bool { return v.Phase == VisitorSitting })
	if v.SitTimer != f.fr.Tune.SitDuration {
		t.Errorf("sit timer = %v, want %v", v.SitTimer, f.fr.Tune.SitDuration)
	}

	// A treat lands on every cadence interval while sitting.
	frames := int(f.fr.Tune.TreatInterval/f.fr.DT) + 2
	for i := 0; i < frames; i++ {
		UpdateVisitor(&f.fr, v)
	}
	if len(f.events(EventTreatTossed)) == 0 {
		t.Error("no treat tossed after a full cadence interval")
	}

	// Sitting ends with a perch-clear and the walk out.
	v.SitTimer = 0
	UpdateVisitor(&f.fr, v)
	if v.Phase != VisitorLeaving {
		t.Fatalf("phase = %v, want leaving after the sit expired", v.Phase)
	}
	if len(f.events(EventPerchCleared)) != 1 {
		t.Errorf("perch-clear events = %d, want 1", len(f.events(EventPerchCleared)))
	}

	gone := false
	for i := 0; i < 5000 && !gone; i++ {
		gone = UpdateVisitor(&f.fr, v)
	}
	if !gone {
		t.Fatal("visitor never left the play area")
	}
}

func TestSittingVisitorAttractsNearbyBird(t *testing.T) {
	f := newFixture(t)
	be := f.addBird(components.SpeciesChicken, 2, 0)
	v := &Visitor{Phase: VisitorSitting, X: 0, Y: 0, SitTimer: 1e9, TreatTimer: 1e9}
	f.fr.Visitor = v
	f.markFlock(be)

	// Attraction is a small per-frame roll; with enough frames it must land.
	for i := 0; i < 10000; i++ {
		UpdateVisitor(&f.fr, v)
		if got := f.events(EventBirdAttracted); len(got) > 0 {
			if got[0].Bird != be {
				t.Fatalf("attracted %v, want %v", got[0].Bird, be)
			}
			return
		}
	}
	t.Fatal("bird in range never attracted")
}

func TestAttractChanceComesFromConfig(t *testing.T) {
	f := newFixture(t)
	if f.fr.Tune.AttractChance <= 0 || f.fr.Tune.AttractChance >= 1 {
		t.Fatalf("attract chance = %v, want a per-frame probability from config", f.fr.Tune.AttractChance)
	}

	// A certain roll attracts on the very first sitting frame.
	f.fr.Tune.AttractChance = 1
	be := f.addBird(components.SpeciesChicken, 2, 0)
	v := &Visitor{Phase: VisitorSitting, X: 0, Y: 0, SitTimer: 1e9, TreatTimer: 1e9}
	f.fr.Visitor = v
	f.markFlock(be)

	UpdateVisitor(&f.fr, v)
	if len(f.events(EventBirdAttracted)) != 1 {
		t.Fatal("certain attract chance did not pull the bird in one frame")
	}
}

func TestVisitorIgnoresBirdsOutOfRange(t *testing.T) {
	f := newFixture(t)
	be := f.addBird(components.SpeciesChicken, f.fr.Tune.AttractRadius+5, 0)
	v := &Visitor{Phase: VisitorSitting, X: 0, Y: 0, SitTimer: 1e9, TreatTimer: 1e9}
	f.fr.Visitor = v
	f.markFlock(be)

	for i := 0; i < 2000; i++ {
		UpdateVisitor(&f.fr, v)
	}
	if len(f.events(EventBirdAttracted)) != 0 {
		t.Error("bird outside the attraction radius was attracted")
	}
}

func TestWanderingWithoutTargetForcesLeave(t *testing.T) {
	f := newFixture(t)
	v := &Visitor{Phase: VisitorWandering, X: 5, Y: 5}
	f.fr.Visitor = v

	UpdateVisitor(&f.fr, v)

	if v.Phase != VisitorLeaving {
		t.Errorf("phase = %v, want forced leave on the lost-target anomaly", v.Phase)
	}
}
