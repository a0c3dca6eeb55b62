package game

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/mossfeld/henyard/config"
	"github.com/mossfeld/henyard/systems"
)

// newTestGame builds a quiet deterministic game: no predator or visitor
// spawns unless the mutator re-enables them.
func newTestGame(t *testing.T, mutate func(cfg *config.Config)) (*Game, *RecordingPresenter) {
	t.Helper()
	if err := config.Init(""); err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	cfg := config.Cfg()
	cfg.Predators.Hawk.Enabled = false
	cfg.Predators.Dog.Enabled = false
	cfg.Visitor.SpawnMin = 1e9
	cfg.Visitor.SpawnMax = 1e9
	cfg.Eggs.LayDelay = 1e9
	if mutate != nil {
		mutate(cfg)
		cfg.RecomputeDerived()
	}

	rec := &RecordingPresenter{}
	return NewGameWithOptions(Options{Seed: 11, Headless: true, Presenter: rec}), rec
}

func allBirds(g *Game) []ecs.Entity {
	var out []ecs.Entity
	query := g.birdFilter.Query()
	for query.Next() {
		out = append(out, query.Entity())
	}
	return out
}

func TestEggCycleRoundTrip(t *testing.T) {
	g, _ := newTestGame(t, func(cfg *config.Config) {
		cfg.Eggs.LayDelay = 1
		cfg.Eggs.Window = 1
	})
	s := g.session

	if s.Eggs.Available {
		t.Fatal("eggs available at session start")
	}

	g.updateEggCycle(0.6)
	if s.Eggs.Available {
		t.Fatal("eggs available before the lay delay elapsed")
	}
	g.updateEggCycle(0.6)
	if !s.Eggs.Available {
		t.Fatal("eggs not available after the lay delay")
	}

	// Partial collection, then the window closes.
	s.Eggs.Collected[0] = true
	s.BasketStreak = 2
	g.updateEggCycle(1.2)
	if s.Eggs.Available {
		t.Error("eggs still available after the window closed")
	}
	for i, c := range s.Eggs.Collected {
		if c {
			t.Errorf("nest %d still marked collected after the cycle reset", i)
		}
	}
	if s.BasketStreak != 0 {
		t.Errorf("basket streak = %d, want reset after an incomplete window", s.BasketStreak)
	}
}

func TestCollectEggScoresAndFullBasketBonus(t *testing.T) {
	g, _ := newTestGame(t, nil)
	s := g.session
	score := &config.Cfg().Score

	s.Eggs.Available = true
	for i := range s.Eggs.Collected {
		g.collectEgg(i)
	}

	want := len(s.Eggs.Collected)*score.EggCollect + score.FullBasket
	if s.Score != want {
		t.Errorf("score = %d, want %d for a full basket", s.Score, want)
	}
	if s.EggsCollected != len(s.Eggs.Collected) {
		t.Errorf("eggs collected = %d, want %d", s.EggsCollected, len(s.Eggs.Collected))
	}
	if s.BasketStreak != 1 {
		t.Errorf("basket streak = %d, want 1", s.BasketStreak)
	}

	// Collecting an emptied nest is a no-op.
	before := s.Score
	g.collectEgg(0)
	if s.Score != before {
		t.Error("collecting an already-empty nest changed the score")
	}
}

func TestSessionCompletesAtTimeBudget(t *testing.T) {
	g, rec := newTestGame(t, func(cfg *config.Config) {
		cfg.Session.TimeBudget = 5
		cfg.Session.SafeInterval = 1e9
	})
	score := &config.Cfg().Score

	for i := 0; i < 600 && !g.session.Terminal(); i++ {
		g.UpdateHeadless(1.0 / 60)
	}

	s := g.session
	if s.Outcome != OutcomeCompleted {
		t.Fatalf("outcome = %v, want completed", s.Outcome)
	}
	want := score.CompletionBase + score.FullSurvival + score.ZeroKills
	if s.Score != want {
		t.Errorf("score = %d, want completion bundle %d", s.Score, want)
	}
	if g.collector.DeltaSum() != s.Score {
		t.Errorf("delta sum %d != final score %d", g.collector.DeltaSum(), s.Score)
	}
	if !rec.Ended || rec.EndOutcome != OutcomeCompleted {
		t.Error("presenter did not get the session-end notification")
	}

	// Terminal state freezes: further steps change nothing.
	elapsed, scoreBefore := s.Elapsed, s.Score
	g.UpdateHeadless(1.0 / 60)
	if s.Elapsed != elapsed || s.Score != scoreBefore {
		t.Error("terminal session still advancing")
	}
}

func TestSessionFailsWhenFlockIsLost(t *testing.T) {
	g, rec := newTestGame(t, func(cfg *config.Config) {
		cfg.Flock.Chickens = 1
		cfg.Flock.Ducks = 0
	})
	score := &config.Cfg().Score

	birds := allBirds(g)
	if len(birds) != 1 {
		t.Fatalf("flock size = %d, want 1", len(birds))
	}
	g.fx.Emit(systems.Event{Kind: systems.EventBirdRanAway, Bird: birds[0]})
	g.resolveEffects()
	g.sweepRemovals()
	g.checkTerminal()

	s := g.session
	if s.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %v, want failed with zero birds left", s.Outcome)
	}
	if s.Score != score.BirdRanAway {
		t.Errorf("score = %d, want %d", s.Score, score.BirdRanAway)
	}
	if s.RanAway != 1 || s.FlockCount() != 0 {
		t.Errorf("ran away = %d, flock = %d; want 1 and 0", s.RanAway, s.FlockCount())
	}
	if !rec.Ended || rec.EndOutcome != OutcomeFailed {
		t.Error("presenter did not get the failure notification")
	}
}

func TestSafeBonusOnlyWithFullFlock(t *testing.T) {
	g, _ := newTestGame(t, func(cfg *config.Config) {
		cfg.Session.SafeInterval = 1
	})
	score := &config.Cfg().Score

	g.updateSafeBonus(1.5)
	if g.session.Score != score.FlockSafeBonus {
		t.Fatalf("score = %d, want safe bonus %d", g.session.Score, score.FlockSafeBonus)
	}

	// A missing bird suppresses the next interval's bonus.
	g.session.Chickens--
	g.updateSafeBonus(1.5)
	if g.session.Score != score.FlockSafeBonus {
		t.Errorf("score = %d, bonus awarded with a bird missing", g.session.Score)
	}
}

func TestThrowFeedConsumesCharges(t *testing.T) {
	g, _ := newTestGame(t, nil)
	start := g.session.FeedCharges

	g.throwFeed()
	if g.session.FeedCharges != start-1 {
		t.Fatalf("charges = %d, want %d", g.session.FeedCharges, start-1)
	}
	query := g.cornFilter.Query()
	piles := 0
	for query.Next() {
		piles++
	}
	if piles != 1 {
		t.Fatalf("corn piles = %d, want 1", piles)
	}

	g.session.FeedCharges = 0
	g.throwFeed()
	if g.session.FeedCharges != 0 {
		t.Error("throwing with no charges went negative")
	}
}

func TestInteractTogglesCoopAndCollectsEggs(t *testing.T) {
	g, _ := newTestGame(t, nil)
	door := &g.yard.Coop

	g.player.X, g.player.Y = door.DoorX, door.DoorY
	g.interact()
	if !g.player.InsideCoop {
		t.Fatal("interact at the door did not enter the coop")
	}

	// With an egg in reach, interact collects instead of exiting.
	g.session.Eggs.Available = true
	g.player.X, g.player.Y = g.yard.Nests[0].X, g.yard.Nests[0].Y
	g.interact()
	g.resolveEffects()
	if !g.session.Eggs.Collected[0] {
		t.Fatal("interact at a nest did not collect the egg")
	}
	if g.player.InsideCoop != true {
		t.Fatal("collecting an egg ejected the player")
	}

	// No egg in reach and standing at the door exits.
	g.session.Eggs.Available = false
	g.player.X, g.player.Y = door.DoorX, door.DoorY-0.5
	g.interact()
	if g.player.InsideCoop {
		t.Error("interact at the door did not exit the coop")
	}
}
