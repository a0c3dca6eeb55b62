package game

import (
	"log/slog"

	"github.com/mossfeld/henyard/components"
	"github.com/mossfeld/henyard/config"
	"github.com/mossfeld/henyard/systems"
)

// Step advances the simulation by dt seconds. Phase order is fixed: player
// actions, corn decay, bird updates, predator updates, visitor update, then
// the resolver, removals, spawning, session timers and the terminal check.
// After the terminal outcome is set the state freezes.
func (g *Game) Step(dt float32, in Intents) {
	if g.session.Terminal() {
		return
	}
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	g.session.Elapsed += dt

	g.updatePlayer(dt, in)
	g.updateCorn(dt)
	g.buildFrame(dt, in)
	g.updateBirds()
	g.updatePredators()
	g.updateVisitor()
	g.resolveEffects()
	g.sweepRemovals()
	g.updateSpawns(dt)
	g.updateEggCycle(dt)
	g.updateSafeBonus(dt)
	g.checkTerminal()
	g.syncPresentation()
	g.flushTelemetry()
}

// flushTelemetry streams event rows out on the configured cadence so a
// crashed run still leaves usable output behind.
func (g *Game) flushTelemetry() {
	if g.output == nil {
		return
	}
	every := config.Cfg().Telemetry.FlushEvery
	if every <= 0 {
		return
	}
	if len(g.collector.Records)-g.flushedRecords >= every {
		_ = g.output.WriteEvents(g.collector.Records)
		g.flushedRecords = len(g.collector.Records)
	}
}

// buildFrame refreshes the shared read snapshot the behavior updates consume.
func (g *Game) buildFrame(dt float32, in Intents) {
	fr := &g.frame
	fr.DT = dt
	fr.Player = systems.PlayerInfo{
		X:       g.player.X,
		Y:       g.player.Y,
		Scaring: in.Scare && !g.player.InsideCoop,
	}
	fr.Visitor = g.visitor

	fr.Threats = fr.Threats[:0]
	query := g.predFilter.Query()
	for query.Next() {
		pos, _, pr := query.Get()
		fr.Threats = append(fr.Threats, systems.Threat{
			E: query.Entity(), X: pos.X, Y: pos.Y, Flying: g.tune.Kind(pr.Kind).Flying,
		})
	}

	fr.Corn = fr.Corn[:0]
	cq := g.cornFilter.Query()
	for cq.Next() {
		pos, _ := cq.Get()
		fr.Corn = append(fr.Corn, systems.CornSpot{E: cq.Entity(), X: pos.X, Y: pos.Y})
	}

	fr.Flock = fr.Flock[:0]
	bq := g.birdFilter.Query()
	for bq.Next() {
		pos, _, b := bq.Get()
		fr.Flock = append(fr.Flock, systems.FlockSpot{
			E: bq.Entity(), X: pos.X, Y: pos.Y, Free: birdIsFree(b.Phase),
		})
	}
}

// birdIsFree reports whether a bird can be targeted by predators or drawn to
// the visitor. Inside the coop, perched, or already captured means safe.
func birdIsFree(p components.BirdPhase) bool {
	switch p {
	case components.BirdCoopInside, components.BirdPerched, components.BirdCaptured:
		return false
	}
	return true
}

func (g *Game) updateBirds() {
	query := g.birdFilter.Query()
	for query.Next() {
		pos, vel, b := query.Get()
		systems.UpdateBird(&g.frame, query.Entity(), pos, vel, b)
	}
}

func (g *Game) updatePredators() {
	query := g.predFilter.Query()
	for query.Next() {
		pos, vel, p := query.Get()
		systems.UpdatePredator(&g.frame, query.Entity(), pos, vel, p)
	}
}

func (g *Game) updateVisitor() {
	if g.visitor == nil {
		return
	}
	gone := systems.UpdateVisitor(&g.frame, g.visitor)
	// Perched birds ride along; their positions track the visitor.
	for _, e := range g.visitor.Perched {
		if pos := g.posMap.Get(e); pos != nil {
			pos.X, pos.Y = g.visitor.X, g.visitor.Y
		}
	}
	if gone {
		g.releasePerched()
		g.visitor = nil
		g.resetVisitorTimer(config.Cfg())
	}
}

// updateCorn decays pile lifetimes and removes spent piles.
func (g *Game) updateCorn(dt float32) {
	query := g.cornFilter.Query()
	for query.Next() {
		_, pile := query.Get()
		pile.Remaining -= dt
		if pile.Remaining <= 0 {
			g.queueRemoval(query.Entity())
		}
	}
}

// updateEggCycle runs the shared nest timer. Collected flags reset when the
// window closes so the next availability phase starts full.
func (g *Game) updateEggCycle(dt float32) {
	s := g.session
	eggs := &config.Cfg().Eggs
	s.Eggs.Timer -= dt
	if s.Eggs.Timer > 0 {
		return
	}
	if s.Eggs.Available {
		// Window closed; an incomplete basket breaks the streak.
		if !s.Eggs.AllCollected() {
			s.BasketStreak = 0
		}
		s.Eggs.Available = false
		s.Eggs.Timer = float32(eggs.LayDelay)
		for i := range s.Eggs.Collected {
			s.Eggs.Collected[i] = false
		}
	} else {
		s.Eggs.Available = true
		s.Eggs.Timer = float32(eggs.Window)
	}
}

// updateSafeBonus awards the periodic bonus while the original flock is
// fully intact.
func (g *Game) updateSafeBonus(dt float32) {
	s := g.session
	s.SafeTimer -= dt
	if s.SafeTimer > 0 {
		return
	}
	cfg := config.Cfg()
	s.SafeTimer += float32(cfg.Session.SafeInterval)
	if s.FlockCount() == s.InitialFlock {
		g.addScore(cfg.Score.FlockSafeBonus, "flock_safe")
	}
}

// checkTerminal evaluates the end conditions once per frame, after all
// interactions for the frame have been applied.
func (g *Game) checkTerminal() {
	s := g.session
	if s.Terminal() {
		return
	}
	if s.FlockCount() <= 0 {
		g.finishSession(OutcomeFailed)
		return
	}
	if s.Elapsed >= s.Budget {
		g.awardCompletion()
		g.finishSession(OutcomeCompleted)
	}
}

// awardCompletion applies the end-of-session bonus bundle.
func (g *Game) awardCompletion() {
	cfg := config.Cfg()
	s := g.session
	g.addScore(cfg.Score.CompletionBase, "completion")
	if s.FlockCount() == s.InitialFlock {
		g.addScore(cfg.Score.FullSurvival, "full_survival")
	}
	if s.EggsCollected >= cfg.Session.HighEggTarget {
		g.addScore(cfg.Score.HighEggs, "high_eggs")
	}
	if s.Killed == 0 {
		g.addScore(cfg.Score.ZeroKills, "zero_kills")
	}
}

func (g *Game) finishSession(outcome Outcome) {
	s := g.session
	s.Outcome = outcome
	stats := s.stats()
	g.presenter.SetMusicMode(systems.MusicCalm)
	g.presenter.NotifySessionEnd(outcome, stats)
	if g.logStats {
		slog.Info("session stats",
			"outcome", outcome.String(),
			"score", stats.Score,
			"duration", stats.Duration,
			"birds_remaining", stats.BirdsRemaining,
			"eggs", stats.EggsCollected,
			"ran_away", stats.RanAway,
			"killed", stats.Killed,
			"defeated", stats.Defeated,
		)
	}
	if g.output != nil {
		_ = g.output.WriteEvents(g.collector.Records)
		_ = g.output.WriteSummary(g.collector.Summarize(outcome.String(), float64(s.Elapsed), s.Score, stats.BirdsRemaining))
	}
}

// syncPresentation picks the music mode and pushes the per-frame ticks.
// Danger outranks the visitor's tune, which outranks calm.
func (g *Game) syncPresentation() {
	if g.session.Terminal() {
		return
	}
	mode := systems.MusicCalm
	if g.visitor != nil && g.visitor.Phase == systems.VisitorSitting {
		mode = systems.MusicLiz
	}
	if len(g.frame.Threats) > 0 {
		mode = systems.MusicDanger
	}
	if mode != g.musicMode {
		g.musicMode = mode
		g.presenter.SetMusicMode(mode)
	}
	g.presenter.NotifyTimerTick(g.session.Remaining())
}
