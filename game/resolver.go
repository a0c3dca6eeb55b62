package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/mossfeld/henyard/components"
	"github.com/mossfeld/henyard/config"
	"github.com/mossfeld/henyard/systems"
)

// resolveEffects applies every event queued during agent updates and forwards
// the collected audio cues. Running all cross-agent mutation here, after the
// behavior pass, means no agent ever observes a half-applied interaction.
func (g *Game) resolveEffects() {
	for i := range g.fx.Events {
		g.applyEvent(g.fx.Events[i])
	}
	for _, c := range g.fx.Cues {
		g.presenter.PlayCue(c)
	}
	g.fx.Reset()
}

func (g *Game) applyEvent(ev systems.Event) {
	score := &config.Cfg().Score
	s := g.session

	switch ev.Kind {
	case systems.EventBirdCaptured:
		bird := g.birdMap.Get(ev.Bird)
		pred := g.predMap.Get(ev.Predator)
		if bird == nil || pred == nil {
			return
		}
		// A bird already taken this frame, or a predator already carrying,
		// voids a second capture.
		if bird.Phase == components.BirdCaptured || pred.Phase == components.PredCarrying {
			return
		}
		bird.Phase = components.BirdCaptured
		pred.Phase = components.PredCarrying
		pred.Prey = ev.Bird
		pred.Target = ecs.Entity{}
		pred.StalkTimer = 0
		g.presenter.PlayCue(systems.CueBirdCaptured)
		g.recordEvent(ev.Kind, bird.Species.String(), 0)

	case systems.EventBirdReleased:
		g.releasePrey(ev.Predator)

	case systems.EventPredatorStruck:
		pred := g.predMap.Get(ev.Predator)
		if pred == nil {
			return
		}
		g.releasePrey(ev.Predator)
		pred.Health--
		pred.Target = ecs.Entity{}
		pred.StalkTimer = 0
		if pred.Health <= 0 {
			s.Defeated++
			g.addScore(score.PredatorDefeated, "predator_defeated")
			g.queueRemoval(ev.Predator)
			g.recordEvent(systems.EventPredatorStruck, pred.Kind.String()+" defeated", score.PredatorDefeated)
			return
		}
		pred.Phase = components.PredFleeing
		g.presenter.PlayCue(systems.CuePredatorScared)
		g.recordEvent(ev.Kind, pred.Kind.String(), 0)

	case systems.EventPredatorEscaped:
		// A strike earlier in the same frame releases the prey and voids
		// the escape; only a predator still carrying this bird leaves.
		pred := g.predMap.Get(ev.Predator)
		if pred == nil || pred.Phase != components.PredCarrying || pred.Prey != ev.Bird {
			return
		}
		// The carried bird is lost for good; predator and prey both leave
		// the simulation in the same sweep.
		bird := g.birdMap.Get(ev.Bird)
		if bird != nil {
			g.dropFromRoster(bird.Species)
			s.Killed++
			g.addScore(score.BirdKilled, "bird_killed")
			g.queueRemoval(ev.Bird)
		}
		g.queueRemoval(ev.Predator)
		g.recordEvent(ev.Kind, "", score.BirdKilled)

	case systems.EventBirdRanAway:
		bird := g.birdMap.Get(ev.Bird)
		if bird == nil {
			return
		}
		g.dropFromRoster(bird.Species)
		s.RanAway++
		g.addScore(score.BirdRanAway, "bird_ran_away")
		g.queueRemoval(ev.Bird)
		g.recordEvent(ev.Kind, bird.Species.String(), score.BirdRanAway)

	case systems.EventBirdAttracted:
		bird := g.birdMap.Get(ev.Bird)
		if bird == nil || g.visitor == nil {
			return
		}
		if freeForVisitor(bird.Phase) {
			bird.Phase = components.BirdAttracted
		}

	case systems.EventBirdPerched:
		bird := g.birdMap.Get(ev.Bird)
		if bird == nil || g.visitor == nil {
			return
		}
		if bird.Phase != components.BirdAttracted {
			return
		}
		// Two birds can roll a perch in the same frame; the bound holds here.
		if len(g.visitor.Perched) >= g.tune.MaxPerched {
			return
		}
		bird.Phase = components.BirdPerched
		g.visitor.Perched = append(g.visitor.Perched, ev.Bird)
		g.recordEvent(ev.Kind, bird.Species.String(), 0)

	case systems.EventPerchCleared:
		g.releasePerched()

	case systems.EventTreatTossed:
		g.recordEvent(ev.Kind, "", 0)

	case systems.EventEggCollected:
		g.collectEgg(ev.Nest)

	case systems.EventCornThrown:
		g.recordEvent(ev.Kind, "", 0)

	default:
		slog.Warn("unhandled event", "kind", ev.Kind.String())
	}
}

// releasePrey undoes a capture or stalk lock. Bird and predator change
// together; a released bird resumes fleeing from its captor.
func (g *Game) releasePrey(predator ecs.Entity) {
	pred := g.predMap.Get(predator)
	if pred == nil || pred.Phase != components.PredCarrying {
		return
	}
	if bird := g.birdMap.Get(pred.Prey); bird != nil {
		bird.Phase = components.BirdFleeing
		bird.FleeTimer = g.tune.FleeCooldown
		bird.FleeSpeed = g.tune.FleeMultiplier
		bird.OutTimer = 0
		if pos := g.posMap.Get(pred.Prey); pos != nil {
			pos.X, pos.Y = g.yard.Clamp(pos.X, pos.Y)
		}
		g.recordEvent(systems.EventBirdReleased, bird.Species.String(), 0)
	}
	pred.Phase = components.PredFleeing
	pred.Prey = ecs.Entity{}
}

// releasePerched returns every perched bird to wandering beside the visitor.
func (g *Game) releasePerched() {
	if g.visitor == nil {
		return
	}
	for _, e := range g.visitor.Perched {
		bird := g.birdMap.Get(e)
		if bird == nil || bird.Phase != components.BirdPerched {
			continue
		}
		bird.Phase = components.BirdWandering
		bird.WanderTimer = 0
		bird.OutTimer = 0
		if pos := g.posMap.Get(e); pos != nil {
			pos.X = g.visitor.X + (g.rng.Float32()-0.5)*2
			pos.Y = g.visitor.Y + (g.rng.Float32()-0.5)*2
		}
	}
	g.visitor.Perched = g.visitor.Perched[:0]
}

func (g *Game) collectEgg(nest int) {
	s := g.session
	if !s.Eggs.Available || nest < 0 || nest >= len(s.Eggs.Collected) || s.Eggs.Collected[nest] {
		return
	}
	score := &config.Cfg().Score
	s.Eggs.Collected[nest] = true
	s.EggsCollected++
	g.addScore(score.EggCollect, "egg_collect")
	g.presenter.PlayCue(systems.CueEggCollect)
	g.recordEvent(systems.EventEggCollected, "", score.EggCollect)
	if s.Eggs.AllCollected() {
		s.BasketStreak++
		g.addScore(score.FullBasket, "full_basket")
		g.recordEvent(systems.EventEggCollected, "full_basket", score.FullBasket)
	}
}

// addScore is the only place the score changes. Telemetry replays these
// deltas to cross-check the final total.
func (g *Game) addScore(delta int, reason string) {
	if delta == 0 {
		return
	}
	g.session.Score += delta
	g.collector.RecordScore(float64(g.session.Elapsed), reason, delta, g.session.Score)
	g.presenter.NotifyScoreChange(delta, reason)
	if delta > 0 {
		g.presenter.PlayCue(systems.CueScoreUp)
	} else {
		g.presenter.PlayCue(systems.CueScoreDown)
	}
}

func (g *Game) dropFromRoster(sp components.Species) {
	if sp == components.SpeciesDuck {
		g.session.Ducks--
	} else {
		g.session.Chickens--
	}
	g.presenter.NotifyRosterChange(g.session.Chickens, g.session.Ducks)
}

func (g *Game) recordEvent(kind systems.EventKind, detail string, delta int) {
	g.collector.RecordEvent(float64(g.session.Elapsed), kind.String(), detail, delta, g.session.Score)
}

// freeForVisitor mirrors the capture eligibility used when building the
// frame's flock snapshot.
func freeForVisitor(p components.BirdPhase) bool {
	switch p {
	case components.BirdWandering, components.BirdSeekingFeed, components.BirdCoopWalking, components.BirdCoopReturning:
		return true
	}
	return false
}
