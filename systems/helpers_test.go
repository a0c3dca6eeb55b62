package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/mossfeld/henyard/components"
	"github.com/mossfeld/henyard/config"
)

// fixture wires a minimal world and frame context for driving single agents.
type fixture struct {
	world   *ecs.World
	birds   *ecs.Map3[components.Position, components.Velocity, components.Bird]
	preds   *ecs.Map3[components.Position, components.Velocity, components.Predator]
	velMap  *ecs.Map1[components.Velocity]
	predMap *ecs.Map1[components.Predator]
	fx      Effects
	fr      Frame
}

func newFixture(tb testing.TB) *fixture {
	tb.Helper()
	if err := config.Init(""); err != nil {
		tb.Fatalf("loading default config: %v", err)
	}
	cfg := config.Cfg()

	f := &fixture{world: ecs.NewWorld()}
	f.birds = ecs.NewMap3[components.Position, components.Velocity, components.Bird](f.world)
	f.preds = ecs.NewMap3[components.Position, components.Velocity, components.Predator](f.world)
	f.velMap = ecs.NewMap1[components.Velocity](f.world)
	f.predMap = ecs.NewMap1[components.Predator](f.world)
	f.fr = Frame{
		DT:      1.0 / 60,
		RNG:     rand.New(rand.NewSource(7)),
		Tune:    NewTuning(cfg),
		Yard:    NewYard(&cfg.Yard),
		World:   f.world,
		PosMap:  ecs.NewMap1[components.Position](f.world),
		BirdMap: ecs.NewMap1[components.Bird](f.world),
		FX:      &f.fx,
	}
	return f
}

// addBird creates a wandering bird with cadences parked far in the future.
func (f *fixture) addBird(sp components.Species, x, y float32) ecs.Entity {
	return f.birds.NewEntity(
		&components.Position{X: x, Y: y},
		&components.Velocity{},
		&components.Bird{Species: sp, Phase: components.BirdWandering, WanderTimer: 30, CoopTimer: 600},
	)
}

func (f *fixture) addPredator(kind components.PredatorKind, x, y float32) ecs.Entity {
	kt := f.fr.Tune.Kind(kind)
	p := components.Predator{Kind: kind, Phase: components.PredHunting, Health: kt.Health}
	if kt.Flying {
		p.Alt = f.fr.Tune.CruiseAltitude
	}
	return f.preds.NewEntity(&components.Position{X: x, Y: y}, &components.Velocity{}, &p)
}

func (f *fixture) bird(e ecs.Entity) (*components.Position, *components.Velocity, *components.Bird) {
	return f.fr.PosMap.Get(e), f.velMap.Get(e), f.fr.BirdMap.Get(e)
}

func (f *fixture) pred(e ecs.Entity) (*components.Position, *components.Velocity, *components.Predator) {
	return f.fr.PosMap.Get(e), f.velMap.Get(e), f.predMap.Get(e)
}

func (f *fixture) stepBird(e ecs.Entity) {
	pos, vel, b := f.bird(e)
	UpdateBird(&f.fr, e, pos, vel, b)
}

func (f *fixture) stepPred(e ecs.Entity) {
	pos, vel, p := f.pred(e)
	UpdatePredator(&f.fr, e, pos, vel, p)
}

// markThreat mirrors the game's frame snapshot for a single predator.
func (f *fixture) markThreat(e ecs.Entity) {
	pos, _, p := f.pred(e)
	f.fr.Threats = []Threat{{E: e, X: pos.X, Y: pos.Y, Flying: f.fr.Tune.Kind(p.Kind).Flying}}
}

// markFlock mirrors the game's frame snapshot for the given birds.
func (f *fixture) markFlock(es ...ecs.Entity) {
	f.fr.Flock = f.fr.Flock[:0]
	for _, e := range es {
		pos, _, b := f.bird(e)
		free := b.Phase != components.BirdCaptured && b.Phase != components.BirdPerched &&
			b.Phase != components.BirdCoopInside
		f.fr.Flock = append(f.fr.Flock, FlockSpot{E: e, X: pos.X, Y: pos.Y, Free: free})
	}
}

func (f *fixture) events(kind EventKind) []Event {
	var out []Event
	for _, ev := range f.fx.Events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func (f *fixture) hasCue(c Cue) bool {
	for _, got := range f.fx.Cues {
		if got == c {
			return true
		}
	}
	return false
}
