package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/mossfeld/henyard/components"
	"github.com/mossfeld/henyard/config"
	"github.com/mossfeld/henyard/systems"
)

// spawnInitialFlock places the starting birds at random interior positions.
func (g *Game) spawnInitialFlock(cfg *config.Config) {
	for i := 0; i < cfg.Flock.Chickens; i++ {
		g.spawnBird(components.SpeciesChicken)
	}
	for i := 0; i < cfg.Flock.Ducks; i++ {
		g.spawnBird(components.SpeciesDuck)
	}
	slog.Info("flock spawned", "chickens", cfg.Flock.Chickens, "ducks", cfg.Flock.Ducks)
}

func (g *Game) spawnBird(sp components.Species) ecs.Entity {
	x, y := g.yard.RandomInterior(g.rng)
	b := components.Bird{
		Species: sp,
		Phase:   components.BirdWandering,
	}
	if sp == components.SpeciesChicken {
		b.CoopTimer = g.rangeFloat(g.tune.CoopVisitMin, g.tune.CoopVisitMax)
	}
	return g.birdMapper.NewEntity(
		&components.Position{X: x, Y: y},
		&components.Velocity{},
		&b,
	)
}

// spawnPredator enters a predator at a random yard edge. Flyers start at
// cruise altitude.
func (g *Game) spawnPredator(kind components.PredatorKind) ecs.Entity {
	kt := g.tune.Kind(kind)
	x, y := g.yard.RandomEdge(g.rng)
	p := components.Predator{
		Kind:   kind,
		Phase:  components.PredHunting,
		Health: kt.Health,
	}
	if kt.Flying {
		p.Alt = g.tune.CruiseAltitude
	}
	slog.Info("predator spawned", "kind", kind.String(), "x", x, "y", y)
	return g.predMapper.NewEntity(
		&components.Position{X: x, Y: y},
		&components.Velocity{},
		&p,
	)
}

// updateSpawns ticks the jittered predator and visitor cadences.
func (g *Game) updateSpawns(dt float32) {
	cfg := config.Cfg()

	if cfg.Predators.Hawk.Enabled {
		g.hawkTimer -= dt
		if g.hawkTimer <= 0 {
			g.spawnPredator(components.KindHawk)
			g.hawkTimer = g.rangeFloat(float32(cfg.Predators.Hawk.SpawnMin), float32(cfg.Predators.Hawk.SpawnMax))
		}
	}
	if cfg.Predators.Dog.Enabled {
		g.dogTimer -= dt
		if g.dogTimer <= 0 {
			g.spawnPredator(components.KindDog)
			g.dogTimer = g.rangeFloat(float32(cfg.Predators.Dog.SpawnMin), float32(cfg.Predators.Dog.SpawnMax))
		}
	}

	if g.visitor == nil {
		g.visitorTimer -= dt
		if g.visitorTimer <= 0 {
			g.visitor = systems.NewVisitor(g.yard, g.rng)
			slog.Info("visitor arrived")
		}
	}
}

func (g *Game) resetSpawnTimers(cfg *config.Config) {
	g.hawkTimer = g.rangeFloat(float32(cfg.Predators.Hawk.SpawnMin), float32(cfg.Predators.Hawk.SpawnMax))
	g.dogTimer = g.rangeFloat(float32(cfg.Predators.Dog.SpawnMin), float32(cfg.Predators.Dog.SpawnMax))
	g.resetVisitorTimer(cfg)
}

func (g *Game) resetVisitorTimer(cfg *config.Config) {
	g.visitorTimer = g.rangeFloat(float32(cfg.Visitor.SpawnMin), float32(cfg.Visitor.SpawnMax))
}

// queueRemoval defers an entity removal to the end-of-frame sweep. Removing
// mid-frame would invalidate live queries and the frame snapshot.
func (g *Game) queueRemoval(e ecs.Entity) {
	g.toRemove = append(g.toRemove, e)
}

func (g *Game) sweepRemovals() {
	for _, e := range g.toRemove {
		if g.world.Alive(e) {
			g.world.RemoveEntity(e)
		}
	}
	g.toRemove = g.toRemove[:0]
}

func (g *Game) rangeFloat(lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Float32()*(hi-lo)
}
