package game

import (
	"github.com/mossfeld/henyard/components"
	"github.com/mossfeld/henyard/config"
	"github.com/mossfeld/henyard/systems"
)

// Player is the farmer avatar. It is not an ECS entity; there is exactly one
// and every system reads it through the frame context.
type Player struct {
	X, Y       float32
	Speed      float32
	InsideCoop bool
}

func NewPlayer(cfg *config.Config) Player {
	return Player{
		X:     0,
		Y:     5,
		Speed: float32(cfg.Player.Speed),
	}
}

// updatePlayer applies movement and the three actions for one frame. Actions
// only queue effects; the resolver applies them.
func (g *Game) updatePlayer(dt float32, in Intents) {
	p := &g.player

	mx, my := in.MoveX, in.MoveY
	if mx != 0 || my != 0 {
		mx, my = systems.Norm(mx, my)
		p.X += mx * p.Speed * dt
		p.Y += my * p.Speed * dt
	}

	if p.InsideCoop {
		// Inside the coop movement is confined to the footprint.
		c := &g.yard.Coop
		p.X = clampRange(p.X, c.CX-c.HW, c.CX+c.HW)
		p.Y = clampRange(p.Y, c.CY-c.HD, c.CY+c.HD)
	} else {
		p.X, p.Y = g.yard.Clamp(p.X, p.Y)
	}

	if in.ScareHit && !p.InsideCoop {
		g.scarePredators()
	}
	if in.Feed && !p.InsideCoop {
		g.throwFeed()
	}
	if in.Interact {
		g.interact()
	}
}

// scarePredators strikes every predator within its kind's scare range. One
// strike per key press; birds react to the held key through the frame
// context instead.
func (g *Game) scarePredators() {
	query := g.predFilter.Query()
	for query.Next() {
		pos, _, pr := query.Get()
		rng := g.tune.Kind(pr.Kind).ScareRange
		if systems.Dist2(g.player.X, g.player.Y, pos.X, pos.Y) <= rng*rng {
			g.fx.Emit(systems.Event{Kind: systems.EventPredatorStruck, Predator: query.Entity()})
		}
	}
}

// throwFeed drops a corn pile at the player's feet, consuming a charge.
func (g *Game) throwFeed() {
	if g.session.FeedCharges <= 0 {
		return
	}
	g.session.FeedCharges--
	g.cornMapper.NewEntity(
		&components.Position{X: g.player.X, Y: g.player.Y},
		&components.CornPile{Remaining: g.tune.FeedLifetime},
	)
	g.fx.Emit(systems.Event{Kind: systems.EventCornThrown})
	g.fx.PlayCue(systems.CueCornThrown)
}

// interact handles the context action: collect an egg when one is in reach,
// otherwise pass through the coop door.
func (g *Game) interact() {
	p := &g.player
	c := &g.yard.Coop

	if p.InsideCoop {
		if nest, ok := g.nestInReach(); ok {
			g.fx.Emit(systems.Event{Kind: systems.EventEggCollected, Nest: nest})
			return
		}
		if c.AtDoor(p.X, p.Y) {
			p.InsideCoop = false
			p.X, p.Y = c.DoorX, c.DoorY+0.5
		}
		return
	}
	if c.AtDoor(p.X, p.Y) {
		p.InsideCoop = true
		p.X, p.Y = c.DoorX, c.DoorY-0.5
	}
}

// nestInReach finds the nearest nest that still holds an uncollected egg.
func (g *Game) nestInReach() (int, bool) {
	if !g.session.Eggs.Available {
		return 0, false
	}
	reach := g.tune.NestReach
	best, bestD2 := -1, reach*reach
	for i, n := range g.yard.Nests {
		if g.session.Eggs.Collected[i] {
			continue
		}
		d2 := systems.Dist2(g.player.X, g.player.Y, n.X, n.Y)
		if d2 <= bestD2 {
			best, bestD2 = i, d2
		}
	}
	return best, best >= 0
}

func clampRange(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
