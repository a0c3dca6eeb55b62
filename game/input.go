package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Intents is the player input for one frame, decoupled from the input
// device so headless runs and tests can drive the step loop directly.
type Intents struct {
	MoveX, MoveY float32
	Scare        bool // held; birds keep their distance while active
	ScareHit     bool // press edge; lands one strike on predators in range
	Feed         bool
	Interact     bool
}

// ReadIntents polls the keyboard. WASD and arrows move, space scares, F
// throws feed, E interacts.
func ReadIntents() Intents {
	var in Intents
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		in.MoveY -= 1
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		in.MoveY += 1
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		in.MoveX -= 1
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		in.MoveX += 1
	}
	in.Scare = rl.IsKeyDown(rl.KeySpace)
	in.ScareHit = rl.IsKeyPressed(rl.KeySpace)
	in.Feed = rl.IsKeyPressed(rl.KeyF)
	in.Interact = rl.IsKeyPressed(rl.KeyE)
	return in
}

// Update runs one graphical frame: poll input, handle meta keys, step the
// simulation at the current speed. Headless games never touch the input
// device and step at a fixed delta instead.
func (g *Game) Update() {
	if g.headless {
		g.UpdateHeadless(1.0 / 60)
		return
	}
	g.handleMetaKeys()
	if g.paused || g.session.Terminal() {
		return
	}
	dt := rl.GetFrameTime()
	in := ReadIntents()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(dt, in)
	}
}

// UpdateHeadless steps one fixed-delta frame with no input.
func (g *Game) UpdateHeadless(dt float32) {
	g.Step(dt, Intents{})
}

func (g *Game) handleMetaKeys() {
	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		g.stepsPerUpdate = 1
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		g.stepsPerUpdate = 2
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		g.stepsPerUpdate = 4
	}
	if rl.IsKeyPressed(rl.KeyR) && g.session.Terminal() {
		g.wantRestart = true
	}
}
