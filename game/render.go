package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mossfeld/henyard/camera"
	"github.com/mossfeld/henyard/components"
	"github.com/mossfeld/henyard/systems"
)

var (
	colGrass    = rl.Color{R: 86, G: 125, B: 70, A: 255}
	colDirt     = rl.Color{R: 120, G: 100, B: 70, A: 255}
	colFence    = rl.Color{R: 160, G: 130, B: 90, A: 255}
	colCoop     = rl.Color{R: 140, G: 70, B: 50, A: 255}
	colCoopRoof = rl.Color{R: 100, G: 50, B: 40, A: 255}
	colPond     = rl.Color{R: 70, G: 120, B: 180, A: 255}
	colChicken  = rl.Color{R: 245, G: 240, B: 225, A: 255}
	colDuck     = rl.Color{R: 250, G: 250, B: 255, A: 255}
	colHawk     = rl.Color{R: 110, G: 80, B: 60, A: 255}
	colDog      = rl.Color{R: 90, G: 90, B: 95, A: 255}
	colPlayer   = rl.Color{R: 70, G: 110, B: 200, A: 255}
	colVisitor  = rl.Color{R: 200, G: 120, B: 180, A: 255}
	colCorn     = rl.Color{R: 240, G: 200, B: 80, A: 255}
	colEgg      = rl.Color{R: 255, G: 250, B: 230, A: 255}
)

// Draw renders the yard, every agent and the HUD. The simulation never reads
// anything back from here.
func (g *Game) Draw(cam *camera.Camera) {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(colGrass)

	g.drawYard(cam)
	g.drawCorn(cam)
	g.drawBirds(cam)
	g.drawVisitorFigure(cam)
	g.drawPredators(cam)
	g.drawPlayerFigure(cam)
	g.drawHUD()
	g.drawMinimap()

	if g.paused {
		rl.DrawText("PAUSED", 10, 85, 20, rl.Yellow)
	}
	if g.session.Terminal() {
		g.drawEndPanel()
	}
}

func (g *Game) drawYard(cam *camera.Camera) {
	y := g.yard

	// Fence square
	fx, fy := cam.WorldToScreen(-y.FenceHalf, -y.FenceHalf)
	side := cam.Scale(2 * y.FenceHalf)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: fx, Y: fy, Width: side, Height: side}, 3, colFence)

	// Pond
	px, py := cam.WorldToScreen(y.Pond.CX, y.Pond.CY)
	rl.DrawCircle(int32(px), int32(py), cam.Scale(y.Pond.R), colPond)

	// Coop footprint, roof tint when the player is inside
	c := &y.Coop
	cx, cy := cam.WorldToScreen(c.CX-c.HW, c.CY-c.HD)
	cw, ch := cam.Scale(2*c.HW), cam.Scale(2*c.HD)
	body := colCoop
	if g.player.InsideCoop {
		body = colDirt
	}
	rl.DrawRectangle(int32(cx), int32(cy), int32(cw), int32(ch), body)
	rl.DrawRectangleLines(int32(cx), int32(cy), int32(cw), int32(ch), colCoopRoof)

	// Door marker
	dx, dy := cam.WorldToScreen(c.DoorX, c.DoorY)
	rl.DrawCircle(int32(dx), int32(dy), cam.Scale(c.DoorR)/2, rl.Color{R: 60, G: 40, B: 30, A: 255})

	// Nests show only while the player is inside
	if g.player.InsideCoop {
		for i, n := range y.Nests {
			nx, ny := cam.WorldToScreen(n.X, n.Y)
			rl.DrawCircle(int32(nx), int32(ny), cam.Scale(0.4), colDirt)
			if g.session.Eggs.Available && !g.session.Eggs.Collected[i] {
				rl.DrawCircle(int32(nx), int32(ny), cam.Scale(0.22), colEgg)
			}
		}
	}
}

func (g *Game) drawCorn(cam *camera.Camera) {
	query := g.cornFilter.Query()
	for query.Next() {
		pos, pile := query.Get()
		sx, sy := cam.WorldToScreen(pos.X, pos.Y)
		r := cam.Scale(0.3 + 0.2*pile.Remaining/g.tune.FeedLifetime)
		rl.DrawCircle(int32(sx), int32(sy), r, colCorn)
	}
}

func (g *Game) drawBirds(cam *camera.Camera) {
	query := g.birdFilter.Query()
	for query.Next() {
		pos, _, b := query.Get()
		sx, sy := cam.WorldToScreen(pos.X, pos.Y)
		col := colChicken
		if b.Species == components.SpeciesDuck {
			col = colDuck
		}
		switch b.Phase {
		case components.BirdCaptured:
			col.A = 160
		case components.BirdFleeing:
			// quick tell for panicked birds
			rl.DrawCircleLines(int32(sx), int32(sy), cam.Scale(0.7), rl.Red)
		case components.BirdCoopInside:
			if !g.player.InsideCoop {
				continue
			}
		}
		rl.DrawCircle(int32(sx), int32(sy), cam.Scale(0.45), col)
		rl.DrawCircle(int32(sx)+2, int32(sy)-2, cam.Scale(0.12), rl.Orange)
	}
}

func (g *Game) drawPredators(cam *camera.Camera) {
	query := g.predFilter.Query()
	for query.Next() {
		pos, _, p := query.Get()
		sx, sy := cam.WorldToScreen(pos.X, pos.Y)
		if p.Kind == components.KindHawk {
			// Altitude lifts the sprite and drops a ground shadow.
			rl.DrawCircle(int32(sx), int32(sy), cam.Scale(0.3), rl.Color{R: 0, G: 0, B: 0, A: 60})
			lift := cam.Scale(p.Alt * 0.5)
			drawTriangle(sx, sy-lift, cam.Scale(0.8), colHawk)
		} else {
			drawTriangle(sx, sy, cam.Scale(0.9), colDog)
		}
	}
}

func drawTriangle(sx, sy, r float32, col rl.Color) {
	rl.DrawTriangle(
		rl.Vector2{X: sx, Y: sy - r},
		rl.Vector2{X: sx - r, Y: sy + r},
		rl.Vector2{X: sx + r, Y: sy + r},
		col,
	)
}

func (g *Game) drawPlayerFigure(cam *camera.Camera) {
	sx, sy := cam.WorldToScreen(g.player.X, g.player.Y)
	rl.DrawCircle(int32(sx), int32(sy), cam.Scale(0.6), colPlayer)
	if g.player.InsideCoop {
		rl.DrawCircleLines(int32(sx), int32(sy), cam.Scale(0.8), rl.White)
	}
}

func (g *Game) drawVisitorFigure(cam *camera.Camera) {
	v := g.visitor
	if v == nil {
		return
	}
	sx, sy := cam.WorldToScreen(v.X, v.Y)
	rl.DrawCircle(int32(sx), int32(sy), cam.Scale(0.55), colVisitor)
	if v.Phase == systems.VisitorSitting {
		rl.DrawText("~", int32(sx)-3, int32(sy)-18, 16, rl.White)
	}
}

func (g *Game) drawHUD() {
	s := g.session
	rl.DrawText(fmt.Sprintf("Score: %d", s.Score), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Time: %3.0fs  Flock: %d/%d  Feed: %d",
		s.Remaining(), s.FlockCount(), s.InitialFlock, s.FeedCharges), 10, 35, 20, rl.White)
	if s.Eggs.Available {
		n := 0
		for _, c := range s.Eggs.Collected {
			if !c {
				n++
			}
		}
		rl.DrawText(fmt.Sprintf("Eggs ready: %d", n), 10, 60, 20, colCorn)
	}
	if g.stepsPerUpdate > 1 {
		rl.DrawText(fmt.Sprintf("Speed: %dx", g.stepsPerUpdate), 10, 110, 20, rl.Gray)
	}
}

// drawMinimap paints a small overview in the corner so off-screen trouble
// at the yard edge is still noticeable.
func (g *Game) drawMinimap() {
	const size = 120
	x0 := rl.GetScreenWidth() - size - 10
	y0 := int32(10)
	rl.DrawRectangle(int32(x0), y0, size, size, rl.Color{R: 0, G: 0, B: 0, A: 140})
	rl.DrawRectangleLines(int32(x0), y0, size, size, rl.Gray)

	half := g.yard.ClampHalf
	plot := func(wx, wy float32, col rl.Color) {
		mx := int32(x0) + int32((wx/half+1)*size/2)
		my := y0 + int32((wy/half+1)*size/2)
		rl.DrawCircle(mx, my, 2, col)
	}

	bq := g.birdFilter.Query()
	for bq.Next() {
		pos, _, b := bq.Get()
		if b.Species == components.SpeciesDuck {
			plot(pos.X, pos.Y, colDuck)
		} else {
			plot(pos.X, pos.Y, colChicken)
		}
	}
	pq := g.predFilter.Query()
	for pq.Next() {
		pos, _, _ := pq.Get()
		plot(pos.X, pos.Y, rl.Red)
	}
	plot(g.player.X, g.player.Y, colPlayer)
	if g.visitor != nil {
		plot(g.visitor.X, g.visitor.Y, colVisitor)
	}
}

func (g *Game) drawEndPanel() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	rl.DrawRectangle(0, 0, int32(w), int32(h), rl.Color{R: 0, G: 0, B: 0, A: 160})

	panelW, panelH := float32(360), float32(220)
	px := float32(w)/2 - panelW/2
	py := float32(h)/2 - panelH/2
	rl.DrawRectangle(int32(px), int32(py), int32(panelW), int32(panelH), rl.Color{R: 20, G: 25, B: 30, A: 240})
	rl.DrawRectangleLines(int32(px), int32(py), int32(panelW), int32(panelH), rl.Gray)

	title := "DAY SURVIVED"
	col := rl.Green
	if g.session.Outcome == OutcomeFailed {
		title = "FLOCK LOST"
		col = rl.Red
	}
	rl.DrawText(title, int32(px)+20, int32(py)+16, 24, col)

	st := g.session.stats()
	lines := []string{
		fmt.Sprintf("Score: %d", st.Score),
		fmt.Sprintf("Birds remaining: %d", st.BirdsRemaining),
		fmt.Sprintf("Eggs collected: %d", st.EggsCollected),
		fmt.Sprintf("Ran away: %d  Taken: %d  Driven off: %d", st.RanAway, st.Killed, st.Defeated),
	}
	for i, line := range lines {
		rl.DrawText(line, int32(px)+20, int32(py)+52+int32(i)*22, 16, rl.White)
	}

	if gui.Button(rl.Rectangle{X: px + panelW/2 - 70, Y: py + panelH - 48, Width: 140, Height: 32}, "Play Again [R]") {
		g.wantRestart = true
	}
}
