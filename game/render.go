package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/inspector"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/ui"
)

// Agent triangle size in world units.
const (
	agentLength = 10
	agentWidth  = 6
)

var (
	colorBackground = rl.Color{R: 18, G: 20, B: 24, A: 255}
	colorWorldEdge  = rl.Color{R: 70, G: 70, B: 80, A: 255}
)

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	g.drawWorldEdge()
	g.drawPellets()
	g.drawAgents()
	g.drawSelection()
	g.drawUI()

	rl.EndDrawing()
}

// drawWorldEdge outlines the world rectangle.
func (g *Game) drawWorldEdge() {
	left, top := g.camera.WorldToScreen(g.bounds.Left, g.bounds.Top)
	right, bottom := g.camera.WorldToScreen(g.bounds.Right, g.bounds.Bottom)
	rl.DrawRectangleLines(int32(left), int32(top), int32(right-left), int32(bottom-top), colorWorldEdge)
}

// drawPellets draws every visible pellet as a circle colored by effect kind.
func (g *Game) drawPellets() {
	zoom := g.camera.Zoom

	query := g.pelletFilter.Query()
	for query.Next() {
		p := query.Get()
		x, y := p.Position()
		if !g.camera.IsVisible(x, y, p.Radius()) {
			continue
		}
		sx, sy := g.camera.WorldToScreen(x, y)
		rl.DrawCircle(int32(sx), int32(sy), p.Radius()*zoom, ui.KindColor(p.Kind()))
	}
}

// drawAgents draws every visible agent as a triangle pointing along its velocity.
func (g *Game) drawAgents() {
	query := g.agentFilter.Query()
	for query.Next() {
		agent, _ := query.Get()
		g.drawAgent(agent)
	}
}

// drawAgent draws a single agent.
func (g *Game) drawAgent(a *systems.Agent) {
	x, y := a.Position()
	if !g.camera.IsVisible(x, y, agentLength) {
		return
	}

	vx, vy := a.Velocity()
	heading := math.Atan2(float64(vy), float64(vx))
	if vx == 0 && vy == 0 {
		heading = math.Pi / 2
	}
	cosH := float32(math.Cos(heading))
	sinH := float32(math.Sin(heading))

	// Nose ahead, tail corners behind, in world space
	noseX := x + cosH*agentLength*0.6
	noseY := y + sinH*agentLength*0.6
	backX := x - cosH*agentLength*0.4
	backY := y - sinH*agentLength*0.4
	leftX := backX - sinH*agentWidth/2
	leftY := backY + cosH*agentWidth/2
	rightX := backX + sinH*agentWidth/2
	rightY := backY - cosH*agentWidth/2

	n := g.screenVec(noseX, noseY)
	l := g.screenVec(leftX, leftY)
	r := g.screenVec(rightX, rightY)

	// raylib wants counter-clockwise winding in screen space
	rl.DrawTriangle(n, l, r, agentColor(a))
}

// agentColor returns the display color of an agent.
func agentColor(a *systems.Agent) rl.Color {
	if a.Poisoned() {
		return ui.ColorPoisoned
	}
	if a.Marker() == systems.MarkerOffspring {
		return ui.ColorOffspring
	}
	return ui.ColorFounder
}

// screenVec converts a world point to a raylib screen vector.
func (g *Game) screenVec(x, y float32) rl.Vector2 {
	sx, sy := g.camera.WorldToScreen(x, y)
	return rl.Vector2{X: sx, Y: sy}
}

// drawSelection highlights the selected agent, clearing stale selections.
func (g *Game) drawSelection() {
	sel, ok := g.inspector.Selected()
	if !ok {
		return
	}
	if !g.world.Alive(sel) {
		g.inspector.Deselect()
		return
	}
	agent, _ := g.agentMapper.Get(sel)
	if agent == nil {
		g.inspector.Deselect()
		return
	}
	x, y := agent.Position()
	sx, sy := g.camera.WorldToScreen(x, y)
	g.inspector.DrawSelectionHighlight(sx, sy, agentLength*g.camera.Zoom, g.tick)
}

// drawUI draws the HUD, controls and inspector.
func (g *Game) drawUI() {
	sample := g.sampleAgents()

	g.hud.Draw(ui.HUDData{
		Title:          "Forage",
		Agents:         g.agentCount,
		Pellets:        g.pelletCount,
		Poisoned:       sample.Poisoned,
		MaxGeneration:  sample.MaxGeneration,
		Tick:           g.tick,
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
	})
	g.hud.DrawLegend(int32(g.screenHeight))
	g.hud.DrawControls(int32(g.screenHeight),
		"[Space] pause  [,/.] speed  [arrows] pan  [wheel/+/-] zoom  [Home] reset view  [click] inspect  [F11] fullscreen")

	g.applyControls(g.controls.Draw(ui.ControlsState{
		Paused:         g.paused,
		StepsPerUpdate: g.stepsPerUpdate,
		ShowPerf:       g.showPerf,
	}))

	if g.showPerf {
		g.perfPanel.SetPosition(10, 120+g.controls.Height())
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	if sel, ok := g.inspector.Selected(); ok && g.world.Alive(sel) {
		agent, org := g.agentMapper.Get(sel)
		if agent != nil {
			g.inspector.Draw(inspector.NewView(agent, *org, g.tick))
		}
	}
}

// applyControls applies the control panel actions for this frame.
func (g *Game) applyControls(action ui.ControlsAction) {
	if action.TogglePause {
		g.paused = !g.paused
	}
	if action.Step && g.paused {
		g.simulationStep()
	}
	if action.TogglePerf {
		g.showPerf = !g.showPerf
	}
	if action.ResetCamera {
		g.camera.Reset()
	}
	g.stepsPerUpdate = action.StepsPerUpdate
}
