package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxStepsPerUpdate is the upper end of the speed slider.
const MaxStepsPerUpdate = 10

// ControlsState is the simulation state the panel displays.
type ControlsState struct {
	Paused         bool
	StepsPerUpdate int
	ShowPerf       bool
}

// ControlsAction is what the user asked for this frame.
type ControlsAction struct {
	TogglePause    bool
	Step           bool
	ResetCamera    bool
	TogglePerf     bool
	StepsPerUpdate int
}

// ControlsPanel renders the simulation control buttons and speed slider.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Height returns the panel height in pixels.
func (c *ControlsPanel) Height() int32 {
	return 2*c.renderer.Theme.Padding + 24 + 3*34
}

// Contains reports whether a screen point lies on the panel.
func (c *ControlsPanel) Contains(x, y float32) bool {
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+c.Height())
}

// Draw renders the panel and returns the requested actions.
func (c *ControlsPanel) Draw(state ControlsState) ControlsAction {
	r := c.renderer
	padding := float32(r.Theme.Padding)
	action := ControlsAction{StepsPerUpdate: state.StepsPerUpdate}

	r.DrawPanel(c.x, c.y, c.width, c.Height())

	x := float32(c.x) + padding
	y := float32(c.y) + padding
	inner := float32(c.width) - 2*padding
	half := (inner - 6) / 2

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += 24

	pauseLabel := "Pause"
	if state.Paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 26}, pauseLabel) {
		action.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: y, Width: half, Height: 26}, "Step") {
		action.Step = true
	}
	y += 34

	perfLabel := "Show perf"
	if state.ShowPerf {
		perfLabel = "Hide perf"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 26}, perfLabel) {
		action.TogglePerf = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: y, Width: half, Height: 26}, "Reset view") {
		action.ResetCamera = true
	}
	y += 34

	steps := gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: y + 3, Width: inner - 70, Height: 20},
		"1", fmt.Sprint(MaxStepsPerUpdate),
		float32(state.StepsPerUpdate), 1, MaxStepsPerUpdate,
	)
	action.StepsPerUpdate = clampSteps(int(steps + 0.5))
	rl.DrawText(fmt.Sprintf("%dx", action.StepsPerUpdate), int32(x+inner-30), int32(y+6), r.Theme.FontSize, r.Theme.ValueColor)

	return action
}

func clampSteps(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxStepsPerUpdate {
		return MaxStepsPerUpdate
	}
	return n
}
