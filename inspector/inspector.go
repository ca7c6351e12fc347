// Package inspector renders a detail panel for the selected agent.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/traits"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
	labelWidth   = 110
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
)

// View is the display-ready state of one agent.
type View struct {
	Organism   components.Organism
	Generation uint32
	Marker     systems.Marker
	Age        uint64 `inspect:"label,fmt:%d ticks"`

	Position string
	Velocity string
	Speed    float32 `inspect:"label,fmt:%.2f"`
	SpeedCap float32 `inspect:"label,fmt:%.1f"`

	Health    int32 `inspect:"bar,maxfield:MaxHealth"`
	MaxHealth int32 `inspect:"skip"`
	Food      int32 `inspect:"bar,maxfield:MaxFood"`
	MaxFood   int32 `inspect:"skip"`
	Poisoned  bool
	Effects   int

	Weights traits.Weights
}

// NewView captures an agent's state at the given tick.
func NewView(a *systems.Agent, org components.Organism, tick uint64) View {
	x, y := a.Position()
	vx, vy := a.Velocity()
	base := a.BaseStats()

	var age uint64
	if tick > org.BirthTick {
		age = tick - org.BirthTick
	}

	return View{
		Organism:   org,
		Generation: a.Generation(),
		Marker:     a.Marker(),
		Age:        age,
		Position:   fmt.Sprintf("(%.0f, %.0f)", x, y),
		Velocity:   fmt.Sprintf("(%.2f, %.2f)", vx, vy),
		Speed:      float32(math.Hypot(float64(vx), float64(vy))),
		SpeedCap:   a.Stats().Speed,
		Health:     a.Health(),
		MaxHealth:  base.MaxHealth,
		Food:       a.Food(),
		MaxFood:    base.MaxFood,
		Poisoned:   a.Poisoned(),
		Effects:    len(a.ActiveEffects()),
		Weights:    a.Weights(),
	}
}

// Inspector manages entity selection and panel rendering.
type Inspector struct {
	selected     ecs.Entity
	hasSelected  bool
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize anchors the panel to the top-right corner of the new screen size.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// HandleInput processes clicks. pick resolves a screen point to an agent.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, pick func(x, y float32) (ecs.Entity, bool)) {
	// Right click or Escape to deselect
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
			int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
			ins.Deselect()
			return
		}

		// Clicks inside the panel are ignored
		if int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
			int32(mouseY) >= ins.panelY {
			return
		}
	}

	if e, ok := pick(mouseX, mouseY); ok {
		ins.Select(e)
	}
}

// Select marks an entity as selected.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the inspector panel for the given view.
func (ins *Inspector) Draw(view View) {
	if !ins.hasSelected {
		return
	}

	fields := ExtractFields(view)
	panelHeight := int32(HeaderHeight+2*PanelPadding) + int32(len(fields))*rowHeight

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("AGENT #%d", view.Organism.ID), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, f := range fields {
		y += DrawField(x, y, f)
	}
}

// DrawSelectionHighlight draws a pulsing ring at a screen position.
func (ins *Inspector) DrawSelectionHighlight(sx, sy, radius float32, tick uint64) {
	if !ins.hasSelected {
		return
	}
	pulse := float32(math.Sin(float64(tick)*0.1))*0.3 + 0.7
	alpha := uint8(255 * pulse)
	rl.DrawCircleLines(int32(sx), int32(sy), radius, rl.Color{R: 255, G: 255, B: 255, A: alpha})
	rl.DrawCircleLines(int32(sx), int32(sy), radius+1, rl.Color{R: 255, G: 255, B: 255, A: alpha / 2})
}
