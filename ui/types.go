// Package ui provides the HUD, control panel and shared styling for the
// graphical mode.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/components"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:  rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// Agent colors
var (
	ColorFounder   = rl.Color{R: 245, G: 222, B: 179, A: 255} // wheat
	ColorOffspring = rl.White
	ColorPoisoned  = rl.Purple
)

// KindColor returns the pellet color for an effect kind.
func KindColor(kind components.EffectKind) rl.Color {
	switch kind {
	case components.KindFeed:
		return rl.Green
	case components.KindHeal:
		return rl.Yellow
	case components.KindPoison:
		return rl.Purple
	case components.KindSlowDown:
		return rl.Orange
	case components.KindSpeedUp:
		return rl.Blue
	default:
		return rl.White
	}
}
