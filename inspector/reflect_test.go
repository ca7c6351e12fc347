package inspector

import (
	"testing"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/traits"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		widget  Widget
		options map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar", WidgetBar, map[string]string{}},
		{"bar,max:255", WidgetBar, map[string]string{"max": "255"}},
		{"label,fmt:%.1f", WidgetLabel, map[string]string{"fmt": "%.1f"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"unknown", WidgetAuto, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			widget, options := ParseTag(tt.tag)
			if widget != tt.widget {
				t.Errorf("widget = %v, want %v", widget, tt.widget)
			}
			if len(options) != len(tt.options) {
				t.Fatalf("options = %v, want %v", options, tt.options)
			}
			for k, v := range tt.options {
				if options[k] != v {
					t.Errorf("options[%q] = %q, want %q", k, options[k], v)
				}
			}
		})
	}
}

func TestExtractFieldsFlattensAndResolvesMax(t *testing.T) {
	weights := traits.Weights{Poison: -1, Heal: 2, Feed: 3, SlowDown: 4, SpeedUp: 5}
	agent := systems.New(10, 20, components.DefaultStats(), weights, systems.MarkerOffspring)
	agent.SetHealth(100)
	org := components.Organism{ID: 7, ParentID: 3, BirthTick: 40}

	fields := ExtractFields(NewView(agent, org, 100))

	byName := make(map[string]Field)
	for _, f := range fields {
		byName[f.Name] = f
	}

	for _, skipped := range []string{"MaxHealth", "MaxFood"} {
		if _, ok := byName[skipped]; ok {
			t.Errorf("%s should be skipped", skipped)
		}
	}

	health, ok := byName["Health"]
	if !ok {
		t.Fatal("Health field missing")
	}
	if health.Widget != WidgetBar {
		t.Errorf("Health widget = %v, want bar", health.Widget)
	}
	if got := GetMax(health.Options); got != 255 {
		t.Errorf("Health max = %v, want 255", got)
	}

	if f, ok := byName["Organism.ID"]; !ok || f.Value != uint32(7) {
		t.Errorf("Organism.ID = %+v", f)
	}
	if f, ok := byName["Weights.Feed"]; !ok || f.Value != float32(3) {
		t.Errorf("Weights.Feed = %+v", f)
	}
	if f := byName["Age"]; FormatValue(f.Value, f.Options["fmt"]) != "60 ticks" {
		t.Errorf("Age = %q", FormatValue(f.Value, f.Options["fmt"]))
	}
	if f := byName["Poisoned"]; f.Widget != WidgetBool {
		t.Errorf("Poisoned widget = %v, want bool", f.Widget)
	}
	if f := byName["Marker"]; FormatValue(f.Value, "") != "offspring" {
		t.Errorf("Marker = %q", FormatValue(f.Value, ""))
	}
}

func TestExtractFieldsRejectsNonStruct(t *testing.T) {
	if fields := ExtractFields(42); fields != nil {
		t.Errorf("expected nil, got %v", fields)
	}
	var v *View
	if fields := ExtractFields(v); fields != nil {
		t.Errorf("expected nil for nil pointer, got %v", fields)
	}
}
