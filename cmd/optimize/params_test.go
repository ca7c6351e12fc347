package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/forage/config"
)

func TestNormalizeDenormalize(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], def[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()

	got := pv.Clamp([]float64{-10, 1000, 123.6, 20})
	want := []float64{4, 32, 124, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestApplyAndExtract(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	if err := pv.ApplyToConfig(cfg, []float64{64, 4, 300, 2.5}); err != nil {
		t.Fatalf("ApplyToConfig: %v", err)
	}

	got := pv.ExtractFromConfig(cfg)
	want := []float64{64, 4, 300, 2.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
	if cfg.Derived.EffectTable == nil {
		t.Error("derived values not recomputed")
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config default %v, param default %v", spec.Name, got[i], spec.Default)
		}
	}
}
