package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/traits"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Agent != components.DefaultStats() {
		t.Errorf("agent stats = %+v, want %+v", cfg.Agent, components.DefaultStats())
	}
	if cfg.Weights != traits.DefaultRanges() {
		t.Errorf("weight ranges = %+v, want %+v", cfg.Weights, traits.DefaultRanges())
	}
	if cfg.Mutation.Spread != traits.MutationSpread {
		t.Errorf("mutation spread = %v, want %v", cfg.Mutation.Spread, traits.MutationSpread)
	}
	if cfg.Spawn.PelletChance != 48 || cfg.Spawn.ReproductionChance != 2 {
		t.Errorf("spawn chances = %d/%d, want 48/2", cfg.Spawn.PelletChance, cfg.Spawn.ReproductionChance)
	}

	p := cfg.Population
	if p.MaxAgents != 75 || p.MaxPellets != 200 || p.CriticalLow != 10 || p.ReseedFloor != 3 {
		t.Errorf("population = %+v", p)
	}

	b := cfg.Derived.Bounds
	if b.Left != -512 || b.Right != 512 || b.Bottom != -384 || b.Top != 384 {
		t.Errorf("bounds = %+v, want 1024x768 centered", b)
	}
	if cfg.Bookmarks.CriticalPopulation.Threshold != p.CriticalLow {
		t.Errorf("critical threshold = %d, want %d", cfg.Bookmarks.CriticalPopulation.Threshold, p.CriticalLow)
	}
}

func TestDefaultEffectsMatchBuiltinTable(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	builtin := components.DefaultEffectTable()
	for b := 0; b < 256; b++ {
		got := cfg.Derived.EffectTable.Pick(uint8(b))
		want := builtin.Pick(uint8(b))
		if got != want {
			t.Fatalf("byte %d: got %#v, want %#v", b, got, want)
		}
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
world:
  width: 400
  height: 300
population:
  max_agents: 20
effects:
  - kind: feed
    weight: 256
    change: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Population.MaxAgents != 20 {
		t.Errorf("max_agents = %d, want 20", cfg.Population.MaxAgents)
	}
	if cfg.Population.MaxPellets != 200 {
		t.Errorf("max_pellets = %d, want default 200", cfg.Population.MaxPellets)
	}
	if cfg.Derived.Bounds.Right != 200 || cfg.Derived.Bounds.Top != 150 {
		t.Errorf("bounds = %+v, want 400x300 centered", cfg.Derived.Bounds)
	}
	if len(cfg.Effects) != 1 {
		t.Fatalf("effects = %d, want user list to replace defaults", len(cfg.Effects))
	}
	if got := cfg.Derived.EffectTable.Pick(0); got != (components.Feed{Change: 10}) {
		t.Errorf("Pick(0) = %#v, want feed 10", got)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"effect weights", "effects:\n  - {kind: heal, weight: 100, change: 1}\n", "sum"},
		{"unknown kind", "effects:\n  - {kind: teleport, weight: 256}\n", "teleport"},
		{"zero max agents", "population:\n  max_agents: 0\n", "caps"},
		{"chance too high", "spawn:\n  pellet_chance: 300\n", "pellet_chance"},
		{"inverted range", "weights:\n  feed: {min: 3, max: -3}\n", "inverted"},
		{"bad yaml", "population: [\n", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Spawn.PelletChance = 99

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Spawn.PelletChance != 99 {
		t.Errorf("pellet_chance = %d, want 99", loaded.Spawn.PelletChance)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
