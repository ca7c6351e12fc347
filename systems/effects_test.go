package systems

import (
	"testing"

	"github.com/pthm-cable/forage/components"
)

func TestHealAppliesOnceOnStartTick(t *testing.T) {
	a := newTestAgent(0, 0)
	a.SetHealth(10)
	a.QueueEffect(components.Heal{Change: 25}, 5)

	if !a.RunTick(5, wideBounds) {
		t.Fatal("agent died")
	}
	if got := a.Health(); got != 35 {
		t.Errorf("health after heal tick = %d, want 35", got)
	}
	if len(a.ActiveEffects()) != 0 {
		t.Error("heal should leave the active list after its start tick")
	}

	a.RunTick(6, wideBounds)
	if got := a.Health(); got != 35 {
		t.Errorf("health at tick 6 = %d, want 35", got)
	}
}

func TestHealQueuedForLaterTickIsDropped(t *testing.T) {
	// Instant effects only fire when resolved on their start tick.
	a := newTestAgent(0, 0)
	a.SetHealth(10)
	a.QueueEffect(components.Heal{Change: 25}, 9)

	a.RunTick(5, wideBounds)
	if got := a.Health(); got != 10 {
		t.Errorf("health = %d, want 10", got)
	}
	if len(a.ActiveEffects()) != 0 {
		t.Error("instant effect should be dropped after one resolution")
	}
}

func TestFeedAppliesAndClamps(t *testing.T) {
	tests := []struct {
		name     string
		food     int32
		change   float32
		wantFood int32
	}{
		{"partial", 20, 64, 20 + 64 - 1},
		{"clamped to max", 90, 64, 100 - 1},
		{"fractional change truncates", 20, 10.9, 20 + 10 - 1},
		{"negative feed floors at zero", 5, -50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAgent(0, 0)
			a.SetFood(tt.food)
			a.QueueEffect(components.Feed{Change: tt.change}, 0)
			a.RunTick(0, wideBounds)

			if got := a.Food(); got != tt.wantFood {
				t.Errorf("food = %d, want %d", got, tt.wantFood)
			}
		})
	}
}

func TestHealClampedToBaseMax(t *testing.T) {
	a := newTestAgent(0, 0)
	a.SetHealth(95)
	a.QueueEffect(components.Heal{Change: 1e12}, 0)
	a.RunTick(0, wideBounds)

	if got := a.Health(); got != 100 {
		t.Errorf("health = %d, want 100", got)
	}
}

func TestPoisonFiresOnInterval(t *testing.T) {
	a := newTestAgent(0, 0)
	a.QueueEffect(components.Poison{Change: -10, TickInterval: 3, Duration: 10}, 0)

	// Fires at ticks 0, 3, 6, 9; expires at tick 10 without firing.
	want := map[uint64]int32{
		0: 90, 1: 90, 2: 90,
		3: 80, 4: 80, 5: 80,
		6: 70, 7: 70, 8: 70,
		9: 60, 10: 60, 11: 60,
	}
	for tick := uint64(0); tick <= 11; tick++ {
		if !a.RunTick(tick, wideBounds) {
			t.Fatalf("agent died at tick %d", tick)
		}
		if got := a.Health(); got != want[tick] {
			t.Errorf("tick %d: health = %d, want %d", tick, got, want[tick])
		}

		active := hasKind(a, components.KindPoison)
		if tick < 10 && (!active || !a.Poisoned()) {
			t.Errorf("tick %d: poison should still be active", tick)
		}
		if tick >= 10 && (active || a.Poisoned()) {
			t.Errorf("tick %d: poison should have expired", tick)
		}
	}
}

func TestPoisonZeroIntervalFiresEveryTick(t *testing.T) {
	a := newTestAgent(0, 0)
	a.QueueEffect(components.Poison{Change: -1, TickInterval: 0, Duration: 5}, 0)

	for tick := uint64(0); tick < 8; tick++ {
		a.RunTick(tick, wideBounds)
	}
	if got := a.Health(); got != 95 {
		t.Errorf("health = %d, want 95", got)
	}
}

func TestPoisonNotYetStarted(t *testing.T) {
	a := newTestAgent(0, 0)
	a.QueueEffect(components.Poison{Change: -10, TickInterval: 1, Duration: 5}, 3)

	a.RunTick(1, wideBounds)
	if got := a.Health(); got != 100 {
		t.Errorf("health = %d, want 100 before start", got)
	}
	if !hasKind(a, components.KindPoison) {
		t.Error("poison should wait for its start tick")
	}
}

func TestPoisonKills(t *testing.T) {
	a := newTestAgent(0, 0)
	a.SetHealth(15)
	a.QueueEffect(components.Poison{Change: -10, TickInterval: 1, Duration: 60}, 0)

	if !a.RunTick(0, wideBounds) {
		t.Fatal("agent should survive the first dose")
	}
	if a.RunTick(1, wideBounds) {
		t.Fatal("agent should die from the second dose")
	}
	if a.DeathCause() != CauseExhausted {
		t.Errorf("cause = %v, want exhausted", a.DeathCause())
	}
}

func TestSpeedEffectsRestoreBaseSpeed(t *testing.T) {
	tests := []struct {
		name   string
		effect components.Effect
		during float32
	}{
		{"speed up", components.SpeedUp{Change: 2, Duration: 5}, 12},
		{"slow down", components.SlowDown{Change: -2, Duration: 5}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAgent(0, 0)
			a.QueueEffect(tt.effect, 0)

			for tick := uint64(0); tick < 5; tick++ {
				a.RunTick(tick, wideBounds)
				if got := a.Stats().Speed; got != tt.during {
					t.Fatalf("tick %d: speed = %v, want %v", tick, got, tt.during)
				}
			}

			a.RunTick(5, wideBounds)
			if got := a.Stats().Speed; got != 10 {
				t.Errorf("speed after expiry = %v, want 10", got)
			}
			if len(a.ActiveEffects()) != 0 {
				t.Error("speed effect should leave the active list on expiry")
			}
			if a.BaseStats().Speed != 10 {
				t.Error("base stats must never change")
			}
		})
	}
}

func TestSpeedEffectsStack(t *testing.T) {
	a := newTestAgent(0, 0)
	a.QueueEffect(components.SpeedUp{Change: 2, Duration: 10}, 0)
	a.QueueEffect(components.SpeedUp{Change: 2, Duration: 4}, 2)
	a.QueueEffect(components.SlowDown{Change: -2, Duration: 3}, 3)

	want := []float32{12, 12, 14, 12, 12, 12, 12, 12, 12, 12, 10}
	for tick, w := range want {
		a.RunTick(uint64(tick), wideBounds)
		if got := a.Stats().Speed; got != w {
			t.Errorf("tick %d: speed = %v, want %v", tick, got, w)
		}
	}
}

func TestNegativeSpeedCapHalts(t *testing.T) {
	a := newTestAgent(0, 0)
	a.QueueEffect(components.SlowDown{Change: -20, Duration: 5}, 0)
	a.SetVelocity(3, 4)

	if !a.RunTick(0, wideBounds) {
		t.Fatal("agent died")
	}
	if a.Stats().Speed >= 0 {
		t.Fatalf("speed cap = %v, want negative", a.Stats().Speed)
	}
	if x, y := a.Position(); x != 0 || y != 0 {
		t.Errorf("position = (%v, %v), want agent halted at origin", x, y)
	}
}

func TestEffectQueueOrderPreserved(t *testing.T) {
	a := newTestAgent(0, 0)
	a.QueueEffect(components.SpeedUp{Change: 1, Duration: 50}, 0)
	a.QueueEffect(components.Heal{Change: 1}, 0)
	a.QueueEffect(components.Poison{Change: -1, TickInterval: 5, Duration: 50}, 0)
	a.QueueEffect(components.SlowDown{Change: -1, Duration: 50}, 0)

	a.RunTick(0, wideBounds)

	got := a.ActiveEffects()
	want := []components.EffectKind{components.KindSpeedUp, components.KindPoison, components.KindSlowDown}
	if len(got) != len(want) {
		t.Fatalf("got %d effects, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Effect.Kind() != want[i] {
			t.Errorf("effect %d = %v, want %v", i, got[i].Effect.Kind(), want[i])
		}
	}
}

func TestQueueEffectDropsNothing(t *testing.T) {
	a := newTestAgent(0, 0)
	a.QueueEffect(components.Nothing{}, 0)
	a.QueueEffect(nil, 0)

	if len(a.ActiveEffects()) != 0 {
		t.Error("Nothing must not be queued")
	}
}
