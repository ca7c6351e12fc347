package systems

import "github.com/pthm-cable/forage/components"

// resolveEffects applies every in-flight effect for tick and keeps only the
// entries that are still active, preserving queue order.
func (a *Agent) resolveEffects(tick uint64) {
	a.poisoned = false

	kept := a.effects[:0]
	for i := range a.effects {
		ae := a.effects[i]
		if a.applyEffect(&ae, tick) {
			kept = append(kept, ae)
		}
	}
	for i := len(kept); i < len(a.effects); i++ {
		a.effects[i] = ActiveEffect{}
	}
	a.effects = kept
}

// applyEffect runs one entry for tick and reports whether to keep it.
func (a *Agent) applyEffect(ae *ActiveEffect, tick uint64) bool {
	switch e := ae.Effect.(type) {
	case components.Poison:
		// Expiry drops the entry on the tick it is reached, without firing.
		if tick >= ae.Start+uint64(e.Duration) {
			return false
		}
		interval := uint64(e.TickInterval)
		if interval == 0 {
			interval = 1
		}
		if tick >= ae.Start && (tick-ae.Start)%interval == 0 {
			a.health = satAdd32(a.health, toInt32Sat(e.Change))
		}
		a.poisoned = true
		return true

	case components.Heal:
		if tick == ae.Start {
			a.health = satAdd32(a.health, toInt32Sat(e.Change))
		}
		return false

	case components.Feed:
		if tick == ae.Start {
			a.food = satAdd32(a.food, toInt32Sat(e.Change))
		}
		return false

	case components.SpeedUp:
		return a.applySpeedChange(ae, e.Change, e.Duration, tick)

	case components.SlowDown:
		return a.applySpeedChange(ae, e.Change, e.Duration, tick)

	default:
		return false
	}
}

// applySpeedChange adds change to the working speed cap once and takes it
// back once, duration ticks after the start.
func (a *Agent) applySpeedChange(ae *ActiveEffect, change float32, duration uint16, tick uint64) bool {
	if !ae.applied {
		if tick < ae.Start {
			return true
		}
		a.stats.Speed += change
		ae.applied = true
		return true
	}
	if tick >= ae.Start+uint64(duration) {
		a.stats.Speed -= change
		return false
	}
	return true
}
