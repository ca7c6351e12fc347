package systems

import "github.com/pthm-cable/forage/components"

// RunTick advances the agent by one tick and reports whether it is alive.
//
// Order: non-finite velocity guard, effect resolution, clamp health/food to
// the base maxima, cap speed, metabolism, death check, movement, bounds
// check. A false return leaves DeathCause set; the caller removes the agent.
func (a *Agent) RunTick(tick uint64, bounds components.Bounds) bool {
	a.cause = CauseNone

	if !isFinite(a.vel.X) || !isFinite(a.vel.Y) {
		a.cause = CauseNonFinite
		return false
	}

	a.resolveEffects(tick)

	if a.health > a.baseStats.MaxHealth {
		a.health = a.baseStats.MaxHealth
	}
	if a.food > a.baseStats.MaxFood {
		a.food = a.baseStats.MaxFood
	}

	speed := magnitude(a.vel.X, a.vel.Y)
	if !isFinite(speed) {
		a.cause = CauseNonFinite
		return false
	}
	// A cap pushed below zero by stacked slow downs halts the agent.
	limit := max(a.stats.Speed, 0)
	if speed > limit {
		scale := limit / speed
		a.vel.X *= scale
		a.vel.Y *= scale
	}

	a.metabolize()

	if a.health <= 0 {
		a.cause = CauseExhausted
		return false
	}

	a.pos.X += a.vel.X
	a.pos.Y += a.vel.Y

	if !bounds.Contains(a.pos.X, a.pos.Y) {
		a.cause = CauseOutOfBounds
		return false
	}

	return true
}

// metabolize drains food, saturating at zero, and applies starvation damage
// once food is empty.
func (a *Agent) metabolize() {
	a.food = satSub32(a.food, int32(a.stats.TickHunger))
	if a.food < 0 {
		a.food = 0
	}
	if a.food <= 0 {
		a.health = satSub32(a.health, int32(a.stats.StarvingPain))
	}
}
