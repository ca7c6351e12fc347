package systems

import "github.com/pthm-cable/forage/components"

// CaptureMarginSq extends a pellet's squared radius to form the eat radius.
const CaptureMarginSq = 36.0

// steeringWeight resolves the signed pull an effect kind exerts on the agent.
// SlowDown is negated: a positive slow_down weight draws the agent toward
// slowing pellets.
func (a *Agent) steeringWeight(kind components.EffectKind) float32 {
	w := a.weights.For(kind)
	if kind == components.KindSlowDown {
		return -w
	}
	return w
}

// EvalConsumable either eats p or steers toward/away from it.
//
// When the agent is within the eat radius the pellet's effect is queued at
// tick and false is returned: the caller must remove the pellet. Otherwise
// the velocity is nudged by weight/dist² along the vector to the pellet and
// true is returned. Exactly one of the two happens per call. The steering
// force is not capped; RunTick handles a velocity that overflows.
func (a *Agent) EvalConsumable(p components.Pellet, tick uint64) bool {
	px, py := p.Position()
	dx := px - a.pos.X
	dy := py - a.pos.Y
	distSq := float64(dx)*float64(dx) + float64(dy)*float64(dy)

	r := float64(p.Radius())
	if distSq < r*r+CaptureMarginSq {
		a.QueueEffect(p.Effect(), tick)
		return false
	}

	w := a.steeringWeight(p.Kind())
	d := float32(distSq)
	a.vel.X += w * dx / d
	a.vel.Y += w * dy / d

	return true
}
