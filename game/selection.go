package game

import (
	"github.com/mlange-42/ark/ecs"
)

// pickRadius is the click tolerance in screen pixels.
const pickRadius = 12.0

// findAgentAt returns the agent closest to a screen point within pickRadius.
func (g *Game) findAgentAt(sx, sy float32) (ecs.Entity, bool) {
	wx, wy := g.camera.ScreenToWorld(sx, sy)
	return g.nearestAgent(wx, wy, pickRadius/g.camera.Zoom)
}

// nearestAgent returns the agent closest to a world point within maxDist.
func (g *Game) nearestAgent(wx, wy, maxDist float32) (ecs.Entity, bool) {
	var closest ecs.Entity
	closestDist := maxDist * maxDist
	found := false

	query := g.agentFilter.Query()
	for query.Next() {
		agent, _ := query.Get()
		x, y := agent.Position()
		dx := x - wx
		dy := y - wy
		if d := dx*dx + dy*dy; d <= closestDist {
			closestDist = d
			closest = query.Entity()
			found = true
		}
	}

	return closest, found
}
