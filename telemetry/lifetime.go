package telemetry

import "github.com/pthm-cable/forage/components"

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	BirthTick  uint64
	ParentID   uint32 // 0 for founders
	Generation uint32

	Children int
	Eaten    [components.NumEffectKinds]int
}

// TotalEaten returns the number of pellets eaten across all kinds.
func (s *LifetimeStats) TotalEaten() int {
	var n int
	for _, c := range s.Eaten {
		n += c
	}
	return n
}

// LifetimeTracker manages per-agent lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new agent.
func (lt *LifetimeTracker) Register(id uint32, birthTick uint64, parentID, generation uint32) {
	lt.stats[id] = &LifetimeStats{
		BirthTick:  birthTick,
		ParentID:   parentID,
		Generation: generation,
	}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an agent's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordChild increments children count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// RecordEaten increments the eaten count for kind.
func (lt *LifetimeTracker) RecordEaten(id uint32, kind components.EffectKind) {
	if s := lt.stats[id]; s != nil && int(kind) < len(s.Eaten) {
		s.Eaten[kind]++
	}
}

// Age returns how many ticks the agent has lived at currentTick.
func (lt *LifetimeTracker) Age(id uint32, currentTick uint64) uint64 {
	s := lt.stats[id]
	if s == nil || currentTick < s.BirthTick {
		return 0
	}
	return currentTick - s.BirthTick
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
