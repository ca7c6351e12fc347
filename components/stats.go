package components

// Stats bundles an agent's maxima and metabolic rates.
// Agents keep an immutable base copy and a working copy that temporary
// effects perturb.
type Stats struct {
	MaxHealth    int32   `yaml:"max_health"`
	MaxFood      int32   `yaml:"max_food"`
	Speed        float32 `yaml:"speed"`         // speed cap, world units per tick
	TickHunger   uint16  `yaml:"tick_hunger"`   // food drained every tick
	StarvingPain uint16  `yaml:"starving_pain"` // health lost per tick while food is empty
}

// DefaultStats returns the founder stats used when no config overrides them.
func DefaultStats() Stats {
	return Stats{
		MaxHealth:    255,
		MaxFood:      255,
		Speed:        10,
		TickHunger:   1,
		StarvingPain: 1,
	}
}
