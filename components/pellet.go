package components

import "fmt"

// PelletRadius is the radius of every pellet in world units.
const PelletRadius float32 = 3

// Pellet is a static consumable carrying exactly one effect.
type Pellet struct {
	x, y   float32
	radius float32
	effect Effect
}

// NewPellet places a pellet uniformly inside b. A nil effect is drawn from
// the default effect table.
func NewPellet(rng Rand, b Bounds, effect Effect) Pellet {
	x, y := b.RandomPoint(rng)
	if effect == nil {
		effect = defaultTable.Draw(rng)
	}
	return Pellet{x: x, y: y, radius: PelletRadius, effect: effect}
}

// PelletAt builds a pellet at a fixed position.
func PelletAt(x, y, radius float32, effect Effect) Pellet {
	if effect == nil {
		effect = Nothing{}
	}
	return Pellet{x: x, y: y, radius: radius, effect: effect}
}

// Position returns the pellet's center.
func (p Pellet) Position() (float32, float32) { return p.x, p.y }

// Radius returns the pellet's radius.
func (p Pellet) Radius() float32 { return p.radius }

// Effect returns the effect applied to whoever eats the pellet.
func (p Pellet) Effect() Effect {
	if p.effect == nil {
		return Nothing{}
	}
	return p.effect
}

// Kind is the drawable kind of the pellet.
func (p Pellet) Kind() EffectKind { return KindOf(p.effect) }

// effectBucket covers the byte values [previous upper, upper).
type effectBucket struct {
	upper  int
	effect Effect
}

// EffectTable maps a uniformly drawn byte onto weighted effect buckets.
type EffectTable struct {
	buckets []effectBucket
}

// NewEffectTable builds a table from specs in order. Weights must be
// positive and sum to 256.
func NewEffectTable(specs []EffectSpec) (*EffectTable, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("effect table is empty")
	}
	t := &EffectTable{buckets: make([]effectBucket, 0, len(specs))}
	upper := 0
	for i, s := range specs {
		if s.Weight <= 0 {
			return nil, fmt.Errorf("effect %d (%s): weight must be positive, got %d", i, s.Kind, s.Weight)
		}
		e, err := s.Effect()
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		upper += s.Weight
		t.buckets = append(t.buckets, effectBucket{upper: upper, effect: e})
	}
	if upper != 256 {
		return nil, fmt.Errorf("effect weights sum to %d, want 256", upper)
	}
	return t, nil
}

// DefaultEffectSpecs returns the stock buckets: 0-51 poison, 52-103 heal,
// 104-154 feed, 155-205 speed up, 206-255 slow down.
func DefaultEffectSpecs() []EffectSpec {
	return []EffectSpec{
		{Kind: "poison", Weight: 52, Change: -10, Interval: 3, Duration: 60},
		{Kind: "heal", Weight: 52, Change: 25},
		{Kind: "feed", Weight: 51, Change: 64},
		{Kind: "speed_up", Weight: 51, Change: 2, Duration: 180},
		{Kind: "slow_down", Weight: 50, Change: -2, Duration: 180},
	}
}

var defaultTable = mustEffectTable(DefaultEffectSpecs())

// DefaultEffectTable returns the stock table.
func DefaultEffectTable() *EffectTable { return defaultTable }

func mustEffectTable(specs []EffectSpec) *EffectTable {
	t, err := NewEffectTable(specs)
	if err != nil {
		panic(fmt.Sprintf("components: %v", err))
	}
	return t
}

// Pick returns the effect whose bucket contains b.
func (t *EffectTable) Pick(b uint8) Effect {
	v := int(b)
	for _, bucket := range t.buckets {
		if v < bucket.upper {
			return bucket.effect
		}
	}
	return t.buckets[len(t.buckets)-1].effect
}

// Draw picks an effect with a uniformly random byte.
func (t *EffectTable) Draw(rng Rand) Effect {
	return t.Pick(uint8(rng.Intn(256)))
}

// NewPellet places a pellet uniformly inside b with an effect drawn from t.
func (t *EffectTable) NewPellet(rng Rand, b Bounds) Pellet {
	x, y := b.RandomPoint(rng)
	return Pellet{x: x, y: y, radius: PelletRadius, effect: t.Draw(rng)}
}
