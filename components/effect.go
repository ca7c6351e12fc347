package components

import "fmt"

// EffectKind identifies an effect category.
type EffectKind uint8

const (
	KindNothing EffectKind = iota
	KindPoison
	KindHeal
	KindFeed
	KindSpeedUp
	KindSlowDown

	NumEffectKinds = int(KindSlowDown) + 1
)

var effectKindNames = [NumEffectKinds]string{
	"nothing", "poison", "heal", "feed", "speed_up", "slow_down",
}

// String returns the config/telemetry name of the kind.
func (k EffectKind) String() string {
	if int(k) < len(effectKindNames) {
		return effectKindNames[k]
	}
	return "unknown"
}

// ParseEffectKind maps a config name back to its kind.
func ParseEffectKind(name string) (EffectKind, error) {
	for i, n := range effectKindNames {
		if n == name {
			return EffectKind(i), nil
		}
	}
	return KindNothing, fmt.Errorf("unknown effect kind %q", name)
}

// Effect is what a pellet does to the agent that eats it.
// The set of implementations is closed; systems dispatch on the concrete type.
type Effect interface {
	Kind() EffectKind
	sealed()
}

// Nothing is inert. Agents never keep it in their active list.
type Nothing struct{}

// Poison changes health by Change every TickInterval ticks until Duration
// ticks have elapsed since it was eaten. A zero interval fires every tick.
type Poison struct {
	Change       float32
	TickInterval uint8
	Duration     uint16
}

// Heal changes health once, on the tick it was eaten.
type Heal struct {
	Change float32
}

// Feed changes food once, on the tick it was eaten.
type Feed struct {
	Change float32
}

// SpeedUp adds Change to the speed cap when eaten and takes it back after
// Duration ticks.
type SpeedUp struct {
	Change   float32
	Duration uint16
}

// SlowDown has the same shape as SpeedUp; Change is conventionally negative.
type SlowDown struct {
	Change   float32
	Duration uint16
}

func (Nothing) Kind() EffectKind  { return KindNothing }
func (Poison) Kind() EffectKind   { return KindPoison }
func (Heal) Kind() EffectKind     { return KindHeal }
func (Feed) Kind() EffectKind     { return KindFeed }
func (SpeedUp) Kind() EffectKind  { return KindSpeedUp }
func (SlowDown) Kind() EffectKind { return KindSlowDown }

func (Nothing) sealed()  {}
func (Poison) sealed()   {}
func (Heal) sealed()     {}
func (Feed) sealed()     {}
func (SpeedUp) sealed()  {}
func (SlowDown) sealed() {}

// KindOf returns the kind of e, treating a nil effect as Nothing.
func KindOf(e Effect) EffectKind {
	if e == nil {
		return KindNothing
	}
	return e.Kind()
}

// EffectSpec is the flat, serializable description of an effect.
type EffectSpec struct {
	Kind     string  `yaml:"kind"`
	Weight   int     `yaml:"weight"` // bucket size out of 256
	Change   float32 `yaml:"change,omitempty"`
	Interval uint8   `yaml:"interval,omitempty"`
	Duration uint16  `yaml:"duration,omitempty"`
}

// Effect builds the concrete effect described by the spec.
func (s EffectSpec) Effect() (Effect, error) {
	kind, err := ParseEffectKind(s.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindPoison:
		return Poison{Change: s.Change, TickInterval: s.Interval, Duration: s.Duration}, nil
	case KindHeal:
		return Heal{Change: s.Change}, nil
	case KindFeed:
		return Feed{Change: s.Change}, nil
	case KindSpeedUp:
		return SpeedUp{Change: s.Change, Duration: s.Duration}, nil
	case KindSlowDown:
		return SlowDown{Change: s.Change, Duration: s.Duration}, nil
	default:
		return Nothing{}, nil
	}
}
