package components

import (
	"math/rand"
	"testing"
)

func TestDefaultEffectTableBuckets(t *testing.T) {
	table := DefaultEffectTable()

	tests := []struct {
		b    uint8
		want EffectKind
	}{
		{0, KindPoison},
		{51, KindPoison},
		{52, KindHeal},
		{103, KindHeal},
		{104, KindFeed},
		{154, KindFeed},
		{155, KindSpeedUp},
		{205, KindSpeedUp},
		{206, KindSlowDown},
		{255, KindSlowDown},
	}

	for _, tt := range tests {
		if got := table.Pick(tt.b).Kind(); got != tt.want {
			t.Errorf("Pick(%d) = %s, want %s", tt.b, got, tt.want)
		}
	}
}

func TestDefaultEffectParameters(t *testing.T) {
	table := DefaultEffectTable()

	poison, ok := table.Pick(0).(Poison)
	if !ok {
		t.Fatalf("Pick(0) = %T, want Poison", table.Pick(0))
	}
	if poison.Change != -10 || poison.TickInterval != 3 || poison.Duration != 60 {
		t.Errorf("poison = %+v, want {-10 3 60}", poison)
	}

	if heal := table.Pick(60).(Heal); heal.Change != 25 {
		t.Errorf("heal change = %v, want 25", heal.Change)
	}
	if feed := table.Pick(120).(Feed); feed.Change != 64 {
		t.Errorf("feed change = %v, want 64", feed.Change)
	}
	if up := table.Pick(180).(SpeedUp); up.Change != 2 || up.Duration != 180 {
		t.Errorf("speed up = %+v, want {2 180}", up)
	}
	if down := table.Pick(230).(SlowDown); down.Change != -2 || down.Duration != 180 {
		t.Errorf("slow down = %+v, want {-2 180}", down)
	}
}

func TestNewEffectTableRejectsBadWeights(t *testing.T) {
	tests := []struct {
		name  string
		specs []EffectSpec
	}{
		{"empty", nil},
		{"short sum", []EffectSpec{{Kind: "feed", Weight: 100}}},
		{"zero weight", []EffectSpec{{Kind: "feed", Weight: 256}, {Kind: "heal", Weight: 0}}},
		{"unknown kind", []EffectSpec{{Kind: "teleport", Weight: 256}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEffectTable(tt.specs); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSingleBucketTable(t *testing.T) {
	table, err := NewEffectTable([]EffectSpec{{Kind: "nothing", Weight: 256}})
	if err != nil {
		t.Fatalf("NewEffectTable: %v", err)
	}
	for _, b := range []uint8{0, 128, 255} {
		if k := table.Pick(b).Kind(); k != KindNothing {
			t.Errorf("Pick(%d) = %s, want nothing", b, k)
		}
	}
}

func TestNewPelletInsideBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := Bounds{Left: -50, Right: 30, Bottom: 10, Top: 20}

	for i := 0; i < 500; i++ {
		p := NewPellet(rng, b, nil)
		x, y := p.Position()
		if !b.Contains(x, y) {
			t.Fatalf("pellet %d at (%v, %v) outside %+v", i, x, y, b)
		}
		if p.Radius() != PelletRadius {
			t.Errorf("radius = %v, want %v", p.Radius(), PelletRadius)
		}
		if p.Kind() == KindNothing {
			t.Errorf("default table drew nothing")
		}
	}
}

func TestNewPelletKeepsExplicitEffect(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewPellet(rng, CenteredBounds(100, 100), Feed{Change: 5})

	feed, ok := p.Effect().(Feed)
	if !ok || feed.Change != 5 {
		t.Errorf("effect = %#v, want Feed{5}", p.Effect())
	}
}

func TestPelletZeroValueIsInert(t *testing.T) {
	var p Pellet
	if p.Kind() != KindNothing {
		t.Errorf("zero pellet kind = %s, want nothing", p.Kind())
	}
	if _, ok := p.Effect().(Nothing); !ok {
		t.Errorf("zero pellet effect = %T, want Nothing", p.Effect())
	}
}

func TestEffectKindRoundTrip(t *testing.T) {
	for k := 0; k < NumEffectKinds; k++ {
		kind := EffectKind(k)
		got, err := ParseEffectKind(kind.String())
		if err != nil || got != kind {
			t.Errorf("ParseEffectKind(%q) = %v, %v", kind.String(), got, err)
		}
	}
}

func TestCenteredBounds(t *testing.T) {
	b := CenteredBounds(200, 100)
	if b.Left != -100 || b.Right != 100 || b.Bottom != -50 || b.Top != 50 {
		t.Errorf("CenteredBounds(200, 100) = %+v", b)
	}
	if !b.Contains(100, -50) {
		t.Error("edges should be inside")
	}
	if b.Contains(100.5, 0) {
		t.Error("x beyond right edge should be outside")
	}
}
