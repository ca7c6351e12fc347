package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseConsumption)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseAgentTick)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhaseConsumption] <= 0 {
		t.Error("expected consumption phase to be tracked")
	}
	if stats.PhaseAvg[PhaseAgentTick] <= 0 {
		t.Error("expected agent_tick phase to be tracked")
	}
	if stats.PhaseAvg[PhaseCleanup] != 0 {
		t.Errorf("cleanup = %v, want 0 for a phase never entered", stats.PhaseAvg[PhaseCleanup])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	// Five slow ticks, then five fast ones that push them out of the ring.
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseConsumption)
		time.Sleep(2 * time.Millisecond)
		pc.EndTick()
	}
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseConsumption)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
	if stats.MaxTickDuration >= 2*time.Millisecond {
		t.Errorf("max tick = %v, want the evicted slow ticks gone", stats.MaxTickDuration)
	}
	if stats.PhaseAvg[PhaseConsumption] >= time.Millisecond {
		t.Errorf("consumption avg = %v, want the evicted slow ticks gone", stats.PhaseAvg[PhaseConsumption])
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCleanup)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseAgentTick)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	fast := stats.PhasePct[PhaseCleanup]
	slow := stats.PhasePct[PhaseAgentTick]
	if slow <= fast {
		t.Errorf("agent_tick %v%% <= cleanup %v%%", slow, fast)
	}
	if slow > 100 {
		t.Errorf("agent_tick %v%% exceeds the whole tick", slow)
	}
}

func TestPerfCollector_ReenteredPhaseAccumulates(t *testing.T) {
	pc := NewPerfCollector(1)

	// Interleave phases per agent the way the simulation step does.
	pc.StartTick()
	for i := 0; i < 3; i++ {
		pc.StartPhase(PhaseConsumption)
		time.Sleep(200 * time.Microsecond)
		pc.StartPhase(PhaseAgentTick)
	}
	pc.EndTick()

	stats := pc.Stats()
	if got := stats.PhaseAvg[PhaseConsumption]; got < 600*time.Microsecond {
		t.Errorf("consumption = %v, want >= 600us accumulated over 3 entries", got)
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhasePelletSpawn, "pellet_spawn"},
		{PhaseReproduction, "reproduction"},
		{PhaseTelemetry, "telemetry"},
		{Phase(NumPhases), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{AvgTickDuration: 1500 * time.Microsecond}
	s.PhasePct[PhaseAgentTick] = 40
	s.PhasePct[PhaseCleanup] = 5
	row := s.ToCSV(1200)

	if row.WindowEnd != 1200 || row.AvgTickUS != 1500 {
		t.Errorf("row = %+v", row)
	}
	if row.AgentTickPct != 40 || row.CleanupPct != 5 || row.ConsumptionPct != 0 {
		t.Errorf("phase columns = %+v", row)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("empty collector stats = %+v, want zero", stats)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("FPS = %v, want in (0, 70] for >= 15ms frames", stats.FPS)
	}
}
