package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/forage/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPopulationCrash    BookmarkType = "population_crash"
	BookmarkCriticalPopulation BookmarkType = "critical_population"
	BookmarkStablePopulation   BookmarkType = "stable_population"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        uint64       `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPeak     int  // peak agent count since the last crash
	belowCritical  bool // last window was under the critical threshold
	stableReported bool // stable_population already fired for this run of windows
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if cfg.StablePopulation.StableWindows < 2 {
		cfg.StablePopulation.StableWindows = 2
	}
	if historySize < cfg.StablePopulation.StableWindows {
		historySize = cfg.StablePopulation.StableWindows
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkPopulationCrash(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkCriticalPopulation(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	// Stable detection looks at the window just added.
	if b := bd.checkStablePopulation(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if stats.Agents > bd.recentPeak {
		bd.recentPeak = stats.Agents
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns the last n windows, oldest first. It returns fewer when
// the history is not yet that long.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = bd.historySize
	}
	if n > size {
		n = size
	}
	out := make([]WindowStats, n)
	for i := 0; i < n; i++ {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = bd.history[idx]
	}
	return out
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}
	cfg := bd.cfg.PopulationCrash

	drop := 1.0 - float64(stats.Agents)/float64(bd.recentPeak)
	if drop >= cfg.DropPercent && stats.Agents <= bd.recentPeak-cfg.MinDrop {
		// Reset peak after crash
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Agents

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Agents),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkCriticalPopulation(stats WindowStats) *Bookmark {
	threshold := bd.cfg.CriticalPopulation.Threshold
	below := stats.Agents < threshold
	defer func() { bd.belowCritical = below }()

	if !below || bd.belowCritical {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkCriticalPopulation,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Population fell to %d, below %d", stats.Agents, threshold),
	}
}

func (bd *BookmarkDetector) checkStablePopulation(stats WindowStats) *Bookmark {
	cfg := bd.cfg.StablePopulation

	if stats.Agents < cfg.MinAgents {
		bd.stableReported = false
		return nil
	}

	windows := bd.recent(cfg.StableWindows)
	if len(windows) < cfg.StableWindows {
		return nil
	}

	counts := make([]float64, len(windows))
	for i, w := range windows {
		counts[i] = float64(w.Agents)
	}
	mean, std := stat.PopMeanStdDev(counts, nil)
	if mean == 0 || std/mean >= cfg.CVThreshold {
		bd.stableReported = false
		return nil
	}

	if bd.stableReported {
		return nil
	}
	bd.stableReported = true
	return &Bookmark{
		Type:        BookmarkStablePopulation,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Stable population around %.0f agents over %d windows", mean, len(windows)),
	}
}
