package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHuntBreakthrough BookmarkType = "hunt_breakthrough"
	BookmarkFrogRecovery     BookmarkType = "frog_recovery"
	BookmarkFlyCrash         BookmarkType = "fly_crash"
	BookmarkExtinction       BookmarkType = "extinction"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
)

// Bookmark marks a notable window in a run.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches successive windows for notable moments.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentFrogMin   int  // lowest frog count since the last recovery
	recentFlyPeak   int  // highest fly count since the last crash
	stableWindows   int  // consecutive windows with steady populations
	flyExtinct      bool // extinction already reported
	frogExtinct     bool
	sawFirstWindows bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	add(bd.checkExtinction(stats))
	if bd.sawFirstWindows {
		add(bd.checkHuntBreakthrough(stats))
		add(bd.checkFrogRecovery(stats))
		add(bd.checkFlyCrash(stats))
		add(bd.checkStableEcosystem(stats))
	}

	bd.addToHistory(stats)
	bd.sawFirstWindows = true

	if stats.Frogs < bd.recentFrogMin || bd.recentFrogMin == 0 {
		bd.recentFrogMin = stats.Frogs
	}
	bd.recentFlyPeak = max(bd.recentFlyPeak, stats.Flies)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	switch {
	case stats.Flies == 0 && !bd.flyExtinct:
		bd.flyExtinct = true
		return &Bookmark{
			Type:        BookmarkExtinction,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Flies extinct with %d frogs and %d eggs left", stats.Frogs, stats.Eggs),
		}
	case stats.Frogs == 0 && !bd.frogExtinct:
		bd.frogExtinct = true
		return &Bookmark{
			Type:        BookmarkExtinction,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Frogs extinct with %d flies left", stats.Flies),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkHuntBreakthrough(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var kills, deaths int
	for _, h := range history {
		kills += h.Kills
		deaths += h.FlyDeaths
	}
	if kills == 0 || deaths == 0 {
		return nil
	}

	avg := float64(kills) / float64(deaths)
	if stats.KillShare > avg*2.0 && stats.Kills >= 3 {
		return &Bookmark{
			Type:        BookmarkHuntBreakthrough,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Kill share %.2f is %.1fx average (%.2f)", stats.KillShare, stats.KillShare/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkFrogRecovery(stats WindowStats) *Bookmark {
	if bd.recentFrogMin == 0 || bd.recentFrogMin > 2 {
		return nil
	}
	if stats.Frogs >= bd.recentFrogMin*3 && stats.Frogs >= 4 {
		oldMin := bd.recentFrogMin
		bd.recentFrogMin = stats.Frogs
		return &Bookmark{
			Type:        BookmarkFrogRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Frogs recovered from %d to %d", oldMin, stats.Frogs),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkFlyCrash(stats WindowStats) *Bookmark {
	if bd.recentFlyPeak == 0 {
		return nil
	}
	drop := 1.0 - float64(stats.Flies)/float64(bd.recentFlyPeak)
	if drop > 0.30 && stats.Flies < bd.recentFlyPeak-10 {
		oldPeak := bd.recentFlyPeak
		bd.recentFlyPeak = stats.Flies
		return &Bookmark{
			Type:        BookmarkFlyCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Flies crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Flies),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	if stats.Flies < 10 || stats.Frogs < 2 {
		bd.stableWindows = 0
		return nil
	}
	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := history[len(history)-4:]
	flies := make([]float64, len(recent))
	frogs := make([]float64, len(recent))
	for i, h := range recent {
		flies[i] = float64(h.Flies)
		frogs[i] = float64(h.Frogs)
	}

	// Coefficient of variation under 20% for both species
	if lowVariation(flies) && lowVariation(frogs) {
		bd.stableWindows++
	} else {
		bd.stableWindows = 0
	}

	if bd.stableWindows == 5 {
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable with %d flies and %d frogs over 5+ windows", stats.Flies, stats.Frogs),
		}
	}
	return nil
}

func lowVariation(xs []float64) bool {
	mean, variance := stat.PopMeanVariance(xs, nil)
	if mean == 0 {
		return false
	}
	return variance/(mean*mean) < 0.04
}
