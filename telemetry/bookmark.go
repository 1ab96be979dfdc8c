package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/ocean/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHuntBreakthrough BookmarkType = "hunt_breakthrough"
	BookmarkPreyCrash        BookmarkType = "prey_crash"
	BookmarkCrabExtinction   BookmarkType = "crab_extinction"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
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

	recentPreyPeak int  // peak prey total since the last crash
	extinct        bool // crab extinction already reported
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
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

	if b := bd.checkHuntBreakthrough(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkPreyCrash(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkCrabExtinction(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	if stats.PreyTotal > bd.recentPreyPeak {
		bd.recentPreyPeak = stats.PreyTotal
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

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkHuntBreakthrough fires when the catch rate beats the rolling average
// by the configured multiplier.
func (bd *BookmarkDetector) checkHuntBreakthrough(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var totalCatches, totalHunts int
	for _, h := range history {
		totalCatches += h.Catches
		totalHunts += h.Hunts
	}
	if totalHunts == 0 || stats.Hunts == 0 {
		return nil
	}

	avgRate := float64(totalCatches) / float64(totalHunts)
	if avgRate == 0 {
		return nil
	}

	if stats.CatchRate > avgRate*bd.cfg.HuntBreakthrough.Multiplier && stats.Catches >= bd.cfg.HuntBreakthrough.MinCatches {
		return &Bookmark{
			Type:        BookmarkHuntBreakthrough,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Catch rate %.2f is %.1fx average (%.2f)", stats.CatchRate, stats.CatchRate/avgRate, avgRate),
		}
	}
	return nil
}

// checkPreyCrash fires when total prey falls by the configured fraction from its recent peak.
func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	if bd.recentPreyPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.PreyTotal)/float64(bd.recentPreyPeak)
	if dropPercent > bd.cfg.PreyCrash.DropPercent && stats.PreyTotal <= bd.recentPreyPeak-bd.cfg.PreyCrash.MinDrop {
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.PreyTotal

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Prey crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.PreyTotal),
		}
	}
	return nil
}

// checkCrabExtinction fires once, the first window that ends with no crabs.
func (bd *BookmarkDetector) checkCrabExtinction(stats WindowStats) *Bookmark {
	if bd.extinct || stats.Crabs > 0 {
		return nil
	}
	bd.extinct = true
	return &Bookmark{
		Type:        BookmarkCrabExtinction,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Last crab gone after %d hunts this window", stats.Hunts),
	}
}
