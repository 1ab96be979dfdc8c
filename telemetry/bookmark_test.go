package telemetry

import (
	"testing"

	"github.com/pthm-cable/ocean/config"
)

func testBookmarksConfig() config.BookmarksConfig {
	return config.BookmarksConfig{
		HuntBreakthrough: config.HuntBreakthroughConfig{Multiplier: 2.0, MinCatches: 3},
		PreyCrash:        config.PreyCrashConfig{DropPercent: 0.30, MinDrop: 10},
	}
}

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_HuntBreakthrough(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	// Some history with a low catch rate
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{
			WindowEndTick: int32(i * 50),
			Crabs:         5,
			Hunts:         20,
			Catches:       4,
			CatchRate:     0.2,
		})
	}

	bookmarks := bd.Check(WindowStats{
		WindowEndTick: 300,
		Crabs:         5,
		Hunts:         20,
		Catches:       16,
		CatchRate:     0.8,
	})

	if !hasBookmark(bookmarks, BookmarkHuntBreakthrough) {
		t.Error("expected hunt_breakthrough bookmark")
	}
}

func TestBookmarkDetector_NoBreakthroughWithoutHistory(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	bookmarks := bd.Check(WindowStats{Crabs: 2, Hunts: 10, Catches: 10, CatchRate: 1})
	if hasBookmark(bookmarks, BookmarkHuntBreakthrough) {
		t.Error("breakthrough needs history to compare against")
	}
}

func TestBookmarkDetector_PreyCrash(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 50), Crabs: 5, PreyTotal: 100})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 300, Crabs: 5, PreyTotal: 50})
	if !hasBookmark(bookmarks, BookmarkPreyCrash) {
		t.Fatal("expected prey_crash bookmark")
	}

	// Peak resets after a crash, so holding steady does not re-trigger
	bookmarks = bd.Check(WindowStats{WindowEndTick: 350, Crabs: 5, PreyTotal: 50})
	if hasBookmark(bookmarks, BookmarkPreyCrash) {
		t.Error("prey_crash should not repeat without a new peak")
	}
}

func TestBookmarkDetector_SmallDropIgnored(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	bd.Check(WindowStats{Crabs: 1, PreyTotal: 20})
	bookmarks := bd.Check(WindowStats{Crabs: 1, PreyTotal: 13})

	if hasBookmark(bookmarks, BookmarkPreyCrash) {
		t.Error("a drop smaller than min_drop should not count as a crash")
	}
}

func TestBookmarkDetector_CrabExtinctionOnce(t *testing.T) {
	bd := NewBookmarkDetector(10, testBookmarksConfig())

	bd.Check(WindowStats{Crabs: 3})
	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 100, Crabs: 0}), BookmarkCrabExtinction) {
		t.Fatal("expected crab_extinction bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 150, Crabs: 0}), BookmarkCrabExtinction) {
		t.Error("extinction should only be reported once")
	}
}
