package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkZombieContact BookmarkType = "zombie_contact"
	BookmarkCrowdWatching BookmarkType = "crowd_watching"
	BookmarkPursuitSurge  BookmarkType = "pursuit_surge"
	BookmarkZombiesShaken BookmarkType = "zombies_shaken"
	BookmarkQuietStretch  BookmarkType = "quiet_stretch"
)

// contactRange is the nearest-zombie distance treated as contact.
const contactRange = 10.0

// quietWindows is how many consecutive windows without pursuit or watching
// make a quiet stretch.
const quietWindows = 5

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

// BookmarkDetector detects notable moments in the scene from window stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// Edge state
	inContact     bool
	crowdWatching bool
	pursuitPeak   int
	quietCount    int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkZombieContact,
		bd.checkCrowdWatching,
		bd.checkPursuitSurge,
		bd.checkZombiesShaken,
		bd.checkQuietStretch,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	if stats.ZombiesPursuing > bd.pursuitPeak {
		bd.pursuitPeak = stats.ZombiesPursuing
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

func (bd *BookmarkDetector) checkZombieContact(stats WindowStats) *Bookmark {
	contact := stats.Zombies > 0 && stats.ZombieDistP10 < contactRange
	defer func() { bd.inContact = contact }()
	if !contact || bd.inContact {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkZombieContact,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Nearest zombies within %.1f units of the player", stats.ZombieDistP10),
	}
}

func (bd *BookmarkDetector) checkCrowdWatching(stats WindowStats) *Bookmark {
	total := stats.VillagerIdle + stats.VillagerWatch + stats.VillagerWalk
	all := total > 0 && stats.VillagerWatch == total
	defer func() { bd.crowdWatching = all }()
	if !all || bd.crowdWatching {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkCrowdWatching,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("All %d villagers are watching the player", total),
	}
}

func (bd *BookmarkDetector) checkPursuitSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var sum float64
	for _, h := range history {
		sum += h.PursuitFraction
	}
	avg := sum / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.PursuitFraction > avg*2.0 && stats.PursuitFraction >= 0.5 {
		return &Bookmark{
			Type:        BookmarkPursuitSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Pursuit fraction %.2f is %.1fx average (%.2f)", stats.PursuitFraction, stats.PursuitFraction/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkZombiesShaken(stats WindowStats) *Bookmark {
	if bd.pursuitPeak < 2 || stats.ZombiesPursuing > 0 {
		return nil
	}
	oldPeak := bd.pursuitPeak
	bd.pursuitPeak = 0
	return &Bookmark{
		Type:        BookmarkZombiesShaken,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Player escaped all pursuers (peak %d)", oldPeak),
	}
}

func (bd *BookmarkDetector) checkQuietStretch(stats WindowStats) *Bookmark {
	if stats.ZombiesPursuing > 0 || stats.VillagerWatch > 0 || stats.WatchStarts > 0 {
		bd.quietCount = 0
		return nil
	}
	bd.quietCount++
	if bd.quietCount == quietWindows { // trigger exactly once per stretch
		return &Bookmark{
			Type:        BookmarkQuietStretch,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("No pursuit or watching for %d windows", quietWindows),
		}
	}
	return nil
}
