package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/habitat/world"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction      BookmarkType = "extinction"
	BookmarkPopulationCrash BookmarkType = "population_crash"
	BookmarkEpidemic        BookmarkType = "epidemic"
	BookmarkStableEcosystem BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
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
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPeak         int  // peak total population since the last crash
	inEpidemic         bool // sick share above threshold in the previous window
	stableWindowsCount int  // consecutive windows with stable populations
	minSpecies         int
}

// NewBookmarkDetector creates a detector with the given history size.
// minSpecies is the species diversity required for a stable ecosystem.
func NewBookmarkDetector(historySize, minSpecies int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	if minSpecies < 1 {
		minSpecies = 1
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		minSpecies:  minSpecies,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		bookmarks = append(bookmarks, bd.checkExtinctions(stats)...)

		// Population crash: total dropped >30% from recent peak
		if b := bd.checkPopulationCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Stable ecosystem: enough species with low variance over 5+ windows
		if b := bd.checkStableEcosystem(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	if b := bd.checkEpidemic(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	if stats.Total > bd.recentPeak {
		bd.recentPeak = stats.Total
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

// getHistory returns the recorded windows, oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]WindowStats, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) last() WindowStats {
	idx := bd.historyIdx - 1
	if idx < 0 {
		idx = bd.historySize - 1
	}
	return bd.history[idx]
}

func (bd *BookmarkDetector) checkExtinctions(stats WindowStats) []Bookmark {
	prev := bd.last()
	var out []Bookmark
	for _, id := range world.AllSpecies() {
		if prev.Count(id) > 0 && stats.Count(id) == 0 {
			out = append(out, Bookmark{
				Type:        BookmarkExtinction,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("%s went extinct (was %d)", id, prev.Count(id)),
			})
		}
	}
	return out
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Total)/float64(bd.recentPeak)
	if dropPercent > 0.30 && stats.Total < bd.recentPeak-10 {
		// Reset peak after crash
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Total

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Total),
		}
	}

	return nil
}

// checkEpidemic fires once when the sick share first exceeds 25% of a
// population of at least 20, and re-arms when it falls back.
func (bd *BookmarkDetector) checkEpidemic(stats WindowStats) *Bookmark {
	sick := stats.Total >= 20 && stats.SickFraction() > 0.25
	if !sick {
		bd.inEpidemic = false
		return nil
	}
	if bd.inEpidemic {
		return nil
	}
	bd.inEpidemic = true
	return &Bookmark{
		Type:        BookmarkEpidemic,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d of %d organisms sick (%.0f%%)", stats.Sick, stats.Total, stats.SickFraction()*100),
	}
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	if stats.SpeciesAlive() < bd.minSpecies || stats.Total < 10 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := history[len(history)-4:]
	var sum float64
	for _, h := range recent {
		sum += float64(h.Total)
	}
	mean := sum / 4

	var variance float64
	for _, h := range recent {
		d := float64(h.Total) - mean
		variance += d * d
	}
	variance /= 4

	cv2 := 0.0
	if mean > 0 {
		cv2 = variance / (mean * mean)
	}

	if cv2 < 0.04 { // CV^2 < 0.04 means CV < 0.2
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable ecosystem of %d species, %d organisms over 5+ windows", stats.SpeciesAlive(), stats.Total),
		}
	}

	return nil
}
