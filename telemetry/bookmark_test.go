package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func window(tick, rabbits, foxes, grass int) WindowStats {
	s := WindowStats{WindowEndTick: tick}
	s.Tick = tick
	s.Rabbits = rabbits
	s.Foxes = foxes
	s.Grass = grass
	s.Total = rabbits + foxes + grass
	return s
}

func TestBookmarkDetector_Extinction(t *testing.T) {
	bd := NewBookmarkDetector(10, 2)

	bd.Check(window(100, 50, 5, 200))
	bookmarks := bd.Check(window(200, 50, 0, 200))

	if !hasBookmark(bookmarks, BookmarkExtinction) {
		t.Fatal("expected extinction bookmark")
	}

	// Already extinct: no repeat.
	bookmarks = bd.Check(window(300, 50, 0, 200))
	if hasBookmark(bookmarks, BookmarkExtinction) {
		t.Error("extinction reported twice")
	}
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(10, 2)

	for i := 0; i < 5; i++ {
		bd.Check(window(i*100, 100, 10, 100))
	}

	bookmarks := bd.Check(window(600, 50, 10, 40))
	if !hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Error("expected population_crash bookmark")
	}
}

func TestBookmarkDetector_Epidemic(t *testing.T) {
	bd := NewBookmarkDetector(10, 2)

	sick := window(100, 40, 10, 50)
	sick.Sick = 40

	if !hasBookmark(bd.Check(sick), BookmarkEpidemic) {
		t.Fatal("expected epidemic bookmark")
	}

	sick.WindowEndTick = 200
	if hasBookmark(bd.Check(sick), BookmarkEpidemic) {
		t.Error("epidemic reported again while ongoing")
	}

	healthy := window(300, 40, 10, 50)
	bd.Check(healthy)

	sick.WindowEndTick = 400
	if !hasBookmark(bd.Check(sick), BookmarkEpidemic) {
		t.Error("expected epidemic bookmark after recovery")
	}
}

func TestBookmarkDetector_StableEcosystem(t *testing.T) {
	bd := NewBookmarkDetector(10, 2)

	fired := 0
	for i := 0; i < 12; i++ {
		if hasBookmark(bd.Check(window(i*100, 100, 20, 300)), BookmarkStableEcosystem) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("stable_ecosystem fired %d times, want once", fired)
	}
}

func TestBookmarkDetector_StableNeedsDiversity(t *testing.T) {
	bd := NewBookmarkDetector(10, 3)

	for i := 0; i < 12; i++ {
		if hasBookmark(bd.Check(window(i*100, 100, 0, 300)), BookmarkStableEcosystem) {
			t.Fatal("stable_ecosystem with too few species")
		}
	}
}
