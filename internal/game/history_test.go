package game

import (
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

// distinct returns a placement that differs from the starting one in square i.
func distinct(i int) board.Snapshot {
	s := board.NewPosition().Board.Snapshot()
	s[i%64] = [2]byte{'x', byte('a' + i/64)}
	return s
}

func TestHistoryRepetition(t *testing.T) {
	start := board.NewPosition().Board.Snapshot()
	h := NewHistory(start)

	if h.Occurrences(start) != 1 {
		t.Fatalf("Initial placement recorded %d times, want 1", h.Occurrences(start))
	}
	h.Record(distinct(1))
	h.Record(start)
	if h.Repetition() {
		t.Fatal("Two occurrences are not a repetition draw")
	}
	h.Record(distinct(1))
	h.Record(start)
	if !h.Repetition() {
		t.Errorf("Third occurrence should draw (count %d)", h.Occurrences(start))
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2 distinct placements", h.Len())
	}
	if got := h.Snapshots(); got[0] != start || got[1] != distinct(1) {
		t.Error("Snapshots() should list placements in first-seen order")
	}
}

func TestHistoryFiftyMoves(t *testing.T) {
	h := NewHistory(distinct(0))
	for i := 1; i < FiftyMoveLimit; i++ {
		h.Record(distinct(i))
	}
	if h.FiftyMoves() {
		t.Fatalf("99 plies should not draw (plies %d)", h.PliesSinceCapture())
	}

	h.Capture()
	if h.PliesSinceCapture() != 0 || h.Len() != 0 {
		t.Fatalf("Capture should reset, got plies %d len %d", h.PliesSinceCapture(), h.Len())
	}

	for i := 0; i < FiftyMoveLimit; i++ {
		h.Record(distinct(i))
	}
	if !h.FiftyMoves() {
		t.Errorf("100 plies without capture should draw (plies %d)", h.PliesSinceCapture())
	}
	if h.Repetition() {
		t.Error("Distinct placements must not count as repetition")
	}
}

func TestHistoryCaptureClearsRepetition(t *testing.T) {
	start := distinct(0)
	h := NewHistory(start)
	h.Record(start)
	h.Capture()
	h.Record(start)
	if h.Occurrences(start) != 1 {
		t.Errorf("Occurrences after capture = %d, want 1", h.Occurrences(start))
	}
}
