package game

import "github.com/hailam/chessrules/internal/board"

const (
	// FiftyMoveLimit is the number of plies without a capture that draws the game.
	FiftyMoveLimit = 100
	// RepetitionLimit is the number of occurrences of one placement that draws the game.
	RepetitionLimit = 3
)

// History counts placements seen since the last capture and the plies played
// since then. A capture makes every earlier placement unreachable, so it
// clears both.
type History struct {
	counts map[board.Snapshot]int
	order  []board.Snapshot
	plies  int
	max    int
}

// NewHistory returns a history holding the initial placement.
func NewHistory(initial board.Snapshot) *History {
	h := &History{counts: make(map[board.Snapshot]int)}
	h.add(initial)
	return h
}

func (h *History) add(s board.Snapshot) {
	if _, seen := h.counts[s]; !seen {
		h.order = append(h.order, s)
	}
	h.counts[s]++
	h.max = max(h.max, h.counts[s])
}

// Record registers a quiet ply that produced placement s.
func (h *History) Record(s board.Snapshot) {
	h.plies++
	h.add(s)
}

// Capture registers a capturing ply: the counter and the placements reset.
func (h *History) Capture() {
	h.plies = 0
	h.max = 0
	h.order = h.order[:0]
	clear(h.counts)
}

// PliesSinceCapture returns the number of plies since the last capture.
func (h *History) PliesSinceCapture() int {
	return h.plies
}

// Occurrences returns how often placement s has been recorded.
func (h *History) Occurrences(s board.Snapshot) int {
	return h.counts[s]
}

// Len returns the number of distinct placements recorded.
func (h *History) Len() int {
	return len(h.order)
}

// Snapshots returns the distinct placements in first-seen order.
func (h *History) Snapshots() []board.Snapshot {
	return append([]board.Snapshot(nil), h.order...)
}

// FiftyMoves reports whether the counter reached FiftyMoveLimit.
func (h *History) FiftyMoves() bool {
	return h.plies >= FiftyMoveLimit
}

// Repetition reports whether any placement reached RepetitionLimit.
func (h *History) Repetition() bool {
	return h.max >= RepetitionLimit
}
