package game

import "github.com/hailam/chessrules/internal/board"

// DrawReason names the rule that drew the game.
type DrawReason uint8

const (
	NoDraw DrawReason = iota
	FiftyMoveRule
	ThreefoldRepetition
)

// String returns a human-readable rule name.
func (r DrawReason) String() string {
	switch r {
	case FiftyMoveRule:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	default:
		return "none"
	}
}

// Result classifies the state of the game for the side to move.
type Result uint8

const (
	Ongoing Result = iota
	Checkmate
	Stalemate
	Draw
)

// Outcome is the end-of-game verdict presenters announce.
type Outcome struct {
	Result Result
	Winner board.Color // meaningful only for Checkmate
	Reason DrawReason  // meaningful only for Draw
}

// IsOver reports whether the game has ended.
func (o Outcome) IsOver() bool {
	return o.Result != Ongoing
}

// IsDraw reports whether the game ended without a winner.
func (o Outcome) IsDraw() bool {
	return o.Result == Stalemate || o.Result == Draw
}

// String returns the banner text for the outcome.
func (o Outcome) String() string {
	switch o.Result {
	case Checkmate:
		return o.Winner.String() + " wins by checkmate"
	case Stalemate:
		return "Draw by stalemate"
	case Draw:
		return "Draw by " + o.Reason.String()
	default:
		return "In progress"
	}
}

// Outcome classifies the game from the point of view of the side about to
// move: checkmate and stalemate come first, then the history draws.
func (s *Session) Outcome(toMove board.Color) Outcome {
	if !s.HasLegalMoves(toMove) {
		if s.IsCheck(toMove) {
			return Outcome{Result: Checkmate, Winner: toMove.Other()}
		}
		return Outcome{Result: Stalemate}
	}
	if reason := s.DrawReason(); reason != NoDraw {
		return Outcome{Result: Draw, Reason: reason}
	}
	return Outcome{Result: Ongoing}
}
