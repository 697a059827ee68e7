// Package game drives a chess game: piece selection, move application,
// promotion, and the checkmate and draw questions a front end asks between turns.
package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/obslog"
)

// State is the selection state of a Session.
type State uint8

const (
	// Idle: nothing selected.
	Idle State = iota
	// Selected: a piece is selected and its legal destinations are cached.
	Selected
	// PromotionPending: a pawn move to the last row waits for a piece choice.
	PromotionPending
)

// String returns the state name.
func (st State) String() string {
	switch st {
	case Selected:
		return "selected"
	case PromotionPending:
		return "promotion pending"
	default:
		return "idle"
	}
}

// Session owns one game: the position, the current selection and the
// history used for draw detection. It does not track whose turn it is;
// the front end decides which pieces the player may select.
//
// A Session is not safe for concurrent use.
type Session struct {
	pos      board.Position
	state    State
	selected board.Square
	moves    []board.Square
	pending  board.Square
	history  *History
	stopped  bool
	log      *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger; the default is obslog.L().
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New creates a session at the standard starting position.
func New(opts ...Option) *Session {
	s := &Session{log: obslog.L()}
	for _, opt := range opts {
		opt(s)
	}
	s.reset(board.NewPosition())
	return s
}

func (s *Session) reset(pos *board.Position) {
	s.pos = *pos
	s.state = Idle
	s.selected = board.NoSquare
	s.moves = nil
	s.pending = board.NoSquare
	s.history = NewHistory(s.pos.Board.Snapshot())
	s.stopped = false
}

// Reset starts a new game from the starting position.
func (s *Session) Reset() {
	s.reset(board.NewPosition())
	s.log.Info("new game")
}

// Select makes the piece on sq the current selection and returns its legal
// destinations. It returns false, leaving nothing selected, when sq is empty;
// it returns false without side effects when the session is stopped or a
// promotion is pending.
func (s *Session) Select(sq board.Square) ([]board.Square, bool) {
	sq.MustBeValid()
	if s.stopped || s.state == PromotionPending {
		return nil, false
	}
	s.Deselect()

	if s.pos.Board.IsEmpty(sq) {
		return nil, false
	}
	s.selected = sq
	s.moves = s.pos.Moves(sq, board.LegalMoves)
	s.state = Selected
	s.log.Debug("piece selected",
		zap.Stringer("square", sq),
		zap.Stringer("piece", s.pos.PieceAt(sq)),
		zap.Int("moves", len(s.moves)))
	return s.LegalMoves(), true
}

// Deselect drops the current selection and its cached moves without moving.
// A pending promotion is abandoned as by CancelPromotion.
func (s *Session) Deselect() {
	if s.state == PromotionPending {
		s.log.Debug("promotion abandoned", zap.Stringer("to", s.pending))
		s.pending = board.NoSquare
	}
	s.state = Idle
	s.selected = board.NoSquare
	s.moves = nil
}

// Apply moves the selected piece to dest. A pawn reaching its last row
// changes nothing yet: the result has PromotionPending set and Promote must
// follow.
func (s *Session) Apply(dest board.Square) (board.MoveResult, error) {
	dest.MustBeValid()
	if s.stopped {
		return board.MoveResult{}, ErrStopped
	}
	switch s.state {
	case Idle:
		return board.MoveResult{}, ErrNoSelection
	case PromotionPending:
		return board.MoveResult{}, ErrPromotionPending
	}
	if !s.IsLegalDestination(dest) {
		return board.MoveResult{}, fmt.Errorf("%w: %s to %s", ErrIllegalDestination, s.selected, dest)
	}

	mover := s.pos.PieceAt(s.selected)
	if mover.Type() == board.Pawn && dest.Row == mover.Color().PromotionRow() {
		s.state = PromotionPending
		s.pending = dest
		s.log.Debug("promotion pending", zap.Stringer("from", s.selected), zap.Stringer("to", dest))
		return board.MoveResult{From: s.selected, To: dest, PromotionPending: true}, nil
	}

	res := s.pos.Apply(s.selected, dest)
	s.finishPly(mover, res)
	return res, nil
}

// Promote completes a pending pawn move to dest, replacing the pawn with pt.
func (s *Session) Promote(dest board.Square, pt board.PieceType) (board.MoveResult, error) {
	dest.MustBeValid()
	if s.stopped {
		return board.MoveResult{}, ErrStopped
	}
	if s.state != PromotionPending {
		return board.MoveResult{}, ErrNoPromotionPending
	}
	if !pt.IsPromotable() {
		return board.MoveResult{}, fmt.Errorf("%w: %s", ErrIllegalPromotion, pt)
	}
	if dest != s.pending {
		return board.MoveResult{}, fmt.Errorf("%w: promotion waits on %s, not %s", ErrIllegalDestination, s.pending, dest)
	}

	mover := s.pos.PieceAt(s.selected)
	res := s.pos.Promote(s.selected, dest, pt)
	s.state = Idle
	s.finishPly(mover, res)
	return res, nil
}

// CancelPromotion abandons a pending promotion and clears the selection.
func (s *Session) CancelPromotion() {
	if s.state != PromotionPending {
		return
	}
	s.Deselect()
}

func (s *Session) finishPly(mover board.Piece, res board.MoveResult) {
	s.pending = board.NoSquare
	s.Deselect()
	// Only a capture on the destination square resets; en passant does not.
	if res.Captured {
		s.history.Capture()
	} else {
		s.history.Record(s.pos.Board.Snapshot())
	}
	s.log.Debug("move applied",
		zap.Stringer("color", mover.Color()),
		zap.Stringer("piece", mover.Type()),
		zap.Stringer("from", res.From),
		zap.Stringer("to", res.To),
		zap.Bool("capture", res.Captured),
		zap.Bool("castle", res.Castled),
		zap.Bool("en_passant", res.EnPassant),
		zap.Int("plies_since_capture", s.history.PliesSinceCapture()))
}

// Stop ends the game. Later Select, Apply and Promote calls do nothing.
func (s *Session) Stop() {
	if !s.stopped {
		s.log.Info("game stopped")
	}
	s.stopped = true
	s.state = Idle
	s.selected = board.NoSquare
	s.moves = nil
	s.pending = board.NoSquare
}

// Stopped reports whether Stop was called since the last Reset.
func (s *Session) Stopped() bool {
	return s.stopped
}

// CanMove reports whether a piece is selected and the session accepts moves.
func (s *Session) CanMove() bool {
	return !s.stopped && s.state == Selected
}

// IsLegalDestination reports whether sq is among the selected piece's cached destinations.
func (s *Session) IsLegalDestination(sq board.Square) bool {
	if s.state == Idle {
		return false
	}
	for _, m := range s.moves {
		if m == sq {
			return true
		}
	}
	return false
}

// Reaches reports whether the piece on from moves to to by its movement
// pattern alone, ignoring the safety of its own king. Front ends use it to
// explain why a destination was refused.
func (s *Session) Reaches(from, to board.Square) bool {
	for _, sq := range s.pos.Moves(from, board.AttackMap) {
		if sq == to {
			return true
		}
	}
	return false
}

// IsCheck reports whether the color's king is attacked.
func (s *Session) IsCheck(c board.Color) bool {
	return s.pos.InCheck(c)
}

// HasLegalMoves reports whether any piece of the color can move.
func (s *Session) HasLegalMoves(c board.Color) bool {
	return s.pos.HasLegalMoves(c)
}

// IsCheckmate reports whether the color is in check with no legal move.
func (s *Session) IsCheckmate(c board.Color) bool {
	return s.IsCheck(c) && !s.HasLegalMoves(c)
}

// IsStalemate reports whether the color has no legal move while not in check.
func (s *Session) IsStalemate(c board.Color) bool {
	return !s.IsCheck(c) && !s.HasLegalMoves(c)
}

// IsDraw reports a fifty-move or threefold repetition draw.
func (s *Session) IsDraw() bool {
	return s.DrawReason() != NoDraw
}

// DrawReason returns the draw rule currently in force, if any.
func (s *Session) DrawReason() DrawReason {
	switch {
	case s.history.FiftyMoves():
		return FiftyMoveRule
	case s.history.Repetition():
		return ThreefoldRepetition
	}
	return NoDraw
}

// PieceAt returns the piece on sq.
func (s *Session) PieceAt(sq board.Square) board.Piece {
	return s.pos.PieceAt(sq)
}

// PieceColorAt returns the color of the piece on sq, or false if it is empty.
func (s *Session) PieceColorAt(sq board.Square) (board.Color, bool) {
	pc := s.pos.PieceAt(sq)
	if pc.IsEmpty() {
		return board.White, false
	}
	return pc.Color(), true
}

// Board returns a copy of the board.
func (s *Session) Board() board.Board {
	return s.pos.Board
}

// KingSquare returns the square of the color's king.
func (s *Session) KingSquare(c board.Color) board.Square {
	return s.pos.KingSquare(c)
}

// Selection returns the selected square, or NoSquare.
func (s *Session) Selection() board.Square {
	return s.selected
}

// PendingPromotion returns the destination of a pending promotion, or NoSquare.
func (s *Session) PendingPromotion() board.Square {
	return s.pending
}

// LegalMoves returns a copy of the selected piece's destinations.
func (s *Session) LegalMoves() []board.Square {
	return append([]board.Square(nil), s.moves...)
}

// State returns the selection state.
func (s *Session) State() State {
	return s.state
}

// PliesSinceCapture returns the fifty-move counter.
func (s *Session) PliesSinceCapture() int {
	return s.history.PliesSinceCapture()
}

// History returns the placement history. Callers must not modify it.
func (s *Session) History() *History {
	return s.history
}
