package board

// MoveMode selects how candidate destinations are filtered.
type MoveMode uint8

const (
	// LegalMoves drops destinations that would leave the mover's own king attacked.
	LegalMoves MoveMode = iota
	// AttackMap keeps every geometrically reachable destination. The check
	// oracle uses it to collect enemy reach without recursing.
	AttackMap
)

type direction struct{ dr, dc int }

var (
	rookDirections   = []direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirections = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	queenDirections  = append(append([]direction{}, rookDirections...), bishopDirections...)
	knightJumps      = []direction{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingSteps        = queenDirections
)

// Moves returns the destinations of the piece on from. Empty squares yield nil.
// Every returned square is on the board and never holds a piece of the mover's color.
func (p *Position) Moves(from Square, mode MoveMode) []Square {
	pc := p.Board.At(from)

	switch pc.Type() {
	case Pawn:
		return p.pawnMoves(from, pc, mode)
	case Knight:
		return p.stepMoves(from, pc, knightJumps, mode)
	case Bishop:
		return p.slideMoves(from, pc, bishopDirections, mode)
	case Rook:
		return p.slideMoves(from, pc, rookDirections, mode)
	case Queen:
		return p.slideMoves(from, pc, queenDirections, mode)
	case King:
		return p.kingMoves(from, pc, mode)
	}
	return nil
}

// safe reports whether from->to keeps the mover's king out of check.
func (p *Position) safe(from, to Square, c Color, mode MoveMode) bool {
	if mode == AttackMap {
		return true
	}
	return !p.IsCheck(from, to, p.Kings[c])
}

// enemyOn reports whether sq holds a piece of the other color.
func (p *Position) enemyOn(sq Square, c Color) bool {
	pc := p.Board.At(sq)
	return !pc.IsEmpty() && pc.Color() != c
}

func (p *Position) pawnMoves(from Square, pc Piece, mode MoveMode) []Square {
	var moves []Square
	c := pc.Color()
	dir := c.Forward()

	one := from.Add(dir, 0)
	if one.IsValid() && p.Board.IsEmpty(one) {
		if p.safe(from, one, c, mode) {
			moves = append(moves, one)
		}
		two := from.Add(2*dir, 0)
		if pc.IsFirstMove() && two.IsValid() && p.Board.IsEmpty(two) && p.safe(from, two, c, mode) {
			moves = append(moves, two)
		}
	}

	for _, dc := range []int{-1, 1} {
		to := from.Add(dir, dc)
		if !to.IsValid() {
			continue
		}
		if (p.enemyOn(to, c) || p.TookEnPassant(from, to)) && p.safe(from, to, c, mode) {
			moves = append(moves, to)
		}
	}
	return moves
}

// TookEnPassant reports whether moving the piece on from to to is an en
// passant capture: a pawn stepping diagonally onto the current marker, with
// the enemy pawn that just skipped over it standing beside from.
func (p *Position) TookEnPassant(from, to Square) bool {
	if to != p.EnPassant || to.Col == from.Col || !p.Board.IsEmpty(to) {
		return false
	}
	mover := p.Board.At(from)
	if mover.Type() != Pawn {
		return false
	}
	victim := p.Board.At(NewSquare(from.Row, to.Col))
	if victim.Type() != Pawn || victim.Color() == mover.Color() {
		return false
	}
	skipped, ok := victim.PossibleEnPassant()
	return ok && skipped == to
}

func (p *Position) stepMoves(from Square, pc Piece, steps []direction, mode MoveMode) []Square {
	var moves []Square
	for _, d := range steps {
		to := from.Add(d.dr, d.dc)
		if !to.IsValid() {
			continue
		}
		target := p.Board.At(to)
		if !target.IsEmpty() && target.Color() == pc.Color() {
			continue
		}
		if p.safe(from, to, pc.Color(), mode) {
			moves = append(moves, to)
		}
	}
	return moves
}

func (p *Position) slideMoves(from Square, pc Piece, dirs []direction, mode MoveMode) []Square {
	var moves []Square
	for _, d := range dirs {
		for to := from.Add(d.dr, d.dc); to.IsValid(); to = to.Add(d.dr, d.dc) {
			target := p.Board.At(to)
			if !target.IsEmpty() && target.Color() == pc.Color() {
				break
			}
			if p.safe(from, to, pc.Color(), mode) {
				moves = append(moves, to)
			}
			if !target.IsEmpty() {
				break
			}
		}
	}
	return moves
}

// kingMoves tests the king's own safety on every step. AttackMap mode skips
// the test and castling, so the oracle never recurses through a king.
func (p *Position) kingMoves(from Square, pc Piece, mode MoveMode) []Square {
	var moves []Square
	for _, d := range kingSteps {
		to := from.Add(d.dr, d.dc)
		if !to.IsValid() {
			continue
		}
		target := p.Board.At(to)
		if !target.IsEmpty() && target.Color() == pc.Color() {
			continue
		}
		if mode == LegalMoves && p.IsCheck(from, to, to) {
			continue
		}
		moves = append(moves, to)
	}

	if mode == LegalMoves && pc.IsFirstMove() {
		if to, ok := p.castleTarget(from, pc.Color(), true); ok {
			moves = append(moves, to)
		}
		if to, ok := p.castleTarget(from, pc.Color(), false); ok {
			moves = append(moves, to)
		}
	}
	return moves
}

// castleTarget returns the king destination for castling on one wing if every
// condition holds: the squares between king and rook are empty, the king is
// not in check, it crosses no attacked square, and the rook has never moved.
func (p *Position) castleTarget(from Square, c Color, kingSide bool) (Square, bool) {
	row := from.Row
	rookCol, empty, path := 0, []int{1, 2, 3}, []int{3, 2}
	if kingSide {
		rookCol, empty, path = Size-1, []int{5, 6}, []int{5, 6}
	}

	rook := p.Board.At(NewSquare(row, rookCol))
	if rook.Type() != Rook || rook.Color() != c || !rook.IsFirstMove() {
		return NoSquare, false
	}
	for _, col := range empty {
		if !p.Board.IsEmpty(NewSquare(row, col)) {
			return NoSquare, false
		}
	}
	if p.IsCheck(NoSquare, NoSquare, from) {
		return NoSquare, false
	}
	for _, col := range path {
		sq := NewSquare(row, col)
		if p.IsCheck(from, sq, sq) {
			return NoSquare, false
		}
	}
	return NewSquare(row, path[len(path)-1]), true
}

// castlingRook returns the rook's origin and destination for a king landing on to.
func castlingRook(to Square) (Square, Square, bool) {
	switch to.Col {
	case 6:
		return NewSquare(to.Row, Size-1), NewSquare(to.Row, 5), true
	case 2:
		return NewSquare(to.Row, 0), NewSquare(to.Row, 3), true
	}
	return NoSquare, NoSquare, false
}

// LegalMoves returns every legal move of one color. A pawn reaching its
// promotion row yields one move per promotion piece.
func (p *Position) LegalMoves(c Color) []Move {
	var moves []Move
	for _, from := range p.Squares(c) {
		pc := p.Board.At(from)
		for _, to := range p.Moves(from, LegalMoves) {
			if pc.Type() == Pawn && to.Row == c.PromotionRow() {
				for _, pt := range PromotionPieces {
					moves = append(moves, Move{From: from, To: to, Promotion: pt})
				}
				continue
			}
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// HasLegalMoves returns true if any piece of the color has a legal destination.
func (p *Position) HasLegalMoves(c Color) bool {
	for _, from := range p.Squares(c) {
		if len(p.Moves(from, LegalMoves)) > 0 {
			return true
		}
	}
	return false
}
