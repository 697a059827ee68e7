package board

// PromotionPieces lists the promotion choices in picker order.
var PromotionPieces = []PieceType{Queen, Knight, Rook, Bishop}

// Move is an origin, a destination and, for a pawn reaching the last row,
// the piece it becomes.
type Move struct {
	From, To  Square
	Promotion PieceType
}

// String returns the move as origin and destination squares (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPieceType {
		s += string(m.Promotion.Char())
	}
	return s
}

// Relocation reports a secondary piece displaced by a move: the rook during
// castling, or the pawn taken en passant (To is NoSquare).
type Relocation struct {
	From, To Square
}

// Removed reports whether the piece left the board.
func (r Relocation) Removed() bool {
	return !r.To.IsValid()
}

// MoveResult describes what an applied move did to the board.
type MoveResult struct {
	From, To  Square
	Secondary *Relocation // nil unless the move castled or captured en passant
	// Captured reports that the destination was occupied. An en passant
	// capture lands on an empty square and leaves it false.
	Captured  bool
	Castled   bool
	EnPassant bool
	Promotion PieceType
	// PromotionPending is set by callers that defer a promoting move until
	// a piece is chosen. Such a result changed nothing.
	PromotionPending bool
}

// Apply moves the piece on from to to and performs the side effects of the
// rules: en passant removal, castling's rook move, the en passant marker and
// the king cache. It does not check legality. A pawn reaching the last row
// stays a pawn; use Promote for that.
func (p *Position) Apply(from, to Square) MoveResult {
	pc := p.Board.At(from)
	if pc.IsEmpty() {
		panic("board: no piece on " + from.String())
	}

	res := MoveResult{From: from, To: to}
	if p.TookEnPassant(from, to) {
		victim := NewSquare(from.Row, to.Col)
		p.Board.Clear(victim)
		res.Secondary = &Relocation{From: victim, To: NoSquare}
		res.EnPassant = true
	}
	if !p.Board.IsEmpty(to) {
		res.Captured = true
	}

	firstMove := pc.IsFirstMove()
	pc = pc.Moved(from, to)
	p.EnPassant = NoSquare
	if sq, ok := pc.PossibleEnPassant(); ok {
		p.EnPassant = sq
	}

	if pc.Type() == King && firstMove && to.Row == from.Row && abs(to.Col-from.Col) == 2 {
		if rookFrom, rookTo, ok := castlingRook(to); ok {
			rook := p.Board.At(rookFrom)
			p.Board.Clear(rookFrom)
			p.Board.Set(rookTo, rook.Moved(rookFrom, rookTo))
			res.Secondary = &Relocation{From: rookFrom, To: rookTo}
			res.Castled = true
		}
	}

	p.Board.Clear(from)
	p.Put(to, pc)
	return res
}

// Promote replaces the pawn on from with a new piece of kind pt on to.
// Panics unless pt is Queen, Rook, Bishop or Knight.
func (p *Position) Promote(from, to Square, pt PieceType) MoveResult {
	if !pt.IsPromotable() {
		panic("board: cannot promote to " + pt.String())
	}
	pawn := p.Board.At(from)
	if pawn.Type() != Pawn {
		panic("board: no pawn on " + from.String())
	}

	res := MoveResult{From: from, To: to, Promotion: pt, Captured: !p.Board.IsEmpty(to)}
	p.Board.Clear(from)
	p.Board.Set(to, NewPiece(pt, pawn.Color()).Moved(from, to))
	p.EnPassant = NoSquare
	return res
}

// Play applies a move, promoting if it carries a promotion piece.
func (p *Position) Play(m Move) MoveResult {
	if m.Promotion != NoPieceType {
		return p.Promote(m.From, m.To, m.Promotion)
	}
	return p.Apply(m.From, m.To)
}
