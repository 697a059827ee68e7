package board

// IsCheck reports whether the king standing on king would be attacked after
// the piece on from hypothetically moves to to. Pass NoSquare for from and to
// to ask about the position as it stands. The receiver is never modified.
//
// The hypothesis is played on a copy: the mover lands on to, replacing any
// occupant, and a pawn taking en passant also lifts the captured pawn.
// king must name the square the king occupies after the relocation.
func (p *Position) IsCheck(from, to, king Square) bool {
	sim := *p
	if from.IsValid() && from != to {
		sim.relocate(from, to)
	}

	target := sim.Board.At(king)
	if target.IsEmpty() {
		panic("board: no king on " + king.String())
	}
	return sim.IsAttacked(king, target.Color().Other())
}

// IsAttacked returns true if any piece of color by reaches sq.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	for _, from := range p.Squares(by) {
		for _, to := range p.Moves(from, AttackMap) {
			if to == sq {
				return true
			}
		}
	}
	return false
}

// InCheck returns true if the color's king is currently attacked.
func (p *Position) InCheck(c Color) bool {
	return p.IsCheck(NoSquare, NoSquare, p.Kings[c])
}

// relocate moves the piece on from to to without touching movement state.
func (p *Position) relocate(from, to Square) {
	if p.TookEnPassant(from, to) {
		p.Board.Clear(NewSquare(from.Row, to.Col))
	}
	p.Board.Set(to, p.Board.At(from))
	p.Board.Clear(from)
}
