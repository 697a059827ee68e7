package board

import (
	"fmt"
	"strings"
)

// Board is the 8x8 arena of slots, indexed [row][col].
type Board [Size][Size]Piece

// At returns the piece on a square. Panics if the square is off the board.
func (b *Board) At(sq Square) Piece {
	sq.MustBeValid()
	return b[sq.Row][sq.Col]
}

// IsEmpty returns true if the square holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.At(sq).IsEmpty()
}

// Set places a piece on a square.
func (b *Board) Set(sq Square, p Piece) {
	sq.MustBeValid()
	b[sq.Row][sq.Col] = p
}

// Clear empties a square.
func (b *Board) Clear(sq Square) {
	b.Set(sq, Piece{})
}

// Position represents a complete chess position: the board, the square a
// pawn may currently be captured on en passant, and the cached king squares.
type Position struct {
	Board     Board
	EnPassant Square // Skipped square of the last double pawn step, NoSquare if none
	Kings     [2]Square
}

var backRank = [Size]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewPosition creates the starting position.
func NewPosition() *Position {
	p := EmptyPosition()
	for _, c := range []Color{White, Black} {
		for col, pt := range backRank {
			p.Put(NewSquare(c.HomeRow(), col), NewPiece(pt, c))
			p.Put(NewSquare(c.PawnRow(), col), NewPiece(Pawn, c))
		}
	}
	return p
}

// EmptyPosition creates a position with no pieces. Callers must place both
// kings with Put before asking check questions.
func EmptyPosition() *Position {
	return &Position{
		EnPassant: NoSquare,
		Kings:     [2]Square{NoSquare, NoSquare},
	}
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// Put places a piece on a square, keeping the king cache current.
func (p *Position) Put(sq Square, pc Piece) {
	p.Board.Set(sq, pc)
	if pc.Type() == King {
		p.Kings[pc.Color()] = sq
	}
}

// PieceAt returns the piece at the given square.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Board.At(sq)
}

// KingSquare returns the square of the color's king.
func (p *Position) KingSquare(c Color) Square {
	return p.Kings[c]
}

// Squares returns the occupied squares of one color in row-major order.
func (p *Position) Squares(c Color) []Square {
	var squares []Square
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			pc := p.Board[row][col]
			if !pc.IsEmpty() && pc.Color() == c {
				squares = append(squares, NewSquare(row, col))
			}
		}
	}
	return squares
}

// Validate checks that each side has exactly one king and the king cache agrees.
func (p *Position) Validate() error {
	var kings [2]int
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			pc := p.Board[row][col]
			if pc.Type() != King {
				continue
			}
			kings[pc.Color()]++
			if p.Kings[pc.Color()] != NewSquare(row, col) {
				return fmt.Errorf("%s king cached on %s but stands on %s", pc.Color(), p.Kings[pc.Color()], NewSquare(row, col))
			}
		}
	}
	for _, c := range []Color{White, Black} {
		if kings[c] != 1 {
			return fmt.Errorf("%s must have exactly one king, got %d", strings.ToLower(c.String()), kings[c])
		}
	}
	return nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d  ", Size-row)
		for col := 0; col < Size; col++ {
			pc := p.Board[row][col]
			if pc.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(pc.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
