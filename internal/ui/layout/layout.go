// Package layout maps between board squares and screen pixels. It has no
// graphics dependency so the geometry can be tested headless.
package layout

import "github.com/hailam/chessrules/internal/board"

// Board describes the on-screen board: its pixel size and orientation.
// Flipped puts Black's back rank at the bottom.
type Board struct {
	Size    int
	Flipped bool
}

// SquareSize returns the edge length of one square in pixels.
func (b Board) SquareSize() int {
	return b.Size / board.Size
}

// Origin returns the top-left pixel of sq.
func (b Board) Origin(sq board.Square) (x, y int) {
	row, col := sq.Row, sq.Col
	if b.Flipped {
		row, col = board.Size-1-row, board.Size-1-col
	}
	return col * b.SquareSize(), row * b.SquareSize()
}

// SquareAt returns the square under pixel (x, y), or false when the point is off the board.
func (b Board) SquareAt(x, y int) (board.Square, bool) {
	if x < 0 || y < 0 || x >= b.Size || y >= b.Size {
		return board.NoSquare, false
	}
	row, col := y/b.SquareSize(), x/b.SquareSize()
	if b.Flipped {
		row, col = board.Size-1-row, board.Size-1-col
	}
	sq := board.NewSquare(row, col)
	return sq, sq.IsValid()
}

// IsLight reports whether sq is a light square; a1 is dark.
func IsLight(sq board.Square) bool {
	return (sq.Row+sq.Col)%2 == 0
}

// FileLabel and RankLabel return the coordinate text drawn on the edge square
// at screen column or row i.
func (b Board) FileLabel(i int) string {
	if b.Flipped {
		i = board.Size - 1 - i
	}
	return string(rune('a' + i))
}

func (b Board) RankLabel(i int) string {
	if b.Flipped {
		i = board.Size - 1 - i
	}
	return string(rune('8' - i))
}

// CastleDrop maps a king dropped on its own unmoved rook to the castling
// destination two columns away, so dragging the king onto the rook castles.
// Any other drop is returned unchanged.
func CastleDrop(king board.Piece, from, to board.Square, rook board.Piece) board.Square {
	if king.Type() != board.King || !king.IsFirstMove() || to.Row != from.Row {
		return to
	}
	if rook.Type() != board.Rook || rook.Color() != king.Color() {
		return to
	}
	switch to.Col {
	case board.Size - 1:
		return board.NewSquare(from.Row, from.Col+2)
	case 0:
		return board.NewSquare(from.Row, from.Col-2)
	}
	return to
}

// PickerSquares returns the squares a promotion picker on dest occupies, one
// per board.PromotionPieces entry, stacked from dest toward the middle of the
// screen.
func (b Board) PickerSquares(dest board.Square) []board.Square {
	step := 1
	_, y := b.Origin(dest)
	if y != 0 {
		step = -1
	}
	if b.Flipped {
		step = -step
	}
	squares := make([]board.Square, len(board.PromotionPieces))
	for i := range squares {
		squares[i] = dest.Add(i*step, 0)
	}
	return squares
}

// PickerChoice returns the promotion piece under pixel (x, y) for a picker on dest.
func (b Board) PickerChoice(dest board.Square, x, y int) (board.PieceType, bool) {
	sq, ok := b.SquareAt(x, y)
	if !ok {
		return board.NoPieceType, false
	}
	for i, s := range b.PickerSquares(dest) {
		if s == sq {
			return board.PromotionPieces[i], true
		}
	}
	return board.NoPieceType, false
}
