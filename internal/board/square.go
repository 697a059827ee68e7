// Package board implements the chess board, piece movement rules and check detection.
package board

import "fmt"

// Size is the number of rows and columns on the board.
const Size = 8

// Square addresses a board slot by row and column.
// Row 0 is Black's back rank (rank 8) and row 7 is White's back rank (rank 1).
// Column 0 is the a-file.
type Square struct {
	Row, Col int
}

// NoSquare is the "no square" sentinel, also used as the destination of a
// piece removed from the board.
var NoSquare = Square{Row: -1, Col: -1}

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square{Row: row, Col: col}
}

// IsValid returns true if both coordinates lie in 0..7.
func (sq Square) IsValid() bool {
	return sq.Row >= 0 && sq.Row < Size && sq.Col >= 0 && sq.Col < Size
}

// MustBeValid panics if the square is off the board.
func (sq Square) MustBeValid() {
	if !sq.IsValid() {
		panic(fmt.Sprintf("board: square (%d,%d) out of range", sq.Row, sq.Col))
	}
}

// Add returns the square offset by dr rows and dc columns. The result may be off the board.
func (sq Square) Add(dr, dc int) Square {
	return Square{Row: sq.Row + dr, Col: sq.Col + dc}
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col, '8'-sq.Row)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	col := int(s[0]) - 'a'
	row := '8' - int(s[1])

	sq := NewSquare(row, col)
	if !sq.IsValid() {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	return sq, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
