package board

import "unicode"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Char returns the single-letter color code used in snapshots ('w' or 'b').
func (c Color) Char() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// Forward returns the row delta of a pawn advance: White moves toward row 0.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// HomeRow returns the back rank row of the color.
func (c Color) HomeRow() int {
	if c == White {
		return Size - 1
	}
	return 0
}

// PawnRow returns the row the color's pawns start on.
func (c Color) PawnRow() int {
	return c.HomeRow() + c.Forward()
}

// PromotionRow returns the row on which the color's pawns promote.
func (c Color) PromotionRow() int {
	return c.Other().HomeRow()
}

// PieceType represents the kind of a chess piece. The zero value marks an empty slot.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the lowercase letter for the piece type, or ' ' for NoPieceType.
func (pt PieceType) Char() byte {
	return " pnbrqk"[pt%7]
}

// IsPromotable reports whether a pawn may promote to the piece type.
func (pt PieceType) IsPromotable() bool {
	return pt == Queen || pt == Rook || pt == Bishop || pt == Knight
}

// ParsePieceType converts a piece letter (either case) to a PieceType.
func ParsePieceType(c byte) (PieceType, bool) {
	switch unicode.ToLower(rune(c)) {
	case 'p':
		return Pawn, true
	case 'n':
		return Knight, true
	case 'b':
		return Bishop, true
	case 'r':
		return Rook, true
	case 'q':
		return Queen, true
	case 'k':
		return King, true
	}
	return NoPieceType, false
}

// Piece is the content of one board slot: a colored piece plus the movement
// state the rules depend on. The zero Piece is an empty slot.
type Piece struct {
	kind      PieceType
	color     Color
	firstMove bool
	enPassant Square
}

// NewPiece creates an unmoved piece.
func NewPiece(pt PieceType, c Color) Piece {
	return Piece{kind: pt, color: c, firstMove: true, enPassant: NoSquare}
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	return p.kind
}

// Color returns the Color of the piece. Meaningless for an empty slot.
func (p Piece) Color() Color {
	return p.color
}

// IsEmpty reports whether the slot holds no piece.
func (p Piece) IsEmpty() bool {
	return p.kind == NoPieceType
}

// IsFirstMove reports whether a pawn, rook or king has yet to move.
// Other piece types always report false.
func (p Piece) IsFirstMove() bool {
	switch p.kind {
	case Pawn, Rook, King:
		return p.firstMove
	}
	return false
}

// PossibleEnPassant returns the square a pawn skipped on its double step,
// if its last move was one.
func (p Piece) PossibleEnPassant() (Square, bool) {
	if p.kind != Pawn || !p.enPassant.IsValid() {
		return NoSquare, false
	}
	return p.enPassant, true
}

// Moved returns the piece as it stands after moving from one square to another.
func (p Piece) Moved(from, to Square) Piece {
	p.firstMove = false
	p.enPassant = NoSquare
	if p.kind == Pawn && from.Col == to.Col && abs(to.Row-from.Row) == 2 {
		p.enPassant = Square{Row: (from.Row + to.Row) / 2, Col: from.Col}
	}
	return p
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	c := rune(p.kind.Char())
	if p.color == White {
		c = unicode.ToUpper(c)
	}
	return string(c)
}
