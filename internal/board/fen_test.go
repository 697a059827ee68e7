package board

// FEN helpers for tests: positions are loaded from and compared against
// reference generators in FEN form.

import (
	"fmt"
	"strconv"
	"strings"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// parseFEN parses a FEN string into a Position and the side to move.
// Castling rights become the first-move state of kings and rooks, pawns
// count as unmoved only on their starting row, and the en passant field arms
// the pawn that just made its double step. Clock fields are ignored.
func parseFEN(fen string) (*Position, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, White, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	pos := EmptyPosition()
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, White, err
	}

	var toMove Color
	switch parts[1] {
	case "w":
		toMove = White
	case "b":
		toMove = Black
	default:
		return nil, White, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, White, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, White, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		mover := toMove.Other()
		pawnSq := sq.Add(mover.Forward(), 0)
		if pawnSq.IsValid() {
			if pawn := pos.Board.At(pawnSq); pawn.Type() == Pawn && pawn.Color() == mover {
				pawn.enPassant = sq
				pos.Board.Set(pawnSq, pawn)
				pos.EnPassant = sq
			}
		}
	}

	if err := pos.Validate(); err != nil {
		return nil, White, fmt.Errorf("invalid FEN: %w", err)
	}
	return pos, toMove, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
// Kings and rooks start as moved until castling rights say otherwise.
func parsePiecePlacement(pos *Position, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != Size {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(rows))
	}

	for row, rowStr := range rows {
		col := 0
		for _, c := range rowStr {
			if col >= Size {
				return fmt.Errorf("too many squares in rank %d", Size-row)
			}
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}

			pt, ok := ParsePieceType(byte(c))
			if !ok {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			color := Black
			if c >= 'A' && c <= 'Z' {
				color = White
			}
			pc := NewPiece(pt, color)
			if pt != Pawn || row != color.PawnRow() {
				pc.firstMove = false
			}
			pos.Put(NewSquare(row, col), pc)
			col++
		}
		if col != Size {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", Size-row, col)
		}
	}
	return nil
}

// parseCastlingRights marks the king and the matching rook of every listed right as unmoved.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		return nil
	}

	for _, c := range castling {
		var color Color
		var rookCol int
		switch c {
		case 'K':
			color, rookCol = White, Size-1
		case 'Q':
			color, rookCol = White, 0
		case 'k':
			color, rookCol = Black, Size-1
		case 'q':
			color, rookCol = Black, 0
		default:
			return fmt.Errorf("invalid castling character: %c", c)
		}

		kingSq := NewSquare(color.HomeRow(), 4)
		rookSq := NewSquare(color.HomeRow(), rookCol)
		king, rook := pos.Board.At(kingSq), pos.Board.At(rookSq)
		if king.Type() != King || king.Color() != color || rook.Type() != Rook || rook.Color() != color {
			return fmt.Errorf("castling right %c without king and rook in place", c)
		}
		king.firstMove = true
		rook.firstMove = true
		pos.Board.Set(kingSq, king)
		pos.Board.Set(rookSq, rook)
	}
	return nil
}

// fen returns the FEN representation of the position with the given side to
// move and clock fields. Castling rights are derived from unmoved kings and rooks.
func (p *Position) fen(toMove Color, halfMove, fullMove int) string {
	var sb strings.Builder

	for row := 0; row < Size; row++ {
		empty := 0
		for col := 0; col < Size; col++ {
			pc := p.Board[row][col]
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < Size-1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteByte(toMove.Char())

	sb.WriteByte(' ')
	sb.WriteString(p.castlingRights())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(halfMove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(fullMove))

	return sb.String()
}

func (p *Position) castlingRights() string {
	s := ""
	for _, c := range []Color{White, Black} {
		king := p.Board.At(NewSquare(c.HomeRow(), 4))
		if king.Type() != King || king.Color() != c || !king.IsFirstMove() {
			continue
		}
		for _, side := range []struct {
			col  int
			char byte
		}{{Size - 1, 'k'}, {0, 'q'}} {
			rook := p.Board.At(NewSquare(c.HomeRow(), side.col))
			if rook.Type() != Rook || rook.Color() != c || !rook.IsFirstMove() {
				continue
			}
			if c == White {
				s += strings.ToUpper(string(side.char))
			} else {
				s += string(side.char)
			}
		}
	}
	if s == "" {
		return "-"
	}
	return s
}
