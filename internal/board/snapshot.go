package board

import "strings"

// Snapshot is a comparable image of piece placement, one two-letter code per
// square in row-major order: kind letter then color letter (e.g., "kw", "pb").
// Empty squares hold "  ". Movement state is not part of the image, so two
// boards with the same placement always produce equal snapshots.
type Snapshot [Size * Size][2]byte

// Snapshot captures the current piece placement.
func (b *Board) Snapshot() Snapshot {
	var s Snapshot
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			s[row*Size+col] = b[row][col].code()
		}
	}
	return s
}

func (p Piece) code() [2]byte {
	if p.IsEmpty() {
		return [2]byte{' ', ' '}
	}
	return [2]byte{p.kind.Char(), p.color.Char()}
}

// String joins the square codes row by row, rows separated by '/'.
func (s Snapshot) String() string {
	var sb strings.Builder
	for i, code := range s {
		if i > 0 && i%Size == 0 {
			sb.WriteByte('/')
		}
		sb.Write(code[:])
	}
	return sb.String()
}
