package board

import (
	"math/rand"
	"testing"
)

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

func TestStartingPosition(t *testing.T) {
	pos := NewPosition()
	if err := pos.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := pos.fen(White, 0, 1); got != StartFEN {
		t.Errorf("FEN = %q, want %q", got, StartFEN)
	}
	if pos.KingSquare(White) != NewSquare(7, 4) || pos.KingSquare(Black) != NewSquare(0, 4) {
		t.Errorf("Kings on %v, want e1 and e8", pos.Kings)
	}
	if n := len(pos.LegalMoves(White)); n != 20 {
		t.Errorf("White has %d moves, want 20", n)
	}
	if n := len(pos.LegalMoves(Black)); n != 20 {
		t.Errorf("Black has %d moves, want 20", n)
	}
}

func TestEmptySquareHasNoMoves(t *testing.T) {
	pos := NewPosition()
	if moves := pos.Moves(NewSquare(4, 4), LegalMoves); moves != nil {
		t.Errorf("Empty square returned %v", moves)
	}
}

func TestOffBoardSquarePanics(t *testing.T) {
	pos := NewPosition()
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for off-board square")
		}
	}()
	pos.Moves(NewSquare(8, 0), LegalMoves)
}

// TestMovesStayOnBoard plays random games and checks that no candidate ever
// leaves the board or lands on a piece of the mover's color.
func TestMovesStayOnBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for g := 0; g < 4; g++ {
		pos := NewPosition()
		toMove := White
		for ply := 0; ply < 80; ply++ {
			for _, c := range []Color{White, Black} {
				for _, from := range pos.Squares(c) {
					for _, mode := range []MoveMode{LegalMoves, AttackMap} {
						for _, to := range pos.Moves(from, mode) {
							if !to.IsValid() {
								t.Fatalf("%s produced off-board %v", from, to)
							}
							if target := pos.Board.At(to); !target.IsEmpty() && target.Color() == c {
								t.Fatalf("%s lands on own piece at %s", from, to)
							}
						}
					}
				}
			}
			moves := pos.LegalMoves(toMove)
			if len(moves) == 0 {
				break
			}
			pos.Play(moves[rng.Intn(len(moves))])
			toMove = toMove.Other()
		}
	}
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from Square
		want []Square
	}{
		{"double step", StartFEN, NewSquare(6, 4), []Square{NewSquare(5, 4), NewSquare(4, 4)}},
		{"black double step", StartFEN, NewSquare(1, 3), []Square{NewSquare(2, 3), NewSquare(3, 3)}},
		{"blocked", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", NewSquare(6, 4), nil},
		{"second square blocked", "4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1", NewSquare(6, 4), []Square{NewSquare(5, 4)}},
		{"moved pawn single step", "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1", NewSquare(5, 4), []Square{NewSquare(4, 4)}},
		{"captures", "4k3/8/8/8/8/3b1b2/4P3/4K3 w - - 0 1", NewSquare(6, 4), []Square{NewSquare(5, 4), NewSquare(4, 4), NewSquare(5, 3), NewSquare(5, 5)}},
		{"no capture of own piece", "4k3/8/8/8/8/3N4/4P3/4K3 w - - 0 1", NewSquare(6, 4), []Square{NewSquare(5, 4), NewSquare(4, 4)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, _ := mustParseFEN(t, tc.fen)
			got := pos.Moves(tc.from, LegalMoves)
			if len(got) != len(tc.want) {
				t.Fatalf("Moves(%s) = %v, want %v", tc.from, got, tc.want)
			}
			for _, sq := range tc.want {
				if !containsSquare(got, sq) {
					t.Errorf("Moves(%s) = %v, missing %s", tc.from, got, sq)
				}
			}
		})
	}
}

func TestEnPassantWindow(t *testing.T) {
	pos := NewPosition()
	e2, e4 := NewSquare(6, 4), NewSquare(4, 4)
	e5 := NewSquare(3, 4)
	d7, d5 := NewSquare(1, 3), NewSquare(3, 3)
	d6 := NewSquare(2, 3)

	pos.Apply(e2, e4)
	if pos.EnPassant != NewSquare(5, 4) {
		t.Fatalf("EnPassant = %s after e2e4, want e3", pos.EnPassant)
	}
	pos.Apply(NewSquare(1, 0), NewSquare(2, 0)) // a7a6
	if pos.EnPassant != NoSquare {
		t.Fatalf("EnPassant = %s after a single step, want none", pos.EnPassant)
	}
	pos.Apply(e4, e5)
	pos.Apply(d7, d5)

	if !containsSquare(pos.Moves(e5, LegalMoves), d6) {
		t.Fatalf("exd6 should be available, got %v", pos.Moves(e5, LegalMoves))
	}

	// Any other move closes the window.
	copied := pos.Copy()
	copied.Apply(NewSquare(6, 7), NewSquare(5, 7)) // h2h3
	copied.Apply(NewSquare(1, 7), NewSquare(2, 7)) // h7h6
	if containsSquare(copied.Moves(e5, LegalMoves), d6) {
		t.Error("exd6 must expire after one ply")
	}

	res := pos.Apply(e5, d6)
	if !res.EnPassant || res.Captured {
		t.Errorf("Result = %+v, want en passant onto an empty square", res)
	}
	if res.Secondary == nil || res.Secondary.From != d5 || !res.Secondary.Removed() {
		t.Errorf("Secondary = %+v, want d5 removed", res.Secondary)
	}
	if !pos.Board.IsEmpty(d5) {
		t.Error("Captured pawn still on d5")
	}
	if pc := pos.PieceAt(d6); pc.Type() != Pawn || pc.Color() != White {
		t.Errorf("d6 holds %v, want white pawn", pc)
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		kingSide  bool
		queenSide bool
	}{
		{"both available", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", true, true},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1", false, false},
		{"kingside only", "r3k2r/8/8/8/8/8/8/R3K2R w K - 0 1", true, false},
		{"blocked by knight", "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1", false, false},
		{"in check", "r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1", false, false},
		{"f1 attacked", "r3k2r/8/8/8/5r2/8/8/R3K2R w KQkq - 0 1", false, true},
		{"g1 attacked", "r3k2r/8/8/8/6r1/8/8/R3K2R w KQkq - 0 1", false, true},
		{"d1 attacked", "r3k2r/8/8/8/3r4/8/8/R3K2R w KQkq - 0 1", true, false},
		{"b1 attacked is fine", "r3k2r/8/8/8/1r6/8/8/R3K2R w KQkq - 0 1", true, true},
	}

	e1 := NewSquare(7, 4)
	g1, c1 := NewSquare(7, 6), NewSquare(7, 2)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, _ := mustParseFEN(t, tc.fen)
			moves := pos.Moves(e1, LegalMoves)
			if got := containsSquare(moves, g1); got != tc.kingSide {
				t.Errorf("kingside castling = %v, want %v (moves %v)", got, tc.kingSide, moves)
			}
			if got := containsSquare(moves, c1); got != tc.queenSide {
				t.Errorf("queenside castling = %v, want %v (moves %v)", got, tc.queenSide, moves)
			}
		})
	}
}

func TestCastlingMovesRook(t *testing.T) {
	pos, _ := mustParseFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	res := pos.Apply(NewSquare(7, 4), NewSquare(7, 6))
	if !res.Castled || res.Secondary == nil {
		t.Fatalf("Result = %+v, want castling", res)
	}
	if *res.Secondary != (Relocation{From: NewSquare(7, 7), To: NewSquare(7, 5)}) {
		t.Errorf("Secondary = %+v, want h1->f1", *res.Secondary)
	}
	if pc := pos.PieceAt(NewSquare(7, 5)); pc.Type() != Rook || pc.IsFirstMove() {
		t.Errorf("f1 holds %v (first move %v), want moved rook", pc, pc.IsFirstMove())
	}
	if pos.KingSquare(White) != NewSquare(7, 6) {
		t.Errorf("King cache = %s, want g1", pos.KingSquare(White))
	}

	res = pos.Apply(NewSquare(0, 4), NewSquare(0, 2))
	if *res.Secondary != (Relocation{From: NewSquare(0, 0), To: NewSquare(0, 3)}) {
		t.Errorf("Secondary = %+v, want a8->d8", *res.Secondary)
	}
	if got := pos.fen(White, 0, 1); got != "2kr3r/8/8/8/8/8/8/R4RK1 w - - 0 1" {
		t.Errorf("FEN = %q", got)
	}
}

func TestRookMoveLosesCastling(t *testing.T) {
	pos, _ := mustParseFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	h1, h2 := NewSquare(7, 7), NewSquare(6, 7)
	pos.Apply(h1, h2)
	pos.Apply(h2, h1)

	if containsSquare(pos.Moves(NewSquare(7, 4), LegalMoves), NewSquare(7, 6)) {
		t.Error("Rook that moved and returned must not castle")
	}
	if !containsSquare(pos.Moves(NewSquare(7, 4), LegalMoves), NewSquare(7, 2)) {
		t.Error("Queenside castling should remain")
	}
}

func TestSlidingPiecesStopAtBlockers(t *testing.T) {
	pos, _ := mustParseFEN(t, "4k3/8/8/8/1p1R2P1/8/8/4K3 w - - 0 1")
	d4 := NewSquare(4, 3)
	moves := pos.Moves(d4, LegalMoves)

	if !containsSquare(moves, NewSquare(4, 1)) {
		t.Error("Rook should capture b4")
	}
	if containsSquare(moves, NewSquare(4, 0)) {
		t.Error("Rook cannot jump past b4")
	}
	if containsSquare(moves, NewSquare(4, 6)) || containsSquare(moves, NewSquare(4, 7)) {
		t.Error("Rook cannot take or pass its own pawn on g4")
	}
	// d5-d8 (4), d3-d1 (3), c4 b4 (2), e4 f4 (2)
	if len(moves) != 11 {
		t.Errorf("Rook has %d moves, want 11: %v", len(moves), moves)
	}
}
