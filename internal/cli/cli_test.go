package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

func run(t *testing.T, script string, opts ...Option) (string, *CLI) {
	t.Helper()
	var out bytes.Buffer
	c := New(game.New(), &out, opts...)
	if err := c.Run(strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String(), c
}

func TestFoolsMateIsRecorded(t *testing.T) {
	store, err := storage.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	out, c := run(t, "f2 f3\ne7e5\ng2 g4\nd8 h4\ne2 e4\nmoves e2\nstats\nquit\n", WithStorage(store))

	if !strings.Contains(out, "Black wins by checkmate.") {
		t.Fatalf("Missing checkmate banner:\n%s", out)
	}
	if strings.Count(out, "The game is over.") != 2 {
		t.Errorf("Moves and move listing after the end should be refused:\n%s", out)
	}
	if strings.Contains(out, "No piece on e2.") {
		t.Error("An occupied square must not be reported empty after the end")
	}
	if !strings.Contains(out, "Games: 1  White: 0  Black: 1  Draws: 0") {
		t.Errorf("stats output wrong:\n%s", out)
	}
	if c.plies != 4 {
		t.Errorf("plies = %d, want 4", c.plies)
	}

	stats, err := store.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.BlackWins != 1 || stats.Endings["checkmate"] != 1 || stats.LongestGame != 4 {
		t.Errorf("Recorded stats = %+v", stats)
	}
}

func TestTurnsAndErrors(t *testing.T) {
	out, c := run(t, "e7 e5\ne3 e4\ne2 e5\nfoo\nz9z1\ne2 e4\nquit\n")

	for _, want := range []string{
		"The piece on e7 is not White's.",
		"No piece on e3.",
		"Illegal move: e2 e5.",
		`unknown command "foo"`,
		`invalid square: "z9"`,
		"Black to move: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q", want)
		}
	}
	if c.toMove != board.Black {
		t.Errorf("toMove = %v, want Black", c.toMove)
	}
	if c.session.State() != game.Idle {
		t.Errorf("Failed moves should leave nothing selected, state %v", c.session.State())
	}
}

func TestMovesCommand(t *testing.T) {
	out, _ := run(t, "moves e2\nmoves g1\nmoves e4\nmoves\n")

	for _, want := range []string{
		"e2: e3 e4",
		"g1: ",
		"No piece on e4.",
		"Usage: moves <square>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

// promotionLine walks a white pawn to b7, from where b7a8 captures the rook.
const promotionLine = "a2a4\nb7b5\na4b5\na7a6\nb5a6\nc8b7\na6b7\nb8c6\n"

func TestPromotionPrompt(t *testing.T) {
	out, c := run(t, promotionLine+"b7a8\nx\ncancel\nb7a8\nn\n")

	if !strings.Contains(out, "Promote to (q, r, b, n) or cancel: ") {
		t.Fatalf("No promotion prompt:\n%s", out)
	}
	if !strings.Contains(out, "Choose q, r, b or n.") {
		t.Error("Invalid choice should be rejected")
	}
	if !strings.Contains(out, "Promotion cancelled.") {
		t.Error("Cancel should be acknowledged")
	}
	if !strings.Contains(out, "8  N . . q k b n r") {
		t.Errorf("Knight should stand on a8:\n%s", out)
	}
	if c.toMove != board.Black || c.plies != 9 {
		t.Errorf("toMove = %v, plies = %d", c.toMove, c.plies)
	}
}

func TestQuitWhilePromotionPending(t *testing.T) {
	out, c := run(t, promotionLine+"b7a8\nhelp\nquit\nq\n")

	if strings.Contains(out, "Choose q, r, b or n.") {
		t.Errorf("help and quit should not be read as promotion choices:\n%s", out)
	}
	if !strings.Contains(out, "Commands:") {
		t.Error("help should answer while a promotion is pending")
	}
	if !c.session.Stopped() {
		t.Error("quit should stop the session")
	}
	if c.session.PieceAt(board.NewSquare(0, 0)).Type() != board.Rook {
		t.Error("Input after quit must not be read")
	}
}

func TestPromotionInline(t *testing.T) {
	out, c := run(t, promotionLine+"b7 a8 q\n")

	if strings.Contains(out, "Promote to") {
		t.Error("Inline promotion should not prompt")
	}
	if got := c.session.PieceAt(board.NewSquare(0, 0)); got.Type() != board.Queen || got.Color() != board.White {
		t.Errorf("a8 = %v, want white queen", got)
	}
}

func TestNewGame(t *testing.T) {
	_, c := run(t, "e2e4\nnew\n")
	if c.toMove != board.White || c.plies != 0 {
		t.Errorf("new should reset the turn, got %v after %d plies", c.toMove, c.plies)
	}
	if !c.session.PieceAt(board.NewSquare(6, 4)).IsFirstMove() {
		t.Error("new should restore the starting position")
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		from    string
		to      string
		promo   board.PieceType
		wantErr bool
	}{
		{"e2e4", "e2", "e4", board.NoPieceType, false},
		{"E7E8Q", "e7", "e8", board.Queen, false},
		{"a7a8n", "a7", "a8", board.Knight, false},
		{"a7a8k", "", "", 0, true},
		{"e2", "", "", 0, true},
		{"i2i4", "", "", 0, true},
	}
	for _, tt := range tests {
		from, to, promo, err := parseMove(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseMove(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil || from.String() != tt.from || to.String() != tt.to || promo != tt.promo {
			t.Errorf("parseMove(%q) = %s %s %v %v", tt.in, from, to, promo, err)
		}
	}
}
