// Package cli implements a line-oriented front end for a game.Session:
// two players take turns typing moves such as "e2 e4" or "e7e8q".
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/obslog"
	"github.com/hailam/chessrules/internal/storage"
)

// CLI reads commands from a reader and plays them on a Session.
type CLI struct {
	session *game.Session
	out     io.Writer
	store   *storage.Storage
	log     *zap.Logger

	toMove  board.Color
	plies   int
	started time.Time
	over    bool
}

// Option configures a CLI.
type Option func(*CLI)

// WithStorage records finished games and enables the "stats" command.
func WithStorage(s *storage.Storage) Option {
	return func(c *CLI) { c.store = s }
}

// WithLogger sets the logger; the default is obslog.L().
func WithLogger(l *zap.Logger) Option {
	return func(c *CLI) { c.log = l }
}

// New creates a CLI that writes to out and plays on session.
func New(session *game.Session, out io.Writer, opts ...Option) *CLI {
	c := &CLI{session: session, out: out, log: obslog.L()}
	for _, opt := range opts {
		opt(c)
	}
	c.newGame()
	return c
}

// Run reads commands until in is exhausted or "quit" is entered.
func (c *CLI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	c.printBoard()
	c.prompt()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			c.prompt()
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		if c.session.State() == game.PromotionPending && !isSessionCommand(cmd) {
			c.handlePromotionChoice(line)
			c.prompt()
			continue
		}

		switch cmd {
		case "quit", "exit":
			c.session.Stop()
			return nil
		case "help":
			c.handleHelp()
		case "new":
			c.newGame()
			c.printBoard()
		case "board", "d":
			c.printBoard()
		case "moves":
			c.handleMoves(args)
		case "stats":
			c.handleStats()
		case "move":
			c.handleMove(args)
		default:
			c.handleMove(parts)
		}
		c.prompt()
	}
	return scanner.Err()
}

// isSessionCommand reports commands that are answered even while a
// promotion choice is awaited.
func isSessionCommand(cmd string) bool {
	switch cmd {
	case "quit", "exit", "help":
		return true
	}
	return false
}

func (c *CLI) newGame() {
	c.session.Reset()
	c.toMove = board.White
	c.plies = 0
	c.started = time.Now()
	c.over = false
}

func (c *CLI) prompt() {
	switch {
	case c.session.State() == game.PromotionPending:
		fmt.Fprint(c.out, "Promote to (q, r, b, n) or cancel: ")
	case c.over:
		fmt.Fprint(c.out, "Game over. Type new or quit: ")
	default:
		fmt.Fprintf(c.out, "%s to move: ", c.toMove)
	}
}

func (c *CLI) handleHelp() {
	fmt.Fprintln(c.out, "Commands:")
	fmt.Fprintln(c.out, "  e2 e4, e2e4      move a piece; add q, r, b or n to promote (e7 e8 q)")
	fmt.Fprintln(c.out, "  moves <square>   list the legal destinations of a piece")
	fmt.Fprintln(c.out, "  board            print the board")
	fmt.Fprintln(c.out, "  new              start a new game")
	fmt.Fprintln(c.out, "  stats            show recorded results")
	fmt.Fprintln(c.out, "  quit             leave")
}

// handleMove parses "e2 e4 [q]" or "e2e4[q]" and plays it.
func (c *CLI) handleMove(args []string) {
	if c.over {
		fmt.Fprintln(c.out, "The game is over.")
		return
	}
	from, to, promo, err := parseMove(strings.Join(args, ""))
	if err != nil {
		fmt.Fprintf(c.out, "%v. Type help for commands.\n", err)
		return
	}

	color, ok := c.session.PieceColorAt(from)
	if !ok {
		fmt.Fprintf(c.out, "No piece on %s.\n", from)
		return
	}
	if color != c.toMove {
		fmt.Fprintf(c.out, "The piece on %s is not %s's.\n", from, c.toMove)
		return
	}

	c.session.Select(from)
	res, err := c.session.Apply(to)
	if err != nil {
		c.session.Deselect()
		if errors.Is(err, game.ErrIllegalDestination) {
			fmt.Fprintf(c.out, "Illegal move: %s %s.\n", from, to)
		} else {
			fmt.Fprintf(c.out, "Cannot move: %v.\n", err)
		}
		return
	}

	if res.PromotionPending {
		if promo == board.NoPieceType {
			return
		}
		if res, err = c.session.Promote(to, promo); err != nil {
			c.session.CancelPromotion()
			fmt.Fprintf(c.out, "Cannot promote: %v.\n", err)
			return
		}
	}
	c.finishTurn(res)
}

func (c *CLI) handlePromotionChoice(line string) {
	if strings.EqualFold(line, "cancel") {
		c.session.CancelPromotion()
		fmt.Fprintln(c.out, "Promotion cancelled.")
		return
	}
	pt, ok := board.ParsePieceType(strings.ToLower(line)[0])
	if !ok || len(line) != 1 || !pt.IsPromotable() {
		fmt.Fprintln(c.out, "Choose q, r, b or n.")
		return
	}
	res, err := c.session.Promote(c.session.PendingPromotion(), pt)
	if err != nil {
		fmt.Fprintf(c.out, "Cannot promote: %v.\n", err)
		return
	}
	c.finishTurn(res)
}

func (c *CLI) finishTurn(res board.MoveResult) {
	c.plies++
	c.toMove = c.toMove.Other()
	c.printBoard()

	switch {
	case res.Castled:
		fmt.Fprintln(c.out, "Castled.")
	case res.EnPassant:
		fmt.Fprintln(c.out, "En passant.")
	}

	out := c.session.Outcome(c.toMove)
	if !out.IsOver() {
		if c.session.IsCheck(c.toMove) {
			fmt.Fprintln(c.out, "Check.")
		}
		return
	}

	c.over = true
	c.session.Stop()
	fmt.Fprintf(c.out, "%s.\n", out)
	c.log.Info("game over", zap.Stringer("outcome", out), zap.Int("plies", c.plies))
	if c.store != nil {
		if _, err := c.store.RecordGame(storage.ResultOf(out, c.plies, time.Since(c.started))); err != nil {
			c.log.Warn("record game failed", zap.Error(err))
		}
	}
}

func (c *CLI) handleMoves(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: moves <square>")
		return
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "%v.\n", err)
		return
	}
	if c.over {
		fmt.Fprintln(c.out, "The game is over.")
		return
	}
	dests, ok := c.session.Select(sq)
	c.session.Deselect()
	if !ok {
		fmt.Fprintf(c.out, "No piece on %s.\n", sq)
		return
	}
	if len(dests) == 0 {
		fmt.Fprintf(c.out, "%s has no legal moves.\n", sq)
		return
	}
	names := make([]string, len(dests))
	for i, d := range dests {
		names[i] = d.String()
	}
	fmt.Fprintf(c.out, "%s: %s\n", sq, strings.Join(names, " "))
}

func (c *CLI) handleStats() {
	if c.store == nil {
		fmt.Fprintln(c.out, "Statistics are not recorded.")
		return
	}
	stats, err := c.store.LoadStats()
	if err != nil {
		fmt.Fprintf(c.out, "Cannot load statistics: %v.\n", err)
		return
	}
	fmt.Fprintf(c.out, "Games: %d  White: %d  Black: %d  Draws: %d (%.0f%%)\n",
		stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws, stats.DrawRate())
	if stats.GamesPlayed > 0 {
		fmt.Fprintf(c.out, "Longest game: %d plies  Time played: %s\n",
			stats.LongestGame, stats.TotalPlayTime.Round(time.Second))
	}
}

func (c *CLI) printBoard() {
	fmt.Fprint(c.out, render(c.session))
}

// render draws the board with rank 8 at the top.
func render(s *game.Session) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < board.Size; row++ {
		fmt.Fprintf(&sb, "%d  ", board.Size-row)
		for col := 0; col < board.Size; col++ {
			pc := s.PieceAt(board.NewSquare(row, col))
			if pc.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(pc.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	return sb.String()
}

// parseMove splits "e2e4" or "e7e8q" into its squares and promotion piece.
func parseMove(s string) (from, to board.Square, promo board.PieceType, err error) {
	s = strings.ToLower(s)
	if len(s) != 4 && len(s) != 5 {
		return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("unknown command %q", s)
	}
	if from, err = board.ParseSquare(s[0:2]); err != nil {
		return board.NoSquare, board.NoSquare, board.NoPieceType, err
	}
	if to, err = board.ParseSquare(s[2:4]); err != nil {
		return board.NoSquare, board.NoSquare, board.NoPieceType, err
	}
	if len(s) == 5 {
		pt, ok := board.ParsePieceType(s[4])
		if !ok || !pt.IsPromotable() {
			return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("invalid promotion piece %q", s[4:])
		}
		promo = pt
	}
	return from, to, promo, nil
}
