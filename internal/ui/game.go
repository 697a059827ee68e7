package ui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/obslog"
	"github.com/hailam/chessrules/internal/storage"
	"github.com/hailam/chessrules/internal/ui/layout"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / board.Size
	PanelWidth   = ScreenWidth - BoardSize
)

// UIScale is the global HiDPI scale factor for all UI drawing.
// Set by Game.Layout() and used by the input handler.
var UIScale float64 = 1.0

// Game implements ebiten.Game for two players sharing one board.
type Game struct {
	session *game.Session
	toMove  board.Color
	moves   []board.Move
	last    board.Move
	outcome game.Outcome
	started time.Time

	// Drag state; the selection itself lives in the session.
	dragging bool
	dragFrom board.Square

	showHints bool

	store *storage.Storage
	prefs *storage.UserPreferences
	stats *storage.GameStats

	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager
	picker   *PromotionPicker

	log   *zap.Logger
	scale float64
}

// NewGame creates the UI for a fresh session. store may be nil, in which
// case preferences come from cfg and nothing is persisted.
func NewGame(cfg *config.Config, store *storage.Storage) *Game {
	g := &Game{
		session:  game.New(),
		store:    store,
		renderer: NewRenderer(BoardSize),
		input:    NewInputHandler(),
		log:      obslog.L().Named("ui"),
		scale:    1.0,
	}
	g.renderer.SetCoordinates(cfg.Board.ShowCoordinates)
	g.loadPreferences(cfg)

	g.feedback = NewFeedbackManager(NewAudioManager(g.prefs.SoundEnabled, g.prefs.Volume))
	g.picker = NewPromotionPicker()
	g.panel = NewPanel(g)

	g.NewGameAction()
	g.checkFirstLaunch()
	return g
}

// preferencesFrom seeds preferences from the config file.
func preferencesFrom(cfg *config.Config) *storage.UserPreferences {
	prefs := storage.DefaultPreferences()
	prefs.SoundEnabled = cfg.Sound.Enabled
	prefs.Volume = cfg.Sound.Volume
	prefs.Flipped = cfg.Board.Flipped
	prefs.ShowHints = cfg.Board.ShowHints
	return prefs
}

// loadPreferences reads stored preferences, falling back to the config.
func (g *Game) loadPreferences(cfg *config.Config) {
	g.prefs = preferencesFrom(cfg)
	g.stats = storage.NewGameStats()

	if g.store != nil {
		first, err := g.store.IsFirstLaunch()
		if err != nil {
			g.log.Warn("check first launch", zap.Error(err))
		}
		if err == nil && !first {
			if prefs, err := g.store.LoadPreferences(); err != nil {
				g.log.Warn("load preferences", zap.Error(err))
			} else {
				g.prefs = prefs
			}
		}
		if stats, err := g.store.LoadStats(); err != nil {
			g.log.Warn("load stats", zap.Error(err))
		} else {
			g.stats = stats
		}
	}

	g.showHints = g.prefs.ShowHints
	g.renderer.SetFlipped(g.prefs.Flipped)
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.store == nil {
		return
	}
	g.prefs.SoundEnabled = g.feedback.Audio().IsEnabled()
	g.prefs.Volume = g.feedback.Audio().Volume()
	g.prefs.Flipped = g.renderer.Flipped()
	g.prefs.ShowHints = g.showHints
	if err := g.store.SavePreferences(g.prefs); err != nil {
		g.log.Warn("save preferences", zap.Error(err))
	}
}

// checkFirstLaunch greets a new player once and stores the initial preferences.
func (g *Game) checkFirstLaunch() {
	if g.store == nil {
		return
	}
	first, err := g.store.IsFirstLaunch()
	if err != nil || !first {
		return
	}
	g.feedback.Info("Welcome! Click or drag a piece to move it.")
	g.savePreferences()
	if err := g.store.MarkFirstLaunchComplete(); err != nil {
		g.log.Warn("mark first launch complete", zap.Error(err))
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	if g.picker.IsVisible() {
		g.picker.Update(g.input, g.renderer.Geometry())
		g.updateCursor()
		return nil
	}

	if g.panel.HandleInput(g.input) {
		g.updateCursor()
		return nil
	}

	g.handleKeys()
	g.handleBoardInput()
	g.updateCursor()
	return nil
}

// updateCursor sets the cursor shape based on what's being hovered.
func (g *Game) updateCursor() {
	if g.panel.AnyButtonHovered() || g.picker.IsVisible() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

func (g *Game) handleKeys() {
	switch {
	case IsKeyJustPressed(ebiten.KeyEscape):
		g.clearSelection()
	case IsKeyJustPressed(ebiten.KeyF):
		g.FlipAction()
	case IsKeyJustPressed(ebiten.KeyN) && ebiten.IsKeyPressed(ebiten.KeyControl):
		g.NewGameAction()
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)

	screen.Fill(g.renderer.Theme().Background)
	g.renderer.DrawBoard(screen)

	if g.session.IsCheck(g.toMove) {
		g.renderer.DrawCheck(screen, g.session.KingSquare(g.toMove))
	}

	var dests []board.Square
	if g.showHints {
		dests = g.session.LegalMoves()
	}
	g.renderer.DrawHighlights(screen, g.session.Selection(), dests, g.last)

	skip := board.NoSquare
	if g.dragging {
		skip = g.dragFrom
	}
	g.renderer.DrawPieces(screen, g.session, skip, g.feedback.Animations())
	if g.dragging {
		mx, my := g.input.MousePosition()
		g.renderer.DrawDraggedPiece(screen, g.session.PieceAt(g.dragFrom), mx, my)
	}

	g.feedback.Draw(screen, g.renderer)
	g.panel.Draw(screen, g.scale)
	g.picker.Draw(screen, g.renderer)
}

// Layout returns the game's screen dimensions, scaled by the device factor
// for crisp rendering on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = max(ebiten.Monitor().DeviceScaleFactor(), 1.0)
	UIScale = g.scale
	width := BoardSize + g.panel.Width()
	return int(float64(width) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// handleBoardInput processes mouse interactions with the board.
func (g *Game) handleBoardInput() {
	if g.input.IsRightJustPressed() {
		g.clearSelection()
		return
	}

	mx, my := g.input.MousePosition()
	geom := g.renderer.Geometry()

	if g.input.IsLeftJustPressed() {
		sq, ok := geom.SquareAt(mx, my)
		if !ok {
			return
		}
		g.handlePress(sq)
		return
	}

	if g.dragging && g.input.IsLeftJustReleased() {
		g.dragging = false
		sq, ok := geom.SquareAt(mx, my)
		if !ok || sq == g.dragFrom {
			// A click without movement keeps the selection for a second click.
			return
		}
		g.tryMove(g.dragFrom, sq)
	}
}

// handlePress selects own pieces and moves the selection to legal destinations.
func (g *Game) handlePress(sq board.Square) {
	if g.outcome.IsOver() {
		g.feedback.OnInvalidMove(sq, board.NoSquare, ReasonGameOver)
		return
	}

	if color, ok := g.session.PieceColorAt(sq); ok && color == g.toMove {
		if _, ok := g.session.Select(sq); ok {
			g.dragging = true
			g.dragFrom = sq
		}
		return
	}

	from := g.session.Selection()
	if g.session.State() != game.Selected {
		if _, ok := g.session.PieceColorAt(sq); ok {
			g.feedback.OnInvalidMove(sq, board.NoSquare, ReasonNotYourTurn)
		}
		return
	}
	g.tryMove(from, sq)
}

// tryMove plays from-to if it is legal and explains the refusal otherwise.
func (g *Game) tryMove(from, to board.Square) {
	to = layout.CastleDrop(g.session.PieceAt(from), from, to, g.session.PieceAt(to))
	if !g.session.IsLegalDestination(to) {
		g.feedback.OnInvalidMove(from, to, g.invalidMoveReason(from, to))
		g.clearSelection()
		return
	}

	res, err := g.session.Apply(to)
	if err != nil {
		g.log.Warn("apply move", zap.Stringer("from", from), zap.Stringer("to", to), zap.Error(err))
		g.clearSelection()
		return
	}
	g.dragging = false

	if res.PromotionPending {
		g.picker.Show(to, g.toMove, g.promote, g.cancelPromotion)
		return
	}
	g.completeMove(res)
}

func (g *Game) promote(pt board.PieceType) {
	res, err := g.session.Promote(g.session.PendingPromotion(), pt)
	if err != nil {
		g.log.Warn("promote", zap.Stringer("piece", pt), zap.Error(err))
		g.cancelPromotion()
		return
	}
	g.completeMove(res)
}

func (g *Game) cancelPromotion() {
	g.session.CancelPromotion()
	g.clearSelection()
}

// invalidMoveReason explains why the selected piece cannot go to dst.
func (g *Game) invalidMoveReason(src, dst board.Square) InvalidMoveReason {
	piece := g.session.PieceAt(src)
	if piece.IsEmpty() {
		return ReasonUnknown
	}
	if color, ok := g.session.PieceColorAt(dst); ok && color == piece.Color() {
		return ReasonBlockedByOwnPiece
	}
	if g.session.Reaches(src, dst) {
		return ReasonWouldLeaveKingInCheck
	}
	return ReasonInvalidPieceMovement
}

// completeMove records a finished ply and hands the turn over.
func (g *Game) completeMove(res board.MoveResult) {
	g.last = board.Move{From: res.From, To: res.To, Promotion: res.Promotion}
	g.moves = append(g.moves, g.last)
	g.toMove = g.toMove.Other()
	g.clearSelection()

	g.feedback.OnMoveMade(res)
	g.checkGameEnd()
}

// checkGameEnd asks the session whether the side to move is finished.
func (g *Game) checkGameEnd() {
	out := g.session.Outcome(g.toMove)
	if !out.IsOver() {
		if g.session.IsCheck(g.toMove) {
			g.feedback.OnCheck()
		}
		return
	}

	g.outcome = out
	g.session.Stop()
	g.feedback.OnOutcome(out)
	g.log.Info("game over", zap.Stringer("outcome", out), zap.Int("plies", len(g.moves)))

	if g.store == nil {
		g.stats.GamesPlayed++
		return
	}
	stats, err := g.store.RecordGame(storage.ResultOf(out, len(g.moves), time.Since(g.started)))
	if err != nil {
		g.log.Warn("record game", zap.Error(err))
		g.feedback.Error("Could not save the result.")
		return
	}
	g.stats = stats
}

// clearSelection drops the selection and any drag in progress.
func (g *Game) clearSelection() {
	g.session.Deselect()
	g.dragging = false
	g.dragFrom = board.NoSquare
}

// NewGameAction resets the game to the starting position.
func (g *Game) NewGameAction() {
	g.picker.Hide()
	g.session.Reset()
	g.toMove = board.White
	g.moves = nil
	g.last = board.Move{From: board.NoSquare, To: board.NoSquare}
	g.outcome = game.Outcome{}
	g.started = time.Now()
	g.clearSelection()
	if g.panel != nil {
		g.panel.ResetScroll()
	}
}

// FlipAction turns the board around.
func (g *Game) FlipAction() {
	g.renderer.SetFlipped(!g.renderer.Flipped())
	g.savePreferences()
}

// ToggleSound switches sound effects on or off.
func (g *Game) ToggleSound() {
	audio := g.feedback.Audio()
	audio.SetEnabled(!audio.IsEnabled())
	g.savePreferences()
}

// ToggleHints switches the legal destination dots on or off.
func (g *Game) ToggleHints() {
	g.showHints = !g.showHints
	g.savePreferences()
}

// ToggleCoordinates switches the board labels on or off for this session.
func (g *Game) ToggleCoordinates() {
	g.renderer.SetCoordinates(!g.renderer.coordinates)
}

// ToMove returns the color whose turn it is.
func (g *Game) ToMove() board.Color {
	return g.toMove
}

// Moves returns the plies played so far.
func (g *Game) Moves() []board.Move {
	return g.moves
}

// Outcome returns the game verdict; Ongoing until the game ends.
func (g *Game) Outcome() game.Outcome {
	return g.outcome
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.session.IsCheck(g.toMove)
}

// PliesSinceCapture returns the fifty-move counter shown in the panel.
func (g *Game) PliesSinceCapture() int {
	return g.session.PliesSinceCapture()
}

// Stats returns the recorded results.
func (g *Game) Stats() *storage.GameStats {
	return g.stats
}

// SoundEnabled reports whether sound effects play.
func (g *Game) SoundEnabled() bool {
	return g.feedback.Audio().IsEnabled()
}

// HintsShown reports whether legal destinations are marked.
func (g *Game) HintsShown() bool {
	return g.showHints
}

// CoordinatesShown reports whether the board labels are drawn.
func (g *Game) CoordinatesShown() bool {
	return g.renderer.coordinates
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.session.Stop()
	if g.store != nil {
		g.store.Close()
	}
}
