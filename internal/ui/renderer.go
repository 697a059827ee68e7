package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/ui/layout"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180},
		LegalMoveColor: color.RGBA{130, 151, 105, 200},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
	}
}

// Renderer handles all drawing operations on the board.
type Renderer struct {
	sprites     *SpriteManager
	theme       *Theme
	geom        layout.Board
	coordinates bool
	scale       float64 // HiDPI scale factor
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize int) *Renderer {
	geom := layout.Board{Size: boardSize}
	return &Renderer{
		sprites: NewSpriteManager(geom.SquareSize()),
		theme:   DefaultTheme(),
		geom:    geom,
		scale:   1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
	r.sprites.SetScale(scale)
}

// SetFlipped puts Black at the bottom when flipped is true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.geom.Flipped = flipped
}

// Flipped reports the board orientation.
func (r *Renderer) Flipped() bool {
	return r.geom.Flipped
}

// SetCoordinates toggles the file and rank labels.
func (r *Renderer) SetCoordinates(show bool) {
	r.coordinates = show
}

// Geometry returns the square/pixel mapping in logical coordinates.
func (r *Renderer) Geometry() layout.Board {
	return r.geom
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the chess board squares.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	size := r.s(r.geom.SquareSize())
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.NewSquare(row, col)
			c := r.theme.DarkSquare
			if layout.IsLight(sq) {
				c = r.theme.LightSquare
			}
			x, y := r.geom.Origin(sq)
			vector.DrawFilledRect(screen, r.s(x), r.s(y), size, size, c, false)
		}
	}

	if r.coordinates {
		r.drawCoordinates(screen)
	}
}

// drawCoordinates labels files along the bottom edge and ranks along the left edge.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetCoordFace(r.scale)
	if face == nil {
		return
	}
	sqSize := r.geom.SquareSize()
	for i := 0; i < board.Size; i++ {
		bottom, _ := r.geom.SquareAt(i*sqSize, (board.Size-1)*sqSize)
		left, _ := r.geom.SquareAt(0, i*sqSize)
		fileColor, rankColor := r.labelColor(bottom), r.labelColor(left)

		op := &text.DrawOptions{}
		w, h := MeasureText("a", face)
		op.GeoM.Translate(float64(r.s((i+1)*sqSize-3))-w, float64(r.s(board.Size*sqSize-2))-h)
		op.ColorScale.ScaleWithColor(fileColor)
		text.Draw(screen, r.geom.FileLabel(i), face, op)

		op = &text.DrawOptions{}
		op.GeoM.Translate(float64(r.s(3)), float64(r.s(i*sqSize+2)))
		op.ColorScale.ScaleWithColor(rankColor)
		text.Draw(screen, r.geom.RankLabel(i), face, op)
	}
}

// labelColor contrasts with the square the label sits on.
func (r *Renderer) labelColor(sq board.Square) color.RGBA {
	if layout.IsLight(sq) {
		return r.theme.DarkSquare
	}
	return r.theme.LightSquare
}

// DrawHighlights draws the last move, the selection and its legal destinations.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, dests []board.Square, last board.Move) {
	if last.From.IsValid() {
		r.highlightSquare(screen, last.From, r.theme.LastMoveColor)
		r.highlightSquare(screen, last.To, r.theme.LastMoveColor)
	}
	if selected.IsValid() {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}
	for _, sq := range dests {
		r.drawLegalMoveIndicator(screen, sq)
	}
}

// DrawCheck highlights the king's square if in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	r.highlightSquare(screen, kingSq, r.theme.CheckColor)
}

func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	x, y := r.geom.Origin(sq)
	size := r.s(r.geom.SquareSize())
	vector.DrawFilledRect(screen, r.s(x), r.s(y), size, size, c, false)
}

// drawLegalMoveIndicator draws a dot on a legal destination.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := r.geom.Origin(sq)
	size := r.s(r.geom.SquareSize())
	cx := r.s(x) + size/2
	cy := r.s(y) + size/2
	vector.DrawFilledCircle(screen, cx, cy, size*0.15, r.theme.LegalMoveColor, true)
}

// DrawPieces draws every piece of the session, skipping the dragged one and
// applying shake offsets from anims.
func (r *Renderer) DrawPieces(screen *ebiten.Image, s *game.Session, skip board.Square, anims *AnimationManager) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.NewSquare(row, col)
			if sq == skip {
				continue
			}
			piece := s.PieceAt(sq)
			if piece.IsEmpty() {
				continue
			}

			x, y := r.geom.Origin(sq)
			if anims != nil {
				dx, dy := anims.GetShakeOffset(sq)
				x += int(dx)
				y += int(dy)
			}
			r.sprites.DrawPieceAt(screen, piece, int(r.s(x)), int(r.s(y)))
		}
	}
}

// DrawDraggedPiece draws the piece being dragged centered on the cursor.
// mouseX, mouseY are in logical coordinates.
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, piece board.Piece, mouseX, mouseY int) {
	half := r.geom.SquareSize() / 2
	r.sprites.DrawPieceAt(screen, piece, int(r.s(mouseX-half)), int(r.s(mouseY-half)))
}

// BoardSize returns the board size in logical pixels.
func (r *Renderer) BoardSize() int {
	return r.geom.Size
}

// SquareSize returns the size of one square in logical pixels.
func (r *Renderer) SquareSize() int {
	return r.geom.SquareSize()
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}
