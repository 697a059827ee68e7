package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/ui/layout"
)

var (
	pickerShade   = color.RGBA{0, 0, 0, 120}
	pickerBg      = color.RGBA{240, 240, 245, 255}
	pickerHoverBg = color.RGBA{200, 230, 210, 255}
)

// PromotionPicker is the column of pieces shown over the promotion square
// while the session waits for a choice.
type PromotionPicker struct {
	visible  bool
	dest     board.Square
	color    board.Color
	hovered  board.PieceType
	onChoose func(board.PieceType)
	onCancel func()
}

// NewPromotionPicker creates a hidden picker.
func NewPromotionPicker() *PromotionPicker {
	return &PromotionPicker{dest: board.NoSquare}
}

// Show opens the picker on dest. Exactly one of onChoose or onCancel runs
// when the player decides.
func (pp *PromotionPicker) Show(dest board.Square, c board.Color, onChoose func(board.PieceType), onCancel func()) {
	pp.visible = true
	pp.dest = dest
	pp.color = c
	pp.hovered = board.NoPieceType
	pp.onChoose = onChoose
	pp.onCancel = onCancel
}

// Hide closes the picker without a decision.
func (pp *PromotionPicker) Hide() {
	pp.visible = false
	pp.dest = board.NoSquare
	pp.onChoose = nil
	pp.onCancel = nil
}

// IsVisible reports whether the picker is open.
func (pp *PromotionPicker) IsVisible() bool {
	return pp.visible
}

// Update picks on a click over a choice and cancels on Escape, right click
// or a click anywhere else.
func (pp *PromotionPicker) Update(input *InputHandler, geom layout.Board) {
	if !pp.visible {
		return
	}
	mx, my := input.MousePosition()
	pt, ok := geom.PickerChoice(pp.dest, mx, my)
	pp.hovered = board.NoPieceType
	if ok {
		pp.hovered = pt
	}

	switch {
	case IsKeyJustPressed(ebiten.KeyEscape), input.IsRightJustPressed():
		pp.decide(board.NoPieceType)
	case input.IsLeftJustPressed():
		pp.decide(pp.hovered)
	}
}

func (pp *PromotionPicker) decide(pt board.PieceType) {
	choose, cancel := pp.onChoose, pp.onCancel
	pp.Hide()
	if pt == board.NoPieceType {
		if cancel != nil {
			cancel()
		}
		return
	}
	if choose != nil {
		choose(pt)
	}
}

// Draw shades the board and draws the choices over the promotion square.
func (pp *PromotionPicker) Draw(screen *ebiten.Image, r *Renderer) {
	if !pp.visible {
		return
	}
	geom := r.Geometry()
	vector.DrawFilledRect(screen, 0, 0, r.s(geom.Size), r.s(geom.Size), pickerShade, false)

	size := r.s(geom.SquareSize())
	for i, sq := range geom.PickerSquares(pp.dest) {
		pt := board.PromotionPieces[i]
		x, y := geom.Origin(sq)
		bg := pickerBg
		if pt == pp.hovered {
			bg = pickerHoverBg
		}
		vector.DrawFilledRect(screen, r.s(x), r.s(y), size, size, bg, false)
		vector.StrokeRect(screen, r.s(x), r.s(y), size, size, r.s(1), buttonBorder, false)
		r.Sprites().DrawTypeAt(screen, pt, pp.color, int(r.s(x)), int(r.s(y)))
	}
}
