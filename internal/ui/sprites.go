// Package ui implements the chess game UI using Ebitengine.
package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/obslog"
)

// pieceShapes holds the SVG body of each piece on a 45x45 canvas. The
// {{fill}} and {{line}} placeholders are replaced per color.
var pieceShapes = map[board.PieceType]string{
	board.Pawn: `<path d="M22.5 9c-2.2 0-4 1.8-4 4 0 .9.3 1.7.8 2.4-1.9 1.1-3.3 3.2-3.3 5.6 0 2 .9 3.8 2.4 5-3 1.1-7.4 5.6-7.4 13.5h23c0-7.9-4.4-12.4-7.4-13.5 1.5-1.2 2.4-3 2.4-5 0-2.4-1.3-4.5-3.3-5.6.5-.7.8-1.5.8-2.4 0-2.2-1.8-4-4-4z"
		fill="{{fill}}" stroke="{{line}}" stroke-width="1.5"/>`,
	board.Knight: `<path d="M22 10c10.5 1 16.5 8 16 29H15c0-9 10-6.5 8-21" fill="{{fill}}" stroke="{{line}}" stroke-width="1.5"/>
		<path d="M24 18c.4 2.9-5.5 7.4-8 9-3 2-2.8 4.3-5 4-1-.9 1.4-3 0-3-1 0 .2 1.2-1 2-1 0-4 1-4-4 0-2 6-12 6-12s1.9-1.9 2-3.5c-.7-1-.5-2-.5-3 1-1 3 2.5 3 2.5h2s.8-2 2.5-3c1 0 1 3 1 3"
		fill="{{fill}}" stroke="{{line}}" stroke-width="1.5"/>
		<circle cx="14" cy="19" r="1" fill="{{line}}"/>`,
	board.Bishop: `<path d="M9 36c3.4-1 10.1.4 13.5-2 3.4 2.4 10.1 1 13.5 2 0 0 1.6.5 3 2-.7 1-1.6 1-3 .5-3.4-1-10.1.5-13.5-1-3.4 1.5-10.1 0-13.5 1-1.4.5-2.3.5-3-.5 1.4-2 3-2 3-2z"
		fill="{{fill}}" stroke="{{line}}" stroke-width="1.5"/>
		<path d="M15 32c2.5 2.5 12.5 2.5 15 0 .5-1.5 0-2 0-2 0-2.5-2.5-4-2.5-4 5.5-1.5 6-11.5-5-15.5-11 4-10.5 14-5 15.5 0 0-2.5 1.5-2.5 4 0 0-.5.5 0 2z"
		fill="{{fill}}" stroke="{{line}}" stroke-width="1.5"/>
		<circle cx="22.5" cy="8" r="2.5" fill="{{fill}}" stroke="{{line}}" stroke-width="1.5"/>`,
	board.Rook: `<path d="M9 39h27v-3H9v3zM12 36v-4h21v4H12zM11 14V9h4v2h5V9h5v2h5V9h4v5"
		fill="{{fill}}" stroke="{{line}}" stroke-width="1.5"/>
		<path d="M34 14l-3 3H14l-3-3M31 17v12.5H14V17M31 29.5l1.5 2.5h-20l1.5-2.5"
		fill="{{fill}}" stroke="{{line}}" stroke-width="1.5"/>`,
	board.Queen: `<path d="M9 26c8.5-1.5 21-1.5 27 0l2.5-12.5L31 25l-.3-14.1-5.2 13.6-3-14.5-3 14.5-5.2-13.6L14 25 6.5 13.5 9 26z"
		fill="{{fill}}" stroke="{{line}}" stroke-width="1.5"/>
		<path d="M9 26c0 2 1.5 2 2.5 4 1 1.5 1 1 .5 3.5-1.5 1-1.5 2.5-1.5 2.5-1.5 1.5.5 2.5.5 2.5 6.5 1 16.5 1 23 0 0 0 1.5-1 0-2.5 0 0 .5-1.5-1-2.5-.5-2.5-.5-2 .5-3.5 1-2 2.5-2 2.5-4-8.5-1.5-18.5-1.5-27 0z"
		fill="{{fill}}" stroke="{{line}}" stroke-width="1.5"/>
		<circle cx="6" cy="12" r="2" fill="{{fill}}" stroke="{{line}}"/>
		<circle cx="14" cy="9" r="2" fill="{{fill}}" stroke="{{line}}"/>
		<circle cx="22.5" cy="8" r="2" fill="{{fill}}" stroke="{{line}}"/>
		<circle cx="31" cy="9" r="2" fill="{{fill}}" stroke="{{line}}"/>
		<circle cx="39" cy="12" r="2" fill="{{fill}}" stroke="{{line}}"/>`,
	board.King: `<path d="M22.5 11.6V6M20 8h5" fill="none" stroke="{{line}}" stroke-width="1.5"/>
		<path d="M22.5 25s4.5-7.5 3-10.5c0 0-1-2.5-3-2.5s-3 2.5-3 2.5c-1.5 3 3 10.5 3 10.5"
		fill="{{fill}}" stroke="{{line}}" stroke-width="1.5"/>
		<path d="M11.5 37c5.5 3.5 15.5 3.5 21 0v-7s9-4.5 6-10.5c-4-6.5-13.5-3.5-16 4V27v-3.5c-3.5-7.5-13-10.5-16-4-3 6 5 10 5 10V37z"
		fill="{{fill}}" stroke="{{line}}" stroke-width="1.5"/>`,
}

var pieceColors = [2]struct{ fill, line string }{
	board.White: {"#ffffff", "#000000"},
	board.Black: {"#1e1e1e", "#000000"},
}

// pieceSVG returns the complete SVG document for a piece.
func pieceSVG(pt board.PieceType, c board.Color) string {
	body := strings.NewReplacer(
		"{{fill}}", pieceColors[c].fill,
		"{{line}}", pieceColors[c].line,
	).Replace(pieceShapes[pt])
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">%s</svg>`, body)
}

// SpriteManager manages piece sprites.
type SpriteManager struct {
	pieces      [2][board.King + 1]*ebiten.Image
	size        int     // Display size (e.g., 80)
	renderScale float64 // Render at higher resolution for quality
	scale       float64 // HiDPI factor applied on draw
}

// NewSpriteManager creates a new sprite manager with pieces of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		size:        size,
		renderScale: 3.0,
		scale:       1.0,
	}
	sm.loadPieces()
	return sm
}

// loadPieces rasterizes every piece SVG once.
func (sm *SpriteManager) loadPieces() {
	renderSize := int(float64(sm.size) * sm.renderScale)
	log := obslog.L().Named("ui")

	for _, c := range []board.Color{board.White, board.Black} {
		for pt := board.Pawn; pt <= board.King; pt++ {
			icon, err := oksvg.ReadIconStream(strings.NewReader(pieceSVG(pt, c)))
			if err != nil {
				log.Error("parse piece svg", zap.Stringer("piece", pt), zap.Stringer("color", c), zap.Error(err))
				continue
			}
			icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

			rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
			scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
			raster := rasterx.NewDasher(renderSize, renderSize, scanner)
			icon.Draw(raster, 1.0)

			sm.pieces[c][pt] = ebiten.NewImageFromImage(rgba)
		}
	}
}

// SetScale sets the HiDPI factor.
func (sm *SpriteManager) SetScale(scale float64) {
	sm.scale = scale
}

// Get returns the sprite for a piece type and color.
func (sm *SpriteManager) Get(pt board.PieceType, c board.Color) *ebiten.Image {
	if pt == board.NoPieceType || pt > board.King {
		return nil
	}
	return sm.pieces[c][pt]
}

// DrawPieceAt draws a piece at the given pixel coordinates (already scaled).
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y int) {
	if p.IsEmpty() {
		return
	}
	sm.DrawTypeAt(screen, p.Type(), p.Color(), x, y)
}

// DrawTypeAt draws a sprite by type and color, used by the promotion picker.
func (sm *SpriteManager) DrawTypeAt(screen *ebiten.Image, pt board.PieceType, c board.Color, x, y int) {
	sprite := sm.Get(pt, c)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := sm.scale / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
