package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Panel dimensions
const (
	PanelPadding    = 20
	SectionSpacing  = 28
	ButtonHeight    = 40
	CollapsedWidth  = 20
	CollapseButtonW = 16
	CollapseButtonH = 48
	SectionLabelH   = 20
	StatusBarH      = 70
	moveRowHeight   = 22
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	sectionBg       = color.RGBA{48, 52, 58, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusCheck     = color.RGBA{255, 120, 100, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	hovered    bool
	pressed    bool
}

func (b *Button) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// Panel is the side panel with controls, move history and the game status.
type Panel struct {
	game      *Game
	collapsed bool
	scale     float64

	collapseBtn *Button
	newGameBtn  *Button
	flipBtn     *Button
	toggles     []*Checkbox

	scrollY    int
	maxScrollY int
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g, scale: 1.0}
	p.createButtons()
	return p
}

// createButtons lays out the panel controls for the current collapse state.
func (p *Panel) createButtons() {
	tabY := (ScreenHeight - CollapseButtonH) / 2
	tabX := BoardSize
	if p.collapsed {
		tabX = BoardSize + 2
	}
	p.collapseBtn = &Button{
		X: tabX, Y: tabY,
		W: CollapseButtonW, H: CollapseButtonH,
		OnClick: p.toggleCollapse,
	}

	contentX := BoardSize + PanelPadding
	contentW := PanelWidth - PanelPadding*2

	newGameY := PanelPadding + 8
	p.newGameBtn = &Button{
		X: contentX, Y: newGameY,
		W: contentW, H: ButtonHeight,
		Label:   "New Game",
		OnClick: p.game.NewGameAction,
	}

	flipY := newGameY + ButtonHeight + 8
	p.flipBtn = &Button{
		X: contentX, Y: flipY,
		W: contentW, H: ButtonHeight - 6,
		Label:   "Flip Board",
		OnClick: p.game.FlipAction,
	}

	toggleY := flipY + ButtonHeight - 6 + SectionSpacing - 8 + SectionLabelH
	p.toggles = []*Checkbox{
		NewCheckbox(contentX, toggleY, "Sound", p.game.SoundEnabled(),
			func(bool) { p.game.ToggleSound() }),
		NewCheckbox(contentX, toggleY+checkboxHeight+4, "Move hints", p.game.HintsShown(),
			func(bool) { p.game.ToggleHints() }),
		NewCheckbox(contentX, toggleY+2*(checkboxHeight+4), "Coordinates", p.game.CoordinatesShown(),
			func(bool) { p.game.ToggleCoordinates() }),
	}
}

// Width returns the on-screen width of the panel.
func (p *Panel) Width() int {
	if p.collapsed {
		return CollapsedWidth
	}
	return PanelWidth
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	p.collapseBtn.hovered = p.collapseBtn.contains(mx, my)
	p.collapseBtn.pressed = input.IsLeftPressed() && p.collapseBtn.hovered
	if input.IsLeftJustPressed() && p.collapseBtn.hovered {
		p.collapseBtn.OnClick()
		return true
	}

	if p.collapsed {
		return false
	}

	// Scroll wheel over the move history
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		if mx >= BoardSize && my >= p.historyStartY() && my < ScreenHeight-StatusBarH {
			p.scrollY = min(max(p.scrollY-int(wheelY*30), 0), p.maxScrollY)
		}
	}

	for _, btn := range []*Button{p.newGameBtn, p.flipBtn} {
		btn.hovered = btn.contains(mx, my)
		btn.pressed = input.IsLeftPressed() && btn.hovered
		if input.IsLeftJustPressed() && btn.hovered {
			btn.OnClick()
			return true
		}
	}

	for _, cb := range p.toggles {
		if cb.Update(input) {
			return true
		}
	}

	return mx >= BoardSize && input.IsLeftJustPressed()
}

// AnyButtonHovered returns true if any control in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	if p.collapseBtn.hovered {
		return true
	}
	if p.collapsed {
		return false
	}
	if p.newGameBtn.hovered || p.flipBtn.hovered {
		return true
	}
	for _, cb := range p.toggles {
		if cb.Hovered() {
			return true
		}
	}
	return false
}

// ResetScroll scrolls the move history back to the top.
func (p *Panel) ResetScroll() {
	p.scrollY = 0
	p.maxScrollY = 0
}

// s scales a logical coordinate for rendering.
func (p *Panel) s(v int) float32 {
	return float32(float64(v) * p.scale)
}

func (p *Panel) fillRect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	vector.DrawFilledRect(screen, p.s(x), p.s(y), p.s(w), p.s(h), c, false)
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image, scale float64) {
	p.scale = scale

	if p.collapsed {
		p.fillRect(screen, BoardSize, 0, CollapsedWidth, ScreenHeight, panelBg)
		p.drawCollapseButton(screen, true)
		return
	}

	p.fillRect(screen, BoardSize, 0, PanelWidth, ScreenHeight, panelBg)
	p.drawCollapseButton(screen, false)

	p.drawPrimaryButton(screen, p.newGameBtn)
	p.drawSecondaryButton(screen, p.flipBtn)

	p.drawSectionLabel(screen, "Options", BoardSize+PanelPadding, p.toggles[0].Y-SectionLabelH)
	for _, cb := range p.toggles {
		cb.Draw(screen, scale)
	}

	historyY := p.historyStartY()
	p.drawSectionLabel(screen, "Moves", BoardSize+PanelPadding, historyY)
	p.drawMoveHistory(screen, historyY+SectionLabelH+4)

	p.drawStatusBar(screen)
}

func (p *Panel) historyStartY() int {
	last := p.toggles[len(p.toggles)-1]
	return last.Y + checkboxHeight + SectionSpacing - 4
}

func (p *Panel) drawCollapseButton(screen *ebiten.Image, expand bool) {
	btn := p.collapseBtn

	bgColor := panelBg
	if btn.hovered {
		bgColor = sectionBg
	}
	p.fillRect(screen, btn.X, btn.Y, btn.W, btn.H, bgColor)

	arrow := "‹"
	if expand {
		arrow = "›"
	}
	textC := textMuted
	if btn.hovered {
		textC = textPrimary
	}
	p.drawTextCentered(screen, arrow, btn.X+btn.W/2, btn.Y+btn.H/2, textC)
}

func (p *Panel) drawPrimaryButton(screen *ebiten.Image, btn *Button) {
	bgColor := accentColor
	if btn.pressed {
		bgColor = accentPressed
	} else if btn.hovered {
		bgColor = accentHover
	}
	p.fillRect(screen, btn.X, btn.Y, btn.W, btn.H, bgColor)

	borderC := color.RGBA{56, 155, 100, 255}
	if btn.hovered {
		borderC = color.RGBA{116, 215, 160, 255}
	}
	vector.StrokeRect(screen, p.s(btn.X), p.s(btn.Y), p.s(btn.W), p.s(btn.H), p.s(1), borderC, false)

	p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textPrimary)
}

func (p *Panel) drawSecondaryButton(screen *ebiten.Image, btn *Button) {
	bgColor := buttonBg
	if btn.pressed {
		bgColor = buttonPressedBg
	} else if btn.hovered {
		bgColor = buttonHoverBg
	}
	p.fillRect(screen, btn.X, btn.Y, btn.W, btn.H, bgColor)

	borderC := buttonBorder
	if btn.hovered {
		borderC = accentColor
	}
	vector.StrokeRect(screen, p.s(btn.X), p.s(btn.Y), p.s(btn.W), p.s(btn.H), p.s(1), borderC, false)

	p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textSecondary)
}

func (p *Panel) drawSectionLabel(screen *ebiten.Image, label string, x, y int) {
	p.drawText(screen, label, x, y, textMuted)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	moves := p.game.Moves()
	if len(moves) == 0 {
		p.drawText(screen, "No moves yet", BoardSize+PanelPadding, startY+5, textMuted)
		return
	}

	x := BoardSize + PanelPadding
	maxY := ScreenHeight - StatusBarH - 24
	visibleHeight := maxY - startY

	totalRows := (len(moves) + 1) / 2
	contentHeight := totalRows * moveRowHeight
	p.maxScrollY = max(contentHeight-visibleHeight, 0)
	p.scrollY = min(p.scrollY, p.maxScrollY)

	startRow := p.scrollY / moveRowHeight
	y := startY - (p.scrollY % moveRowHeight)

	for i := startRow * 2; i < len(moves); i += 2 {
		if y > maxY {
			break
		}
		if y < startY {
			y += moveRowHeight
			continue
		}

		if (i/2)%2 == 1 {
			p.fillRect(screen, BoardSize+PanelPadding-4, y-2, PanelWidth-PanelPadding*2+8, moveRowHeight, moveRowAlt)
		}
		p.drawText(screen, fmt.Sprintf("%d.", i/2+1), x, y, textMuted)
		p.drawText(screen, moves[i].String(), x+30, y, textPrimary)
		if i+1 < len(moves) {
			p.drawText(screen, moves[i+1].String(), x+100, y, textPrimary)
		}
		y += moveRowHeight
	}

	if p.maxScrollY > 0 {
		scrollPct := float32(p.scrollY) / float32(p.maxScrollY)
		indicatorH := max(float32(visibleHeight)*float32(visibleHeight)/float32(contentHeight), 20)
		indicatorY := float32(startY) + scrollPct*(float32(visibleHeight)-indicatorH)
		indicatorX := float32(BoardSize + PanelWidth - 8)
		sc := float32(p.scale)
		vector.DrawFilledRect(screen, indicatorX*sc, indicatorY*sc, 4*sc, indicatorH*sc, textMuted, false)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	statusY := ScreenHeight - StatusBarH
	x := BoardSize + PanelPadding

	DrawDivider(screen, x, statusY-10, PanelWidth-PanelPadding*2, p.scale)

	if st := p.game.Stats(); st != nil {
		record := fmt.Sprintf("Games %d  W %d  B %d  D %d", st.GamesPlayed, st.WhiteWins, st.BlackWins, st.Draws)
		p.drawText(screen, record, x, statusY, textSecondary)
	}

	var statusText string
	statusColor := textPrimary
	switch out := p.game.Outcome(); {
	case out.IsOver():
		statusText = out.String()
		statusColor = statusGameOver
	case p.game.InCheck():
		statusText = p.game.ToMove().String() + " to move, in check"
		statusColor = statusCheck
	default:
		statusText = p.game.ToMove().String() + " to move"
	}
	p.drawText(screen, statusText, x, statusY+22, statusColor)

	if n := p.game.PliesSinceCapture(); n > 0 {
		p.drawText(screen, fmt.Sprintf("%d plies since capture", n), x, statusY+44, textMuted)
	}
}

func (p *Panel) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	face := scaledFace(GetRegularFace(), p.scale)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.s(x)), float64(p.s(y)))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	face := scaledFace(GetRegularFace(), p.scale)
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.s(centerX))-w/2, float64(p.s(centerY))-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// Collapsed returns whether the panel is collapsed.
func (p *Panel) Collapsed() bool {
	return p.collapsed
}

// toggleCollapse toggles the panel collapsed state and resizes the window.
func (p *Panel) toggleCollapse() {
	p.collapsed = !p.collapsed
	p.createButtons()
	ebiten.SetWindowSize(BoardSize+p.Width(), ScreenHeight)
}
