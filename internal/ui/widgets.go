package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget colors (uses colors from panel.go: accentColor, textPrimary, textSecondary)
var (
	widgetBg      = color.RGBA{48, 52, 58, 255}
	widgetBorder  = color.RGBA{68, 72, 78, 255}
	widgetHoverBg = color.RGBA{65, 70, 78, 255}
	checkboxCheck = color.RGBA{76, 175, 120, 255}
)

const (
	checkboxSize   = 20
	checkboxWidth  = 200
	checkboxHeight = 24
)

// Checkbox is a toggleable checkbox widget. OnChange runs after every toggle.
type Checkbox struct {
	X, Y     int
	Label    string
	Checked  bool
	OnChange func(checked bool)
	hovered  bool
}

// NewCheckbox creates a new checkbox.
func NewCheckbox(x, y int, label string, checked bool, onChange func(bool)) *Checkbox {
	return &Checkbox{
		X:        x,
		Y:        y,
		Label:    label,
		Checked:  checked,
		OnChange: onChange,
	}
}

// Update handles checkbox input. Returns true if the checkbox toggled.
func (cb *Checkbox) Update(input *InputHandler) bool {
	cb.hovered = input.IsInBounds(cb.X, cb.Y, checkboxWidth, checkboxHeight)

	if input.IsLeftJustPressed() && cb.hovered {
		cb.Checked = !cb.Checked
		if cb.OnChange != nil {
			cb.OnChange(cb.Checked)
		}
		return true
	}
	return false
}

// Hovered reports whether the mouse is over the checkbox.
func (cb *Checkbox) Hovered() bool {
	return cb.hovered
}

// Draw renders the checkbox at the given HiDPI scale.
func (cb *Checkbox) Draw(screen *ebiten.Image, scale float64) {
	face := scaledFace(GetRegularFace(), scale)
	if face == nil {
		return
	}
	sc := func(v float32) float32 { return v * float32(scale) }

	boxX := sc(float32(cb.X))
	boxY := sc(float32(cb.Y))
	boxSize := sc(checkboxSize)

	bgColor := widgetBg
	if cb.hovered {
		bgColor = widgetHoverBg
	}
	vector.DrawFilledRect(screen, boxX, boxY, boxSize, boxSize, bgColor, false)

	// Border - accent on hover
	borderC := widgetBorder
	if cb.hovered {
		borderC = accentColor
	} else if cb.Checked {
		borderC = checkboxCheck
	}
	vector.StrokeRect(screen, boxX, boxY, boxSize, boxSize, sc(2), borderC, false)

	if cb.Checked {
		vector.StrokeLine(screen, boxX+sc(4), boxY+sc(10), boxX+sc(8), boxY+sc(14), sc(2), checkboxCheck, false)
		vector.StrokeLine(screen, boxX+sc(8), boxY+sc(14), boxX+sc(16), boxY+sc(6), sc(2), checkboxCheck, false)
	}

	op := &text.DrawOptions{}
	_, h := MeasureText(cb.Label, face)
	op.GeoM.Translate(float64(cb.X+30)*scale, float64(cb.Y+10)*scale-h/2)
	textColor := textSecondary
	if cb.Checked || cb.hovered {
		textColor = textPrimary
	}
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, cb.Label, face, op)
}

// DrawDivider draws a horizontal divider line.
func DrawDivider(screen *ebiten.Image, x, y, w int, scale float64) {
	s := float32(scale)
	vector.DrawFilledRect(screen, float32(x)*s, float32(y)*s, float32(w)*s, s, dividerColor, false)
}
