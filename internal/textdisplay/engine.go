// Package textdisplay maintains the controller's three independently
// styled, independently animated text rows and rasterizes them into a
// panel-backed draw target on every refresh.
package textdisplay

import (
	"image"
	"image/color"
	"image/draw"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	tdfont "github.com/umx75/controller/internal/textdisplay/font"
)

// NumRows is the fixed number of text rows per display.
const NumRows = 3

// MaxTextLen caps each row's text, in characters. Longer writes keep the
// leading MaxTextLen characters.
const MaxTextLen = 64

// baselineOffset and rowPitch fix row i's text baseline at
// baselineOffset + rowPitch*i.
const (
	baselineOffset = 8
	rowPitch       = 9
)

type row struct {
	text      string
	style     tdfont.Style
	color     color.RGBA
	animation animation
}

// Engine owns the NumRows text rows: their content, style, and animation
// state.
type Engine struct {
	rows [NumRows]row
}

// NewEngine returns a display with all rows blank, default font, white
// text, and no animation.
func NewEngine() *Engine {
	e := &Engine{}
	for i := range e.rows {
		e.rows[i] = row{
			style: tdfont.Styles[tdfont.Default],
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		}
	}
	return e
}

func checkRow(r int) error {
	if r < 0 || r >= NumRows {
		return ErrRowOutOfRange
	}
	return nil
}

// RowText reports row r's current text, for diagnostics and testing.
func (e *Engine) RowText(r int) (string, error) {
	if err := checkRow(r); err != nil {
		return "", err
	}
	return e.rows[r].text, nil
}

// Write replaces row r's text.
func (e *Engine) Write(r int, text string) error {
	if err := checkRow(r); err != nil {
		return err
	}
	if utf8.RuneCountInString(text) > MaxTextLen {
		text = utf8Slice(text, 0, MaxTextLen)
	}
	row := &e.rows[r]
	row.text = text
	row.animation.recomputeSlideLength(utf8.RuneCountInString(text), row.style.GlyphWidth)
	return nil
}

// SetColor sets row r's text color.
func (e *Engine) SetColor(r int, red, green, blue uint8) error {
	if err := checkRow(r); err != nil {
		return err
	}
	e.rows[r].color = color.RGBA{R: red, G: green, B: blue, A: 255}
	return nil
}

// SetFont sets row r's font by wire ID.
func (e *Engine) SetFont(r int, fontID uint8) error {
	if err := checkRow(r); err != nil {
		return err
	}
	style, ok := tdfont.Get(tdfont.ID(fontID))
	if !ok {
		return ErrInvalidSetting
	}
	row := &e.rows[r]
	row.style = style
	row.animation.recomputeSlideLength(utf8.RuneCountInString(row.text), style.GlyphWidth)
	return nil
}

// SetAnimation sets row r's animation. kind is 0=None, 1=Blink, 2=Slide;
// tempo is the per-animation tick period; dir (Slide only) is 0=Left,
// 1=Right.
func (e *Engine) SetAnimation(r int, kind, tempo, dir uint8) error {
	if err := checkRow(r); err != nil {
		return err
	}
	row := &e.rows[r]
	switch kind {
	case 0:
		row.animation = animation{kind: AnimNone}
	case 1:
		row.animation = animation{kind: AnimBlink, period: int(tempo), visible: true}
	case 2:
		direction := SlideLeft
		if dir == 1 {
			direction = SlideRight
		}
		row.animation = animation{kind: AnimSlide, tempo: int(tempo), direction: direction}
		row.animation.recomputeSlideLength(utf8.RuneCountInString(row.text), row.style.GlyphWidth)
		row.animation.resetSlidePosition()
	default:
		return ErrInvalidSetting
	}
	return nil
}

// Tick advances every row's animation by one step.
func (e *Engine) Tick() {
	for i := range e.rows {
		e.rows[i].animation.tick()
	}
}

// Render rasterizes all rows into target. Every row's band is erased
// before any text is drawn: adjacent bands overlap when a face is taller
// than the row pitch, and erasing interleaved with drawing would wipe a
// neighbor's fresh glyphs.
func (e *Engine) Render(target draw.Image) {
	panelWidth := target.Bounds().Dx()
	for i := range e.rows {
		y := baselineOffset + rowPitch*i
		m := e.rows[i].style.Face.Metrics()
		band := image.Rect(0, y-m.Ascent.Ceil(), panelWidth, y+m.Descent.Ceil())
		draw.Draw(target, band, image.Black, image.Point{}, draw.Src)
	}
	for i := range e.rows {
		r := &e.rows[i]
		y := baselineOffset + rowPitch*i
		switch r.animation.kind {
		case AnimBlink:
			if r.animation.visible {
				drawText(target, 0, y, r.text, r.style, r.color)
			}
		case AnimSlide:
			renderSlide(target, r, panelWidth, y)
		default:
			drawText(target, 0, y, r.text, r.style, r.color)
		}
	}
}

func renderSlide(target draw.Image, r *row, panelWidth, y int) {
	gw := r.style.GlyphWidth
	if gw <= 0 {
		gw = 1
	}
	x := r.animation.xOffset

	if x > 0 {
		fit := (panelWidth - x) / gw
		if fit < 0 {
			fit = 0
		}
		sub := utf8Slice(r.text, 0, fit)
		drawText(target, x, y, " "+sub, r.style, r.color)
		return
	}

	skip := (-x) / gw
	total := utf8.RuneCountInString(r.text)
	remaining := total - skip
	if remaining < 0 {
		remaining = 0
	}
	fit := panelWidth/gw + 1
	if fit > remaining {
		fit = remaining
	}
	sub := utf8Slice(r.text, skip, skip+fit)
	offset := ((x % gw) + gw) % gw
	drawText(target, offset, y, sub, r.style, r.color)
}

// utf8Slice returns the substring of s spanning chars [start, end), clamped
// to the string's actual rune count.
func utf8Slice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	runes := []rune(s)
	if start > len(runes) {
		start = len(runes)
	}
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}

func drawText(target draw.Image, x, y int, text string, style tdfont.Style, col color.Color) {
	if text == "" {
		return
	}
	drawer := &font.Drawer{
		Dst:  target,
		Src:  image.NewUniform(col),
		Face: style.Face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}
