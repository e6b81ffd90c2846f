// Package font supplies the bitmap text faces selectable via SetFont. The
// glyph artwork itself is an immutable pixel-grid asset outside this
// system's scope; what matters operationally is that each font ID carries
// its own advance width, since that width feeds directly into slide-length
// and layout math.
package font

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ID is the wire value selecting a font in SetFont.
type ID uint8

const (
	Default ID = 0
	ProFont ID = 1
	Ibm     ID = 2
)

// Style bundles a renderable face with the glyph width used for slide and
// layout math.
type Style struct {
	ID         ID
	Face       font.Face
	GlyphWidth int
}

// fixedWidthFace re-advances an underlying face's glyphs at a fixed cell
// width, so each font ID carries its own advance over the same base
// artwork rather than duplicating full glyph tables.
type fixedWidthFace struct {
	font.Face
	width fixed.Int26_6
}

func (f fixedWidthFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	_, ok := f.Face.GlyphAdvance(r)
	return f.width, ok
}

func (f fixedWidthFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	dr, mask, maskp, _, ok := f.Face.Glyph(dot, r)
	return dr, mask, maskp, f.width, ok
}

// Styles maps every known font ID to its renderable style.
var Styles = map[ID]Style{
	Default: {ID: Default, Face: fixedWidthFace{basicfont.Face7x13, fixed.I(6)}, GlyphWidth: 6},
	ProFont: {ID: ProFont, Face: fixedWidthFace{basicfont.Face7x13, fixed.I(5)}, GlyphWidth: 5},
	Ibm:     {ID: Ibm, Face: fixedWidthFace{basicfont.Face7x13, fixed.I(8)}, GlyphWidth: 8},
}

// Get looks up a style by wire ID.
func Get(id ID) (Style, bool) {
	s, ok := Styles[id]
	return s, ok
}
