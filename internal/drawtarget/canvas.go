// Package drawtarget adapts the panel driver's pixel buffer into a
// standard image.Image/draw.Image, so both the text-display engine and the
// primitive rasterizer (lines, rectangles, triangles, circles) can target
// it through one generic interface instead of bespoke per-caller paths.
package drawtarget

import (
	"image"
	"image/color"

	"github.com/umx75/controller/internal/panel"
)

// Canvas implements draw.Image over a panel.Driver. The panel register is
// write-only, so At always reports black rather than reflecting prior
// writes; this only affects consumers (like anti-aliased stroke blending)
// that read back existing pixels before compositing.
type Canvas struct {
	driver *panel.Driver
	bounds image.Rectangle
}

// NewCanvas wraps driver's buffer as a draw.Image sized to its reported
// dimensions.
func NewCanvas(driver *panel.Driver) *Canvas {
	w, h := driver.Size()
	return &Canvas{driver: driver, bounds: image.Rect(0, 0, w, h)}
}

func (c *Canvas) ColorModel() color.Model { return color.RGBAModel }

func (c *Canvas) Bounds() image.Rectangle { return c.bounds }

func (c *Canvas) At(x, y int) color.Color { return color.Black }

// Set gamma-corrects and stores the pixel via the underlying driver.
// Out-of-range coordinates are silently discarded by the driver.
func (c *Canvas) Set(x, y int, col color.Color) {
	r, g, b, _ := col.RGBA()
	c.driver.DrawPixel(x, y, uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Clear zeroes the entire buffer.
func (c *Canvas) Clear() {
	c.driver.Clear()
}
