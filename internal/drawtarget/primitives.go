package drawtarget

import (
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

func pt(x, y int) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
}

func strokeWidth(thickness uint8) fixed.Int26_6 {
	if thickness == 0 {
		thickness = 1
	}
	return fixed.I(int(thickness))
}

func stroke(img draw.Image, col color.Color, thickness uint8, build func(d *rasterx.Dasher)) {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	dasher.SetStroke(strokeWidth(thickness), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	dasher.SetColor(col)
	build(dasher)
	dasher.Draw()
}

func fill(img draw.Image, col color.Color, build func(f *rasterx.Filler)) {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.SetColor(col)
	build(filler)
	filler.Draw()
}

// Line strokes a single segment from (x1,y1) to (x2,y2).
func Line(img draw.Image, x1, y1, x2, y2 int, thickness uint8, col color.Color) {
	stroke(img, col, thickness, func(d *rasterx.Dasher) {
		d.Start(pt(x1, y1))
		d.Line(pt(x2, y2))
		d.Stop(false)
	})
}

// Rectangle draws the axis-aligned box with corners (x1,y1)-(x2,y2),
// stroked or filled.
func Rectangle(img draw.Image, x1, y1, x2, y2 int, thickness uint8, filled bool, col color.Color) {
	corners := func(start func(fixed.Point26_6), line func(fixed.Point26_6), stop func(bool)) {
		start(pt(x1, y1))
		line(pt(x2, y1))
		line(pt(x2, y2))
		line(pt(x1, y2))
		stop(true)
	}
	if filled {
		fill(img, col, func(f *rasterx.Filler) {
			corners(f.Start, f.Line, f.Stop)
		})
		return
	}
	stroke(img, col, thickness, func(d *rasterx.Dasher) {
		corners(d.Start, d.Line, d.Stop)
	})
}

// Triangle draws the triangle with the three given vertices, stroked or
// filled.
func Triangle(img draw.Image, x1, y1, x2, y2, x3, y3 int, thickness uint8, filled bool, col color.Color) {
	corners := func(start func(fixed.Point26_6), line func(fixed.Point26_6), stop func(bool)) {
		start(pt(x1, y1))
		line(pt(x2, y2))
		line(pt(x3, y3))
		stop(true)
	}
	if filled {
		fill(img, col, func(f *rasterx.Filler) {
			corners(f.Start, f.Line, f.Stop)
		})
		return
	}
	stroke(img, col, thickness, func(d *rasterx.Dasher) {
		corners(d.Start, d.Line, d.Stop)
	})
}

// Circle draws a circle centered at (cx,cy) with the given radius, stroked
// or filled.
func Circle(img draw.Image, cx, cy, radius int, thickness uint8, filled bool, col color.Color) {
	if filled {
		fill(img, col, func(f *rasterx.Filler) {
			rasterx.AddCircle(float64(cx), float64(cy), float64(radius), f)
		})
		return
	}
	stroke(img, col, thickness, func(d *rasterx.Dasher) {
		rasterx.AddCircle(float64(cx), float64(cy), float64(radius), d)
	})
}
