package drawtarget

import (
	"image"
	"image/color"
	"testing"

	"github.com/umx75/controller/internal/panel"
)

type discardPort struct{}

func (discardPort) Write(uint16) {}

func testDriver(t *testing.T) *panel.Driver {
	t.Helper()
	d, err := panel.New(panel.Config{
		Pins: panel.PinMap{
			R1: 0, G1: 1, B1: 2,
			R2: 3, G2: 4, B2: 5,
			A: 6, B: 7, C: 8,
			CLK: 9, LAT: 10, OE: 11,
		},
		Width:  64,
		Height: 32,
		Port:   discardPort{},
	})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func countLit(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != 0 || g != 0 || bl != 0 {
				n++
			}
		}
	}
	return n
}

func TestCanvasBoundsMatchDriver(t *testing.T) {
	d := testDriver(t)
	c := NewCanvas(d)
	if got := c.Bounds(); got != image.Rect(0, 0, 64, 32) {
		t.Fatalf("Bounds() = %v, want (0,0)-(64,32)", got)
	}
}

func TestCanvasSetOutOfRangeDoesNotPanic(t *testing.T) {
	d := testDriver(t)
	c := NewCanvas(d)
	c.Set(-5, 100, color.White)
	c.Set(1000, 1000, color.White)
}

func TestLineMarksPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	Line(img, 0, 0, 63, 31, 1, color.RGBA{R: 255, A: 255})
	if countLit(img) == 0 {
		t.Fatal("expected a diagonal line to light pixels")
	}
}

func TestFilledRectangleCoversInterior(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	Rectangle(img, 8, 8, 24, 24, 1, true, color.RGBA{G: 255, A: 255})
	_, g, _, _ := img.At(16, 16).RGBA()
	if g == 0 {
		t.Fatal("expected the rectangle interior to be filled")
	}
}

func TestStrokedRectangleLeavesInteriorDark(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	Rectangle(img, 8, 8, 24, 24, 1, false, color.RGBA{G: 255, A: 255})
	if countLit(img) == 0 {
		t.Fatal("expected the rectangle outline to light pixels")
	}
	_, g, _, _ := img.At(16, 16).RGBA()
	if g != 0 {
		t.Fatal("expected the stroked rectangle interior to stay dark")
	}
}

func TestFilledTriangle(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	Triangle(img, 2, 2, 30, 2, 16, 28, 1, true, color.RGBA{B: 255, A: 255})
	_, _, b, _ := img.At(16, 8).RGBA()
	if b == 0 {
		t.Fatal("expected the triangle interior to be filled")
	}
}

func TestCircleRadiusZeroDoesNotPanic(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	Circle(img, 10, 10, 0, 1, false, color.White)
	Circle(img, 10, 10, 0, 1, true, color.White)
}

func TestFilledCircleCoversCenter(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	Circle(img, 32, 16, 8, 1, true, color.RGBA{R: 255, A: 255})
	r, _, _, _ := img.At(32, 16).RGBA()
	if r == 0 {
		t.Fatal("expected the circle center to be filled")
	}
}
