package panel

// Frame is a raw W×H RGB pixel grid a caller can paint onto the panel
// before any serial traffic arrives: a boot splash. Pixels is row-major,
// W*H entries of (R,G,B). The image data itself comes from the caller;
// nothing is embedded here.
type Frame struct {
	W, H   int
	Pixels []uint8 // len == W*H*3
}

// Paint draws every pixel of f onto d via DrawPixel. A no-op if f is nil
// or malformed (wrong pixel count), so callers can pass an optional,
// possibly-zero-value Frame without special-casing.
func (f *Frame) Paint(d *Driver) {
	if f == nil || f.W <= 0 || f.H <= 0 || len(f.Pixels) != f.W*f.H*3 {
		return
	}
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			i := (y*f.W + x) * 3
			d.DrawPixel(x, y, f.Pixels[i], f.Pixels[i+1], f.Pixels[i+2])
		}
	}
}
