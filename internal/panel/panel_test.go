package panel

import (
	"testing"
	"time"
)

type fakePort struct {
	words []uint16
}

func (f *fakePort) Write(word uint16) {
	f.words = append(f.words, word)
}

func testConfig(striped bool) Config {
	return Config{
		Pins: PinMap{
			R1: 0, G1: 1, B1: 2,
			R2: 3, G2: 4, B2: 5,
			A: 6, B: 7, C: 8,
			CLK: 9, LAT: 10, OE: 11,
		},
		Width:   32,
		Height:  16,
		Striped: striped,
		Port:    &fakePort{},
	}
}

func TestPinMapValidate(t *testing.T) {
	tests := []struct {
		name    string
		pins    PinMap
		wantErr bool
	}{
		{
			name: "distinct in range",
			pins: PinMap{R1: 0, G1: 1, B1: 2, R2: 3, G2: 4, B2: 5, A: 6, B: 7, C: 8, CLK: 9, LAT: 10, OE: 11},
		},
		{
			name:    "duplicate",
			pins:    PinMap{R1: 0, G1: 0, B1: 2, R2: 3, G2: 4, B2: 5, A: 6, B: 7, C: 8, CLK: 9, LAT: 10, OE: 11},
			wantErr: true,
		},
		{
			name:    "out of range",
			pins:    PinMap{R1: 0, G1: 1, B1: 2, R2: 3, G2: 4, B2: 5, A: 6, B: 7, C: 8, CLK: 9, LAT: 10, OE: 16},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pins.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRejectsBadGeometry(t *testing.T) {
	cfg := testConfig(false)
	cfg.Height = 3
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for odd height")
	}
}

func TestDrawPixelOutOfRangeDiscarded(t *testing.T) {
	d, err := New(testConfig(false))
	if err != nil {
		t.Fatal(err)
	}
	d.DrawPixel(-1, 0, 255, 255, 255)
	d.DrawPixel(0, -1, 255, 255, 255)
	d.DrawPixel(1000, 0, 255, 255, 255)
	d.DrawPixel(0, 1000, 255, 255, 255)
	for _, row := range d.buf.cells {
		for _, cell := range row {
			if cell != (Cell{}) {
				t.Fatalf("expected untouched buffer, got %+v", cell)
			}
		}
	}
}

func TestDrawPixelAppliesGamma(t *testing.T) {
	d, err := New(testConfig(false))
	if err != nil {
		t.Fatal(err)
	}
	d.DrawPixel(0, 0, 255, 128, 1)
	cell := d.buf.cells[0][0]
	if cell.RTop != 255 {
		t.Errorf("RTop = %d, want 255", cell.RTop)
	}
	if cell.BTop != 0 {
		t.Errorf("BTop = %d, want 0 (gamma(1))", cell.BTop)
	}
}

func TestDrawPixelTopBottomSplit(t *testing.T) {
	d, err := New(testConfig(false))
	if err != nil {
		t.Fatal(err)
	}
	w, h := d.Size()
	d.DrawPixel(0, 0, 10, 10, 10)
	d.DrawPixel(0, h/2, 20, 20, 20)
	cell := d.buf.cells[0][0]
	if cell.RTop == 0 {
		t.Errorf("expected top channel set from y=0 draw")
	}
	if cell.RBot == 0 {
		t.Errorf("expected bottom channel set from y=h/2 draw")
	}
	_ = w
}

func TestStripedRemap(t *testing.T) {
	cfg := testConfig(true)
	cfg.Width = 64
	cfg.Height = 32
	d, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if d.buf.rows != 8 || d.buf.cols != 128 {
		t.Fatalf("buffer = %dx%d, want 8x128", d.buf.rows, d.buf.cols)
	}

	tests := []struct {
		name       string
		x, y       int
		wantRow    int
		wantCol    int
		wantBottom bool
	}{
		{"top stripe origin", 0, 0, 0, 32, false},
		{"bottom stripe same register row", 0, 8, 0, 0, false},
		{"second 32-wide screen", 40, 0, 0, 104, false},
		{"lower half last row", 0, 31, 7, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, bottom, ok := d.buf.remap(tt.x, tt.y, cfg.Width, cfg.Height)
			if !ok {
				t.Fatalf("remap(%d,%d) not ok", tt.x, tt.y)
			}
			if row != tt.wantRow || col != tt.wantCol || bottom != tt.wantBottom {
				t.Errorf("remap(%d,%d) = (%d,%d,%v), want (%d,%d,%v)",
					tt.x, tt.y, row, col, bottom, tt.wantRow, tt.wantCol, tt.wantBottom)
			}
		})
	}

	d.DrawPixel(63, 31, 255, 255, 255)
	d.DrawPixel(64, 0, 255, 255, 255) // out of logical range, discarded
}

func TestClearAndClearColor(t *testing.T) {
	d, err := New(testConfig(false))
	if err != nil {
		t.Fatal(err)
	}
	d.ClearColor(100, 100, 100)
	for _, row := range d.buf.cells {
		for _, cell := range row {
			if cell.RTop == 0 || cell.RBot == 0 {
				t.Fatalf("expected ClearColor to fill all channels, got %+v", cell)
			}
		}
	}
	d.Clear()
	for _, row := range d.buf.cells {
		for _, cell := range row {
			if cell != (Cell{}) {
				t.Fatalf("expected Clear to zero all channels, got %+v", cell)
			}
		}
	}
}

func TestOutputSingleEndsWithOEHigh(t *testing.T) {
	cfg := testConfig(false)
	port := &fakePort{}
	cfg.Port = port
	d, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	d.sleep = func(time.Duration) {}
	d.OutputSingle(128)
	if len(port.words) == 0 {
		t.Fatal("expected writes to port")
	}
	last := port.words[len(port.words)-1]
	if last&d.m.oe == 0 {
		t.Errorf("expected OE bit set in final word, got %016b", last)
	}
}
