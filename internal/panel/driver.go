// Package panel implements the HUB75 binary-coded-PWM scan loop: the tight
// refresh algorithm that converts a gamma-corrected pixel buffer into
// row-select/shift-clock/latch/OE signal sequences on a single memory-mapped
// GPIO word.
package panel

import (
	"fmt"
	"sync"
	"time"
)

// brightness holds the 16 PWM thresholds of one full refresh.
var brightness = [16]uint8{16, 32, 48, 64, 80, 96, 112, 128, 144, 160, 176, 192, 208, 224, 240, 255}

// endOfRefreshPause equalizes the on-time of the last scanned row; without
// it the last row reads visibly brighter than the rest.
const endOfRefreshPause = 60 * time.Microsecond

// Config describes a panel's geometry and GPIO wiring.
type Config struct {
	Pins    PinMap
	Width   int
	Height  int
	Striped bool
	Port    OutputPort
}

// Driver owns the panel buffer and drives the HUB75 refresh loop. It is
// stateless across Output calls except for the buffer contents. Its mutex
// serializes each pixel write against each PWM pass, so draws and Output
// may run on different goroutines; it does not keep two concurrent Output
// calls from interleaving their passes.
type Driver struct {
	mu sync.Mutex

	width, height int
	rowsAddr      int
	m             masks
	port          OutputPort
	buf           *Buffer

	sleep func(time.Duration)
}

// New builds a panel driver from cfg. Returns an error if the pin map is
// invalid.
func New(cfg Config) (*Driver, error) {
	if err := cfg.Pins.Validate(); err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Height%2 != 0 {
		return nil, fmt.Errorf("panel: invalid geometry %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Striped && cfg.Height%4 != 0 {
		return nil, fmt.Errorf("panel: striped panel height %d not divisible by 4", cfg.Height)
	}
	if cfg.Port == nil {
		return nil, fmt.Errorf("panel: nil output port")
	}

	rowsAddr := cfg.Height / 2
	cols := cfg.Width
	if cfg.Striped {
		// Two interleaved stripes share each shift-register row: half the
		// addressable rows, twice the columns.
		rowsAddr = cfg.Height / 4
		cols = cfg.Width * 2
	}

	return &Driver{
		width:    cfg.Width,
		height:   cfg.Height,
		rowsAddr: rowsAddr,
		m:        cfg.Pins.masks(),
		port:     cfg.Port,
		buf:      newBuffer(rowsAddr, cols, cfg.Striped),
		sleep:    time.Sleep,
	}, nil
}

// Size reports the logical display dimensions (W, H).
func (d *Driver) Size() (int, int) {
	return d.width, d.height
}

// DrawPixel sets the pixel at (x, y), gamma-correcting each channel before
// storing it. Out-of-range coordinates are silently discarded.
func (d *Driver) DrawPixel(x, y int, r, g, b uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()

	row, col, writeBottom, ok := d.buf.remap(x, y, d.width, d.height)
	if !ok {
		return
	}
	d.buf.set(row, col, writeBottom, r, g, b)
}

// Clear zeroes every channel of every cell.
func (d *Driver) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buf.clear()
}

// ClearColor fills both the top and bottom channels of every cell with
// gamma(r, g, b).
func (d *Driver) ClearColor(r, g, b uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buf.fill(r, g, b)
}

// Output emits one full refresh: 16 PWM passes across the full brightness
// range. Blocking; must be called from a single context (the main loop or
// one timer tick, never both concurrently).
func (d *Driver) Output() {
	for _, t := range brightness {
		d.OutputSingle(t)
	}
}

// OutputSingle emits a single PWM pass at the given brightness threshold.
// Exposed separately so callers that need finer-grained control over pass
// timing (or that only want a subset of the 16 passes) can drive it
// directly instead of through Output. The buffer lock is held for the
// whole pass; draws interleave between passes, so a full refresh can
// still show one partially updated frame.
func (d *Driver) OutputSingle(threshold uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cells := d.buf.cells

	m := d.m

	// Hacky but efficient: address starts as OE, so every column of the
	// first row shifts with the panel blanked (nothing is latched yet).
	// After each row's latch, address holds only that row's select bits,
	// so later rows shift with OE low while the previously latched row
	// stays lit. Setting it once here avoids a per-column branch.
	address := m.oe
	var outputBuffer uint16

	for count, row := range cells {
		for _, cell := range row {
			outputBuffer = address

			if cell.RTop >= threshold {
				outputBuffer |= m.r1
			}
			if cell.GTop >= threshold {
				outputBuffer |= m.g1
			}
			if cell.BTop >= threshold {
				outputBuffer |= m.b1
			}
			if cell.RBot >= threshold {
				outputBuffer |= m.r2
			}
			if cell.GBot >= threshold {
				outputBuffer |= m.g2
			}
			if cell.BBot >= threshold {
				outputBuffer |= m.b2
			}

			outputBuffer |= m.clk
			d.port.Write(outputBuffer)
			outputBuffer &^= m.clk
			d.port.Write(outputBuffer)
		}

		outputBuffer |= m.oe
		outputBuffer &^= m.lat
		d.port.Write(outputBuffer)

		outputBuffer |= m.lat

		address = 0
		if count&1 != 0 {
			address |= m.a
		}
		if count&2 != 0 {
			address |= m.b
		}
		if count&4 != 0 {
			address |= m.c
		}

		outputBuffer &^= m.a | m.b | m.c
		outputBuffer |= address
		outputBuffer &^= m.oe

		d.port.Write(outputBuffer)
	}

	d.sleep(endOfRefreshPause)

	outputBuffer |= m.oe
	d.port.Write(outputBuffer)
}
