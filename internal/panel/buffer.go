package panel

import "github.com/umx75/controller/internal/gamma"

// Cell holds the six gamma-corrected channels for one addressable row's
// column: the top physical row's RGB and the bottom physical row's RGB.
type Cell struct {
	RTop, GTop, BTop uint8
	RBot, GBot, BBot uint8
}

// Buffer is the panel's pixel store: ROWS_ADDR rows of ROW_LENGTH cells.
// Exclusively owned by Driver; drawing mutates it in place.
type Buffer struct {
	rows    int
	cols    int
	cells   [][]Cell
	striped bool
}

func newBuffer(rows, cols int, striped bool) *Buffer {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Buffer{rows: rows, cols: cols, cells: cells, striped: striped}
}

func (b *Buffer) clear() {
	for r := range b.cells {
		for c := range b.cells[r] {
			b.cells[r][c] = Cell{}
		}
	}
}

func (b *Buffer) fill(rCh, gCh, bCh uint8) {
	gr, gg, gb := gamma.Correct(rCh), gamma.Correct(gCh), gamma.Correct(bCh)
	for r := range b.cells {
		for c := range b.cells[r] {
			b.cells[r][c] = Cell{gr, gg, gb, gr, gg, gb}
		}
	}
}

// remap converts logical (x, y) coordinates into (row, col) within the
// addressable buffer, honoring the stripe-multiplexing layout when enabled.
// writeBottom reports whether y falls in the panel's bottom half (channels
// 3..5); the returned bool reports whether the coordinates were in range.
func (b *Buffer) remap(x, y, width, height int) (row, col int, writeBottom bool, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false, false
	}
	if !b.striped {
		if x >= width || y >= height {
			return 0, 0, false, false
		}
		row = y % b.rows
		col = x
		writeBottom = y >= height/2
		return row, col, writeBottom, true
	}

	// Stripe-multiplexing: the physical shift register carries two
	// interleaved stripes, so each buffer row is twice the logical width
	// and covers a quarter of the panel height.
	if x >= width || y >= height {
		return 0, 0, false, false
	}
	isTopStripe := (y % (height / 2)) < height/4

	screenOffset := x / 32
	ex := x + screenOffset*32
	if isTopStripe {
		ex += 32
	}

	row = y % (height / 4)
	col = ex
	writeBottom = y >= height/2
	return row, col, writeBottom, true
}

func (b *Buffer) set(row, col int, writeBottom bool, r, g, bch uint8) {
	cell := &b.cells[row][col]
	gr, gg, gb := gamma.Correct(r), gamma.Correct(g), gamma.Correct(bch)
	if writeBottom {
		cell.RBot, cell.GBot, cell.BBot = gr, gg, gb
	} else {
		cell.RTop, cell.GTop, cell.BTop = gr, gg, gb
	}
}
