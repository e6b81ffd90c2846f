package panel

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// LinePort is an OutputPort backed by individual GPIO character-device
// lines, one per pin in the map. It is the portable fallback for hosts
// where /dev/mem register access isn't available (or isn't desirable): each
// Write costs one syscall per changed line rather than one mapped-memory
// store, so it cannot sustain the same refresh rate as MMapPort. Useful for
// bring-up and for boards whose GPIO controller isn't mapped where
// MMapPort expects it.
type LinePort struct {
	chip  *gpiocdev.Chip
	lines [16]*gpiocdev.Line
	prev  uint16
}

// OpenLinePort requests one output line per set bit position named in
// pins, on the named gpiochip device (e.g. "gpiochip0"). offsetAdjust is
// added to every line offset before the request; some SoCs (e.g. the
// Raspberry Pi 5's RP1) expose GPIO lines starting at a non-zero base.
func OpenLinePort(chipName string, pins PinMap, offsetAdjust int) (*LinePort, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("panel: open %s: %w", chipName, err)
	}

	p := &LinePort{chip: chip}
	for _, pos := range pins.positions() {
		if p.lines[pos] != nil {
			continue
		}
		line, err := chip.RequestLine(int(pos)+offsetAdjust, gpiocdev.AsOutput(0))
		if err != nil {
			chip.Close()
			return nil, fmt.Errorf("panel: request line %d: %w", pos, err)
		}
		p.lines[pos] = line
	}
	return p, nil
}

// Write sets every GPIO line whose bit changed between the previous word
// and word.
func (p *LinePort) Write(word uint16) {
	changed := word ^ p.prev
	for pos := uint(0); pos < 16; pos++ {
		line := p.lines[pos]
		if line == nil || changed&(1<<pos) == 0 {
			continue
		}
		v := 0
		if word&(1<<pos) != 0 {
			v = 1
		}
		line.SetValue(v)
	}
	p.prev = word
}

// Close releases all requested lines and the chip handle.
func (p *LinePort) Close() error {
	for _, line := range p.lines {
		if line != nil {
			line.Close()
		}
	}
	return p.chip.Close()
}
