// Package config loads the controller's JSON configuration: panel
// geometry and pin map, stripe-multiplexing flag, output-port backend
// choice, and the two serial transport device paths. All of these are
// fixed for the controller's lifetime: decoded once at startup, never
// mutated after.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/umx75/controller/internal/panel"
)

// PanelConfig describes the physical matrix and its GPIO wiring.
type PanelConfig struct {
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Striped bool         `json:"striped"`
	Pins    panel.PinMap `json:"pins"`
}

// PortConfig selects and parameterizes the OutputPort backend.
type PortConfig struct {
	// Backend is "mmap" or "line".
	Backend string `json:"backend"`
	// MMapAddress is the physical GPIO register address, used when
	// Backend == "mmap".
	MMapAddress uint64 `json:"mmap_address"`
	// GPIOChip and OffsetAdjust are used when Backend == "line".
	GPIOChip     string `json:"gpio_chip"`
	OffsetAdjust int    `json:"offset_adjust"`
}

// TransportConfig names one serial device and its baud rate.
type TransportConfig struct {
	Device string `json:"device"`
	Baud   int    `json:"baud"`
}

// Config is the controller's full startup configuration.
type Config struct {
	Panel PanelConfig     `json:"panel"`
	Port  PortConfig      `json:"port"`
	UART  TransportConfig `json:"uart"`
	USB   TransportConfig `json:"usb"`
	// RXBufferCapacity bounds each reassembler's payload buffer. Any
	// inbound frame claiming a longer payload is rejected.
	RXBufferCapacity int `json:"rx_buffer_capacity"`
}

// Load reads and decodes a Config from path.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns the reference 128×32 single-drive panel configuration
// with the 12 HUB75 signals packed into the low 12 bits of the output
// word.
func Default() *Config {
	return &Config{
		Panel: PanelConfig{
			Width:  128,
			Height: 32,
			Pins: panel.PinMap{
				R1: 0, G1: 1, B1: 2,
				R2: 3, G2: 4, B2: 5,
				A: 6, B: 7, C: 8,
				CLK: 9, LAT: 10, OE: 11,
			},
		},
		Port: PortConfig{
			Backend:     "mmap",
			MMapAddress: 0xFE200000,
		},
		UART: TransportConfig{Device: "/dev/ttyAMA0", Baud: 115200},
		USB:  TransportConfig{Device: "/dev/ttyACM0", Baud: 115200},

		RXBufferCapacity: 512,
	}
}
