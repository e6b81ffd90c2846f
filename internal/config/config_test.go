package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsUsable(t *testing.T) {
	cfg := Default()
	if err := cfg.Panel.Pins.Validate(); err != nil {
		t.Fatalf("Default() pin map invalid: %v", err)
	}
	if cfg.Panel.Width <= 0 || cfg.Panel.Height <= 0 {
		t.Fatalf("Default() geometry invalid: %+v", cfg.Panel)
	}
	if cfg.RXBufferCapacity <= 0 {
		t.Fatal("expected a positive RX buffer capacity")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.UART.Device = "/dev/ttyTEST0"

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.UART.Device != "/dev/ttyTEST0" {
		t.Errorf("UART.Device = %q, want /dev/ttyTEST0", got.UART.Device)
	}
	if got.Panel.Width != cfg.Panel.Width {
		t.Errorf("Panel.Width = %d, want %d", got.Panel.Width, cfg.Panel.Width)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error loading a missing config file")
	}
}
