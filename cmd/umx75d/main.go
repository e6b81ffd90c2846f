// Command umx75d is the UMX HUB75 matrix controller daemon: it opens the
// panel's output port and the two serial transports (UART, USB-CDC),
// wires them to the command executor, and runs the scan/anim/render
// loops until SIGINT or SIGTERM.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/umx75/controller/internal/command"
	"github.com/umx75/controller/internal/config"
	"github.com/umx75/controller/internal/orchestrator"
	"github.com/umx75/controller/internal/panel"
	"github.com/umx75/controller/internal/transport"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file (defaults to the reference 128x32 single-drive configuration)")
	linePort := flag.Bool("line-port", false, "force the go-gpiocdev line-based OutputPort even if config selects mmap")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("umx75d: %v", err)
		}
		cfg = loaded
	}

	log.Printf("umx75d: panel %dx%d striped=%v", cfg.Panel.Width, cfg.Panel.Height, cfg.Panel.Striped)

	port, closePort, err := openPort(cfg, *linePort)
	if err != nil {
		log.Fatalf("umx75d: open output port: %v", err)
	}
	defer closePort()

	driver, err := panel.New(panel.Config{
		Pins:    cfg.Panel.Pins,
		Width:   cfg.Panel.Width,
		Height:  cfg.Panel.Height,
		Striped: cfg.Panel.Striped,
		Port:    port,
	})
	if err != nil {
		log.Fatalf("umx75d: init panel driver: %v", err)
	}

	exec := command.NewExecutor(driver)

	uart, err := transport.Open("uart", cfg.UART.Device, cfg.UART.Baud, cfg.RXBufferCapacity)
	if err != nil {
		log.Fatalf("umx75d: open UART: %v", err)
	}
	defer uart.Close()

	usb, err := transport.Open("usb", cfg.USB.Device, cfg.USB.Baud, cfg.RXBufferCapacity)
	if err != nil {
		log.Fatalf("umx75d: open USB-CDC: %v", err)
	}
	defer usb.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("umx75d: received %v, shutting down", sig)
		cancel()
		uart.Close()
		usb.Close()
	}()

	go uart.Run(ctx, exec)
	go usb.Run(ctx, exec)

	orch := orchestrator.New(driver, exec, orchestrator.DefaultConfig())
	log.Println("umx75d: running")
	orch.Run(ctx)
	log.Println("umx75d: stopped")
}

// openPort opens the OutputPort backend cfg.Port.Backend names, falling
// back to the GPIO-character-device LinePort when forceLine is set or the
// mmap backend fails to open (e.g. no /dev/mem access on a dev host).
func openPort(cfg *config.Config, forceLine bool) (panel.OutputPort, func() error, error) {
	if !forceLine && cfg.Port.Backend == "mmap" {
		p, err := panel.OpenMMapPort(uintptr(cfg.Port.MMapAddress))
		if err == nil {
			return p, p.Close, nil
		}
		log.Printf("umx75d: mmap port unavailable (%v), falling back to line port", err)
	}

	chip := cfg.Port.GPIOChip
	if chip == "" {
		chip = "gpiochip0"
	}
	p, err := panel.OpenLinePort(chip, cfg.Panel.Pins, cfg.Port.OffsetAdjust)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}
