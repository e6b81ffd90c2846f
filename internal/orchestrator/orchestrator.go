// Package orchestrator runs the controller's main-loop duty: the scan
// timer that drives the panel refresh, the animation timer that advances
// text-row animations, and the render tick that repaints text into the
// panel buffer and services deferred clear requests. Each loop stands in
// for one of the firmware timer interrupts the hardware would provide.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/umx75/controller/internal/command"
	"github.com/umx75/controller/internal/panel"
)

// Config sets the three tick rates and an optional boot splash.
type Config struct {
	// ScanInterval is the period between full panel refreshes (~120 Hz).
	ScanInterval time.Duration
	// AnimInterval is the period between animation ticks (~60 Hz).
	AnimInterval time.Duration
	// RenderInterval is the period between main-loop re-rasterizations
	// of text into the panel buffer.
	RenderInterval time.Duration
	// BootFrame, if non-nil, is painted onto the panel once before the
	// ticker loops start.
	BootFrame *panel.Frame
}

// DefaultConfig returns the standard 120 Hz scan / 60 Hz animation rates.
func DefaultConfig() Config {
	return Config{
		ScanInterval:   time.Second / 120,
		AnimInterval:   time.Second / 60,
		RenderInterval: time.Second / 60,
	}
}

// Orchestrator ties the panel driver and the command executor together
// for the controller's lifetime.
type Orchestrator struct {
	driver *panel.Driver
	exec   *command.Executor
	cfg    Config
}

// New builds an orchestrator and paints cfg.BootFrame, if any.
func New(driver *panel.Driver, exec *command.Executor, cfg Config) *Orchestrator {
	cfg.BootFrame.Paint(driver)
	return &Orchestrator{driver: driver, exec: exec, cfg: cfg}
}

// Run blocks until ctx is cancelled, driving the scan loop, the
// animation loop, and the render/deferred-clear loop concurrently.
func (o *Orchestrator) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		o.scanLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		o.animLoop(ctx)
	}()
	o.renderLoop(ctx)
	wg.Wait()
}

// scanLoop is the analogue of the ~120 Hz scan-timer ISR: it must call
// Output from a single context, never overlapping the main loop's own
// panel access outside the buffer mutex panel.Driver already holds.
func (o *Orchestrator) scanLoop(ctx context.Context) {
	ticker := time.NewTicker(o.cfg.ScanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if o.exec.OutputEnabled() {
				o.driver.Output()
			}
		}
	}
}

func (o *Orchestrator) animLoop(ctx context.Context) {
	ticker := time.NewTicker(o.cfg.AnimInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.exec.Tick()
		}
	}
}

// renderLoop is the main loop proper: on each tick it services a pending
// deferred clear, then re-rasterizes the active text engine into the
// panel buffer (a no-op in DirectMode).
func (o *Orchestrator) renderLoop(ctx context.Context) {
	ticker := time.NewTicker(o.cfg.RenderInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if o.exec.ConsumeClearRequest() {
				o.driver.Clear()
			}
			o.exec.Render()
		}
	}
}
