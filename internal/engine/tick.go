// Package engine provides the tick-based cycle loop. Each tick runs the
// cycle phases in a fixed order on one goroutine; nothing in a tick overlaps
// anything else.
package engine

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Default periods, in ticks.
const (
	DefaultReportEvery = 1000
	DefaultSaveEvery   = 500
)

// Engine drives the colony forward one cycle per tick.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval

	ReportEvery uint64 // OnReport period; zero disables
	SaveEvery   uint64 // OnSave period; zero disables

	// Phase callbacks, called in this order every tick.
	OnInit      func(tick uint64) // Select the cycle's resource, reset cycle state
	OnRegister  func(tick uint64) // Register eligible sites
	OnSiteTasks func(tick uint64) // Per-site work: production, local missions
	OnActions   func(tick uint64) // Network trade, market upkeep, strike report

	// Periodic callbacks, after the phases.
	OnReport func(tick uint64)
	OnSave   func(tick uint64)

	running atomic.Bool
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Speed:       1.0,
		Interval:    100 * time.Millisecond,
		ReportEvery: DefaultReportEvery,
		SaveEvery:   DefaultSaveEvery,
	}
}

// Run starts the cycle loop. Blocks until Stop is called.
func (e *Engine) Run() {
	e.running.Store(true)
	slog.Info("empire engine started", "tick", e.Tick, "speed", e.Speed)

	for e.running.Load() {
		if e.Speed <= 0 {
			// Paused; sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.Step()

		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("empire engine stopped", "tick", e.Tick)
}

// RunTicks advances n ticks back to back, without pacing, unless stopped
// first.
func (e *Engine) RunTicks(n uint64) {
	e.running.Store(true)
	for i := uint64(0); i < n && e.running.Load(); i++ {
		e.Step()
	}
	e.running.Store(false)
}

// Stop halts the loop after the current tick.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// Running reports whether a loop is active.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Step advances the colony by one tick.
func (e *Engine) Step() {
	e.Tick++
	t := e.Tick

	for _, phase := range []func(uint64){e.OnInit, e.OnRegister, e.OnSiteTasks, e.OnActions} {
		if phase != nil {
			phase(t)
		}
	}

	if e.ReportEvery > 0 && t%e.ReportEvery == 0 && e.OnReport != nil {
		e.OnReport(t)
	}
	if e.SaveEvery > 0 && t%e.SaveEvery == 0 && e.OnSave != nil {
		e.OnSave(t)
	}
}
