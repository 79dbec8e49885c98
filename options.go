package rig

import (
	"time"

	"github.com/gogpu/rig/content"
)

// Option configures a Driver during creation.
// Use functional options to customize Driver behavior.
//
// Example:
//
//	// Headless driver, caller drives Tick
//	d := rig.New()
//
//	// Driver owned by a window pump
//	d := rig.New(rig.WithWindow(host), rig.WithContent(assets))
type Option func(*driverOptions)

// driverOptions holds optional configuration for Driver creation.
type driverOptions struct {
	window      Window
	content     *content.Manager
	beginRun    func()
	endRun      func()
	loadTimeout time.Duration
}

// defaultOptions returns the default driver options.
func defaultOptions() driverOptions {
	return driverOptions{} // no window, no content manager, unbounded loads
}

// WithWindow attaches a window (tick event source) to the driver.
// When set, Run blocks inside the window pump and the pump drives Tick;
// Exit asks the pump to stop.
func WithWindow(w Window) Option {
	return func(o *driverOptions) {
		o.window = w
	}
}

// WithContent attaches a content manager, passed to every subsystem's
// LoadContent during startup.
func WithContent(m *content.Manager) Option {
	return func(o *driverOptions) {
		o.content = m
	}
}

// WithBeginRun sets a hook invoked exactly once after startup completes,
// immediately before the first tick can execute.
func WithBeginRun(fn func()) Option {
	return func(o *driverOptions) {
		o.beginRun = fn
	}
}

// WithEndRun sets a hook invoked exactly once when the run finalizes,
// before subsystems are disposed.
func WithEndRun(fn func()) Option {
	return func(o *driverOptions) {
		o.endRun = fn
	}
}

// WithLoadTimeout bounds the concurrent content-load phase of Run.
// By default loading is unbounded.
func WithLoadTimeout(d time.Duration) Option {
	return func(o *driverOptions) {
		o.loadTimeout = d
	}
}
