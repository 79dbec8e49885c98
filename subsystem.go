package rig

import (
	"context"

	"github.com/gogpu/rig/content"
)

// Subsystem is a self-contained engine module participating in the
// per-tick lifecycle: input, rendering, audio, simulation, and so on.
//
// The driver invokes hooks in a fixed order. During startup: Initialize
// for every subsystem in registration order, then LoadContent for all
// subsystems concurrently. During each tick: Update for every subsystem,
// then BeginDraw and Draw for every subsystem, then EndDraw for every
// subsystem regardless of earlier errors. Dispose runs once when the run
// finalizes.
//
// Implementations that only need a few hooks can embed Base and override
// the rest.
type Subsystem interface {
	// Initialize prepares the subsystem before any content is loaded.
	// An error aborts startup; later subsystems are not initialized.
	Initialize() error

	// LoadContent loads the subsystem's assets. The driver calls
	// LoadContent for all subsystems concurrently and waits for every
	// one to finish before the first tick. assets may be nil when no
	// content manager was attached to the driver.
	LoadContent(ctx context.Context, assets *content.Manager) error

	// Update advances simulation state by one tick.
	Update(t GameTime) error

	// BeginDraw prepares the subsystem for drawing this tick.
	BeginDraw() error

	// Draw renders the subsystem's output for this tick.
	Draw(t GameTime) error

	// EndDraw finishes the draw phase. It runs on every tick exit path,
	// including when Update, BeginDraw, or Draw returned an error, so it
	// must tolerate being called after a partial frame.
	EndDraw()

	// Dispose releases the subsystem's resources. Called exactly once
	// when the run finalizes.
	Dispose()
}

// Base is a Subsystem with no-op implementations of every hook.
// Embed it to implement only the hooks a subsystem needs:
//
//	type fpsCounter struct {
//	    rig.Base
//	    frames int
//	}
//
//	func (f *fpsCounter) Update(t rig.GameTime) error {
//	    f.frames++
//	    return nil
//	}
type Base struct{}

// Initialize implements Subsystem.
func (Base) Initialize() error { return nil }

// LoadContent implements Subsystem.
func (Base) LoadContent(context.Context, *content.Manager) error { return nil }

// Update implements Subsystem.
func (Base) Update(GameTime) error { return nil }

// BeginDraw implements Subsystem.
func (Base) BeginDraw() error { return nil }

// Draw implements Subsystem.
func (Base) Draw(GameTime) error { return nil }

// EndDraw implements Subsystem.
func (Base) EndDraw() {}

// Dispose implements Subsystem.
func (Base) Dispose() {}
