package rig

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Driver owns an ordered list of subsystems, a clock, and the run state
// machine. It drives one tick per external invocation.
//
// Thread safety: Tick is serialized internally; at most one tick executes
// at a time and concurrent callers wait. Exit and State may be called
// from any goroutine, including from subsystem hooks inside a tick.
type Driver struct {
	// mu guards state, starting, ended, subsystems, and time.
	// It is never held across subsystem calls, so hooks may call back
	// into Exit or State without deadlocking.
	mu sync.Mutex

	// tickMu serializes tick execution.
	tickMu sync.Mutex

	state      State
	starting   bool
	ended      bool
	subsystems []Subsystem
	time       GameTime

	clock *Clock
	opts  driverOptions
}

// New creates a driver in StateNotStarted.
func New(opts ...Option) *Driver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Driver{
		clock: NewClock(),
		opts:  o,
	}
}

// Register appends a subsystem to the driver's list. Registration order
// is execution order for every lifecycle phase and cannot change later.
// Register fails with ErrAlreadyRunning once Run has been called.
func (d *Driver) Register(s Subsystem) error {
	if s == nil {
		return ErrNilSubsystem
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateNotStarted || d.starting {
		return ErrAlreadyRunning
	}
	d.subsystems = append(d.subsystems, s)
	return nil
}

// Run starts the driver: it initializes every subsystem in registration
// order, loads their content concurrently (waiting for all loads to
// finish before the first tick), starts the clock, invokes the begin-run
// hook, and transitions to StateRunning.
//
// Run fails with ErrAlreadyRunning if the driver is not in
// StateNotStarted; in that case no state is mutated and the subsystem
// list is untouched. If a subsystem's Initialize or LoadContent fails,
// the error propagates and the driver stays in StateNotStarted.
//
// When a window is attached, Run then blocks inside the window pump,
// which drives Tick once per frame; Run returns when the pump stops.
// Without a window, Run returns immediately after startup and the caller
// drives Tick.
func (d *Driver) Run(ctx context.Context) error {
	d.mu.Lock()
	if d.state != StateNotStarted || d.starting {
		d.mu.Unlock()
		return ErrAlreadyRunning
	}
	d.starting = true
	subs := d.subsystems
	d.mu.Unlock()

	if err := d.startup(ctx, subs); err != nil {
		d.mu.Lock()
		d.starting = false
		d.mu.Unlock()
		return err
	}

	d.clock.Start()

	d.mu.Lock()
	d.state = StateRunning
	d.starting = false
	d.mu.Unlock()

	if d.opts.beginRun != nil {
		d.opts.beginRun()
	}
	Logger().Info("rig: run started", "subsystems", len(subs))

	if w := d.opts.window; w != nil {
		err := w.Run(d.Tick)
		// The pump has stopped producing ticks, so the finalizing tick
		// will never arrive; finish the run here instead.
		d.Exit()
		d.tickMu.Lock()
		if d.State() == StateExiting {
			d.finishRun()
		}
		d.tickMu.Unlock()
		return err
	}
	return nil
}

// startup initializes subsystems in order, then fans out content loading.
func (d *Driver) startup(ctx context.Context, subs []Subsystem) error {
	for i, s := range subs {
		if err := s.Initialize(); err != nil {
			return fmt.Errorf("rig: initialize subsystem %d: %w", i, err)
		}
	}
	return d.loadContent(ctx, subs)
}

// loadContent issues one concurrent load per subsystem and joins all of
// them before returning. Any single failure fails the whole join; the
// failures of every subsystem are aggregated into one error.
func (d *Driver) loadContent(ctx context.Context, subs []Subsystem) error {
	if len(subs) == 0 {
		return nil
	}
	if d.opts.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.loadTimeout)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)
	errs := make([]error, len(subs))
	for i, s := range subs {
		g.Go(func() error {
			if err := s.LoadContent(gctx, d.opts.content); err != nil {
				errs[i] = fmt.Errorf("rig: load content for subsystem %d: %w", i, err)
				return errs[i]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// errgroup reports only the first failure; join them all so the
		// caller sees every load that went wrong.
		return errors.Join(errs...)
	}
	return nil
}

// Tick advances the run by one step. At most one tick executes at a
// time; concurrent callers block until the running tick finishes.
//
// If an exit was requested, Tick finalizes the run (end-run hook exactly
// once, clock stopped, subsystems disposed) and returns nil. Otherwise
// it advances the clock, calls Update then BeginDraw/Draw on every
// subsystem in registration order, and unconditionally calls EndDraw on
// every subsystem afterward, even when Update or Draw failed.
//
// Errors from subsystem hooks are not swallowed: the first error aborts
// the remaining subsystems in the phase and propagates to the caller,
// after the deferred EndDraw and end-of-run bookkeeping have run.
//
// Ticks after the run has fully stopped are no-ops.
func (d *Driver) Tick() error {
	d.tickMu.Lock()
	defer d.tickMu.Unlock()

	switch d.State() {
	case StateNotStarted:
		return ErrNotRunning
	case StateStopped:
		return nil
	case StateExiting:
		d.finishRun()
		return nil
	}

	t := d.clock.Tick()
	d.mu.Lock()
	d.time = t
	subs := d.subsystems
	d.mu.Unlock()

	return d.step(t, subs)
}

// step runs one Update+Draw cycle. The deferred cleanup runs EndDraw on
// every subsystem and performs the end-of-run check on both normal and
// error exit paths.
func (d *Driver) step(t GameTime, subs []Subsystem) (err error) {
	defer func() {
		for _, s := range subs {
			s.EndDraw()
		}
		if d.State() == StateExiting {
			d.finishRun()
		}
	}()

	for i, s := range subs {
		if uerr := s.Update(t); uerr != nil {
			return fmt.Errorf("rig: update subsystem %d: %w", i, uerr)
		}
	}
	for i, s := range subs {
		if berr := s.BeginDraw(); berr != nil {
			return fmt.Errorf("rig: begin draw subsystem %d: %w", i, berr)
		}
		if derr := s.Draw(t); derr != nil {
			return fmt.Errorf("rig: draw subsystem %d: %w", i, derr)
		}
	}
	return nil
}

// finishRun performs end-of-run bookkeeping exactly once: it fires the
// end-run hook, stops the clock, disposes subsystems in registration
// order, and transitions to StateStopped.
func (d *Driver) finishRun() {
	d.mu.Lock()
	if d.ended {
		d.mu.Unlock()
		return
	}
	d.ended = true
	d.state = StateStopped
	subs := d.subsystems
	d.mu.Unlock()

	if d.opts.endRun != nil {
		d.opts.endRun()
	}
	d.clock.Stop()
	for _, s := range subs {
		s.Dispose()
	}
	Logger().Info("rig: run finished")
}

// Exit requests the end of the run. It is idempotent: only the first
// call on a running driver has an effect. The run finalizes on the next
// Tick (or at the end of the current tick, when called from a hook).
// If a window is attached, Exit also asks its pump to stop producing
// ticks.
func (d *Driver) Exit() {
	d.mu.Lock()
	if d.state != StateRunning {
		d.mu.Unlock()
		return
	}
	d.state = StateExiting
	d.mu.Unlock()

	if d.opts.window != nil {
		d.opts.window.Exit()
	}
}

// State returns the driver's current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Subsystems returns the number of registered subsystems.
func (d *Driver) Subsystems() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subsystems)
}

// Time returns the snapshot produced by the most recent tick.
func (d *Driver) Time() GameTime {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.time
}
