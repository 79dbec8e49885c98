// Package rig provides a small real-time runtime core for the GoGPU
// ecosystem: a tick-driven game-loop driver, a subsystem lifecycle, and
// a monotonic timekeeper.
//
// # Overview
//
// A Driver owns an ordered list of Subsystems and advances them one tick
// at a time. Ticks are produced by an external event source (typically a
// window message pump); the driver itself never spins. Each tick runs
// Update, then BeginDraw/Draw, then EndDraw on every subsystem in
// registration order.
//
// # Quick Start
//
//	d := rig.New(
//	    rig.WithContent(content.NewManager(os.DirFS("assets"))),
//	)
//	_ = d.Register(&mySubsystem{})
//
//	if err := d.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	for d.State() == rig.StateRunning {
//	    if err := d.Tick(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// With a window attached via rig.WithWindow, Run blocks and the window
// pump drives Tick instead.
//
// # Lifecycle
//
// Run initializes subsystems in order, loads their content concurrently,
// and transitions the driver to StateRunning. Exit is idempotent and
// marks the driver StateExiting; the next Tick finalizes the run (end-run
// hook, clock stop, Dispose) and transitions to StateStopped. Ticks past
// StateStopped are no-ops.
//
// # Related Packages
//
//   - material: declarative material descriptions compiled to wgpu
//     pipeline and bind group layout descriptors
//   - content: asset loading (textures, WGSL shaders)
//   - gpu: standalone HAL device bootstrap and host device injection
//   - window: pluggable window hosts (ebiten, headless)
package rig
