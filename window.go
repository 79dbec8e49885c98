package rig

// Window is the external event source that produces ticks. The driver
// never pumps events itself; it hands its Tick method to the window and
// lets the host's message loop invoke it once per frame.
//
// Implementations live in the window package and its host sub-packages
// (window/ebiten, window/headless). Any type with the same method set
// satisfies Window, so hosts do not need to import rig.
type Window interface {
	// Run blocks pumping host events, invoking tick once per frame.
	// It returns when Exit is called, when the host window closes, or
	// when tick returns an error (which Run propagates).
	Run(tick func() error) error

	// Exit signals the pump to stop producing ticks. It must be safe to
	// call from within a tick and from other goroutines, and must be
	// idempotent.
	Exit()
}
