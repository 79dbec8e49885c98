package rig

// State describes the driver's position in its run lifecycle.
//
// The state machine is linear and driven by three triggers:
//
//	StateNotStarted -(Run)-> StateRunning -(Exit)-> StateExiting -(Tick)-> StateStopped
//
// Tick is the only transition trigger out of StateExiting; Exit merely
// requests the transition.
type State int32

const (
	// StateNotStarted is the initial state. Run may only be called here.
	StateNotStarted State = iota

	// StateRunning means startup completed and ticks advance subsystems.
	StateRunning

	// StateExiting means Exit was called; the next Tick finalizes the run.
	StateExiting

	// StateStopped means the run finished. Further Ticks are no-ops.
	StateStopped
)

// String returns the state name for logging and test output.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateRunning:
		return "Running"
	case StateExiting:
		return "Exiting"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}
