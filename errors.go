package rig

import "errors"

// Driver errors.
var (
	// ErrAlreadyRunning is returned by Run when the driver has already
	// been started, and by Register once a run is in progress.
	ErrAlreadyRunning = errors.New("rig: driver already running")

	// ErrNotRunning is returned by Tick before Run has completed startup.
	ErrNotRunning = errors.New("rig: driver not running")

	// ErrNilSubsystem is returned by Register when passed a nil subsystem.
	ErrNilSubsystem = errors.New("rig: subsystem is nil")
)
