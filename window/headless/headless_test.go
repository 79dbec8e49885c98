// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package headless

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/rig/window"
)

func TestRunPumpsTicks(t *testing.T) {
	h, err := New(window.Options{TicksPerSecond: 1000})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	var ticks atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- h.Run(func() error {
			if ticks.Add(1) >= 5 {
				h.Exit()
			}
			return nil
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after Exit")
	}
	if got := ticks.Load(); got < 5 {
		t.Errorf("ticks = %d, want >= 5", got)
	}
}

func TestRunPropagatesTickError(t *testing.T) {
	h, err := New(window.Options{TicksPerSecond: 1000})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	boom := errors.New("tick failed")
	done := make(chan error, 1)
	go func() {
		done <- h.Run(func() error { return boom })
	}()

	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Errorf("Run() = %v, want %v", err, boom)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after tick error")
	}
}

func TestExitIdempotent(t *testing.T) {
	h, err := New(window.Options{})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	// Multiple exits, including before Run, must not panic.
	h.Exit()
	h.Exit()

	if err := h.Run(func() error { return nil }); err != nil {
		t.Errorf("Run() after Exit = %v, want nil", err)
	}
}

func TestExitConcurrent(t *testing.T) {
	h, err := New(window.Options{})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	for range 8 {
		go h.Exit()
	}
	h.Exit()
}

func TestDefaultRate(t *testing.T) {
	h, err := New(window.Options{})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if h.interval != time.Second/60 {
		t.Errorf("interval = %v, want %v", h.interval, time.Second/60)
	}
}

func TestRegisteredGlobally(t *testing.T) {
	entry, ok := window.Get("headless")
	if !ok {
		t.Fatal("headless host is not registered")
	}
	if entry.Priority != 10 {
		t.Errorf("Priority = %d, want 10", entry.Priority)
	}
	if !entry.Available() {
		t.Error("headless host reports unavailable")
	}
}
