// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package headless provides a window host with no window: a fixed-rate
// pump for servers, tools, and tests. It registers itself as the
// "headless" host at low priority.
package headless

import (
	"sync"
	"time"

	"github.com/gogpu/rig/window"
)

// defaultTPS matches the pump rate of typical display hosts.
const defaultTPS = 60

// Host pumps ticks at a fixed rate without any window.
type Host struct {
	interval time.Duration
	quit     chan struct{}
	once     sync.Once
}

// New creates a headless host ticking opts.TicksPerSecond times per
// second (60 when zero). Title and dimensions are ignored.
func New(opts window.Options) (*Host, error) {
	tps := opts.TicksPerSecond
	if tps <= 0 {
		tps = defaultTPS
	}
	return &Host{
		interval: time.Second / time.Duration(tps),
		quit:     make(chan struct{}),
	}, nil
}

// Run pumps ticks at the configured rate until Exit is called or tick
// returns an error, which Run propagates.
func (h *Host) Run(tick func() error) error {
	t := time.NewTicker(h.interval)
	defer t.Stop()

	for {
		select {
		case <-h.quit:
			return nil
		case <-t.C:
			if err := tick(); err != nil {
				return err
			}
		}
	}
}

// Exit stops the pump. Safe to call from within a tick and idempotent.
func (h *Host) Exit() {
	h.once.Do(func() { close(h.quit) })
}

func init() {
	window.Register("headless", 10, func(opts window.Options) (window.Host, error) {
		return New(opts)
	}, nil)
}
