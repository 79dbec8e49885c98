// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ebiten provides a desktop window host backed by Ebitengine.
// Its game loop pumps one tick per frame into the driver. The host
// registers itself as the "ebiten" host at windowed priority.
package ebiten

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/rig/window"
)

const defaultTPS = 60

// Host adapts the Ebitengine game loop to the window.Host interface.
type Host struct {
	opts    window.Options
	exiting atomic.Bool
}

// New creates an ebiten-backed host. The window is not created until Run.
func New(opts window.Options) (*Host, error) {
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.TicksPerSecond <= 0 {
		opts.TicksPerSecond = defaultTPS
	}
	return &Host{opts: opts}, nil
}

// Run opens the window and blocks pumping events, invoking tick once per
// frame. It returns when Exit is called, the user closes the window, or
// tick returns an error.
func (h *Host) Run(tick func() error) error {
	ebiten.SetWindowTitle(h.opts.Title)
	ebiten.SetWindowSize(h.opts.Width, h.opts.Height)
	ebiten.SetTPS(h.opts.TicksPerSecond)
	return ebiten.RunGame(&game{host: h, tick: tick})
}

// Exit asks the game loop to stop after the current frame. Idempotent
// and safe to call from within a tick or another goroutine.
func (h *Host) Exit() {
	h.exiting.Store(true)
}

// game implements ebiten.Game, forwarding Update to the driver tick.
type game struct {
	host *Host
	tick func() error
}

func (g *game) Update() error {
	if g.host.exiting.Load() {
		return ebiten.Termination
	}
	if err := g.tick(); err != nil {
		return err
	}
	if g.host.exiting.Load() {
		return ebiten.Termination
	}
	return nil
}

// Draw is a no-op: subsystems render during the driver's draw phase, so
// the host has nothing of its own to present.
func (g *game) Draw(screen *ebiten.Image) {}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.host.opts.Width, g.host.opts.Height
}

func init() {
	window.Register("ebiten", 100, func(opts window.Options) (window.Host, error) {
		return New(opts)
	}, nil)
}
