// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window manages pluggable window hosts: the external event
// sources that pump ticks into a rig driver.
//
// Hosts register themselves by name and priority, so third-party hosts
// can plug in without changes to the core library. The built-in headless
// host (see window/headless) registers at low priority; a windowed host
// like window/ebiten registers above it and wins automatic selection on
// desktop builds.
package window

import (
	"errors"
	"sort"
	"sync"
)

// Host is a window event source. Run blocks pumping host events and
// invokes tick once per frame; Exit asks the pump to stop producing
// ticks and must be idempotent and callable from within a tick.
//
// Host matches the rig.Window interface, so any Host can be passed to
// rig.WithWindow directly.
type Host interface {
	Run(tick func() error) error
	Exit()
}

// Options configures host creation.
type Options struct {
	// Title is the window title, if the host shows a window.
	Title string

	// Width and Height are the window dimensions in pixels.
	Width  int
	Height int

	// TicksPerSecond is the pump rate. Zero means the host default
	// (typically 60).
	TicksPerSecond int
}

// HostFactory creates a new Host with the given options.
// Implementations should validate options and return descriptive errors.
type HostFactory func(opts Options) (Host, error)

// RegistryEntry represents a registered window host.
type RegistryEntry struct {
	// Name is the unique identifier for this host.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: native windowed hosts
	//   - 10: headless hosts
	Priority int

	// Factory creates host instances.
	Factory HostFactory

	// Available reports if the host is usable on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered window hosts.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and New.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a host to the global registry.
//
// If available is nil, the host is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory HostFactory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a host from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered host names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns names of all available hosts sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns information about a specific host.
func Get(name string) (*RegistryEntry, bool) {
	return globalRegistry.Get(name)
}

// New creates a host using the best available backend.
func New(opts Options) (Host, error) {
	return globalRegistry.New(opts)
}

// NewByName creates a host using a specific named backend.
func NewByName(name string, opts Options) (Host, error) {
	return globalRegistry.NewByName(name, opts)
}

// Register adds a host to this registry.
func (r *Registry) Register(name string, priority int, factory HostFactory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a host from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered host names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available hosts sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns information about a specific host.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent modification
	entryCopy := *entry
	return &entryCopy, true
}

// New creates a host using the best available backend, trying each
// available host in priority order.
func (r *Registry) New(opts Options) (Host, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoHostAvailable
	}

	var lastErr error
	for _, name := range available {
		h, err := r.NewByName(name, opts)
		if err == nil {
			return h, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoHostAvailable
}

// NewByName creates a host using a specific backend.
func (r *Registry) NewByName(name string, opts Options) (Host, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &HostNotFoundError{Name: name}
	}

	if !entry.Available() {
		return nil, &HostUnavailableError{Name: name}
	}

	return entry.Factory(opts)
}

// sortedNames returns host names sorted by priority (highest first).
// If onlyAvailable is true, filters to available hosts only.
// Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Errors.
var (
	// ErrNoHostAvailable is returned when no window hosts are registered
	// or available on the current system.
	ErrNoHostAvailable = errors.New("window: no host available")
)

// HostNotFoundError indicates a named host is not registered.
type HostNotFoundError struct {
	Name string
}

func (e *HostNotFoundError) Error() string {
	return "window: host not found: " + e.Name
}

// HostUnavailableError indicates a host exists but is not available.
type HostUnavailableError struct {
	Name string
}

func (e *HostUnavailableError) Error() string {
	return "window: host unavailable: " + e.Name
}
