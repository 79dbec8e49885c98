// Package content loads and caches game assets: textures decoded into
// GPU-uploadable pixel data and WGSL shaders validated and compiled to
// SPIR-V.
//
// A Manager reads assets from an fs.FS, so content can come from a
// directory (os.DirFS), an embedded filesystem (embed.FS), or a test
// fixture (fstest.MapFS). Loaded assets are cached by cleaned path;
// loading the same path twice returns the same asset.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sync"
)

// Manager errors.
var (
	// ErrNilFS is returned by NewManager when passed a nil filesystem.
	ErrNilFS = errors.New("content: filesystem is nil")

	// ErrEmptyPath is returned when an asset path is empty.
	ErrEmptyPath = errors.New("content: asset path is empty")
)

// Manager loads assets from a filesystem and caches the results.
//
// Manager is safe for concurrent use: the driver fans out one load per
// subsystem during startup, and all of them may share one Manager.
type Manager struct {
	fsys   fs.FS
	maxDim int
	logger *slog.Logger

	mu       sync.RWMutex
	textures map[string]*Texture
	shaders  map[string]*Shader
}

// ManagerOption configures a Manager during creation.
type ManagerOption func(*Manager)

// WithMaxTextureDimension caps decoded texture dimensions. Textures
// larger than max on either axis are rescaled (preserving aspect ratio)
// before caching. The default is 8192, matching common GPU limits.
func WithMaxTextureDimension(max int) ManagerOption {
	return func(m *Manager) {
		if max > 0 {
			m.maxDim = max
		}
	}
}

// WithLogger sets the logger used by the manager. The default discards
// all output.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// defaultMaxTextureDimension matches the guaranteed-supported texture
// size of the WebGPU default limits.
const defaultMaxTextureDimension = 8192

// NewManager creates a manager reading assets from fsys.
func NewManager(fsys fs.FS, opts ...ManagerOption) (*Manager, error) {
	if fsys == nil {
		return nil, ErrNilFS
	}
	m := &Manager{
		fsys:     fsys,
		maxDim:   defaultMaxTextureDimension,
		logger:   slog.New(discardHandler{}),
		textures: make(map[string]*Texture),
		shaders:  make(map[string]*Shader),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Len returns the number of cached assets.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.textures) + len(m.shaders)
}

// Evict removes the asset at name from the cache. It is a no-op when the
// asset was never loaded.
func (m *Manager) Evict(name string) {
	key := path.Clean(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.textures, key)
	delete(m.shaders, key)
}

// key validates and normalizes an asset path.
func (m *Manager) key(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("content: load %s: %w", name, err)
	}
	return path.Clean(name), nil
}

// discardHandler drops all log records. Enabled returns false so callers
// skip formatting entirely.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
