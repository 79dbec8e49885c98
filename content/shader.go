package content

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/gogpu/naga"
)

// Shader is a loaded WGSL shader together with its SPIR-V compilation.
// Compiling at load time validates the source before any device sees it,
// and gives backends that prefer SPIR-V a ready-made module.
type Shader struct {
	// Path is the cleaned asset path the shader was loaded from.
	Path string

	// WGSL is the shader source as read from the filesystem.
	WGSL string

	// SPIRV is the compiled shader as little-endian 32-bit words.
	SPIRV []uint32
}

// LoadShader loads, compiles, and caches the WGSL shader at name.
// A shader that fails to compile never enters the cache, so a fixed
// asset can be reloaded under the same path after Evict.
func (m *Manager) LoadShader(ctx context.Context, name string) (*Shader, error) {
	key, err := m.key(ctx, name)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	if s, ok := m.shaders[key]; ok {
		m.mu.RUnlock()
		return s, nil
	}
	m.mu.RUnlock()

	data, err := fs.ReadFile(m.fsys, key)
	if err != nil {
		return nil, fmt.Errorf("content: read shader %s: %w", key, err)
	}

	source := string(data)
	words, err := compileWGSL(source)
	if err != nil {
		return nil, fmt.Errorf("content: compile shader %s: %w", key, err)
	}

	s := &Shader{
		Path:  key,
		WGSL:  source,
		SPIRV: words,
	}

	m.mu.Lock()
	if prev, ok := m.shaders[key]; ok {
		m.mu.Unlock()
		return prev, nil
	}
	m.shaders[key] = s
	m.mu.Unlock()

	m.logger.Debug("content: shader compiled", "path", key, "words", len(words))
	return s, nil
}

// compileWGSL compiles WGSL source to SPIR-V words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
