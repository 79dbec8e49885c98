// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	"encoding/binary"
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/gogpu/wgpu/hal"
)

// Cache stores compiled passes indexed by descriptor hash.
//
// Pipeline creation is expensive because it involves shader compilation
// and validation, so the builder consults the cache before creating GPU
// objects.
//
// Thread safety: Cache is safe for concurrent use. It uses RWMutex with
// double-check locking for efficient reads and safe writes.
type Cache struct {
	// mu protects passes.
	mu sync.RWMutex

	// passes stores compiled passes indexed by pass hash.
	passes map[uint64]*CompiledPass

	// hits counts cache hits (atomic for lock-free reads).
	hits uint64

	// misses counts cache misses (atomic for lock-free reads).
	misses uint64
}

// NewCache creates an empty pass cache.
func NewCache() *Cache {
	return &Cache{
		passes: make(map[uint64]*CompiledPass),
	}
}

// GetOrCreate returns the cached pass for key, or invokes create and
// caches the result.
//
// This implements the "get or create" pattern with double-check locking:
//  1. Fast path: RLock, check cache, return if found
//  2. Slow path: Lock, double-check, create if needed
func (c *Cache) GetOrCreate(key uint64, create func() (*CompiledPass, error)) (*CompiledPass, error) {
	// Fast path: read lock
	c.mu.RLock()
	if cp, ok := c.passes[key]; ok {
		c.mu.RUnlock()
		atomic.AddUint64(&c.hits, 1)
		return cp, nil
	}
	c.mu.RUnlock()

	// Slow path: write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()

	if cp, ok := c.passes[key]; ok {
		atomic.AddUint64(&c.hits, 1)
		return cp, nil
	}

	cp, err := create()
	if err != nil {
		return nil, err
	}
	c.passes[key] = cp
	atomic.AddUint64(&c.misses, 1)
	return cp, nil
}

// Stats returns the cache hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}

// Len returns the number of cached passes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.passes)
}

// Close releases every cached GPU object, in reverse creation order per
// pass, and empties the cache.
func (c *Cache) Close(device hal.Device) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if device != nil {
		for _, cp := range c.passes {
			if cp.Pipeline != nil {
				device.DestroyRenderPipeline(cp.Pipeline)
			}
			if cp.PipeLayout != nil {
				device.DestroyPipelineLayout(cp.PipeLayout)
			}
			if cp.BindLayout != nil {
				device.DestroyBindGroupLayout(cp.BindLayout)
			}
			if cp.Shader != nil {
				device.DestroyShaderModule(cp.Shader)
			}
		}
	}
	c.passes = make(map[uint64]*CompiledPass)
}

// passHash fingerprints the resolved descriptor and the pass's resource
// lists. Two passes with the same hash compile to identical pipeline
// state.
func passHash(d Descriptor, p *Pass) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeInt := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	writeStr := func(s string) {
		writeInt(uint64(len(s)))
		_, _ = h.Write([]byte(s))
	}

	writeStr(d.ShaderWGSL)
	writeStr(d.VertexEntry)
	writeStr(d.FragmentEntry)
	writeInt(uint64(d.Blend))
	writeInt(uint64(d.Depth))
	writeInt(uint64(d.DepthCompare))
	writeInt(uint64(d.Cull))
	writeInt(uint64(d.Target))
	writeInt(uint64(d.Samples))
	writeInt(d.VertexStride)
	for _, a := range d.Vertex {
		writeInt(uint64(a.Format))
		writeInt(a.Offset)
		writeInt(uint64(a.Location))
	}

	// Resource lists: binding layout shape depends on counts and kinds,
	// not names, but names feed the hash so relabeled materials do not
	// alias in debug captures.
	writeInt(uint64(len(p.ConstantBuffers)))
	for _, cb := range p.ConstantBuffers {
		writeStr(cb.Name)
		writeInt(cb.Size)
	}
	writeInt(uint64(len(p.Samplers)))
	for _, s := range p.Samplers {
		writeStr(s.Name)
		if s.Filtering {
			writeInt(1)
		} else {
			writeInt(0)
		}
	}
	writeInt(uint64(len(p.Textures)))
	for _, t := range p.Textures {
		writeStr(t.Name)
		writeStr(t.Path)
	}

	return h.Sum64()
}
