// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestCacheGetOrCreate(t *testing.T) {
	c := NewCache()

	var created int32
	create := func() (*CompiledPass, error) {
		atomic.AddInt32(&created, 1)
		return &CompiledPass{Index: 7}, nil
	}

	first, err := c.GetOrCreate(42, create)
	if err != nil {
		t.Fatalf("GetOrCreate() = %v", err)
	}
	second, err := c.GetOrCreate(42, create)
	if err != nil {
		t.Fatalf("GetOrCreate() = %v", err)
	}

	if first != second {
		t.Error("second GetOrCreate returned a different pass")
	}
	if got := atomic.LoadInt32(&created); got != 1 {
		t.Errorf("create invoked %d times, want 1", got)
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d/%d, want 1 hit / 1 miss", hits, misses)
	}
}

func TestCacheCreateErrorNotCached(t *testing.T) {
	c := NewCache()
	boom := errors.New("create failed")

	if _, err := c.GetOrCreate(1, func() (*CompiledPass, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("GetOrCreate() = %v, want %v", err, boom)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after failed create, want 0", c.Len())
	}

	// A later successful create for the same key works.
	if _, err := c.GetOrCreate(1, func() (*CompiledPass, error) {
		return &CompiledPass{}, nil
	}); err != nil {
		t.Fatalf("GetOrCreate() retry = %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheConcurrentGetOrCreate(t *testing.T) {
	c := NewCache()

	var created int32
	var wg sync.WaitGroup
	const goroutines = 32

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetOrCreate(99, func() (*CompiledPass, error) {
				atomic.AddInt32(&created, 1)
				return &CompiledPass{}, nil
			})
			if err != nil {
				t.Errorf("GetOrCreate() = %v", err)
			}
		}()
	}
	wg.Wait()

	// Double-check locking admits exactly one creation per key.
	if got := atomic.LoadInt32(&created); got != 1 {
		t.Errorf("create invoked %d times, want 1", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheCloseNilDevice(t *testing.T) {
	c := NewCache()
	if _, err := c.GetOrCreate(5, func() (*CompiledPass, error) {
		return &CompiledPass{}, nil
	}); err != nil {
		t.Fatal(err)
	}

	// Close with a nil device still empties the cache.
	c.Close(nil)
	if c.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", c.Len())
	}
}

func TestPassHashDistinguishesDescriptors(t *testing.T) {
	base := DefaultDescriptor()
	base.ShaderWGSL = testShader
	p := &Pass{Index: 0}

	h1 := passHash(base, p)

	blended := base
	blended.Blend = BlendPremultiplied
	if passHash(blended, p) == h1 {
		t.Error("blend change did not change the hash")
	}

	retargeted := base
	retargeted.Target = gputypes.TextureFormatRGBA8Unorm
	if passHash(retargeted, p) == h1 {
		t.Error("target change did not change the hash")
	}

	if passHash(base, p) != h1 {
		t.Error("hash is not deterministic")
	}
}

func TestPassHashDistinguishesResources(t *testing.T) {
	d := DefaultDescriptor()
	d.ShaderWGSL = testShader

	empty := &Pass{Index: 0}
	withBuffer := &Pass{
		Index:           0,
		ConstantBuffers: []ConstantBuffer{{Name: "frame", Size: 64}},
	}
	withTexture := &Pass{
		Index:    0,
		Textures: []TextureRef{{Name: "albedo"}},
	}

	h0 := passHash(d, empty)
	h1 := passHash(d, withBuffer)
	h2 := passHash(d, withTexture)
	if h0 == h1 || h0 == h2 || h1 == h2 {
		t.Errorf("resource lists did not differentiate hashes: %d, %d, %d", h0, h1, h2)
	}
}
