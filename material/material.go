// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	"errors"
	"slices"
)

// Material errors.
var (
	// ErrEmptyStack is returned by Pop when no descriptor layer is left.
	ErrEmptyStack = errors.New("material: descriptor stack is empty")

	// ErrPassOpen is returned by PushPass when a pass is already open.
	ErrPassOpen = errors.New("material: a pass is already open")

	// ErrNoPassOpen is returned by PopPass and the resource-list methods
	// when no pass is open.
	ErrNoPassOpen = errors.New("material: no pass is open")
)

// Pass represents one shader permutation pass of a material, owned by
// the material's pass sequence. A pass is created by PushPass and
// finalized by PopPass; only finalized passes are compiled.
type Pass struct {
	// Index is the pass's position in the material's pass sequence.
	// Indices increase monotonically in finalization order.
	Index int

	// ConstantBuffers, Samplers, and Textures are the pass's GPU
	// resource lists, snapshot at finalization.
	ConstantBuffers []ConstantBuffer
	Samplers        []SamplerRef
	Textures        []TextureRef
}

// Material is a named, layered material description: a stack of
// Descriptors resolved most-recently-pushed-first, plus an ordered
// sequence of passes.
//
// Material is a build-time description and is not safe for concurrent
// mutation; build it on one goroutine, then hand it to a Builder.
type Material struct {
	name   string
	layers []Descriptor

	passes    []*Pass
	open      bool
	nextIndex int

	// Working resource lists. Constant buffers and samplers persist
	// across passes; the texture list is cleared every PopPass.
	constantBuffers []ConstantBuffer
	samplers        []SamplerRef
	textures        []TextureRef
}

// New creates an empty material with the given name.
func New(name string) *Material {
	return &Material{name: name}
}

// Name returns the material's name.
func (m *Material) Name() string { return m.name }

// Push adds a descriptor layer on top of the stack. Attributes the layer
// sets override lower layers; zero-valued attributes inherit.
func (m *Material) Push(d Descriptor) {
	m.layers = append(m.layers, d)
}

// Pop removes the most recently pushed descriptor layer.
func (m *Material) Pop() error {
	if len(m.layers) == 0 {
		return ErrEmptyStack
	}
	m.layers = m.layers[:len(m.layers)-1]
	return nil
}

// Depth returns the number of descriptor layers on the stack.
func (m *Material) Depth() int { return len(m.layers) }

// Resolve flattens the descriptor stack into one effective descriptor:
// for each attribute the most recently pushed layer that sets it wins,
// with DefaultDescriptor as the implicit bottom layer.
func (m *Material) Resolve() Descriptor {
	resolved := Descriptor{}
	for i := len(m.layers) - 1; i >= 0; i-- {
		resolved = resolved.merge(m.layers[i])
	}
	return resolved.merge(DefaultDescriptor())
}

// PushPass opens a new pass. Resource declarations made before the
// matching PopPass accumulate into it.
func (m *Material) PushPass() error {
	if m.open {
		return ErrPassOpen
	}
	m.open = true
	return nil
}

// PopPass finalizes the open pass: it snapshots the accumulated resource
// lists, assigns the next monotonically increasing pass index, appends
// the pass to the material's sequence, and clears the per-pass texture
// list. Constant buffer and sampler declarations carry over to the next
// pass.
func (m *Material) PopPass() (*Pass, error) {
	if !m.open {
		return nil, ErrNoPassOpen
	}
	p := &Pass{
		Index:           m.nextIndex,
		ConstantBuffers: slices.Clone(m.constantBuffers),
		Samplers:        slices.Clone(m.samplers),
		Textures:        slices.Clone(m.textures),
	}
	m.nextIndex++
	m.textures = m.textures[:0]
	m.passes = append(m.passes, p)
	m.open = false
	return p, nil
}

// AddConstantBuffer declares a uniform buffer binding for the open pass
// and all later passes.
func (m *Material) AddConstantBuffer(cb ConstantBuffer) error {
	if !m.open {
		return ErrNoPassOpen
	}
	m.constantBuffers = append(m.constantBuffers, cb)
	return nil
}

// AddSampler declares a sampler binding for the open pass and all later
// passes.
func (m *Material) AddSampler(s SamplerRef) error {
	if !m.open {
		return ErrNoPassOpen
	}
	m.samplers = append(m.samplers, s)
	return nil
}

// AddTexture declares a texture binding for the open pass only; the
// texture list resets when the pass is finalized.
func (m *Material) AddTexture(t TextureRef) error {
	if !m.open {
		return ErrNoPassOpen
	}
	m.textures = append(m.textures, t)
	return nil
}

// Passes returns the finalized pass sequence in index order.
func (m *Material) Passes() []*Pass { return m.passes }
