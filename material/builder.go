// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Builder errors.
var (
	// ErrNilDevice is returned by NewBuilder when passed a nil device.
	ErrNilDevice = errors.New("material: device is nil")

	// ErrNilMaterial is returned by Build when passed a nil material.
	ErrNilMaterial = errors.New("material: material is nil")

	// ErrNoShader is returned by Build when no descriptor layer supplies
	// shader source.
	ErrNoShader = errors.New("material: no shader source in descriptor stack")

	// ErrNoPasses is returned by Build when the material has no
	// finalized passes.
	ErrNoPasses = errors.New("material: material has no finalized passes")
)

// Compiled is the GPU-ready form of a material: one compiled pipeline
// state per pass. The underlying GPU objects are owned by the Builder's
// cache; call Builder.Close to release them.
type Compiled struct {
	// Material is the source material's name.
	Material string

	// Descriptor is the resolved attribute stack the passes were built
	// from.
	Descriptor Descriptor

	// Passes holds one compiled entry per finalized material pass, in
	// pass index order.
	Passes []*CompiledPass
}

// CompiledPass is the compiled pipeline state of one material pass.
type CompiledPass struct {
	// Index is the source pass index.
	Index int

	// Entries is the emitted binding layout: one entry per declared
	// resource, covering exactly the non-empty resource lists.
	Entries []gputypes.BindGroupLayoutEntry

	// Shader is the compiled shader module.
	Shader hal.ShaderModule

	// BindLayout is the bind group layout. Nil when the pass declares no
	// resources.
	BindLayout hal.BindGroupLayout

	// PipeLayout is the pipeline layout.
	PipeLayout hal.PipelineLayout

	// Pipeline is the compiled render pipeline.
	Pipeline hal.RenderPipeline
}

// Builder compiles materials against a wgpu HAL device.
//
// Builder is safe for concurrent use; compiled passes are cached by the
// hash of the resolved descriptor and the pass's resource lists, so
// rebuilding an unchanged material reuses the cached pipeline state.
type Builder struct {
	device hal.Device
	cache  *Cache
}

// NewBuilder creates a builder for the given device.
func NewBuilder(device hal.Device) (*Builder, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &Builder{
		device: device,
		cache:  NewCache(),
	}, nil
}

// Cache exposes the builder's pipeline cache for stats inspection.
func (b *Builder) Cache() *Cache { return b.cache }

// Close releases every GPU object the builder created. Compiled values
// returned by Build must not be used afterwards.
func (b *Builder) Close() {
	b.cache.Close(b.device)
}

// Build compiles every finalized pass of m into pipeline state.
func (b *Builder) Build(m *Material) (*Compiled, error) {
	if m == nil {
		return nil, ErrNilMaterial
	}
	d := m.Resolve()
	if d.ShaderWGSL == "" {
		return nil, ErrNoShader
	}
	passes := m.Passes()
	if len(passes) == 0 {
		return nil, ErrNoPasses
	}

	c := &Compiled{
		Material:   m.Name(),
		Descriptor: d,
		Passes:     make([]*CompiledPass, 0, len(passes)),
	}
	for _, p := range passes {
		cp, err := b.buildPass(m.Name(), d, p)
		if err != nil {
			return nil, fmt.Errorf("material: build %s pass %d: %w", m.Name(), p.Index, err)
		}
		c.Passes = append(c.Passes, cp)
	}
	return c, nil
}

// buildPass compiles one pass, going through the cache.
func (b *Builder) buildPass(name string, d Descriptor, p *Pass) (*CompiledPass, error) {
	key := passHash(d, p)
	return b.cache.GetOrCreate(key, func() (*CompiledPass, error) {
		return b.createPass(name, d, p)
	})
}

// createPass creates the GPU objects for one pass. On failure it
// releases everything created so far, in reverse creation order.
func (b *Builder) createPass(name string, d Descriptor, p *Pass) (cp *CompiledPass, err error) {
	label := fmt.Sprintf("%s/pass%d", name, p.Index)

	shader, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{WGSL: d.ShaderWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	defer func() {
		if err != nil {
			b.device.DestroyShaderModule(shader)
		}
	}()

	entries := bindGroupEntries(p)

	var bindLayout hal.BindGroupLayout
	var pipeLayouts []hal.BindGroupLayout
	if len(entries) > 0 {
		bindLayout, err = b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   label + "_bind_layout",
			Entries: entries,
		})
		if err != nil {
			return nil, fmt.Errorf("create bind group layout: %w", err)
		}
		pipeLayouts = []hal.BindGroupLayout{bindLayout}
	}
	defer func() {
		if err != nil && bindLayout != nil {
			b.device.DestroyBindGroupLayout(bindLayout)
		}
	}()

	pipeLayout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: pipeLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}
	defer func() {
		if err != nil {
			b.device.DestroyPipelineLayout(pipeLayout)
		}
	}()

	pipeline, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: d.VertexEntry,
			Buffers:    vertexBufferLayout(d),
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: d.FragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    d.Target,
					Blend:     blendState(d.Blend),
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: depthStencilState(d),
		Multisample: gputypes.MultisampleState{
			Count: d.Samples,
			Mask:  0xFFFFFFFF,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: cullMode(d.Cull),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}

	return &CompiledPass{
		Index:      p.Index,
		Entries:    entries,
		Shader:     shader,
		BindLayout: bindLayout,
		PipeLayout: pipeLayout,
		Pipeline:   pipeline,
	}, nil
}

// bindGroupEntries maps the pass's resource lists to a binding layout.
// Bindings are numbered densely: constant buffers first, then samplers,
// then textures. An empty resource list contributes no entries, so the
// layout's shape depends on which lists are non-empty.
func bindGroupEntries(p *Pass) []gputypes.BindGroupLayoutEntry {
	n := len(p.ConstantBuffers) + len(p.Samplers) + len(p.Textures)
	if n == 0 {
		return nil
	}
	entries := make([]gputypes.BindGroupLayoutEntry, 0, n)
	binding := uint32(0)

	for range p.ConstantBuffers {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		})
		binding++
	}
	for _, s := range p.Samplers {
		kind := gputypes.SamplerBindingTypeNonFiltering
		if s.Filtering {
			kind = gputypes.SamplerBindingTypeFiltering
		}
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: kind},
		})
		binding++
	}
	for range p.Textures {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		})
		binding++
	}
	return entries
}

// vertexBufferLayout maps the resolved vertex attributes to one
// vertex-stepped buffer layout.
func vertexBufferLayout(d Descriptor) []gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(d.Vertex))
	for i, a := range d.Vertex {
		attrs[i] = gputypes.VertexAttribute{
			Format:         a.Format,
			Offset:         a.Offset,
			ShaderLocation: a.Location,
		}
	}
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: d.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes:  attrs,
		},
	}
}

// blendState maps a BlendMode to wgpu blend state. Opaque passes carry
// no blend state at all.
func blendState(mode BlendMode) *gputypes.BlendState {
	if mode != BlendPremultiplied {
		return nil
	}
	blend := gputypes.BlendStatePremultiplied()
	return &blend
}

// depthStencilState emits depth state for passes that use the depth
// buffer. Stencil faces are keep-all: the material system never drives
// the stencil buffer, but the shared depth attachment carries one.
func depthStencilState(d Descriptor) *hal.DepthStencilState {
	if d.Depth != DepthReadOnly && d.Depth != DepthReadWrite {
		return nil
	}
	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth24PlusStencil8,
		DepthWriteEnabled: d.Depth == DepthReadWrite,
		DepthCompare:      d.DepthCompare,
		StencilFront:      keep,
		StencilBack:       keep,
		StencilReadMask:   0xFF,
		StencilWriteMask:  0xFF,
	}
}

// cullMode maps a CullFace to the wgpu cull mode.
func cullMode(c CullFace) gputypes.CullMode {
	switch c {
	case CullBack:
		return gputypes.CullModeBack
	case CullFront:
		return gputypes.CullModeFront
	default:
		return gputypes.CullModeNone
	}
}
