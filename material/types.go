// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import "github.com/gogpu/gputypes"

// BlendMode selects the color blend state of a pass.
type BlendMode int

const (
	// BlendInherit defers to a lower descriptor layer.
	BlendInherit BlendMode = iota

	// BlendOpaque disables blending; fragments overwrite the target.
	BlendOpaque

	// BlendPremultiplied composites with premultiplied alpha.
	BlendPremultiplied
)

// DepthMode selects depth buffer usage.
type DepthMode int

const (
	// DepthInherit defers to a lower descriptor layer.
	DepthInherit DepthMode = iota

	// DepthDisabled renders without a depth attachment.
	DepthDisabled

	// DepthReadOnly tests against the depth buffer without writing it.
	DepthReadOnly

	// DepthReadWrite tests against and writes the depth buffer.
	DepthReadWrite
)

// CullFace selects which triangle faces are culled.
type CullFace int

const (
	// CullInherit defers to a lower descriptor layer.
	CullInherit CullFace = iota

	// CullNone draws both faces.
	CullNone

	// CullBack culls back faces.
	CullBack

	// CullFront culls front faces.
	CullFront
)

// VertexAttr describes one vertex attribute consumed by the shader.
type VertexAttr struct {
	// Format is the attribute's data format.
	Format gputypes.VertexFormat

	// Offset is the byte offset within the vertex.
	Offset uint64

	// Location is the shader input location.
	Location uint32
}

// ConstantBuffer declares a uniform buffer binding of a pass.
// Constant buffers are visible to both vertex and fragment stages.
type ConstantBuffer struct {
	// Name labels the binding for debugging.
	Name string

	// Size is the buffer size in bytes.
	Size uint64
}

// SamplerRef declares a sampler binding of a pass, visible to the
// fragment stage.
type SamplerRef struct {
	// Name labels the binding for debugging.
	Name string

	// Filtering selects a filtering sampler binding. Non-filtering
	// samplers pair with unfilterable texture formats.
	Filtering bool
}

// TextureRef declares a sampled 2D texture binding of a pass, visible to
// the fragment stage.
type TextureRef struct {
	// Name labels the binding for debugging.
	Name string

	// Path optionally names the content asset backing the texture.
	Path string
}

// Descriptor is one layer of material attributes. The zero value of
// every field means "inherit from the layer below"; the bottom of every
// resolution is DefaultDescriptor.
type Descriptor struct {
	// Label names the layer in debug output and GPU object labels.
	Label string

	// ShaderWGSL is the WGSL source compiled for the material's passes.
	ShaderWGSL string

	// VertexEntry and FragmentEntry are the shader entry points.
	VertexEntry   string
	FragmentEntry string

	// Blend selects the color blend state.
	Blend BlendMode

	// Depth selects depth buffer usage. Passes with depth enabled render
	// against a Depth24PlusStencil8 attachment.
	Depth DepthMode

	// DepthCompare is the depth test function used when Depth is
	// DepthReadOnly or DepthReadWrite. Zero inherits.
	DepthCompare gputypes.CompareFunction

	// Cull selects face culling.
	Cull CullFace

	// Target is the color attachment format. TextureFormatUndefined
	// inherits.
	Target gputypes.TextureFormat

	// Samples is the MSAA sample count. Zero inherits.
	Samples uint32

	// Vertex describes the vertex buffer consumed by the shader; nil
	// inherits. VertexStride is the byte stride of that buffer.
	Vertex       []VertexAttr
	VertexStride uint64
}

// DefaultDescriptor is the implicit bottom layer of every material:
// opaque, no depth, no culling, 1x sampling, BGRA8 target, vs_main and
// fs_main entry points, and a single float32x2 position attribute.
func DefaultDescriptor() Descriptor {
	return Descriptor{
		Label:         "default",
		VertexEntry:   "vs_main",
		FragmentEntry: "fs_main",
		Blend:         BlendOpaque,
		Depth:         DepthDisabled,
		DepthCompare:  gputypes.CompareFunctionAlways,
		Cull:          CullNone,
		Target:        gputypes.TextureFormatBGRA8Unorm,
		Samples:       1,
		Vertex: []VertexAttr{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, Location: 0},
		},
		VertexStride: 8,
	}
}

// merge fills d's unset attributes from the lower layer.
func (d Descriptor) merge(lower Descriptor) Descriptor {
	if d.Label == "" {
		d.Label = lower.Label
	}
	if d.ShaderWGSL == "" {
		d.ShaderWGSL = lower.ShaderWGSL
	}
	if d.VertexEntry == "" {
		d.VertexEntry = lower.VertexEntry
	}
	if d.FragmentEntry == "" {
		d.FragmentEntry = lower.FragmentEntry
	}
	if d.Blend == BlendInherit {
		d.Blend = lower.Blend
	}
	if d.Depth == DepthInherit {
		d.Depth = lower.Depth
	}
	if d.DepthCompare == 0 {
		d.DepthCompare = lower.DepthCompare
	}
	if d.Cull == CullInherit {
		d.Cull = lower.Cull
	}
	if d.Target == gputypes.TextureFormatUndefined {
		d.Target = lower.Target
	}
	if d.Samples == 0 {
		d.Samples = lower.Samples
	}
	if d.Vertex == nil {
		d.Vertex = lower.Vertex
		d.VertexStride = lower.VertexStride
	}
	return d
}
