// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestResolveEmptyStackIsDefault(t *testing.T) {
	m := New("empty")
	got := m.Resolve()
	want := DefaultDescriptor()

	if got.VertexEntry != want.VertexEntry || got.FragmentEntry != want.FragmentEntry {
		t.Errorf("entry points = %q/%q, want %q/%q",
			got.VertexEntry, got.FragmentEntry, want.VertexEntry, want.FragmentEntry)
	}
	if got.Blend != want.Blend {
		t.Errorf("Blend = %v, want %v", got.Blend, want.Blend)
	}
	if got.Target != want.Target {
		t.Errorf("Target = %v, want %v", got.Target, want.Target)
	}
	if got.Samples != want.Samples {
		t.Errorf("Samples = %d, want %d", got.Samples, want.Samples)
	}
}

func TestResolveMostRecentWins(t *testing.T) {
	m := New("layered")
	m.Push(Descriptor{
		Label:      "base",
		ShaderWGSL: "base shader",
		Blend:      BlendOpaque,
		Cull:       CullBack,
	})
	m.Push(Descriptor{
		Label: "override",
		Blend: BlendPremultiplied,
	})

	got := m.Resolve()
	if got.Label != "override" {
		t.Errorf("Label = %q, want %q", got.Label, "override")
	}
	if got.Blend != BlendPremultiplied {
		t.Errorf("Blend = %v, want BlendPremultiplied", got.Blend)
	}
	// Attributes the top layer leaves unset fall through.
	if got.ShaderWGSL != "base shader" {
		t.Errorf("ShaderWGSL = %q, want inherited %q", got.ShaderWGSL, "base shader")
	}
	if got.Cull != CullBack {
		t.Errorf("Cull = %v, want inherited CullBack", got.Cull)
	}
	// Attributes no layer sets come from the default.
	if got.VertexEntry != "vs_main" {
		t.Errorf("VertexEntry = %q, want default %q", got.VertexEntry, "vs_main")
	}
}

func TestResolveDoesNotMutateStack(t *testing.T) {
	m := New("stable")
	m.Push(Descriptor{Label: "a"})
	m.Push(Descriptor{Label: "b"})

	first := m.Resolve()
	second := m.Resolve()
	if first.Label != second.Label || first.Blend != second.Blend {
		t.Error("repeated Resolve produced different results")
	}
	if m.Depth() != 2 {
		t.Errorf("Depth() = %d after Resolve, want 2", m.Depth())
	}
}

func TestPushPopDepth(t *testing.T) {
	m := New("stack")
	if m.Depth() != 0 {
		t.Fatalf("Depth() = %d, want 0", m.Depth())
	}
	m.Push(Descriptor{Label: "a"})
	m.Push(Descriptor{Label: "b"})
	if m.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", m.Depth())
	}
	if err := m.Pop(); err != nil {
		t.Fatalf("Pop() = %v", err)
	}
	if got := m.Resolve().Label; got != "a" {
		t.Errorf("Label after Pop = %q, want %q", got, "a")
	}
	if err := m.Pop(); err != nil {
		t.Fatalf("Pop() = %v", err)
	}
	if err := m.Pop(); !errors.Is(err, ErrEmptyStack) {
		t.Errorf("Pop() on empty stack = %v, want ErrEmptyStack", err)
	}
}

func TestVertexLayoutInheritsAsUnit(t *testing.T) {
	m := New("vertex")
	m.Push(Descriptor{
		Vertex: []VertexAttr{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, Location: 0},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 8, Location: 1},
		},
		VertexStride: 24,
	})
	m.Push(Descriptor{Label: "top"})

	got := m.Resolve()
	if len(got.Vertex) != 2 {
		t.Fatalf("len(Vertex) = %d, want 2", len(got.Vertex))
	}
	if got.VertexStride != 24 {
		t.Errorf("VertexStride = %d, want 24", got.VertexStride)
	}
}

func TestPassIndicesMonotonic(t *testing.T) {
	m := New("passes")
	for i := range 4 {
		if err := m.PushPass(); err != nil {
			t.Fatalf("PushPass(%d) = %v", i, err)
		}
		p, err := m.PopPass()
		if err != nil {
			t.Fatalf("PopPass(%d) = %v", i, err)
		}
		if p.Index != i {
			t.Errorf("pass index = %d, want %d", p.Index, i)
		}
	}
	if got := len(m.Passes()); got != 4 {
		t.Errorf("len(Passes()) = %d, want 4", got)
	}
}

func TestPassNesting(t *testing.T) {
	m := New("nesting")
	if err := m.PushPass(); err != nil {
		t.Fatalf("PushPass() = %v", err)
	}
	if err := m.PushPass(); !errors.Is(err, ErrPassOpen) {
		t.Errorf("nested PushPass() = %v, want ErrPassOpen", err)
	}
	if _, err := m.PopPass(); err != nil {
		t.Fatalf("PopPass() = %v", err)
	}
	if _, err := m.PopPass(); !errors.Is(err, ErrNoPassOpen) {
		t.Errorf("PopPass() with no open pass = %v, want ErrNoPassOpen", err)
	}
}

func TestResourceDeclarationsRequireOpenPass(t *testing.T) {
	m := New("closed")
	if err := m.AddConstantBuffer(ConstantBuffer{Name: "cb"}); !errors.Is(err, ErrNoPassOpen) {
		t.Errorf("AddConstantBuffer() = %v, want ErrNoPassOpen", err)
	}
	if err := m.AddSampler(SamplerRef{Name: "s"}); !errors.Is(err, ErrNoPassOpen) {
		t.Errorf("AddSampler() = %v, want ErrNoPassOpen", err)
	}
	if err := m.AddTexture(TextureRef{Name: "t"}); !errors.Is(err, ErrNoPassOpen) {
		t.Errorf("AddTexture() = %v, want ErrNoPassOpen", err)
	}
}

func TestTextureListClearedPerPass(t *testing.T) {
	m := New("textures")

	if err := m.PushPass(); err != nil {
		t.Fatal(err)
	}
	if err := m.AddConstantBuffer(ConstantBuffer{Name: "frame", Size: 64}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSampler(SamplerRef{Name: "linear", Filtering: true}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddTexture(TextureRef{Name: "albedo"}); err != nil {
		t.Fatal(err)
	}
	first, err := m.PopPass()
	if err != nil {
		t.Fatal(err)
	}

	if err := m.PushPass(); err != nil {
		t.Fatal(err)
	}
	second, err := m.PopPass()
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Textures) != 1 || first.Textures[0].Name != "albedo" {
		t.Errorf("first pass textures = %v, want [albedo]", first.Textures)
	}
	// Textures are per-pass and do not leak into the next pass.
	if len(second.Textures) != 0 {
		t.Errorf("second pass textures = %v, want none", second.Textures)
	}
	// Constant buffers and samplers carry over.
	if len(second.ConstantBuffers) != 1 || second.ConstantBuffers[0].Name != "frame" {
		t.Errorf("second pass constant buffers = %v, want [frame]", second.ConstantBuffers)
	}
	if len(second.Samplers) != 1 || second.Samplers[0].Name != "linear" {
		t.Errorf("second pass samplers = %v, want [linear]", second.Samplers)
	}
}

func TestPassSnapshotsAreIndependent(t *testing.T) {
	m := New("snapshot")
	if err := m.PushPass(); err != nil {
		t.Fatal(err)
	}
	if err := m.AddConstantBuffer(ConstantBuffer{Name: "a", Size: 16}); err != nil {
		t.Fatal(err)
	}
	first, err := m.PopPass()
	if err != nil {
		t.Fatal(err)
	}

	if err := m.PushPass(); err != nil {
		t.Fatal(err)
	}
	if err := m.AddConstantBuffer(ConstantBuffer{Name: "b", Size: 32}); err != nil {
		t.Fatal(err)
	}
	second, err := m.PopPass()
	if err != nil {
		t.Fatal(err)
	}

	// Adding to later passes must not alias into earlier snapshots.
	if len(first.ConstantBuffers) != 1 {
		t.Errorf("first pass constant buffers = %d, want 1", len(first.ConstantBuffers))
	}
	if len(second.ConstantBuffers) != 2 {
		t.Errorf("second pass constant buffers = %d, want 2", len(second.ConstantBuffers))
	}
}
