// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package material turns declarative material descriptions into
// GPU-bindable resource layouts and compiled pipeline descriptors.
//
// A Material is a stack of Descriptors: pushing a layer overrides the
// attributes it sets and inherits the rest, so a "red unlit" material can
// layer a color tweak over a shared base without copying it. Each shader
// permutation of the material is a Pass, opened with PushPass and
// finalized with PopPass; resource declarations (constant buffers,
// samplers, textures) accumulate into the open pass.
//
// A Builder compiles the material against a wgpu HAL device: per pass it
// emits a bind group layout whose entries cover exactly the non-empty
// resource lists, a pipeline layout, and a render pipeline built from the
// resolved attribute stack. Compiled pipelines are cached by descriptor
// hash, so rebuilding a material with unchanged state is cheap.
package material
