// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu provides GPU device access for the runtime: injection of a
// host application's device and standalone device bootstrap for programs
// that own the GPU themselves.
package gpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// This interface is the primary integration point between rig and GPU
// frameworks like gogpu. The host application implements DeviceHandle
// and passes it to rig subsystems, allowing them to use the shared GPU
// device.
//
// Key principle: rig RECEIVES the device from the host, it does NOT
// create one (unless the program explicitly opts into Open). This
// enables shared GPU resources between rig and the host application and
// consistent resource management across the stack.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// rig-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for headless runs where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
