// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Open errors.
var (
	// ErrNoBackend is returned when the requested HAL backend is not
	// compiled in or not supported on this platform.
	ErrNoBackend = errors.New("gpu: backend not available")

	// ErrNoAdapter is returned when the backend exposes no usable GPU.
	ErrNoAdapter = errors.New("gpu: no GPU adapters found")
)

// Options configures standalone device creation.
type Options struct {
	// Backend selects the HAL backend. Default is Vulkan.
	Backend gputypes.Backend
}

// Device is a standalone HAL device owned by the caller. It is the
// fallback path when no host application provides a DeviceHandle.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	// AdapterName is the name of the selected GPU adapter.
	AdapterName string
}

// Open creates a standalone HAL device: it selects the backend,
// enumerates adapters preferring discrete then integrated GPUs, and
// opens a device with default features and limits.
func Open(opts Options) (*Device, error) {
	kind := opts.Backend
	if kind == 0 {
		kind = gputypes.BackendVulkan
	}

	backend, ok := hal.GetBackend(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoBackend, kind)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: open device: %w", err)
	}

	return &Device{
		instance:    instance,
		device:      openDev.Device,
		queue:       openDev.Queue,
		AdapterName: selected.Info.Name,
	}, nil
}

// HAL returns the underlying HAL device.
func (d *Device) HAL() hal.Device { return d.device }

// Queue returns the device's submission queue.
func (d *Device) Queue() hal.Queue { return d.queue }

// Close releases the device and instance. Safe to call more than once.
func (d *Device) Close() {
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.queue = nil
}
