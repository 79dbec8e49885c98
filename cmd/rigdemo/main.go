// Command rigdemo runs a minimal rig application: a window host pumping
// ticks into a driver with a spinner subsystem, and (when a GPU is
// available) a material compiled through the pipeline builder.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/rig"
	"github.com/gogpu/rig/gpu"
	"github.com/gogpu/rig/material"
	"github.com/gogpu/rig/window"

	// Window hosts register themselves.
	_ "github.com/gogpu/rig/window/ebiten"
	_ "github.com/gogpu/rig/window/headless"
)

const demoShader = `
struct Uniforms {
    transform: mat4x4<f32>,
};
@group(0) @binding(0) var<uniform> uniforms: Uniforms;

@vertex
fn vs_main(@location(0) position: vec2<f32>) -> @builtin(position) vec4<f32> {
    return uniforms.transform * vec4<f32>(position, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(0.9, 0.4, 0.1, 1.0);
}
`

func main() {
	var (
		host    = flag.String("host", "", "window host (empty = best available)")
		title   = flag.String("title", "rigdemo", "window title")
		width   = flag.Int("width", 800, "window width")
		height  = flag.Int("height", 600, "window height")
		frames  = flag.Int("frames", 0, "exit after N frames (0 = run until closed)")
		verbose = flag.Bool("v", false, "enable info logging")
	)
	flag.Parse()

	if *verbose {
		rig.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	opts := window.Options{Title: *title, Width: *width, Height: *height}
	var (
		w   window.Host
		err error
	)
	if *host != "" {
		w, err = window.NewByName(*host, opts)
	} else {
		w, err = window.New(opts)
	}
	if err != nil {
		log.Fatalf("create window host: %v", err)
	}

	d := rig.New(rig.WithWindow(w))

	if err := d.Register(&spinner{driver: d, limit: *frames}); err != nil {
		log.Fatalf("register spinner: %v", err)
	}
	if err := d.Register(&materialDemo{}); err != nil {
		log.Fatalf("register material demo: %v", err)
	}

	if err := d.Run(context.Background()); err != nil {
		log.Fatalf("run: %v", err)
	}
}

// spinner counts frames and exits the driver after the configured limit.
type spinner struct {
	rig.Base
	driver *rig.Driver
	limit  int
	frames int
}

func (s *spinner) Update(t rig.GameTime) error {
	s.frames++
	if s.frames%60 == 0 {
		rig.Logger().Info("rigdemo: running", "frames", s.frames, "total", t.Total)
	}
	if s.limit > 0 && s.frames >= s.limit {
		s.driver.Exit()
	}
	return nil
}

// materialDemo compiles a one-pass material on startup when a GPU is
// available, and reports the emitted binding layout.
type materialDemo struct {
	rig.Base
	device   *gpu.Device
	builder  *material.Builder
	compiled *material.Compiled
}

func (m *materialDemo) Initialize() error {
	dev, err := gpu.Open(gpu.Options{})
	if err != nil {
		rig.Logger().Warn("rigdemo: no GPU, material demo disabled", "error", err)
		return nil
	}
	m.device = dev

	b, err := material.NewBuilder(dev.HAL())
	if err != nil {
		return err
	}
	m.builder = b

	mat := material.New("demo")
	mat.Push(material.Descriptor{
		Label:        "demo_base",
		ShaderWGSL:   demoShader,
		Blend:        material.BlendPremultiplied,
		VertexStride: 8,
	})
	if err := mat.PushPass(); err != nil {
		return err
	}
	if err := mat.AddConstantBuffer(material.ConstantBuffer{Name: "uniforms", Size: 64}); err != nil {
		return err
	}
	if _, err := mat.PopPass(); err != nil {
		return err
	}

	compiled, err := b.Build(mat)
	if err != nil {
		return err
	}
	m.compiled = compiled

	rig.Logger().Info("rigdemo: material compiled",
		"adapter", dev.AdapterName,
		"passes", len(compiled.Passes),
		"bindings", len(compiled.Passes[0].Entries))
	return nil
}

func (m *materialDemo) Dispose() {
	if m.builder != nil {
		m.builder.Close()
	}
	if m.device != nil {
		m.device.Close()
	}
}
