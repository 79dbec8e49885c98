package content

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"testing/fstest"
)

// pngFile encodes a solid-color RGBA image for test fixtures.
func pngFile(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x7F
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestNewManagerNilFS(t *testing.T) {
	if _, err := NewManager(nil); !errors.Is(err, ErrNilFS) {
		t.Errorf("NewManager(nil) = %v, want ErrNilFS", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	m, err := NewManager(fstest.MapFS{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.LoadTexture(context.Background(), ""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("LoadTexture(\"\") = %v, want ErrEmptyPath", err)
	}
	if _, err := m.LoadShader(context.Background(), ""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("LoadShader(\"\") = %v, want ErrEmptyPath", err)
	}
}

func TestLoadCanceledContext(t *testing.T) {
	fsys := fstest.MapFS{
		"tex.png": {Data: pngFile(t, 2, 2)},
	}
	m, err := NewManager(fsys)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.LoadTexture(ctx, "tex.png"); !errors.Is(err, context.Canceled) {
		t.Errorf("LoadTexture(canceled) = %v, want context.Canceled", err)
	}
}

func TestPathsAreCleaned(t *testing.T) {
	fsys := fstest.MapFS{
		"sub/tex.png": {Data: pngFile(t, 2, 2)},
	}
	m, err := NewManager(fsys)
	if err != nil {
		t.Fatal(err)
	}

	a, err := m.LoadTexture(context.Background(), "sub/tex.png")
	if err != nil {
		t.Fatalf("LoadTexture() = %v", err)
	}
	b, err := m.LoadTexture(context.Background(), "sub/./tex.png")
	if err != nil {
		t.Fatalf("LoadTexture(uncleaned) = %v", err)
	}
	if a != b {
		t.Error("cleaned and uncleaned paths loaded distinct textures")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestEvict(t *testing.T) {
	fsys := fstest.MapFS{
		"tex.png": {Data: pngFile(t, 2, 2)},
	}
	m, err := NewManager(fsys)
	if err != nil {
		t.Fatal(err)
	}

	first, err := m.LoadTexture(context.Background(), "tex.png")
	if err != nil {
		t.Fatal(err)
	}
	m.Evict("tex.png")
	if m.Len() != 0 {
		t.Errorf("Len() after Evict = %d, want 0", m.Len())
	}

	second, err := m.LoadTexture(context.Background(), "tex.png")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("reload after Evict returned the evicted texture")
	}

	// Evicting an unknown path is a no-op.
	m.Evict("missing.png")
}
