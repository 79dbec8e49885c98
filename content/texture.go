package content

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io/fs"

	// Registered decoders for the formats game content ships in.
	_ "image/jpeg"
	_ "image/png"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
)

// Texture is a decoded image ready for GPU upload: tightly packed RGBA
// pixels in row-major order, format TextureFormatRGBA8Unorm.
type Texture struct {
	// Path is the cleaned asset path the texture was loaded from.
	Path string

	// Width and Height are the pixel dimensions after any rescale.
	Width  int
	Height int

	// Format is the GPU pixel format of Pixels.
	Format gputypes.TextureFormat

	// Pixels holds Width*Height*4 bytes of non-premultiplied RGBA.
	Pixels []byte
}

// LoadTexture loads, decodes, and caches the image at name.
//
// PNG and JPEG are supported. Images exceeding the manager's maximum
// texture dimension are downscaled with Catmull-Rom resampling,
// preserving aspect ratio. Repeated loads of the same path return the
// cached texture.
func (m *Manager) LoadTexture(ctx context.Context, name string) (*Texture, error) {
	key, err := m.key(ctx, name)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	if t, ok := m.textures[key]; ok {
		m.mu.RUnlock()
		return t, nil
	}
	m.mu.RUnlock()

	data, err := fs.ReadFile(m.fsys, key)
	if err != nil {
		return nil, fmt.Errorf("content: read texture %s: %w", key, err)
	}
	src, kind, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("content: decode texture %s: %w", key, err)
	}

	rgba := toRGBA(src)
	if w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy(); w > m.maxDim || h > m.maxDim {
		rgba = downscale(rgba, m.maxDim)
		m.logger.Debug("content: texture downscaled",
			"path", key, "from", fmt.Sprintf("%dx%d", w, h),
			"to", fmt.Sprintf("%dx%d", rgba.Bounds().Dx(), rgba.Bounds().Dy()))
	}

	t := &Texture{
		Path:   key,
		Width:  rgba.Bounds().Dx(),
		Height: rgba.Bounds().Dy(),
		Format: gputypes.TextureFormatRGBA8Unorm,
		Pixels: rgba.Pix,
	}

	m.mu.Lock()
	// Another loader may have won the race; keep the first result so all
	// callers share one texture.
	if prev, ok := m.textures[key]; ok {
		m.mu.Unlock()
		return prev, nil
	}
	m.textures[key] = t
	m.mu.Unlock()

	m.logger.Debug("content: texture loaded", "path", key, "format", kind,
		"width", t.Width, "height", t.Height)
	return t, nil
}

// toRGBA converts any decoded image to a tightly packed *image.RGBA.
func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Stride == rgba.Bounds().Dx()*4 {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}

// downscale shrinks src so neither dimension exceeds max, preserving
// aspect ratio. Catmull-Rom gives the best quality of the x/image
// kernels and texture loading is not a hot path.
func downscale(src *image.RGBA, max int) *image.RGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	scale := float64(max) / float64(w)
	if h > w {
		scale = float64(max) / float64(h)
	}
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
