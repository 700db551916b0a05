package blossom

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Canvas is a drawing surface that particles are rendered onto. A Field
// owns one Canvas for its whole lifetime; an Overlay renders onto whatever
// Canvas it is handed each frame.
type Canvas interface {
	// Size returns the drawable area in pixels.
	Size() (width, height int)
	// Clear erases the whole surface.
	Clear()
	// Fill draws one shape.
	Fill(s Shape)
}

// Resizer is implemented by canvases whose backing store can be resized.
type Resizer interface {
	Resize(width, height int)
}

// ImageCanvas renders shapes into an offscreen Ebitengine image using
// fan-triangulated meshes. The petal gradient is carried by vertex colors:
// the hub vertex holds the fill color and the rim vertices hold the rim
// color, so the rasterizer interpolates a radial fade.
type ImageCanvas struct {
	img   *ebiten.Image
	verts []ebiten.Vertex
	inds  []uint16
	op    ebiten.DrawTrianglesOptions
}

// NewImageCanvas creates a canvas backed by a w×h image. It returns nil when
// either dimension is not positive, which callers treat as "no surface".
func NewImageCanvas(w, h int) *ImageCanvas {
	if w <= 0 || h <= 0 {
		return nil
	}
	c := &ImageCanvas{img: ebiten.NewImage(w, h)}
	c.op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	c.op.AntiAlias = true
	return c
}

// Image returns the backing image for compositing onto the screen.
func (c *ImageCanvas) Image() *ebiten.Image {
	return c.img
}

// Size returns the backing image dimensions. A nil canvas is 0×0.
func (c *ImageCanvas) Size() (int, int) {
	if c == nil || c.img == nil {
		return 0, 0
	}
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear erases the backing image.
func (c *ImageCanvas) Clear() {
	c.img.Clear()
}

// Resize reallocates the backing image when the dimensions change. Content
// is discarded, like resizing an HTML canvas.
func (c *ImageCanvas) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if cw, ch := c.Size(); cw == w && ch == h {
		return
	}
	c.img.Deallocate()
	c.img = ebiten.NewImage(w, h)
}

// Fill draws the shape, preceded by its glow halo when Glow > 0.
func (c *ImageCanvas) Fill(s Shape) {
	if s.Alpha <= 0 || s.Size <= 0 {
		return
	}
	hub, pts := Outline(s.Kind)
	if s.Glow > 0 {
		halo := s
		k := (s.Size + s.Glow) / s.Size
		halo.ScaleX *= k
		halo.ScaleY *= k
		core := s.Color.WithAlpha(s.Color.A * s.Alpha * 0.35)
		c.drawFan(halo.transform(), hub, pts, core, core.WithAlpha(0))
	}
	fill := s.Color.WithAlpha(s.Color.A * s.Alpha)
	rim := fill
	if s.Gradient {
		rim = rimColor.WithAlpha(rimColor.A * s.Alpha)
	}
	c.drawFan(s.transform(), hub, pts, fill, rim)
}

// FillRect draws an axis-aligned solid rectangle; used by hosts for
// backgrounds and placeholders.
func (c *ImageCanvas) FillRect(r Rect, clr Color) {
	fillRect(c.img, r, clr)
}

// drawFan builds hub + rim vertices and submits them as one triangle fan.
func (c *ImageCanvas) drawFan(m [6]float64, hub Vec2, pts []Vec2, hubColor, rimColor Color) {
	n := len(pts)
	if n < 3 {
		return
	}
	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
	c.verts = append(c.verts, vertex(apply(m, hub), hubColor))
	for _, p := range pts {
		c.verts = append(c.verts, vertex(apply(m, p), rimColor))
	}
	for i := 0; i < n; i++ {
		next := (i+1)%n + 1
		c.inds = append(c.inds, 0, uint16(i+1), uint16(next))
	}
	c.img.DrawTriangles(c.verts, c.inds, whitePixel(), &c.op)
}

// vertex builds a premultiplied, untextured vertex.
func vertex(p Vec2, clr Color) ebiten.Vertex {
	a := float32(clamp01(clr.A))
	return ebiten.Vertex{
		DstX:   float32(p.X),
		DstY:   float32(p.Y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(clamp01(clr.R)) * a,
		ColorG: float32(clamp01(clr.G)) * a,
		ColorB: float32(clamp01(clr.B)) * a,
		ColorA: a,
	}
}

// --- White pixel singleton (no sync.Once; rendering is single-threaded) ---

var whitePixelImage *ebiten.Image

// whitePixel returns a lazily-initialized 1x1 white image used as the
// texture for untextured meshes.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// fillRect draws a solid rectangle onto dst by scaling the white pixel.
func fillRect(dst *ebiten.Image, r Rect, clr Color) {
	if r.Width <= 0 || r.Height <= 0 || clr.A <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(clr.toRGBA())
	dst.DrawImage(whitePixel(), &op)
}
