// Package ggsurface provides a hedgerow Surface that renders with the gogpu/gg
// software 2D context. It needs no window or GPU, which makes it suitable
// for headless rendering, golden images and server-side thumbnails.
package ggsurface

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"reflect"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/hedgerow"
)

// pendingArc is a circle appended to the path, kept with the transform in
// effect when Arc was called.
type pendingArc struct {
	m       gg.Matrix
	x, y, r float64
}

// layer is an offscreen context that receives drawing inside a circular clip.
type layer struct {
	dc   *gg.Context
	mask image.Image
}

type state struct {
	m      gg.Matrix
	alpha  float64
	layers int // clip layers opened at this save level
}

// Surface draws onto a gg.Context.
//
// Transform and global alpha are tracked in a state stack and applied to the
// context before every draw. Each Clip opens an offscreen layer; the matching
// Restore masks the layer with the clip circle and composites it onto the
// context underneath.
//
// Text follows the translation and scale of the current transform but is
// drawn axis-aligned. Images are placed by gg's DrawImageEx under the current
// transform.
type Surface struct {
	base   *gg.Context
	layers []layer
	state  state
	stack  []state
	path   []pendingArc

	font  *text.FontSource
	faces map[float64]text.Face
	cache map[image.Image]*gg.ImageBuf
}

// New creates a w×h surface with a transparent background and the Go Regular
// font for text.
func New(w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("ggsurface: invalid size %dx%d", w, h)
	}
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("ggsurface: load default font: %w", err)
	}
	return &Surface{
		base:  gg.NewContext(w, h),
		state: state{m: gg.Identity(), alpha: 1},
		font:  src,
		faces: make(map[float64]text.Face),
		cache: make(map[image.Image]*gg.ImageBuf),
	}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.base.Width() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.base.Height() }

// Image returns a copy of the rendered pixels.
func (s *Surface) Image() image.Image {
	return s.base.Image()
}

// SavePNG writes the rendered pixels to path.
func (s *Surface) SavePNG(path string) error {
	return s.base.SavePNG(path)
}

// Clear resets the pixels to transparent and the state to identity. Saved
// state left over from a previous frame is discarded.
func (s *Surface) Clear() {
	if n := len(s.stack); n > 0 {
		hedgerow.Logger().Warn("ggsurface: discarding saved state", "depth", n)
	}
	for _, l := range s.layers {
		_ = l.dc.Close()
	}
	s.layers = s.layers[:0]
	s.stack = s.stack[:0]
	s.path = s.path[:0]
	s.state = state{m: gg.Identity(), alpha: 1}
	s.base.Clear()
}

// Close releases the underlying context.
func (s *Surface) Close() error {
	for _, l := range s.layers {
		_ = l.dc.Close()
	}
	s.layers = nil
	return s.base.Close()
}

// Depth returns the current save depth.
func (s *Surface) Depth() int {
	return len(s.stack)
}

// CurrentTransform returns the current transform.
func (s *Surface) CurrentTransform() hedgerow.Affine {
	m := s.state.m
	return hedgerow.Affine{m.A, m.D, m.B, m.E, m.C, m.F}
}

func (s *Surface) target() *gg.Context {
	if n := len(s.layers); n > 0 {
		return s.layers[n-1].dc
	}
	return s.base
}

func (s *Surface) Save() {
	s.stack = append(s.stack, s.state)
	s.state.layers = 0
}

func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	for i := 0; i < s.state.layers; i++ {
		s.popLayer()
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Surface) Translate(dx, dy float64) {
	s.state.m = s.state.m.Multiply(gg.Translate(dx, dy))
}

func (s *Surface) Rotate(angle float64) {
	s.state.m = s.state.m.Multiply(gg.Rotate(angle))
}

func (s *Surface) SetGlobalAlpha(alpha float64) {
	s.state.alpha = math.Max(0, math.Min(1, alpha))
}

func (s *Surface) BeginPath() {
	s.path = s.path[:0]
}

// Arc appends a full circle to the path. Partial arcs are treated as full
// circles.
func (s *Surface) Arc(x, y, radius, _, _ float64) {
	s.path = append(s.path, pendingArc{m: s.state.m, x: x, y: y, r: radius})
}

func (s *Surface) Clip() {
	w, h := s.base.Width(), s.base.Height()
	for _, a := range s.path {
		mask := gg.NewContext(w, h)
		mask.SetTransform(a.m)
		mask.DrawCircle(a.x, a.y, a.r)
		mask.SetRGBA(1, 1, 1, 1)
		if err := mask.Fill(); err != nil {
			hedgerow.Logger().Warn("ggsurface: clip mask", "error", err)
		}
		s.layers = append(s.layers, layer{dc: gg.NewContext(w, h), mask: mask.Image()})
		_ = mask.Close()
		s.state.layers++
	}
	s.path = s.path[:0]
}

// popLayer composites the top layer through its mask onto the context below.
func (s *Surface) popLayer() {
	l := s.layers[len(s.layers)-1]
	s.layers = s.layers[:len(s.layers)-1]

	src := l.dc.Image()
	out := image.NewRGBA(src.Bounds())
	draw.DrawMask(out, out.Bounds(), src, image.Point{}, l.mask, image.Point{}, draw.Src)
	_ = l.dc.Close()

	dst := s.target()
	dst.SetTransform(gg.Identity())
	dst.DrawImageEx(gg.ImageBufFromImage(out), gg.DrawImageOptions{Opacity: 1})
}

// FillRect fills a rectangle in the current frame.
func (s *Surface) FillRect(x, y, w, h float64, c hedgerow.Color) {
	if s.state.alpha == 0 || c.A == 0 {
		return
	}
	dc := s.target()
	dc.SetTransform(s.state.m)
	dc.DrawRectangle(x, y, w, h)
	dc.SetRGBA(c.R, c.G, c.B, c.A*s.state.alpha)
	if err := dc.Fill(); err != nil {
		hedgerow.Logger().Warn("ggsurface: fill", "error", err)
	}
}

// DrawImage draws img stretched to (w, h).
func (s *Surface) DrawImage(img image.Image, x, y, w, h float64) {
	// DrawImageEx treats a zero opacity as fully opaque.
	if s.state.alpha == 0 {
		return
	}
	var buf *gg.ImageBuf
	if reflect.TypeOf(img).Comparable() {
		var ok bool
		if buf, ok = s.cache[img]; !ok {
			buf = gg.ImageBufFromImage(img)
			s.cache[img] = buf
		}
	} else {
		buf = gg.ImageBufFromImage(img)
	}
	dc := s.target()
	dc.SetTransform(s.state.m)
	dc.DrawImageEx(buf, gg.DrawImageOptions{
		X:         x,
		Y:         y,
		DstWidth:  w,
		DstHeight: h,
		Opacity:   s.state.alpha,
	})
}

func (s *Surface) face(size float64) text.Face {
	f, ok := s.faces[size]
	if !ok {
		f = s.font.Face(size)
		s.faces[size] = f
	}
	return f
}

// DrawText draws str with its vertical middle at y.
func (s *Surface) DrawText(str string, x, y, size float64, c hedgerow.Color, align hedgerow.TextAlign) {
	if s.state.alpha == 0 || size <= 0 {
		return
	}
	scale := s.CurrentTransform().UniformScale()
	p := s.state.m.TransformPoint(gg.Pt(x, y))

	dc := s.target()
	dc.SetFont(s.face(size * scale))
	dc.SetRGBA(c.R, c.G, c.B, c.A*s.state.alpha)

	var ax float64
	switch align {
	case hedgerow.TextAlignCenter:
		ax = 0.5
	case hedgerow.TextAlignEnd:
		ax = 1
	}
	dc.DrawStringAnchored(str, p.X, p.Y, ax, 0.5)
}

// MeasureText returns the advance width of str at size device pixels.
func (s *Surface) MeasureText(str string, size float64) float64 {
	if size <= 0 {
		return 0
	}
	w, _ := text.Measure(str, s.face(size))
	return w
}

var (
	_ hedgerow.Surface      = (*Surface)(nil)
	_ hedgerow.RectFiller   = (*Surface)(nil)
	_ hedgerow.ImageDrawer  = (*Surface)(nil)
	_ hedgerow.TextDrawer   = (*Surface)(nil)
	_ hedgerow.TextMeasurer = (*Surface)(nil)
	_ hedgerow.Transformer  = (*Surface)(nil)
)
