package hedgerow

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// --- White pixel singleton (no sync.Once, surfaces are single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image,
// scaled and tinted for solid fills.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// clipLayer is an offscreen image that collects drawing inside a circular
// clip until the state that created it is restored.
type clipLayer struct {
	image  *ebiten.Image
	parent *ebiten.Image
	circle DeviceCircle
}

type ebitenState struct {
	geo    ebiten.GeoM
	alpha  float32
	target *ebiten.Image
	layers []*clipLayer // clip layers opened at this save level
}

// EbitenSurface is a Surface drawing onto an *ebiten.Image.
//
// Transform and alpha live in a state stack. A circular clip redirects
// drawing into a pooled offscreen layer; when the state that opened it is
// restored the layer is masked with the circle and composited back onto the
// image underneath.
type EbitenSurface struct {
	state ebitenState
	stack []ebitenState
	path  []DeviceCircle
	w, h  int

	pool   renderTexturePool
	face   *text.GoTextFaceSource
	images map[image.Image]*ebiten.Image
}

// NewEbitenSurface creates a surface with the Go Regular font for text.
func NewEbitenSurface() (*EbitenSurface, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load default font: %w", err)
	}
	return NewEbitenSurfaceWithFont(src), nil
}

// NewEbitenSurfaceWithFont creates a surface that draws text with face.
// A nil face disables text drawing and measuring.
func NewEbitenSurfaceWithFont(face *text.GoTextFaceSource) *EbitenSurface {
	return &EbitenSurface{
		state:  ebitenState{alpha: 1},
		face:   face,
		images: make(map[image.Image]*ebiten.Image),
	}
}

// BeginFrame targets dst and resets the state to identity. Any state left
// saved by a previous frame is discarded and its layers released.
func (s *EbitenSurface) BeginFrame(dst *ebiten.Image) {
	if n := len(s.stack); n > 0 {
		Logger().Warn("ebiten surface: discarding saved state from previous frame", "depth", n)
		for _, st := range s.stack {
			s.releaseLayers(st.layers)
		}
		s.releaseLayers(s.state.layers)
		s.stack = s.stack[:0]
	}
	b := dst.Bounds()
	s.w, s.h = b.Dx(), b.Dy()
	s.state = ebitenState{alpha: 1, target: dst}
	s.path = s.path[:0]
}

// Depth returns the current save depth.
func (s *EbitenSurface) Depth() int {
	return len(s.stack)
}

// CurrentTransform returns the current transform as an Affine.
func (s *EbitenSurface) CurrentTransform() Affine {
	return geoMToAffine(s.state.geo)
}

func (s *EbitenSurface) Save() {
	s.stack = append(s.stack, s.state)
	s.state.layers = nil
}

func (s *EbitenSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	for i := len(s.state.layers) - 1; i >= 0; i-- {
		s.compositeLayer(s.state.layers[i])
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *EbitenSurface) Translate(dx, dy float64) {
	var t ebiten.GeoM
	t.Translate(dx, dy)
	t.Concat(s.state.geo)
	s.state.geo = t
}

func (s *EbitenSurface) Rotate(angle float64) {
	var t ebiten.GeoM
	t.Rotate(angle)
	t.Concat(s.state.geo)
	s.state.geo = t
}

func (s *EbitenSurface) SetGlobalAlpha(alpha float64) {
	s.state.alpha = float32(clamp01(alpha))
}

func (s *EbitenSurface) BeginPath() {
	s.path = s.path[:0]
}

// Arc appends a full circle to the current path. Partial arcs are treated
// as full circles.
func (s *EbitenSurface) Arc(x, y, radius, _, _ float64) {
	m := s.CurrentTransform()
	cx, cy := m.Apply(x, y)
	s.path = append(s.path, DeviceCircle{X: cx, Y: cy, Radius: radius * m.UniformScale()})
}

func (s *EbitenSurface) Clip() {
	if s.state.target == nil {
		return
	}
	for _, c := range s.path {
		layer := &clipLayer{
			image:  s.pool.Acquire(s.w, s.h),
			parent: s.state.target,
			circle: c,
		}
		s.state.layers = append(s.state.layers, layer)
		s.state.target = layer.image
	}
	s.path = s.path[:0]
}

// compositeLayer masks the layer with its circle and draws it onto its parent.
func (s *EbitenSurface) compositeLayer(l *clipLayer) {
	mask := s.pool.Acquire(s.w, s.h)
	vector.DrawFilledCircle(mask, float32(l.circle.X), float32(l.circle.Y), float32(l.circle.Radius), color.White, true)

	var op ebiten.DrawImageOptions
	op.Blend = blendMask.ebitenBlend()
	l.image.DrawImage(mask, &op)

	op = ebiten.DrawImageOptions{}
	l.parent.DrawImage(l.image, &op)

	s.pool.Release(mask)
	s.pool.Release(l.image)
}

func (s *EbitenSurface) releaseLayers(layers []*clipLayer) {
	for _, l := range layers {
		s.pool.Release(l.image)
	}
}

// FillRect fills a rectangle in the current frame.
func (s *EbitenSurface) FillRect(x, y, w, h float64, c Color) {
	if s.state.target == nil || w == 0 || h == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.state.geo)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.ColorScale.ScaleAlpha(s.state.alpha)
	s.state.target.DrawImage(ensureWhitePixel(), &op)
}

// DrawImage draws img stretched to (w, h). Non-ebiten images are converted
// once and cached when their dynamic type is comparable.
func (s *EbitenSurface) DrawImage(img image.Image, x, y, w, h float64) {
	if s.state.target == nil {
		return
	}
	src := s.ebitenImage(img)
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.state.geo)
	op.ColorScale.ScaleAlpha(s.state.alpha)
	op.Filter = ebiten.FilterLinear
	s.state.target.DrawImage(src, &op)
}

func (s *EbitenSurface) ebitenImage(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if !reflect.TypeOf(img).Comparable() {
		return ebiten.NewImageFromImage(img)
	}
	if e, ok := s.images[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	s.images[img] = e
	return e
}

// DrawText draws s with its vertical middle at y.
func (s *EbitenSurface) DrawText(str string, x, y, size float64, c Color, align TextAlign) {
	if s.state.target == nil || s.face == nil || size <= 0 {
		return
	}
	face := &text.GoTextFace{Source: s.face, Size: size}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.state.geo)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(s.state.alpha)
	op.PrimaryAlign = textAlign(align)
	op.SecondaryAlign = text.AlignCenter
	text.Draw(s.state.target, str, face, op)
}

// MeasureText returns the advance width of s at size device pixels.
func (s *EbitenSurface) MeasureText(str string, size float64) float64 {
	if s.face == nil || size <= 0 {
		return 0
	}
	return text.Advance(str, &text.GoTextFace{Source: s.face, Size: size})
}

// Dispose releases cached images and pooled layers.
func (s *EbitenSurface) Dispose() {
	for k, img := range s.images {
		img.Deallocate()
		delete(s.images, k)
	}
	s.pool.Dispose()
}

func textAlign(a TextAlign) text.Align {
	switch a {
	case TextAlignCenter:
		return text.AlignCenter
	case TextAlignEnd:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

func geoMToAffine(g ebiten.GeoM) Affine {
	return Affine{
		g.Element(0, 0), g.Element(1, 0),
		g.Element(0, 1), g.Element(1, 1),
		g.Element(0, 2), g.Element(1, 2),
	}
}

// --- Render texture pool ---

// renderTexturePool manages reusable offscreen ebiten.Images keyed by
// power-of-two dimensions. After warmup, Acquire/Release are zero-alloc.
type renderTexturePool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
// Dimensions are rounded up to the next power of two.
func (p *renderTexturePool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here.
func (p *renderTexturePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// Size returns the number of pooled images.
func (p *renderTexturePool) Size() int {
	n := 0
	for _, stack := range p.buckets {
		n += len(stack)
	}
	return n
}

// Dispose deallocates every pooled image.
func (p *renderTexturePool) Dispose() {
	for key, stack := range p.buckets {
		for _, img := range stack {
			img.Deallocate()
		}
		delete(p.buckets, key)
	}
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}

var (
	_ Surface      = (*EbitenSurface)(nil)
	_ RectFiller   = (*EbitenSurface)(nil)
	_ ImageDrawer  = (*EbitenSurface)(nil)
	_ TextDrawer   = (*EbitenSurface)(nil)
	_ TextMeasurer = (*EbitenSurface)(nil)
	_ Transformer  = (*EbitenSurface)(nil)
)
