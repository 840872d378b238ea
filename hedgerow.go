package hedgerow

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Coordinates is a 2D point used for positions, offsets and transform origins.
// It is a plain value: copy and compare it freely.
type Coordinates struct {
	X, Y float64
}

// Add returns c + o.
func (c Coordinates) Add(o Coordinates) Coordinates {
	return Coordinates{c.X + o.X, c.Y + o.Y}
}

// Sub returns c - o.
func (c Coordinates) Sub(o Coordinates) Coordinates {
	return Coordinates{c.X - o.X, c.Y - o.Y}
}

// Scale returns c with both components multiplied by f.
func (c Coordinates) Scale(f float64) Coordinates {
	return Coordinates{c.X * f, c.Y * f}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// RGBA implements color.Color (premultiplied, 16-bit).
func (c Color) RGBA() (r, g, b, a uint32) {
	p := c.toRGBA()
	return p.RGBA()
}

var _ color.Color = Color{}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// TextAlign controls horizontal text alignment relative to the draw position.
type TextAlign uint8

const (
	TextAlignStart  TextAlign = iota // text begins at the position (default)
	TextAlignCenter                  // text is centered on the position
	TextAlignEnd                     // text ends at the position
)

// blendMode selects a compositing operation used by EbitenSurface internally.
type blendMode uint8

const (
	blendNormal blendMode = iota // source-over (standard alpha blending)
	blendMask                    // clip destination to source alpha
)

// ebitenBlend returns the ebiten.Blend value corresponding to this blendMode.
func (b blendMode) ebitenBlend() ebiten.Blend {
	switch b {
	case blendMask:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorZero,
			BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
			BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
