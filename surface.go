package hedgerow

import "image"

// Surface is the drawing surface contract the renderer issues graphics-state
// calls against. Its semantics follow a 2D canvas: Save pushes the current
// transform, alpha and clip; Restore pops them. Arc appends to the current
// path and Clip intersects the clip region with it.
//
// Surfaces are driven from a single goroutine.
type Surface interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	Rotate(angle float64)
	SetGlobalAlpha(alpha float64)
	BeginPath()
	Arc(x, y, radius, startAngle, endAngle float64)
	Clip()
}

// RectFiller is implemented by surfaces that can fill axis-aligned
// rectangles in the current frame.
type RectFiller interface {
	FillRect(x, y, w, h float64, c Color)
}

// ImageDrawer is implemented by surfaces that can draw an image stretched to
// (w, h) with its top-left at (x, y).
type ImageDrawer interface {
	DrawImage(img image.Image, x, y, w, h float64)
}

// TextDrawer is implemented by surfaces that can draw text. y is the vertical
// middle of the line; size is in device pixels.
type TextDrawer interface {
	DrawText(s string, x, y, size float64, c Color, align TextAlign)
}

// TextMeasurer is implemented by surfaces that can measure the advance width
// of text at a given device pixel size.
type TextMeasurer interface {
	MeasureText(s string, size float64) float64
}
