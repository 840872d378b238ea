package hedgerow

import (
	"math"
	"time"
)

// Transformer is implemented by surfaces that expose their current
// transformation matrix (logical device frame to output pixels).
type Transformer interface {
	CurrentTransform() Affine
}

// ListenerProps configures an EventListener. Handlers may be nil.
type ListenerProps struct {
	Width, Height float64

	OnKeyPress func(key string)
	OnKeyDown  func(key string)
	OnClick    func(localX, localY float64)
}

// EventListener is an invisible component that exposes the input contract of
// an area of the screen. Each render records the area's output bounds and the
// current handlers; an external dispatcher then routes input through
// Contains, KeyPress, KeyDown and Click.
//
// The listener keeps the handlers of its last render, even after it stops
// being rendered (hidden, or its parent hidden). Dispatchers must check Live
// with the latest frame start before routing input to it.
type EventListener struct {
	props     ListenerProps
	bounds    Rect
	inverse   Affine
	origin    Coordinates
	scale     float64
	lastFrame time.Time
	active    bool
}

// NewEventListener creates an EventListener.
func NewEventListener() *EventListener {
	return &EventListener{}
}

func (l *EventListener) Render(ctx RenderingContext, position Coordinates, props ListenerProps) error {
	x, y := ctx.Device(position)
	w, h := ctx.DeviceLength(props.Width), ctx.DeviceLength(props.Height)

	m := IdentityAffine
	if t, ok := ctx.Surface().(Transformer); ok {
		m = t.CurrentTransform()
	}
	l.bounds = transformedBounds(m, Rect{X: x, Y: y, Width: w, Height: h})
	l.inverse = m.Invert()
	l.origin = Coordinates{x, y}
	l.scale = ctx.ScaleFactor()
	l.props = props
	l.lastFrame = ctx.FrameStart()
	l.active = true
	return nil
}

// Bounds returns the axis-aligned output bounds recorded in the last render.
func (l *EventListener) Bounds() Rect {
	return l.bounds
}

// LastFrame returns the frame start of the last render.
func (l *EventListener) LastFrame() time.Time {
	return l.lastFrame
}

// Live reports whether the listener was rendered in the frame that started
// at frameStart.
func (l *EventListener) Live(frameStart time.Time) bool {
	return l.active && l.lastFrame.Equal(frameStart)
}

// Contains reports whether the output point (x, y) lies in the listener's
// area, taking any rotation into account.
func (l *EventListener) Contains(x, y float64) bool {
	if !l.active {
		return false
	}
	lx, ly := l.inverse.Apply(x, y)
	lx -= l.origin.X
	ly -= l.origin.Y
	return lx >= 0 && ly >= 0 &&
		lx <= l.scale*l.props.Width && ly <= l.scale*l.props.Height
}

// KeyPress forwards a printable key. Reports whether a handler ran.
func (l *EventListener) KeyPress(key string) bool {
	if !l.active || l.props.OnKeyPress == nil {
		return false
	}
	l.props.OnKeyPress(key)
	return true
}

// KeyDown forwards a key-down event. Reports whether a handler ran.
func (l *EventListener) KeyDown(key string) bool {
	if !l.active || l.props.OnKeyDown == nil {
		return false
	}
	l.props.OnKeyDown(key)
	return true
}

// Click forwards a click at output point (x, y) if it falls inside the area.
// The handler receives logical coordinates relative to the listener.
func (l *EventListener) Click(x, y float64) bool {
	if l.props.OnClick == nil || !l.Contains(x, y) {
		return false
	}
	lx, ly := l.inverse.Apply(x, y)
	l.props.OnClick((lx-l.origin.X)/l.scale, (ly-l.origin.Y)/l.scale)
	return true
}

// transformedBounds returns the axis-aligned bounds of r mapped through m.
func transformedBounds(m Affine, r Rect) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{
		{r.X, r.Y}, {r.X + r.Width, r.Y}, {r.X, r.Y + r.Height}, {r.X + r.Width, r.Y + r.Height},
	} {
		x, y := m.Apply(p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
