package hedgerow

import "time"

// FrameInfo carries the timing inputs supplied once per frame by the driving
// loop. It is threaded unchanged through every RenderingContext of the frame.
type FrameInfo struct {
	// TimeDifference is the elapsed time since the previous frame started.
	TimeDifference time.Duration
	// Start is the timestamp at which the frame started.
	Start time.Time
}

// RenderingContext is the per-descent rendering state: the accumulated parent
// origin, the drawing surface, the uniform scale factor and the frame timing.
//
// The parent origin is expressed in the local coordinate space established by
// any ancestor rotation, never in device pixels. Device pixels are produced
// only when a primitive draws, by multiplying by ScaleFactor.
//
// A RenderingContext is a value. It is never modified after construction;
// descending one level creates a new one with Descend. Create root contexts
// with NewRenderingContext: the zero value has no surface, scale or stores.
type RenderingContext struct {
	parentX, parentY float64
	scaleFactor      float64
	frame            FrameInfo
	surface          Surface
	stores           Stores
	stats            *FrameStats
}

// NewRenderingContext returns a root context with a zero parent origin.
// A scale factor <= 0 is treated as 1. A nil stores is replaced by an empty
// registry.
func NewRenderingContext(surface Surface, scaleFactor float64, frame FrameInfo, stores Stores) RenderingContext {
	if scaleFactor <= 0 {
		scaleFactor = 1
	}
	if stores == nil {
		stores = emptyStores{}
	}
	return RenderingContext{
		scaleFactor: scaleFactor,
		frame:       frame,
		surface:     surface,
		stores:      stores,
	}
}

// WithStats returns a copy of ctx that counts evaluation work into stats.
// The counters belong to one frame; pass a fresh FrameStats per frame.
func (ctx RenderingContext) WithStats(stats *FrameStats) RenderingContext {
	ctx.stats = stats
	return ctx
}

// Descend returns a copy of ctx whose parent origin is (parentX, parentY).
// Surface, scale and timing are carried over unchanged.
func (ctx RenderingContext) Descend(parentX, parentY float64) RenderingContext {
	ctx.parentX = parentX
	ctx.parentY = parentY
	return ctx
}

// ParentX returns the X of the parent origin in the current local frame.
func (ctx RenderingContext) ParentX() float64 { return ctx.parentX }

// ParentY returns the Y of the parent origin in the current local frame.
func (ctx RenderingContext) ParentY() float64 { return ctx.parentY }

// Parent returns the parent origin as Coordinates.
func (ctx RenderingContext) Parent() Coordinates {
	return Coordinates{ctx.parentX, ctx.parentY}
}

// ScaleFactor returns the uniform logical-to-device scale.
func (ctx RenderingContext) ScaleFactor() float64 { return ctx.scaleFactor }

// TimeDifference returns the elapsed time since the previous frame.
func (ctx RenderingContext) TimeDifference() time.Duration { return ctx.frame.TimeDifference }

// FrameStart returns the timestamp of the current frame.
func (ctx RenderingContext) FrameStart() time.Time { return ctx.frame.Start }

// Frame returns the frame timing.
func (ctx RenderingContext) Frame() FrameInfo { return ctx.frame }

// Surface returns the drawing surface handle.
func (ctx RenderingContext) Surface() Surface { return ctx.surface }

// Stores returns the shared registry of state containers.
func (ctx RenderingContext) Stores() Stores { return ctx.stores }

// Device converts a position relative to the parent origin into device
// coordinates of the current surface frame: scale × (parent + p).
func (ctx RenderingContext) Device(p Coordinates) (x, y float64) {
	return ctx.scaleFactor * (ctx.parentX + p.X), ctx.scaleFactor * (ctx.parentY + p.Y)
}

// DeviceLength scales a logical length to device pixels.
func (ctx RenderingContext) DeviceLength(l float64) float64 {
	return ctx.scaleFactor * l
}
