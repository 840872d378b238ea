package hedgerow

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrUnbalancedState is reported when a surface is left with saved graphics
// state after a frame.
var ErrUnbalancedState = errors.New("hedgerow: unbalanced surface state")

// PanicError wraps a value recovered from a panic raised while evaluating a
// template function during a frame.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("hedgerow: evaluation panic: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// depther is implemented by surfaces that can report their save depth.
type depther interface {
	Depth() int
}

// Renderer drives frames: once per frame it renders the root component with a
// fresh root context (zero origin) carrying the frame's timing.
//
// Renderer holds no per-item state; evaluating the same tree twice with the
// same inputs issues the same surface calls.
type Renderer[P any] struct {
	root    Component[P]
	surface Surface
	stores  Stores
	scale   float64
	now     func() time.Time
	logger  *slog.Logger

	frame     uint64
	lastStart time.Time
	stats     FrameStats
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	scale  float64
	stores Stores
	now    func() time.Time
	logger *slog.Logger
}

// WithScaleFactor sets the initial logical-to-device scale (default 1).
func WithScaleFactor(scale float64) RendererOption {
	return func(c *rendererConfig) { c.scale = scale }
}

// WithStores sets the shared store registry exposed to components.
func WithStores(stores Stores) RendererOption {
	return func(c *rendererConfig) { c.stores = stores }
}

// WithClock replaces time.Now as the frame clock.
func WithClock(now func() time.Time) RendererOption {
	return func(c *rendererConfig) { c.now = now }
}

// WithLogger sets the logger used for frame diagnostics. Defaults to Logger().
func WithLogger(l *slog.Logger) RendererOption {
	return func(c *rendererConfig) { c.logger = l }
}

// NewRenderer creates a Renderer for root drawing onto surface.
// Panics if root or surface is nil.
func NewRenderer[P any](root Component[P], surface Surface, opts ...RendererOption) *Renderer[P] {
	if root == nil {
		panic("hedgerow: renderer root is nil")
	}
	if surface == nil {
		panic("hedgerow: renderer surface is nil")
	}
	cfg := rendererConfig{scale: 1, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.stores == nil {
		cfg.stores = emptyStores{}
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}
	r := &Renderer[P]{
		root:    root,
		surface: surface,
		stores:  cfg.stores,
		now:     cfg.now,
		logger:  cfg.logger,
	}
	r.SetScaleFactor(cfg.scale)
	return r
}

// SetScaleFactor changes the scale used from the next frame on.
// Values <= 0 are treated as 1.
func (r *Renderer[P]) SetScaleFactor(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	r.scale = scale
}

// ScaleFactor returns the current scale.
func (r *Renderer[P]) ScaleFactor() float64 {
	return r.scale
}

// SetSurface switches the drawing surface from the next frame on.
func (r *Renderer[P]) SetSurface(s Surface) {
	if s == nil {
		panic("hedgerow: renderer surface is nil")
	}
	r.surface = s
}

// Stats returns the counters of the most recent frame.
func (r *Renderer[P]) Stats() FrameStats {
	return r.stats
}

// Frame returns the number of frames started so far.
func (r *Renderer[P]) Frame() uint64 {
	return r.frame
}

// RenderFrame renders one full frame of the tree with props as the root
// props. The first frame has a zero time difference.
//
// An error from any component aborts the rest of the traversal and is
// returned wrapped with the frame number. A panic from a template function is
// recovered here and returned as *PanicError; graphics state saved below the
// panic has already been restored by then.
func (r *Renderer[P]) RenderFrame(props P) (err error) {
	start := r.now()
	var dt time.Duration
	if r.frame > 0 {
		dt = start.Sub(r.lastStart)
		if dt < 0 {
			dt = 0
		}
	}
	r.frame++
	r.lastStart = start
	r.stats = FrameStats{Frame: r.frame}

	ctx := NewRenderingContext(r.surface, r.scale, FrameInfo{TimeDifference: dt, Start: start}, r.stores).
		WithStats(&r.stats)

	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v}
		}
		r.stats.Duration = r.now().Sub(start)
		if d, ok := r.surface.(depther); ok {
			debugCheckDepth(r.logger, d.Depth())
			if d.Depth() != 0 && err == nil {
				err = ErrUnbalancedState
			}
		}
		if err != nil {
			err = fmt.Errorf("render frame %d: %w", r.frame, err)
			r.logger.Warn("frame dropped", "frame", r.frame, "err", err)
			return
		}
		r.stats.debugLog(r.logger)
	}()

	return r.root.Render(ctx, Coordinates{}, props)
}
