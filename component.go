package hedgerow

import "time"

// Component is the unit of rendering. Composite components render by
// evaluating their template; leaf components issue surface calls directly.
//
// position is the component's offset from ctx's parent origin, props its
// resolved input. Component instances persist across frames and may own
// internal animation state; everything else is recomputed every frame.
type Component[P any] interface {
	Render(ctx RenderingContext, position Coordinates, props P) error
}

// ComponentFunc adapts a function to a leaf Component.
type ComponentFunc[P any] func(ctx RenderingContext, position Coordinates, props P) error

// Render calls f.
func (f ComponentFunc[P]) Render(ctx RenderingContext, position Coordinates, props P) error {
	return f(ctx, position, props)
}

// Composite is a component defined by a template. Game components hold a
// Composite and bind its item functions to their own methods:
//
//	type Caret struct {
//		hedgerow.Composite[CaretProps]
//		timer time.Duration
//	}
//
//	func NewCaret() *Caret {
//		c := &Caret{}
//		c.OnTick = c.tick
//		c.Template = hedgerow.Template[CaretProps]{
//			&hedgerow.TemplateItem[CaretProps, hedgerow.RectangleProps]{
//				Component: hedgerow.NewRectangle(),
//				Props:     c.rectProps,
//				Show:      c.visible,
//			},
//		}
//		return c
//	}
type Composite[P any] struct {
	Template Template[P]
	// OnTick, when set, runs once per frame before any item is evaluated.
	OnTick func(pc PropsContext[P], dt time.Duration)
}

// Render ticks the component, then evaluates every template item in order.
// It stops at the first item error and returns it.
func (c *Composite[P]) Render(ctx RenderingContext, position Coordinates, props P) error {
	pc := NewPropsContext(props, ctx.stores)
	if c.OnTick != nil {
		c.OnTick(pc, ctx.frame.TimeDifference)
	}
	return RenderTemplate(ctx, position, pc, c.Template)
}

// RenderTemplate evaluates items in declared order against one PropsContext.
func RenderTemplate[P any](ctx RenderingContext, position Coordinates, pc PropsContext[P], items Template[P]) error {
	for _, item := range items {
		if err := item.Evaluate(ctx, position, pc); err != nil {
			return err
		}
	}
	return nil
}
