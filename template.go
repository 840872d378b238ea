package hedgerow

import "errors"

// ErrNoComponent is returned when a template item without a component is
// evaluated and turns out to be visible.
var ErrNoComponent = errors.New("hedgerow: template item has no component")

// ErrNoSurface is returned when an item with a transform is evaluated against a
// context without a surface, such as the zero RenderingContext.
var ErrNoSurface = errors.New("hedgerow: rendering context has no surface")

// Item is one entry of a component's template. P is the props type of the
// enclosing component; the child's props type is hidden behind the interface
// so templates can mix children of different kinds.
type Item[P any] interface {
	// Evaluate renders the item within ctx. position is the enclosing
	// component's own position relative to ctx's parent origin.
	Evaluate(ctx RenderingContext, position Coordinates, pc PropsContext[P]) error
}

// Template is an ordered list of items. Order is drawing order: later items
// draw over earlier ones.
type Template[P any] []Item[P]

// TemplateItem places a child component of props type C inside a component
// of props type P. All functions receive the enclosing component's current
// PropsContext and must be safe to call every frame.
type TemplateItem[P, C any] struct {
	Component Component[C]

	// Position is the child's offset from the enclosing component's origin.
	// nil means the origin.
	Position func(PropsContext[P]) Coordinates
	// Props resolves the child's props. nil renders the child with the zero C.
	Props func(PropsContext[P]) C
	// Show gates the item. nil means always visible.
	Show func(PropsContext[P]) bool
	// Transform scopes rotation, opacity and clip to the item's subtree.
	// nil means identity and no graphics state is saved.
	Transform func(PropsContext[P]) TransformConfig
}

// Place is a convenience constructor for the common case of a child with a
// position and props function.
func Place[P, C any](child Component[C], position func(PropsContext[P]) Coordinates, props func(PropsContext[P]) C) *TemplateItem[P, C] {
	return &TemplateItem[P, C]{Component: child, Position: position, Props: props}
}

// At returns a position function that always yields (x, y).
func At[P any](x, y float64) func(PropsContext[P]) Coordinates {
	return func(PropsContext[P]) Coordinates { return Coordinates{x, y} }
}

// Static returns a props function that always yields props.
func Static[P, C any](props C) func(PropsContext[P]) C {
	return func(PropsContext[P]) C { return props }
}

// Evaluate renders the item. A hidden item costs nothing: no position, props
// or transform function is called and the surface is not touched. When a
// transform is present the surface state is saved before it is applied and
// restored on every exit path, including errors and panics from the child.
func (it *TemplateItem[P, C]) Evaluate(ctx RenderingContext, position Coordinates, pc PropsContext[P]) error {
	if it.Show != nil && !it.Show(pc) {
		ctx.stats.countHidden()
		return nil
	}
	ctx.stats.countItem()
	if it.Component == nil {
		return ErrNoComponent
	}

	parent := Coordinates{ctx.parentX + position.X, ctx.parentY + position.Y}

	if it.Transform != nil {
		if ctx.surface == nil {
			return ErrNoSurface
		}
		scope := acquireState(ctx.surface)
		defer scope.Release()
		ctx.stats.countScope()

		cfg := it.Transform(pc)
		parent = applyTransform(ctx.surface, ctx.scaleFactor, parent, cfg, func() Coordinates {
			return it.position(pc)
		})
	}

	return it.Component.Render(ctx.Descend(parent.X, parent.Y), it.position(pc), it.props(pc))
}

func (it *TemplateItem[P, C]) position(pc PropsContext[P]) Coordinates {
	if it.Position == nil {
		return Coordinates{}
	}
	return it.Position(pc)
}

func (it *TemplateItem[P, C]) props(pc PropsContext[P]) C {
	if it.Props == nil {
		var zero C
		return zero
	}
	return it.Props(pc)
}
