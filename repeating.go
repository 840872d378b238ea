package hedgerow

// RepeatingProps configures a Repeating component over entries of type T.
type RepeatingProps[T, C any] struct {
	List []T
	// Position places the child for an entry, relative to the Repeating's
	// own position. nil places every child at the origin.
	Position func(T) Coordinates
	// Props resolves the child props for an entry. nil yields the zero C.
	Props func(T) C
	// Show, when set, skips entries for which it returns false.
	Show func(T) bool
}

// Repeating renders one child per list entry, in list order. Children are
// created on demand by the factory and kept per index across frames, so a
// child keeps its own animation state while the list length is stable.
type Repeating[T, C any] struct {
	factory  func() Component[C]
	children []Component[C]
}

// NewRepeating creates a Repeating component whose children come from
// factory. Panics if factory is nil.
func NewRepeating[T, C any](factory func() Component[C]) *Repeating[T, C] {
	if factory == nil {
		panic("hedgerow: repeating factory is nil")
	}
	return &Repeating[T, C]{factory: factory}
}

// Len returns the number of children currently retained.
func (r *Repeating[T, C]) Len() int {
	return len(r.children)
}

func (r *Repeating[T, C]) Render(ctx RenderingContext, position Coordinates, props RepeatingProps[T, C]) error {
	r.fit(len(props.List))
	child := ctx.Descend(ctx.parentX+position.X, ctx.parentY+position.Y)
	for i, entry := range props.List {
		if props.Show != nil && !props.Show(entry) {
			continue
		}
		var pos Coordinates
		if props.Position != nil {
			pos = props.Position(entry)
		}
		var p C
		if props.Props != nil {
			p = props.Props(entry)
		}
		if err := r.children[i].Render(child, pos, p); err != nil {
			return err
		}
	}
	return nil
}

// fit grows or shrinks the retained children to n.
func (r *Repeating[T, C]) fit(n int) {
	for len(r.children) < n {
		r.children = append(r.children, r.factory())
	}
	for i := n; i < len(r.children); i++ {
		r.children[i] = nil
	}
	r.children = r.children[:n]
}
