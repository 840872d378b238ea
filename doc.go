// Package hedgerow is a declarative, retained-mode scene renderer for
// [Ebitengine] and other 2D canvas-style surfaces.
//
// A component declares a [Template]: an ordered list of child placements,
// each with functions that compute the child's position, props, visibility
// and transform from the component's current [PropsContext]. Every frame the
// [Renderer] walks the tree, evaluates those functions and lets leaf
// components draw through a [Surface].
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	root := &hedgerow.Composite[struct{}]{Template: hedgerow.Template[struct{}]{
//		&hedgerow.TemplateItem[struct{}, hedgerow.TextProps]{
//			Component: hedgerow.NewText(),
//			Position:  hedgerow.At[struct{}](100, 100),
//			Props:     hedgerow.Static[struct{}](hedgerow.TextProps{Text: "hello", Color: hedgerow.ColorWhite}),
//		},
//	}}
//	hedgerow.Run[struct{}](root, nil, hedgerow.DefaultRunConfig())
//
// For full control, create a [Renderer] over any [Surface] and call
// [Renderer.RenderFrame] from your own loop. [EbitenSurface] draws onto an
// *ebiten.Image, the ggsurface sub-package renders headlessly with gogpu/gg,
// and [Recorder] captures every call for tests.
//
// # Templates
//
// A [TemplateItem] binds a child [Component] into its parent:
//
//   - Show gates the item. A hidden item calls nothing else and does not
//     touch the surface.
//   - Position offsets the child from the parent's origin, in logical units.
//   - Props resolves the child's typed props. nil yields the zero value.
//   - Transform scopes a rotation, opacity and circular clip to the item's
//     subtree. The surface state is saved before and restored after, on every
//     exit path.
//
// Device coordinates are always scale × (parent + position), where the scale
// factor maps the logical space onto the output.
//
// Reusable components usually embed a [Composite] and bind method values as
// the item functions:
//
//	type score struct {
//		hedgerow.Composite[scoreProps]
//		points int
//	}
//
//	func (s *score) label(hedgerow.PropsContext[scoreProps]) hedgerow.TextProps {
//		return hedgerow.TextProps{Text: strconv.Itoa(s.points)}
//	}
//
// # Stores
//
// Simulation state lives outside the tree in stores registered on a
// [Registry] and passed with [WithStores]. Components read them through
// [PropsContext.Stores] or [StoreAs].
//
// # Errors
//
// A panic raised by an item function is recovered by [Renderer.RenderFrame]
// and returned as a [*PanicError]; the frame is dropped and logged through
// [Logger]. The next frame starts fresh.
//
// [Ebitengine]: https://ebitengine.org
package hedgerow
