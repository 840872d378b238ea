package hedgerow

import "image"

// --- Leaf components ---
//
// Leaf components resolve their device geometry as scale × (parent + position)
// and draw through the surface capability they need. A surface without that
// capability draws nothing.

// RectangleProps configures a Rectangle.
type RectangleProps struct {
	Width, Height float64
	Color         Color
}

// Rectangle fills a solid rectangle.
type Rectangle struct{}

// NewRectangle creates a Rectangle component.
func NewRectangle() *Rectangle { return &Rectangle{} }

func (*Rectangle) Render(ctx RenderingContext, position Coordinates, props RectangleProps) error {
	f, ok := ctx.Surface().(RectFiller)
	if !ok {
		return nil
	}
	x, y := ctx.Device(position)
	f.FillRect(x, y, ctx.DeviceLength(props.Width), ctx.DeviceLength(props.Height), props.Color)
	return nil
}

// SpriteProps configures a Sprite. A nil Source draws nothing.
type SpriteProps struct {
	Source        image.Image
	Width, Height float64
}

// Sprite draws an image stretched to Width × Height.
type Sprite struct{}

// NewSprite creates a Sprite component.
func NewSprite() *Sprite { return &Sprite{} }

func (*Sprite) Render(ctx RenderingContext, position Coordinates, props SpriteProps) error {
	if props.Source == nil {
		return nil
	}
	d, ok := ctx.Surface().(ImageDrawer)
	if !ok {
		return nil
	}
	x, y := ctx.Device(position)
	d.DrawImage(props.Source, x, y, ctx.DeviceLength(props.Width), ctx.DeviceLength(props.Height))
	return nil
}

// DefaultTextSize is the logical text size used when TextProps.Size is 0.
const DefaultTextSize = 32

// TextProps configures a Text. The position is the start (or center, or end,
// per Align) of the line, vertically at its middle.
type TextProps struct {
	Text  string
	Size  float64
	Color Color
	Align TextAlign
}

// Text draws a single line of text.
type Text struct{}

// NewText creates a Text component.
func NewText() *Text { return &Text{} }

func (*Text) Render(ctx RenderingContext, position Coordinates, props TextProps) error {
	if props.Text == "" {
		return nil
	}
	d, ok := ctx.Surface().(TextDrawer)
	if !ok {
		return nil
	}
	size := props.Size
	if size == 0 {
		size = DefaultTextSize
	}
	x, y := ctx.Device(position)
	d.DrawText(props.Text, x, y, ctx.DeviceLength(size), props.Color, props.Align)
	return nil
}

// TextWidthProps configures a TextWidth.
type TextWidthProps struct {
	Text string
	Size float64
	// Report receives the measured width in logical units.
	Report func(width float64)
}

// TextWidth measures its text on the current surface every frame and reports
// the logical width. It draws nothing. Components use it to lay out elements
// that follow text, such as a caret.
type TextWidth struct{}

// NewTextWidth creates a TextWidth component.
func NewTextWidth() *TextWidth { return &TextWidth{} }

func (*TextWidth) Render(ctx RenderingContext, _ Coordinates, props TextWidthProps) error {
	if props.Report == nil {
		return nil
	}
	m, ok := ctx.Surface().(TextMeasurer)
	if !ok {
		props.Report(0)
		return nil
	}
	size := props.Size
	if size == 0 {
		size = DefaultTextSize
	}
	w := m.MeasureText(props.Text, ctx.DeviceLength(size))
	props.Report(w / ctx.ScaleFactor())
	return nil
}
