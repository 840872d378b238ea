package hedgerow

import (
	"fmt"
	"time"
)

// fpsInterval is how often the FPS label is refreshed.
const fpsInterval = 500 * time.Millisecond

// FPSProps configures an FPS counter.
type FPSProps struct {
	Size  float64
	Color Color
	Align TextAlign
}

// FPS draws the measured frame rate as text. The rate is averaged over the
// frames rendered in each half second, from the frame time differences.
type FPS struct {
	elapsed time.Duration
	frames  int
	label   string
	text    Text
}

// NewFPS creates an FPS counter.
func NewFPS() *FPS {
	return &FPS{label: "FPS: -"}
}

// Label returns the text currently displayed.
func (f *FPS) Label() string {
	return f.label
}

func (f *FPS) Render(ctx RenderingContext, position Coordinates, props FPSProps) error {
	f.elapsed += ctx.TimeDifference()
	f.frames++
	if f.elapsed >= fpsInterval {
		f.label = fmt.Sprintf("FPS: %.1f", float64(f.frames)/f.elapsed.Seconds())
		f.elapsed = 0
		f.frames = 0
	}
	return f.text.Render(ctx, position, TextProps{
		Text:  f.label,
		Size:  props.Size,
		Color: props.Color,
		Align: props.Align,
	})
}
