package hedgerow

import (
	"image"
	"unicode/utf8"
)

// CommandType identifies the kind of recorded surface call.
type CommandType uint8

const (
	CommandSave      CommandType = iota // Save
	CommandRestore                      // Restore
	CommandTranslate                    // Translate
	CommandRotate                       // Rotate
	CommandAlpha                        // SetGlobalAlpha
	CommandBeginPath                    // BeginPath
	CommandArc                          // Arc
	CommandClip                         // Clip
	CommandFillRect                     // FillRect
	CommandImage                        // DrawImage
	CommandText                         // DrawText
)

// isDraw reports whether the command produces pixels.
func (t CommandType) isDraw() bool {
	return t == CommandFillRect || t == CommandImage || t == CommandText
}

// Command is one recorded surface call together with the graphics state in
// effect once the call was applied.
type Command struct {
	Type CommandType

	// Arguments as passed by the caller, in the surface's current frame.
	X, Y, W, H float64
	Radius     float64
	Angle      float64
	Alpha      float64
	Color      Color
	Text       string
	Size       float64
	Align      TextAlign
	Image      image.Image

	// Transform is the current transformation matrix after the call.
	Transform Affine
	// GlobalAlpha is the alpha in effect after the call.
	GlobalAlpha float64
	// Clips are the device-space clip circles in effect after the call.
	Clips []DeviceCircle
	// Depth is the save depth after the call.
	Depth int
}

// Device maps the command's (X, Y) through its transform.
func (c Command) Device() (float64, float64) {
	return c.Transform.Apply(c.X, c.Y)
}

// DeviceCircle is a clip circle in device pixels.
type DeviceCircle struct {
	X, Y, Radius float64
}

// Contains reports whether (x, y) lies inside the circle.
func (c DeviceCircle) Contains(x, y float64) bool {
	dx, dy := x-c.X, y-c.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

type recorderState struct {
	m     Affine
	alpha float64
	clips []DeviceCircle
}

// Recorder is a Surface that records every call instead of drawing. It
// tracks the full canvas state (transform, alpha, clip stack) so recorded
// draw calls carry their resolved device geometry.
//
// Recorder also implements RectFiller, ImageDrawer, TextDrawer and
// TextMeasurer. MeasureText uses a fixed advance of half the size per rune.
type Recorder struct {
	state      recorderState
	stack      []recorderState
	path       []DeviceCircle
	commands   []Command
	unbalanced int
}

// NewRecorder creates an empty Recorder with identity state.
func NewRecorder() *Recorder {
	r := &Recorder{}
	r.Reset()
	return r
}

// Reset clears recorded commands and returns to identity state.
func (r *Recorder) Reset() {
	r.state = recorderState{m: IdentityAffine, alpha: 1}
	r.stack = r.stack[:0]
	r.path = r.path[:0]
	r.commands = r.commands[:0]
	r.unbalanced = 0
}

// Commands returns every recorded command. The slice MUST NOT be mutated.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Draws returns only the commands that produce pixels, in drawing order.
func (r *Recorder) Draws() []Command {
	var out []Command
	for _, c := range r.commands {
		if c.Type.isDraw() {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many commands of type t were recorded.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type == t {
			n++
		}
	}
	return n
}

// Depth returns the current save depth.
func (r *Recorder) Depth() int {
	return len(r.stack)
}

// Unbalanced returns the number of Restore calls made with nothing saved.
func (r *Recorder) Unbalanced() int {
	return r.unbalanced
}

// CurrentTransform returns the current transformation matrix.
func (r *Recorder) CurrentTransform() Affine {
	return r.state.m
}

func (r *Recorder) record(c Command) {
	c.Transform = r.state.m
	c.GlobalAlpha = r.state.alpha
	c.Clips = r.state.clips
	c.Depth = len(r.stack)
	r.commands = append(r.commands, c)
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
	r.record(Command{Type: CommandSave})
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		r.unbalanced++
		r.record(Command{Type: CommandRestore})
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.record(Command{Type: CommandRestore})
}

func (r *Recorder) Translate(dx, dy float64) {
	r.state.m = r.state.m.Translate(dx, dy)
	r.record(Command{Type: CommandTranslate, X: dx, Y: dy})
}

func (r *Recorder) Rotate(angle float64) {
	r.state.m = r.state.m.Rotate(angle)
	r.record(Command{Type: CommandRotate, Angle: angle})
}

func (r *Recorder) SetGlobalAlpha(alpha float64) {
	r.state.alpha = alpha
	r.record(Command{Type: CommandAlpha, Alpha: alpha})
}

func (r *Recorder) BeginPath() {
	r.path = r.path[:0]
	r.record(Command{Type: CommandBeginPath})
}

// Arc appends a circle to the current path. Partial arcs are recorded with
// their full circle; the renderer only ever issues full circles.
func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	dx, dy := r.state.m.Apply(x, y)
	r.path = append(r.path, DeviceCircle{X: dx, Y: dy, Radius: radius * r.state.m.UniformScale()})
	r.record(Command{Type: CommandArc, X: x, Y: y, Radius: radius, Angle: endAngle - startAngle})
}

func (r *Recorder) Clip() {
	clips := make([]DeviceCircle, 0, len(r.state.clips)+len(r.path))
	clips = append(clips, r.state.clips...)
	clips = append(clips, r.path...)
	r.state.clips = clips
	r.path = r.path[:0]
	r.record(Command{Type: CommandClip})
}

func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	r.record(Command{Type: CommandFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.record(Command{Type: CommandImage, X: x, Y: y, W: w, H: h, Image: img})
}

func (r *Recorder) DrawText(s string, x, y, size float64, c Color, align TextAlign) {
	r.record(Command{Type: CommandText, X: x, Y: y, Text: s, Size: size, Color: c, Align: align})
}

func (r *Recorder) MeasureText(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size / 2
}

var (
	_ Surface      = (*Recorder)(nil)
	_ RectFiller   = (*Recorder)(nil)
	_ ImageDrawer  = (*Recorder)(nil)
	_ TextDrawer   = (*Recorder)(nil)
	_ TextMeasurer = (*Recorder)(nil)
	_ Transformer  = (*Recorder)(nil)
)
