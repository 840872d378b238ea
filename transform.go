package hedgerow

import "math"

// TransformConfig is a sparse set of visual transforms scoped to one template
// item's subtree. Each present field composes independently with the
// surrounding state; a zero TransformConfig changes nothing but still scopes
// the item's graphics state.
type TransformConfig struct {
	Rotate  *Rotation
	Opacity *Opacity
	Clip    *Clip
}

// Rotation rotates the item's subtree by Angle radians around Center, given
// relative to the enclosing component's origin. Descendants are positioned
// in the rotated frame, re-rooted at Center.
type Rotation struct {
	Center Coordinates
	Angle  float64
}

// Opacity sets the global alpha (0..1) for everything drawn in the subtree.
type Opacity struct {
	Value float64
}

// Clip confines drawing in the subtree to a region.
type Clip struct {
	Circle Circle
}

// Circle is a circle with Center relative to the item's own position.
type Circle struct {
	Center Coordinates
	Radius float64
}

// Rotate is shorthand for a TransformConfig with only a rotation.
func Rotate(center Coordinates, angle float64) TransformConfig {
	return TransformConfig{Rotate: &Rotation{Center: center, Angle: angle}}
}

// Fade is shorthand for a TransformConfig with only an opacity.
func Fade(alpha float64) TransformConfig {
	return TransformConfig{Opacity: &Opacity{Value: alpha}}
}

// ClipCircle is shorthand for a TransformConfig with only a circular clip.
func ClipCircle(center Coordinates, radius float64) TransformConfig {
	return TransformConfig{Clip: &Clip{Circle: Circle{Center: center, Radius: radius}}}
}

// stateScope is a graphics-state save on a Surface that is released exactly
// once. Callers acquire it and defer Release, so the matching Restore runs on
// every exit path including panics.
type stateScope struct {
	surface  Surface
	released bool
}

func acquireState(s Surface) *stateScope {
	s.Save()
	return &stateScope{surface: s}
}

// Release restores the saved state. Calling it again is a no-op.
func (sc *stateScope) Release() {
	if sc.released {
		return
	}
	sc.released = true
	sc.surface.Restore()
}

// applyTransform issues the surface calls for cfg and returns the parent
// origin descendants must use. parent is the enclosing component's origin in
// the current frame; ownPosition lazily evaluates the item's position and is
// called only when a clip is present.
//
// Geometry is not validated: malformed values produce wrong output, not errors.
func applyTransform(s Surface, scale float64, parent Coordinates, cfg TransformConfig, ownPosition func() Coordinates) Coordinates {
	if r := cfg.Rotate; r != nil {
		s.Translate(scale*(parent.X+r.Center.X), scale*(parent.Y+r.Center.Y))
		// Re-root: the rotation center becomes the new origin, so the enclosing
		// component's origin sits at -Center in the rotated frame.
		parent = Coordinates{-r.Center.X, -r.Center.Y}
		s.Rotate(r.Angle)
	}

	if o := cfg.Opacity; o != nil {
		s.SetGlobalAlpha(o.Value)
	}

	if c := cfg.Clip; c != nil {
		own := ownPosition()
		s.BeginPath()
		s.Arc(
			scale*(parent.X+own.X+c.Circle.Center.X),
			scale*(parent.Y+own.Y+c.Circle.Center.Y),
			scale*c.Circle.Radius,
			0,
			2*math.Pi,
		)
		s.Clip()
	}

	return parent
}
