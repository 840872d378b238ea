package hedgerow

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors and call Update with the frame's time
// difference, typically from a Composite's OnTick. The group writes values
// straight into the target fields.
//
// There is no global animation manager; components own their groups.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt, writes values to the target fields and
// sets Done once every tween has finished.
func (g *TweenGroup) Update(dt time.Duration) {
	if g == nil || g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt.Seconds()))
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds every tween to its start and clears Done. The fields are
// written on the next Update.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
	}
	g.Done = false
}

func (g *TweenGroup) add(field *float64, to float64, duration time.Duration, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), float32(duration.Seconds()), fn)
	g.fields[g.count] = field
	g.count++
}

// TweenFloat animates a single field from its current value to to.
func TweenFloat(field *float64, to float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(field, to, duration, fn)
	return g
}

// TweenCoordinates animates both components of c to to.
func TweenCoordinates(c *Coordinates, to Coordinates, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&c.X, to.X, duration, fn)
	g.add(&c.Y, to.Y, duration, fn)
	return g
}

// TweenColor animates all four components of c to to.
func TweenColor(c *Color, to Color, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&c.R, to.R, duration, fn)
	g.add(&c.G, to.G, duration, fn)
	g.add(&c.B, to.B, duration, fn)
	g.add(&c.A, to.A, duration, fn)
	return g
}
