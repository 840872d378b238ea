package hedgerow

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- nextPowerOfTwo ---

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		input, want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{5, 8},
		{127, 128},
		{129, 256},
		{1000, 1024},
	}
	for _, tt := range tests {
		got := nextPowerOfTwo(tt.input)
		if got != tt.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

// --- Pool ---

func TestPoolAcquireReturnsPow2(t *testing.T) {
	var pool renderTexturePool
	img := pool.Acquire(100, 50)
	defer pool.Release(img)

	b := img.Bounds()
	if b.Dx() != 128 || b.Dy() != 64 {
		t.Errorf("size = %dx%d, want 128x64", b.Dx(), b.Dy())
	}
}

func TestPoolReleaseAndReacquire(t *testing.T) {
	var pool renderTexturePool
	img1 := pool.Acquire(64, 64)
	pool.Release(img1)
	if pool.Size() != 1 {
		t.Errorf("Size = %d, want 1", pool.Size())
	}

	img2 := pool.Acquire(64, 64)
	if img1 != img2 {
		t.Error("expected pool to return the same image after release")
	}
	if pool.Size() != 0 {
		t.Errorf("Size = %d, want 0", pool.Size())
	}
	pool.Release(img2)
	pool.Release(nil)
	pool.Dispose()
	if pool.Size() != 0 {
		t.Errorf("Size after Dispose = %d, want 0", pool.Size())
	}
}

// --- Transform state ---

func newTestEbitenSurface() *EbitenSurface {
	s := NewEbitenSurfaceWithFont(nil)
	s.BeginFrame(ebiten.NewImage(64, 64))
	return s
}

func TestEbitenSurfaceTranslateRotate(t *testing.T) {
	s := newTestEbitenSurface()
	s.Translate(10, 20)
	s.Rotate(math.Pi / 2)

	// Local (1, 0) rotates onto +y, then moves by the earlier translation.
	x, y := s.CurrentTransform().Apply(1, 0)
	assertNear(t, "x", x, 10)
	assertNear(t, "y", y, 21)
}

func TestEbitenSurfaceSaveRestore(t *testing.T) {
	s := newTestEbitenSurface()
	s.Translate(5, 5)
	s.Save()
	s.Translate(100, 0)
	s.SetGlobalAlpha(0.25)
	if s.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", s.Depth())
	}
	s.Restore()

	assertMatrix(t, "restored", s.CurrentTransform(), Affine{1, 0, 0, 1, 5, 5})
	if s.state.alpha != 1 {
		t.Errorf("alpha = %v, want 1 after restore", s.state.alpha)
	}
	s.Restore() // unbalanced restore is ignored
	if s.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", s.Depth())
	}
}

func TestEbitenSurfaceGlobalAlphaClamped(t *testing.T) {
	s := newTestEbitenSurface()
	s.SetGlobalAlpha(3)
	if s.state.alpha != 1 {
		t.Errorf("alpha = %v, want 1", s.state.alpha)
	}
	s.SetGlobalAlpha(-1)
	if s.state.alpha != 0 {
		t.Errorf("alpha = %v, want 0", s.state.alpha)
	}
}

func TestEbitenSurfaceArcInDeviceSpace(t *testing.T) {
	s := newTestEbitenSurface()
	s.Translate(10, 0)
	s.BeginPath()
	s.Arc(5, 5, 3, 0, 2*math.Pi)
	if len(s.path) != 1 {
		t.Fatalf("path = %d circles, want 1", len(s.path))
	}
	c := s.path[0]
	assertNear(t, "cx", c.X, 15)
	assertNear(t, "cy", c.Y, 5)
	assertNear(t, "r", c.Radius, 3)

	s.BeginPath()
	if len(s.path) != 0 {
		t.Error("BeginPath should clear the path")
	}
}

func TestEbitenSurfaceBeginFrameResets(t *testing.T) {
	s := newTestEbitenSurface()
	s.Save()
	s.Translate(7, 7)
	s.BeginFrame(ebiten.NewImage(32, 16))
	if s.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", s.Depth())
	}
	assertMatrix(t, "identity", s.CurrentTransform(), IdentityAffine)
	if s.w != 32 || s.h != 16 {
		t.Errorf("size = %dx%d, want 32x16", s.w, s.h)
	}
}

func TestEbitenSurfaceNoFontMeasuresZero(t *testing.T) {
	s := newTestEbitenSurface()
	if w := s.MeasureText("hello", 12); w != 0 {
		t.Errorf("MeasureText = %v, want 0 without a font", w)
	}
}

func TestGeoMToAffine(t *testing.T) {
	var g ebiten.GeoM
	g.Scale(2, 3)
	g.Translate(4, 5)
	assertMatrix(t, "geoM", geoMToAffine(g), Affine{2, 0, 0, 3, 4, 5})
}

func TestTextAlign(t *testing.T) {
	if textAlign(TextAlignCenter) == textAlign(TextAlignStart) || textAlign(TextAlignEnd) == textAlign(TextAlignStart) {
		t.Error("alignments should map to distinct text aligns")
	}
}
