package hedgerow

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// frameSpy records the timing every frame it is rendered in.
type frameSpy struct {
	frames []FrameInfo
}

func (s *frameSpy) Render(ctx RenderingContext, _ Coordinates, _ struct{}) error {
	s.frames = append(s.frames, ctx.Frame())
	return nil
}

func TestRendererTimeDifference(t *testing.T) {
	clock := newFakeClock()
	spy := &frameSpy{}
	root := &Composite[struct{}]{Template: Template[struct{}]{
		&TemplateItem[struct{}, struct{}]{Component: spy},
	}}
	r := NewRenderer[struct{}](root, NewRecorder(), WithClock(clock.now))

	if err := r.RenderFrame(struct{}{}); err != nil {
		t.Fatalf("frame 1: %v", err)
	}
	clock.advance(16 * time.Millisecond)
	if err := r.RenderFrame(struct{}{}); err != nil {
		t.Fatalf("frame 2: %v", err)
	}

	if len(spy.frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(spy.frames))
	}
	if spy.frames[0].TimeDifference != 0 {
		t.Errorf("first dt = %v, want 0", spy.frames[0].TimeDifference)
	}
	if spy.frames[1].TimeDifference != 16*time.Millisecond {
		t.Errorf("second dt = %v, want 16ms", spy.frames[1].TimeDifference)
	}
	if !spy.frames[1].Start.Equal(clock.t) {
		t.Errorf("frame start = %v, want %v", spy.frames[1].Start, clock.t)
	}
	if r.Frame() != 2 {
		t.Errorf("Frame() = %d, want 2", r.Frame())
	}
}

func TestRendererClockGoingBackwards(t *testing.T) {
	clock := newFakeClock()
	spy := &frameSpy{}
	r := NewRenderer[struct{}](spy, NewRecorder(), WithClock(clock.now))
	_ = r.RenderFrame(struct{}{})
	clock.advance(-time.Second)
	_ = r.RenderFrame(struct{}{})
	if spy.frames[1].TimeDifference != 0 {
		t.Errorf("dt = %v, want 0 for a clock going backwards", spy.frames[1].TimeDifference)
	}
}

func TestRendererOnTickBeforeItems(t *testing.T) {
	clock := newFakeClock()
	var order []string
	leaf := ComponentFunc[struct{}](func(RenderingContext, Coordinates, struct{}) error {
		order = append(order, "render")
		return nil
	})
	root := &Composite[struct{}]{
		Template: Template[struct{}]{
			&TemplateItem[struct{}, struct{}]{Component: leaf},
			&TemplateItem[struct{}, struct{}]{Component: leaf},
		},
		OnTick: func(_ PropsContext[struct{}], dt time.Duration) {
			order = append(order, "tick")
		},
	}
	r := NewRenderer[struct{}](root, NewRecorder(), WithClock(clock.now))
	if err := r.RenderFrame(struct{}{}); err != nil {
		t.Fatal(err)
	}
	want := []string{"tick", "render", "render"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRendererRecoversPanic(t *testing.T) {
	rec := NewRecorder()
	boom := errors.New("store missing")
	root := &Composite[struct{}]{Template: Template[struct{}]{
		&TemplateItem[struct{}, RectangleProps]{
			Component: NewRectangle(),
			Transform: func(PropsContext[struct{}]) TransformConfig { return Fade(0.5) },
			Props:     func(PropsContext[struct{}]) RectangleProps { panic(boom) },
		},
	}}
	r := NewRenderer[struct{}](root, rec)

	err := r.RenderFrame(struct{}{})
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *PanicError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want to wrap the panic value", err)
	}
	if !strings.Contains(err.Error(), "render frame 1") {
		t.Errorf("err = %q, want frame number", err)
	}
	if rec.Depth() != 0 {
		t.Errorf("depth = %d, want 0 after recovered panic", rec.Depth())
	}
}

func TestRendererNextFrameAfterFailure(t *testing.T) {
	fail := true
	root := ComponentFunc[struct{}](func(RenderingContext, Coordinates, struct{}) error {
		if fail {
			panic("first frame only")
		}
		return nil
	})
	r := NewRenderer[struct{}](root, NewRecorder())
	if err := r.RenderFrame(struct{}{}); err == nil {
		t.Fatal("expected first frame to fail")
	}
	fail = false
	if err := r.RenderFrame(struct{}{}); err != nil {
		t.Errorf("second frame = %v, want nil", err)
	}
}

func TestRendererChildErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	after := &renderSpy[struct{}]{}
	root := &Composite[struct{}]{Template: Template[struct{}]{
		&TemplateItem[struct{}, struct{}]{Component: &renderSpy[struct{}]{err: boom}},
		&TemplateItem[struct{}, struct{}]{Component: after},
	}}
	r := NewRenderer[struct{}](root, NewRecorder())
	err := r.RenderFrame(struct{}{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if len(after.calls) != 0 {
		t.Error("items after a failing item should not render")
	}
}

func TestRendererUnbalancedSurface(t *testing.T) {
	root := ComponentFunc[struct{}](func(ctx RenderingContext, _ Coordinates, _ struct{}) error {
		ctx.Surface().Save()
		return nil
	})
	r := NewRenderer[struct{}](root, NewRecorder())
	if err := r.RenderFrame(struct{}{}); !errors.Is(err, ErrUnbalancedState) {
		t.Errorf("err = %v, want ErrUnbalancedState", err)
	}
}

func TestRendererStats(t *testing.T) {
	visible := func(pc PropsContext[bool]) bool { return pc.Props() }
	root := &Composite[bool]{Template: Template[bool]{
		&TemplateItem[bool, RectangleProps]{Component: NewRectangle()},
		&TemplateItem[bool, RectangleProps]{Component: NewRectangle(), Show: visible},
		&TemplateItem[bool, RectangleProps]{
			Component: NewRectangle(),
			Transform: func(PropsContext[bool]) TransformConfig { return Fade(1) },
		},
	}}
	clock := newFakeClock()
	r := NewRenderer[bool](root, NewRecorder(), WithClock(clock.now))
	if err := r.RenderFrame(false); err != nil {
		t.Fatal(err)
	}
	st := r.Stats()
	if st.Frame != 1 || st.Items != 2 || st.Hidden != 1 || st.Scopes != 1 {
		t.Errorf("stats = %+v, want frame 1, 2 items, 1 hidden, 1 scope", st)
	}
}

func TestRendererStores(t *testing.T) {
	reg := NewRegistry()
	reg.Register("score", 42)

	var got int
	root := &Composite[struct{}]{
		OnTick: func(pc PropsContext[struct{}], _ time.Duration) {
			got, _ = StoreAs[int](pc.Stores(), "score")
		},
	}
	r := NewRenderer[struct{}](root, NewRecorder(), WithStores(reg))
	if err := r.RenderFrame(struct{}{}); err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("store value = %d, want 42", got)
	}
}

func TestRendererScaleFactor(t *testing.T) {
	r := NewRenderer[struct{}](&frameSpy{}, NewRecorder(), WithScaleFactor(3))
	if r.ScaleFactor() != 3 {
		t.Errorf("ScaleFactor = %v, want 3", r.ScaleFactor())
	}
	r.SetScaleFactor(0)
	if r.ScaleFactor() != 1 {
		t.Errorf("ScaleFactor after 0 = %v, want 1", r.ScaleFactor())
	}
}

func TestRendererLogsDroppedFrame(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	fail := true
	root := ComponentFunc[struct{}](func(RenderingContext, Coordinates, struct{}) error {
		if fail {
			return errors.New("nope")
		}
		return nil
	})
	r := NewRenderer[struct{}](root, NewRecorder(), WithLogger(logger))

	_ = r.RenderFrame(struct{}{})
	if !strings.Contains(buf.String(), "frame dropped") {
		t.Errorf("log = %q, want a dropped frame warning", buf.String())
	}

	buf.Reset()
	fail = false
	_ = r.RenderFrame(struct{}{})
	if !strings.Contains(buf.String(), "items=") {
		t.Errorf("log = %q, want debug frame stats", buf.String())
	}
}

func TestNewRendererNilRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil root")
		}
	}()
	NewRenderer[struct{}](nil, NewRecorder())
}
