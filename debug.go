package hedgerow

import (
	"context"
	"log/slog"
	"time"
)

// FrameStats holds per-frame evaluation counters and timing.
// Counting is nil-safe so contexts without stats pay a single branch.
type FrameStats struct {
	Frame    uint64
	Items    int // template items that passed their visibility gate
	Hidden   int // template items skipped by Show
	Scopes   int // graphics-state scopes opened by transforms
	Duration time.Duration
}

func (s *FrameStats) countItem() {
	if s != nil {
		s.Items++
	}
}

func (s *FrameStats) countHidden() {
	if s != nil {
		s.Hidden++
	}
}

func (s *FrameStats) countScope() {
	if s != nil {
		s.Scopes++
	}
}

// debugLog writes the stats at debug level. Formatting is skipped entirely
// when the logger has debug disabled.
func (s FrameStats) debugLog(l *slog.Logger) {
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.LogAttrs(context.Background(), slog.LevelDebug, "frame",
		slog.Uint64("frame", s.Frame),
		slog.Int("items", s.Items),
		slog.Int("hidden", s.Hidden),
		slog.Int("scopes", s.Scopes),
		slog.Duration("duration", s.Duration),
	)
}

// debugMaxSaveDepth is the surface save depth above which a warning is logged.
const debugMaxSaveDepth = 32

func debugCheckDepth(l *slog.Logger, depth int) {
	if depth > debugMaxSaveDepth {
		l.Warn("surface save depth exceeds threshold", "depth", depth, "threshold", debugMaxSaveDepth)
	}
}
