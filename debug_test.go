package hedgerow

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestFrameStatsNilSafe(t *testing.T) {
	var s *FrameStats
	s.countItem()
	s.countHidden()
	s.countScope()
}

func TestFrameStatsCounters(t *testing.T) {
	var s FrameStats
	s.countItem()
	s.countItem()
	s.countHidden()
	s.countScope()
	if s.Items != 2 || s.Hidden != 1 || s.Scopes != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestFrameStatsDebugLogSkippedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	FrameStats{Frame: 3, Items: 9}.debugLog(l)
	if buf.Len() != 0 {
		t.Errorf("log = %q, want nothing at info level", buf.String())
	}

	l = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	FrameStats{Frame: 3, Items: 9}.debugLog(l)
	if !strings.Contains(buf.String(), "frame=3") || !strings.Contains(buf.String(), "items=9") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestDebugCheckDepth(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	debugCheckDepth(l, debugMaxSaveDepth)
	if buf.Len() != 0 {
		t.Fatalf("log = %q, want nothing at the threshold", buf.String())
	}
	debugCheckDepth(l, debugMaxSaveDepth+1)
	if !strings.Contains(buf.String(), "save depth") {
		t.Errorf("log = %q, want a depth warning", buf.String())
	}
}
