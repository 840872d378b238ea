package hedgerow

import (
	"errors"
	"testing"
)

type labelSink struct {
	labels []string
}

func (s *labelSink) Screenshot(label string) {
	s.labels = append(s.labels, label)
}

func TestLoadFrameScript(t *testing.T) {
	script, err := LoadFrameScript([]byte(`
steps:
  - action: screenshot
    label: initial
  - action: wait
    frames: 3
  - action: screenshot
    label: after-wait
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(script.steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(script.steps))
	}
	if script.steps[1].Action != ActionWait || script.steps[1].Frames != 3 {
		t.Error("step 1 mismatch")
	}
}

func TestLoadFrameScript_Invalid(t *testing.T) {
	if _, err := LoadFrameScript([]byte("steps: [")); err == nil {
		t.Error("expected error for invalid YAML")
	}
	if _, err := LoadFrameScript([]byte("steps:\n  - action: click\n")); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestLoadFrameScript_Empty(t *testing.T) {
	_, err := LoadFrameScript([]byte("steps: []"))
	if !errors.Is(err, ErrNoSteps) {
		t.Errorf("err = %v, want ErrNoSteps", err)
	}
}

func TestFrameScriptWait(t *testing.T) {
	script, err := LoadFrameScript([]byte(`
steps:
  - action: wait
    frames: 3
  - action: screenshot
    label: later
`))
	if err != nil {
		t.Fatal(err)
	}
	sink := &labelSink{}

	// Wait consumes frames 1-3; the screenshot runs on frame 4.
	for frame := 1; frame <= 3; frame++ {
		script.step(sink)
		if len(sink.labels) != 0 {
			t.Fatalf("frame %d: screenshot taken too early", frame)
		}
	}
	script.step(sink)
	if len(sink.labels) != 1 || sink.labels[0] != "later" {
		t.Fatalf("labels = %v, want [later]", sink.labels)
	}
	if !script.Done() {
		t.Error("script should be done")
	}
	if script.QuitRequested() {
		t.Error("quit was not requested")
	}
}

func TestFrameScriptQuit(t *testing.T) {
	script, err := LoadFrameScript([]byte(`
steps:
  - action: screenshot
  - action: quit
  - action: screenshot
    label: never
`))
	if err != nil {
		t.Fatal(err)
	}
	sink := &labelSink{}
	for range 5 {
		script.step(sink)
	}
	if !script.QuitRequested() || !script.Done() {
		t.Error("quit step should stop the script")
	}
	if len(sink.labels) != 1 {
		t.Errorf("labels = %v, want one screenshot before quit", sink.labels)
	}
}
