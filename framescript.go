package hedgerow

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoSteps is returned when a frame script has no steps.
var ErrNoSteps = errors.New("hedgerow: frame script has no steps")

// Frame script actions.
const (
	ActionScreenshot = "screenshot"
	ActionWait       = "wait"
	ActionQuit       = "quit"
)

// scriptStep represents a single action in a frame script.
type scriptStep struct {
	Action string `yaml:"action"`
	Label  string `yaml:"label,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

// scriptFile is the top-level YAML structure for a frame script.
type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

// screenshotter queues labelled screenshots. Game implements it.
type screenshotter interface {
	Screenshot(label string)
}

// FrameScript sequences screenshots, waits and a final quit across frames
// for automated visual testing. Attach it to a Game with SetScript or name
// it in RunConfig.Script.
//
//	steps:
//	  - action: wait
//	    frames: 30
//	  - action: screenshot
//	    label: splash
//	  - action: quit
type FrameScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	quit      bool
}

// LoadFrameScript parses a YAML frame script. Unknown actions are rejected.
func LoadFrameScript(data []byte) (*FrameScript, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse frame script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse frame script: %w", ErrNoSteps)
	}
	for i, st := range f.Steps {
		switch st.Action {
		case ActionScreenshot, ActionWait, ActionQuit:
		default:
			return nil, fmt.Errorf("parse frame script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &FrameScript{steps: f.Steps}, nil
}

// LoadFrameScriptFile reads and parses a YAML frame script file.
func LoadFrameScriptFile(path string) (*FrameScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read frame script: %w", err)
	}
	return LoadFrameScript(data)
}

// Done reports whether all steps have been executed.
func (s *FrameScript) Done() bool {
	return s.done
}

// QuitRequested reports whether a quit step has run.
func (s *FrameScript) QuitRequested() bool {
	return s.quit
}

// step advances the script by one frame.
func (s *FrameScript) step(host screenshotter) {
	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case ActionScreenshot:
		host.Screenshot(st.Label)
	case ActionWait:
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case ActionQuit:
		s.quit = true
		s.done = true
		return
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}
