package rampart

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a lifecycle script.
type scriptStep struct {
	Action  string  `json:"action"`
	View    string  `json:"view,omitempty"`
	Instant bool    `json:"instant,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
}

// script is the top-level JSON structure for a lifecycle script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"initialize":   true,
	"activate":     true,
	"deactivate":   true,
	"deinitialize": true,
	"open":         true,
	"close":        true,
	"toggle":       true,
	"click":        true,
	"wait":         true,
	"quit":         true,
}

// ScriptRunner sequences lifecycle calls and view commands across frames
// for automated testing. Attach to a Scene via SetScriptRunner, or call
// Step yourself once per frame before Scene.Tick.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON lifecycle script.
//
//	{"steps": [
//	  {"action": "initialize"},
//	  {"action": "activate"},
//	  {"action": "open", "view": "shop"},
//	  {"action": "click", "x": 320, "y": 240},
//	  {"action": "wait", "frames": 30},
//	  {"action": "close", "view": "shop", "instant": true},
//	  {"action": "quit"}
//	]}
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		switch st.Action {
		case "open", "close", "toggle":
			if st.View == "" {
				return nil, fmt.Errorf("parse script: step %d: %s needs a view", i, st.Action)
			}
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the scene. Game.Update steps it
// once per frame before ticking.
func (s *Scene) SetScriptRunner(runner *ScriptRunner) {
	s.script = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step executes at most one step. Called once per frame.
func (r *ScriptRunner) Step(s *Scene) {
	if r.done {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "initialize":
		s.Initialize()
	case "activate":
		s.Activate()
	case "deactivate":
		s.Deactivate()
	case "deinitialize":
		s.Deinitialize()
	case "open", "close", "toggle", "click":
		r.viewCommand(s, st)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "quit":
		s.Quit()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

func (r *ScriptRunner) viewCommand(s *Scene, st scriptStep) {
	ui := s.ctx.UI
	if ui == nil {
		s.log.WithField("step", r.cursor-1).Warnf("script %s: no ui manager", st.Action)
		return
	}
	var err error
	switch st.Action {
	case "open":
		err = ui.OpenView(st.View, st.Instant)
	case "close":
		err = ui.CloseView(st.View, st.Instant)
	case "toggle":
		err = ui.ToggleView(st.View, st.Instant)
	case "click":
		ui.Click(st.X, st.Y)
	}
	if err != nil {
		s.log.WithError(err).Warnf("script %s failed", st.Action)
	}
}

// RunHeadless drives s without a window: each frame steps the runner, then
// ticks and late-ticks the scene by dt. It stops when the script is done and
// no activation is pending, when Quit is requested, or after maxFrames, and
// returns the number of frames run.
func RunHeadless(s *Scene, r *ScriptRunner, dt float64, maxFrames int) int {
	frames := 0
	for frames < maxFrames {
		r.Step(s)
		s.Tick(dt)
		s.LateTick(dt)
		frames++
		if s.QuitRequested() || (r.Done() && !s.Activating()) {
			break
		}
	}
	return frames
}
