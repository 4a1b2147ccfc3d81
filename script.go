package wicker

import (
	"encoding/json"
	"fmt"
)

// Scripted interaction replay. A JSON script describes pointer and keyboard
// actions; a ScriptRunner feeds them through a ScriptedInput one step at a
// time, waiting for queued frames to drain between steps. Used for automated
// interaction tests and demo recordings.

// scriptStep represents a single action in an interaction script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Dir    int     `json:"dir,omitempty"`
	Text   string  `json:"text,omitempty"`
	Key    string  `json:"key,omitempty"`
	Label  string  `json:"label,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// interactionScript is the top-level JSON structure.
type interactionScript struct {
	Steps []scriptStep `json:"steps"`
}

var scriptKeyNames = map[string]Key{
	"up":        KeyArrowUp,
	"down":      KeyArrowDown,
	"left":      KeyArrowLeft,
	"right":     KeyArrowRight,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"enter":     KeyEnter,
	"tab":       KeyTab,
	"escape":    KeyEscape,
	"home":      KeyHome,
	"end":       KeyEnd,
}

// ScriptRunner replays an interaction script through a scripted input source.
// Call Step once per frame, before Manager.Update.
type ScriptRunner struct {
	input     *ScriptedInput
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	// OnScreenshot, when set, handles "screenshot" steps; typically bound to
	// Manager.Screenshot. Unset, screenshot steps are skipped.
	OnScreenshot func(label string)
}

// LoadScript parses a JSON interaction script targeting the given input.
func LoadScript(jsonData []byte, input *ScriptedInput) (*ScriptRunner, error) {
	var script interactionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("wicker: parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("wicker: parse script: no steps")
	}
	for _, st := range script.Steps {
		if st.Action == "key" {
			if _, ok := scriptKeyNames[st.Key]; !ok {
				return nil, fmt.Errorf("wicker: parse script: unknown key %q", st.Key)
			}
		}
	}
	return &ScriptRunner{input: input, steps: script.Steps}, nil
}

// Done reports whether all steps have been executed and consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame, queuing the next action once the
// input's pending frames have drained.
func (r *ScriptRunner) Step() {
	if r.done {
		return
	}
	// Let already-queued frames play out before advancing.
	if r.input.Pending() > 0 {
		return
	}
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
	case "move":
		r.input.MoveTo(st.X, st.Y)
	case "click":
		r.input.Click(st.X, st.Y)
	case "rightclick":
		r.input.RightClick(st.X, st.Y)
	case "drag":
		r.input.Drag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		r.input.Wheel(st.X, st.Y, st.Dir)
	case "type":
		r.input.Type(st.Text)
	case "key":
		r.input.Tap(scriptKeyNames[st.Key])
	case "screenshot":
		if r.OnScreenshot != nil {
			r.OnScreenshot(st.Label)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.input.Pending() == 0 {
		r.done = true
	}
}
