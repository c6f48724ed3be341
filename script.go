package pointerflow

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string   `yaml:"action"`
	Label  string   `yaml:"label,omitempty"`
	Entity EntityID `yaml:"entity,omitempty"`
	ID     int      `yaml:"id,omitempty"`
	X      float64  `yaml:"x,omitempty"`
	Y      float64  `yaml:"y,omitempty"`
	FromX  float64  `yaml:"fromX,omitempty"`
	FromY  float64  `yaml:"fromY,omitempty"`
	ToX    float64  `yaml:"toX,omitempty"`
	ToY    float64  `yaml:"toY,omitempty"`
	From   float64  `yaml:"from,omitempty"`
	To     float64  `yaml:"to,omitempty"`
	Delta  float64  `yaml:"delta,omitempty"`
	Key    string   `yaml:"key,omitempty"`
	Frames int      `yaml:"frames,omitempty"`
}

// script is the top-level YAML structure of an input script.
type script struct {
	Name  string       `yaml:"name"`
	Steps []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "release": true, "click": true, "drag": true,
	"touchstart": true, "touchmove": true, "touchend": true, "pinch": true,
	"wheel": true, "key": true, "wait": true, "checkpoint": true,
}

// ScriptRunner sequences injected input across frames for automated
// testing and demos. Call Step once per frame before the injector's Step.
type ScriptRunner struct {
	// Name is the script's name, if it has one.
	Name string
	// OnCheckpoint is called with the label of each checkpoint step.
	OnCheckpoint func(label string)

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML input script:
//
//	name: two-finger zoom
//	steps:
//	  - {action: pinch, entity: canvas, x: 100, y: 100, from: 50, to: 100, frames: 4}
//	  - {action: checkpoint, label: zoomed}
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: %w", ErrNoSteps)
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse input script: step %d: %w %q", i, ErrUnknownAction, st.Action)
		}
	}
	return &ScriptRunner{Name: s.Name, steps: s.Steps}, nil
}

// Done reports whether every step has been executed and its input emitted.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step(in *Injector) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
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
	case "checkpoint":
		if r.OnCheckpoint != nil {
			r.OnCheckpoint(st.Label)
		}
	case "press":
		in.Press(st.Entity, st.X, st.Y)
	case "move":
		in.Move(st.X, st.Y)
	case "release":
		in.Release(st.X, st.Y)
	case "click":
		in.Click(st.Entity, st.X, st.Y)
	case "drag":
		in.Drag(st.Entity, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "touchstart":
		in.TouchStart(st.Entity, st.ID, st.X, st.Y)
	case "touchmove":
		in.TouchMove(st.ID, st.X, st.Y)
	case "touchend":
		in.TouchEnd(st.ID, st.X, st.Y)
	case "pinch":
		in.Pinch(st.Entity, st.X, st.Y, st.From, st.To, st.Frames)
	case "wheel":
		in.Wheel(st.X, st.Y, st.Delta)
	case "key":
		in.Key(st.Key)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}

// Run drives the script and the injector frame by frame until the script
// is done or maxFrames have passed. It returns the number of frames used.
func (r *ScriptRunner) Run(in *Injector, maxFrames int) int {
	frames := 0
	for frames < maxFrames && !r.done {
		r.Step(in)
		in.Step()
		frames++
	}
	// Emit anything queued by the final step.
	for frames < maxFrames && in.Step() {
		frames++
	}
	return frames
}
