package greeting

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScriptStep is one action in an input script.
type ScriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Wheel  float64 `yaml:"wheel,omitempty"`
	DX     float64 `yaml:"dx,omitempty"`
	Key    string  `yaml:"key,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// script is the top-level YAML structure.
type script struct {
	Steps []ScriptStep `yaml:"steps"`
}

// ScriptInput replays a YAML script as input frames, one step per frame
// except glide and wait which span several. After the last step it keeps
// reporting an idle pointer at its final position.
//
//	steps:
//	  - {action: move, x: 320, y: 200}
//	  - {action: glide, toX: 600, toY: 220, frames: 20}
//	  - {action: click, x: 640, y: 360}
//	  - {action: wheel, wheel: -3}
//	  - {action: key, key: escape}
//	  - {action: swipe, dx: 80}
//	  - {action: wait, frames: 60}
//	  - {action: screenshot, label: confetti}
type ScriptInput struct {
	steps  []ScriptStep
	cursor int
	queue  []Frame
	x, y   float64
}

// LoadScript parses a YAML input script.
func LoadScript(data []byte) (*ScriptInput, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &ScriptInput{steps: s.Steps}, nil
}

// LoadScriptFile reads and parses a script file.
func LoadScriptFile(path string) (*ScriptInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return LoadScript(data)
}

func (st ScriptStep) validate() error {
	switch st.Action {
	case "move", "click", "wheel", "swipe", "screenshot", "glide", "wait":
		return nil
	case "key":
		if _, ok := ParseKey(st.Key); !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

// Done reports whether every step has been replayed.
func (in *ScriptInput) Done() bool {
	return in.cursor >= len(in.steps) && len(in.queue) == 0
}

// Poll returns the next scripted frame.
func (in *ScriptInput) Poll() Frame {
	if len(in.queue) == 0 && in.cursor < len(in.steps) {
		in.expand(in.steps[in.cursor])
		in.cursor++
	}
	if len(in.queue) == 0 {
		return Frame{X: in.x, Y: in.y}
	}
	f := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue = in.queue[:len(in.queue)-1]
	return f
}

// expand queues the frames for one step.
func (in *ScriptInput) expand(st ScriptStep) {
	idle := Frame{X: in.x, Y: in.y}
	switch st.Action {
	case "move":
		in.x, in.y = st.X, st.Y
		in.queue = append(in.queue, Frame{X: in.x, Y: in.y, Moved: true})
	case "glide":
		frames := max(st.Frames, 2)
		fromX, fromY := in.x, in.y
		for i := 1; i <= frames; i++ {
			t := float64(i) / float64(frames)
			in.queue = append(in.queue, Frame{
				X:     fromX + (st.ToX-fromX)*t,
				Y:     fromY + (st.ToY-fromY)*t,
				Moved: true,
			})
		}
		in.x, in.y = st.ToX, st.ToY
	case "click":
		moved := st.X != in.x || st.Y != in.y
		in.x, in.y = st.X, st.Y
		in.queue = append(in.queue, Frame{X: in.x, Y: in.y, Moved: moved, Clicked: true})
	case "wheel":
		idle.WheelY = st.Wheel
		in.queue = append(in.queue, idle)
	case "swipe":
		idle.Swipe = st.DX
		in.queue = append(in.queue, idle)
	case "key":
		k, _ := ParseKey(st.Key)
		idle.Keys = []Key{k}
		in.queue = append(in.queue, idle)
	case "screenshot":
		idle.Screenshot = st.Label
		if idle.Screenshot == "" {
			idle.Screenshot = "unlabeled"
		}
		in.queue = append(in.queue, idle)
	case "wait":
		for i := 0; i < max(st.Frames, 1); i++ {
			in.queue = append(in.queue, Frame{X: in.x, Y: in.y})
		}
	}
}
