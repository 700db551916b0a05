package greeting

import "github.com/phanxgames/blossom"

// Typewriter cycles through messages, typing one character per TypeSpeed,
// holding the full line for Pause, then deleting one character per
// DeleteSpeed before moving on to the next message. It runs forever once
// started and is driven entirely by the page's timer queue.
type Typewriter struct {
	cfg    TypewriterConfig
	timers *blossom.Timers
	lines  [][]rune

	msg      int
	char     int
	deleting bool
	paused   bool
	started  bool
	text     string
}

// NewTypewriter creates a typewriter over cfg.Messages.
func NewTypewriter(timers *blossom.Timers, cfg TypewriterConfig) *Typewriter {
	tw := &Typewriter{cfg: cfg, timers: timers}
	for _, m := range cfg.Messages {
		if m != "" {
			tw.lines = append(tw.lines, []rune(m))
		}
	}
	return tw
}

// Start schedules the first keystroke after StartDelay. Calling Start again
// is a no-op, as is starting with no messages.
func (tw *Typewriter) Start() {
	if tw.started || len(tw.lines) == 0 {
		return
	}
	tw.started = true
	tw.timers.After(tw.cfg.StartDelay, tw.tick)
}

func (tw *Typewriter) tick() {
	line := tw.lines[tw.msg]

	if tw.paused {
		tw.paused = false
		tw.deleting = true
		tw.timers.After(tw.cfg.Pause, tw.tick)
		return
	}

	if tw.deleting {
		tw.char--
		tw.text = string(line[:tw.char])
		if tw.char == 0 {
			tw.deleting = false
			tw.msg = (tw.msg + 1) % len(tw.lines)
		}
		tw.timers.After(tw.cfg.DeleteSpeed, tw.tick)
		return
	}

	tw.char++
	tw.text = string(line[:tw.char])
	if tw.char == len(line) {
		tw.paused = true
	}
	tw.timers.After(tw.cfg.TypeSpeed, tw.tick)
}

// Text returns the currently visible part of the headline.
func (tw *Typewriter) Text() string {
	return tw.text
}

// Message returns the index of the message being typed or deleted.
func (tw *Typewriter) Message() int {
	return tw.msg
}

// Deleting reports whether the typewriter is erasing.
func (tw *Typewriter) Deleting() bool {
	return tw.deleting
}
