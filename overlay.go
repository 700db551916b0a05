package blossom

import "time"

// Element is one short-lived overlay particle: a trail sparkle, a burst
// sparkle, a heart or a confetti piece. Its anchor (X, Y), size and color
// are fixed at creation; tracks animate the offset, scale, alpha and
// rotation. Every element is detached by its own one-shot timer.
type Element struct {
	Kind  Kind
	X, Y  float64
	Size  float64
	Color Color
	Glow  float64

	// Animated state.
	OffsetX  float64
	OffsetY  float64
	Scale    float64
	Alpha    float64
	Rotation float64 // radians

	overlay *Overlay
	tracks  []track
	removed bool
	born    time.Duration // clock time at Attach
}

// Remove detaches the element from its overlay. Removing an element that
// is already detached is a no-op; the return value reports whether this
// call did the detaching.
func (e *Element) Remove() bool {
	if e.removed || e.overlay == nil {
		return false
	}
	e.removed = true
	e.overlay.detach(e)
	return true
}

// Removed reports whether the element has been detached.
func (e *Element) Removed() bool {
	return e.removed
}

// shape converts the element's current state to a draw request.
func (e *Element) shape() Shape {
	return Shape{
		Kind:     e.Kind,
		X:        e.X + e.OffsetX,
		Y:        e.Y + e.OffsetY,
		Size:     e.Size,
		Rotation: e.Rotation,
		ScaleX:   e.Scale,
		ScaleY:   e.Scale,
		Color:    e.Color,
		Alpha:    e.Alpha,
		Glow:     e.Glow,
	}
}

// Overlay is the container overlay elements live in while they animate,
// drawn above the field. It holds no particle bookkeeping of its own beyond
// membership; emitters create elements and schedule their removal.
type Overlay struct {
	elements []*Element
	created  int
	removed  int
	clock    *Timers
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// SetClock ties element ages to t. An element attached by a timer callback
// during Advance is then stepped only by the part of the frame after its
// timer came due, so its tracks finish together with its removal timer.
// Without a clock every element advances by the full dt.
func (o *Overlay) SetClock(t *Timers) {
	o.clock = t
}

// Attach creates an element with full scale and alpha and appends it on top.
func (o *Overlay) Attach(kind Kind, x, y, size float64, clr Color) *Element {
	e := &Element{
		Kind:    kind,
		X:       x,
		Y:       y,
		Size:    size,
		Color:   clr,
		Scale:   1,
		Alpha:   1,
		overlay: o,
	}
	if o.clock != nil {
		e.born = o.clock.Now()
	}
	o.elements = append(o.elements, e)
	o.created++
	return e
}

// detach removes e, preserving draw order of the rest.
func (o *Overlay) detach(e *Element) {
	for i, el := range o.elements {
		if el == e {
			copy(o.elements[i:], o.elements[i+1:])
			o.elements[len(o.elements)-1] = nil
			o.elements = o.elements[:len(o.elements)-1]
			o.removed++
			return
		}
	}
}

// Len returns the number of attached elements.
func (o *Overlay) Len() int {
	return len(o.elements)
}

// Created returns how many elements have ever been attached.
func (o *Overlay) Created() int {
	return o.created
}

// Removed returns how many elements have been detached.
func (o *Overlay) Removed() int {
	return o.removed
}

// Elements returns the attached elements in draw order. The returned slice
// MUST NOT be mutated.
func (o *Overlay) Elements() []*Element {
	return o.elements
}

// Update advances every element's animation tracks. With a clock, call it
// after the clock's Advance for the same frame.
func (o *Overlay) Update(dt time.Duration) {
	for _, e := range o.elements {
		step := dt
		if o.clock != nil {
			if age := o.clock.Now() - e.born; age < step {
				step = max(age, 0)
			}
		}
		e.advance(step)
	}
}

// Render draws every attached element onto c without clearing it.
func (o *Overlay) Render(c Canvas) {
	if c == nil {
		return
	}
	for _, e := range o.elements {
		c.Fill(e.shape())
	}
}
