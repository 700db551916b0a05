package greeting

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key is a page key binding.
type Key uint8

const (
	KeyNone Key = iota
	KeyEscape
	KeyLeft
	KeyRight
	KeyEnter
	KeyScreenshot // S
	KeyStats      // F1
	KeyMotion     // M: toggle reduced motion for the next launch
)

var keyNames = map[string]Key{
	"escape":     KeyEscape,
	"left":       KeyLeft,
	"right":      KeyRight,
	"enter":      KeyEnter,
	"screenshot": KeyScreenshot,
	"stats":      KeyStats,
	"motion":     KeyMotion,
}

// ParseKey maps a script key name to a Key.
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// Frame is one tick of pointer, wheel and keyboard state in viewport
// coordinates.
type Frame struct {
	X, Y float64
	// Moved is set when the pointer position changed since the last frame.
	Moved bool
	// Clicked is set on the frame the primary button or a tap was pressed.
	Clicked bool
	// WheelY is the vertical wheel delta; positive scrolls up.
	WheelY float64
	// Swipe is the start-minus-end horizontal travel of a touch that ended
	// this frame, zero otherwise.
	Swipe float64
	Keys  []Key
	// Screenshot carries a label when a capture was requested.
	Screenshot string
}

// Pressed reports whether k was pressed this frame.
func (f Frame) Pressed(k Key) bool {
	for _, fk := range f.Keys {
		if fk == k {
			return true
		}
	}
	return false
}

// Input supplies one Frame per tick.
type Input interface {
	Poll() Frame
}

// EbitenInput reads the mouse, touch screen and keyboard through ebiten.
type EbitenInput struct {
	lastX, lastY float64
	seen         bool
	touchIDs     []ebiten.TouchID
	touchStart   map[ebiten.TouchID]float64
}

// NewEbitenInput creates a live input source.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{touchStart: make(map[ebiten.TouchID]float64)}
}

var ebitenKeys = [...]struct {
	key ebiten.Key
	k   Key
}{
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyS, KeyScreenshot},
	{ebiten.KeyF1, KeyStats},
	{ebiten.KeyM, KeyMotion},
}

// Poll samples the devices.
func (in *EbitenInput) Poll() Frame {
	var f Frame
	cx, cy := ebiten.CursorPosition()
	f.X, f.Y = float64(cx), float64(cy)

	in.touchIDs = inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])
	for _, id := range in.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		in.touchStart[id] = float64(tx)
		f.X, f.Y = float64(tx), float64(ty)
		f.Clicked = true
	}
	in.touchIDs = inpututil.AppendJustReleasedTouchIDs(in.touchIDs[:0])
	for _, id := range in.touchIDs {
		start, ok := in.touchStart[id]
		if !ok {
			continue
		}
		tx, _ := inpututil.TouchPositionInPreviousTick(id)
		f.Swipe = start - float64(tx)
		delete(in.touchStart, id)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		f.Clicked = true
	}
	_, f.WheelY = ebiten.Wheel()

	for _, b := range ebitenKeys {
		if inpututil.IsKeyJustPressed(b.key) {
			f.Keys = append(f.Keys, b.k)
		}
	}
	if f.Pressed(KeyScreenshot) {
		f.Screenshot = "manual"
	}

	f.Moved = !in.seen || f.X != in.lastX || f.Y != in.lastY
	in.seen = true
	in.lastX, in.lastY = f.X, f.Y
	return f
}
