package wicker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// InputSource is the capability the manager polls once per frame. Refresh
// commits the frame's state; every other method answers from that committed
// state so that Update and Draw observe identical input within a frame.
type InputSource interface {
	Refresh(dt float64)

	PointerPosition() Vec2
	PointerDelta() Vec2
	Down(b MouseButton) bool
	Pressed(b MouseButton) bool  // transitioned up -> down this frame
	Released(b MouseButton) bool // transitioned down -> up this frame
	WheelDirection() int         // -1, 0, or 1

	KeyDown(k Key) bool

	// EditText applies one frame's worth of edits to a string and caret:
	// printable characters insert at the caret, special keys (arrows,
	// backspace, delete, home, end) move or delete, with key-repeat cooldown
	// handled inside the source. Enter and Tab are NOT consumed here; widgets
	// observe them via KeyDown.
	EditText(text []rune, caret int) ([]rune, int)
}

// --- Ebiten implementation ---

var ebitenKeyFor = [keyCount]ebiten.Key{
	KeyArrowUp:    ebiten.KeyArrowUp,
	KeyArrowDown:  ebiten.KeyArrowDown,
	KeyArrowLeft:  ebiten.KeyArrowLeft,
	KeyArrowRight: ebiten.KeyArrowRight,
	KeyBackspace:  ebiten.KeyBackspace,
	KeyDelete:     ebiten.KeyDelete,
	KeyEnter:      ebiten.KeyEnter,
	KeyTab:        ebiten.KeyTab,
	KeyEscape:     ebiten.KeyEscape,
	KeyHome:       ebiten.KeyHome,
	KeyEnd:        ebiten.KeyEnd,
}

var ebitenButtonFor = [3]ebiten.MouseButton{
	MouseButtonLeft:   ebiten.MouseButtonLeft,
	MouseButtonRight:  ebiten.MouseButtonRight,
	MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

const (
	keyRepeatDelay    = 0.45 // seconds before a held key starts repeating
	keyRepeatInterval = 0.04 // seconds between repeats once started
)

// EbitenInput is the InputSource backed by Ebitengine's mouse and keyboard.
// Previous-frame state is tracked internally to derive pressed/released
// edges and key repeat.
type EbitenInput struct {
	pos       Vec2
	prevPos   Vec2
	down      [3]bool
	prevDown  [3]bool
	wheel     int
	keyDown   [keyCount]bool
	keyHeld   [keyCount]float64 // seconds held
	keyRepeat [keyCount]bool    // key fires an edit this frame
	chars     []rune
}

// NewEbitenInput creates an input source polling Ebitengine state.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// Refresh polls ebiten once and commits this frame's input state.
func (in *EbitenInput) Refresh(dt float64) {
	in.prevPos = in.pos
	mx, my := ebiten.CursorPosition()
	in.pos = Vec2{float64(mx), float64(my)}

	in.prevDown = in.down
	for b := range in.down {
		in.down[b] = ebiten.IsMouseButtonPressed(ebitenButtonFor[b])
	}

	_, wy := ebiten.Wheel()
	switch {
	case wy > 0:
		in.wheel = 1
	case wy < 0:
		in.wheel = -1
	default:
		in.wheel = 0
	}

	for k := Key(0); k < keyCount; k++ {
		held := ebiten.IsKeyPressed(ebitenKeyFor[k])
		in.keyRepeat[k] = false
		if held {
			if !in.keyDown[k] {
				in.keyRepeat[k] = true // initial press fires immediately
				in.keyHeld[k] = 0
			} else {
				in.keyHeld[k] += dt
				if in.keyHeld[k] >= keyRepeatDelay {
					in.keyHeld[k] -= keyRepeatInterval
					in.keyRepeat[k] = true
				}
			}
		} else {
			in.keyHeld[k] = 0
		}
		in.keyDown[k] = held
	}

	in.chars = ebiten.AppendInputChars(in.chars[:0])
}

func (in *EbitenInput) PointerPosition() Vec2 { return in.pos }

func (in *EbitenInput) PointerDelta() Vec2 {
	return in.pos.Sub(in.prevPos)
}

func (in *EbitenInput) Down(b MouseButton) bool { return in.down[b] }

func (in *EbitenInput) Pressed(b MouseButton) bool {
	return in.down[b] && !in.prevDown[b]
}

func (in *EbitenInput) Released(b MouseButton) bool {
	return !in.down[b] && in.prevDown[b]
}

func (in *EbitenInput) WheelDirection() int { return in.wheel }

func (in *EbitenInput) KeyDown(k Key) bool { return in.keyDown[k] }

// EditText applies this frame's typed characters and editing keys.
func (in *EbitenInput) EditText(text []rune, caret int) ([]rune, int) {
	return applyTextEdits(text, caret, in.chars, func(k Key) bool { return in.keyRepeat[k] })
}

// applyTextEdits is the shared editing core for both input sources.
// fires reports whether an editing key takes effect this frame (press or
// repeat tick).
func applyTextEdits(text []rune, caret int, typed []rune, fires func(Key) bool) ([]rune, int) {
	if caret < 0 {
		caret = 0
	}
	if caret > len(text) {
		caret = len(text)
	}
	for _, r := range typed {
		if r < 0x20 {
			continue
		}
		text = append(text, 0)
		copy(text[caret+1:], text[caret:])
		text[caret] = r
		caret++
	}
	if fires(KeyBackspace) && caret > 0 {
		text = append(text[:caret-1], text[caret:]...)
		caret--
	}
	if fires(KeyDelete) && caret < len(text) {
		text = append(text[:caret], text[caret+1:]...)
	}
	if fires(KeyArrowLeft) && caret > 0 {
		caret--
	}
	if fires(KeyArrowRight) && caret < len(text) {
		caret++
	}
	if fires(KeyHome) {
		caret = 0
	}
	if fires(KeyEnd) {
		caret = len(text)
	}
	return text, caret
}

// --- Scripted implementation (tests and automation) ---

// InputFrame is one frame of synthetic input state.
type InputFrame struct {
	Pos   Vec2
	Down  [3]bool
	Wheel int
	Keys  []Key  // keys that fire this frame (edge behavior)
	Text  string // printable characters typed this frame
}

// ScriptedInput replays a queue of InputFrames, one per Refresh call. After
// the queue drains the last frame's state persists with buttons released.
// It is the test-side InputSource: interaction tests script pointer
// sequences instead of opening a window.
type ScriptedInput struct {
	queue   []InputFrame
	current InputFrame
	prev    InputFrame
}

// NewScriptedInput creates an empty scripted source.
func NewScriptedInput() *ScriptedInput {
	return &ScriptedInput{}
}

// Queue appends raw frames to the script.
func (in *ScriptedInput) Queue(frames ...InputFrame) {
	in.queue = append(in.queue, frames...)
}

// MoveTo queues a single frame with the pointer at (x, y), no buttons.
func (in *ScriptedInput) MoveTo(x, y float64) {
	in.Queue(InputFrame{Pos: Vec2{x, y}})
}

// Press queues a frame holding the given button at (x, y).
func (in *ScriptedInput) Press(x, y float64, b MouseButton) {
	f := InputFrame{Pos: Vec2{x, y}}
	f.Down[b] = true
	in.Queue(f)
}

// Release queues a frame with all buttons up at (x, y).
func (in *ScriptedInput) Release(x, y float64) {
	in.Queue(InputFrame{Pos: Vec2{x, y}})
}

// Click queues a press frame followed by a release frame at (x, y).
// Consumes two Update calls.
func (in *ScriptedInput) Click(x, y float64) {
	in.Press(x, y, MouseButtonLeft)
	in.Release(x, y)
}

// RightClick queues a secondary-button press and release at (x, y).
func (in *ScriptedInput) RightClick(x, y float64) {
	in.Press(x, y, MouseButtonRight)
	in.Release(x, y)
}

// Drag queues a full drag: press at (fromX, fromY), linearly interpolated
// held moves over frames-2 intermediate frames, release at (toX, toY).
// Minimum frames is 2 (press + release).
func (in *ScriptedInput) Drag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.Press(fromX, fromY, MouseButtonLeft)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		f := InputFrame{Pos: Vec2{fromX + (toX-fromX)*t, fromY + (toY-fromY)*t}}
		f.Down[MouseButtonLeft] = true
		in.Queue(f)
	}
	in.Release(toX, toY)
}

// Wheel queues a frame with a scroll wheel tick at (x, y).
func (in *ScriptedInput) Wheel(x, y float64, dir int) {
	in.Queue(InputFrame{Pos: Vec2{x, y}, Wheel: dir})
}

// Type queues a frame typing the given text.
func (in *ScriptedInput) Type(text string) {
	in.Queue(InputFrame{Pos: in.current.Pos, Text: text})
}

// Tap queues a frame firing the given special key.
func (in *ScriptedInput) Tap(k Key) {
	in.Queue(InputFrame{Pos: in.current.Pos, Keys: []Key{k}})
}

// Pending returns the number of frames not yet consumed.
func (in *ScriptedInput) Pending() int {
	return len(in.queue)
}

// Refresh pops the next scripted frame.
func (in *ScriptedInput) Refresh(dt float64) {
	in.prev = in.current
	if len(in.queue) > 0 {
		in.current = in.queue[0]
		copy(in.queue, in.queue[1:])
		in.queue = in.queue[:len(in.queue)-1]
	} else {
		// Idle: pointer stays put, buttons and keys release.
		in.current = InputFrame{Pos: in.current.Pos}
	}
}

func (in *ScriptedInput) PointerPosition() Vec2 { return in.current.Pos }

func (in *ScriptedInput) PointerDelta() Vec2 {
	return in.current.Pos.Sub(in.prev.Pos)
}

func (in *ScriptedInput) Down(b MouseButton) bool { return in.current.Down[b] }

func (in *ScriptedInput) Pressed(b MouseButton) bool {
	return in.current.Down[b] && !in.prev.Down[b]
}

func (in *ScriptedInput) Released(b MouseButton) bool {
	return !in.current.Down[b] && in.prev.Down[b]
}

func (in *ScriptedInput) WheelDirection() int { return in.current.Wheel }

func (in *ScriptedInput) KeyDown(k Key) bool {
	for _, key := range in.current.Keys {
		if key == k {
			return true
		}
	}
	return false
}

// EditText applies the scripted frame's text and keys.
func (in *ScriptedInput) EditText(text []rune, caret int) ([]rune, int) {
	return applyTextEdits(text, caret, []rune(in.current.Text), in.KeyDown)
}
