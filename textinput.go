package wicker

// Single-line text input. Editing is delegated to the input source's EditText
// so that keyboard repeat, character input, and caret movement behave the
// same for the real backend and for scripted tests.

// caretBlinkInterval is the caret's on/off half-period in seconds.
const caretBlinkInterval = 0.5

// fieldState is the editable text state of a text input.
type fieldState struct {
	value       []rune
	caret       int
	placeholder string
	font        Font
	maxLength   int     // 0 = unlimited
	blink       float64 // seconds into the blink cycle, reset on edits
}

// NewTextInput creates a focusable single-line text field. The placeholder is
// shown while the field is empty and unfocused.
func NewTextInput(placeholder string, font Font) *Entity {
	e := &Entity{
		Kind:  KindTextInput,
		size:  Vec2{SizeFill, defaultItemHeight},
		field: &fieldState{placeholder: placeholder, font: font},
	}
	entityDefaults(e)
	e.Padding = 4
	return e
}

func (e *Entity) mustField() *fieldState {
	if e.field == nil {
		panic("wicker: " + e.Kind.String() + " is not a text input")
	}
	return e.field
}

// setFieldText replaces the field's value, clamping the caret and firing
// EventValueChanged on change. Backs Entity.SetText for text inputs.
func (e *Entity) setFieldText(text string) {
	f := e.mustField()
	value := []rune(text)
	if f.maxLength > 0 && len(value) > f.maxLength {
		value = value[:f.maxLength]
	}
	if string(f.value) == string(value) {
		return
	}
	f.value = value
	if f.caret > len(f.value) {
		f.caret = len(f.value)
	}
	f.blink = 0
	e.emit(EventValueChanged, EventContext{Entity: e})
}

// Placeholder returns the text shown while the field is empty and unfocused.
func (e *Entity) Placeholder() string {
	return e.mustField().placeholder
}

// SetPlaceholder sets the empty-field hint text.
func (e *Entity) SetPlaceholder(text string) {
	e.mustField().placeholder = text
}

// MaxLength returns the value length limit in runes, 0 for unlimited.
func (e *Entity) MaxLength() int {
	return e.mustField().maxLength
}

// SetMaxLength limits the value to n runes, truncating the current value if
// it is already longer.
func (e *Entity) SetMaxLength(n int) {
	f := e.mustField()
	if n < 0 {
		n = 0
	}
	f.maxLength = n
	if n > 0 && len(f.value) > n {
		e.setFieldText(string(f.value[:n]))
	}
}

// CaretPosition returns the caret's rune index into the value.
func (e *Entity) CaretPosition() int {
	return e.mustField().caret
}

// tickField advances the focused field by one frame: applies the input
// source's pending edits and the blink timer. Fires EventValueChanged when
// the value changed.
func (e *Entity) tickField(input InputSource, dt float64) {
	f := e.field
	if f == nil || input == nil {
		return
	}
	before := string(f.value)
	value, caret := input.EditText(f.value, f.caret)
	if f.maxLength > 0 && len(value) > f.maxLength {
		value = value[:f.maxLength]
		if caret > len(value) {
			caret = len(value)
		}
	}
	caretMoved := caret != f.caret
	f.value = value
	f.caret = caret
	f.blink += dt
	if after := string(f.value); after != before {
		f.blink = 0
		e.emit(EventValueChanged, EventContext{Entity: e})
	} else if caretMoved {
		f.blink = 0
	}
}

// caretVisible reports whether the blinking caret is currently in its "on"
// half-period.
func (f *fieldState) caretVisible() bool {
	cycle := f.blink / caretBlinkInterval
	return int(cycle)%2 == 0
}

// displayText returns what the field renders: the value, or the placeholder
// when empty and unfocused.
func (e *Entity) displayText() (text string, isPlaceholder bool) {
	f := e.field
	if len(f.value) > 0 {
		return string(f.value), false
	}
	if !e.IsFocused() {
		return f.placeholder, true
	}
	return "", false
}
