package wicker

// Widget constructors. Visual styling lives in the Theme; constructors only
// establish defaults so that every widget is usable (and testable) without
// any theme at all — a missing skin degrades to drawing nothing for that
// layer, never to an error.

// labelState is the text content of paragraphs and buttons.
type labelState struct {
	text  string
	font  Font
	color Color
}

// imageState is the texture displayed by an image widget.
type imageState struct {
	texture Texture
	source  Rect // zero = whole texture
}

// checkState is a checkbox's mark and caption.
type checkState struct {
	checked bool
	text    string
	font    Font
}

// NewParagraph creates a text widget. With a nil font the theme's default
// font is used at draw time.
func NewParagraph(text string, font Font) *Entity {
	e := &Entity{
		Kind:  KindParagraph,
		size:  Vec2{SizeAuto, SizeAuto},
		label: &labelState{text: text, font: font, color: ColorWhite},
	}
	entityDefaults(e)
	return e
}

// NewButton creates a clickable button with a centered caption.
func NewButton(text string, font Font) *Entity {
	e := &Entity{
		Kind:  KindButton,
		size:  Vec2{SizeFill, 40},
		label: &labelState{text: text, font: font, color: ColorWhite},
	}
	entityDefaults(e)
	e.Padding = 4
	return e
}

// NewImage creates a widget displaying a texture stretched to the widget's
// destination rectangle.
func NewImage(tex Texture) *Entity {
	e := &Entity{
		Kind: KindImage,
		size: Vec2{SizeAuto, SizeAuto},
		img:  &imageState{texture: tex},
	}
	entityDefaults(e)
	return e
}

// NewCheckbox creates a toggle with a caption. Clicking flips the value and
// fires EventValueChanged.
func NewCheckbox(text string, font Font) *Entity {
	e := &Entity{
		Kind:  KindCheckbox,
		size:  Vec2{SizeAuto, SizeAuto},
		check: &checkState{text: text, font: font},
	}
	entityDefaults(e)
	return e
}

// NewProgressBar creates a read-only value display over [min, max].
func NewProgressBar(min, max int) *Entity {
	if max < min {
		max = min
	}
	e := &Entity{
		Kind: KindProgressBar,
		size: Vec2{SizeFill, 20},
		rng:  &rangeState{min: min, max: max, value: min, horizontal: true},
	}
	entityDefaults(e)
	return e
}

func (e *Entity) mustLabel() *labelState {
	if e.label == nil {
		panic("wicker: " + e.Kind.String() + " has no text")
	}
	return e.label
}

// Text returns the widget's text content.
func (e *Entity) Text() string {
	switch {
	case e.label != nil:
		return e.label.text
	case e.check != nil:
		return e.check.text
	case e.field != nil:
		return string(e.field.value)
	}
	panic("wicker: " + e.Kind.String() + " has no text")
}

// SetText replaces the widget's text content and invalidates layout (the
// widget may be auto-sized from its content).
func (e *Entity) SetText(text string) {
	switch {
	case e.label != nil:
		if e.label.text == text {
			return
		}
		e.label.text = text
	case e.check != nil:
		if e.check.text == text {
			return
		}
		e.check.text = text
	case e.field != nil:
		e.setFieldText(text)
		return
	default:
		panic("wicker: " + e.Kind.String() + " has no text")
	}
	e.invalidateLayout()
}

// SetFont sets the widget's font; nil falls back to the theme default.
func (e *Entity) SetFont(font Font) {
	switch {
	case e.label != nil:
		e.label.font = font
	case e.check != nil:
		e.check.font = font
	case e.field != nil:
		e.field.font = font
	default:
		panic("wicker: " + e.Kind.String() + " has no text")
	}
	e.invalidateLayout()
}

// SetTextColor sets the text tint for widgets with a label.
func (e *Entity) SetTextColor(c Color) {
	e.mustLabel().color = c
}

// Checked reports the checkbox's value.
func (e *Entity) Checked() bool {
	return e.mustCheck().checked
}

// SetChecked sets the checkbox's value, firing EventValueChanged on change.
func (e *Entity) SetChecked(v bool) {
	c := e.mustCheck()
	if c.checked == v {
		return
	}
	c.checked = v
	e.emit(EventValueChanged, EventContext{Entity: e})
}

func (e *Entity) mustCheck() *checkState {
	if e.check == nil {
		panic("wicker: " + e.Kind.String() + " is not a checkbox")
	}
	return e.check
}

// SetTexture replaces an image widget's texture.
func (e *Entity) SetTexture(tex Texture) {
	if e.img == nil {
		panic("wicker: " + e.Kind.String() + " is not an image")
	}
	e.img.texture = tex
	e.invalidateLayout()
}

// fontOrDefault resolves a widget font against the theme's default.
func (e *Entity) fontOrDefault(f Font) Font {
	if f != nil {
		return f
	}
	if e.ui != nil && e.ui.theme != nil {
		return e.ui.theme.DefaultFont()
	}
	return nil
}
