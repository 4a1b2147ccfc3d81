package wicker

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is fully transparent black.
var ColorTransparent = Color{0, 0, 0, 0}

// Scaled returns the color with all four components multiplied by f.
func (c Color) Scaled(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A * f}
}

// WithAlpha returns the color with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Desaturated returns the grayscale version of the color, used for drawing
// disabled entities.
func (c Color) Desaturated() Color {
	g := 0.299*c.R + 0.587*c.G + 0.114*c.B
	return Color{g, g, g, c.A}
}

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Translated returns the rectangle shifted by (dx, dy).
func (r Rect) Translated(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset returns the rectangle shrunk by amount on every side. A negative
// amount grows the rectangle.
func (r Rect) Inset(amount float64) Rect {
	return Rect{
		X:      r.X + amount,
		Y:      r.Y + amount,
		Width:  r.Width - amount*2,
		Height: r.Height - amount*2,
	}
}

// Size sentinels for Entity.SetSize. A positive component is an absolute pixel
// size (multiplied by the manager's global scale); SizeFill stretches to the
// parent's remaining axis; SizeAuto derives the size from the entity's content.
const (
	SizeFill float64 = 0
	SizeAuto float64 = -1
)

// Anchor names a reference point inside a parent's internal rectangle used to
// position a child without absolute coordinates. The four Auto variants place
// siblings sequentially (auto-flow) instead of independently.
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorCenterLeft
	AnchorCenter
	AnchorCenterRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
	AnchorAuto             // new row per entity, left-aligned
	AnchorAutoInline       // left-to-right on the current row, wrapping
	AnchorAutoCenter       // new row per entity, horizontally centered
	AnchorAutoInlineCenter // inline flow with the finished row centered
)

// IsAuto reports whether the anchor participates in auto-flow placement.
func (a Anchor) IsAuto() bool {
	return a >= AnchorAuto
}

// isInline reports whether the anchor flows entities on a shared row.
func (a Anchor) isInline() bool {
	return a == AnchorAutoInline || a == AnchorAutoInlineCenter
}

var anchorNames = [...]string{
	"top-left", "top-center", "top-right",
	"center-left", "center", "center-right",
	"bottom-left", "bottom-center", "bottom-right",
	"auto", "auto-inline", "auto-center", "auto-inline-center",
}

// String returns the serialized name of the anchor.
func (a Anchor) String() string {
	if int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return "top-left"
}

// parseAnchor is the inverse of Anchor.String. Unknown names map to
// AnchorTopLeft and ok=false.
func parseAnchor(s string) (Anchor, bool) {
	for i, name := range anchorNames {
		if name == s {
			return Anchor(i), true
		}
	}
	return AnchorTopLeft, false
}

// Overflow is a container's rule for children whose combined size exceeds its
// own bounds.
type Overflow uint8

const (
	// OverflowThrough draws children directly in parent coordinate space,
	// past the container's bounds if necessary. Default.
	OverflowThrough Overflow = iota
	// OverflowClipped draws children into an offscreen surface sized to the
	// container's internal rectangle; pixels outside are discarded.
	OverflowClipped
	// OverflowVerticalScroll clips like OverflowClipped and attaches an
	// auto-created scrollbar that shifts the content vertically.
	OverflowVerticalScroll
)

var overflowNames = [...]string{"through", "clipped", "vertical-scroll"}

// String returns the serialized name of the overflow policy.
func (o Overflow) String() string {
	if int(o) < len(overflowNames) {
		return overflowNames[o]
	}
	return "through"
}

func parseOverflow(s string) (Overflow, bool) {
	for i, name := range overflowNames {
		if name == s {
			return Overflow(i), true
		}
	}
	return OverflowThrough, false
}

// EntityKind distinguishes widget behavior for an Entity.
type EntityKind uint8

const (
	KindPanel EntityKind = iota
	KindParagraph
	KindButton
	KindImage
	KindCheckbox
	KindScrollbar
	KindSlider
	KindSelectList
	KindDropDown
	KindProgressBar
	KindTextInput
)

var kindNames = [...]string{
	"panel", "paragraph", "button", "image", "checkbox",
	"scrollbar", "slider", "select-list", "drop-down", "progress-bar",
	"text-input",
}

// String returns the serialized name of the entity kind.
func (k EntityKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "panel"
}

func parseKind(s string) (EntityKind, bool) {
	for i, name := range kindNames {
		if name == s {
			return EntityKind(i), true
		}
	}
	return KindPanel, false
}

// WidgetState is the interaction state a skin slice is resolved for.
type WidgetState uint8

const (
	StateDefault WidgetState = iota
	StateHover
	StatePressed
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventSpawn             EventType = iota // first Update after construction or reset
	EventMouseEnter                         // pointer entered the entity's bounds
	EventMouseLeave                         // pointer left the entity's bounds
	EventMouseDown                          // primary button pressed over the entity
	EventMouseReleased                      // primary button released over the entity
	EventClick                              // press then release over the same entity
	EventRightMouseDown                     // secondary button pressed over the entity
	EventRightClick                         // secondary press then release over the entity
	EventValueChanged                       // widget-specific value mutation
	EventFocusGained                        // entity became the focused entity
	EventFocusLost                          // entity stopped being the focused entity
	EventStartDrag                          // drag of a draggable entity began
	EventStopDrag                           // drag of a draggable entity ended
	EventVisibilityChanged                  // Visible flag toggled
	EventWhileHover                         // fires every frame the pointer is over the entity
	EventWhileMouseDown                     // fires every frame the button is held over the entity
	EventWhileDragging                      // fires every frame a drag is in progress
	eventTypeCount
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// Key identifies the non-printable keys the toolkit reacts to. Printable
// characters arrive through InputSource.EditText instead.
type Key uint8

const (
	KeyArrowUp Key = iota
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyTab
	KeyEscape
	KeyHome
	KeyEnd
	keyCount
)
