package wicker

import (
	"encoding/json"
	"fmt"
	"sort"
)

// JSON tree persistence. Auto-created internal entities (panel scrollbars,
// list windows, dropdown lists) are skipped on marshal and recreated by the
// widget constructors on unmarshal, so a round trip always yields a tree in
// the same observable state without duplicated internals. Fonts, textures,
// and event handlers are runtime resources and are not serialized; hosts
// rebind them after loading (the theme's default font covers text widgets
// with no explicit font).

// entityRecord is the wire shape of one entity.
type entityRecord struct {
	Identifier string     `json:"id,omitempty"`
	Kind       string     `json:"kind"`
	Anchor     string     `json:"anchor,omitempty"`
	Offset     [2]float64 `json:"offset"`
	Size       [2]float64 `json:"size"`
	Space      struct {
		Before [2]float64 `json:"before"`
		After  [2]float64 `json:"after"`
	} `json:"space"`
	Padding  float64 `json:"padding,omitempty"`
	Priority int     `json:"priority,omitempty"`

	Visible           bool `json:"visible"`
	Locked            bool `json:"locked,omitempty"`
	Disabled          bool `json:"disabled,omitempty"`
	Draggable         bool `json:"draggable,omitempty"`
	LimitDragToParent bool `json:"limitDragToParent,omitempty"`

	Opacity   float64 `json:"opacity"`
	FillColor string  `json:"fillColor,omitempty"`
	Tooltip   string  `json:"tooltip,omitempty"`

	Overflow string `json:"overflow,omitempty"` // panels
	Scroll   int    `json:"scroll,omitempty"`

	Text    string `json:"text,omitempty"` // labels, checkboxes, text inputs
	Checked bool   `json:"checked,omitempty"`

	Min       int `json:"min,omitempty"` // ranged widgets
	Max       int `json:"max,omitempty"`
	Value     int `json:"value,omitempty"`
	StepCount int `json:"stepCount,omitempty"`

	Items         []string `json:"items,omitempty"` // lists
	SelectedIndex int      `json:"selectedIndex"`   // -1 = none
	LockedItems   []int    `json:"lockedItems,omitempty"`
	AllowReselect bool     `json:"allowReselect,omitempty"`
	ItemHeight    float64  `json:"itemHeight,omitempty"`
	Ellipsis      string   `json:"ellipsis,omitempty"`

	Placeholder string `json:"placeholder,omitempty"` // text inputs
	MaxLength   int    `json:"maxLength,omitempty"`

	Children []entityRecord `json:"children,omitempty"`
}

// MarshalTree serializes an entity subtree to indented JSON.
func MarshalTree(e *Entity) ([]byte, error) {
	if e == nil || e.disposed {
		return nil, fmt.Errorf("wicker: cannot marshal a nil or disposed entity")
	}
	return json.MarshalIndent(recordFor(e), "", "  ")
}

func recordFor(e *Entity) entityRecord {
	r := entityRecord{
		Identifier: e.Identifier,
		Kind:       e.Kind.String(),
		Offset:     [2]float64{e.offset.X, e.offset.Y},
		Size:       [2]float64{e.size.X, e.size.Y},
		Padding:    e.Padding,
		Priority:   e.priority,

		Visible:           e.visible,
		Locked:            e.Locked,
		Disabled:          e.Disabled,
		Draggable:         e.Draggable,
		LimitDragToParent: e.LimitDragToParent,

		Opacity: e.Opacity,
		Tooltip: e.TooltipText,
	}
	if e.anchor != AnchorTopLeft {
		r.Anchor = e.anchor.String()
	}
	r.Space.Before = [2]float64{e.SpaceBefore.X, e.SpaceBefore.Y}
	r.Space.After = [2]float64{e.SpaceAfter.X, e.SpaceAfter.Y}
	if e.FillColor.A > 0 {
		r.FillColor = formatHexColor(e.FillColor)
	}

	if e.panel != nil {
		if e.panel.overflow != OverflowThrough {
			r.Overflow = e.panel.overflow.String()
		}
		r.Scroll = e.ScrollValue()
	}
	switch {
	case e.label != nil:
		r.Text = e.label.text
	case e.check != nil:
		r.Text = e.check.text
		r.Checked = e.check.checked
	case e.field != nil:
		r.Text = string(e.field.value)
		r.Placeholder = e.field.placeholder
		r.MaxLength = e.field.maxLength
	}
	if e.rng != nil && !e.rng.autoMax {
		r.Min = e.rng.min
		r.Max = e.rng.max
		r.Value = e.rng.value
		r.StepCount = e.rng.stepCount
	}
	if e.list != nil {
		r.Items = e.list.items
		r.SelectedIndex = e.list.selectedIndex
		r.AllowReselect = e.list.allowReselect
		if e.list.itemHeight != defaultItemHeight {
			r.ItemHeight = e.list.itemHeight
		}
		if e.list.ellipsis != defaultEllipsis {
			r.Ellipsis = e.list.ellipsis
		}
		for idx := range e.list.locked {
			r.LockedItems = append(r.LockedItems, idx)
		}
		sort.Ints(r.LockedItems)
	}

	for _, c := range e.children {
		if c.internal {
			continue
		}
		r.Children = append(r.Children, recordFor(c))
	}
	return r
}

// UnmarshalTree rebuilds an entity subtree from JSON produced by
// MarshalTree. Internal children (scrollbars, list windows) are recreated by
// the constructors, not read from the data.
func UnmarshalTree(data []byte) (*Entity, error) {
	var r entityRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("wicker: parsing tree: %w", err)
	}
	return entityFrom(&r)
}

func entityFrom(r *entityRecord) (*Entity, error) {
	kind, ok := parseKind(r.Kind)
	if !ok {
		return nil, fmt.Errorf("wicker: unknown entity kind %q", r.Kind)
	}
	e := constructKind(kind, r)

	e.Identifier = r.Identifier
	if r.Anchor != "" {
		a, ok := parseAnchor(r.Anchor)
		if !ok {
			return nil, fmt.Errorf("wicker: unknown anchor %q", r.Anchor)
		}
		e.anchor = a
	}
	e.offset = Vec2{r.Offset[0], r.Offset[1]}
	e.size = Vec2{r.Size[0], r.Size[1]}
	e.SpaceBefore = Vec2{r.Space.Before[0], r.Space.Before[1]}
	e.SpaceAfter = Vec2{r.Space.After[0], r.Space.After[1]}
	e.Padding = r.Padding
	e.priority = r.Priority

	e.visible = r.Visible
	e.Locked = r.Locked
	e.Disabled = r.Disabled
	e.Draggable = r.Draggable
	e.LimitDragToParent = r.LimitDragToParent

	e.Opacity = r.Opacity
	e.TooltipText = r.Tooltip
	if r.FillColor != "" {
		c, err := parseHexColor(r.FillColor)
		if err != nil {
			return nil, fmt.Errorf("wicker: entity %q: %w", r.Identifier, err)
		}
		e.FillColor = c
	}

	for i := range r.Children {
		child, err := entityFrom(&r.Children[i])
		if err != nil {
			return nil, err
		}
		e.AddChild(child)
	}

	// Post-construction init: policies that attach internal children run
	// after the declared children exist, mirroring runtime construction order.
	if e.panel != nil && r.Overflow != "" {
		o, ok := parseOverflow(r.Overflow)
		if !ok {
			return nil, fmt.Errorf("wicker: unknown overflow %q", r.Overflow)
		}
		e.SetOverflow(o)
		if r.Scroll != 0 {
			e.SetScrollValue(r.Scroll)
		}
	}
	return e, nil
}

// constructKind builds the right widget for a record, restoring the
// kind-specific state the constructors take as arguments.
func constructKind(kind EntityKind, r *entityRecord) *Entity {
	switch kind {
	case KindPanel:
		return NewPanel(Vec2{r.Size[0], r.Size[1]})
	case KindParagraph:
		return NewParagraph(r.Text, nil)
	case KindButton:
		return NewButton(r.Text, nil)
	case KindImage:
		return NewImage(nil)
	case KindCheckbox:
		e := NewCheckbox(r.Text, nil)
		e.check.checked = r.Checked
		return e
	case KindScrollbar:
		e := NewScrollbar(r.Min, r.Max)
		e.rng.value = e.rng.clamp(r.Value)
		e.rng.stepCount = r.StepCount
		return e
	case KindSlider:
		e := NewSlider(r.Min, r.Max)
		e.rng.value = e.rng.clamp(r.Value)
		e.rng.stepCount = r.StepCount
		return e
	case KindProgressBar:
		e := NewProgressBar(r.Min, r.Max)
		e.rng.value = e.rng.clamp(r.Value)
		return e
	case KindSelectList, KindDropDown:
		var e *Entity
		if kind == KindDropDown {
			e = NewDropDown(r.Items, nil)
		} else {
			e = NewSelectList(r.Items, nil)
		}
		restoreListState(e, r)
		return e
	case KindTextInput:
		e := NewTextInput(r.Placeholder, nil)
		e.field.maxLength = r.MaxLength
		e.field.value = []rune(r.Text)
		e.field.caret = len(e.field.value)
		return e
	}
	return NewEntity(kind, Vec2{r.Size[0], r.Size[1]})
}

func restoreListState(e *Entity, r *entityRecord) {
	l := e.list
	if r.SelectedIndex >= 0 && r.SelectedIndex < len(l.items) {
		l.selectedIndex = r.SelectedIndex
		if l.dropList != nil {
			l.dropList.list.selectedIndex = r.SelectedIndex
		}
	} else {
		l.selectedIndex = -1
	}
	l.allowReselect = r.AllowReselect
	if r.ItemHeight > 0 {
		l.itemHeight = r.ItemHeight
	}
	if r.Ellipsis != "" {
		l.ellipsis = r.Ellipsis
	}
	for _, idx := range r.LockedItems {
		e.SetItemLocked(idx, true)
	}
}

// formatHexColor is the inverse of parseHexColor, always emitting the
// 8-digit form.
func formatHexColor(c Color) string {
	to255 := func(v float64) int {
		return int(clamp01(v)*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", to255(c.R), to255(c.G), to255(c.B), to255(c.A))
}
