package wicker

// rangeState is the shared state of the ranged-value widgets: the vertical
// scrollbar and the horizontal slider.
type rangeState struct {
	min, max   int
	value      int
	stepCount  int  // 0 = continuous
	autoMax    bool // max recomputed from content vs. capacity by the owner
	horizontal bool
}

// NewScrollbar creates a vertical scrollbar over [min, max].
func NewScrollbar(min, max int) *Entity {
	if max < min {
		max = min
	}
	e := &Entity{
		Kind: KindScrollbar,
		size: Vec2{defaultScrollbarWidth, SizeFill},
		rng:  &rangeState{min: min, max: max, value: min},
	}
	entityDefaults(e)
	return e
}

// NewSlider creates a horizontal slider over [min, max].
func NewSlider(min, max int) *Entity {
	if max < min {
		max = min
	}
	e := &Entity{
		Kind: KindSlider,
		size: Vec2{SizeFill, 20},
		rng:  &rangeState{min: min, max: max, value: min, horizontal: true},
	}
	entityDefaults(e)
	return e
}

func (e *Entity) mustRange() *rangeState {
	if e.rng == nil {
		panic("wicker: " + e.Kind.String() + " has no ranged value")
	}
	return e.rng
}

// Value returns the current value, always within [Min, Max].
func (e *Entity) Value() int {
	return e.mustRange().value
}

// SetValue assigns a new value, clamped to [Min, Max]. Fires
// EventValueChanged when the clamped value actually differs.
func (e *Entity) SetValue(v int) {
	r := e.mustRange()
	v = r.clamp(v)
	if v == r.value {
		return
	}
	r.value = v
	if e.panelForScroll() != nil {
		// Scrolling owner re-reads the value during its next Draw.
		e.Parent.bumpLayout()
	}
	e.emit(EventValueChanged, EventContext{Entity: e})
}

// Min returns the range minimum.
func (e *Entity) Min() int { return e.mustRange().min }

// Max returns the range maximum.
func (e *Entity) Max() int { return e.mustRange().max }

// SetRange assigns the bounds. A max below min is raised to min, so the
// range is never invalid. The current value is re-clamped, firing
// EventValueChanged if it moved.
func (e *Entity) SetRange(min, max int) {
	r := e.mustRange()
	if max < min {
		max = min
	}
	r.min = min
	r.max = max
	if clamped := r.clamp(r.value); clamped != r.value {
		r.value = clamped
		e.emit(EventValueChanged, EventContext{Entity: e})
	}
}

// setRangeInternal is SetRange without the value-changed event, used by the
// auto-max recomputation that runs every frame.
func (e *Entity) setRangeInternal(min, max int) {
	r := e.rng
	if max < min {
		max = min
	}
	r.min = min
	r.max = max
	r.value = r.clamp(r.value)
}

// StepCount returns the number of discrete steps, 0 for continuous.
func (e *Entity) StepCount() int { return e.mustRange().stepCount }

// SetStepCount sets the number of discrete steps the handle snaps to.
func (e *Entity) SetStepCount(n int) {
	if n < 0 {
		n = 0
	}
	e.mustRange().stepCount = n
}

func (r *rangeState) clamp(v int) int {
	if v < r.min {
		v = r.min
	}
	if v > r.max {
		v = r.max
	}
	if r.stepCount > 0 && r.max > r.min {
		span := r.max - r.min
		step := float64(span) / float64(r.stepCount)
		snapped := int(float64(v-r.min)/step + 0.5)
		v = r.min + int(float64(snapped)*step+0.5)
		if v > r.max {
			v = r.max
		}
	}
	return v
}

// panelForScroll returns the parent panel when this entity is its owned
// scrollbar, nil otherwise.
func (e *Entity) panelForScroll() *Entity {
	if e.internal && e.Parent != nil && e.Parent.panel != nil && e.Parent.panel.scrollbar == e {
		return e.Parent
	}
	return nil
}

// valueFromPointer maps a pointer position over the track onto the range.
// Used while the handle is held.
func (e *Entity) valueFromPointer(p Vec2, scroll Vec2) {
	r := e.mustRange()
	rect := e.DestRect().Translated(-scroll.X, -scroll.Y)
	var ratio float64
	if r.horizontal {
		if rect.Width > 0 {
			ratio = (p.X - rect.X) / rect.Width
		}
	} else {
		if rect.Height > 0 {
			ratio = (p.Y - rect.Y) / rect.Height
		}
	}
	ratio = clamp01(ratio)
	e.SetValue(r.min + int(ratio*float64(r.max-r.min)+0.5))
}

// handleRect returns the draggable handle's rectangle inside the track.
func (e *Entity) handleRect() Rect {
	r := e.mustRange()
	rect := e.DestRect()
	span := r.max - r.min
	ratio := 0.0
	if span > 0 {
		ratio = float64(r.value-r.min) / float64(span)
	}
	if r.horizontal {
		hw := rect.Height // square handle
		x := rect.X + ratio*(rect.Width-hw)
		return Rect{x, rect.Y, hw, rect.Height}
	}
	// Vertical: handle height proportional to the visible share, minimum a
	// square.
	hh := rect.Width
	if hh > rect.Height {
		hh = rect.Height
	}
	y := rect.Y + ratio*(rect.Height-hh)
	return Rect{rect.X, y, rect.Width, hh}
}
