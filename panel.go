package wicker

// defaultScrollbarWidth is the unscaled width reserved for a scrolling
// panel's scrollbar.
const defaultScrollbarWidth = 12.0

// panelState is the container-specific state of a KindPanel entity: the
// overflow policy, the owned offscreen surface, and the auto-attached
// scrollbar.
type panelState struct {
	overflow  Overflow
	surface   Surface
	surfaceW  int
	surfaceH  int
	scrollbar *Entity // owned internal child; only under OverflowVerticalScroll
	drawShift float64 // scroll shift applied to the internal rect during Draw
}

// NewPanel creates a container entity with the default (overflow-through)
// policy.
func NewPanel(size Vec2) *Entity {
	e := &Entity{Kind: KindPanel, size: size, panel: &panelState{}}
	entityDefaults(e)
	return e
}

// Overflow returns the container's overflow policy.
// Panics if the entity is not a container.
func (e *Entity) Overflow() Overflow {
	return e.mustPanel().overflow
}

// SetOverflow transitions the container's overflow policy. Transitioning into
// OverflowVerticalScroll attaches an owned scrollbar; transitioning out
// removes it and disposes the offscreen surface, leaving the container
// observably equal to a freshly constructed one of the same size.
func (e *Entity) SetOverflow(o Overflow) {
	p := e.mustPanel()
	if p.overflow == o {
		return
	}

	if o == OverflowVerticalScroll {
		p.scrollbar = newPanelScrollbar()
		e.AddChild(p.scrollbar)
	} else if p.scrollbar != nil {
		sb := p.scrollbar
		p.scrollbar = nil
		sb.Dispose()
	}
	if o == OverflowThrough {
		p.releaseSurface()
	}
	p.overflow = o
	p.drawShift = 0
	e.invalidateLayout()
}

// newPanelScrollbar builds the internal scrollbar docked to the container's
// right edge. Excluded from serialization and auto-flow; relinked by the
// post-deserialize init pass.
func newPanelScrollbar() *Entity {
	sb := NewScrollbar(0, 0)
	sb.internal = true
	sb.SetAnchor(AnchorTopRight)
	sb.SetSize(Vec2{defaultScrollbarWidth, SizeFill})
	sb.rng.autoMax = true
	// Drawn above siblings so the docked track is never painted over.
	sb.SetPriority(1 << 16)
	return sb
}

// Scrollbar returns the container's auto-created scrollbar, or nil when the
// policy is not OverflowVerticalScroll.
func (e *Entity) Scrollbar() *Entity {
	return e.mustPanel().scrollbar
}

// ScrollValue returns the current scroll offset in content pixels.
func (e *Entity) ScrollValue() int {
	p := e.mustPanel()
	if p.scrollbar == nil {
		return 0
	}
	return p.scrollbar.Value()
}

// SetScrollValue sets the scroll offset, clamped to the valid range.
// No-op when the policy is not OverflowVerticalScroll.
func (e *Entity) SetScrollValue(v int) {
	p := e.mustPanel()
	if p.scrollbar != nil {
		p.scrollbar.SetValue(v)
	}
}

func (e *Entity) mustPanel() *panelState {
	if e.panel == nil {
		panic("wicker: " + e.Kind.String() + " is not a container")
	}
	return e.panel
}

// scrollbarWidth returns the scaled width the internal rect reserves for the
// scrollbar.
func (p *panelState) scrollbarWidth(e *Entity) float64 {
	if p.scrollbar == nil {
		return defaultScrollbarWidth * e.effectiveScale()
	}
	return p.scrollbar.size.X * e.effectiveScale()
}

// setDrawShift applies or removes the scroll shift on the internal rect.
// Children read the internal rect during Draw, so a shift change must
// invalidate their cached rectangles (restored before the next Update so
// hit-testing and layout always see unshifted coordinates).
func (e *Entity) setDrawShift(shift float64) {
	p := e.panel
	if p.drawShift == shift {
		return
	}
	p.drawShift = shift
	e.bumpLayout()
}

// ensureSurface guarantees an offscreen surface of exactly (w, h) pixels,
// reusing the existing one on a same-size hit and recreating it otherwise.
func (p *panelState) ensureSurface(sink DrawSink, w, h int) Surface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if p.surface != nil && !p.surface.IsDisposed() && p.surfaceW == w && p.surfaceH == h {
		return p.surface
	}
	p.releaseSurface()
	p.surface = sink.NewSurface(w, h)
	p.surfaceW = w
	p.surfaceH = h
	return p.surface
}

// releaseSurface disposes the owned surface, if any.
func (p *panelState) releaseSurface() {
	if p.surface != nil {
		p.surface.Dispose()
		p.surface = nil
		p.surfaceW = 0
		p.surfaceH = 0
	}
}

// contentHeight measures how far the children extend below the top of the
// unshifted internal rect, in pixels. Drives the scrollbar's automatic max.
func (e *Entity) contentHeight() float64 {
	internal := e.InternalRect()
	bottom := internal.Y
	for _, c := range e.children {
		if !c.visible || c.internal {
			continue
		}
		r := c.DestRect()
		if r.Y+r.Height > bottom {
			bottom = r.Y + r.Height
		}
	}
	return bottom - internal.Y
}

// refreshScrollRange recomputes the scrollbar's max from content length vs.
// visible capacity. Called every frame the panel draws while scrolling.
func (e *Entity) refreshScrollRange() {
	p := e.panel
	if p == nil || p.scrollbar == nil || !p.scrollbar.rng.autoMax {
		return
	}
	overflowPx := int(e.contentHeight() - e.InternalRect().Height)
	if overflowPx < 0 {
		overflowPx = 0
	}
	p.scrollbar.setRangeInternal(0, overflowPx)
}
