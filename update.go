package wicker

// Per-frame input dispatch. One Update pass walks the tree once to find the
// pointer target (topmost-wins), then advances the pointer state machine:
// hover transitions, press/release/click, dragging, wheel routing, and
// keyboard focus. All state committed here is what Draw renders afterwards;
// Update never draws and Draw never mutates interaction state.

// wheelPanelStep is how many content pixels one wheel tick scrolls a panel.
// Lists scroll one item per tick instead.
const wheelPanelStep = 20

// updateFrame advances the interaction state machine by one frame.
func (ui *uiState) updateFrame(root *Entity, dt float64) {
	if ui.input != nil {
		ui.input.Refresh(dt)
	}
	ui.fireSpawns(root)
	in := ui.input
	if in == nil {
		return
	}

	pointer := in.PointerPosition()
	hit := hitTest(root, pointer, Vec2{})
	target := hit
	if target != nil && (target.isDisabled() || !target.interactive()) {
		// Disabled entities and plain text still occlude what is beneath
		// them, but never interact.
		target = nil
	}

	ui.updateHover(target, pointer)
	// Drag before buttons: the release frame's delta still applies, and the
	// press frame is a no-op since the drag only starts in updateButtons.
	ui.updateDrag(pointer, in)
	ui.updateButtons(target, pointer, in)
	ui.updateWheel(in)
	ui.updateFocusedField(in, dt)
	ui.commitStates(in)
}

// interactive reports whether the entity participates in pointer events at
// all. Paragraphs and images are passive unless made draggable or given a
// tooltip.
func (e *Entity) interactive() bool {
	switch e.Kind {
	case KindParagraph, KindImage:
		return e.Draggable || e.TooltipText != "" || e.internal
	}
	return true
}

// hitTest returns the topmost visible entity containing the pointer, walking
// children in descending priority so that later/higher entities win over
// earlier/lower ones. scroll is the accumulated scroll offset of the
// scrolling ancestors: child rectangles live in content space and are
// shifted back into screen space for the containment check.
func hitTest(e *Entity, pointer Vec2, scroll Vec2) *Entity {
	if !e.visible {
		return nil
	}
	rect := e.DestRect().Translated(-scroll.X, -scroll.Y)

	childrenTestable := true
	childScroll := scroll
	if e.panel != nil && e.panel.overflow != OverflowThrough {
		// Clipped children are only hittable through the visible window.
		internal := e.InternalRect().Translated(-scroll.X, -scroll.Y)
		childrenTestable = internal.Contains(pointer.X, pointer.Y) ||
			rect.Contains(pointer.X, pointer.Y)
		if e.panel.overflow == OverflowVerticalScroll {
			childScroll.Y += float64(e.ScrollValue())
		}
	}

	if childrenTestable {
		ordered := e.sortedByPriority()
		for i := len(ordered) - 1; i >= 0; i-- {
			c := ordered[i]
			cs := childScroll
			if e.panel != nil && c == e.panel.scrollbar {
				// The docked scrollbar never shifts with the content.
				cs = scroll
			}
			if found := hitTest(c, pointer, cs); found != nil {
				return found
			}
		}
	}

	if rect.Contains(pointer.X, pointer.Y) {
		return e
	}
	return nil
}

// accumulatedScroll sums the scroll offsets of the scrolling ancestors of e,
// i.e. the amount to subtract from e's DestRect to reach screen space.
func accumulatedScroll(e *Entity) Vec2 {
	var scroll Vec2
	for p := e.Parent; p != nil; p = p.Parent {
		if p.panel != nil && p.panel.overflow == OverflowVerticalScroll {
			if e.panelForScroll() != p {
				scroll.Y += float64(p.ScrollValue())
			}
		}
	}
	return scroll
}

// fireSpawns emits EventSpawn once per entity, on its first visible update.
func (ui *uiState) fireSpawns(e *Entity) {
	if !e.visible {
		return
	}
	if !e.spawned {
		e.spawned = true
		e.emit(EventSpawn, EventContext{Entity: e})
	}
	for _, c := range e.children {
		ui.fireSpawns(c)
	}
}

// updateHover commits hover transitions and the per-frame while-hover event.
func (ui *uiState) updateHover(target *Entity, pointer Vec2) {
	prev := ui.hovered
	if prev != target {
		if prev != nil {
			prev.mouseOver = false
			prev.emit(EventMouseLeave, EventContext{Pointer: pointer})
		}
		if target != nil {
			target.mouseOver = true
			target.emit(EventMouseEnter, EventContext{Pointer: pointer})
		}
		ui.hovered = target
	}
	if target != nil {
		target.emit(EventWhileHover, EventContext{Pointer: pointer})
	}
}

// updateButtons advances the press/release/click state machine for both
// buttons and moves keyboard focus on primary press.
func (ui *uiState) updateButtons(target *Entity, pointer Vec2, in InputSource) {
	if in.Pressed(MouseButtonLeft) {
		ui.pressTarget = target
		ui.moveFocus(target, pointer)
		if target != nil {
			if !target.Locked {
				target.emit(EventMouseDown, EventContext{Pointer: pointer, Button: MouseButtonLeft})
			}
			if target.rng != nil && target.Kind != KindProgressBar && !target.Locked {
				target.valueFromPointer(pointer, accumulatedScroll(target))
			}
			if target.Draggable {
				ui.dragTarget = target
				target.emit(EventStartDrag, EventContext{Pointer: pointer})
			}
		}
	}

	if in.Down(MouseButtonLeft) && ui.pressTarget != nil {
		pt := ui.pressTarget
		if pt.rng != nil && pt.Kind != KindProgressBar && !pt.Locked {
			// Held range handle follows the pointer even outside the track.
			pt.valueFromPointer(pointer, accumulatedScroll(pt))
		}
		if ui.hovered == pt && !pt.Locked {
			pt.emit(EventWhileMouseDown, EventContext{Pointer: pointer, Button: MouseButtonLeft})
		}
	}

	if in.Released(MouseButtonLeft) {
		pt := ui.pressTarget
		ui.pressTarget = nil
		if pt != nil && pt == target && !pt.Locked {
			pt.emit(EventMouseReleased, EventContext{Pointer: pointer, Button: MouseButtonLeft})
			pt.emit(EventClick, EventContext{Pointer: pointer, Button: MouseButtonLeft})
			if pt.check != nil {
				pt.SetChecked(!pt.check.checked)
			}
		}
		if ui.dragTarget != nil {
			ui.dragTarget.emit(EventStopDrag, EventContext{Pointer: pointer})
			ui.dragTarget = nil
		}
	}

	if in.Pressed(MouseButtonRight) {
		ui.rightPressTarget = target
		if target != nil && !target.Locked {
			target.emit(EventRightMouseDown, EventContext{Pointer: pointer, Button: MouseButtonRight})
		}
	}
	if in.Released(MouseButtonRight) {
		rt := ui.rightPressTarget
		ui.rightPressTarget = nil
		if rt != nil && rt == target && !rt.Locked {
			rt.emit(EventRightClick, EventContext{Pointer: pointer, Button: MouseButtonRight})
		}
	}
}

// moveFocus transfers keyboard focus to target (nil clears it), firing the
// focus-lost and focus-gained events on an actual transition.
func (ui *uiState) moveFocus(target *Entity, pointer Vec2) {
	if ui.focused == target {
		return
	}
	if ui.focused != nil {
		prev := ui.focused
		ui.focused = nil
		prev.emit(EventFocusLost, EventContext{Pointer: pointer})
	}
	if target != nil {
		ui.focused = target
		target.emit(EventFocusGained, EventContext{Pointer: pointer})
	}
}

// updateDrag moves the dragged entity by the pointer delta, optionally
// clamped to its parent's internal rectangle.
func (ui *uiState) updateDrag(pointer Vec2, in InputSource) {
	d := ui.dragTarget
	if d == nil {
		return
	}
	delta := in.PointerDelta()
	if delta == (Vec2{}) {
		d.emit(EventWhileDragging, EventContext{Pointer: pointer})
		return
	}
	scale := d.effectiveScale()
	d.SetOffset(Vec2{d.offset.X + delta.X/scale, d.offset.Y + delta.Y/scale})
	if d.LimitDragToParent && d.Parent != nil {
		d.clampToParent()
	}
	d.emit(EventWhileDragging, EventContext{Pointer: pointer, DragDelta: delta})
}

// clampToParent pushes the entity's offset back so its rectangle stays inside
// the parent's internal rectangle.
func (d *Entity) clampToParent() {
	parent := d.Parent.InternalRect()
	rect := d.DestRect()
	scale := d.effectiveScale()
	var dx, dy float64
	if rect.X < parent.X {
		dx = parent.X - rect.X
	} else if rect.X+rect.Width > parent.X+parent.Width {
		dx = parent.X + parent.Width - rect.X - rect.Width
	}
	if rect.Y < parent.Y {
		dy = parent.Y - rect.Y
	} else if rect.Y+rect.Height > parent.Y+parent.Height {
		dy = parent.Y + parent.Height - rect.Y - rect.Height
	}
	if dx != 0 || dy != 0 {
		d.SetOffset(Vec2{d.offset.X + dx/scale, d.offset.Y + dy/scale})
	}
}

// updateWheel routes a wheel tick to the nearest scrollable under the
// pointer: a list scrolls one item, a scrolling panel scrolls a fixed pixel
// step.
func (ui *uiState) updateWheel(in InputSource) {
	dir := in.WheelDirection()
	if dir == 0 || ui.hovered == nil {
		return
	}
	for p := ui.hovered; p != nil; p = p.Parent {
		if p.list != nil && p.list.scrollbar != nil {
			p.list.scrollbar.SetValue(p.list.scrollbar.Value() - dir)
			return
		}
		if p.panel != nil && p.panel.overflow == OverflowVerticalScroll {
			p.SetScrollValue(p.ScrollValue() - dir*wheelPanelStep)
			return
		}
	}
}

// updateFocusedField feeds keyboard input to the focused text field. Escape
// drops focus.
func (ui *uiState) updateFocusedField(in InputSource, dt float64) {
	f := ui.focused
	if f == nil {
		return
	}
	if in.KeyDown(KeyEscape) {
		ui.moveFocus(nil, in.PointerPosition())
		return
	}
	if f.field != nil {
		f.tickField(in, dt)
	}
}

// commitStates derives the visual widget states Draw reads: pressed while the
// primary button is held over the press target, hover otherwise, default for
// everything else.
func (ui *uiState) commitStates(in InputSource) {
	if ui.hovered != nil {
		if ui.pressTarget == ui.hovered && in.Down(MouseButtonLeft) {
			ui.hovered.state = StatePressed
		} else {
			ui.hovered.state = StateHover
		}
	}
	if ui.pressTarget != nil && ui.pressTarget != ui.hovered {
		ui.pressTarget.state = StateDefault
	}
	if ui.lastHovered != nil && ui.lastHovered != ui.hovered {
		ui.lastHovered.state = StateDefault
	}
	ui.lastHovered = ui.hovered
}
