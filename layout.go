package wicker

// Layout resolution. An entity's absolute destination rectangle is always
// derivable from its parent's internal rectangle plus its own anchor, offset,
// and declared size. Results are cached per entity and invalidated by version
// comparison: the parent's layout version changes whenever the parent's own
// rectangle, its child list, or any sibling's layout inputs change, and the
// shared scale version changes when the global UI scale or screen size does.

// DestRect returns the entity's absolute destination rectangle, recomputing
// it only if the cached value is stale. Resolving twice without any mutation
// yields identical results and does not touch any version counter.
func (e *Entity) DestRect() Rect {
	parentRect := e.parentInternalRect()
	pv := e.parentLayoutVersion()
	sv := e.currentScaleVersion()
	if e.destValid && e.seenLayoutVersion == pv && e.seenScaleVersion == sv {
		return e.destRect
	}
	r := e.computeDestRect(parentRect)
	if r != e.destRect {
		// The rectangle actually moved: descendants recompute on next read.
		e.bumpLayout()
	}
	e.destRect = r
	e.destValid = true
	e.seenLayoutVersion = pv
	e.seenScaleVersion = sv
	return r
}

// InternalRect returns the content area: the destination rectangle inset by
// padding and, for scrolling panels, narrowed by the scrollbar and shifted
// upward by the in-flight scroll amount during Draw.
func (e *Entity) InternalRect() Rect {
	r := e.DestRect().Inset(e.Padding * e.effectiveScale())
	if e.panel != nil {
		if e.panel.overflow == OverflowVerticalScroll {
			r.Width -= e.panel.scrollbarWidth(e)
		}
		r.Y -= e.panel.drawShift
	}
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

// parentInternalRect returns the rectangle this entity resolves against: the
// parent's internal rectangle, or the screen for a detached root. A docked
// scrollbar resolves against the full padded rect instead — the internal
// rectangle already excludes the strip the scrollbar itself occupies.
func (e *Entity) parentInternalRect() Rect {
	if e.Parent != nil {
		if e.isDockedScrollbar() {
			return e.Parent.dockRect()
		}
		return e.Parent.InternalRect()
	}
	if e.ui != nil && (e.ui.screen.X > 0 || e.ui.screen.Y > 0) {
		return Rect{0, 0, e.ui.screen.X, e.ui.screen.Y}
	}
	// Detached entity: resolve against its own scaled size at the origin.
	size := e.resolveSize(Rect{})
	return Rect{0, 0, size.X, size.Y}
}

// isDockedScrollbar reports whether this entity is the auto-created
// scrollbar of its parent panel or list.
func (e *Entity) isDockedScrollbar() bool {
	if e.panelForScroll() != nil {
		return true
	}
	return e.internal && e.Parent != nil && e.Parent.list != nil && e.Parent.list.scrollbar == e
}

// dockRect is the padded rect without the scrollbar reservation or scroll
// shift, where the scrollbar itself docks.
func (e *Entity) dockRect() Rect {
	r := e.DestRect().Inset(e.Padding * e.effectiveScale())
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

func (e *Entity) parentLayoutVersion() uint64 {
	if e.Parent != nil {
		return e.Parent.layoutVersion
	}
	return 0
}

func (e *Entity) currentScaleVersion() int {
	if e.ui != nil {
		return e.ui.scaleVersion
	}
	return 0
}

// resolveSize maps the declared size onto pixels: positive components scale
// by the global UI scale, SizeFill stretches to the parent axis, SizeAuto
// measures the entity's content. A mixed declaration like (SizeFill, 40)
// produces the pervasive full-width fixed-height bar.
func (e *Entity) resolveSize(parentRect Rect) Vec2 {
	scale := e.effectiveScale()
	var measured Vec2
	if e.size.X < 0 || e.size.Y < 0 {
		measured = e.measureContent()
	}
	var out Vec2
	switch {
	case e.size.X > 0:
		out.X = e.size.X * scale
	case e.size.X == SizeFill:
		out.X = parentRect.Width
	default:
		out.X = measured.X * scale
	}
	switch {
	case e.size.Y > 0:
		out.Y = e.size.Y * scale
	case e.size.Y == SizeFill:
		out.Y = parentRect.Height
	default:
		out.Y = measured.Y * scale
	}
	if out.X < 0 || out.Y < 0 {
		panic("wicker: negative entity size after scaling")
	}
	return out
}

// computeDestRect places the resolved size inside parentRect per the anchor.
func (e *Entity) computeDestRect(parentRect Rect) Rect {
	size := e.resolveSize(parentRect)
	scale := e.effectiveScale()
	off := Vec2{e.offset.X * scale, e.offset.Y * scale}

	if e.anchor.IsAuto() {
		if e.Parent == nil {
			panic("wicker: auto-flow anchor on an entity with no parent")
		}
		pos := e.Parent.autoFlowPosition(e, parentRect, size)
		return Rect{pos.X + off.X, pos.Y + off.Y, size.X, size.Y}
	}

	var x, y float64
	switch e.anchor {
	case AnchorTopLeft, AnchorCenterLeft, AnchorBottomLeft:
		x = parentRect.X + off.X
	case AnchorTopCenter, AnchorCenter, AnchorBottomCenter:
		x = parentRect.X + (parentRect.Width-size.X)/2 + off.X
	case AnchorTopRight, AnchorCenterRight, AnchorBottomRight:
		x = parentRect.X + parentRect.Width - size.X - off.X
	}
	switch e.anchor {
	case AnchorTopLeft, AnchorTopCenter, AnchorTopRight:
		y = parentRect.Y + off.Y
	case AnchorCenterLeft, AnchorCenter, AnchorCenterRight:
		y = parentRect.Y + (parentRect.Height-size.Y)/2 + off.Y
	case AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight:
		y = parentRect.Y + parentRect.Height - size.Y - off.Y
	}
	return Rect{x, y, size.X, size.Y}
}

// --- Auto-flow ---

// flowCursor tracks the parent's "next free slot" while laying out auto-flow
// children in insertion order.
type flowCursor struct {
	x, y       float64
	rowHeight  float64
	afterX     float64 // previous inline entity's SpaceAfter.X (scaled)
	afterY     float64 // previous auto-flow entity's SpaceAfter.Y (scaled)
	placedAny  bool
	rowHasItem bool
}

// autoFlowPosition computes the top-left position for target, an auto-flow
// child of e, by replaying the flow cursor over the visible auto-flow
// children that precede it in insertion order. Earlier siblings' sizes are
// read through their own (cached) resolution, so a full replay after an
// invalidation costs O(n) per child and O(1) when cached.
//
// Positions are computed against the parent's unshifted internal rectangle;
// the caller passes parentRect which already excludes any scroll shift at
// layout time (the shift is applied and restored inside Draw only).
func (e *Entity) autoFlowPosition(target *Entity, parentRect Rect, targetSize Vec2) Vec2 {
	var cur flowCursor
	for _, c := range e.children {
		if !c.visible || !c.anchor.IsAuto() || c.internal {
			continue
		}
		var size Vec2
		if c == target {
			size = targetSize
		} else {
			size = c.resolveSize(parentRect)
		}
		pos := cur.place(c, parentRect, size, e.effectiveScale())
		if c == target {
			return pos
		}
	}
	// target is not a child of e (programming error).
	panic("wicker: auto-flow target is not a child of this entity")
}

// place advances the cursor for one entity and returns its position.
func (cur *flowCursor) place(c *Entity, parentRect Rect, size Vec2, scale float64) Vec2 {
	spaceBeforeX := c.SpaceBefore.X * scale
	spaceBeforeY := c.SpaceBefore.Y * scale

	if c.anchor.isInline() {
		gapX := maxf(cur.afterX, spaceBeforeX)
		if !cur.rowHasItem {
			gapX = 0
			if c.anchor == AnchorAutoInlineCenter {
				cur.x = inlineCenterStart(c, parentRect, scale)
			}
		}
		if cur.rowHasItem && cur.x+gapX+size.X > parentRect.Width {
			// Row full: wrap to a new row.
			cur.y += cur.rowHeight
			cur.x = 0
			cur.rowHeight = 0
			cur.rowHasItem = false
			gapX = 0
			if c.anchor == AnchorAutoInlineCenter {
				cur.x = inlineCenterStart(c, parentRect, scale)
			}
		}
		pos := Vec2{parentRect.X + cur.x + gapX, parentRect.Y + cur.y}
		cur.x += gapX + size.X
		if h := size.Y; h > cur.rowHeight {
			cur.rowHeight = h
		}
		cur.afterX = c.SpaceAfter.X * scale
		cur.rowHasItem = true
		cur.placedAny = true
		return pos
	}

	// Non-inline auto: always starts a new row beneath the previous auto-flow
	// entity. The gap is max(previous SpaceAfter, own SpaceBefore), never the
	// sum, to avoid doubled gaps.
	if cur.rowHasItem {
		cur.y += cur.rowHeight
		cur.x = 0
		cur.rowHeight = 0
		cur.rowHasItem = false
	}
	gapY := 0.0
	if cur.placedAny {
		gapY = maxf(cur.afterY, spaceBeforeY)
	}
	x := parentRect.X
	if c.anchor == AnchorAutoCenter {
		x = parentRect.X + (parentRect.Width-size.X)/2
	}
	pos := Vec2{x, parentRect.Y + cur.y + gapY}
	cur.y += gapY + size.Y
	cur.afterY = c.SpaceAfter.Y * scale
	cur.afterX = 0
	cur.placedAny = true
	return pos
}

// inlineCenterStart computes the starting X for a centered inline row by
// looking ahead over the run of inline-center siblings that will share the
// row with c.
func inlineCenterStart(c *Entity, parentRect Rect, scale float64) float64 {
	total := 0.0
	afterX := 0.0
	first := true
	sibs := c.Parent.children
	idx := 0
	for i, s := range sibs {
		if s == c {
			idx = i
			break
		}
	}
	for _, s := range sibs[idx:] {
		if !s.visible || s.anchor != AnchorAutoInlineCenter || s.internal {
			break
		}
		size := s.resolveSize(parentRect)
		gap := maxf(afterX, s.SpaceBefore.X*scale)
		if first {
			gap = 0
		}
		if !first && total+gap+size.X > parentRect.Width {
			break
		}
		total += gap + size.X
		afterX = s.SpaceAfter.X * scale
		first = false
	}
	start := (parentRect.Width - total) / 2
	if start < 0 {
		start = 0
	}
	return start
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// --- Content measurement (SizeAuto) ---

// defaultEntitySize is the fallback measure when a kind has no content to
// derive a size from and no theme metric applies.
var defaultEntitySize = Vec2{100, 30}

// measureContent derives an unscaled content size for SizeAuto axes.
func (e *Entity) measureContent() Vec2 {
	switch {
	case e.label != nil:
		if font := e.fontOrDefault(e.label.font); font != nil {
			w, h := font.MeasureString(e.label.text)
			pad := e.Padding * 2
			return Vec2{w + pad, h + pad}
		}
	case e.img != nil:
		if e.img.texture != nil {
			w, h := e.img.texture.Size()
			return Vec2{float64(w), float64(h)}
		}
	case e.check != nil:
		if font := e.fontOrDefault(e.check.font); font != nil {
			w, h := font.MeasureString(e.check.text)
			box := h // square mark sized to the line height
			return Vec2{box + 4 + w, maxf(h, box)}
		}
	}
	if e.ui != nil && e.ui.theme != nil {
		if size, ok := e.ui.theme.DefaultSize(e.Kind); ok {
			return size
		}
	}
	return defaultEntitySize
}
