package wicker

// Per-frame rendering. Draw walks the tree in ascending priority (the exact
// reverse of Update's hit-test order), so the entity that receives input
// first is also the one painted last, on top. Each entity renders in fixed
// sub-phases: skin background, solid fill, kind-specific content, children,
// and clipped containers composite their children through an offscreen
// surface in between.

// Fallback colors for widget content drawn without a skin. Backgrounds with
// no skin degrade to nothing; content (handles, marks, carets) falls back to
// these so an unthemed widget is still usable.
var (
	colorHandle      = Color{0.72, 0.72, 0.75, 1}
	colorMark        = Color{0.85, 0.85, 0.88, 1}
	colorSelection   = Color{1, 1, 1, 0.15}
	colorPlaceholder = Color{1, 1, 1, 0.4}
)

// drawContext carries the sink plus the origin translation mapping
// screen-space rectangles into the current draw target's local space.
type drawContext struct {
	ui     *uiState
	sink   DrawSink
	origin Vec2
}

func (dc *drawContext) local(r Rect) Rect {
	return r.Translated(-dc.origin.X, -dc.origin.Y)
}

func (dc *drawContext) texture(t Texture, src, dst Rect, tint Color) {
	dc.sink.DrawTexture(t, src, dc.local(dst), tint)
	dc.ui.drawOps++
}

func (dc *drawContext) fill(dst Rect, tint Color) {
	dc.sink.FillRect(dc.local(dst), tint)
	dc.ui.drawOps++
}

func (dc *drawContext) text(f Font, s string, pos Vec2, tint Color) {
	dc.sink.DrawText(f, s, Vec2{pos.X - dc.origin.X, pos.Y - dc.origin.Y}, tint)
	dc.ui.drawOps++
}

// drawFrame renders the whole tree into the bound sink.
func (ui *uiState) drawFrame(root *Entity) {
	if ui.sink == nil {
		return
	}
	ui.drawOps = 0
	ui.maxSurfaceDepth = 0
	dc := &drawContext{ui: ui, sink: ui.sink}
	drawEntity(dc, root, 1, false)
}

// drawEntity renders one entity and its subtree. opacity and disabled
// accumulate down the tree: a child can never be more opaque than its parent,
// and a disabled ancestor desaturates everything beneath it.
func drawEntity(dc *drawContext, e *Entity, opacity float64, disabled bool) {
	if !e.visible {
		return
	}
	opacity *= e.Opacity
	if opacity <= 0 {
		return
	}
	disabled = disabled || e.Disabled

	rect := e.DestRect()
	style := e.styleOrTheme()

	// Background and fill render in the current target, before any clipping.
	if style != nil {
		if tex := style.backgroundFor(e.state); tex != nil {
			dc.texture(tex, Rect{}, rect, adjust(style.tintFor(e.state), opacity, disabled))
		}
	}
	if e.FillColor.A > 0 {
		dc.fill(rect, adjust(e.FillColor, opacity, disabled))
	}

	if e.list != nil {
		e.syncListWindow()
	}
	drawContent(dc, e, style, opacity, disabled)

	if e.panel != nil && e.panel.overflow != OverflowThrough {
		drawClippedChildren(dc, e, opacity, disabled)
		return
	}
	for _, c := range e.sortedByPriority() {
		drawEntity(dc, c, opacity, disabled)
	}
}

// drawClippedChildren renders a clipped or scrolling container's children
// into its offscreen surface and composites the surface back. The scroll
// shift is applied to the internal rectangle for the duration of the child
// walk and restored immediately after, so layout and hit-testing outside
// Draw always see unshifted coordinates.
func drawClippedChildren(dc *drawContext, e *Entity, opacity float64, disabled bool) {
	p := e.panel
	window := e.InternalRect() // unshifted: drawShift is 0 outside this call
	surface := p.ensureSurface(dc.sink, int(window.Width), int(window.Height))

	scrolling := p.overflow == OverflowVerticalScroll
	if scrolling {
		e.refreshScrollRange()
		e.setDrawShift(float64(e.ScrollValue()))
	}

	dc.sink.Push(surface)
	if d := dc.sink.Depth(); d > dc.ui.maxSurfaceDepth {
		dc.ui.maxSurfaceDepth = d
	}
	surface.Clear()
	inner := &drawContext{ui: dc.ui, sink: dc.sink, origin: Vec2{window.X, window.Y}}
	for _, c := range e.sortedByPriority() {
		if c == p.scrollbar {
			continue // docked outside the scrolled surface
		}
		drawEntity(inner, c, opacity, disabled)
	}
	dc.sink.Pop()

	if scrolling {
		e.setDrawShift(0)
	}
	dc.texture(surface, Rect{}, window, ColorWhite)
	if p.scrollbar != nil {
		drawEntity(dc, p.scrollbar, opacity, disabled)
	}
}

// drawContent renders the kind-specific layer of one entity. Bare entities
// with no per-kind state (possible via NewEntity) degrade to the background
// and fill layers only.
func drawContent(dc *drawContext, e *Entity, style *Style, opacity float64, disabled bool) {
	rect := e.DestRect()
	switch e.Kind {
	case KindParagraph:
		if e.label == nil {
			return
		}
		font := e.fontOrDefault(e.label.font)
		if font != nil && e.label.text != "" {
			pos := Vec2{rect.X + e.Padding, rect.Y + (rect.Height-font.LineHeight())/2}
			dc.text(font, e.label.text, pos, adjust(textColor(style, e.label.color), opacity, disabled))
		}

	case KindButton:
		if e.label == nil {
			return
		}
		font := e.fontOrDefault(e.label.font)
		if font != nil && e.label.text != "" {
			w, _ := font.MeasureString(e.label.text)
			pos := Vec2{rect.X + (rect.Width-w)/2, rect.Y + (rect.Height-font.LineHeight())/2}
			dc.text(font, e.label.text, pos, adjust(textColor(style, e.label.color), opacity, disabled))
		}

	case KindImage:
		if e.img != nil && e.img.texture != nil {
			dc.texture(e.img.texture, e.img.source, rect, adjust(ColorWhite, opacity, disabled))
		}

	case KindCheckbox:
		if e.check != nil {
			drawCheckbox(dc, e, style, rect, opacity, disabled)
		}

	case KindScrollbar, KindSlider:
		if e.rng == nil {
			return
		}
		handle := e.handleRect()
		if style != nil && style.Accent != nil {
			dc.texture(style.Accent, Rect{}, handle, adjust(accentTint(style), opacity, disabled))
		} else {
			dc.fill(handle, adjust(colorHandle, opacity, disabled))
		}

	case KindProgressBar:
		r := e.rng
		if r == nil {
			return
		}
		span := r.max - r.min
		ratio := 0.0
		if span > 0 {
			ratio = float64(r.value-r.min) / float64(span)
		}
		filled := Rect{rect.X, rect.Y, rect.Width * ratio, rect.Height}
		if style != nil && style.Accent != nil {
			dc.texture(style.Accent, Rect{}, filled, adjust(accentTint(style), opacity, disabled))
		} else if ratio > 0 {
			dc.fill(filled, adjust(colorHandle, opacity, disabled))
		}

	case KindTextInput:
		if e.field != nil {
			drawTextInput(dc, e, style, rect, opacity, disabled)
		}

	case KindDropDown:
		if e.list == nil {
			return
		}
		font := e.fontOrDefault(e.list.font)
		if font != nil {
			header := Rect{rect.X, rect.Y, rect.Width, e.list.itemHeight * e.effectiveScale()}
			text := truncateToWidth(e.SelectedValue(), font, header.Width-e.Padding*2, e.list.ellipsis)
			pos := Vec2{header.X + e.Padding + 2, header.Y + (header.Height-font.LineHeight())/2}
			dc.text(font, text, pos, adjust(textColor(style, ColorWhite), opacity, disabled))
		}

	case KindSelectList:
		if e.list != nil {
			drawListSelection(dc, e, style, opacity, disabled)
		}
	}
}

func drawCheckbox(dc *drawContext, e *Entity, style *Style, rect Rect, opacity float64, disabled bool) {
	font := e.fontOrDefault(e.check.font)
	box := rect.Height
	if font != nil {
		box = font.LineHeight()
	}
	boxRect := Rect{rect.X, rect.Y + (rect.Height-box)/2, box, box}
	if style == nil || style.backgroundFor(e.state) == nil {
		dc.fill(boxRect, adjust(Color{1, 1, 1, 0.25}, opacity, disabled))
	}
	if e.check.checked {
		mark := boxRect.Inset(box * 0.25)
		if style != nil && style.Accent != nil {
			dc.texture(style.Accent, Rect{}, mark, adjust(accentTint(style), opacity, disabled))
		} else {
			dc.fill(mark, adjust(colorMark, opacity, disabled))
		}
	}
	if font != nil && e.check.text != "" {
		pos := Vec2{boxRect.X + box + 4, rect.Y + (rect.Height-font.LineHeight())/2}
		dc.text(font, e.check.text, pos, adjust(textColor(style, ColorWhite), opacity, disabled))
	}
}

func drawTextInput(dc *drawContext, e *Entity, style *Style, rect Rect, opacity float64, disabled bool) {
	font := e.fontOrDefault(e.field.font)
	if font == nil {
		return
	}
	text, isPlaceholder := e.displayText()
	avail := rect.Width - e.Padding*2
	text = truncateToWidth(text, font, avail, "")
	tint := textColor(style, ColorWhite)
	if isPlaceholder {
		tint = colorPlaceholder
	}
	pos := Vec2{rect.X + e.Padding, rect.Y + (rect.Height-font.LineHeight())/2}
	if text != "" {
		dc.text(font, text, pos, adjust(tint, opacity, disabled))
	}
	if e.IsFocused() && e.field.caretVisible() {
		caretX := pos.X + float64(e.field.caret)*font.AverageGlyphWidth()
		if max := rect.X + rect.Width - e.Padding; caretX > max {
			caretX = max
		}
		caret := Rect{caretX, pos.Y, 1, font.LineHeight()}
		dc.fill(caret, adjust(textColor(style, ColorWhite), opacity, disabled))
	}
}

// drawListSelection paints the highlight behind the selected row, if it is
// inside the current window. The row labels themselves are ordinary children.
func drawListSelection(dc *drawContext, e *Entity, style *Style, opacity float64, disabled bool) {
	l := e.list
	if l.selectedIndex < 0 || l.scrollbar == nil {
		return
	}
	slot := l.selectedIndex - l.scrollbar.Value()
	if slot < 0 || slot >= len(l.labels) {
		return
	}
	highlight := l.labels[slot].DestRect()
	tint := colorSelection
	if style != nil && style.AccentTint != (Color{}) {
		tint = style.AccentTint
	}
	dc.fill(highlight, adjust(tint, opacity, disabled))
}

// styleOrTheme resolves the entity's effective style: the per-entity override
// first, then the theme's per-kind style.
func (e *Entity) styleOrTheme() *Style {
	if e.Skin != nil {
		return e.Skin
	}
	if e.ui != nil && e.ui.theme != nil {
		return e.ui.theme.Style(e.Kind)
	}
	return nil
}

// adjust folds accumulated opacity and the disabled desaturation into a tint.
func adjust(c Color, opacity float64, disabled bool) Color {
	c = c.WithAlpha(opacity)
	if disabled {
		c = c.Desaturated()
	}
	return c
}

func textColor(style *Style, fallback Color) Color {
	if style != nil && style.TextColor != (Color{}) {
		return style.TextColor
	}
	return fallback
}

func accentTint(style *Style) Color {
	if style.AccentTint != (Color{}) {
		return style.AccentTint
	}
	return ColorWhite
}
