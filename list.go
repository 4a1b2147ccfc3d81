package wicker

// Virtual list widgets. A select list never materializes one label per data
// item: it keeps a window of label entities sized to fit its current pixel
// height and re-points each label at the data item under it every draw. The
// window is rebuilt only when the list's height actually changes (or changed
// while hidden, deferred to the next visible draw); scrolling just rewrites
// label texts.

// defaultItemHeight is the unscaled row height of list items.
const defaultItemHeight = 30.0

// defaultDropListHeight is the unscaled height of a dropdown's expanded list.
const defaultDropListHeight = 150.0

// listState is the selection and windowing state of select lists and
// dropdowns.
type listState struct {
	items         []string
	selectedIndex int // -1 = none
	locked        map[int]bool
	allowReselect bool
	itemHeight    float64
	ellipsis      string
	font          Font

	scrollbar *Entity   // internal child paging over item indices
	labels    []*Entity // internal window entities, recycled on scroll

	lastHeight     float64 // internal height at the last window rebuild
	pendingRebuild bool    // resized while hidden; rebuild on next visible draw

	// Dropdown only.
	dropList *Entity // internal expanded list, nil for plain select lists
	expanded bool
}

// NewSelectList creates a scrollable list of selectable string items.
func NewSelectList(items []string, font Font) *Entity {
	e := &Entity{
		Kind: KindSelectList,
		size: Vec2{SizeFill, SizeFill},
		list: &listState{
			items:         items,
			selectedIndex: -1,
			itemHeight:    defaultItemHeight,
			ellipsis:      defaultEllipsis,
			font:          font,
		},
	}
	entityDefaults(e)
	e.list.scrollbar = newListScrollbar()
	e.AddChild(e.list.scrollbar)
	return e
}

// NewDropDown creates a collapsed selector: a header showing the selected
// value, expanding a select list beneath it on click.
func NewDropDown(items []string, font Font) *Entity {
	e := &Entity{
		Kind: KindDropDown,
		size: Vec2{SizeFill, defaultItemHeight},
		list: &listState{
			items:         items,
			selectedIndex: -1,
			itemHeight:    defaultItemHeight,
			ellipsis:      defaultEllipsis,
			font:          font,
		},
	}
	entityDefaults(e)

	drop := NewSelectList(items, font)
	drop.internal = true
	drop.SetAnchor(AnchorTopLeft)
	drop.SetOffset(Vec2{0, defaultItemHeight})
	drop.SetSize(Vec2{SizeFill, defaultDropListHeight})
	drop.SetVisible(false)
	e.list.dropList = drop
	e.AddChild(drop)

	e.On(EventClick, func(EventContext) {
		e.setExpanded(!e.list.expanded)
	})
	drop.On(EventValueChanged, func(EventContext) {
		e.list.selectedIndex = drop.list.selectedIndex
		e.setExpanded(false)
		e.emit(EventValueChanged, EventContext{Entity: e})
	})
	return e
}

// newListScrollbar builds the internal scrollbar docked to the list's right
// edge, ranged over item indices rather than pixels.
func newListScrollbar() *Entity {
	sb := NewScrollbar(0, 0)
	sb.internal = true
	sb.SetAnchor(AnchorTopRight)
	sb.SetSize(Vec2{defaultScrollbarWidth, SizeFill})
	sb.SetPriority(1 << 16)
	return sb
}

func (e *Entity) mustList() *listState {
	if e.list == nil {
		panic("wicker: " + e.Kind.String() + " is not a list")
	}
	return e.list
}

// Items returns the data items. The returned slice MUST NOT be mutated.
func (e *Entity) Items() []string {
	return e.mustList().items
}

// SetItems replaces the data items. The selection is cleared; the label
// window survives unchanged (it depends only on height).
func (e *Entity) SetItems(items []string) {
	l := e.mustList()
	l.items = items
	l.selectedIndex = -1
	l.locked = nil
	if l.dropList != nil {
		l.dropList.SetItems(items)
	}
}

// AddItem appends a data item.
func (e *Entity) AddItem(item string) {
	l := e.mustList()
	l.items = append(l.items, item)
	if l.dropList != nil {
		l.dropList.AddItem(item)
	}
}

// SelectedIndex returns the selected item index, -1 for none.
func (e *Entity) SelectedIndex() int {
	return e.mustList().selectedIndex
}

// SelectedValue returns the selected item's string, "" for none.
func (e *Entity) SelectedValue() string {
	l := e.mustList()
	if l.selectedIndex < 0 || l.selectedIndex >= len(l.items) {
		return ""
	}
	return l.items[l.selectedIndex]
}

// SelectIndex selects the item at index. Out-of-range indices fail per the
// soft-errors setting; locked indices are ignored. Re-selecting the current
// index is a no-op unless AllowReselect is set, in which case the change
// event fires anyway.
func (e *Entity) SelectIndex(index int) error {
	l := e.mustList()
	if index < -1 || index >= len(l.items) {
		return e.softFail(&RangeError{What: "list item", Index: index, Len: len(l.items)})
	}
	if l.locked[index] {
		return nil
	}
	if index == l.selectedIndex && !l.allowReselect {
		return nil
	}
	l.selectedIndex = index
	if l.dropList != nil {
		l.dropList.list.selectedIndex = index
	}
	e.emit(EventValueChanged, EventContext{Entity: e})
	return nil
}

// SelectValue selects the first item equal to value. A missing value fails
// per the soft-errors setting.
func (e *Entity) SelectValue(value string) error {
	l := e.mustList()
	for i, item := range l.items {
		if item == value {
			return e.SelectIndex(i)
		}
	}
	return e.softFail(&NotFoundError{What: "list item", Key: value})
}

// ClearSelection resets the selection to none without firing an event.
func (e *Entity) ClearSelection() {
	l := e.mustList()
	l.selectedIndex = -1
	if l.dropList != nil {
		l.dropList.list.selectedIndex = -1
	}
}

// SetItemLocked marks an item as unselectable (or selectable again). Locked
// items still render, in the locked visual state.
func (e *Entity) SetItemLocked(index int, locked bool) {
	l := e.mustList()
	if locked {
		if l.locked == nil {
			l.locked = make(map[int]bool)
		}
		l.locked[index] = true
	} else {
		delete(l.locked, index)
	}
	if l.dropList != nil {
		l.dropList.SetItemLocked(index, locked)
	}
}

// IsItemLocked reports whether an item is locked.
func (e *Entity) IsItemLocked(index int) bool {
	return e.mustList().locked[index]
}

// SetAllowReselect controls whether selecting the already-selected item fires
// the value-changed event again.
func (e *Entity) SetAllowReselect(v bool) {
	e.mustList().allowReselect = v
}

// SetItemHeight sets the unscaled row height and forces a window rebuild.
func (e *Entity) SetItemHeight(h float64) {
	l := e.mustList()
	if l.itemHeight == h || h <= 0 {
		return
	}
	l.itemHeight = h
	l.lastHeight = -1
}

// SetEllipsis sets the truncation marker appended to clipped item text.
func (e *Entity) SetEllipsis(marker string) {
	e.mustList().ellipsis = marker
}

// ListScrollbar returns the list's internal scrollbar. Its value is the index
// of the first displayed item.
func (e *Entity) ListScrollbar() *Entity {
	l := e.mustList()
	if l.dropList != nil {
		return l.dropList.list.scrollbar
	}
	return l.scrollbar
}

// setExpanded shows or hides a dropdown's list.
func (e *Entity) setExpanded(v bool) {
	l := e.list
	if l.dropList == nil || l.expanded == v {
		return
	}
	l.expanded = v
	l.dropList.SetVisible(v)
}

// onResized is the SetSize hook. Lists resized while hidden defer the window
// rebuild to the next visible draw; visible lists are caught by the height
// comparison in syncListWindow.
func (e *Entity) onResized() {
	if e.list == nil || e.list.scrollbar == nil {
		return
	}
	if !e.visible {
		e.list.pendingRebuild = true
	}
}

// syncListWindow brings the label window up to date: rebuilds it if the
// height changed, re-points every slot at the item under it, and refreshes
// the scrollbar range. Called once per draw.
func (e *Entity) syncListWindow() {
	l := e.list
	if l == nil || l.scrollbar == nil {
		return
	}
	internal := e.InternalRect()
	scale := e.effectiveScale()
	rowPx := l.itemHeight * scale

	if internal.Height != l.lastHeight || l.pendingRebuild {
		e.rebuildListWindow(internal, rowPx)
		l.lastHeight = internal.Height
		l.pendingRebuild = false
	}

	visible := len(l.labels)
	maxScroll := len(l.items) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	l.scrollbar.setRangeInternal(0, maxScroll)
	first := l.scrollbar.Value()

	labelW := (internal.Width - l.scrollbar.size.X*scale) / scale
	if labelW < 0 {
		labelW = 0
	}
	font := e.fontOrDefault(l.font)
	for slot, label := range l.labels {
		idx := first + slot
		if idx >= len(l.items) {
			// Out-of-range slots are hidden, never destroyed.
			label.SetVisible(false)
			continue
		}
		label.SetVisible(true)
		label.SetSize(Vec2{labelW, l.itemHeight})
		label.SetText(truncateToWidth(l.items[idx], font, labelW*scale, l.ellipsis))
		label.Locked = l.locked[idx]
	}
}

// rebuildListWindow resizes the label window to fit the current height,
// reusing existing labels and creating or disposing only the difference.
func (e *Entity) rebuildListWindow(internal Rect, rowPx float64) {
	l := e.list
	want := 0
	if rowPx > 0 {
		want = int(internal.Height / rowPx)
	}
	if want < 0 {
		want = 0
	}
	for len(l.labels) > want {
		last := l.labels[len(l.labels)-1]
		l.labels = l.labels[:len(l.labels)-1]
		last.Dispose()
	}
	for len(l.labels) < want {
		slot := len(l.labels)
		label := NewParagraph("", l.font)
		label.internal = true
		label.SetAnchor(AnchorTopLeft)
		label.SetOffset(Vec2{0, float64(slot) * l.itemHeight})
		label.On(EventClick, func(EventContext) {
			e.clickListSlot(slot)
		})
		l.labels = append(l.labels, label)
		e.AddChild(label)
	}
}

// clickListSlot selects the item currently displayed in a window slot.
// Clicks on locked items leave the selection unchanged.
func (e *Entity) clickListSlot(slot int) {
	l := e.list
	idx := l.scrollbar.Value() + slot
	if idx >= len(l.items) {
		return
	}
	_ = e.SelectIndex(idx)
}
