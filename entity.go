package wicker

// --- ID counter ---

// entityIDCounter is a plain counter (no atomic — wicker is single-threaded).
var entityIDCounter uint32

func nextEntityID() uint32 {
	entityIDCounter++
	return entityIDCounter
}

// --- Shared tree state ---

// uiState is the context object shared by every entity attached to a Manager.
// It replaces process-wide globals so that multiple independent UI instances
// can coexist (and tests never reset shared state).
type uiState struct {
	scale        float64
	scaleVersion int
	softErrors   bool
	debug        bool
	screen       Vec2 // host surface size in pixels; the root resolves against it

	sink   DrawSink
	input  InputSource
	theme  *Theme
	global *eventRegistry // manager-level subscribers, fired after entity-level

	// Interaction bookkeeping committed during Update and read by Draw.
	focused          *Entity
	hovered          *Entity
	lastHovered      *Entity
	dragTarget       *Entity
	pressTarget      *Entity
	rightPressTarget *Entity

	// Debug stats for the current frame.
	drawOps         int
	maxSurfaceDepth int
}

func newUIState() *uiState {
	return &uiState{scale: 1}
}

// effectiveScale returns the global UI scale, 1 for detached entities.
func (e *Entity) effectiveScale() float64 {
	if e.ui == nil {
		return 1
	}
	return e.ui.scale
}

// --- Entity ---

// Entity is the fundamental element of the UI tree. A single flat struct is
// used for all widget kinds, with per-kind state hanging off small pointers,
// to avoid interface dispatch on the hot traversal path.
type Entity struct {
	// Identity
	ID         uint32
	Identifier string // lookup key for Find; empty is fine
	Kind       EntityKind

	// Hierarchy
	Parent   *Entity
	children []*Entity

	// Layout inputs
	anchor      Anchor
	offset      Vec2
	size        Vec2
	SpaceBefore Vec2 // extra gap requested before this entity in auto-flow
	SpaceAfter  Vec2 // extra gap requested after this entity in auto-flow
	Padding     float64

	// Ordering
	priority       int // explicit bonus; higher receives input first, draws last
	insertionIndex int // assigned by the parent on AddChild; tiebreak

	// Flags
	visible           bool
	Locked            bool // ignores action events, still gets visual state
	Disabled          bool // ignores all input, draws desaturated
	Draggable         bool
	LimitDragToParent bool

	// Appearance
	Opacity     float64
	FillColor   Color
	Skin        *Style
	TooltipText string

	// Free-form payload attached by the host application.
	AttachedData any

	// Dirty-rect cache
	destRect          Rect
	destValid         bool
	seenLayoutVersion uint64
	seenScaleVersion  int
	layoutVersion     uint64 // bumped when inputs to the children's rects change

	// Interaction state (committed in Update, read by Draw)
	state     WidgetState
	mouseOver bool
	spawned   bool

	// Events
	events eventRegistry

	// Per-kind state
	panel *panelState
	rng   *rangeState
	list  *listState
	label *labelState
	img   *imageState
	check *checkState
	field *fieldState

	// Internal
	ui             *uiState
	internal       bool // auto-created child (scrollbar, list row); not serialized
	disposed       bool
	childrenSorted bool
	sortedChildren []*Entity // reused buffer for priority-sorted traversal order
}

// entityDefaults sets the common default field values shared by all constructors.
func entityDefaults(e *Entity) {
	e.ID = nextEntityID()
	e.visible = true
	e.Opacity = 1
	e.FillColor = ColorTransparent
	e.childrenSorted = true
}

// NewEntity creates a bare entity of the given kind with the given size.
// The typed constructors (NewPanel, NewButton, ...) are preferred; NewEntity
// exists for deserialization and tests.
func NewEntity(kind EntityKind, size Vec2) *Entity {
	e := &Entity{Kind: kind, size: size}
	entityDefaults(e)
	return e
}

// --- Layout input accessors (mutations invalidate the cached rectangle) ---

// Anchor returns the entity's anchor.
func (e *Entity) Anchor() Anchor { return e.anchor }

// SetAnchor sets the anchor and invalidates layout.
func (e *Entity) SetAnchor(a Anchor) {
	if e.anchor == a {
		return
	}
	e.anchor = a
	e.invalidateLayout()
}

// Offset returns the entity's offset from its anchor.
func (e *Entity) Offset() Vec2 { return e.offset }

// SetOffset sets the offset and invalidates layout.
func (e *Entity) SetOffset(o Vec2) {
	if e.offset == o {
		return
	}
	e.offset = o
	e.invalidateLayout()
}

// Size returns the declared size. See SizeFill and SizeAuto for the zero and
// negative sentinels.
func (e *Entity) Size() Vec2 { return e.size }

// SetSize sets the declared size and invalidates layout.
func (e *Entity) SetSize(size Vec2) {
	if e.size == size {
		return
	}
	e.size = size
	e.invalidateLayout()
	e.onResized()
}

// Priority returns the explicit priority bonus.
func (e *Entity) Priority() int { return e.priority }

// SetPriority sets the priority bonus and re-sorts siblings lazily.
// Higher-priority entities receive input first and draw on top.
func (e *Entity) SetPriority(p int) {
	if e.priority == p {
		return
	}
	e.priority = p
	if e.Parent != nil {
		e.Parent.childrenSorted = false
	}
}

// IsVisible reports whether the entity is visible. Invisible entities are
// skipped entirely by both Update and Draw.
func (e *Entity) IsVisible() bool { return e.visible }

// SetVisible toggles visibility and fires EventVisibilityChanged on an actual
// transition.
func (e *Entity) SetVisible(v bool) {
	if e.visible == v {
		return
	}
	e.visible = v
	e.invalidateLayout()
	e.emit(EventVisibilityChanged, EventContext{Entity: e})
}

// invalidateLayout marks this entity's cached rectangle stale and bumps the
// parent's layout version so auto-flow siblings recompute as well.
func (e *Entity) invalidateLayout() {
	e.destValid = false
	e.bumpLayout()
	if e.Parent != nil {
		e.Parent.bumpLayout()
	}
}

// bumpLayout invalidates the cached rectangles of every descendant (lazily:
// descendants compare versions on next read, nothing is recomputed eagerly).
func (e *Entity) bumpLayout() {
	e.layoutVersion++
}

// --- Tree manipulation ---

// AddChild appends child to this entity's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this entity (cycle).
func (e *Entity) AddChild(child *Entity) {
	if child == nil {
		panic("wicker: cannot add nil child")
	}
	if e.ui != nil && e.ui.debug {
		debugCheckDisposed(e, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, e) {
		panic("wicker: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = e
	child.insertionIndex = e.nextInsertionIndex()
	e.children = append(e.children, child)
	e.childrenSorted = false
	child.adoptUIState(e.ui)
	child.destValid = false
	e.bumpLayout()
	if e.ui != nil && e.ui.debug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e)
	}
}

// nextInsertionIndex returns a tiebreak index larger than any current child's.
func (e *Entity) nextInsertionIndex() int {
	max := 0
	for _, c := range e.children {
		if c.insertionIndex >= max {
			max = c.insertionIndex + 1
		}
	}
	return max
}

// adoptUIState propagates the shared tree state to a subtree.
func (e *Entity) adoptUIState(ui *uiState) {
	if e.ui == ui {
		return
	}
	e.ui = ui
	for _, c := range e.children {
		c.adoptUIState(ui)
	}
}

// RemoveChild detaches child from this entity and resets the child's
// interaction state so it can be re-added later.
// Panics if child.Parent != e.
func (e *Entity) RemoveChild(child *Entity) {
	if e.ui != nil && e.ui.debug {
		debugCheckDisposed(e, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != e {
		panic("wicker: child's parent is not this entity")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
	e.childrenSorted = false
	e.bumpLayout()
	child.resetState()
}

// RemoveFromParent detaches this entity from its parent.
// No-op if this entity has no parent.
func (e *Entity) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// ClearChildren detaches all children. Children are NOT disposed.
func (e *Entity) ClearChildren() {
	for _, child := range e.children {
		child.Parent = nil
		child.resetState()
	}
	e.children = e.children[:0]
	e.childrenSorted = true
	e.bumpLayout()
}

// Children returns the child list in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (e *Entity) Children() []*Entity {
	return e.children
}

// NumChildren returns the number of children.
func (e *Entity) NumChildren() int {
	return len(e.children)
}

// ChildAt returns the child at the given insertion index.
func (e *Entity) ChildAt(index int) *Entity {
	return e.children[index]
}

// resetState clears per-frame interaction state, the cached rectangle, and
// any manager bookkeeping pointing at this subtree. Required before a removed
// entity is re-added.
func (e *Entity) resetState() {
	e.state = StateDefault
	e.mouseOver = false
	e.destValid = false
	if e.ui != nil {
		if e.ui.focused == e {
			e.ui.focused = nil
		}
		if e.ui.hovered == e {
			e.ui.hovered = nil
		}
		if e.ui.dragTarget == e {
			e.ui.dragTarget = nil
		}
		if e.ui.pressTarget == e {
			e.ui.pressTarget = nil
		}
		if e.ui.rightPressTarget == e {
			e.ui.rightPressTarget = nil
		}
		if e.ui.lastHovered == e {
			e.ui.lastHovered = nil
		}
	}
	for _, c := range e.children {
		c.resetState()
	}
}

// --- Lookup ---

// Find searches the subtree for an entity with the given identifier.
// Returns (nil, nil) in soft-error mode when nothing matches, and
// (nil, *NotFoundError) in strict mode.
func (e *Entity) Find(identifier string) (*Entity, error) {
	if found := e.findWalk(identifier); found != nil {
		return found, nil
	}
	return nil, e.softFail(&NotFoundError{What: "entity", Key: identifier})
}

// FindKind is the typed variant of Find: the identifier must match AND the
// entity must be of the given kind.
func (e *Entity) FindKind(identifier string, kind EntityKind) (*Entity, error) {
	if found := e.findWalk(identifier); found != nil && found.Kind == kind {
		return found, nil
	}
	return nil, e.softFail(&NotFoundError{What: kind.String(), Key: identifier})
}

func (e *Entity) findWalk(identifier string) *Entity {
	if e.Identifier == identifier && identifier != "" {
		return e
	}
	for _, c := range e.children {
		if found := c.findWalk(identifier); found != nil {
			return found
		}
	}
	return nil
}

// --- Priority-sorted traversal order ---

// sortedByPriority returns the children sorted ascending by (priority,
// insertionIndex): lowest first. Draw walks this order forward (background
// first), Update walks it backward (topmost first). The sort is stable by
// construction since insertionIndex is unique per sibling set.
func (e *Entity) sortedByPriority() []*Entity {
	if !e.childrenSorted {
		e.rebuildSortedChildren()
	}
	if e.sortedChildren != nil {
		return e.sortedChildren
	}
	return e.children
}

func (e *Entity) rebuildSortedChildren() {
	e.childrenSorted = true
	sorted := true
	for i := 1; i < len(e.children); i++ {
		if entityLess(e.children[i], e.children[i-1]) {
			sorted = false
			break
		}
	}
	if sorted {
		// Insertion order already is priority order; skip the copy.
		e.sortedChildren = nil
		return
	}
	e.sortedChildren = e.sortedChildren[:0]
	e.sortedChildren = append(e.sortedChildren, e.children...)
	// Insertion sort: sibling lists are small and nearly sorted.
	s := e.sortedChildren
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && entityLess(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// entityLess orders a before b when a should draw first (lower priority,
// earlier insertion).
func entityLess(a, b *Entity) bool {
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.insertionIndex < b.insertionIndex
}

// --- Disposal ---

// Dispose removes this entity from its parent, releases owned render
// surfaces, marks it as disposed, and recursively disposes all descendants.
func (e *Entity) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Entity) dispose() {
	e.disposed = true
	e.ID = 0
	if e.panel != nil {
		e.panel.releaseSurface()
		e.panel = nil
	}
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	e.children = nil
	e.sortedChildren = nil
	e.Parent = nil
	e.Skin = nil
	e.AttachedData = nil
	e.events = eventRegistry{}
	e.rng = nil
	e.list = nil
	e.label = nil
	e.img = nil
	e.check = nil
	e.field = nil
	e.ui = nil
}

// IsDisposed returns true if this entity has been disposed.
func (e *Entity) IsDisposed() bool {
	return e.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of entity (or the
// entity itself).
func isAncestor(candidate, entity *Entity) bool {
	for p := entity; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing
// child.Parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (e *Entity) removeChildByPtr(child *Entity) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}

// isDisabled reports whether this entity or any ancestor is disabled.
func (e *Entity) isDisabled() bool {
	for p := e; p != nil; p = p.Parent {
		if p.Disabled {
			return true
		}
	}
	return false
}

// IsFocused reports whether this entity currently holds keyboard focus.
func (e *Entity) IsFocused() bool {
	return e.ui != nil && e.ui.focused == e
}

// State returns the interaction state committed by the last Update pass.
func (e *Entity) State() WidgetState {
	return e.state
}

// IsMouseOver reports whether the pointer was over the entity during the last
// Update pass.
func (e *Entity) IsMouseOver() bool {
	return e.mouseOver
}
