package wicker

// EventContext carries the data for a single interaction event.
type EventContext struct {
	Entity  *Entity
	Type    EventType
	Pointer Vec2 // pointer position in screen space
	Button  MouseButton
	// Drag fields (valid for EventStartDrag, EventWhileDragging, EventStopDrag)
	DragDelta Vec2
}

// EventHandler is a subscriber callback for one event kind.
type EventHandler func(EventContext)

type eventEntry struct {
	id uint32
	fn EventHandler
}

// eventRegistry holds ordered subscriber lists per event kind. Multiple
// independent listeners can coexist; registration never clobbers earlier
// handlers (unlike a single mutable callback slot).
type eventRegistry struct {
	entries [eventTypeCount][]eventEntry
	nextID  uint32
}

// Subscription allows removing a registered callback.
type Subscription struct {
	id    uint32
	reg   *eventRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (s Subscription) Remove() {
	if s.reg == nil || int(s.event) >= len(s.reg.entries) {
		return
	}
	list := s.reg.entries[s.event]
	for i := range list {
		if list[i].id == s.id {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = eventEntry{}
			s.reg.entries[s.event] = list[:len(list)-1]
			return
		}
	}
}

func (r *eventRegistry) subscribe(event EventType, fn EventHandler) Subscription {
	r.nextID++
	id := r.nextID
	r.entries[event] = append(r.entries[event], eventEntry{id: id, fn: fn})
	return Subscription{id: id, reg: r, event: event}
}

func (r *eventRegistry) fire(ctx EventContext) {
	for _, entry := range r.entries[ctx.Type] {
		entry.fn(ctx)
	}
}

// On registers an entity-level callback for the given event kind. Handlers
// fire in registration order, entity-level before manager-global.
func (e *Entity) On(event EventType, fn EventHandler) Subscription {
	return e.events.subscribe(event, fn)
}

// emit fires an event on this entity's subscribers and then on the manager's
// global subscribers.
func (e *Entity) emit(event EventType, ctx EventContext) {
	ctx.Type = event
	ctx.Entity = e
	e.events.fire(ctx)
	if e.ui != nil && e.ui.global != nil {
		e.ui.global.fire(ctx)
	}
}
