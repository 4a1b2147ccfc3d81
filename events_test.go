package wicker

import "testing"

func TestHandlersFireInRegistrationOrder(t *testing.T) {
	e := NewPanel(Vec2{10, 10})
	var order []int
	e.On(EventVisibilityChanged, func(EventContext) { order = append(order, 1) })
	e.On(EventVisibilityChanged, func(EventContext) { order = append(order, 2) })
	e.On(EventVisibilityChanged, func(EventContext) { order = append(order, 3) })

	e.SetVisible(false)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestSecondHandlerDoesNotClobberFirst(t *testing.T) {
	e := NewPanel(Vec2{10, 10})
	var first, second int
	e.On(EventVisibilityChanged, func(EventContext) { first++ })
	e.On(EventVisibilityChanged, func(EventContext) { second++ })
	e.SetVisible(false)
	if first != 1 || second != 1 {
		t.Errorf("fired (%d, %d), want both handlers once", first, second)
	}
}

func TestSubscriptionRemove(t *testing.T) {
	e := NewPanel(Vec2{10, 10})
	var kept, removed int
	e.On(EventVisibilityChanged, func(EventContext) { kept++ })
	sub := e.On(EventVisibilityChanged, func(EventContext) { removed++ })

	e.SetVisible(false)
	sub.Remove()
	e.SetVisible(true)

	if kept != 2 || removed != 1 {
		t.Errorf("kept = %d removed = %d, want 2 and 1", kept, removed)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	e := NewPanel(Vec2{10, 10})
	sub := e.On(EventVisibilityChanged, func(EventContext) {})
	sub.Remove()
	sub.Remove() // second removal is a no-op
	e.SetVisible(false)
}

func TestEntityHandlersBeforeGlobal(t *testing.T) {
	m, in, _ := newTestUI(200, 200)
	b := NewPanel(Vec2{100, 100})
	m.Root().AddChild(b)

	var order []string
	b.On(EventClick, func(EventContext) { order = append(order, "entity") })
	m.On(EventClick, func(ctx EventContext) {
		if ctx.Entity == b {
			order = append(order, "global")
		}
	})

	in.Click(50, 50)
	step(m, 2)
	if len(order) != 2 || order[0] != "entity" || order[1] != "global" {
		t.Errorf("order = %v, want entity before global", order)
	}
}

func TestGlobalHandlerSeesAllEntities(t *testing.T) {
	m, in, _ := newTestUI(200, 200)
	a := NewPanel(Vec2{50, 50})
	b := NewPanel(Vec2{50, 50})
	b.SetOffset(Vec2{100, 0})
	m.Root().AddChild(a)
	m.Root().AddChild(b)

	var clicked []*Entity
	m.On(EventClick, func(ctx EventContext) { clicked = append(clicked, ctx.Entity) })

	in.Click(25, 25)
	in.Click(125, 25)
	step(m, 4)
	if len(clicked) != 2 || clicked[0] != a || clicked[1] != b {
		t.Errorf("global saw %d clicks, want a then b", len(clicked))
	}
}

func TestEventContextFields(t *testing.T) {
	m, in, _ := newTestUI(200, 200)
	b := NewPanel(Vec2{100, 100})
	m.Root().AddChild(b)

	var got EventContext
	b.On(EventClick, func(ctx EventContext) { got = ctx })
	in.Click(40, 30)
	step(m, 2)

	if got.Entity != b || got.Type != EventClick {
		t.Errorf("ctx = %+v, want the clicked entity and type", got)
	}
	if got.Button != MouseButtonLeft {
		t.Errorf("Button = %v, want left", got.Button)
	}
	approxEq(t, "pointer X", got.Pointer.X, 40)
	approxEq(t, "pointer Y", got.Pointer.Y, 30)
}
