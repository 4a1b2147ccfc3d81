package wicker

import "testing"

// --- Overflow policy transitions ---

func TestSetOverflowAttachesScrollbar(t *testing.T) {
	m, _, _ := newTestUI(200, 200)
	p := NewPanel(Vec2{100, 50})
	m.Root().AddChild(p)

	p.SetOverflow(OverflowVerticalScroll)
	sb := p.Scrollbar()
	if sb == nil {
		t.Fatal("scrolling panel should own a scrollbar")
	}
	if sb.Kind != KindScrollbar || !sb.internal {
		t.Error("owned scrollbar should be an internal scrollbar entity")
	}
	if p.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", p.NumChildren())
	}
	// The docked strip is reserved out of the content area.
	assertRect(t, "internal", p.InternalRect(), Rect{0, 0, 88, 50})
	// The scrollbar itself docks against the full padded rect.
	assertRect(t, "scrollbar", sb.DestRect(), Rect{88, 0, 12, 50})
}

func TestOverflowRoundTripMatchesFresh(t *testing.T) {
	m, _, _ := newTestUI(200, 200)
	p := NewPanel(Vec2{100, 50})
	m.Root().AddChild(p)

	p.SetOverflow(OverflowVerticalScroll)
	p.SetOverflow(OverflowThrough)

	if p.Overflow() != OverflowThrough || p.Scrollbar() != nil {
		t.Error("round trip should leave no scrollbar behind")
	}
	if p.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", p.NumChildren())
	}
	if p.panel.surface != nil {
		t.Error("round trip should release the offscreen surface")
	}
	assertRect(t, "internal", p.InternalRect(), Rect{0, 0, 100, 50})
}

func TestSetOverflowOnNonContainerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SetOverflow on a button should panic")
		}
	}()
	NewButton("x", nil).SetOverflow(OverflowClipped)
}

// --- Clipped rendering ---

func TestClippedPanelComposites(t *testing.T) {
	m, _, sink := newTestUI(200, 200)
	p := NewPanel(Vec2{100, 50})
	p.SetOverflow(OverflowClipped)
	m.Root().AddChild(p)
	c := NewPanel(Vec2{30, 30})
	c.FillColor = Color{1, 0, 0, 1}
	p.AddChild(c)

	m.Draw()

	if len(sink.Surfaces) != 1 {
		t.Fatalf("surfaces = %d, want 1", len(sink.Surfaces))
	}
	if w, h := sink.Surfaces[0].Size(); w != 100 || h != 50 {
		t.Errorf("surface = %dx%d, want 100x50", w, h)
	}

	fills := sink.OpsByKind("fill")
	if len(fills) != 1 {
		t.Fatalf("fills = %d, want 1", len(fills))
	}
	if fills[0].Depth != 1 {
		t.Errorf("child fill depth = %d, want 1 (inside the surface)", fills[0].Depth)
	}
	assertRect(t, "child in surface space", fills[0].Dst, Rect{0, 0, 30, 30})

	comps := sink.OpsByKind("composite")
	if len(comps) != 1 {
		t.Fatalf("composites = %d, want 1", len(comps))
	}
	if comps[0].Surface != sink.Surfaces[0] {
		t.Error("composite should reference the panel's own surface")
	}
	assertRect(t, "composite dst", comps[0].Dst, Rect{0, 0, 100, 50})
	if sink.Depth() != 0 {
		t.Errorf("stack depth = %d after Draw, want 0", sink.Depth())
	}
}

func TestClippedSurfaceReuse(t *testing.T) {
	m, _, sink := newTestUI(200, 200)
	p := NewPanel(Vec2{100, 50})
	p.SetOverflow(OverflowClipped)
	m.Root().AddChild(p)

	m.Draw()
	m.Draw()
	if len(sink.Surfaces) != 1 {
		t.Fatalf("surfaces = %d after two same-size frames, want 1", len(sink.Surfaces))
	}

	p.SetSize(Vec2{120, 50})
	m.Draw()
	if len(sink.Surfaces) != 2 {
		t.Errorf("surfaces = %d after resize, want 2", len(sink.Surfaces))
	}
	if !sink.Surfaces[0].IsDisposed() {
		t.Error("stale surface should be disposed")
	}
}

func TestNestedClippingDepth(t *testing.T) {
	m, _, sink := newTestUI(300, 300)
	outer := NewPanel(Vec2{200, 200})
	outer.SetOverflow(OverflowClipped)
	inner := NewPanel(Vec2{100, 100})
	inner.SetOverflow(OverflowClipped)
	m.Root().AddChild(outer)
	outer.AddChild(inner)

	m.Draw()
	if sink.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", sink.MaxDepth)
	}
	if sink.Depth() != 0 {
		t.Errorf("depth = %d after Draw, want 0", sink.Depth())
	}
}

// --- Scrolling ---

func scrollFixture(t *testing.T) (*Manager, *RecordingSink, *Entity, *Entity) {
	t.Helper()
	m, _, sink := newTestUI(200, 200)
	p := NewPanel(Vec2{100, 50})
	p.SetOverflow(OverflowVerticalScroll)
	m.Root().AddChild(p)
	tall := NewPanel(Vec2{50, 200})
	tall.FillColor = Color{0, 0, 1, 1}
	p.AddChild(tall)
	return m, sink, p, tall
}

func TestScrollRangeFromContent(t *testing.T) {
	m, _, p, _ := scrollFixture(t)
	m.Draw()
	// 200px of content in a 50px window leaves 150px of overflow.
	if max := p.Scrollbar().Max(); max != 150 {
		t.Errorf("Max = %d, want 150", max)
	}
}

func TestScrollShiftsChildrenDuringDrawOnly(t *testing.T) {
	m, sink, p, tall := scrollFixture(t)
	m.Draw()
	p.SetScrollValue(30)

	before := tall.DestRect()
	sink.Reset()
	m.Draw()
	after := tall.DestRect()

	if before != after || before.Y != 0 {
		t.Errorf("layout rect changed across Draw: %v -> %v", before, after)
	}
	fills := sink.OpsByKind("fill")
	var contentFill *RecordedOp
	for i := range fills {
		if fills[i].Depth == 1 {
			contentFill = &fills[i]
		}
	}
	if contentFill == nil {
		t.Fatal("content fill not recorded inside the surface")
	}
	// Scrolled 30px: content renders 30px higher in surface space.
	approxEq(t, "shifted Y", contentFill.Dst.Y, -30)
}

func TestSetScrollValueClamps(t *testing.T) {
	m, _, p, _ := scrollFixture(t)
	m.Draw()
	p.SetScrollValue(9999)
	if p.ScrollValue() != 150 {
		t.Errorf("ScrollValue = %d, want 150", p.ScrollValue())
	}
	p.SetScrollValue(-5)
	if p.ScrollValue() != 0 {
		t.Errorf("ScrollValue = %d, want 0", p.ScrollValue())
	}
}

func TestScrollValueZeroWithoutScrollPolicy(t *testing.T) {
	m, _, _ := newTestUI(100, 100)
	p := NewPanel(Vec2{50, 50})
	m.Root().AddChild(p)
	p.SetScrollValue(10) // no-op
	if p.ScrollValue() != 0 {
		t.Errorf("ScrollValue = %d, want 0", p.ScrollValue())
	}
}

func TestContentHeight(t *testing.T) {
	m, _, _ := newTestUI(200, 200)
	p := NewPanel(Vec2{100, 50})
	p.SetOverflow(OverflowVerticalScroll)
	m.Root().AddChild(p)
	a := NewPanel(Vec2{20, 40})
	b := NewPanel(Vec2{20, 30})
	b.SetOffset(Vec2{0, 90})
	p.AddChild(a)
	p.AddChild(b)
	approxEq(t, "content height", p.contentHeight(), 120)
}

func TestNestedScrollIndependence(t *testing.T) {
	m, _, sink := newTestUI(300, 300)
	outer := NewPanel(Vec2{200, 100})
	outer.SetOverflow(OverflowVerticalScroll)
	m.Root().AddChild(outer)
	inner := NewPanel(Vec2{100, 50})
	inner.SetOverflow(OverflowVerticalScroll)
	outer.AddChild(inner)
	innerContent := NewPanel(Vec2{50, 200})
	inner.AddChild(innerContent)
	outerContent := NewPanel(Vec2{50, 300})
	outerContent.SetOffset(Vec2{100, 0})
	outer.AddChild(outerContent)

	m.Draw() // materialize both scroll ranges
	inner.SetScrollValue(40)
	outer.SetScrollValue(60)
	sink.Reset()
	m.Draw()

	if inner.ScrollValue() != 40 {
		t.Errorf("inner scroll = %d after scrolling the outer panel, want 40", inner.ScrollValue())
	}
	if outer.ScrollValue() != 60 {
		t.Errorf("outer scroll = %d, want 60", outer.ScrollValue())
	}
	if sink.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2 (inner surface inside outer)", sink.MaxDepth)
	}
	if sink.Depth() != 0 {
		t.Errorf("stack depth = %d after Draw, want 0", sink.Depth())
	}
}

// The scrollbar draws outside the clipped surface, in parent space.
func TestScrollbarDrawnOutsideSurface(t *testing.T) {
	m, sink, p, _ := scrollFixture(t)
	p.SetScrollValue(0)
	m.Draw()
	// Without a skin the scrollbar handle degrades to a fill at depth 0.
	var handleFills int
	for _, op := range sink.OpsByKind("fill") {
		if op.Depth == 0 && op.Dst.X >= 88 {
			handleFills++
		}
	}
	if handleFills != 1 {
		t.Errorf("handle fills at depth 0 = %d, want 1", handleFills)
	}
}
