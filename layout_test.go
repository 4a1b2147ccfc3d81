package wicker

import "testing"

func addTestPanel(m *Manager, w, h float64) *Entity {
	p := NewPanel(Vec2{w, h})
	m.Root().AddChild(p)
	return p
}

// --- Static anchors ---

func TestStaticAnchorPlacement(t *testing.T) {
	m, _, _ := newTestUI(200, 100)
	cases := []struct {
		anchor Anchor
		want   Rect
	}{
		{AnchorTopLeft, Rect{5, 5, 50, 20}},
		{AnchorTopCenter, Rect{80, 5, 50, 20}},
		{AnchorTopRight, Rect{145, 5, 50, 20}},
		{AnchorCenterLeft, Rect{5, 45, 50, 20}},
		{AnchorCenter, Rect{80, 45, 50, 20}},
		{AnchorCenterRight, Rect{145, 45, 50, 20}},
		{AnchorBottomLeft, Rect{5, 75, 50, 20}},
		{AnchorBottomCenter, Rect{80, 75, 50, 20}},
		{AnchorBottomRight, Rect{145, 75, 50, 20}},
	}
	for _, tc := range cases {
		e := NewPanel(Vec2{50, 20})
		e.SetAnchor(tc.anchor)
		e.SetOffset(Vec2{5, 5})
		m.Root().AddChild(e)
		assertRect(t, tc.anchor.String(), e.DestRect(), tc.want)
		e.Dispose()
	}
}

// Center anchors ignore the offset sign convention of the edge anchors: a
// positive offset always moves toward the opposite edge for right/bottom.
func TestRightAnchorOffsetDirection(t *testing.T) {
	m, _, _ := newTestUI(200, 100)
	e := NewPanel(Vec2{50, 20})
	e.SetAnchor(AnchorBottomRight)
	e.SetOffset(Vec2{10, 4})
	m.Root().AddChild(e)
	assertRect(t, "bottom-right", e.DestRect(), Rect{140, 76, 50, 20})
}

// --- Size sentinels ---

func TestSizeFillBar(t *testing.T) {
	m, _, _ := newTestUI(320, 240)
	bar := NewPanel(Vec2{SizeFill, 40})
	m.Root().AddChild(bar)
	assertRect(t, "fill bar", bar.DestRect(), Rect{0, 0, 320, 40})
}

func TestSizeAutoMeasuresText(t *testing.T) {
	m, _, _ := newTestUI(320, 240)
	p := NewParagraph("hello", testFont()) // 5 glyphs * 7px, 14px line
	m.Root().AddChild(p)
	r := p.DestRect()
	approxEq(t, "auto width", r.Width, 35)
	approxEq(t, "auto height", r.Height, 14)
}

func TestSizeAutoFallsBackToDefault(t *testing.T) {
	m, _, _ := newTestUI(320, 240)
	e := NewEntity(KindImage, Vec2{SizeAuto, SizeAuto})
	m.Root().AddChild(e)
	r := e.DestRect()
	if r.Width != defaultEntitySize.X || r.Height != defaultEntitySize.Y {
		t.Errorf("rect = %v, want default size %v", r, defaultEntitySize)
	}
}

func TestSizeAutoUsesThemeDefault(t *testing.T) {
	m, _, _ := newTestUI(320, 240)
	theme := NewTheme()
	theme.SetDefaultSize(KindImage, Vec2{64, 48})
	m.SetTheme(theme)
	e := NewEntity(KindImage, Vec2{SizeAuto, SizeAuto})
	m.Root().AddChild(e)
	r := e.DestRect()
	approxEq(t, "theme width", r.Width, 64)
	approxEq(t, "theme height", r.Height, 48)
}

// --- Scaling ---

func TestGlobalScale(t *testing.T) {
	m, _, _ := newTestUI(400, 400)
	e := NewPanel(Vec2{50, 20})
	e.SetOffset(Vec2{10, 10})
	m.Root().AddChild(e)
	assertRect(t, "scale 1", e.DestRect(), Rect{10, 10, 50, 20})

	m.SetScale(2)
	assertRect(t, "scale 2", e.DestRect(), Rect{20, 20, 100, 40})
}

// --- Caching ---

func TestDestRectCacheStable(t *testing.T) {
	m, _, _ := newTestUI(200, 200)
	e := NewPanel(Vec2{50, 20})
	m.Root().AddChild(e)

	first := e.DestRect()
	v := e.layoutVersion
	second := e.DestRect()
	if first != second {
		t.Error("repeated resolution must be deterministic")
	}
	if e.layoutVersion != v {
		t.Error("a pure read must not bump any version")
	}
}

func TestDestRectInvalidatedByOffset(t *testing.T) {
	m, _, _ := newTestUI(200, 200)
	e := NewPanel(Vec2{50, 20})
	m.Root().AddChild(e)
	e.DestRect()
	e.SetOffset(Vec2{30, 0})
	assertRect(t, "after offset", e.DestRect(), Rect{30, 0, 50, 20})
}

// --- Auto-flow ---

func TestAutoFlowRows(t *testing.T) {
	m, _, _ := newTestUI(200, 400)
	parent := addTestPanel(m, 200, 400)

	mk := func(before, after float64) *Entity {
		e := NewPanel(Vec2{50, 20})
		e.SetAnchor(AnchorAuto)
		e.SpaceBefore = Vec2{0, before}
		e.SpaceAfter = Vec2{0, after}
		parent.AddChild(e)
		return e
	}
	c1 := mk(0, 4)
	c2 := mk(6, 3)
	c3 := mk(1, 0)

	approxEq(t, "c1.Y", c1.DestRect().Y, 0)
	// Gap is max(previous after, own before), never the sum.
	approxEq(t, "c2.Y", c2.DestRect().Y, 26)
	approxEq(t, "c3.Y", c3.DestRect().Y, 49)
}

func TestAutoFlowSkipsHidden(t *testing.T) {
	m, _, _ := newTestUI(200, 400)
	parent := addTestPanel(m, 200, 400)
	var rows []*Entity
	for i := 0; i < 3; i++ {
		e := NewPanel(Vec2{50, 20})
		e.SetAnchor(AnchorAuto)
		parent.AddChild(e)
		rows = append(rows, e)
	}
	rows[1].SetVisible(false)
	approxEq(t, "row0.Y", rows[0].DestRect().Y, 0)
	approxEq(t, "row2.Y", rows[2].DestRect().Y, 20)
}

func TestAutoInlineWraps(t *testing.T) {
	m, _, _ := newTestUI(110, 400)
	parent := addTestPanel(m, 110, 400)
	var cells []*Entity
	for i := 0; i < 3; i++ {
		e := NewPanel(Vec2{50, 20})
		e.SetAnchor(AnchorAutoInline)
		parent.AddChild(e)
		cells = append(cells, e)
	}
	assertRect(t, "cell0", cells[0].DestRect(), Rect{0, 0, 50, 20})
	assertRect(t, "cell1", cells[1].DestRect(), Rect{50, 0, 50, 20})
	// Third cell does not fit in 110px, wraps to a new row.
	assertRect(t, "cell2", cells[2].DestRect(), Rect{0, 20, 50, 20})
}

func TestAutoCenter(t *testing.T) {
	m, _, _ := newTestUI(200, 400)
	parent := addTestPanel(m, 200, 400)
	e := NewPanel(Vec2{50, 20})
	e.SetAnchor(AnchorAutoCenter)
	parent.AddChild(e)
	approxEq(t, "centered X", e.DestRect().X, 75)
}

func TestAutoInlineCenterRow(t *testing.T) {
	m, _, _ := newTestUI(200, 400)
	parent := addTestPanel(m, 200, 400)
	a := NewPanel(Vec2{50, 20})
	b := NewPanel(Vec2{50, 20})
	a.SetAnchor(AnchorAutoInlineCenter)
	b.SetAnchor(AnchorAutoInlineCenter)
	parent.AddChild(a)
	parent.AddChild(b)
	approxEq(t, "a.X", a.DestRect().X, 50)
	approxEq(t, "b.X", b.DestRect().X, 100)
}

// Auto-flow rows must not overlap, whatever the spacing inputs.
func TestAutoFlowNoOverlap(t *testing.T) {
	m, _, _ := newTestUI(200, 1000)
	parent := addTestPanel(m, 200, 1000)
	var rows []*Entity
	for i := 0; i < 6; i++ {
		e := NewPanel(Vec2{50, 10 + float64(i)*5})
		e.SetAnchor(AnchorAuto)
		e.SpaceAfter = Vec2{0, float64(i)}
		parent.AddChild(e)
		rows = append(rows, e)
	}
	for i := 1; i < len(rows); i++ {
		prev := rows[i-1].DestRect()
		cur := rows[i].DestRect()
		if cur.Y < prev.Y+prev.Height {
			t.Errorf("row %d at Y=%v overlaps row %d ending at %v",
				i, cur.Y, i-1, prev.Y+prev.Height)
		}
	}
}

// --- Screen resize ---

func TestSetScreenSizeRelayout(t *testing.T) {
	m, _, _ := newTestUI(200, 100)
	e := NewPanel(Vec2{50, 20})
	e.SetAnchor(AnchorBottomRight)
	m.Root().AddChild(e)
	assertRect(t, "before", e.DestRect(), Rect{150, 80, 50, 20})

	m.SetScreenSize(400, 300)
	assertRect(t, "after", e.DestRect(), Rect{350, 280, 50, 20})
}

// --- Detached entities ---

func TestDetachedDestRect(t *testing.T) {
	e := NewPanel(Vec2{80, 60})
	assertRect(t, "detached", e.DestRect(), Rect{0, 0, 80, 60})
}

func TestDetachedAutoFlowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("auto-flow layout without a parent should panic")
		}
	}()
	e := NewPanel(Vec2{10, 10})
	e.SetAnchor(AnchorAuto)
	e.DestRect()
}
