package wicker

import "testing"

// --- Value clamping ---

func TestSetValueClamps(t *testing.T) {
	sb := NewScrollbar(0, 10)
	sb.SetValue(15)
	if sb.Value() != 10 {
		t.Errorf("Value = %d, want 10", sb.Value())
	}
	sb.SetValue(-3)
	if sb.Value() != 0 {
		t.Errorf("Value = %d, want 0", sb.Value())
	}
}

func TestSetValueFiresOnChangeOnly(t *testing.T) {
	sb := NewScrollbar(0, 10)
	fired := 0
	sb.On(EventValueChanged, func(EventContext) { fired++ })
	sb.SetValue(5)
	sb.SetValue(5)  // no change
	sb.SetValue(20) // clamps to 10
	sb.SetValue(12) // clamps to 10 again, no change
	if fired != 2 {
		t.Errorf("fired %d times, want 2", fired)
	}
}

// --- Range mutation ---

func TestSetRangeInvertedBounds(t *testing.T) {
	sb := NewScrollbar(0, 10)
	sb.SetRange(5, 2)
	if sb.Min() != 5 || sb.Max() != 5 {
		t.Errorf("range = [%d, %d], want [5, 5]", sb.Min(), sb.Max())
	}
}

func TestSetRangeReclampsValue(t *testing.T) {
	sb := NewScrollbar(0, 10)
	sb.SetValue(8)
	fired := 0
	sb.On(EventValueChanged, func(EventContext) { fired++ })
	sb.SetRange(0, 5)
	if sb.Value() != 5 {
		t.Errorf("Value = %d, want 5 after shrink", sb.Value())
	}
	if fired != 1 {
		t.Errorf("re-clamp fired %d times, want 1", fired)
	}
	sb.SetRange(0, 3) // value 5 -> 3
	if sb.Value() != 3 || fired != 2 {
		t.Errorf("Value = %d fired = %d, want 3 and 2", sb.Value(), fired)
	}
}

func TestConstructorInvertedBounds(t *testing.T) {
	sb := NewScrollbar(7, 3)
	if sb.Min() != 7 || sb.Max() != 7 {
		t.Errorf("range = [%d, %d], want [7, 7]", sb.Min(), sb.Max())
	}
}

// --- Step snapping ---

func TestStepSnapping(t *testing.T) {
	s := NewSlider(0, 100)
	s.SetStepCount(4) // snap points 0, 25, 50, 75, 100
	s.SetValue(30)
	if s.Value() != 25 {
		t.Errorf("Value = %d, want 25", s.Value())
	}
	s.SetValue(88)
	if s.Value() != 100 {
		t.Errorf("Value = %d, want 100", s.Value())
	}
	s.SetStepCount(0) // continuous again
	s.SetValue(33)
	if s.Value() != 33 {
		t.Errorf("Value = %d, want 33", s.Value())
	}
}

// --- Pointer mapping ---

func TestSliderValueFromPointer(t *testing.T) {
	m, _, _ := newTestUI(100, 100)
	s := NewSlider(0, 10)
	m.Root().AddChild(s) // fills to (0, 0, 100, 20)
	s.valueFromPointer(Vec2{75, 10}, Vec2{})
	if s.Value() != 8 {
		t.Errorf("Value = %d, want 8", s.Value())
	}
	// Outside the track clamps to the nearest bound.
	s.valueFromPointer(Vec2{-40, 10}, Vec2{})
	if s.Value() != 0 {
		t.Errorf("Value = %d, want 0", s.Value())
	}
	s.valueFromPointer(Vec2{500, 10}, Vec2{})
	if s.Value() != 10 {
		t.Errorf("Value = %d, want 10", s.Value())
	}
}

func TestScrollbarValueFromPointer(t *testing.T) {
	m, _, _ := newTestUI(100, 100)
	sb := NewScrollbar(0, 10)
	m.Root().AddChild(sb) // (0, 0, 12, 100)
	sb.valueFromPointer(Vec2{6, 50}, Vec2{})
	if sb.Value() != 5 {
		t.Errorf("Value = %d, want 5", sb.Value())
	}
}

// --- Handle geometry ---

func TestSliderHandleRect(t *testing.T) {
	m, _, _ := newTestUI(100, 100)
	s := NewSlider(0, 10)
	m.Root().AddChild(s)
	s.SetValue(10)
	assertRect(t, "handle at max", s.handleRect(), Rect{80, 0, 20, 20})
	s.SetValue(0)
	assertRect(t, "handle at min", s.handleRect(), Rect{0, 0, 20, 20})
}

func TestScrollbarHandleRect(t *testing.T) {
	m, _, _ := newTestUI(100, 100)
	sb := NewScrollbar(0, 10)
	m.Root().AddChild(sb) // (0, 0, 12, 100)
	sb.SetValue(5)
	assertRect(t, "handle at middle", sb.handleRect(), Rect{0, 44, 12, 12})
}

func TestHandleRectEmptyRange(t *testing.T) {
	m, _, _ := newTestUI(100, 100)
	sb := NewScrollbar(3, 3)
	m.Root().AddChild(sb)
	// Zero span pins the handle at the top instead of dividing by zero.
	assertRect(t, "empty range", sb.handleRect(), Rect{0, 0, 12, 12})
}

// --- Misuse ---

func TestValueOnNonRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Value on a panel should panic")
		}
	}()
	NewPanel(Vec2{10, 10}).Value()
}

// --- Progress bar ---

func TestProgressBarValue(t *testing.T) {
	pb := NewProgressBar(0, 100)
	pb.SetValue(60)
	if pb.Value() != 60 {
		t.Errorf("Value = %d, want 60", pb.Value())
	}
	if pb.Kind != KindProgressBar {
		t.Errorf("Kind = %v, want progress bar", pb.Kind)
	}
}
