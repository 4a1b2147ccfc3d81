package wicker

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

// effect math runs in float32, so comparisons get a loose tolerance.
func closeTo(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

func TestFadeToMidpoint(t *testing.T) {
	m, _, _ := newTestUI(100, 100)
	e := NewPanel(Vec2{10, 10})
	m.Root().AddChild(e)

	m.FadeTo(e, 0, 1.0, ease.Linear)
	for i := 0; i < 5; i++ {
		m.Update(0.1)
	}
	closeTo(t, "opacity at midpoint", e.Opacity, 0.5, 0.01)
}

func TestFadeToCompletes(t *testing.T) {
	m, _, _ := newTestUI(100, 100)
	e := NewPanel(Vec2{10, 10})
	m.Root().AddChild(e)

	fx := m.FadeTo(e, 0, 0.5, ease.Linear)
	for i := 0; i < 10; i++ {
		m.Update(0.1)
	}
	if !fx.Done() {
		t.Error("effect should report done")
	}
	closeTo(t, "final opacity", e.Opacity, 0, 0.001)
	if len(m.effects.items) != 0 {
		t.Errorf("running effects = %d, want 0 after completion", len(m.effects.items))
	}
}

func TestEffectStop(t *testing.T) {
	m, _, _ := newTestUI(100, 100)
	e := NewPanel(Vec2{10, 10})
	m.Root().AddChild(e)

	fx := m.FadeTo(e, 0, 1.0, ease.Linear)
	m.Update(0.25)
	fx.Stop()
	frozen := e.Opacity
	m.Update(0.25)
	if e.Opacity != frozen {
		t.Errorf("opacity moved after Stop: %v -> %v", frozen, e.Opacity)
	}
}

func TestEffectStopsOnDispose(t *testing.T) {
	m, _, _ := newTestUI(100, 100)
	e := NewPanel(Vec2{10, 10})
	m.Root().AddChild(e)

	fx := m.FadeTo(e, 0, 1.0, ease.Linear)
	m.Update(0.25)
	e.Dispose()
	m.Update(0.25)
	if !fx.Done() {
		t.Error("effect should stop when its target is disposed")
	}
}

func TestFloatTo(t *testing.T) {
	m, _, _ := newTestUI(200, 200)
	e := NewPanel(Vec2{10, 10})
	m.Root().AddChild(e)

	m.FloatTo(e, Vec2{50, 30}, 0.5, ease.Linear)
	for i := 0; i < 10; i++ {
		m.Update(0.1)
	}
	closeTo(t, "offset X", e.Offset().X, 50, 0.001)
	closeTo(t, "offset Y", e.Offset().Y, 30, 0.001)
	// The layout picks up the tweened offset.
	closeTo(t, "rect X", e.DestRect().X, 50, 0.001)
}

func TestPulseNeverFinishes(t *testing.T) {
	m, _, _ := newTestUI(100, 100)
	e := NewPanel(Vec2{10, 10})
	m.Root().AddChild(e)

	fx := m.Pulse(e, 0.2, 1.0, 0.25)
	for i := 0; i < 40; i++ { // several full periods
		m.Update(0.05)
		if e.Opacity < 0.19 || e.Opacity > 1.01 {
			t.Fatalf("opacity %v escaped [0.2, 1.0]", e.Opacity)
		}
	}
	if fx.Done() {
		t.Error("pulse should run until stopped")
	}
	fx.Stop()
	m.Update(0.05)
	if len(m.effects.items) != 0 {
		t.Error("stopped pulse should leave the effect set")
	}
}

func TestTypewriter(t *testing.T) {
	m, _, _ := newTestUI(200, 200)
	p := NewParagraph("ignored", testFont())
	m.Root().AddChild(p)

	fx := m.Typewriter(p, "HELLO", 10)
	if p.Text() != "" {
		t.Fatalf("Text = %q at start, want empty", p.Text())
	}
	for i := 0; i < 3; i++ {
		m.Update(0.1)
	}
	if p.Text() != "HEL" {
		t.Errorf("Text = %q after 0.3s at 10cps, want %q", p.Text(), "HEL")
	}
	for i := 0; i < 5; i++ {
		m.Update(0.1)
	}
	if p.Text() != "HELLO" || !fx.Done() {
		t.Errorf("Text = %q done = %v, want full text and done", p.Text(), fx.Done())
	}
}

func TestTypewriterRequiresText(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("typewriter on a panel should panic")
		}
	}()
	m, _, _ := newTestUI(100, 100)
	m.Typewriter(NewPanel(Vec2{10, 10}), "x", 10)
}

func TestDisposeStopsAllEffects(t *testing.T) {
	m, _, _ := newTestUI(100, 100)
	e := NewPanel(Vec2{10, 10})
	m.Root().AddChild(e)
	m.FadeTo(e, 0, 5, ease.Linear)
	m.Pulse(e, 0, 1, 1)
	m.Dispose()
	if len(m.effects.items) != 0 {
		t.Errorf("effects = %d after manager dispose, want 0", len(m.effects.items))
	}
}
