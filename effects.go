package wicker

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween-driven effects on entity properties. Effects are owned by the
// Manager and advanced inside Update; an effect whose target is disposed
// stops immediately without touching it again. There is no separate
// animation goroutine — everything runs on the frame tick.

// Effect is one running animation. Stop cancels it early.
type Effect struct {
	target *Entity
	done   bool
	step   func(dt float32) bool // returns true when finished
}

// Stop cancels the effect; the animated property keeps its current value.
func (fx *Effect) Stop() {
	fx.done = true
}

// Done reports whether the effect has finished or was stopped.
func (fx *Effect) Done() bool {
	return fx.done
}

func (fx *Effect) tick(dt float64) {
	if fx.done {
		return
	}
	if fx.target != nil && fx.target.IsDisposed() {
		fx.done = true
		return
	}
	if fx.step(float32(dt)) {
		fx.done = true
	}
}

// effectSet is the manager's running-effect list, compacted as effects
// finish.
type effectSet struct {
	items []*Effect
}

func (s *effectSet) add(fx *Effect) {
	s.items = append(s.items, fx)
}

func (s *effectSet) tick(dt float64) {
	live := s.items[:0]
	for _, fx := range s.items {
		fx.tick(dt)
		if !fx.done {
			live = append(live, fx)
		}
	}
	for i := len(live); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = live
}

func (s *effectSet) stopAll() {
	for _, fx := range s.items {
		fx.done = true
	}
	s.items = nil
}

// FadeTo animates the entity's opacity to the target value.
func (m *Manager) FadeTo(e *Entity, to float64, duration float32, fn ease.TweenFunc) *Effect {
	tween := gween.New(float32(e.Opacity), float32(to), duration, fn)
	fx := &Effect{target: e}
	fx.step = func(dt float32) bool {
		v, finished := tween.Update(dt)
		e.Opacity = float64(v)
		return finished
	}
	m.effects.add(fx)
	return fx
}

// FloatTo animates the entity's offset to the target value, re-laying it out
// each frame.
func (m *Manager) FloatTo(e *Entity, to Vec2, duration float32, fn ease.TweenFunc) *Effect {
	tx := gween.New(float32(e.offset.X), float32(to.X), duration, fn)
	ty := gween.New(float32(e.offset.Y), float32(to.Y), duration, fn)
	fx := &Effect{target: e}
	fx.step = func(dt float32) bool {
		x, fx1 := tx.Update(dt)
		y, fx2 := ty.Update(dt)
		e.SetOffset(Vec2{float64(x), float64(y)})
		return fx1 && fx2
	}
	m.effects.add(fx)
	return fx
}

// Pulse oscillates the entity's opacity between lo and hi forever (until
// Stop). halfPeriod is the duration of one lo-to-hi leg in seconds.
func (m *Manager) Pulse(e *Entity, lo, hi float64, halfPeriod float32) *Effect {
	up := gween.New(float32(lo), float32(hi), halfPeriod, ease.InOutSine)
	down := gween.New(float32(hi), float32(lo), halfPeriod, ease.InOutSine)
	cur := up
	fx := &Effect{target: e}
	fx.step = func(dt float32) bool {
		v, finished := cur.Update(dt)
		e.Opacity = float64(v)
		if finished {
			cur.Reset()
			if cur == up {
				cur = down
			} else {
				cur = up
			}
		}
		return false
	}
	m.effects.add(fx)
	return fx
}

// Typewriter reveals text one rune at a time at charsPerSecond.
// Panics if the entity has no text content to animate.
func (m *Manager) Typewriter(e *Entity, text string, charsPerSecond float64) *Effect {
	if e.label == nil && e.field == nil {
		panic("wicker: typewriter effect requires a text widget, got " + e.Kind.String())
	}
	runes := []rune(text)
	shown := 0
	elapsed := 0.0
	e.SetText("")
	fx := &Effect{target: e}
	fx.step = func(dt float32) bool {
		elapsed += float64(dt)
		want := int(elapsed * charsPerSecond)
		if want > len(runes) {
			want = len(runes)
		}
		if want != shown {
			shown = want
			e.SetText(string(runes[:shown]))
		}
		return shown == len(runes)
	}
	m.effects.add(fx)
	return fx
}
