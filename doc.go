// Package wicker is a retained-mode GUI widget toolkit for [Ebitengine].
//
// Wicker manages a tree of interactive widgets (panels, buttons, text,
// lists, sliders, and more), computes their screen-space layout from a small
// anchor+offset+size model, dispatches pointer and keyboard input to the
// correct widget honoring z-order and containment, and renders through a
// draw-sink abstraction with offscreen composition for clipping and
// scrolling.
//
// # Quick start
//
// Implement [ebiten.Game] and drive a [Manager] from it:
//
//	type Game struct {
//		ui   *wicker.Manager
//		sink *wicker.EbitenSink
//	}
//
//	func (g *Game) Update() error {
//		g.ui.Update(1.0 / 60)
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.sink.Bind(screen)
//		g.ui.Draw()
//	}
//
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// Create the manager with the real input and sink backends:
//
//	sink := wicker.NewEbitenSink()
//	ui := wicker.NewManager(wicker.Config{
//		Input: wicker.NewEbitenInput(),
//		Sink:  sink,
//		Width: 640, Height: 480,
//	})
//
// # Widgets
//
// Every widget is an [Entity]. Entities form a tree rooted at
// [Manager.Root]; any entity can parent any other. Create widgets with the
// typed constructors: [NewPanel], [NewButton], [NewParagraph], [NewImage],
// [NewCheckbox], [NewScrollbar], [NewSlider], [NewSelectList], [NewDropDown],
// [NewProgressBar], [NewTextInput].
//
//	panel := wicker.NewPanel(wicker.Vec2{X: 200, Y: 300})
//	panel.SetAnchor(wicker.AnchorCenter)
//	ui.Root().AddChild(panel)
//
//	button := wicker.NewButton("Start", font)
//	button.SetAnchor(wicker.AnchorAuto)
//	button.On(wicker.EventClick, func(wicker.EventContext) {
//		// ...
//	})
//	panel.AddChild(button)
//
// # Layout
//
// A widget's rectangle derives from its parent's internal rectangle plus an
// anchor, an offset, and a declared size. Sizes use two sentinels:
// [SizeFill] stretches to the parent axis, [SizeAuto] measures content. The
// auto anchors ([AnchorAuto], [AnchorAutoInline], and friends) place
// siblings sequentially so containers fill themselves like a document flow.
// Rectangles are cached and recomputed lazily when an input changes.
//
// # Clipping and scrolling
//
// Panels own an [Overflow] policy: children draw through the bounds, are
// clipped to them, or scroll behind them with an auto-attached scrollbar.
// Clipped content composites through offscreen surfaces created by the
// [DrawSink].
//
// # Testing
//
// [ScriptedInput] and [RecordingSink] replace the Ebitengine backends for
// headless tests: script pointer sequences, run Update/Draw, and assert on
// recorded draw primitives. [ScriptRunner] replays JSON interaction scripts
// the same way.
//
// [Ebitengine]: https://ebitengine.org
package wicker
