package wicker

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Debug overlay. With Config.Debug (or SetDebug) on and the Ebitengine sink
// bound, each frame gets a small stats readout in the top-left corner: host
// FPS/TPS plus the toolkit's own draw-op and surface-depth counts. Refreshed
// at ~2 Hz so the text is readable.

type debugOverlay struct {
	elapsed float64
	text    string
}

func (o *debugOverlay) tick(dt float64) {
	o.elapsed += dt
}

// drawDebugOverlay renders the stats readout directly to the bound screen,
// above everything the tree drew.
func (m *Manager) drawDebugOverlay() {
	if !m.ui.debug {
		return
	}
	sink, ok := m.ui.sink.(*EbitenSink)
	if !ok || sink.screen == nil {
		return
	}
	if m.overlay.text == "" || m.overlay.elapsed >= 0.5 {
		m.overlay.elapsed = 0
		m.overlay.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nops: %d  depth: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), m.ui.drawOps, m.ui.maxSurfaceDepth)
	}
	ebitenutil.DebugPrintAt(sink.screen, m.overlay.text, 4, 4)
}
