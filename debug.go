package wicker

import (
	"fmt"
	"os"
)

// Debug-mode sanity checks and per-frame stats. All of this is gated behind
// uiState.debug; release-mode frames never pay for it.

// debugCheckDisposed panics with a descriptive message when a disposed entity
// is used in a tree operation.
func debugCheckDisposed(e *Entity, op string) {
	if e.disposed {
		panic(fmt.Sprintf("wicker debug: %s on disposed entity %q (ID was %d)", op, e.Identifier, e.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Entity) {
	depth := 0
	for p := e; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[wicker] warning: tree depth %d exceeds %d (entity %q)\n",
			depth, debugMaxTreeDepth, e.Identifier)
	}
}

// debugCheckChildCount warns on stderr if an entity has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(e *Entity) {
	if len(e.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[wicker] warning: entity %q has %d children (threshold %d)\n",
			e.Identifier, len(e.children), debugMaxChildCount)
	}
}

// debugLogFrame prints the frame's draw stats to stderr.
func (ui *uiState) debugLogFrame() {
	if !ui.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[wicker] draw ops: %d | surface depth max: %d\n",
		ui.drawOps, ui.maxSurfaceDepth)
}
