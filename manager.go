package wicker

// Manager is the toolkit's entry point: it owns the root of the entity tree,
// the shared UI state, and the per-frame Update/Draw cycle. The host calls
// Update once per logic tick and Draw once per frame, from the same
// goroutine; nothing in the toolkit is safe for concurrent use.

// tooltipDelay is how long the pointer must rest on an entity before its
// tooltip appears, in seconds.
const tooltipDelay = 0.6

// Config configures a new Manager. Zero-value fields fall back to sensible
// defaults; Input and Sink may be nil for headless layout-only use.
type Config struct {
	Input InputSource
	Sink  DrawSink
	Theme *Theme

	// Screen size in pixels; the root entity resolves against it.
	Width, Height float64

	// Global UI scale; 0 means 1.
	Scale float64

	// SoftErrors makes lookup and selection failures silent no-ops instead
	// of typed errors. Recommended for production, off for development.
	SoftErrors bool

	// Debug enables tree sanity checks and per-frame stderr stats.
	Debug bool

	// UseRenderTarget routes the whole UI through a top-level offscreen
	// surface so PresentComposited can transform it as one texture.
	UseRenderTarget bool
}

// Manager drives one independent UI instance. Multiple managers can coexist;
// they share nothing.
type Manager struct {
	ui   *uiState
	root *Entity

	useTarget  bool
	topSurface Surface

	effects effectSet

	tooltipFor   *Entity
	tooltipTimer float64

	cursor        Texture
	cursorHotspot Vec2

	screenshotQueue []string
	screenshotDir   string

	overlay debugOverlay
}

// NewManager creates a manager and its root container, sized to the screen.
func NewManager(cfg Config) *Manager {
	ui := newUIState()
	ui.input = cfg.Input
	ui.sink = cfg.Sink
	ui.theme = cfg.Theme
	ui.softErrors = cfg.SoftErrors
	ui.debug = cfg.Debug
	ui.screen = Vec2{cfg.Width, cfg.Height}
	if cfg.Scale > 0 {
		ui.scale = cfg.Scale
	}
	ui.global = &eventRegistry{}

	root := NewPanel(Vec2{SizeFill, SizeFill})
	root.Identifier = "root"
	root.adoptUIState(ui)

	return &Manager{ui: ui, root: root, useTarget: cfg.UseRenderTarget}
}

// Root returns the root container every top-level entity is added to.
func (m *Manager) Root() *Entity {
	return m.root
}

// Update advances the UI by dt seconds: polls input, dispatches pointer and
// keyboard events, and ticks running effects.
func (m *Manager) Update(dt float64) {
	m.ui.updateFrame(m.root, dt)
	m.effects.tick(dt)
	m.tickTooltip(dt)
	m.overlay.tick(dt)
}

// Draw renders the tree into the configured sink. When UseRenderTarget is
// set the tree renders into the top-level surface and composites untransformed;
// use PresentComposited for a transformed presentation.
func (m *Manager) Draw() {
	m.PresentComposited(identityTransform)
}

// PresentComposited renders the tree and, when UseRenderTarget is set,
// composites the top-level surface through the given affine matrix
// [a, b, c, d, tx, ty]. Without a render target the matrix is ignored and
// the tree draws directly.
func (m *Manager) PresentComposited(mat [6]float64) {
	ui := m.ui
	if ui.sink == nil {
		return
	}
	if m.useTarget {
		surface := m.ensureTopSurface()
		ui.sink.Push(surface)
		surface.Clear()
		ui.drawFrame(m.root)
		ui.sink.Pop()
		ui.sink.DrawTransformed(surface, mat, ColorWhite)
	} else {
		ui.drawFrame(m.root)
	}
	m.drawTooltip()
	m.drawCursor()
	m.drawDebugOverlay()
	m.flushScreenshots()
	ui.debugLogFrame()
}

func (m *Manager) ensureTopSurface() Surface {
	w := int(m.ui.screen.X)
	h := int(m.ui.screen.Y)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if m.topSurface != nil && !m.topSurface.IsDisposed() {
		if sw, sh := m.topSurface.Size(); sw == w && sh == h {
			return m.topSurface
		}
		m.topSurface.Dispose()
	}
	m.topSurface = m.ui.sink.NewSurface(w, h)
	return m.topSurface
}

// On registers a manager-global event callback, fired after the entity-level
// callbacks for every entity in this manager's tree.
func (m *Manager) On(event EventType, fn EventHandler) Subscription {
	return m.ui.global.subscribe(event, fn)
}

// Find searches the whole tree by identifier.
func (m *Manager) Find(identifier string) (*Entity, error) {
	return m.root.Find(identifier)
}

// Scale returns the global UI scale.
func (m *Manager) Scale() float64 {
	return m.ui.scale
}

// SetScale sets the global UI scale. Every cached rectangle is invalidated;
// nothing recomputes until the next read.
func (m *Manager) SetScale(s float64) {
	if s <= 0 || s == m.ui.scale {
		return
	}
	m.ui.scale = s
	m.ui.scaleVersion++
}

// SetScreenSize resizes the area the root resolves against.
func (m *Manager) SetScreenSize(w, h float64) {
	size := Vec2{w, h}
	if m.ui.screen == size {
		return
	}
	m.ui.screen = size
	m.ui.scaleVersion++
}

// SoftErrors reports the soft-error setting.
func (m *Manager) SoftErrors() bool {
	return m.ui.softErrors
}

// SetSoftErrors toggles silent soft errors: lookup and selection failures
// become no-ops returning nil instead of typed errors.
func (m *Manager) SetSoftErrors(v bool) {
	m.ui.softErrors = v
}

// SetDebug toggles tree sanity checks and per-frame stderr stats.
func (m *Manager) SetDebug(v bool) {
	m.ui.debug = v
}

// Theme returns the active theme, nil when none is set.
func (m *Manager) Theme() *Theme {
	return m.ui.theme
}

// SetTheme swaps the active theme. Widget sizes derived from theme defaults
// pick the new values up on their next layout read.
func (m *Manager) SetTheme(t *Theme) {
	m.ui.theme = t
	m.ui.scaleVersion++
}

// FocusedEntity returns the entity holding keyboard focus, nil for none.
func (m *Manager) FocusedEntity() *Entity {
	return m.ui.focused
}

// HoveredEntity returns the entity under the pointer after the last Update.
func (m *Manager) HoveredEntity() *Entity {
	return m.ui.hovered
}

// Dispose releases the whole tree and any owned surfaces.
func (m *Manager) Dispose() {
	m.effects.stopAll()
	m.root.Dispose()
	if m.topSurface != nil {
		m.topSurface.Dispose()
		m.topSurface = nil
	}
}

// SetCursor installs a custom pointer texture drawn on top of the whole UI,
// with hotspot giving the texel that sits on the pointer position. A nil
// texture restores the host system cursor (nothing is drawn).
func (m *Manager) SetCursor(t Texture, hotspot Vec2) {
	m.cursor = t
	m.cursorHotspot = hotspot
}

// drawCursor paints the custom cursor last, above tooltips and every entity.
func (m *Manager) drawCursor() {
	if m.cursor == nil || m.ui.input == nil {
		return
	}
	pointer := m.ui.input.PointerPosition()
	w, h := m.cursor.Size()
	dst := Rect{
		X:      pointer.X - m.cursorHotspot.X*m.ui.scale,
		Y:      pointer.Y - m.cursorHotspot.Y*m.ui.scale,
		Width:  float64(w) * m.ui.scale,
		Height: float64(h) * m.ui.scale,
	}
	m.ui.sink.DrawTexture(m.cursor, Rect{}, dst, ColorWhite)
	m.ui.drawOps++
}

// --- Tooltip ---

func (m *Manager) tickTooltip(dt float64) {
	h := m.ui.hovered
	if h != m.tooltipFor {
		m.tooltipFor = h
		m.tooltipTimer = 0
		return
	}
	if h != nil && h.TooltipText != "" {
		m.tooltipTimer += dt
	}
}

// drawTooltip renders the hovered entity's tooltip near the pointer once the
// rest delay has elapsed.
func (m *Manager) drawTooltip() {
	t := m.tooltipFor
	if t == nil || t.disposed || t.TooltipText == "" || m.tooltipTimer < tooltipDelay {
		return
	}
	if m.ui.input == nil {
		return
	}
	var font Font
	if m.ui.theme != nil {
		font = m.ui.theme.DefaultFont()
	}
	if font == nil {
		return
	}
	pointer := m.ui.input.PointerPosition()
	w, h := font.MeasureString(t.TooltipText)
	pad := 4.0
	box := Rect{pointer.X + 12, pointer.Y + 16, w + pad*2, h + pad*2}
	if right := box.X + box.Width; right > m.ui.screen.X {
		box.X -= right - m.ui.screen.X
	}
	m.ui.sink.FillRect(box, Color{0, 0, 0, 0.85})
	m.ui.sink.DrawText(font, t.TooltipText, Vec2{box.X + pad, box.Y + pad}, ColorWhite)
	m.ui.drawOps += 2
}
