package wicker

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// identityTransform is the identity affine matrix, layout [a, b, c, d, tx, ty].
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Texture is an opaque handle to drawable pixels. Skins resolve to a Texture
// plus a source rectangle; offscreen surfaces are textures too.
type Texture interface {
	Size() (w, h int)
}

// Surface is an offscreen pixel buffer drawn into instead of the screen and
// later composited, used to implement clipping and scrolling. Surfaces are
// exclusively owned by their container and accessed only during its Draw.
type Surface interface {
	Texture
	Clear()
	Dispose()
	IsDisposed() bool
}

// DrawSink is the rasterization boundary. Draw calls are routed to the top of
// the surface stack; with an empty stack they hit the bound screen. Push/Pop
// must be strictly balanced within one frame — an imbalance is a fatal bug,
// not a recoverable condition.
type DrawSink interface {
	NewSurface(w, h int) Surface
	Push(s Surface)
	Pop()
	Depth() int

	DrawTexture(t Texture, src Rect, dst Rect, tint Color)
	FillRect(dst Rect, tint Color)
	DrawText(f Font, text string, pos Vec2, tint Color)

	// DrawTransformed composites a texture through an affine matrix
	// [a, b, c, d, tx, ty]. Used by PresentComposited for whole-UI effects.
	DrawTransformed(t Texture, m [6]float64, tint Color)
}

// --- Ebiten implementation ---

// whitePixel is a lazily created 1x1 white image used for solid fills.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(colorRGBA{255, 255, 255, 255})
	}
	return whitePixel
}

// ImageTexture wraps an *ebiten.Image as a Texture.
type ImageTexture struct {
	Image *ebiten.Image
}

// Size returns the image dimensions in pixels.
func (t *ImageTexture) Size() (int, int) {
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

type ebitenSurface struct {
	img      *ebiten.Image
	w, h     int
	disposed bool
}

func (s *ebitenSurface) Size() (int, int) { return s.w, s.h }

func (s *ebitenSurface) Clear() {
	if !s.disposed {
		s.img.Clear()
	}
}

func (s *ebitenSurface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.img.Deallocate()
	s.img = nil
}

func (s *ebitenSurface) IsDisposed() bool { return s.disposed }

// EbitenSink is the DrawSink backed by Ebitengine. Bind the frame's screen
// image before Manager.Draw:
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.sink.Bind(screen)
//		g.ui.Draw()
//	}
type EbitenSink struct {
	screen *ebiten.Image
	stack  []*ebitenSurface
}

// NewEbitenSink creates an unbound sink. Bind must be called each frame.
func NewEbitenSink() *EbitenSink {
	return &EbitenSink{}
}

// Bind sets the screen image draws fall through to when the surface stack is
// empty.
func (k *EbitenSink) Bind(screen *ebiten.Image) {
	k.screen = screen
}

// NewSurface creates an offscreen surface of the given pixel size.
func (k *EbitenSink) NewSurface(w, h int) Surface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &ebitenSurface{img: ebiten.NewImage(w, h), w: w, h: h}
}

// Push routes subsequent draws to the given surface.
func (k *EbitenSink) Push(s Surface) {
	es, ok := s.(*ebitenSurface)
	if !ok || es.disposed {
		panic("wicker: pushing an invalid or disposed surface")
	}
	k.stack = append(k.stack, es)
}

// Pop restores the previous draw target.
func (k *EbitenSink) Pop() {
	if len(k.stack) == 0 {
		panic("wicker: surface stack underflow")
	}
	k.stack[len(k.stack)-1] = nil
	k.stack = k.stack[:len(k.stack)-1]
}

// Depth returns the current surface stack depth.
func (k *EbitenSink) Depth() int {
	return len(k.stack)
}

func (k *EbitenSink) target() *ebiten.Image {
	if len(k.stack) > 0 {
		return k.stack[len(k.stack)-1].img
	}
	return k.screen
}

// DrawTexture draws the src sub-rectangle of t into dst with a tint.
// A nil texture or a disposed surface degrades to drawing nothing.
func (k *EbitenSink) DrawTexture(t Texture, src Rect, dst Rect, tint Color) {
	img := resolveEbitenImage(t)
	if img == nil || k.target() == nil {
		return
	}
	sub := subImage(img, src)
	if sub == nil {
		return
	}
	var op ebiten.DrawImageOptions
	b := sub.Bounds()
	sw := float64(b.Dx())
	sh := float64(b.Dy())
	if sw > 0 && sh > 0 {
		op.GeoM.Scale(dst.Width/sw, dst.Height/sh)
	}
	op.GeoM.Translate(dst.X, dst.Y)
	applyTint(&op, tint)
	k.target().DrawImage(sub, &op)
}

// FillRect fills dst with a solid color.
func (k *EbitenSink) FillRect(dst Rect, tint Color) {
	if k.target() == nil || tint.A <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(dst.Width, dst.Height)
	op.GeoM.Translate(dst.X, dst.Y)
	applyTint(&op, tint)
	k.target().DrawImage(ensureWhitePixel(), &op)
}

// DrawText draws a string at pos using the font's rasterizer. Fonts that
// cannot rasterize (measurement-only) degrade to drawing nothing.
func (k *EbitenSink) DrawText(f Font, text string, pos Vec2, tint Color) {
	if k.target() == nil || f == nil || text == "" {
		return
	}
	if rf, ok := f.(rasterFont); ok {
		rf.draw(k.target(), text, pos.X, pos.Y, tint)
	}
}

// DrawTransformed composites a texture through an affine matrix.
func (k *EbitenSink) DrawTransformed(t Texture, m [6]float64, tint Color) {
	img := resolveEbitenImage(t)
	if img == nil || k.target() == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.SetElement(0, 0, m[0])
	op.GeoM.SetElement(1, 0, m[1])
	op.GeoM.SetElement(0, 1, m[2])
	op.GeoM.SetElement(1, 1, m[3])
	op.GeoM.SetElement(0, 2, m[4])
	op.GeoM.SetElement(1, 2, m[5])
	applyTint(&op, tint)
	k.target().DrawImage(img, &op)
}

// resolveEbitenImage unwraps the concrete image behind a Texture. Disposed
// surfaces resolve to nil ("nothing to draw") since disposal can legitimately
// race frame boundaries in hosts with custom lifecycle management.
func resolveEbitenImage(t Texture) *ebiten.Image {
	switch v := t.(type) {
	case *ImageTexture:
		return v.Image
	case *RegionTexture:
		return subImage(v.Image, v.Region)
	case *ebitenSurface:
		if v.disposed {
			return nil
		}
		return v.img
	default:
		return nil
	}
}

// subImage returns the sub-image for src, or the whole image when src is the
// zero rect.
func subImage(img *ebiten.Image, src Rect) *ebiten.Image {
	if src == (Rect{}) {
		return img
	}
	b := img.Bounds()
	x0 := b.Min.X + int(src.X)
	y0 := b.Min.Y + int(src.Y)
	sub := img.SubImage(image.Rect(x0, y0, x0+int(src.Width), y0+int(src.Height)))
	out, _ := sub.(*ebiten.Image)
	return out
}

func applyTint(op *ebiten.DrawImageOptions, c Color) {
	op.ColorScale.Scale(
		float32(clamp01(c.R)),
		float32(clamp01(c.G)),
		float32(clamp01(c.B)),
		float32(clamp01(c.A)),
	)
}

// colorRGBA implements the color.Color interface for image fills.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// --- Recording sink (tests and headless hosts) ---

// RecordedOp is one primitive emitted through a RecordingSink.
type RecordedOp struct {
	Kind    string // "texture", "fill", "text", "composite"
	Dst     Rect
	Src     Rect
	Tint    Color
	Text    string
	Depth   int // surface stack depth when the op was emitted
	Surface Surface
}

// FakeSurface is the Surface implementation used by RecordingSink.
type FakeSurface struct {
	W, H     int
	Cleared  int
	disposed bool
}

func (s *FakeSurface) Size() (int, int) { return s.W, s.H }
func (s *FakeSurface) Clear()           { s.Cleared++ }
func (s *FakeSurface) Dispose()         { s.disposed = true }
func (s *FakeSurface) IsDisposed() bool { return s.disposed }

// RecordingSink is a DrawSink that records every primitive instead of
// rasterizing. It keeps the same push/pop balance contract as the real sink,
// which makes it the natural harness for traversal and compositing tests.
type RecordingSink struct {
	Ops      []RecordedOp
	Surfaces []*FakeSurface
	MaxDepth int
	depth    int
}

// NewRecordingSink creates an empty recording sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// Reset drops all recorded ops, keeping created surfaces.
func (k *RecordingSink) Reset() {
	k.Ops = k.Ops[:0]
}

func (k *RecordingSink) NewSurface(w, h int) Surface {
	s := &FakeSurface{W: w, H: h}
	k.Surfaces = append(k.Surfaces, s)
	return s
}

func (k *RecordingSink) Push(s Surface) {
	if s == nil || s.IsDisposed() {
		panic("wicker: pushing an invalid or disposed surface")
	}
	k.depth++
	if k.depth > k.MaxDepth {
		k.MaxDepth = k.depth
	}
}

func (k *RecordingSink) Pop() {
	if k.depth == 0 {
		panic("wicker: surface stack underflow")
	}
	k.depth--
}

func (k *RecordingSink) Depth() int { return k.depth }

func (k *RecordingSink) DrawTexture(t Texture, src Rect, dst Rect, tint Color) {
	op := RecordedOp{Kind: "texture", Src: src, Dst: dst, Tint: tint, Depth: k.depth}
	if s, ok := t.(Surface); ok {
		op.Kind = "composite"
		op.Surface = s
	}
	k.Ops = append(k.Ops, op)
}

func (k *RecordingSink) FillRect(dst Rect, tint Color) {
	k.Ops = append(k.Ops, RecordedOp{Kind: "fill", Dst: dst, Tint: tint, Depth: k.depth})
}

func (k *RecordingSink) DrawText(f Font, text string, pos Vec2, tint Color) {
	k.Ops = append(k.Ops, RecordedOp{
		Kind: "text", Text: text,
		Dst: Rect{X: pos.X, Y: pos.Y}, Tint: tint, Depth: k.depth,
	})
}

func (k *RecordingSink) DrawTransformed(t Texture, m [6]float64, tint Color) {
	op := RecordedOp{Kind: "composite", Tint: tint, Depth: k.depth}
	op.Dst = Rect{X: m[4], Y: m[5]}
	if s, ok := t.(Surface); ok {
		op.Surface = s
	}
	k.Ops = append(k.Ops, op)
}

// OpsByKind returns the recorded ops matching kind, preserving order.
func (k *RecordingSink) OpsByKind(kind string) []RecordedOp {
	var out []RecordedOp
	for _, op := range k.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// String summarizes the recorded stream, useful in test failure output.
func (k *RecordingSink) String() string {
	return fmt.Sprintf("RecordingSink{%d ops, %d surfaces, max depth %d}",
		len(k.Ops), len(k.Surfaces), k.MaxDepth)
}
