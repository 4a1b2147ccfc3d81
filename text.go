package wicker

import (
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font is the interface for text measurement. List truncation deliberately
// uses AverageGlyphWidth rather than exact per-string measurement: the
// monospace approximation keeps truncation points stable across theme swaps,
// a known and accepted limitation for proportional fonts.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
	AverageGlyphWidth() float64
}

// rasterFont is implemented by fonts that can draw themselves onto an ebiten
// image. The EbitenSink type-asserts for it; measurement-only fonts simply
// draw nothing.
type rasterFont interface {
	draw(dst *ebiten.Image, text string, x, y float64, tint Color)
}

// --- GridFont ---

// GridFont is a fixed-cell bitmap font: a texture holding a grid of glyphs in
// codepoint order starting at FirstRune. Cells are CellW x CellH pixels.
type GridFont struct {
	Texture   *ebiten.Image
	CellW     int
	CellH     int
	Columns   int
	FirstRune rune
}

// MeasureString returns the pixel size of a single-line string.
func (f *GridFont) MeasureString(text string) (float64, float64) {
	n := utf8.RuneCountInString(text)
	return float64(n * f.CellW), float64(f.CellH)
}

// LineHeight returns the glyph cell height.
func (f *GridFont) LineHeight() float64 {
	return float64(f.CellH)
}

// AverageGlyphWidth returns the fixed cell width.
func (f *GridFont) AverageGlyphWidth() float64 {
	return float64(f.CellW)
}

func (f *GridFont) draw(dst *ebiten.Image, s string, x, y float64, tint Color) {
	if f.Texture == nil {
		return
	}
	cx := x
	for _, r := range s {
		idx := int(r - f.FirstRune)
		if idx >= 0 && f.Columns > 0 {
			sx := (idx % f.Columns) * f.CellW
			sy := (idx / f.Columns) * f.CellH
			sub := subImage(f.Texture, Rect{float64(sx), float64(sy), float64(f.CellW), float64(f.CellH)})
			if sub != nil {
				var op ebiten.DrawImageOptions
				op.GeoM.Translate(cx, y)
				applyTint(&op, tint)
				dst.DrawImage(sub, &op)
			}
		}
		cx += float64(f.CellW)
	}
}

// --- FaceFont ---

// FaceFont wraps an ebiten text/v2 face (TTF or otherwise).
type FaceFont struct {
	Face text.Face

	avgWidth float64 // cached; computed from a sample on first use
}

// NewFaceFont wraps a text/v2 face.
func NewFaceFont(face text.Face) *FaceFont {
	return &FaceFont{Face: face}
}

// MeasureString returns the advance width and line height of a string.
func (f *FaceFont) MeasureString(s string) (float64, float64) {
	w, h := text.Measure(s, f.Face, f.Face.Metrics().HLineGap)
	return w, h
}

// LineHeight returns the face's line height.
func (f *FaceFont) LineHeight() float64 {
	m := f.Face.Metrics()
	return m.HAscent + m.HDescent
}

// AverageGlyphWidth samples a representative string once and caches the mean
// advance per rune.
func (f *FaceFont) AverageGlyphWidth() float64 {
	if f.avgWidth == 0 {
		const sample = "abcdefghijklmnopqrstuvwxyz0123456789"
		w, _ := f.MeasureString(sample)
		f.avgWidth = w / float64(len(sample))
	}
	return f.avgWidth
}

func (f *FaceFont) draw(dst *ebiten.Image, s string, x, y float64, tint Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(
		float32(clamp01(tint.R)),
		float32(clamp01(tint.G)),
		float32(clamp01(tint.B)),
		float32(clamp01(tint.A)),
	)
	text.Draw(dst, s, f.Face, op)
}

// --- Truncation ---

// defaultEllipsis is the marker appended to truncated list items.
const defaultEllipsis = ".."

// truncateToWidth cuts text so that averageGlyphWidth * runeCount fits inside
// maxWidth, appending the ellipsis marker when anything was removed.
// Width accounting is the monospace approximation, by contract (see Font).
func truncateToWidth(text string, font Font, maxWidth float64, ellipsis string) string {
	if font == nil || maxWidth <= 0 {
		return text
	}
	glyph := font.AverageGlyphWidth()
	if glyph <= 0 {
		return text
	}
	runes := []rune(text)
	if float64(len(runes))*glyph <= maxWidth {
		return text
	}
	keep := int(maxWidth/glyph) - utf8.RuneCountInString(ellipsis)
	if keep < 0 {
		keep = 0
	}
	if keep > len(runes) {
		keep = len(runes)
	}
	return string(runes[:keep]) + ellipsis
}
