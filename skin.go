package wicker

import (
	"fmt"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Styling. A Style carries the textures and tints one widget renders with,
// per interaction state; a Theme maps widget kinds to styles plus toolkit
// defaults (font, per-kind sizes). Every lookup may come back empty: a widget
// with no style, or a style with no texture for the current state, degrades
// to drawing nothing for that layer.

// Style is the visual skin of one widget kind (or one specific entity, via
// Entity.Skin).
type Style struct {
	Background [3]Texture // indexed by WidgetState
	Tint       [3]Color
	TextColor  Color
	Accent     Texture // handle, check mark, progress fill
	AccentTint Color
}

// backgroundFor returns the background texture for a state, falling back to
// the default-state texture.
func (s *Style) backgroundFor(state WidgetState) Texture {
	if t := s.Background[state]; t != nil {
		return t
	}
	return s.Background[StateDefault]
}

// tintFor returns the background tint for a state; a zero tint means white.
func (s *Style) tintFor(state WidgetState) Color {
	c := s.Tint[state]
	if c == (Color{}) {
		c = s.Tint[StateDefault]
	}
	if c == (Color{}) {
		return ColorWhite
	}
	return c
}

// Theme maps widget kinds to styles and carries toolkit-wide defaults.
type Theme struct {
	styles map[EntityKind]*Style
	sizes  map[EntityKind]Vec2
	font   Font
}

// NewTheme creates an empty theme.
func NewTheme() *Theme {
	return &Theme{
		styles: make(map[EntityKind]*Style),
		sizes:  make(map[EntityKind]Vec2),
	}
}

// Style returns the style registered for a kind, nil when none is.
func (t *Theme) Style(kind EntityKind) *Style {
	return t.styles[kind]
}

// SetStyle registers (or replaces) the style for a kind.
func (t *Theme) SetStyle(kind EntityKind, s *Style) {
	t.styles[kind] = s
}

// DefaultSize returns the theme's preferred size for a kind, used when an
// auto-sized widget has no content to measure.
func (t *Theme) DefaultSize(kind EntityKind) (Vec2, bool) {
	size, ok := t.sizes[kind]
	return size, ok
}

// SetDefaultSize registers the preferred size for a kind.
func (t *Theme) SetDefaultSize(kind EntityKind, size Vec2) {
	t.sizes[kind] = size
}

// DefaultFont returns the theme's fallback font for widgets created with a
// nil font.
func (t *Theme) DefaultFont() Font {
	return t.font
}

// SetDefaultFont sets the fallback font.
func (t *Theme) SetDefaultFont(f Font) {
	t.font = f
}

// --- TOML loading ---

// TextureResolver maps a texture name from a theme file to a loaded texture.
// Returning (nil, nil) is valid and leaves that layer undrawn.
type TextureResolver func(name string) (Texture, error)

// themeFile is the on-disk TOML shape.
//
//	[sizes]
//	button = [120.0, 40.0]
//
//	[styles.button]
//	background = "button_idle"
//	background_hover = "button_hover"
//	background_pressed = "button_pressed"
//	tint = "#ffffff"
//	text_color = "#e0e0e0"
//	accent = "button_glow"
type themeFile struct {
	Sizes  map[string][2]float64     `toml:"sizes"`
	Styles map[string]styleFileEntry `toml:"styles"`
}

type styleFileEntry struct {
	Background        string `toml:"background"`
	BackgroundHover   string `toml:"background_hover"`
	BackgroundPressed string `toml:"background_pressed"`
	Tint              string `toml:"tint"`
	TintHover         string `toml:"tint_hover"`
	TintPressed       string `toml:"tint_pressed"`
	TextColor         string `toml:"text_color"`
	Accent            string `toml:"accent"`
	AccentTint        string `toml:"accent_tint"`
}

// LoadTheme parses TOML theme data, resolving texture names through resolve.
// A nil resolver loads a texture-less theme (tints and sizes only).
func LoadTheme(data []byte, resolve TextureResolver) (*Theme, error) {
	var file themeFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("wicker: parsing theme: %w", err)
	}
	t := NewTheme()
	for name, size := range file.Sizes {
		kind, ok := parseKind(name)
		if !ok {
			return nil, fmt.Errorf("wicker: theme sizes: unknown widget kind %q", name)
		}
		t.sizes[kind] = Vec2{size[0], size[1]}
	}
	for name, entry := range file.Styles {
		kind, ok := parseKind(name)
		if !ok {
			return nil, fmt.Errorf("wicker: theme styles: unknown widget kind %q", name)
		}
		style, err := entry.build(resolve)
		if err != nil {
			return nil, fmt.Errorf("wicker: theme style %q: %w", name, err)
		}
		t.styles[kind] = style
	}
	return t, nil
}

func (f *styleFileEntry) build(resolve TextureResolver) (*Style, error) {
	s := &Style{}
	textures := [...]struct {
		name string
		dst  *Texture
	}{
		{f.Background, &s.Background[StateDefault]},
		{f.BackgroundHover, &s.Background[StateHover]},
		{f.BackgroundPressed, &s.Background[StatePressed]},
		{f.Accent, &s.Accent},
	}
	for _, tex := range textures {
		if tex.name == "" || resolve == nil {
			continue
		}
		loaded, err := resolve(tex.name)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", tex.name, err)
		}
		*tex.dst = loaded
	}
	colors := [...]struct {
		hex string
		dst *Color
	}{
		{f.Tint, &s.Tint[StateDefault]},
		{f.TintHover, &s.Tint[StateHover]},
		{f.TintPressed, &s.Tint[StatePressed]},
		{f.TextColor, &s.TextColor},
		{f.AccentTint, &s.AccentTint},
	}
	for _, c := range colors {
		if c.hex == "" {
			continue
		}
		parsed, err := parseHexColor(c.hex)
		if err != nil {
			return nil, err
		}
		*c.dst = parsed
	}
	return s, nil
}

// parseHexColor parses "#rrggbb" or "#rrggbbaa".
func parseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	c := Color{A: 1}
	if len(hex) == 8 {
		c.A = float64(v&0xff) / 255
		v >>= 8
	}
	c.B = float64(v&0xff) / 255
	c.G = float64((v>>8)&0xff) / 255
	c.R = float64((v>>16)&0xff) / 255
	return c, nil
}
