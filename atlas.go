package wicker

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Skin texture atlas. Theme files reference textures by name; an Atlas backs
// those names with sub-rectangles of packed page images so a whole theme
// ships as one or two textures. Atlas.Resolve plugs directly into LoadTheme.

// RegionTexture is a named sub-rectangle of an atlas page, usable anywhere a
// Texture is.
type RegionTexture struct {
	Image  *ebiten.Image
	Region Rect // zero = whole image
}

// Size returns the region's pixel size.
func (t *RegionTexture) Size() (int, int) {
	if t.Region != (Rect{}) {
		return int(t.Region.Width), int(t.Region.Height)
	}
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Atlas holds one or more page images and a map of named regions.
type Atlas struct {
	pages   []*ebiten.Image
	regions map[string]atlasRegion
	debug   bool
}

type atlasRegion struct {
	page uint16
	rect Rect
}

// Region returns the texture for the given name. A missing name returns a
// 1x1 magenta placeholder so the gap is visible rather than fatal; with
// SetDebug it also logs a warning.
func (a *Atlas) Region(name string) Texture {
	if r, ok := a.regions[name]; ok {
		return &RegionTexture{Image: a.pages[r.page], Region: r.rect}
	}
	if a.debug {
		log.Printf("wicker: atlas region %q not found, using magenta placeholder", name)
	}
	return &RegionTexture{Image: ensureMagentaImage()}
}

// Resolve is a TextureResolver over the atlas, for LoadTheme.
func (a *Atlas) Resolve(name string) (Texture, error) {
	if _, ok := a.regions[name]; !ok {
		return nil, &NotFoundError{What: "atlas region", Key: name}
	}
	return a.Region(name), nil
}

// SetDebug toggles warnings for missing region names.
func (a *Atlas) SetDebug(v bool) {
	a.debug = v
}

// magenta placeholder singleton (no sync.Once — wicker is single-threaded)
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}

// LoadAtlas parses TexturePacker JSON data and associates the given page
// images. Supports both the hash format (single "frames" object) and the
// array format ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("wicker: parsing atlas: %w", err)
	}

	atlas := &Atlas{
		pages:   pages,
		regions: make(map[string]atlasRegion),
	}

	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("wicker: parsing atlas textures array: %w", err)
		}
		for i, tex := range textures {
			for name, f := range tex.Frames {
				atlas.regions[name] = frameToRegion(f, uint16(i))
			}
		}
	case probe.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("wicker: parsing atlas frames: %w", err)
		}
		for name, f := range frames {
			atlas.regions[name] = frameToRegion(f, 0)
		}
	default:
		return nil, fmt.Errorf("wicker: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return atlas, nil
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame jsonRect `json:"frame"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

func frameToRegion(f jsonFrame, page uint16) atlasRegion {
	return atlasRegion{
		page: page,
		rect: Rect{float64(f.Frame.X), float64(f.Frame.Y), float64(f.Frame.W), float64(f.Frame.H)},
	}
}
