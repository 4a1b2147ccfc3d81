package wicker

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Frame capture. Screenshots are queued from anywhere and flushed at the end
// of the next Draw, when the bound screen holds the finished frame. Only the
// Ebitengine sink can capture; with any other sink queued labels are
// silently dropped.

// DefaultScreenshotDir is where CaptureScreenshots writes when dir is empty.
const DefaultScreenshotDir = "screenshots"

// Screenshot queues a labeled screenshot of the next finished frame.
// The PNG lands in the manager's screenshot directory with a timestamped
// filename.
func (m *Manager) Screenshot(label string) {
	m.screenshotQueue = append(m.screenshotQueue, label)
}

// SetScreenshotDir overrides the directory screenshots are written to.
func (m *Manager) SetScreenshotDir(dir string) {
	m.screenshotDir = dir
}

// flushScreenshots captures the rendered frame for every queued label.
// Called at the end of Manager.Draw.
func (m *Manager) flushScreenshots() {
	if len(m.screenshotQueue) == 0 {
		return
	}
	queue := m.screenshotQueue
	m.screenshotQueue = m.screenshotQueue[:0]

	sink, ok := m.ui.sink.(*EbitenSink)
	if !ok || sink.screen == nil {
		return
	}
	dir := m.screenshotDir
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[wicker] screenshot: mkdir %s: %v\n", dir, err)
		return
	}

	img := captureImage(sink.screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range queue {
		path := fmt.Sprintf("%s/%s_%s.png", dir, stamp, sanitizeLabel(label))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[wicker] screenshot: %v\n", err)
		}
	}
}

// captureImage reads the frame's pixels, converting premultiplied RGBA to
// straight-alpha NRGBA.
func captureImage(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
