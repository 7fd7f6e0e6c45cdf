// Package icongen draws the placeholder extension icons: a label centered on a
// solid background, written out as PNG.
package icongen

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/oxtoacart/bpool"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultLabel      = "LIA"
	DefaultBackground = "#0A66C2"
	DefaultForeground = "#FFFFFF"
	DefaultFontScale  = 0.4
)

// Tried in order. The first one that parses is used.
var DefaultFontPaths = []string{
	"/System/Library/Fonts/Helvetica.ttc",
	"/Library/Fonts/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

type Options struct {
	Label      string
	Background string
	Foreground string
	// Preferred font files (TTF, OTF or TTC). If none of them load we use the
	// built-in bitmap face.
	FontPaths []string
	// Font size as a fraction of the icon edge length.
	FontScale float64
}

func DefaultOptions() Options {
	return Options{
		Label:      DefaultLabel,
		Background: DefaultBackground,
		Foreground: DefaultForeground,
		FontPaths:  DefaultFontPaths,
		FontScale:  DefaultFontScale,
	}
}

// IconSpec is one icon to write: its edge length in pixels and where it goes.
type IconSpec struct {
	Size int
	Path string
}

type Generator struct {
	label     string
	bg        color.RGBA
	fg        color.RGBA
	fontScale float64
	// nil when no preferred font could be loaded
	font    *opentype.Font
	bufpool *bpool.BufferPool
}

var ErrEmptyLabel = errors.New("icongen: label is empty")

func NewGenerator(opts Options) (*Generator, error) {
	if opts.Label == "" {
		return nil, ErrEmptyLabel
	}
	if opts.FontScale <= 0 {
		return nil, fmt.Errorf("icongen: font scale must be positive, got %v", opts.FontScale)
	}
	bg, err := parseHexColor(opts.Background)
	if err != nil {
		return nil, fmt.Errorf("icongen: background: %w", err)
	}
	fg, err := parseHexColor(opts.Foreground)
	if err != nil {
		return nil, fmt.Errorf("icongen: foreground: %w", err)
	}
	return &Generator{
		label:     opts.Label,
		bg:        bg,
		fg:        fg,
		fontScale: opts.FontScale,
		font:      loadPreferredFont(opts.FontPaths),
		bufpool:   bpool.NewBufferPool(4),
	}, nil
}

// colorful.Hex scans with Sscanf, which ignores trailing junk and accepts
// short digit runs, so the shape is checked first.
func parseHexColor(s string) (color.RGBA, error) {
	if !isHexColor(s) {
		return color.RGBA{}, fmt.Errorf("%q is not a #rgb or #rrggbb color", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func isHexColor(s string) bool {
	if (len(s) != 7 && len(s) != 4) || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case '0' <= r && r <= '9', 'a' <= r && r <= 'f', 'A' <= r && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Background returns the fill color of every icon.
func (g *Generator) Background() color.RGBA {
	return g.bg
}

// UsingFallbackFont reports whether labels are drawn with the built-in bitmap
// face because no preferred font loaded.
func (g *Generator) UsingFallbackFont() bool {
	return g.font == nil
}

// floorDiv rounds toward negative infinity, unlike Go's / on ints.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Render draws the label centered on a size x size background.
func (g *Generator) Render(size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("icongen: size must be positive, got %d", size)
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(g.bg), image.Point{}, draw.Src)

	face := g.faceForSize(size)
	defer face.Close()

	// The bounds are relative to the dot, so Min.Y is negative (above the
	// baseline). We center the ink box and then move the dot to match. This
	// puts the glyphs higher than an ascender-anchored draw at (x, y) would;
	// the ink is what gets centered, on purpose.
	bounds, _ := font.BoundString(face, g.label)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()
	x := floorDiv(size-textW, 2)
	y := floorDiv(size-textH, 2)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(g.fg),
		Face: face,
		Dot:  fixed.P(x-bounds.Min.X.Floor(), y-bounds.Min.Y.Floor()),
	}
	d.DrawString(g.label)
	return img, nil
}

func (g *Generator) EncodePNG(w io.Writer, size int) error {
	img, err := g.Render(size)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteFile renders and encodes the whole icon in memory before touching the
// destination, so a failure never leaves a half-written PNG behind. An
// existing file at spec.Path is replaced. The directory must already exist.
func (g *Generator) WriteFile(spec IconSpec) error {
	buf := g.bufpool.Get()
	defer g.bufpool.Put(buf)
	if err := g.EncodePNG(buf, spec.Size); err != nil {
		return fmt.Errorf("icongen: rendering %s: %w", spec.Path, err)
	}
	return writeFileAtomic(spec.Path, buf.Bytes())
}
