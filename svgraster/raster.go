// Implements a raster backend to render SVG documents,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/newpsoft/godotsvg/svgdoc"
	"github.com/srwiley/rasterx"
)

// ScannerFunc builds the scanner painting into img, a surface of the
// given size.
type ScannerFunc func(width, height int, img draw.Image) rasterx.Scanner

// Option configures a Renderer.
type Option func(*Renderer)

// WithScanner replaces the default rasterx.ScannerGV.
func WithScanner(f ScannerFunc) Option {
	return func(rd *Renderer) { rd.newScanner = f }
}

// WithOpacity sets the global opacity applied to the document (default 1).
func WithOpacity(opacity float64) Option {
	return func(rd *Renderer) { rd.opacity = opacity }
}

// Renderer rasterizes documents onto freshly allocated surfaces.
// It holds no per-call state and may be shared between goroutines.
type Renderer struct {
	newScanner ScannerFunc
	opacity    float64
}

// NewRenderer returns a renderer with default values: full opacity and
// a rasterx.ScannerGV scanner.
func NewRenderer(opts ...Option) *Renderer {
	rd := &Renderer{newScanner: scannerGV, opacity: 1}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

func scannerGV(width, height int, img draw.Image) rasterx.Scanner {
	return rasterx.NewScannerGV(width, height, img, img.Bounds())
}

// NewSurface allocates a transparent 32 bits per pixel surface.
func NewSurface(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

// Render draws doc on a new width x height surface. The document viewBox,
// when known, is stretched over the whole surface; otherwise the document
// is drawn in its own coordinates. No background is painted.
//
// Render sets the drawing target of doc, so a document must not be
// rendered by several goroutines at once.
func (rd *Renderer) Render(doc *svgdoc.Document, width, height int) (*image.RGBA, error) {
	img, err := NewSurface(width, height)
	if err != nil {
		return nil, err
	}
	icon := doc.Icon()
	if icon == nil {
		return nil, errors.New("document has no drawable content")
	}
	if doc.ViewBox.W > 0 && doc.ViewBox.H > 0 {
		icon.SetTarget(0, 0, float64(width), float64(height))
	}

	scanner := rd.newScanner(width, height, img)
	dasher := rasterx.NewDasher(width, height, scanner)
	icon.Draw(dasher, rd.opacity)
	return img, nil
}
