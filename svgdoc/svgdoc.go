// Package svgdoc decodes SVG markup into documents ready to be rasterized.
//
// The drawing model (paths, styles, gradients) is built by
// github.com/srwiley/oksvg. This package adds what the drawing model does
// not expose: the size the document declares for itself on its root
// <svg> element, converted to pixels.
package svgdoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"golang.org/x/net/html/charset"
)

// DefaultDPI is the resolution used to convert physical units
// (in, cm, mm, pt, pc) to pixels.
const DefaultDPI = 96

// ErrNoRoot is returned for input holding no XML element at all.
var ErrNoRoot = errors.New("invalid svg document: no root element")

// Bounds defines a rectangle in user units, such as a viewBox.
type Bounds struct{ X, Y, W, H float64 }

// Options control how a document is decoded.
type Options struct {
	// DPI converts physical root lengths to pixels. Zero means DefaultDPI.
	DPI float64
	// Strict makes unsupported elements a decoding error instead of
	// silently skipping them.
	Strict bool
}

// Document is a parsed SVG document.
type Document struct {
	// Width and Height are the intrinsic size declared by the root
	// element, in pixels. Zero means undeclared.
	Width, Height float64
	// ViewBox is the user coordinate system mapped onto the canvas.
	// A zero W or H means none was declared.
	ViewBox Bounds

	icon *oksvg.SvgIcon
}

// Icon returns the drawable representation of the document.
func (d *Document) Icon() *oksvg.SvgIcon { return d.icon }

// HasIntrinsicSize reports whether both intrinsic dimensions are declared.
func (d *Document) HasIntrinsicSize() bool { return d.Width > 0 && d.Height > 0 }

// Parse decodes SVG markup. The input must be well-formed XML with an
// <svg> root; the root width and height, when present, must be valid
// non-negative lengths.
func Parse(data []byte, opts Options) (*Document, error) {
	doc := &Document{}
	var err error
	if doc.Width, doc.Height, err = IntrinsicSize(data, opts.DPI); err != nil {
		return nil, err
	}

	mode := oksvg.IgnoreErrorMode
	if opts.Strict {
		mode = oksvg.StrictErrorMode
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), mode)
	if err != nil {
		return nil, fmt.Errorf("invalid svg document: %w", err)
	}
	doc.icon = icon
	doc.ViewBox = Bounds{X: icon.ViewBox.X, Y: icon.ViewBox.Y, W: icon.ViewBox.W, H: icon.ViewBox.H}
	return doc, nil
}

// IntrinsicSize returns the width and height declared on the root <svg>
// element, in pixels, without building the drawing model. A zero value
// means the dimension is undeclared. A non-positive dpi means DefaultDPI.
func IntrinsicSize(data []byte, dpi float64) (width, height float64, err error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	root, err := readRoot(data)
	if err != nil {
		return 0, 0, err
	}
	if width, err = rootLength(root, "width", dpi); err != nil {
		return 0, 0, err
	}
	if height, err = rootLength(root, "height", dpi); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// readRoot returns the root element, after checking that the whole input
// is well-formed.
func readRoot(data []byte) (root xml.StartElement, err error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return root, ErrNoRoot
				}
				return root, nil
			}
			return root, fmt.Errorf("invalid svg document: %w", err)
		}
		se, ok := t.(xml.StartElement)
		if !ok || seenTag {
			continue
		}
		if se.Name.Local != "svg" {
			return root, fmt.Errorf("invalid svg document: root element is <%s>, not <svg>", se.Name.Local)
		}
		root = se.Copy()
		seenTag = true
	}
}

func rootLength(root xml.StartElement, name string, dpi float64) (float64, error) {
	for _, attr := range root.Attr {
		if attr.Name.Local != name {
			continue
		}
		px, declared, err := parseLength(attr.Value, dpi)
		if err != nil {
			return 0, fmt.Errorf("invalid svg document: <svg> %s: %w", name, err)
		}
		if !declared {
			return 0, nil
		}
		if px < 0 {
			return 0, fmt.Errorf("invalid svg document: <svg> %s cannot be negative (%s)", name, strings.TrimSpace(attr.Value))
		}
		return px, nil
	}
	return 0, nil
}
