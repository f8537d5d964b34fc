// Package convert turns SVG streams into PNG images.
//
// A Converter resolves the output size from the request and the document
// (see ResolveSize), rasterizes the document and encodes the surface
// losslessly. Every outcome, including a panic inside the rendering
// libraries, is reported as a Result; Convert never fails otherwise.
package convert

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/newpsoft/godotsvg/errors"
	"github.com/newpsoft/godotsvg/svgdoc"
	"github.com/newpsoft/godotsvg/svgraster"
)

// Option configures a Converter.
type Option func(*Converter)

// WithDefaultSize sets the side of the fallback square canvas.
func WithDefaultSize(size int) Option {
	return func(c *Converter) { c.defaultSize = size }
}

// WithMaxDimension bounds each side of the output image.
func WithMaxDimension(pixels int) Option {
	return func(c *Converter) { c.maxDimension = pixels }
}

// WithDPI sets the resolution used to convert physical document lengths.
func WithDPI(dpi float64) Option {
	return func(c *Converter) { c.decode.DPI = dpi }
}

// WithStrict makes unsupported SVG elements a parse error.
func WithStrict(strict bool) Option {
	return func(c *Converter) { c.decode.Strict = strict }
}

// WithRenderer replaces the default rasterizer.
func WithRenderer(rd *svgraster.Renderer) Option {
	return func(c *Converter) { c.renderer = rd }
}

// WithLogger sets the logger receiving conversion diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// Converter is the SVG to PNG conversion policy. It is immutable once
// built and safe for concurrent use.
type Converter struct {
	renderer     *svgraster.Renderer
	decode       svgdoc.Options
	defaultSize  int
	maxDimension int
	logger       *log.Logger
}

// New returns a Converter with the given options applied over the
// defaults: a 512 pixels fallback square, 96 DPI, lenient parsing.
func New(opts ...Option) *Converter {
	c := &Converter{
		renderer:     svgraster.NewRenderer(),
		decode:       svgdoc.Options{DPI: svgdoc.DefaultDPI},
		defaultSize:  DefaultSize,
		maxDimension: DefaultMaxDimension,
		logger:       log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.defaultSize <= 0 {
		c.defaultSize = DefaultSize
	}
	if c.maxDimension <= 0 {
		c.maxDimension = DefaultMaxDimension
	}
	return c
}

// Convert reads SVG markup from stream and renders it as a PNG of
// width x height pixels, where 0 means unspecified (see ResolveSize).
// The stream is read to its end but not closed.
func (c *Converter) Convert(stream io.Reader, width, height int) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("svg rendering panicked", "panic", p)
			res = Failure(errors.New(errors.ErrCodeInternal, "rendering svg: %v", p))
		}
	}()

	png, err := c.convert(stream, Size{Width: width, Height: height})
	if err != nil {
		return Failure(err)
	}
	return Success(png)
}

func (c *Converter) convert(stream io.Reader, requested Size) ([]byte, error) {
	if stream == nil {
		return nil, errors.New(errors.ErrCodeIO, "no svg stream")
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "reading svg stream")
	}
	doc, err := svgdoc.Parse(data, c.decode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decoding svg")
	}

	if requested.Width < 0 || requested.Height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidSize, "invalid requested size %dx%d: dimensions must be positive or 0", requested.Width, requested.Height)
	}
	if (requested.Width == 0 || requested.Height == 0) && !doc.HasIntrinsicSize() {
		c.logger.Debug("svg declares no size, using the default square", "size", c.defaultSize)
	}
	size := ResolveSize(requested, doc.Width, doc.Height, c.defaultSize)
	if err := size.validate(c.maxDimension); err != nil {
		return nil, err
	}

	img, err := c.renderer.Render(doc, size.Width, size.Height)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rendering svg")
	}
	png, err := svgraster.ToPNG(img)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding png")
	}

	c.logger.Debug("converted svg",
		"requested", requested,
		"intrinsic", [2]float64{doc.Width, doc.Height},
		"size", size,
		"bytes", len(png))
	return png, nil
}
