// Package godotsvg exposes SVG to PNG conversion to a game engine.
//
// A Plugin offers three entry points that differ only by where the SVG
// markup comes from: a local file, a packaged resource or a bundled asset.
// They all return the engine dictionary described by convert.Dictionary
// and never panic nor return an error otherwise:
//
//	p := godotsvg.New(godotsvg.WithAssets(os.DirFS("assets")))
//	d := p.AssetToPNG("images/logo.svg", 0, 0)
//	if d["success"].(bool) {
//	    png := d["value"].([]byte)
//	}
package godotsvg

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/newpsoft/godotsvg/convert"
	"github.com/newpsoft/godotsvg/errors"
	"github.com/newpsoft/godotsvg/observability"
)

// PluginName is the name the plugin registers under in the engine.
const PluginName = "GodotSvg"

// Source kinds reported to observability hooks.
const (
	SourceFile     = "file"
	SourceResource = "resource"
	SourceAsset    = "asset"
)

// Dictionary is the result shape returned to the engine.
type Dictionary = convert.Dictionary

// Converter renders an SVG stream as PNG. *convert.Converter implements it.
type Converter interface {
	Convert(stream io.Reader, width, height int) convert.Result
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithConverter replaces the default converter.
func WithConverter(c Converter) Option {
	return func(p *Plugin) { p.converter = c }
}

// WithResources sets where packaged resources are looked up.
func WithResources(r Resources) Option {
	return func(p *Plugin) { p.resources = r }
}

// WithAssets sets the application bundle holding assets.
func WithAssets(assets fs.FS) Option {
	return func(p *Plugin) { p.assets = assets }
}

// WithLogger sets the logger receiving failures and close errors.
func WithLogger(l *log.Logger) Option {
	return func(p *Plugin) { p.logger = l }
}

// Plugin holds the conversion entry points. It keeps no state between
// calls and may be used from several goroutines.
type Plugin struct {
	converter Converter
	resources Resources
	assets    fs.FS
	logger    *log.Logger
}

// New returns a plugin using a default convert.Converter, without
// resources nor assets unless configured.
func New(opts ...Option) *Plugin {
	p := &Plugin{logger: log.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.converter == nil {
		p.converter = convert.New(convert.WithLogger(p.logger))
	}
	return p
}

// Name returns PluginName.
func (p *Plugin) Name() string { return PluginName }

// FileToPNG reads an SVG file from the local filesystem and converts it
// to PNG. fileName is a path, not a URI. A width or height of 0 picks the
// size declared by the document, or a 512 pixels square.
func (p *Plugin) FileToPNG(fileName string, width, height int) Dictionary {
	c := observability.Conversion{Source: SourceFile, Name: fileName, Width: width, Height: height}
	return p.run(c, func() (io.ReadCloser, error) {
		f, err := os.Open(fileName)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.Wrap(errors.ErrCodeNotFound, err, "file not found: %s", fileName)
			}
			return nil, errors.Wrap(errors.ErrCodeIO, err, "opening %s", fileName)
		}
		return f, nil
	})
}

// ResourceToPNG reads a packaged SVG resource and converts it to PNG.
// See FileToPNG for the size rules.
func (p *Plugin) ResourceToPNG(resourceID int, width, height int) Dictionary {
	c := observability.Conversion{Source: SourceResource, Name: fmt.Sprintf("%#x", resourceID), Width: width, Height: height}
	return p.run(c, func() (io.ReadCloser, error) {
		if p.resources == nil {
			return nil, errors.New(errors.ErrCodeIO, "opening resource %s: no resources configured", c.Name)
		}
		rc, err := p.resources.OpenResource(resourceID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "opening resource %s", c.Name)
		}
		return rc, nil
	})
}

// AssetToPNG reads an SVG from the application bundle and converts it to
// PNG. assetPath is slash separated and relative to the bundle root, such
// as "images/logo.svg". See FileToPNG for the size rules.
func (p *Plugin) AssetToPNG(assetPath string, width, height int) Dictionary {
	c := observability.Conversion{Source: SourceAsset, Name: assetPath, Width: width, Height: height}
	return p.run(c, func() (io.ReadCloser, error) {
		if p.assets == nil {
			return nil, errors.New(errors.ErrCodeIO, "opening asset %s: no asset bundle configured", assetPath)
		}
		f, err := p.assets.Open(assetPath)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "opening asset %s", assetPath)
		}
		return f, nil
	})
}

func (p *Plugin) run(c observability.Conversion, open func() (io.ReadCloser, error)) (d Dictionary) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.New(errors.ErrCodeInternal, "converting %s %s: %v", c.Source, c.Name, r)
			p.logger.Error("svg conversion panicked", "source", c.Source, "name", c.Name, "panic", r)
			d = convert.Failure(err).Dictionary()
		}
	}()

	hooks := observability.Hooks()
	hooks.OnConvertStart(c)
	start := time.Now()

	res := p.convert(c, open)

	hooks.OnConvertComplete(c, len(res.PNG()), time.Since(start), res.Err())
	if !res.OK() {
		p.logger.Warn("svg conversion failed", "source", c.Source, "name", c.Name, "code", errors.GetCode(res.Err()), "err", res.Err())
	}
	return res.Dictionary()
}

// convert owns the stream: it is closed exactly once, whatever happens.
func (p *Plugin) convert(c observability.Conversion, open func() (io.ReadCloser, error)) (res convert.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = convert.Failure(errors.New(errors.ErrCodeInternal, "converting %s %s: %v", c.Source, c.Name, r))
		}
	}()

	stream, err := open()
	if err != nil {
		return convert.Failure(err)
	}
	defer p.close(c, stream)

	return p.converter.Convert(stream, c.Width, c.Height)
}

// close failures are logged only: they never change the result.
func (p *Plugin) close(c observability.Conversion, stream io.Closer) {
	if err := stream.Close(); err != nil {
		p.logger.Warn("closing svg source", "source", c.Source, "name", c.Name, "err", err)
	}
}
