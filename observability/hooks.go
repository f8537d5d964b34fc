// Package observability provides hooks around conversions.
//
// The plugin reports every entry-point call through the registered
// ConversionHooks. The default hooks do nothing; a host or the CLI
// registers its own implementation once, at startup:
//
//	observability.SetConversionHooks(myHooks{})
package observability

import (
	"sync"
	"time"
)

// Conversion describes one entry-point call.
type Conversion struct {
	Source string // "file", "resource" or "asset"
	Name   string // path or identifier of the SVG source
	Width  int    // requested width, 0 for unspecified
	Height int    // requested height, 0 for unspecified
}

// ConversionHooks receives events from the plugin entry points.
type ConversionHooks interface {
	OnConvertStart(c Conversion)
	// OnConvertComplete is called once per OnConvertStart. size is the
	// PNG length in bytes, zero when err is not nil.
	OnConvertComplete(c Conversion, size int, duration time.Duration, err error)
}

// NoopConversionHooks is a no-op implementation of ConversionHooks.
type NoopConversionHooks struct{}

func (NoopConversionHooks) OnConvertStart(Conversion)                               {}
func (NoopConversionHooks) OnConvertComplete(Conversion, int, time.Duration, error) {}

var (
	conversionHooks ConversionHooks = NoopConversionHooks{}
	hooksMu         sync.RWMutex
)

// SetConversionHooks registers custom conversion hooks.
// A nil value restores the no-op hooks.
func SetConversionHooks(h ConversionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h == nil {
		h = NoopConversionHooks{}
	}
	conversionHooks = h
}

// Hooks returns the registered conversion hooks.
func Hooks() ConversionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return conversionHooks
}
