package convert

import (
	"math"
	"strconv"

	"github.com/newpsoft/godotsvg/errors"
)

const (
	// DefaultSize is the side of the square canvas used when neither the
	// request nor the document gives a size.
	DefaultSize = 512
	// DefaultMaxDimension bounds each side of a surface.
	DefaultMaxDimension = 16384
)

// Size is a raster size in pixels. Zero means unspecified.
type Size struct {
	Width, Height int
}

func (s Size) String() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// ResolveSize picks the output size of a conversion.
//
// An explicit request (both sides non-zero) is used as is. Otherwise both
// sides come from the document intrinsic size, truncated to integers,
// when it is fully declared, and from a defaultSize square when it is not.
// A single explicit side is dropped in that case: sizes are resolved both
// or neither.
func ResolveSize(requested Size, intrinsicWidth, intrinsicHeight float64, defaultSize int) Size {
	if requested.Width != 0 && requested.Height != 0 {
		return requested
	}
	if intrinsicWidth > 0 && intrinsicHeight > 0 {
		w, h := truncate(intrinsicWidth), truncate(intrinsicHeight)
		// a declared size below one pixel cannot back a surface
		if w >= 1 && h >= 1 {
			return Size{Width: w, Height: h}
		}
	}
	return Size{Width: defaultSize, Height: defaultSize}
}

// truncate converts a positive pixel length to an int. Lengths beyond
// math.MaxInt32, including +Inf, saturate so that validate rejects them.
func truncate(px float64) int {
	if px >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(px)
}

// validate checks that s can back a surface no larger than maxDimension
// on each side.
func (s Size) validate(maxDimension int) error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidSize, "invalid size %dx%d: dimensions must be positive", s.Width, s.Height)
	}
	if s.Width > maxDimension || s.Height > maxDimension {
		return errors.New(errors.ErrCodeInvalidSize, "invalid size %dx%d: dimensions are limited to %d pixels", s.Width, s.Height, maxDimension)
	}
	return nil
}
