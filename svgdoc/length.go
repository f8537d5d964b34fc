package svgdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// font metrics used for em and ex, matching the usual user agent default
const (
	emPixels = 16
	exPixels = emPixels / 2
)

// parseLength converts an SVG length to pixels.
// declared is false for lengths resolved against a viewport that does not
// exist yet: percentages, "auto" and the empty string.
func parseLength(s string, dpi float64) (px float64, declared bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "auto" || strings.HasSuffix(s, "%") {
		return 0, false, nil
	}

	number, unit := splitUnit(s)
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, false, fmt.Errorf("bad length %q", s)
	}
	switch unit {
	case "", "px":
	case "in":
		v *= dpi
	case "cm":
		v *= dpi / 2.54
	case "mm":
		v *= dpi / 25.4
	case "pt":
		v *= dpi / 72
	case "pc":
		v *= dpi / 6
	case "em":
		v *= emPixels
	case "ex":
		v *= exPixels
	default:
		return 0, false, fmt.Errorf("unknown unit %q in length %q", unit, s)
	}
	return v, true, nil
}

// splitUnit separates the trailing alphabetic unit of s.
func splitUnit(s string) (number, unit string) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			break
		}
		i--
	}
	return s[:i], strings.ToLower(s[i:])
}
