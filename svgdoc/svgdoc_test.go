package svgdoc

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readTestFile(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("can't read svg source: %s", err)
	}
	return data
}

func TestParseSized(t *testing.T) {
	doc, err := Parse(readTestFile(t, "sized.svg"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Width != 200 || doc.Height != 300 {
		t.Errorf("intrinsic size = %vx%v, want 200x300", doc.Width, doc.Height)
	}
	if !doc.HasIntrinsicSize() {
		t.Error("HasIntrinsicSize() = false")
	}
	if doc.ViewBox != (Bounds{W: 20, H: 30}) {
		t.Errorf("viewBox = %+v", doc.ViewBox)
	}
	if doc.Icon() == nil {
		t.Fatal("missing drawable icon")
	}
	if len(doc.Icon().SVGPaths) == 0 {
		t.Error("no path decoded from the document")
	}
}

func TestParseViewBoxOnly(t *testing.T) {
	doc, err := Parse(readTestFile(t, "viewbox-only.svg"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	// the viewBox is not a declared size
	if doc.HasIntrinsicSize() {
		t.Errorf("intrinsic size = %vx%v, want undeclared", doc.Width, doc.Height)
	}
	if doc.ViewBox.W != 64 || doc.ViewBox.H != 32 {
		t.Errorf("viewBox = %+v", doc.ViewBox)
	}
}

func TestIntrinsicSize(t *testing.T) {
	tests := []struct {
		name string
		data string
		w, h float64
	}{
		{"plain", `<svg width="10" height="20"/>`, 10, 20},
		{"physical", string(readTestFile(t, "physical.svg")), 96, 96},
		{"percent", `<svg width="100%" height="50"/>`, 0, 50},
		{"missing", `<svg/>`, 0, 0},
		{"zero", `<svg width="0" height="0"/>`, 0, 0},
		{"prolog", `<?xml version="1.0"?><!-- icon --><svg height="7" width="3"><g/></svg>`, 3, 7},
		{"latin1", string(readTestFile(t, "latin1.svg")), 40, 20},
		{"huge", `<svg width="1e308in" height="1e19"/>`, math.Inf(1), 1e19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := IntrinsicSize([]byte(tt.data), 0)
			if err != nil {
				t.Fatal(err)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("IntrinsicSize = %vx%v, want %vx%v", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		message string
	}{
		{"empty", "", "no root element"},
		{"text", "not an svg", "no root element"},
		{"root", `<html><body/></html>`, "root element is <html>"},
		{"truncated", string(readTestFile(t, "truncated.svg")), "invalid svg document"},
		{"mismatched", `<svg><g></svg>`, "invalid svg document"},
		{"bad width", `<svg width="wide" height="10"/>`, "width"},
		{"negative", `<svg width="-10" height="10"/>`, "cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), Options{})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}
		})
	}
}


func TestParseEmpty(t *testing.T) {
	for _, data := range []string{"", "  \n", "<?xml version=\"1.0\"?><!-- nothing -->"} {
		if _, err := Parse([]byte(data), Options{}); !errors.Is(err, ErrNoRoot) {
			t.Errorf("Parse(%q): error %v, want ErrNoRoot", data, err)
		}
	}
}
