package godotsvg

import (
	"fmt"
	"io"
	"io/fs"
	"strconv"
)

// Resources opens packaged resources by identifier.
type Resources interface {
	OpenResource(id int) (io.ReadCloser, error)
}

// ResourceTable resolves resource identifiers to files of FS.
type ResourceTable struct {
	FS    fs.FS
	Paths map[int]string
}

// OpenResource implements Resources.
func (t ResourceTable) OpenResource(id int) (io.ReadCloser, error) {
	name, ok := t.Paths[id]
	if !ok {
		return nil, fmt.Errorf("resource %#x: %w", id, fs.ErrNotExist)
	}
	if t.FS == nil {
		return nil, fmt.Errorf("resource %#x: no file system", id)
	}
	return t.FS.Open(name)
}

// ParseResourceID parses a resource identifier written in decimal or
// with a 0x, 0o or 0b prefix.
func ParseResourceID(s string) (int, error) {
	id, err := strconv.ParseInt(s, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid resource id %q", s)
	}
	return int(id), nil
}
