package convert

import (
	"fmt"

	"github.com/newpsoft/godotsvg/errors"
)

// Keys of the dictionary handed to hosts.
const (
	KeySuccess = "success"
	KeyValue   = "value"
	KeyError   = "error"
)

// Dictionary is the untyped result shape exchanged with a host engine:
// "success" (bool) is always set, "value" ([]byte) only on success and
// "error" (string) only on failure.
type Dictionary = map[string]any

// Result is the outcome of a conversion: either PNG bytes or an error.
// The zero value is a failure.
type Result struct {
	png []byte
	err error
}

// Success returns a successful result holding png.
func Success(png []byte) Result {
	return Result{png: png}
}

// Failure returns a failed result. A nil err is reported as an internal
// error so that a failure always carries a message.
func Failure(err error) Result {
	if err == nil {
		err = errors.New(errors.ErrCodeInternal, "conversion failed")
	}
	return Result{err: err}
}

// OK reports whether the conversion succeeded.
func (r Result) OK() bool { return r.err == nil && r.png != nil }

// PNG returns the encoded image, or nil for a failure.
func (r Result) PNG() []byte {
	if !r.OK() {
		return nil
	}
	return r.png
}

// Err returns the failure cause, or nil for a success.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	if r.err == nil {
		return errors.New(errors.ErrCodeInternal, "conversion failed")
	}
	return r.err
}

// Message returns the diagnostic text of a failure, or "" for a success.
func (r Result) Message() string {
	if err := r.Err(); err != nil {
		return err.Error()
	}
	return ""
}

// Dictionary translates r into the host result shape.
func (r Result) Dictionary() Dictionary {
	if r.OK() {
		return Dictionary{KeySuccess: true, KeyValue: r.png}
	}
	return Dictionary{KeySuccess: false, KeyError: r.Message()}
}

// hostError is a failure received back from a host, known only by its text.
type hostError string

func (e hostError) Error() string { return string(e) }

// FromDictionary parses the host result shape back into a Result.
func FromDictionary(d Dictionary) (Result, error) {
	success, ok := d[KeySuccess].(bool)
	if !ok {
		return Result{}, fmt.Errorf("invalid result: %q is %T, want bool", KeySuccess, d[KeySuccess])
	}
	if success {
		if _, has := d[KeyError]; has {
			return Result{}, fmt.Errorf("invalid result: %q set on success", KeyError)
		}
		value, ok := d[KeyValue].([]byte)
		if !ok || value == nil {
			return Result{}, fmt.Errorf("invalid result: %q is %T, want []byte", KeyValue, d[KeyValue])
		}
		return Success(value), nil
	}
	if _, has := d[KeyValue]; has {
		return Result{}, fmt.Errorf("invalid result: %q set on failure", KeyValue)
	}
	message, ok := d[KeyError].(string)
	if !ok || message == "" {
		return Result{}, fmt.Errorf("invalid result: %q is %T, want a non-empty string", KeyError, d[KeyError])
	}
	return Failure(hostError(message)), nil
}
