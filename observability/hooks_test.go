package observability

import (
	"testing"
	"time"
)

type recordingHooks struct {
	started   []Conversion
	completed []Conversion
}

func (r *recordingHooks) OnConvertStart(c Conversion) { r.started = append(r.started, c) }

func (r *recordingHooks) OnConvertComplete(c Conversion, _ int, _ time.Duration, _ error) {
	r.completed = append(r.completed, c)
}

func TestDefaultHooksAreNoop(t *testing.T) {
	if _, ok := Hooks().(NoopConversionHooks); !ok {
		t.Fatalf("default hooks are %T", Hooks())
	}
	// must not panic
	Hooks().OnConvertStart(Conversion{})
	Hooks().OnConvertComplete(Conversion{}, 0, 0, nil)
}

func TestSetConversionHooks(t *testing.T) {
	rec := &recordingHooks{}
	SetConversionHooks(rec)
	defer SetConversionHooks(nil)

	c := Conversion{Source: "file", Name: "a.svg", Width: 4}
	Hooks().OnConvertStart(c)
	Hooks().OnConvertComplete(c, 10, time.Millisecond, nil)
	if len(rec.started) != 1 || len(rec.completed) != 1 || rec.started[0] != c {
		t.Errorf("events not recorded: %+v", rec)
	}

	SetConversionHooks(nil)
	if _, ok := Hooks().(NoopConversionHooks); !ok {
		t.Errorf("nil did not restore the no-op hooks, got %T", Hooks())
	}
}
