package convert

import (
	"bytes"
	"testing"

	"github.com/newpsoft/godotsvg/errors"
)

func TestResultSuccess(t *testing.T) {
	r := Success([]byte{1, 2, 3})
	if !r.OK() || r.Err() != nil || r.Message() != "" {
		t.Fatalf("unexpected success state: %v %v %q", r.OK(), r.Err(), r.Message())
	}
	d := r.Dictionary()
	if d[KeySuccess] != true {
		t.Errorf("success = %v", d[KeySuccess])
	}
	if !bytes.Equal(d[KeyValue].([]byte), []byte{1, 2, 3}) {
		t.Errorf("value = %v", d[KeyValue])
	}
	if _, has := d[KeyError]; has {
		t.Error("error key set on success")
	}
}

func TestResultFailure(t *testing.T) {
	r := Failure(errors.New(errors.ErrCodeNotFound, "file not found: a.svg"))
	if r.OK() || r.PNG() != nil {
		t.Fatal("failure reported as success")
	}
	if !errors.Is(r.Err(), errors.ErrCodeNotFound) {
		t.Errorf("Err() = %v", r.Err())
	}
	d := r.Dictionary()
	if d[KeySuccess] != false {
		t.Errorf("success = %v", d[KeySuccess])
	}
	if d[KeyError] != "NOT_FOUND: file not found: a.svg" {
		t.Errorf("error = %v", d[KeyError])
	}
	if _, has := d[KeyValue]; has {
		t.Error("value key set on failure")
	}
}

func TestResultZeroValue(t *testing.T) {
	for _, r := range []Result{{}, Failure(nil), Success(nil)} {
		if r.OK() {
			t.Error("zero result reported as success")
		}
		if r.Message() == "" {
			t.Error("failure without message")
		}
	}
}

func TestDictionaryRoundTrip(t *testing.T) {
	for _, r := range []Result{
		Success([]byte("png")),
		Failure(errors.New(errors.ErrCodeParse, "decoding svg")),
	} {
		back, err := FromDictionary(r.Dictionary())
		if err != nil {
			t.Fatal(err)
		}
		if back.OK() != r.OK() || !bytes.Equal(back.PNG(), r.PNG()) || back.Message() != r.Message() {
			t.Errorf("round trip of %v gave %v", r.Dictionary(), back.Dictionary())
		}
	}
}

func TestFromDictionaryInvalid(t *testing.T) {
	for _, d := range []Dictionary{
		{},
		{KeySuccess: "yes"},
		{KeySuccess: true},
		{KeySuccess: true, KeyValue: "png"},
		{KeySuccess: true, KeyValue: []byte("png"), KeyError: "x"},
		{KeySuccess: false},
		{KeySuccess: false, KeyError: ""},
		{KeySuccess: false, KeyError: "x", KeyValue: []byte("png")},
	} {
		if _, err := FromDictionary(d); err == nil {
			t.Errorf("FromDictionary(%v): expected an error", d)
		}
	}
}
