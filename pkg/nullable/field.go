package nullable

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field tracks whether a JSON key was sent at all, and whether it was sent as null.
//
//	{}             -> Set=false
//	{"qty": null}  -> Set=true, Null=true
//	{"qty": 5}     -> Set=true, Value=5
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of builds a present, non-null field.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null builds a present field holding an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// Present reports a key that was sent with a non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// Blank reports a key that was sent but carries nothing usable: null, or a
// whitespace-only string.
func (f Field[T]) Blank() bool {
	if !f.Set {
		return false
	}
	if f.Null {
		return true
	}
	if s, ok := any(f.Value).(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// OrElse returns the value when present, def otherwise (absent or null).
func (f Field[T]) OrElse(def T) T {
	if f.Present() {
		return f.Value
	}
	return def
}

// Validatable is implemented by every Field instantiation so the validator
// can unwrap it without knowing T.
type Validatable interface {
	ValidationValue() any
}

// ValidationValue returns nil for absent or null fields so that `omitempty`
// rules skip them.
func (f Field[T]) ValidationValue() any {
	if !f.Present() {
		return nil
	}
	return f.Value
}
