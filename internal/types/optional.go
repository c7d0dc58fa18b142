package types

import (
	"bytes"
	"encoding/json"
)

// Optional carries a value the host may leave out. A missing field and an
// explicit JSON null both decode to an absent Optional.
type Optional[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Optional[T]) Ptr() *T {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// NonZero treats a zero value (0, false, "") the same as an absent one, so
// the service falls back to its own default for that field.
func NonZero[T comparable](o Optional[T]) Optional[T] {
	var zero T
	if v, ok := o.Get(); ok && v != zero {
		return o
	}
	return None[T]()
}

// NonEmpty is NonZero for text fields.
func NonEmpty(o Optional[string]) Optional[string] {
	return NonZero(o)
}
