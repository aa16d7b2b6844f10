package scenario

import (
	"gopkg.in/yaml.v3"
)

// Opt is an optional scenario value. The zero Opt is unset, which is
// distinct from a set zero value: a backend only receives the fields a
// scenario actually names.
type Opt[T any] struct {
	val T
	set bool
}

// Some returns a set Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{val: v, set: true}
}

// Get returns the value and whether it is set.
func (o Opt[T]) Get() (T, bool) {
	return o.val, o.set
}

// IsSet reports whether the value was provided.
func (o Opt[T]) IsSet() bool {
	return o.set
}

// Or returns the value, or def when unset.
func (o Opt[T]) Or(def T) T {
	if !o.set {
		return def
	}
	return o.val
}

// orElse keeps o when set and falls back to def otherwise.
func (o Opt[T]) orElse(def Opt[T]) Opt[T] {
	if o.set {
		return o
	}
	return def
}

// UnmarshalYAML implements yaml.Unmarshaler. An explicit null leaves the
// value unset.
func (o *Opt[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*o = Opt[T]{}
		return nil
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
