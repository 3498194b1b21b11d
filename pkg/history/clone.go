package history

import (
	"fmt"

	"github.com/mitchellh/copystructure"
)

// CloneFunc produces a deep copy of a state value. After cloning, no
// mutable structure may be shared between the input and the output.
//
// Containers in this package take a CloneFunc explicitly so callers can
// supply a structural clone tuned to their state type (cheap map copies,
// types with unexported fields, and so on). Passing nil selects
// ReflectClone.
type CloneFunc[T any] func(T) (T, error)

// ReflectClone deep-copies a value by reflection. It handles maps,
// slices, pointers, and structs with exported fields; state types with
// unexported fields need their own CloneFunc.
func ReflectClone[T any](v T) (T, error) {
	var zero T

	raw, err := copystructure.Copy(v)
	if err != nil {
		return zero, fmt.Errorf("deep copy: %w", err)
	}

	out, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("deep copy: unexpected type %T", raw)
	}
	return out, nil
}

// cloneOrDefault returns the given clone function, or ReflectClone when nil.
func cloneOrDefault[T any](clone CloneFunc[T]) CloneFunc[T] {
	if clone == nil {
		return ReflectClone[T]
	}
	return clone
}
