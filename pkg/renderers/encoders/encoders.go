// Package encoders holds the type-keyed value rewrites applied before a data
// renderer serializes its result. It replaces implicit global registration:
// callers build a Registry, extend it, and inject it into the renderer
// factories that need it.
package encoders

import (
	"fmt"
	"reflect"
	"time"
)

// Func rewrites a value of one concrete type into something the target
// serialization format can represent (strings, numbers, lists, maps).
type Func func(v any) (any, error)

// Registry maps concrete Go types to their rewrite functions. Configure it
// before handing it to a renderer factory; it is read-only afterwards and safe
// for concurrent use.
type Registry struct {
	byType map[reflect.Type]Func
}

// New returns a Registry with the default entries: complex values become a
// two-element [real, imaginary] list and time values become ISO-8601 strings.
func New() *Registry {
	r := &Registry{byType: make(map[reflect.Type]Func)}

	r.Register(reflect.TypeOf(complex128(0)), func(v any) (any, error) {
		c := v.(complex128)
		return []any{real(c), imag(c)}, nil
	})
	r.Register(reflect.TypeOf(complex64(0)), func(v any) (any, error) {
		c := complex128(v.(complex64))
		return []any{real(c), imag(c)}, nil
	})
	r.Register(reflect.TypeOf(time.Time{}), func(v any) (any, error) {
		return v.(time.Time).Format(time.RFC3339), nil
	})

	return r
}

// Register sets the rewrite for one concrete type, replacing any previous
// entry.
func (r *Registry) Register(t reflect.Type, fn Func) {
	r.byType[t] = fn
}

// Unregister removes the rewrite for a type.
func (r *Registry) Unregister(t reflect.Type) {
	delete(r.byType, t)
}

// Rewrite walks v, applying registered rewrites by concrete type. Maps and
// slices are rebuilt with rewritten elements; unregistered values pass
// through untouched.
func (r *Registry) Rewrite(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	if fn, ok := r.byType[reflect.TypeOf(v)]; ok {
		encoded, err := fn(v)
		if err != nil {
			return nil, fmt.Errorf("encoders: rewrite %T: %w", v, err)
		}
		return r.Rewrite(encoded)
	}

	switch vv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, item := range vv {
			encoded, err := r.Rewrite(item)
			if err != nil {
				return nil, err
			}
			out[k] = encoded
		}
		return out, nil
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			encoded, err := r.Rewrite(item)
			if err != nil {
				return nil, err
			}
			out[i] = encoded
		}
		return out, nil
	}

	return v, nil
}
