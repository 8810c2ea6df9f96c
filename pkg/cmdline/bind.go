// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"errors"
	"fmt"
)

// Binding is the storage location an option writes its coerced value to.
// Set receives the Go type documented on Coerce for the option's Kind.
type Binding interface {
	Set(v any) error
}

// BindingFunc adapts a function to a Binding.
type BindingFunc func(v any) error

func (f BindingFunc) Set(v any) error { return f(v) }

// errReadOnly is returned by a binding with no destination.
var errReadOnly = errors.New("binding has no destination")

// Var returns a Binding that stores values into *p. The option's Kind must
// produce a T (for example Var(&s) with s a string for String, an int32 for
// Int32, a Path for FilePath); any other value is rejected.
func Var[T any](p *T) Binding {
	return BindingFunc(func(v any) error {
		if p == nil {
			return errReadOnly
		}
		t, ok := v.(T)
		if !ok {
			return fmt.Errorf("want %T, got %T", *new(T), v)
		}
		*p = t
		return nil
	})
}

// Ptr is like Var but stores a pointer to a fresh copy of each value, so an
// unset option stays nil.
func Ptr[T any](p **T) Binding {
	return BindingFunc(func(v any) error {
		if p == nil {
			return errReadOnly
		}
		t, ok := v.(T)
		if !ok {
			return fmt.Errorf("want %T, got %T", *new(T), v)
		}
		*p = &t
		return nil
	})
}

// Func returns a Binding that calls fn with each value.
func Func[T any](fn func(T)) Binding {
	return BindingFunc(func(v any) error {
		t, ok := v.(T)
		if !ok {
			return fmt.Errorf("want %T, got %T", *new(T), v)
		}
		fn(t)
		return nil
	})
}
