// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every error returned by this package wraps one of them.
var (
	// ErrSchema is wrapped by every schema build failure.
	ErrSchema = errors.New("invalid schema")

	// ErrMissingSchema is returned when a nil schema is built or registered
	// as a subcommand.
	ErrMissingSchema = errors.New("missing schema")

	// ErrInvalidOption is returned for an option with no name, no key, or
	// both Hidden and Required set.
	ErrInvalidOption = errors.New("invalid option")

	// ErrDuplicateOption is returned when two options in one schema share a
	// name or key.
	ErrDuplicateOption = errors.New("duplicate option")

	// ErrInvalidSubCommand is returned for a subcommand registered under an
	// empty name.
	ErrInvalidSubCommand = errors.New("invalid subcommand")

	// ErrUnknownOption is returned when an argument names no option of the
	// command it was given to.
	ErrUnknownOption = errors.New("unknown option")

	// ErrCoercion is wrapped by every *CoercionError.
	ErrCoercion = errors.New("invalid option value")

	// ErrUnsupportedKind is returned when coercing into Unsupported.
	ErrUnsupportedKind = errors.New("unsupported option type")

	// ErrBinding is wrapped by every *BindingError.
	ErrBinding = errors.New("cannot bind option value")
)

// SchemaError is returned by Build when a schema is invalid.
type SchemaError struct {
	Path []string // command path from the root; empty for the root itself
	Err  error    // ErrMissingSchema, ErrInvalidOption, ErrDuplicateOption or ErrInvalidSubCommand
	Msg  string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString(ErrSchema.Error())
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, " %q", strings.Join(e.Path, " "))
	}
	b.WriteString(": ")
	if e.Msg != "" {
		b.WriteString(e.Msg)
	} else {
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *SchemaError) Unwrap() []error {
	return []error{ErrSchema, e.Err}
}

// UnknownOptionError is returned by Parse when an option key is registered
// on neither the short nor the long map of the current command.
type UnknownOptionError struct {
	Key     string
	Short   bool
	Path    []string // subcommand path that received the argument; empty for the root
	Suggest []string // close matches, formatted with their prefix
}

func (e *UnknownOptionError) Flag() string {
	if e.Short {
		return "-" + e.Key
	}
	return "--" + e.Key
}

func (e *UnknownOptionError) Error() string {
	msg := fmt.Sprintf("unknown option: '%s'", e.Key)
	if len(e.Path) > 0 {
		msg = fmt.Sprintf("%s (command %q)", msg, strings.Join(e.Path, " "))
	}
	if len(e.Suggest) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggest, " or ") + "?"
	}
	return msg
}

func (e *UnknownOptionError) Unwrap() error {
	return ErrUnknownOption
}

// CoercionError reports a raw value that could not be converted into the
// option's declared kind.
type CoercionError struct {
	Option string // option name; empty when returned by Coerce
	Kind   Kind
	Value  string
	Err    error
}

func (e *CoercionError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("cannot convert %q to %s: %v", e.Value, e.Kind, e.Err)
	}
	return fmt.Sprintf("option %q (type %s): cannot use value %q: %v", e.Option, e.Kind, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() []error {
	return []error{ErrCoercion, e.Err}
}

// BindingError reports a binding site that rejected a coerced value.
type BindingError struct {
	Option string
	Kind   Kind
	Value  any
	Err    error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("option %q (type %s): cannot bind value %v: %v", e.Option, e.Kind, e.Value, e.Err)
}

func (e *BindingError) Unwrap() []error {
	return []error{ErrBinding, e.Err}
}
