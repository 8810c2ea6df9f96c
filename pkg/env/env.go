// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env renders parse results as shell variable assignments, for use
// as
//
//	eval "$(cmdline parse -f env -- "$@")"
package env

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yeetrun/cmdline/pkg/cmdline"
	"tailscale.com/util/set"
)

// Prefix starts every variable name.
const Prefix = "CMDLINE"

// ErrNameCollision is returned when two options map to the same variable.
var ErrNameCollision = errors.New("variable name collision")

// Var is one shell assignment.
type Var struct {
	Name  string
	Value string
}

func (v Var) String() string {
	return v.Name + "=" + Quote(v.Value)
}

// Vars lists the assignments for r:
//
//	CMDLINE_COMMAND           selected subcommand path, space separated
//	CMDLINE_<OPTION>          each provided root option
//	CMDLINE_PARAMS            root parameters, each word quoted
//	CMDLINE_<PATH>_<OPTION>   the same for every selected subcommand
//	CMDLINE_<PATH>_PARAMS
//
// Names are upper-cased with every other non-alphanumeric character
// replaced by "_". Options whose value was rejected are left out.
func Vars(r *cmdline.Result) ([]Var, error) {
	var out []Var
	seen := make(set.Set[string])
	add := func(name, value string) error {
		if seen.Contains(name) {
			return fmt.Errorf("%w: %s", ErrNameCollision, name)
		}
		seen.Add(name)
		out = append(out, Var{Name: name, Value: value})
		return nil
	}
	if err := add(Prefix+"_COMMAND", strings.Join(r.Path(), " ")); err != nil {
		return nil, err
	}

	prefix := Prefix
	for cur := r; cur != nil; cur = cur.SelectedSubCommand() {
		if cur != r {
			path := cur.Command().Path()
			prefix += "_" + Name(path[len(path)-1])
		}
		for _, o := range cur.Command().Options() {
			v, ok := cur.Value(o.Name)
			if !ok {
				continue
			}
			if err := add(prefix+"_"+Name(o.Name), Format(o.Kind, v)); err != nil {
				return nil, err
			}
		}
		words := make([]string, 0, len(cur.Parameters()))
		for _, p := range cur.Parameters() {
			words = append(words, Quote(p))
		}
		if err := add(prefix+"_PARAMS", strings.Join(words, " ")); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Marshal writes the assignments for r to o, one per line.
func Marshal(o io.Writer, r *cmdline.Result) error {
	vars, err := Vars(r)
	if err != nil {
		return err
	}
	for _, v := range vars {
		if _, err := fmt.Fprintln(o, v); err != nil {
			return err
		}
	}
	return nil
}

// Write writes the assignments for r to the named file.
func Write(name string, r *cmdline.Result) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := Marshal(f, r); err != nil {
		return fmt.Errorf("failed to marshal env: %v", err)
	}
	return f.Close()
}

// Name converts an option or command name into a variable name component.
func Name(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Format renders a value coerced into kind.
func Format(kind cmdline.Kind, v any) string {
	if r, ok := v.(rune); ok && kind == cmdline.Char {
		return string(r)
	}
	return fmt.Sprint(v)
}

// Quote single-quotes s for POSIX shells.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
