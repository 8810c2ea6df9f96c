// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"tailscale.com/util/mak"
)

// Command is a validated, immutable schema node. It holds no parse state and
// may be parsed against concurrently.
type Command struct {
	name        string
	path        []string
	desc        []string
	detailed    []string
	usageShort  string
	usageLong   string
	options     []*Option
	byName      map[string]*Option
	byShort     map[string]*Option
	byLong      map[string]*Option
	subCommands map[string]*Command
	params      *[]string
}

// Build validates s and its subcommands and returns the frozen command tree.
// Errors are *SchemaError.
func Build(s *Schema) (*Command, error) {
	return build(s, nil)
}

func build(s *Schema, path []string) (*Command, error) {
	if s == nil {
		return nil, &SchemaError{Path: path, Err: ErrMissingSchema, Msg: "schema is nil"}
	}
	c := &Command{
		name:     s.Name,
		path:     path,
		desc:     slices.Clone(s.Descriptions),
		detailed: slices.Clone(s.DetailedDescription),
		params:   s.Parameters,
	}
	if c.name == "" && len(path) > 0 {
		c.name = path[len(path)-1]
	}

	usageKeys := s.UsageKeys
	if usageKeys == nil {
		usageKeys = DefaultUsageKeys
	}
	for _, k := range usageKeys {
		if isShortForm(k) {
			c.usageShort = stripPrefix(k)
		} else {
			c.usageLong = stripPrefix(k)
		}
	}

	for i := range s.Options {
		if err := c.register(i, s.Options[i]); err != nil {
			return nil, err
		}
	}

	for _, name := range slices.Sorted(maps.Keys(s.SubCommands)) {
		if name == "" {
			return nil, &SchemaError{Path: path, Err: ErrInvalidSubCommand, Msg: "subcommand name must not be empty"}
		}
		sub, err := build(s.SubCommands[name], append(slices.Clip(path), name))
		if err != nil {
			return nil, err
		}
		mak.Set(&c.subCommands, name, sub)
	}
	return c, nil
}

// register validates the option at index i and adds it to the lookup maps.
func (c *Command) register(i int, o Option) error {
	invalid := func(format string, args ...any) error {
		return &SchemaError{Path: c.path, Err: ErrInvalidOption, Msg: fmt.Sprintf(format, args...)}
	}
	o.Short = stripPrefix(o.Short)
	o.Long = stripPrefix(o.Long)
	switch {
	case o.Name == "":
		return invalid("option #%d: a name is required", i+1)
	case o.Short == "" && o.Long == "":
		return invalid("option %q: short key, long key, or both must be set", o.Name)
	case o.Hidden && o.Required:
		return invalid("option %q: hidden and required cannot be set on the same option", o.Name)
	case o.Short != "" && utf8.RuneCountInString(o.Short) != 1:
		return invalid("option %q: short key %q must be a single character", o.Name, o.Short)
	case strings.Contains(o.Short, "=") || strings.Contains(o.Long, "="):
		return invalid("option %q: keys must not contain '='", o.Name)
	}

	dup := func(prev *Option, what string) error {
		return &SchemaError{
			Path: c.path,
			Err:  ErrDuplicateOption,
			Msg:  fmt.Sprintf("%s is defined on multiple options (%s, %s)", what, describeOption(prev), describeOption(&o)),
		}
	}
	if prev, ok := c.byName[o.Name]; ok {
		return dup(prev, fmt.Sprintf("the %q option", o.Name))
	}
	if prev, ok := c.byShort[o.Short]; ok && o.Short != "" {
		return dup(prev, fmt.Sprintf("short key -%s", o.Short))
	}
	if prev, ok := c.byLong[o.Long]; ok && o.Long != "" {
		return dup(prev, fmt.Sprintf("long key --%s", o.Long))
	}

	opt := &o
	c.options = append(c.options, opt)
	mak.Set(&c.byName, o.Name, opt)
	if o.Short != "" {
		mak.Set(&c.byShort, o.Short, opt)
	}
	if o.Long != "" {
		mak.Set(&c.byLong, o.Long, opt)
	}
	return nil
}

func describeOption(o *Option) string {
	var keys []string
	if o.Short != "" {
		keys = append(keys, "-"+o.Short)
	}
	if o.Long != "" {
		keys = append(keys, "--"+o.Long)
	}
	return fmt.Sprintf("%s [%s]", o.Name, strings.Join(keys, ", "))
}

// Name returns the command's display name.
func (c *Command) Name() string { return c.name }

// Path returns the subcommand names leading from the root to c. It is empty
// for the root.
func (c *Command) Path() []string { return slices.Clone(c.path) }

// Descriptions returns the usage headline and summary lines.
func (c *Command) Descriptions() []string { return slices.Clone(c.desc) }

// UsageKeys returns the stripped short and long usage keys. Either may be
// empty.
func (c *Command) UsageKeys() (short, long string) { return c.usageShort, c.usageLong }

// Options returns the options in declaration order. Keys are returned
// without their prefix.
func (c *Command) Options() []Option {
	out := make([]Option, len(c.options))
	for i, o := range c.options {
		out[i] = *o
	}
	return out
}

// OptionByName returns the option registered under name.
func (c *Command) OptionByName(name string) (Option, bool) {
	return lookup(c.byName, name)
}

// OptionByShortKey returns the option with the given short key. The key may
// carry its "-" prefix.
func (c *Command) OptionByShortKey(key string) (Option, bool) {
	return lookup(c.byShort, stripPrefix(key))
}

// OptionByLongKey returns the option with the given long key. The key may
// carry its "--" prefix.
func (c *Command) OptionByLongKey(key string) (Option, bool) {
	return lookup(c.byLong, stripPrefix(key))
}

func lookup(m map[string]*Option, k string) (Option, bool) {
	if o, ok := m[k]; ok {
		return *o, true
	}
	return Option{}, false
}

// IsBooleanShortKey reports whether key is a registered short key of a Bool
// option.
func (c *Command) IsBooleanShortKey(key string) bool {
	o, ok := c.byShort[stripPrefix(key)]
	return ok && o.Kind == Bool
}

// SubCommand returns the child registered under name, or nil.
func (c *Command) SubCommand(name string) *Command {
	return c.subCommands[name]
}

// SubCommandNames returns the registered subcommand names, sorted.
func (c *Command) SubCommandNames() []string {
	return slices.Sorted(maps.Keys(c.subCommands))
}

// Lookup walks path through the subcommand tree and returns the command it
// names, or nil. An empty path returns c.
func (c *Command) Lookup(path ...string) *Command {
	cur := c
	for _, name := range path {
		if cur = cur.SubCommand(name); cur == nil {
			return nil
		}
	}
	return cur
}

func (c *Command) String() string {
	if len(c.subCommands) == 0 {
		return fmt.Sprintf("Command{name=%q}", c.name)
	}
	return fmt.Sprintf("Command{name=%q, subCommands=%v}", c.name, c.SubCommandNames())
}
