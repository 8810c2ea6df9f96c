// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/google/shlex"
	"github.com/sahilm/fuzzy"
	"tailscale.com/types/logger"
	"tailscale.com/util/mak"
)

// ParseOption configures a single Parse call.
type ParseOption func(*parser)

// WithUsage delivers usage text to fn instead of os.Stderr.
func WithUsage(fn func(text string)) ParseOption {
	return func(p *parser) { p.usage = fn }
}

// WithUsageWriter writes usage text, followed by a newline, to w.
func WithUsageWriter(w io.Writer) ParseOption {
	return func(p *parser) {
		p.usage = func(text string) { fmt.Fprintln(w, text) }
	}
}

// WithHiddenUsage includes hidden options in usage text.
func WithHiddenUsage() ParseOption {
	return func(p *parser) { p.includeHidden = true }
}

// WithLogf sets where coercion and binding failures are reported when they
// are not fatal. The default is log.Printf.
func WithLogf(logf logger.Logf) ParseOption {
	return func(p *parser) { p.logf = logf }
}

// Strict makes coercion and binding failures abort the parse.
func Strict() ParseOption {
	return func(p *parser) { p.strict = true }
}

type parser struct {
	usage         func(string)
	logf          logger.Logf
	strict        bool
	includeHidden bool
}

// Parse builds s and parses args against it.
func Parse(s *Schema, args []string, opts ...ParseOption) (*Result, error) {
	c, err := Build(s)
	if err != nil {
		return nil, err
	}
	return c.Parse(args, opts...)
}

// ParseString splits line using shell quoting rules and parses the result
// against s.
func ParseString(s *Schema, line string, opts ...ParseOption) (*Result, error) {
	c, err := Build(s)
	if err != nil {
		return nil, err
	}
	return c.ParseString(line, opts...)
}

// ParseString splits line using shell quoting rules and parses the result.
func (c *Command) ParseString(line string, opts ...ParseOption) (*Result, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("cmdline: cannot split %q: %w", line, err)
	}
	return c.Parse(args, opts...)
}

// Parse parses args (without the program name) against c and returns a
// fresh result tree. Option values are written to their bindings as they
// are parsed; parameter slots are written once all arguments have been
// consumed.
//
// An *UnknownOptionError stops parsing immediately. Coercion and binding
// failures are logged and skipped unless Strict is given.
func (c *Command) Parse(args []string, opts ...ParseOption) (*Result, error) {
	p := &parser{
		usage: func(text string) { fmt.Fprintln(os.Stderr, text) },
		logf:  log.Printf,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logf == nil {
		p.logf = logger.Discard
	}
	if p.usage == nil {
		p.usage = func(string) {}
	}

	root := newResult(c)
	for i := 0; i < len(args); i++ {
		consumed, err := p.step(root, join(args, i))
		if err != nil {
			return nil, err
		}
		if consumed {
			i++
		}
	}
	root.bindParameters()
	return root, nil
}

// step processes one window at r. It reports whether the joined following
// argument was consumed as a value.
func (p *parser) step(r *Result, w window) (bool, error) {
	r.selected = true
	c := r.cmd
	if key := usageKey(w.arg); key != "" && (key == c.usageShort || key == c.usageLong) {
		p.usage(Usage(c, p.includeHidden))
		return false, nil
	}
	if sub, ok := r.subs[w.arg]; ok {
		r.sub = sub
		return false, nil
	}
	if r.sub != nil {
		return p.step(r.sub, w)
	}
	if isOption(w.arg) {
		return p.options(r, w)
	}
	r.params = append(r.params, w.arg)
	return false, nil
}

func (p *parser) options(r *Result, w window) (consumed bool, err error) {
	for _, t := range classify(w) {
		o := r.cmd.resolve(t)
		if o == nil {
			return false, unknownOption(r.cmd, t)
		}
		used, err := p.apply(r, o, t)
		if err != nil {
			return false, err
		}
		consumed = consumed || used
	}
	return consumed, nil
}

// apply coerces and binds the value of t into o. The option counts as
// provided even when its value is rejected.
func (p *parser) apply(r *Result, o *Option, t Token) (consumed bool, err error) {
	value := t.Value
	switch {
	case o.Kind == Bool:
		value = "true"
	case !t.HasValue || t.Value == "":
		value = o.Default
		consumed = t.Joined
	default:
		consumed = t.Joined
	}
	mak.Set(&r.provided, o.Name, true)

	v, err := coerce(o.Kind, value)
	if err != nil {
		return consumed, p.fail(&CoercionError{Option: o.Name, Kind: o.Kind, Value: value, Err: err})
	}
	mak.Set(&r.values, o.Name, v)
	if o.Bind != nil {
		if err := o.Bind.Set(v); err != nil {
			return consumed, p.fail(&BindingError{Option: o.Name, Kind: o.Kind, Value: v, Err: err})
		}
	}
	return consumed, nil
}

// fail returns err in strict mode and logs it otherwise.
func (p *parser) fail(err error) error {
	if p.strict {
		return err
	}
	p.logf("cmdline: %v", err)
	return nil
}

func unknownOption(c *Command, t Token) error {
	e := &UnknownOptionError{Key: t.Key, Short: t.Short, Path: c.Path()}
	if t.Short || len(t.Key) < 2 {
		return e
	}
	keys := make([]string, 0, len(c.byLong))
	for _, o := range c.options {
		if o.Long != "" && !o.Hidden {
			keys = append(keys, o.Long)
		}
	}
	for i, m := range fuzzy.Find(t.Key, keys) {
		if i == 2 {
			break
		}
		e.Suggest = append(e.Suggest, "--"+m.Str)
	}
	return e
}

// Result is the outcome of one Parse call. Each node mirrors a Command in
// the schema tree.
type Result struct {
	cmd      *Command
	selected bool
	sub      *Result
	subs     map[string]*Result
	provided map[string]bool
	values   map[string]any
	params   []string
}

func newResult(c *Command) *Result {
	r := &Result{cmd: c}
	for name, sc := range c.subCommands {
		mak.Set(&r.subs, name, newResult(sc))
	}
	return r
}

func (r *Result) bindParameters() {
	if r.selected && r.cmd.params != nil {
		*r.cmd.params = slices.Clone(r.params)
	}
	for _, sub := range r.subs {
		sub.bindParameters()
	}
}

// Command returns the schema node r was parsed against.
func (r *Result) Command() *Command { return r.cmd }

// Name returns the command's display name.
func (r *Result) Name() string { return r.cmd.name }

// Selected reports whether this command, or one of its subcommands,
// received at least one argument.
func (r *Result) Selected() bool { return r.selected }

// SelectedSubCommand returns the subcommand chosen at this node, or nil.
func (r *Result) SelectedSubCommand() *Result { return r.sub }

// UsingSubCommand reports whether a subcommand was chosen at this node.
func (r *Result) UsingSubCommand() bool { return r.sub != nil }

// SubCommand returns the result node of the subcommand registered under
// name, whether or not it was selected. It returns nil for unknown names.
func (r *Result) SubCommand(name string) *Result { return r.subs[name] }

// Provided reports whether the named option was given at least once.
func (r *Result) Provided(name string) bool { return r.provided[name] }

// Value returns the last value successfully coerced for the named option.
func (r *Result) Value(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Parameters returns the positional arguments given to this command.
func (r *Result) Parameters() []string { return slices.Clone(r.params) }

// Leaf returns the deepest selected subcommand result, or r.
func (r *Result) Leaf() *Result {
	for r.sub != nil {
		r = r.sub
	}
	return r
}

// Path returns the selected subcommand names below r, in order.
func (r *Result) Path() []string {
	var path []string
	for cur := r.sub; cur != nil; cur = cur.sub {
		path = append(path, cur.cmd.path[len(cur.cmd.path)-1])
	}
	return path
}

// MissingRequired returns the required options not provided at r and along
// its selected subcommands. Names below r are qualified by their subcommand
// path, as in "create.username".
func (r *Result) MissingRequired() []string {
	var missing []string
	prefix := ""
	for cur := r; cur != nil; cur = cur.sub {
		if cur != r {
			prefix += cur.cmd.path[len(cur.cmd.path)-1] + "."
		}
		for _, o := range cur.cmd.options {
			if o.Required && !cur.provided[o.Name] {
				missing = append(missing, prefix+o.Name)
			}
		}
	}
	return missing
}

func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Result{name=%q, selected=%v", r.cmd.name, r.selected)
	if r.sub != nil {
		fmt.Fprintf(&b, ", subCommand=%q", r.sub.cmd.name)
	}
	if len(r.params) > 0 {
		fmt.Fprintf(&b, ", parameters=%q", r.params)
	}
	b.WriteString("}")
	return b.String()
}

// Get returns the named option's value as a T.
func Get[T any](r *Result, name string) (T, bool) {
	v, ok := r.values[name].(T)
	return v, ok
}
