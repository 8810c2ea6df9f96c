// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

// DefaultUsageKeys are used when a Schema sets no UsageKeys.
var DefaultUsageKeys = []string{"-h", "--help"}

// Option describes one configurable flag.
type Option struct {
	// Name identifies the option within its schema. Required.
	Name string
	// Short is a single-character key, like "v" or "-v".
	Short string
	// Long is a multi-character key, like "verbose" or "--verbose".
	Long string
	// Kind is the type the raw value is coerced into.
	Kind Kind
	// Default is used when the option is given without a value, or with an
	// empty one. Bool options ignore it.
	Default string
	// Required options are listed by Result.MissingRequired when absent.
	// A hidden option cannot be required.
	Required bool
	// Hidden options are left out of usage text.
	Hidden bool
	// Description is shown in usage text.
	Description string
	// Bind receives the coerced value. May be nil.
	Bind Binding
}

// Schema is the source description of one command. It is validated and
// frozen by Build; the Schema itself may be reused for later builds.
type Schema struct {
	// Name is the command's display name. Subcommands are matched by the key
	// they are registered under in their parent's SubCommands, not by Name.
	Name string
	// Descriptions are the usage headline followed by summary lines.
	Descriptions []string
	// DetailedDescription lines are printed after the option list.
	DetailedDescription []string
	// UsageKeys are the keys that request usage text, for example
	// {"-h", "--help"}. A key with a single "-" is short. Nil means
	// DefaultUsageKeys.
	UsageKeys []string
	// Options in declaration order.
	Options []Option
	// Parameters, if set, receives the positional arguments given to this
	// command once parsing finishes.
	Parameters *[]string
	// SubCommands maps a registered name to its schema.
	SubCommands map[string]*Schema
}

// NewSchema returns an empty schema named name.
func NewSchema(name string) *Schema {
	return &Schema{Name: name}
}

// Describe appends description lines. The first line ever added is the
// usage headline.
func (s *Schema) Describe(lines ...string) *Schema {
	s.Descriptions = append(s.Descriptions, lines...)
	return s
}

// Detail appends detailed description lines.
func (s *Schema) Detail(lines ...string) *Schema {
	s.DetailedDescription = append(s.DetailedDescription, lines...)
	return s
}

// AddOption appends an option.
func (s *Schema) AddOption(o Option) *Schema {
	s.Options = append(s.Options, o)
	return s
}

// AddSubCommand registers child under name, replacing any previous child of
// that name.
func (s *Schema) AddSubCommand(name string, child *Schema) *Schema {
	if s.SubCommands == nil {
		s.SubCommands = make(map[string]*Schema)
	}
	s.SubCommands[name] = child
	return s
}

// BindParameters sets the parameters slot.
func (s *Schema) BindParameters(p *[]string) *Schema {
	s.Parameters = p
	return s
}

// SetUsageKeys replaces the usage keys.
func (s *Schema) SetUsageKeys(keys ...string) *Schema {
	s.UsageKeys = keys
	return s
}
