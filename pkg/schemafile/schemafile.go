// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemafile loads cmdline schemas from TOML or YAML files.
//
// A file describes the root command at its top level:
//
//	schema_version = "1.0"
//	name = "users"
//	description = ["USAGE: users [options] <command>"]
//
//	[[options]]
//	name = "verbose"
//	short = "v"
//	long = "verbose"
//	type = "bool"
//
//	[commands.create]
//	description = ["Create a user"]
//	parameters = true
//
//	[[commands.create.options]]
//	name = "username"
//	short = "u"
//	required = true
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/cmdline/pkg/cmdline"
	"gopkg.in/yaml.v3"
)

// SupportedVersions is the schema_version constraint this package reads.
const SupportedVersions = "^1"

const defaultVersion = "1.0.0"

var (
	// ErrUnsupportedVersion is returned for a schema_version outside
	// SupportedVersions.
	ErrUnsupportedVersion = errors.New("unsupported schema version")

	// ErrUnknownFormat is returned when the format of a file cannot be
	// determined.
	ErrUnknownFormat = errors.New("unknown schema file format")

	// ErrUnknownType is returned for an option type ParseKind does not know.
	ErrUnknownType = errors.New("unknown option type")
)

// Format is a schema file encoding.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// FormatFor picks the format of path from its extension.
func FormatFor(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// File is a decoded schema file. Its embedded Command is the root.
type File struct {
	SchemaVersion string `toml:"schema_version" yaml:"schema_version"`
	Command       `yaml:",inline"`
}

// Command is one command table.
type Command struct {
	Name        string              `toml:"name,omitempty" yaml:"name,omitempty"`
	Description []string            `toml:"description,omitempty" yaml:"description,omitempty"`
	Detail      []string            `toml:"detail,omitempty" yaml:"detail,omitempty"`
	UsageKeys   []string            `toml:"usage_keys,omitempty" yaml:"usage_keys,omitempty"`
	Options     []OptionSpec        `toml:"options,omitempty" yaml:"options,omitempty"`
	Parameters  bool                `toml:"parameters,omitempty" yaml:"parameters,omitempty"`
	Commands    map[string]*Command `toml:"commands,omitempty" yaml:"commands,omitempty"`
}

// OptionSpec is one option entry. Type is any name accepted by
// cmdline.ParseKind; empty means string.
type OptionSpec struct {
	Name        string `toml:"name" yaml:"name"`
	Short       string `toml:"short,omitempty" yaml:"short,omitempty"`
	Long        string `toml:"long,omitempty" yaml:"long,omitempty"`
	Type        string `toml:"type,omitempty" yaml:"type,omitempty"`
	Default     string `toml:"default,omitempty" yaml:"default,omitempty"`
	Required    bool   `toml:"required,omitempty" yaml:"required,omitempty"`
	Hidden      bool   `toml:"hidden,omitempty" yaml:"hidden,omitempty"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
}

// Load reads the schema file at path, choosing the format by extension.
func Load(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	file, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return file, nil
}

// Decode reads a schema file in the given format from r and checks its
// version and option types.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	case YAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(data)) > 0 {
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err := dec.Decode(&f); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	if f.SchemaVersion == "" {
		f.SchemaVersion = defaultVersion
	}
	if err := checkVersion(f.SchemaVersion); err != nil {
		return nil, err
	}
	if err := f.Command.check(nil); err != nil {
		return nil, err
	}
	return &f, nil
}

func checkVersion(s string) error {
	v, err := semver.NewVersion(s)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrUnsupportedVersion, s, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w %s (want %s)", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}

func (c *Command) check(path []string) error {
	for _, o := range c.Options {
		if _, ok := cmdline.ParseKind(o.Type); !ok {
			where := "root command"
			if len(path) > 0 {
				where = fmt.Sprintf("command %q", strings.Join(path, " "))
			}
			return fmt.Errorf("%s: option %q: %w %q", where, o.Name, ErrUnknownType, o.Type)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(c.Commands)) {
		sub := c.Commands[name]
		if sub == nil {
			continue
		}
		if err := sub.check(append(slices.Clip(path), name)); err != nil {
			return err
		}
	}
	return nil
}

// Lookup walks path through the command tables and returns the one it
// names, or nil.
func (c *Command) Lookup(path ...string) *Command {
	cur := c
	for _, name := range path {
		if cur = cur.Commands[name]; cur == nil {
			return nil
		}
	}
	return cur
}

// Schema converts f into a cmdline schema. Nothing is bound; values and
// parameters are read from the parse Result.
func (f *File) Schema() *cmdline.Schema {
	return f.Command.schema()
}

func (c *Command) schema() *cmdline.Schema {
	s := &cmdline.Schema{
		Name:                c.Name,
		Descriptions:        slices.Clone(c.Description),
		DetailedDescription: slices.Clone(c.Detail),
		UsageKeys:           slices.Clone(c.UsageKeys),
	}
	for _, o := range c.Options {
		kind, _ := cmdline.ParseKind(o.Type)
		s.AddOption(cmdline.Option{
			Name:        o.Name,
			Short:       o.Short,
			Long:        o.Long,
			Kind:        kind,
			Default:     o.Default,
			Required:    o.Required,
			Hidden:      o.Hidden,
			Description: o.Description,
		})
	}
	for name, sub := range c.Commands {
		if sub == nil {
			s.AddSubCommand(name, nil)
			continue
		}
		s.AddSubCommand(name, sub.schema())
	}
	return s
}

// TakesParameters reports whether the command at path accepts positional
// arguments.
func (f *File) TakesParameters(path ...string) bool {
	c := f.Lookup(path...)
	return c != nil && c.Parameters
}
