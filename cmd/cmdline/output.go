// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/cmdline/pkg/cmdline"
	"github.com/yeetrun/cmdline/pkg/env"
	"gopkg.in/yaml.v3"
	"tailscale.com/util/mak"
)

var outputFormats = []string{"json", "yaml", "toml", "env"}

// resultNode is the structured form of one selected command.
type resultNode struct {
	Name       string         `json:"name" yaml:"name" toml:"name"`
	Parameters []string       `json:"parameters,omitempty" yaml:"parameters,omitempty" toml:"parameters,omitempty"`
	Options    map[string]any `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	SubCommand *resultNode    `json:"subcommand,omitempty" yaml:"subcommand,omitempty" toml:"subcommand,omitempty"`
}

func newResultNode(r *cmdline.Result) *resultNode {
	n := &resultNode{Name: r.Name(), Parameters: r.Parameters()}
	for _, o := range r.Command().Options() {
		v, ok := r.Value(o.Name)
		if !ok {
			continue
		}
		if o.Kind == cmdline.Char {
			v = env.Format(o.Kind, v)
		}
		mak.Set(&n.Options, o.Name, v)
	}
	if sub := r.SelectedSubCommand(); sub != nil {
		n.SubCommand = newResultNode(sub)
	}
	return n
}

func writeResult(w io.Writer, format string, r *cmdline.Result) error {
	switch format {
	case "env":
		return env.Marshal(w, r)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newResultNode(r))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newResultNode(r)); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(newResultNode(r))
	}
	return fmt.Errorf("unknown output format %q", format)
}

// writeResultFile writes r to the named file, replacing its contents.
func writeResultFile(name, format string, r *cmdline.Result) error {
	if format == "env" {
		return env.Write(name, r)
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := writeResult(f, format, r); err != nil {
		return err
	}
	return f.Close()
}
