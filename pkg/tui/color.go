// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var isTerminalFn = term.IsTerminal

type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer for output written to f. Color stays off
// unless enabled is set, f is a terminal, NO_COLOR is empty and TERM is set
// to something other than "dumb".
func NewColorizer(f *os.File, enabled bool) Colorizer {
	if !enabled || f == nil {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	if t := os.Getenv("TERM"); t == "" || t == "dumb" {
		return Colorizer{}
	}
	if !isTerminalFn(int(f.Fd())) {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

func (c Colorizer) Wrap(text string, attrs ...color.Attribute) string {
	if !c.Enabled || len(attrs) == 0 {
		return text
	}
	col := color.New(attrs...)
	col.EnableColor()
	return col.Sprint(text)
}

func (c Colorizer) Error(text string) string { return c.Wrap(text, color.FgRed) }

func (c Colorizer) Warn(text string) string { return c.Wrap(text, color.FgYellow) }

func (c Colorizer) Key(text string) string { return c.Wrap(text, color.FgGreen) }

func (c Colorizer) Dim(text string) string { return c.Wrap(text, color.FgHiBlack) }
