// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestNewColorizer(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		noColor  string
		term     string
		terminal bool
		want     bool
	}{
		{name: "terminal", enabled: true, term: "xterm-256color", terminal: true, want: true},
		{name: "disabled", enabled: false, term: "xterm", terminal: true},
		{name: "NO_COLOR", enabled: true, noColor: "1", term: "xterm", terminal: true},
		{name: "dumb terminal", enabled: true, term: "dumb", terminal: true},
		{name: "no TERM", enabled: true, terminal: true},
		{name: "not a terminal", enabled: true, term: "xterm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("TERM", tt.term)
			orig := isTerminalFn
			isTerminalFn = func(int) bool { return tt.terminal }
			t.Cleanup(func() { isTerminalFn = orig })

			if got := NewColorizer(os.Stderr, tt.enabled).Enabled; got != tt.want {
				t.Errorf("Enabled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewColorizerNilFile(t *testing.T) {
	if NewColorizer(nil, true).Enabled {
		t.Error("nil file enabled color")
	}
}

func TestWrap(t *testing.T) {
	off := Colorizer{}
	if got := off.Error("boom"); got != "boom" {
		t.Errorf("disabled Error() = %q", got)
	}
	on := Colorizer{Enabled: true}
	got := on.Error("boom")
	if !strings.HasPrefix(got, "\x1b[31m") || !strings.Contains(got, "boom") || got == "boom" {
		t.Errorf("Error() = %q, want red escape codes", got)
	}
	if got := on.Wrap("plain"); got != "plain" {
		t.Errorf("Wrap() without attributes = %q", got)
	}
	if got := on.Wrap("x", color.FgGreen); got != on.Key("x") {
		t.Errorf("Key() = %q, want %q", on.Key("x"), got)
	}
}
