// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestJoin(t *testing.T) {
	tests := []struct {
		args []string
		i    int
		want window
	}{
		{args: []string{"-d", "1"}, want: window{arg: "-d", next: "1", joined: true}},
		{args: []string{"--name", "x"}, want: window{arg: "--name", next: "x", joined: true}},
		{args: []string{"-d", "-v"}, want: window{arg: "-d"}},
		{args: []string{"-d=1", "x"}, want: window{arg: "-d=1"}},
		{args: []string{"x", "y"}, want: window{arg: "x"}},
		{args: []string{"x", "-d"}, i: 1, want: window{arg: "-d"}},
	}
	for _, tt := range tests {
		if got := join(tt.args, tt.i); got != tt.want {
			t.Errorf("join(%q, %d) = %+v, want %+v", tt.args, tt.i, got, tt.want)
		}
	}
}

func TestKeyHelpers(t *testing.T) {
	for s, want := range map[string]bool{"-v": true, "-abc": true, "-": false, "--v": false, "v": false, "": false} {
		if got := isShortForm(s); got != want {
			t.Errorf("isShortForm(%q) = %v, want %v", s, got, want)
		}
	}
	for s, want := range map[string]string{"-v": "v", "--verbose": "verbose", "---x": "-x", "x": "x", "-": ""} {
		if got := stripPrefix(s); got != want {
			t.Errorf("stripPrefix(%q) = %q, want %q", s, got, want)
		}
	}
	for s, want := range map[string]string{"-h": "h", "--help=x": "help", "help": "help", "-=": ""} {
		if got := usageKey(s); got != want {
			t.Errorf("usageKey(%q) = %q, want %q", s, got, want)
		}
	}
}

func TestTokenize(t *testing.T) {
	c, err := Build(basicSchema(new(basicConfig)))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	tests := []struct {
		name string
		args []string
		want []Token
	}{
		{
			name: "compound",
			args: []string{"-abc"},
			want: []Token{
				{Raw: "-abc", Key: "a", Short: true},
				{Raw: "-abc", Key: "b", Short: true},
				{Raw: "-abc", Key: "c", Short: true},
			},
		},
		{
			name: "short with joined value",
			args: []string{"-d", "1"},
			want: []Token{{Raw: "-d", Key: "d", Value: "1", HasValue: true, Short: true, Joined: true}},
		},
		{
			name: "short with equals",
			args: []string{"-d=1", "x"},
			want: []Token{
				{Raw: "-d=1", Key: "d", Value: "1", HasValue: true, Short: true},
				{Raw: "x", Value: "x", HasValue: true},
			},
		},
		{
			name: "boolean leaves next argument",
			args: []string{"-v", "x"},
			want: []Token{
				{Raw: "-v", Key: "v", Short: true},
				{Raw: "x", Value: "x", HasValue: true},
			},
		},
		{
			name: "long with joined value",
			args: []string{"--name", "x"},
			want: []Token{{Raw: "--name", Key: "name", Value: "x", HasValue: true, Joined: true}},
		},
		{
			name: "long with equals",
			args: []string{"--name=a=b"},
			want: []Token{{Raw: "--name=a=b", Key: "name", Value: "a=b", HasValue: true}},
		},
		{
			name: "compound with joined value",
			args: []string{"-vd", "7"},
			want: []Token{
				{Raw: "-vd", Key: "v", Short: true},
				{Raw: "-vd", Key: "d", Value: "7", HasValue: true, Short: true, Joined: true},
			},
		},
		{
			name: "compound ending in boolean",
			args: []string{"-dv", "7"},
			want: []Token{
				{Raw: "-dv", Key: "d", Short: true},
				{Raw: "-dv", Key: "v", Short: true},
				{Raw: "7", Value: "7", HasValue: true},
			},
		},
		{
			name: "unknown key keeps joined value",
			args: []string{"--nope", "x"},
			want: []Token{{Raw: "--nope", Key: "nope", Value: "x", HasValue: true, Joined: true}},
		},
		{
			name: "stray equals",
			args: []string{"-=", "x"},
			want: []Token{{Raw: "x", Value: "x", HasValue: true}},
		},
		{
			name: "empty",
			args: nil,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Tokenize(tt.args)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.args, diff)
			}
		})
	}
}
