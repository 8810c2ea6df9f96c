// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import "strings"

// Token is one option key, with its value if it has one, taken from a
// single argument (or an argument joined with the one after it).
type Token struct {
	Raw      string // argument the key came from
	Key      string // key without prefix
	Value    string
	HasValue bool
	Short    bool // single "-" form
	Joined   bool // Value is the following argument
}

// window is the argument at one position of the input, plus the following
// argument when the two are joined into a key/value pair.
type window struct {
	arg    string
	next   string
	joined bool
}

// join returns the window at position i of args. An option argument without
// an explicit "=" is joined with the next argument unless that argument also
// starts with "-". Whether the joined value is actually consumed is decided
// once the key has been resolved.
func join(args []string, i int) window {
	w := window{arg: args[i]}
	if i+1 < len(args) && isOption(w.arg) && !strings.Contains(w.arg, "=") && !isOption(args[i+1]) {
		w.next = args[i+1]
		w.joined = true
	}
	return w
}

// isOption reports whether s has an option prefix.
func isOption(s string) bool {
	return strings.HasPrefix(s, "-")
}

// isShortForm reports whether s is "-x..." and not "--x...".
func isShortForm(s string) bool {
	return len(s) > 1 && s[0] == '-' && s[1] != '-'
}

// stripPrefix removes a leading "-" or "--".
func stripPrefix(s string) string {
	if strings.HasPrefix(s, "--") {
		return s[2:]
	}
	return strings.TrimPrefix(s, "-")
}

// usageKey returns the key of s as compared against usage keys: the stripped
// argument up to any "=".
func usageKey(s string) string {
	key, _, _ := strings.Cut(stripPrefix(s), "=")
	return key
}

// Tokenize classifies args against c's own options, the way Parse sees
// them at c before any subcommand is selected. Option arguments expand into
// one token per key; other arguments become tokens with an empty Key and the
// argument as Value. A value joined to a Bool option is not consumed and
// reappears as its own token.
func (c *Command) Tokenize(args []string) []Token {
	var out []Token
	for i := 0; i < len(args); i++ {
		w := join(args, i)
		if !isOption(w.arg) {
			out = append(out, Token{Raw: w.arg, Value: w.arg, HasValue: true})
			continue
		}
		toks := classify(w)
		if n := len(toks); n > 0 && toks[n-1].Joined && c.isBoolean(toks[n-1]) {
			last := &toks[n-1]
			last.Value, last.HasValue, last.Joined = "", false, false
		} else if w.joined {
			i++
		}
		out = append(out, toks...)
	}
	return out
}

// isBoolean reports whether t resolves to a Bool option of c.
func (c *Command) isBoolean(t Token) bool {
	o := c.resolve(t)
	return o != nil && o.Kind == Bool
}

// resolve returns the option t names, or nil.
func (c *Command) resolve(t Token) *Option {
	if t.Short {
		return c.byShort[t.Key]
	}
	return c.byLong[t.Key]
}

// classify splits an option window into its tokens.
//
//	-v            v
//	-abc          a, b, c
//	-d=1, -d 1    d=1
//	-abc 1        a, b, c=1
//	--name=x      name=x
//	--name x      name=x
//
// A stray "-=" yields no tokens.
func classify(w window) []Token {
	if isShortForm(w.arg) {
		return classifyShort(w)
	}
	t := Token{Raw: w.arg}
	body := stripPrefix(w.arg)
	if key, val, ok := strings.Cut(body, "="); ok {
		t.Key, t.Value, t.HasValue = key, val, true
		return []Token{t}
	}
	t.Key = body
	attachJoined(&t, w)
	return []Token{t}
}

func classifyShort(w window) []Token {
	body := stripPrefix(w.arg)
	if key, val, ok := strings.Cut(body, "="); ok {
		if key == "" {
			return nil
		}
		return []Token{{Raw: w.arg, Key: key, Value: val, HasValue: true, Short: true}}
	}
	var out []Token
	for _, r := range body {
		out = append(out, Token{Raw: w.arg, Key: string(r), Short: true})
	}
	attachJoined(&out[len(out)-1], w)
	return out
}

func attachJoined(t *Token, w window) {
	if w.joined {
		t.Value, t.HasValue, t.Joined = w.next, true, true
	}
}
