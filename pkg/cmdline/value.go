// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind is the value type an option's raw string is coerced into.
type Kind int

const (
	String Kind = iota
	Bool
	Int32
	Int64
	Int8
	Int16
	Float32
	Float64
	Char
	FilePath
	Unsupported
)

var kindNames = [...]string{
	String:      "string",
	Bool:        "bool",
	Int32:       "int32",
	Int64:       "int64",
	Int8:        "int8",
	Int16:       "int16",
	Float32:     "float32",
	Float64:     "float64",
	Char:        "char",
	FilePath:    "path",
	Unsupported: "unsupported",
}

// kindAliases are the additional names accepted by ParseKind.
var kindAliases = map[string]Kind{
	"str":     String,
	"boolean": Bool,
	"int":     Int32,
	"integer": Int32,
	"long":    Int64,
	"byte":    Int8,
	"short":   Int16,
	"float":   Float32,
	"double":  Float64,
	"rune":    Char,
	"file":    FilePath,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind named by s. Unknown names return Unsupported
// and false.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return String, true
	}
	for k, name := range kindNames {
		if name == s && Kind(k) != Unsupported {
			return Kind(k), true
		}
	}
	if k, ok := kindAliases[s]; ok {
		return k, true
	}
	return Unsupported, false
}

// Path is a file-system path given on the command line. It is never checked
// for existence.
type Path string

func (p Path) String() string { return string(p) }

// Abs returns the absolute form of p.
func (p Path) Abs() (Path, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", err
	}
	return Path(abs), nil
}

// Coerce converts raw into the Go value for kind:
//
//	String   string
//	Bool     bool
//	Int8     int8
//	Int16    int16
//	Int32    int32
//	Int64    int64
//	Float32  float32
//	Float64  float64
//	Char     rune
//	FilePath Path
//
// Integers accept "0x"/"#" hex and leading-zero octal prefixes. Bool never
// fails: anything other than a case-insensitive "true" is false.
// The returned error, if any, is a *CoercionError without an option name.
func Coerce(kind Kind, raw string) (any, error) {
	v, err := coerce(kind, raw)
	if err != nil {
		return nil, &CoercionError{Kind: kind, Value: raw, Err: err}
	}
	return v, nil
}

func coerce(kind Kind, raw string) (any, error) {
	switch kind {
	case String:
		return raw, nil
	case Bool:
		return strings.EqualFold(raw, "true"), nil
	case Int8:
		n, err := decodeInt(raw, 8)
		return int8(n), err
	case Int16:
		n, err := decodeInt(raw, 16)
		return int16(n), err
	case Int32:
		n, err := decodeInt(raw, 32)
		return int32(n), err
	case Int64:
		return decodeInt(raw, 64)
	case Float32:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
		if err != nil {
			return nil, numError(err)
		}
		return float32(f), nil
	case Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, numError(err)
		}
		return f, nil
	case Char:
		return decodeChar(raw)
	case FilePath:
		return Path(raw), nil
	default:
		return nil, fmt.Errorf("%w %s", ErrUnsupportedKind, kind)
	}
}

// decodeInt parses s as a signed integer of the given bit size. The sign may
// precede a "0x", "0X" or "#" hex prefix, or a leading "0" selecting octal.
func decodeInt(s string, bits int) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	neg := false
	body := s
	switch body[0] {
	case '-':
		neg = true
		body = body[1:]
	case '+':
		body = body[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(body, "0x"), strings.HasPrefix(body, "0X"):
		base, body = 16, body[2:]
	case strings.HasPrefix(body, "#"):
		base, body = 16, body[1:]
	case len(body) > 1 && body[0] == '0':
		base, body = 8, body[1:]
	}
	if body == "" || body[0] == '-' || body[0] == '+' {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	if neg {
		body = "-" + body
	}
	n, err := strconv.ParseInt(body, base, bits)
	if err != nil {
		return 0, numError(err)
	}
	return n, nil
}

func decodeChar(s string) (rune, error) {
	if hex, ok := strings.CutPrefix(s, "0x"); ok {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, numError(err)
		}
		if !utf8.ValidRune(rune(n)) {
			return 0, fmt.Errorf("invalid code point %#x", n)
		}
		return rune(n), nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return 0, fmt.Errorf("empty value")
	}
	if r == utf8.RuneError && size == 1 {
		return 0, fmt.Errorf("invalid UTF-8 in %q", s)
	}
	return r, nil
}

// numError strips the strconv function prefix so messages read naturally.
func numError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		if ne.Err == strconv.ErrRange {
			return fmt.Errorf("value %q out of range", ne.Num)
		}
		return fmt.Errorf("invalid number %q", ne.Num)
	}
	return err
}
