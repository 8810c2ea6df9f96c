// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdline parses command-line arguments against a declarative
// schema of options, positional parameters and nested subcommands.
//
// A Schema is plain data: the host fills it in (directly, with the builder
// methods, or from a file via package schemafile) and Build validates it
// into an immutable Command tree. Each Parse call walks the arguments
// against that tree and returns a fresh Result.
//
//	var cfg struct {
//	    Verbose bool
//	    Depth   int32
//	    Users   []string
//	}
//	root := cmdline.NewSchema("app").
//	    Describe("USAGE: app [options] <users>").
//	    AddOption(cmdline.Option{Name: "verbose", Short: "v", Long: "verbose", Kind: cmdline.Bool, Bind: cmdline.Var(&cfg.Verbose)}).
//	    AddOption(cmdline.Option{Name: "depth", Short: "d", Long: "depth", Kind: cmdline.Int32, Default: "1", Bind: cmdline.Var(&cfg.Depth)}).
//	    BindParameters(&cfg.Users)
//	res, err := cmdline.Parse(root, os.Args[1:])
//
// # Argument Syntax
//
//   - Short keys: -v, compounded as -abc (three keys a, b and c).
//   - Long keys: --verbose.
//   - Values: -d=1, --depth=1, or the next argument when it does not start
//     with "-": -d 1, --depth 1.
//   - Bool options never take a value; -v file leaves "file" as the next
//     argument.
//   - An option given without a value gets its Default.
//   - The usage keys (-h and --help unless the schema sets UsageKeys)
//     deliver Usage text to the configured sink. Parsing continues.
//   - An argument equal to a subcommand name of a command selects that
//     subcommand. Later arguments are handed to the selected subcommand,
//     except one naming another subcommand of the same command, which
//     selects it instead.
//   - Anything else is a positional parameter of the current command.
//
// # Errors
//
// Build returns a *SchemaError. Parse stops at the first *UnknownOptionError.
// A value that cannot be coerced (*CoercionError) or bound (*BindingError)
// is logged and skipped, leaving its binding untouched, unless the Strict
// option is given.
package cmdline
