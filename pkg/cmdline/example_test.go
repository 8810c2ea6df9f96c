// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline_test

import (
	"errors"
	"fmt"
	"os"

	"github.com/yeetrun/cmdline/pkg/cmdline"
)

func Example() {
	var (
		verbose bool
		user    string
		groups  []string
	)
	create := cmdline.NewSchema("create").
		Describe("Create a user").
		AddOption(cmdline.Option{Name: "username", Short: "u", Long: "username", Bind: cmdline.Var(&user)}).
		AddSubCommand("groups", cmdline.NewSchema("groups").BindParameters(&groups))
	root := cmdline.NewSchema("users").
		AddOption(cmdline.Option{Name: "verbose", Short: "v", Kind: cmdline.Bool, Bind: cmdline.Var(&verbose)}).
		AddSubCommand("create", create)

	res, err := cmdline.ParseString(root, "-v create -u bob groups wheel users")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(verbose, user, groups)
	fmt.Println(res.Path())
	// Output:
	// true bob [wheel users]
	// [create groups]
}

func ExampleUnknownOptionError() {
	root := cmdline.NewSchema("app").
		AddOption(cmdline.Option{Name: "verbose", Short: "v", Long: "verbose", Kind: cmdline.Bool})

	_, err := cmdline.Parse(root, []string{"--verbos"})
	var uerr *cmdline.UnknownOptionError
	if errors.As(err, &uerr) {
		fmt.Println(uerr.Flag(), uerr.Suggest)
	}
	fmt.Println(err)
	// Output:
	// --verbos [--verbose]
	// unknown option: 'verbos'; did you mean --verbose?
}

func ExampleUsage() {
	c, err := cmdline.Build(cmdline.NewSchema("app").
		Describe("USAGE: app [options]").
		AddOption(cmdline.Option{Name: "depth", Short: "d", Long: "depth", Kind: cmdline.Int32, Default: "1", Description: "Depth"}))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(cmdline.Usage(c, false))
	// Output:
	// USAGE: app [options]
	//
	//   -d, --depth                     Depth (default: 1)
}
