// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cmdline parses command lines against a TOML or YAML schema file
// and prints the result, for use from shell scripts:
//
//	eval "$(cmdline parse -s users.toml -f env -- "$@")"
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joeshaw/envdecode"
	"github.com/yeetrun/cmdline/pkg/cmdline"
	"github.com/yeetrun/cmdline/pkg/schemafile"
	"github.com/yeetrun/cmdline/pkg/tui"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks a failure caused by the command line itself.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

type config struct {
	Schema  string `env:"CMDLINE_SCHEMA"`
	Format  string `env:"CMDLINE_FORMAT,default=json"`
	Strict  bool   `env:"CMDLINE_STRICT"`
	NoColor string `env:"NO_COLOR"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return config{}, fmt.Errorf("invalid environment: %w", err)
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	return cfg, nil
}

// flags receives the CLI's own options.
type flags struct {
	schema string
	format string
	strict bool
	output string
	all    bool
	path   []string
}

func cliSchema(f *flags) *cmdline.Schema {
	schemaOpt := cmdline.Option{
		Name:        "schema",
		Short:       "s",
		Long:        "schema",
		Kind:        cmdline.FilePath,
		Description: "Schema file (.toml, .yaml or .yml). Defaults to $CMDLINE_SCHEMA.",
		Bind:        cmdline.Func(func(p cmdline.Path) { f.schema = string(p) }),
	}
	parse := cmdline.NewSchema("parse").
		Describe("USAGE: cmdline parse [options] -- ARGS...", "Parse ARGS against the schema and print the result.").
		AddOption(schemaOpt).
		AddOption(cmdline.Option{
			Name:        "format",
			Short:       "f",
			Long:        "format",
			Default:     "json",
			Description: "Output format: json, yaml, toml or env. Defaults to $CMDLINE_FORMAT.",
			Bind:        cmdline.Var(&f.format),
		}).
		AddOption(cmdline.Option{
			Name:        "output",
			Short:       "o",
			Long:        "output",
			Kind:        cmdline.FilePath,
			Description: "Write the result to this file instead of stdout.",
			Bind:        cmdline.Func(func(p cmdline.Path) { f.output = string(p) }),
		}).
		AddOption(cmdline.Option{
			Name:        "strict",
			Long:        "strict",
			Kind:        cmdline.Bool,
			Description: "Fail on option values that cannot be converted.",
			Bind:        cmdline.Var(&f.strict),
		})
	usage := cmdline.NewSchema("usage").
		Describe("USAGE: cmdline usage [options] [COMMAND...]", "Print usage text for the schema root or a nested command.").
		AddOption(schemaOpt).
		AddOption(cmdline.Option{
			Name:        "all",
			Short:       "a",
			Long:        "all",
			Kind:        cmdline.Bool,
			Description: "Include hidden options.",
			Bind:        cmdline.Var(&f.all),
		}).
		BindParameters(&f.path)
	check := cmdline.NewSchema("check").
		Describe("USAGE: cmdline check [options]", "Validate the schema file.").
		AddOption(schemaOpt)

	return cmdline.NewSchema("cmdline").
		Describe("USAGE: cmdline <command> [options]", "Parse command lines against a TOML or YAML schema.").
		Detail("Environment: CMDLINE_SCHEMA, CMDLINE_FORMAT, CMDLINE_STRICT, NO_COLOR.").
		AddSubCommand("parse", parse).
		AddSubCommand("usage", usage).
		AddSubCommand("check", check)
}

type cli struct {
	cfg    config
	stdout io.Writer
	stderr io.Writer
	color  tui.Colorizer
	log    *log.Logger
}

func newCLI(cfg config, stdout, stderr io.Writer) *cli {
	f, _ := stderr.(*os.File)
	return &cli{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		color:  tui.NewColorizer(f, cfg.NoColor == ""),
		log:    log.NewWithOptions(stderr, log.Options{Prefix: "cmdline"}),
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	return newCLI(cfg, stdout, stderr).run(args)
}

// splitArgs splits args at the first "--".
func splitArgs(args []string) (own, rest []string) {
	if i := slices.Index(args, "--"); i >= 0 {
		return args[:i], args[i+1:]
	}
	return args, nil
}

func (c *cli) run(args []string) int {
	own, rest := splitArgs(args)
	f := flags{schema: c.cfg.Schema, format: c.cfg.Format, strict: c.cfg.Strict}
	var wantUsage bool
	res, err := cmdline.Parse(cliSchema(&f), own,
		cmdline.WithUsage(func(string) { wantUsage = true }),
		cmdline.WithLogf(c.log.Warnf),
		cmdline.Strict(),
	)
	if err != nil {
		return c.fail(err, exitUsage)
	}
	leaf := res.Leaf()
	if wantUsage {
		fmt.Fprintln(c.stdout, cmdline.Usage(leaf.Command(), false))
		return exitOK
	}
	if !res.UsingSubCommand() {
		fmt.Fprintln(c.stderr, cmdline.Usage(res.Command(), false))
		return exitUsage
	}
	for cur := res; cur != nil; cur = cur.SelectedSubCommand() {
		if p := cur.Parameters(); len(p) > 0 && cur.Name() != "usage" {
			return c.fail(usageErrorf("unexpected argument %q; arguments to parse go after --", p[0]), exitUsage)
		}
	}

	switch name := leaf.Name(); name {
	case "parse":
		err = c.parse(f, rest)
	case "usage":
		err = c.usage(f, rest)
	case "check":
		err = c.check(f, rest)
	default:
		err = fmt.Errorf("unhandled command %q", name)
	}
	if errors.As(err, new(usageError)) {
		return c.fail(err, exitUsage)
	}
	if err != nil {
		return c.fail(err, exitError)
	}
	return exitOK
}

func (c *cli) fail(err error, code int) int {
	fmt.Fprintln(c.stderr, c.color.Error("error: ")+err.Error())
	return code
}

func (c *cli) load(path string) (*schemafile.File, *cmdline.Command, error) {
	if path == "" {
		return nil, nil, usageErrorf("no schema file; use -s or set CMDLINE_SCHEMA")
	}
	file, err := schemafile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	cmd, err := cmdline.Build(file.Schema())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, cmd, nil
}

func noRest(cmd string, rest []string) error {
	if len(rest) > 0 {
		return usageErrorf("%s takes no arguments after --", cmd)
	}
	return nil
}

func (c *cli) parse(f flags, args []string) error {
	if !slices.Contains(outputFormats, f.format) {
		return usageErrorf("unknown output format %q (want one of %s)", f.format, strings.Join(outputFormats, ", "))
	}
	file, cmd, err := c.load(f.schema)
	if err != nil {
		return err
	}
	opts := []cmdline.ParseOption{
		cmdline.WithLogf(c.log.Warnf),
		cmdline.WithUsageWriter(c.stderr),
	}
	if f.strict {
		opts = append(opts, cmdline.Strict())
	}
	res, err := cmd.Parse(args, opts...)
	if err != nil {
		return usageError{err}
	}
	if missing := res.MissingRequired(); len(missing) > 0 {
		return usageErrorf("missing required options: %s", strings.Join(missing, ", "))
	}
	for cur := res; cur != nil; cur = cur.SelectedSubCommand() {
		path := cur.Command().Path()
		if p := cur.Parameters(); len(p) > 0 && !file.TakesParameters(path...) {
			return usageErrorf("%s takes no parameters, got %q", commandName(file, path), p[0])
		}
	}
	if f.output != "" {
		return writeResultFile(f.output, f.format, res)
	}
	return writeResult(c.stdout, f.format, res)
}

func commandName(file *schemafile.File, path []string) string {
	if len(path) == 0 {
		if file.Name != "" {
			return file.Name
		}
		return "root command"
	}
	return fmt.Sprintf("command %q", strings.Join(path, " "))
}

func (c *cli) usage(f flags, rest []string) error {
	if err := noRest("usage", rest); err != nil {
		return err
	}
	_, cmd, err := c.load(f.schema)
	if err != nil {
		return err
	}
	target := cmd.Lookup(f.path...)
	if target == nil {
		return usageErrorf("unknown command %q", strings.Join(f.path, " "))
	}
	fmt.Fprintln(c.stdout, cmdline.Usage(target, f.all))
	return nil
}

func (c *cli) check(f flags, rest []string) error {
	if err := noRest("check", rest); err != nil {
		return err
	}
	_, cmd, err := c.load(f.schema)
	if err != nil {
		return err
	}
	commands, options := count(cmd)
	fmt.Fprintf(c.stdout, "%s: %s (%d commands, %d options)\n", f.schema, c.color.Key("ok"), commands, options)
	return nil
}

// count returns the number of commands in the tree rooted at c, including
// c, and the number of options they declare.
func count(c *cmdline.Command) (commands, options int) {
	commands, options = 1, len(c.Options())
	for _, name := range c.SubCommandNames() {
		sc, so := count(c.SubCommand(name))
		commands += sc
		options += so
	}
	return commands, options
}
