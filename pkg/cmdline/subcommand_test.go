// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/sync/errgroup"
)

type userFields struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

type userConfig struct {
	Name       string
	Verbose    bool
	Params     []string
	Create     userFields
	CreateArgs []string
	Groups     []string
	Search     userFields
	SearchArgs []string
}

func userOptions(f *userFields) []Option {
	return []Option{
		{Name: "username", Short: "-u", Long: "--username", Description: "The user name", Bind: Var(&f.Username)},
		{Name: "first-name", Short: "-F", Long: "--first-name", Description: "First name", Bind: Var(&f.FirstName)},
		{Name: "last-name", Short: "-L", Long: "--last-name", Description: "Last name", Bind: Var(&f.LastName)},
		{Name: "email", Short: "-E", Long: "--email", Description: "Email address", Bind: Var(&f.Email)},
	}
}

func subCommandSchema(cfg *userConfig) *Schema {
	groups := &Schema{
		Descriptions: []string{"Add the new user to groups"},
		Parameters:   &cfg.Groups,
	}
	create := &Schema{
		Name:         "create",
		Descriptions: []string{"Create a user"},
		Options:      userOptions(&cfg.Create),
		Parameters:   &cfg.CreateArgs,
		SubCommands:  map[string]*Schema{"groups": groups},
	}
	search := &Schema{
		Name:         "search",
		Descriptions: []string{"Search for users"},
		Options:      userOptions(&cfg.Search),
		Parameters:   &cfg.SearchArgs,
	}
	return &Schema{
		Name:         "root",
		Descriptions: []string{"USAGE: users [options] <command>"},
		Options: []Option{
			{Name: "name", Long: "--name", Description: "The Name", Bind: Var(&cfg.Name)},
			{Name: "verbose", Short: "-v", Long: "--verbose", Kind: Bool, Description: "Verbose Output", Bind: Var(&cfg.Verbose)},
		},
		Parameters:  &cfg.Params,
		SubCommands: map[string]*Schema{"create": create, "search": search},
	}
}

func parseUsers(t *testing.T, args ...string) (*userConfig, *Result) {
	t.Helper()
	cfg := new(userConfig)
	res, err := Parse(subCommandSchema(cfg), args, WithLogf(t.Logf), Strict())
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", args, err)
	}
	return cfg, res
}

func TestSubCommandCreate(t *testing.T) {
	cfg, res := parseUsers(t, "--verbose", "create", "-u", "jdoe", "-F", "John", "-L", "Doe", "-E", "jdoe@example.com", "groups", "wheel", "bin", "users")

	want := userConfig{
		Verbose: true,
		Create:  userFields{Username: "jdoe", FirstName: "John", LastName: "Doe", Email: "jdoe@example.com"},
		Groups:  []string{"wheel", "bin", "users"},
	}
	if diff := cmp.Diff(want, *cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if !res.Selected() || !res.UsingSubCommand() {
		t.Fatalf("root selected = %v using = %v", res.Selected(), res.UsingSubCommand())
	}
	create := res.SelectedSubCommand()
	if create.Name() != "create" || !create.Selected() || !create.UsingSubCommand() {
		t.Errorf("create = %v", create)
	}
	if create != res.SubCommand("create") {
		t.Error("SelectedSubCommand() != SubCommand(create)")
	}
	if len(create.Parameters()) != 0 {
		t.Errorf("create parameters = %q, want none", create.Parameters())
	}
	groups := res.Leaf()
	if groups.Name() != "groups" {
		t.Errorf("Leaf() = %v", groups)
	}
	if diff := cmp.Diff([]string{"wheel", "bin", "users"}, groups.Parameters()); diff != "" {
		t.Errorf("groups parameters mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"create", "groups"}, res.Path()); diff != "" {
		t.Errorf("Path() mismatch (-want +got):\n%s", diff)
	}
	if search := res.SubCommand("search"); search.Selected() || search.Provided("username") {
		t.Errorf("unselected search = %v", search)
	}
}

func TestSubCommandOptionsBeforeName(t *testing.T) {
	cfg, res := parseUsers(t, "-v", "create", "-u", "bob")
	if !res.Selected() || !cfg.Verbose {
		t.Errorf("root selected = %v verbose = %v", res.Selected(), cfg.Verbose)
	}
	create := res.SelectedSubCommand()
	if create == nil || create.Name() != "create" {
		t.Fatalf("SelectedSubCommand() = %v, want create", create)
	}
	if !create.Provided("username") || cfg.Create.Username != "bob" {
		t.Errorf("username provided = %v value = %q", create.Provided("username"), cfg.Create.Username)
	}
	if res.Provided("username") {
		t.Error("username provided on root")
	}
	for _, r := range []*Result{res, create, create.SubCommand("groups"), res.SubCommand("search")} {
		if len(r.Parameters()) != 0 {
			t.Errorf("%s parameters = %q, want none", r.Name(), r.Parameters())
		}
	}
	if create.SubCommand("groups").Selected() {
		t.Error("groups selected without receiving an argument")
	}
}

func TestSubCommandNestedParameters(t *testing.T) {
	cfg, res := parseUsers(t, "create", "-u", "bob", "groups", "alice", "carol", "dave")
	want := []string{"alice", "carol", "dave"}
	if diff := cmp.Diff(want, cfg.Groups); diff != "" {
		t.Errorf("groups slot mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, res.Leaf().Parameters()); diff != "" {
		t.Errorf("groups parameters mismatch (-want +got):\n%s", diff)
	}
	if cfg.SearchArgs != nil {
		t.Errorf("unselected search slot written: %q", cfg.SearchArgs)
	}
}

func TestSubCommandForwarding(t *testing.T) {
	// Arguments that name no subcommand of root go to the selected create.
	cfg, res := parseUsers(t, "create", "-u", "x", "extra")
	if res.SelectedSubCommand().Name() != "create" || cfg.Create.Username != "x" {
		t.Errorf("selected = %v, create username = %q", res.SelectedSubCommand(), cfg.Create.Username)
	}
	if diff := cmp.Diff([]string{"extra"}, cfg.CreateArgs); diff != "" {
		t.Errorf("create parameters mismatch (-want +got):\n%s", diff)
	}
	if cfg.Params != nil {
		t.Errorf("root parameters = %q, want none", cfg.Params)
	}
}

func TestSubCommandSiblingReselects(t *testing.T) {
	cfg, res := parseUsers(t, "create", "search", "-u", "x")
	if got := res.SelectedSubCommand().Name(); got != "search" {
		t.Fatalf("selected = %q, want search", got)
	}
	if cfg.Search.Username != "x" || cfg.Create.Username != "" {
		t.Errorf("search username = %q, create username = %q", cfg.Search.Username, cfg.Create.Username)
	}
	if !res.SubCommand("create").Selected() || !res.SubCommand("search").Selected() {
		t.Errorf("create selected = %v, search selected = %v", res.SubCommand("create").Selected(), res.SubCommand("search").Selected())
	}
	if len(cfg.CreateArgs) != 0 || len(cfg.SearchArgs) != 0 {
		t.Errorf("create parameters = %q, search parameters = %q", cfg.CreateArgs, cfg.SearchArgs)
	}
	if diff := cmp.Diff([]string{"search"}, res.Path()); diff != "" {
		t.Errorf("Path() mismatch (-want +got):\n%s", diff)
	}

	// A name is matched at the node that registers it, below the selection.
	cfg, res = parseUsers(t, "create", "groups", "wheel", "search", "-E", "a@b")
	if res.Leaf().Name() != "search" || cfg.Search.Email != "a@b" {
		t.Errorf("leaf = %v, search email = %q", res.Leaf(), cfg.Search.Email)
	}
	if diff := cmp.Diff([]string{"wheel"}, cfg.Groups); diff != "" {
		t.Errorf("groups parameters mismatch (-want +got):\n%s", diff)
	}
}

func TestSubCommandParametersBeforeName(t *testing.T) {
	cfg, res := parseUsers(t, "first", "search", "-E", "a@b", "more")
	if diff := cmp.Diff([]string{"first"}, cfg.Params); diff != "" {
		t.Errorf("root parameters mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"more"}, cfg.SearchArgs); diff != "" {
		t.Errorf("search parameters mismatch (-want +got):\n%s", diff)
	}
	if cfg.Search.Email != "a@b" || res.Leaf().Name() != "search" {
		t.Errorf("search email = %q leaf = %v", cfg.Search.Email, res.Leaf())
	}
}

func TestSubCommandUnknownOption(t *testing.T) {
	_, err := Parse(subCommandSchema(new(userConfig)), []string{"create", "--name=x"})
	var uerr *UnknownOptionError
	if !errors.As(err, &uerr) {
		t.Fatalf("Parse() error = %v, want *UnknownOptionError", err)
	}
	if diff := cmp.Diff([]string{"create"}, uerr.Path); diff != "" {
		t.Errorf("Path mismatch (-want +got):\n%s", diff)
	}
	if got, want := uerr.Error(), `unknown option: 'name' (command "create")`; !strings.HasPrefix(got, want) {
		t.Errorf("Error() = %q, want prefix %q", got, want)
	}
}

func TestMissingRequired(t *testing.T) {
	s := subCommandSchema(new(userConfig))
	s.Options[0].Required = true
	s.SubCommands["create"].Options[0].Required = true
	s.SubCommands["create"].Options[3].Required = true

	tests := []struct {
		args []string
		want []string
	}{
		{args: nil, want: []string{"name"}},
		{args: []string{"--name=x"}},
		{args: []string{"create"}, want: []string{"name", "create.username", "create.email"}},
		{args: []string{"--name=x", "create", "-u", "bob", "-E", "b@c"}},
		{args: []string{"search"}, want: []string{"name"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.args), func(t *testing.T) {
			res, err := Parse(s, tt.args)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, res.MissingRequired(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("MissingRequired() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseConcurrent(t *testing.T) {
	// Bindings would share state across goroutines, so read from Results.
	strip := func(s *Schema) {
		s.Parameters = nil
		for i := range s.Options {
			s.Options[i].Bind = nil
		}
	}
	s := subCommandSchema(new(userConfig))
	strip(s)
	for _, sub := range s.SubCommands {
		strip(sub)
		for _, g := range sub.SubCommands {
			strip(g)
		}
	}
	c, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var g errgroup.Group
	for i := range 32 {
		g.Go(func() error {
			user := fmt.Sprintf("user%d", i)
			res, err := c.Parse([]string{"-v", "create", "-u", user, "groups", user}, WithLogf(t.Logf))
			if err != nil {
				return err
			}
			create := res.SubCommand("create")
			if got, _ := Get[string](create, "username"); got != user {
				return fmt.Errorf("username = %q, want %q", got, user)
			}
			if got := res.Leaf().Parameters(); len(got) != 1 || got[0] != user {
				return fmt.Errorf("groups parameters = %q, want [%s]", got, user)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
