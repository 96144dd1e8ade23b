package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"stock_ledger/internal/auth"
)

type registerCmd struct {
	user     string
	password string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "register a new ledger user" }
func (*registerCmd) Usage() string {
	return `ledgerctl register -u <username> -p <password>

  Creates a user allowed to run ledger commands. Usernames are case-sensitive.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "u", "", "Username to register.")
	f.StringVar(&c.password, "p", "", "Password for the new user.")
}

func (c *registerCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	if err := s.gate.Register(c.user, c.password); err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			fmt.Fprintln(stderr, "Registration failed. Username already exists.")
		} else {
			fmt.Fprintln(stderr, "Registration failed:", err)
		}
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, "User registered successfully!")
	return subcommands.ExitSuccess
}

type loginCmd struct {
	user     string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "check a username and password" }
func (*loginCmd) Usage() string {
	return `ledgerctl login -u <username> -p <password>

  Reports whether the credentials are accepted.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "u", "", "Username.")
	f.StringVar(&c.password, "p", "", "Password.")
}

func (c *loginCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	ok, err := s.gate.Authenticate(c.user, c.password)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	if !ok {
		fmt.Fprintln(stderr, "Invalid username or password")
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, "Login successful!")
	return subcommands.ExitSuccess
}
