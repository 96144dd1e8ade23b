// Command ledgerctl manages the stock ledger database from the command line.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	c := subcommands.NewCommander(flag.CommandLine, "ledgerctl")
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	Register(c)

	flag.Parse()
	os.Exit(int(c.Execute(context.Background())))
}
