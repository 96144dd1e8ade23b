package main

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup points the CLI at a fresh database and captures its output.
func setup(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()

	oldDB, oldUser, oldPassword := *dbPath, *username, *password
	oldStdout, oldStderr := stdout, stderr
	t.Cleanup(func() {
		*dbPath, *username, *password = oldDB, oldUser, oldPassword
		stdout, stderr = oldStdout, oldStderr
	})

	t.Setenv("BCRYPT_COST", "4")
	*dbPath = filepath.Join(t.TempDir(), "ledger.db")
	*username, *password = "clerk", "counter"

	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	stdout, stderr = out, errOut
	return out, errOut
}

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return cmd.Execute(context.Background(), f)
}

func TestLedgerctl_RequiresLogin(t *testing.T) {
	_, errOut := setup(t)

	assert.Equal(t, subcommands.ExitFailure, run(t, &listCmd{}))
	assert.Contains(t, errOut.String(), "invalid username or password")
}

func TestLedgerctl_Flow(t *testing.T) {
	out, errOut := setup(t)

	require.Equal(t, subcommands.ExitSuccess, run(t, &registerCmd{}, "-u", "clerk", "-p", "counter"))
	assert.Equal(t, subcommands.ExitFailure, run(t, &registerCmd{}, "-u", "clerk", "-p", "again"))
	assert.Contains(t, errOut.String(), "Username already exists")

	require.Equal(t, subcommands.ExitSuccess, run(t, &loginCmd{}, "-u", "clerk", "-p", "counter"))
	assert.Equal(t, subcommands.ExitFailure, run(t, &loginCmd{}, "-u", "clerk", "-p", "nope"))

	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "-name", "Widget", "-qty", "10", "-price", "2.50"))
	assert.Contains(t, out.String(), "Product 1 added.")

	require.Equal(t, subcommands.ExitSuccess, run(t, &sellCmd{}, "-id", "1", "-qty", "4"))
	assert.Equal(t, subcommands.ExitFailure, run(t, &sellCmd{}, "-id", "1", "-qty", "10"))
	assert.Contains(t, errOut.String(), "Insufficient stock for this sale.")

	require.Equal(t, subcommands.ExitSuccess, run(t, &updateCmd{}, "-id", "1", "-name", "Widget", "-qty", "3", "-price", "2.50"))

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &listCmd{}))
	assert.Contains(t, out.String(), "Widget")
	assert.Contains(t, out.String(), "LOW")

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &lowStockCmd{}))
	assert.Contains(t, out.String(), "Widget: 3 left")

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &summaryCmd{}))
	assert.Contains(t, out.String(), "10.00")

	assert.Equal(t, subcommands.ExitUsageError, run(t, &summaryCmd{}, "-pricing", "avg"))

	require.Equal(t, subcommands.ExitSuccess, run(t, &deleteCmd{}, "-id", "1"))
	assert.Equal(t, subcommands.ExitFailure, run(t, &deleteCmd{}, "-id", "1"))

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &summaryCmd{}))
	assert.Contains(t, out.String(), "No sales recorded yet.")
}
