// Command atm runs an interactive ATM session on stdin and stdout.
//
// Accounts come from ATM_ACCOUNTS ("number:pin:balance,..."). The process
// always exits with status 0.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"stock_ledger/internal/atm"
	"stock_ledger/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger = zap.NewNop()
	}
	defer logger.Sync()

	accounts, err := atm.ParseAccounts(cfg.ATMAccounts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	atm.New(atm.NewBank(accounts...), logger).Run(os.Stdin, os.Stdout)
}
