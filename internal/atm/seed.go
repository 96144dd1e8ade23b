package atm

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAccounts parses a comma separated list of number:pin:balance entries.
func ParseAccounts(list string) ([]*Account, error) {
	var accounts []*Account
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid account entry %q: want number:pin:balance", entry)
		}
		balance, err := decimal.NewFromString(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid balance for account %s: %w", parts[0], err)
		}
		if balance.IsNegative() {
			return nil, fmt.Errorf("invalid balance for account %s: negative", parts[0])
		}
		accounts = append(accounts, NewAccount(parts[0], parts[1], balance))
	}
	return accounts, nil
}
