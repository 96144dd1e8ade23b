package atm

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned for a deposit or withdrawal that is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrIncorrectPIN is returned when the current PIN given for a change does not match.
	ErrIncorrectPIN = errors.New("incorrect PIN")
	// ErrAccountNotFound is returned when no account has the given number.
	ErrAccountNotFound = errors.New("account not found")
)

// Account is a bank account reachable from the ATM.
type Account struct {
	mu      sync.Mutex
	number  string
	pin     string
	balance decimal.Decimal
}

// NewAccount creates an account.
func NewAccount(number, pin string, balance decimal.Decimal) *Account {
	return &Account{number: number, pin: pin, balance: balance}
}

// Number returns the account number.
func (a *Account) Number() string { return a.number }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// CheckPIN reports whether pin is the account PIN.
func (a *Account) CheckPIN(pin string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pin == pin
}

// Deposit adds amount to the balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
	return nil
}

// Withdraw removes amount from the balance. The balance is left unchanged on error.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// ChangePIN replaces the PIN when oldPIN matches.
func (a *Account) ChangePIN(oldPIN, newPIN string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pin != oldPIN {
		return ErrIncorrectPIN
	}
	a.pin = newPIN
	return nil
}

// Bank is a set of accounts indexed by number.
type Bank struct {
	accounts map[string]*Account
}

// NewBank creates a Bank holding accounts. A later account replaces an earlier one with the same number.
func NewBank(accounts ...*Account) *Bank {
	b := &Bank{accounts: make(map[string]*Account, len(accounts))}
	for _, a := range accounts {
		b.accounts[a.number] = a
	}
	return b
}

// Login returns the account when number exists and pin matches.
func (b *Bank) Login(number, pin string) (*Account, error) {
	a, ok := b.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	if !a.CheckPIN(pin) {
		return nil, ErrIncorrectPIN
	}
	return a, nil
}
