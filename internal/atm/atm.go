package atm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const menu = "\n1. Check Balance\n2. Deposit\n3. Withdraw\n4. Change PIN\n5. Exit"

// ATM runs interactive sessions against a Bank.
type ATM struct {
	bank   *Bank
	logger *zap.Logger
}

// New creates an ATM.
func New(bank *Bank, logger *zap.Logger) *ATM {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ATM{bank: bank, logger: logger}
}

type session struct {
	in      *bufio.Scanner
	out     io.Writer
	account *Account
	logger  *zap.Logger
}

// Run logs a user in from in and serves the menu until they exit or input ends.
// Every outcome, failed login included, is reported on out rather than returned.
func (m *ATM) Run(in io.Reader, out io.Writer) {
	s := &session{in: bufio.NewScanner(in), out: out, logger: m.logger}

	number, ok := s.prompt("Enter account number: ")
	if !ok {
		return
	}
	pin, ok := s.prompt("Enter PIN: ")
	if !ok {
		return
	}

	account, err := m.bank.Login(number, pin)
	if err != nil {
		m.logger.Warn("login failed", zap.String("account", number), zap.Error(err))
		s.println("Invalid credentials.")
		return
	}
	s.println("Login successful!")
	s.account = account
	m.logger.Info("login", zap.String("account", number))

	for {
		s.println(menu)
		choice, ok := s.prompt("Select option: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			s.printf("Balance: $%s\n", account.Balance().StringFixed(2))
		case "2":
			s.deposit()
		case "3":
			s.withdraw()
		case "4":
			s.changePIN()
		case "5":
			s.println("Thank you for using the ATM.")
			return
		default:
			s.println("Invalid option.")
		}
	}
}

func (s *session) deposit() {
	amount, ok := s.amount("Enter amount to deposit: ")
	if !ok {
		return
	}
	if err := s.account.Deposit(amount); err != nil {
		s.println(sentence(err))
		return
	}
	s.logger.Info("deposit", zap.String("account", s.account.Number()), zap.String("amount", amount.String()))
	s.println("Deposit successful.")
}

func (s *session) withdraw() {
	amount, ok := s.amount("Enter amount to withdraw: ")
	if !ok {
		return
	}
	if err := s.account.Withdraw(amount); err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			s.logger.Warn("withdrawal rejected", zap.String("account", s.account.Number()), zap.String("amount", amount.String()))
		}
		s.println(sentence(err))
		return
	}
	s.logger.Info("withdrawal", zap.String("account", s.account.Number()), zap.String("amount", amount.String()))
	s.println("Withdrawal successful.")
}

func (s *session) changePIN() {
	oldPIN, ok := s.prompt("Enter current PIN: ")
	if !ok {
		return
	}
	newPIN, ok := s.prompt("Enter new PIN: ")
	if !ok {
		return
	}
	if newPIN == "" {
		s.println("PIN cannot be empty.")
		return
	}
	if err := s.account.ChangePIN(oldPIN, newPIN); err != nil {
		s.println("Incorrect current PIN.")
		return
	}
	s.logger.Info("pin changed", zap.String("account", s.account.Number()))
	s.println("PIN changed successfully.")
}

// amount reads a decimal amount. Unparsable input is reported and yields ok=false.
func (s *session) amount(label string) (decimal.Decimal, bool) {
	text, ok := s.prompt(label)
	if !ok {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(text)
	if err != nil {
		s.println("Invalid amount.")
		return decimal.Zero, false
	}
	return amount, true
}

func (s *session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *session) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// sentence renders an error as a capitalised message ending in a period.
func sentence(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
