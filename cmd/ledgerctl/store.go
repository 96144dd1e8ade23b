package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"stock_ledger/internal/auth"
	"stock_ledger/internal/config"
	"stock_ledger/internal/database"
	"stock_ledger/internal/ledger"
)

var (
	dbPath   = flag.String("db", "", "Path to the SQLite database (defaults to $DB_PATH)")
	username = flag.String("user", os.Getenv("LEDGER_USER"), "Username for ledger commands (defaults to $LEDGER_USER)")
	password = flag.String("password", os.Getenv("LEDGER_PASSWORD"), "Password for ledger commands (defaults to $LEDGER_PASSWORD)")
	verbose  = flag.Bool("v", false, "Log ledger operations to stderr")

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var errUnauthorized = errors.New("invalid username or password")

// store is the opened database with the services built on it.
type store struct {
	db     *gorm.DB
	ledger *ledger.Service
	gate   *auth.Gate
}

func openStore() (*store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}

	logger := zap.NewNop()
	if *verbose {
		if logger, err = cfg.NewLogger(); err != nil {
			return nil, err
		}
	}

	db, err := database.Open(cfg.DatabasePath, &ledger.Product{}, &ledger.Sale{}, &auth.User{})
	if err != nil {
		return nil, err
	}

	return &store{
		db:     db,
		ledger: ledger.NewService(ledger.NewGormStorage(db), logger, cfg.LowStockThreshold),
		gate:   auth.NewGate(auth.NewGormUserStorage(db), auth.NewPasswordHasher(cfg.BcryptCost), logger),
	}, nil
}

// openLedger opens the store and checks the -user/-password credentials against the gate.
func openLedger() (*store, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}

	ok, err := s.gate.Authenticate(*username, *password)
	if err == nil && !ok {
		err = errUnauthorized
	}
	if err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *store) close() {
	if err := database.Close(s.db); err != nil {
		fmt.Fprintln(stderr, err)
	}
}
