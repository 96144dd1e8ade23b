package auth

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Gate registers users and checks their credentials before ledger access.
type Gate struct {
	users  UserStorage
	hasher *PasswordHasher
	logger *zap.Logger
}

// NewGate creates a Gate.
func NewGate(users UserStorage, hasher *PasswordHasher, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hasher == nil {
		hasher = NewPasswordHasher(DefaultBcryptCost)
	}
	return &Gate{users: users, hasher: hasher, logger: logger}
}

// Register creates a user with a hashed password.
// Returns ErrUserExists if the username is already taken.
func (g *Gate) Register(username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	hash, err := g.hasher.Hash(password)
	if err != nil {
		g.logger.Error("failed to hash password", zap.String("username", username), zap.Error(err))
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := g.users.Create(&User{Username: username, PasswordHash: hash}); err != nil {
		if errors.Is(err, ErrUserExists) {
			g.logger.Warn("registration rejected", zap.String("username", username), zap.Error(err))
			return ErrUserExists
		}
		g.logger.Error("failed to save user", zap.String("username", username), zap.Error(err))
		return fmt.Errorf("failed to save user: %w", err)
	}

	g.logger.Info("user registered", zap.String("username", username))
	return nil
}

// Authenticate reports whether username exists and password matches it.
func (g *Gate) Authenticate(username, password string) (bool, error) {
	user, err := g.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			g.logger.Debug("unknown user", zap.String("username", username))
			return false, nil
		}
		g.logger.Error("failed to look up user", zap.String("username", username), zap.Error(err))
		return false, fmt.Errorf("failed to look up user: %w", err)
	}

	ok := g.hasher.Verify(password, user.PasswordHash)
	if !ok {
		g.logger.Debug("password mismatch", zap.String("username", username))
	}
	return ok, nil
}
