package auth

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrUserNotFound is returned when no user has the given username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when registering a username that is already taken.
	ErrUserExists = errors.New("username already exists")
	// ErrValidation is returned for an empty username or password.
	ErrValidation = errors.New("invalid credentials input")
)

// UserStorage persists users. Usernames are unique and case-sensitive.
type UserStorage interface {
	Create(user *User) error
	FindByUsername(username string) (*User, error)
}

// LocalUserStorage keeps users in memory.
type LocalUserStorage struct {
	mu     sync.RWMutex
	users  map[string]*User
	lastID int64
}

// NewLocalUserStorage creates an empty LocalUserStorage.
func NewLocalUserStorage() *LocalUserStorage {
	return &LocalUserStorage{users: map[string]*User{}}
}

// Create stores user, returning ErrUserExists if the username is taken.
func (l *LocalUserStorage) Create(user *User) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.users[user.Username]; ok {
		return ErrUserExists
	}
	l.lastID++
	user.ID = l.lastID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	u := *user
	l.users[u.Username] = &u
	return nil
}

// FindByUsername returns the user with the exact username.
func (l *LocalUserStorage) FindByUsername(username string) (*User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	u, ok := l.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	c := *u
	return &c, nil
}
