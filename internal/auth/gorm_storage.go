package auth

import (
	"errors"

	"gorm.io/gorm"
)

// GormUserStorage handles user persistence using GORM.
type GormUserStorage struct {
	db *gorm.DB
}

// NewGormUserStorage creates a new GormUserStorage.
func NewGormUserStorage(db *gorm.DB) *GormUserStorage {
	return &GormUserStorage{db: db}
}

// Create inserts user. The unique index on username decides races between
// two registrations of the same name.
func (r *GormUserStorage) Create(user *User) error {
	var count int64
	if err := r.db.Model(&User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserExists
	}

	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

// FindByUsername finds a user by exact username.
func (r *GormUserStorage) FindByUsername(username string) (*User, error) {
	var user User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
