package auth

import "time"

// User is a registered operator of the ledger.
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}
