package model

import (
	"time"
)

// UserLock is a short-lived advisory lock held while a user's credits change
type UserLock struct {
	UserID    string    `gorm:"primaryKey;type:varchar(36)"`
	LockedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for UserLock
func (UserLock) TableName() string {
	return "user_locks"
}
