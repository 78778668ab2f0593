package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)"`
	Name          string    `gorm:"not null;size:255"`
	Email         string    `gorm:"uniqueIndex;not null;size:255"` // stored lower-cased
	PasswordHash  string    `gorm:"not null;size:255"`
	CreditBalance int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
