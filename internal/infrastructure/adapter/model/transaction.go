package model

import (
	"time"
)

// Transaction represents the database model for credit purchases
type Transaction struct {
	ID        string     `gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `gorm:"not null;index;type:varchar(36)"`
	Plan      string     `gorm:"not null;size:50"`
	Credits   int64      `gorm:"not null"`
	Amount    int64      `gorm:"not null"` // major currency units
	Currency  string     `gorm:"not null;size:10"`
	Date      time.Time  `gorm:"not null"`
	Payment   bool       `gorm:"not null"`
	OrderID   string     `gorm:"size:255"`
	PaymentID string     `gorm:"size:255"`
	PaidAt    *time.Time

	// Define relationships
	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
