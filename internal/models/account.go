package models

import "time"

// Account is a chart-of-accounts entry. Deleting an account only flips
// IsActive; the row is kept for history.
type Account struct {
	AccountID   string    `gorm:"primaryKey" json:"account_id"`
	AccountCode string    `gorm:"index" json:"account_code"`
	AccountName string    `json:"account_name"`
	AccountType string    `json:"account_type"`
	IsActive    bool      `gorm:"index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AccountOption is the dropdown projection served by /api/coa/list.
type AccountOption struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
