package models

import "time"

// Transaction statuses. Soft delete flips Status to inactive.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Transaction is a single bookkeeping entry. Revenue (omzet) and expense
// (pengeluaran) records share this collection; the expense surface is a
// type-restricted view over it.
//
// TransactionDate is stored as DD-MM-YYYY and rendered as DD/MM/YYYY.
// Branch and account fields are snapshots resolved at write time and are
// not re-resolved when the referenced record changes later.
type Transaction struct {
	ID              string     `json:"id"`
	TransactionDate string     `json:"transaction_date"`
	TransactionType string     `json:"transaction_type"`
	ReferenceNo     string     `json:"reference_no"`
	BranchID        string     `json:"branch_id"`
	BranchName      string     `json:"branch_name"`
	AccountID       string     `json:"account_id"`
	AccountCode     string     `json:"account_code"`
	AccountName     string     `json:"account_name"`
	Notes           string     `json:"notes"`
	TotalAmount     float64    `json:"total_amount"`
	Status          string     `json:"status"`
	Files           []FileMeta `json:"files"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// FileMeta records an attachment. Only metadata is kept; the content is
// never stored. A FileMeta has no lifecycle outside its parent transaction.
type FileMeta struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mime_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
