package model

import "time"

// Payment records a settled charge: which courses were bought and which
// cart rows were consumed. TransactionID is unique so a retried settlement
// cannot be recorded twice.
type Payment struct {
	ID            string    `db:"id" json:"_id"`
	Email         string    `db:"email" json:"email"`
	TransactionID string    `db:"transaction_id" json:"transactionId"`
	Price         float64   `db:"price" json:"price"`
	ClassIDs      []string  `db:"class_ids" json:"classID"`
	CartIDs       []string  `db:"cart_ids" json:"cartID"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// AdminStats is the aggregate snapshot shown on the admin dashboard.
type AdminStats struct {
	Users    int64   `json:"users"`
	Classes  int64   `json:"classes"`
	Payments int64   `json:"payments"`
	Revenue  float64 `json:"revenue"`
}
