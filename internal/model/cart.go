package model

import "time"

// CartItem links a course a user intends to buy to that user. The store
// enforces at most one row per (class, email) pair.
type CartItem struct {
	ID        string    `db:"id" json:"_id"`
	ClassID   string    `db:"class_id" json:"classId"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
