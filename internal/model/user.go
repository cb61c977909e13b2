package model

import "time"

// Role values a user can hold. A nil role means the user signed up but was
// never assigned one; those users are treated like students for browsing.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// User represents a marketplace account. Accounts are created on first
// sign-in and never deleted.
type User struct {
	ID        string    `db:"id" json:"_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	PhotoURL  string    `db:"photo_url" json:"photoURL"`
	Role      *string   `db:"role" json:"role"`
	Gender    string    `db:"gender" json:"gender,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	return u.Role != nil && *u.Role == role
}
