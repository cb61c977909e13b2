package model

import "time"

// Course approval states. New courses start as pending until an admin
// accepts or denies them; only accepted courses are publicly listed.
const (
	StatusPending = "pending"
	StatusAccept  = "accept"
	StatusDeny    = "deny"
)

// Course is a class listed by an instructor.
type Course struct {
	ID                string    `db:"id" json:"_id"`
	InstructorEmail   string    `db:"instructor_email" json:"instructorEmail"`
	InstructorName    string    `db:"instructor_name" json:"instructorName"`
	Name              string    `db:"name" json:"name"`
	PictureURL        string    `db:"picture_url" json:"pictureURL"`
	SubCategory       string    `db:"sub_category" json:"subCategory"`
	Price             float64   `db:"price" json:"price"`
	AvailableQuantity int       `db:"available_quantity" json:"availableQuantity"`
	Status            string    `db:"status" json:"status"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
