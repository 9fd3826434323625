package users

import "time"

type User struct {
	ID            string
	FirstName     string
	MiddleName    string
	LastName      string
	Email         string
	ContactNumber string
	PasswordHash  []byte
	IsAdmin       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Profile carries the editable fields of a user. An empty Password leaves
// the stored hash untouched.
type Profile struct {
	FirstName     string
	MiddleName    string
	LastName      string
	Email         string
	ContactNumber string
	Password      string
}
