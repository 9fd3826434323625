// Package models holds the client's view of the profile API's data.
package models

// User is the signed-in identity as returned by the API. An empty ID means
// nobody is signed in.
type User struct {
	ID            string `json:"_id"`
	FirstName     string `json:"firstName"`
	MiddleName    string `json:"middleName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	IsAdmin       bool   `json:"isAdmin"`
}

func (u User) FullName() string {
	name := u.FirstName
	if u.MiddleName != "" {
		name += " " + u.MiddleName
	}
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}
