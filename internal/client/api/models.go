package api

import "github.com/dmitrijs2005/gophprofile/internal/client/models"

// Result codes returned by the profile API.
const (
	CodeUserUpdated    = "USER-UPDATED"
	CodeUserLoggedIn   = "USER-LOGGED-IN"
	CodeUserFound      = "USER-FOUND"
	CodeUserRegistered = "USER-REGISTERED"

	CodeInvalidCredentials = "INVALID-CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeEmailTaken         = "EMAIL-TAKEN"
	CodeUserNotFound       = "USER-NOT-FOUND"
	CodeInvalidInput       = "INVALID-INPUT"
	CodeServerError        = "SERVER-ERROR"
)

// ProfileUpdate is the body of PUT /users/edit. Password is always sent;
// the server treats "" as "keep the current password".
type ProfileUpdate struct {
	FirstName     string `json:"firstName"`
	MiddleName    string `json:"middleName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Password      string `json:"password"`
}

type RegisterRequest struct {
	FirstName     string `json:"firstName"`
	MiddleName    string `json:"middleName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Password      string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Result is the envelope every endpoint answers with. User and Token are
// present only for the codes that carry them.
type Result struct {
	Code    string       `json:"code"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

// Is reports whether r carries the given code.
func (r *Result) Is(code string) bool {
	return r != nil && r.Code == code
}
