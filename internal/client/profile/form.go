package profile

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
)

var ErrUnknownField = errors.New("unknown field")

// Field names accepted by Editor.Set.
const (
	FieldFirstName       = "firstName"
	FieldMiddleName      = "middleName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldContactNumber   = "contactNumber"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// Fields lists every form field in display order.
var Fields = []string{
	FieldFirstName,
	FieldMiddleName,
	FieldLastName,
	FieldEmail,
	FieldContactNumber,
	FieldPassword,
	FieldConfirmPassword,
}

var placeholders = map[string]string{
	FieldFirstName:       "First Name",
	FieldMiddleName:      "Middle Name",
	FieldLastName:        "Last Name",
	FieldEmail:           "Email",
	FieldContactNumber:   "Contact Number",
	FieldPassword:        "New Password (leave empty to keep current)",
	FieldConfirmPassword: "Confirm New Password",
}

// Placeholder returns the hint shown for an empty field.
func Placeholder(field string) string {
	return placeholders[field]
}

// IsSecret reports whether field holds a password.
func IsSecret(field string) bool {
	return field == FieldPassword || field == FieldConfirmPassword
}

// Form is the editable copy of the profile.
type Form struct {
	FirstName       string
	MiddleName      string
	LastName        string
	Email           string
	ContactNumber   string
	Password        string
	ConfirmPassword string
}

func (f *Form) ptr(field string) (*string, error) {
	switch field {
	case FieldFirstName:
		return &f.FirstName, nil
	case FieldMiddleName:
		return &f.MiddleName, nil
	case FieldLastName:
		return &f.LastName, nil
	case FieldEmail:
		return &f.Email, nil
	case FieldContactNumber:
		return &f.ContactNumber, nil
	case FieldPassword:
		return &f.Password, nil
	case FieldConfirmPassword:
		return &f.ConfirmPassword, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// Get returns the value of field.
func (f Form) Get(field string) (string, error) {
	p, err := f.ptr(field)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// passwordMismatch is true only when a new password was typed and the
// confirmation differs. An empty password never mismatches.
func (f Form) passwordMismatch() bool {
	return f.Password != "" && f.Password != f.ConfirmPassword
}

// fromUser copies the identity fields of u and clears both passwords.
func fromUser(u models.User) Form {
	return Form{
		FirstName:     u.FirstName,
		MiddleName:    u.MiddleName,
		LastName:      u.LastName,
		Email:         u.Email,
		ContactNumber: u.ContactNumber,
	}
}
