// Package contact implements the contact record store: validation, search,
// selection, and whole-collection persistence through a Repository.
package contact

import (
	"errors"
	"fmt"
	"regexp"
)

// TimeLayout is the second-precision layout used for Contact.Added.
const TimeLayout = "2006-01-02 15:04:05"

// Sentinel errors for caller-checkable conditions.
var (
	ErrDuplicate = errors.New("contact: phone or email already exists")
	ErrNotFound  = errors.New("contact: not found")
	ErrInvalid   = errors.New("contact: invalid field")
	ErrCorrupt   = errors.New("contact: corrupt store")
)

// Contact is a single persisted contact record.
type Contact struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Added string `json:"added"`
}

// Repository loads and saves the whole contact collection at once.
type Repository interface {
	LoadAll() ([]Contact, error)
	SaveAll(contacts []Contact) error
}

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z ]{2,50}$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// FieldError reports a field that failed its format rule.
type FieldError struct {
	Field   string
	Message string // shown to the user when re-prompting
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("contact: invalid %s", e.Field)
}

// Unwrap lets errors.Is match ErrInvalid.
func (e *FieldError) Unwrap() error { return ErrInvalid }

// Hint returns the user-facing correction for the field.
func (e *FieldError) Hint() string { return e.Message }

// ValidateName checks that name is 2-50 letters and spaces.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return &FieldError{Field: "name", Message: "Invalid name! Only letters and spaces allowed (2-50 characters)."}
	}
	return nil
}

// ValidatePhone checks that phone is exactly 10 digits.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return &FieldError{Field: "phone", Message: "Invalid phone number! Enter exactly 10 digits."}
	}
	return nil
}

// ValidateEmail checks that email has a local@domain.tld shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &FieldError{Field: "email", Message: "Invalid email format! Please follow name@example.com format."}
	}
	return nil
}

// Validate checks all three fields, returning the first failure.
func Validate(name, phone, email string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidatePhone(phone); err != nil {
		return err
	}
	return ValidateEmail(email)
}
