// Package validate checks and sanitizes contact-form input before it reaches
// the store. Sanitization strips a fixed character class and is idempotent;
// oversized fields are rejected rather than silently truncated.
package validate

import (
	"regexp"
	"strings"

	"github.com/thorsignia/backend/internal/model"
	apperrors "github.com/thorsignia/backend/pkg/errors"
)

// Maximum lengths, matching the contacts table column bounds.
const (
	MaxNameLen    = 100
	MaxEmailLen   = 120
	MaxPhoneLen   = 20
	MaxCompanyLen = 100
	MaxMessageLen = 2000
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[\d\s+\-()]+$`)

	// Characters stripped from every text field to block injection into
	// HTML, SQL and log contexts downstream.
	disallowed = strings.NewReplacer("<", "", ">", "", "'", "", `"`, "", ";", "")
)

// Request carries the raw field values of a submission.
type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

// Sanitize strips the disallowed characters and trims surrounding space.
// Applying it to already-sanitized text is a no-op.
func Sanitize(s string) string {
	return strings.TrimSpace(disallowed.Replace(s))
}

// Contact validates and sanitizes a raw request. On success it returns a
// Contact populated with the sanitized fields; the first offending field
// fails the whole request with a VALIDATION_ERROR (field order: name, email,
// phone, company, message).
func Contact(req Request) (*model.Contact, error) {
	name, err := requiredField("name", req.Name, MaxNameLen)
	if err != nil {
		return nil, err
	}

	email, err := requiredField("email", req.Email, MaxEmailLen)
	if err != nil {
		return nil, err
	}
	if !emailRegex.MatchString(email) {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "Invalid email format")
	}

	var phone *string
	if strings.TrimSpace(req.Phone) != "" {
		p := Sanitize(req.Phone)
		if len([]rune(p)) > MaxPhoneLen {
			return nil, apperrors.Newf(apperrors.ErrCodeValidation, "phone must not exceed %d characters", MaxPhoneLen)
		}
		if p == "" || !phoneRegex.MatchString(p) {
			return nil, apperrors.New(apperrors.ErrCodeValidation, "Invalid phone number format")
		}
		phone = &p
	}

	company, err := requiredField("company", req.Company, MaxCompanyLen)
	if err != nil {
		return nil, err
	}

	message, err := requiredField("message", req.Message, MaxMessageLen)
	if err != nil {
		return nil, err
	}

	return &model.Contact{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Company: company,
		Message: message,
	}, nil
}

// requiredField checks presence, sanitizes, and enforces the length bound.
func requiredField(field, raw string, max int) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", apperrors.Newf(apperrors.ErrCodeValidation, "Missing required field: %s", field)
	}
	s := Sanitize(raw)
	if s == "" {
		return "", apperrors.Newf(apperrors.ErrCodeValidation, "Field %s is empty after sanitization", field)
	}
	if len([]rune(s)) > max {
		return "", apperrors.Newf(apperrors.ErrCodeValidation, "%s must not exceed %d characters", field, max)
	}
	return s, nil
}
