package domain

import (
	"strings"
	"time"
)

// ContactRequest is a submission of the public contact form.
type ContactRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	EventDate      string `json:"eventDate"`
	Message        string `json:"message"`
	TurnstileToken string `json:"turnstileToken"`
}

// Complete reports whether every field carries a non-blank value.
func (c ContactRequest) Complete() bool {
	for _, v := range []string{c.FirstName, c.LastName, c.Email, c.Phone, c.EventDate, c.Message, c.TurnstileToken} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// ContactSubmission is a verified contact request as recorded by the service.
type ContactSubmission struct {
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	EventDate  string    `json:"eventDate"`
	Message    string    `json:"message"`
	VerifiedAt time.Time `json:"verifiedAt"`
}

// Submission drops the verification token and stamps the verification time.
func (c ContactRequest) Submission(verifiedAt time.Time) ContactSubmission {
	return ContactSubmission{
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		EventDate:  c.EventDate,
		Message:    c.Message,
		VerifiedAt: verifiedAt,
	}
}
