// Package provider defines the hosted payment-session bridge used by checkout.
package provider

import (
	"context"
	"errors"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
)

// ErrSessionNotFound is returned by GetSession for an unknown session id.
var ErrSessionNotFound = errors.New("payment session not found")

// SessionStatus mirrors the provider's session lifecycle.
type SessionStatus string

const (
	SessionOpen     SessionStatus = "open"
	SessionComplete SessionStatus = "complete"
	SessionExpired  SessionStatus = "expired"
)

// SessionRequest is everything needed to open a hosted payment session.
type SessionRequest struct {
	Items          []domain.LineItem
	Booking        domain.BookingDetails
	Currency       string
	ReturnURL      string
	IdempotencyKey string
}

// Session is a provider-neutral view of a payment session.
type Session struct {
	ID            string            `json:"id"`
	ClientSecret  string            `json:"client_secret,omitempty"`
	Status        SessionStatus     `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Paid reports whether the provider has collected the payment.
func (s *Session) Paid() bool {
	return s.PaymentStatus == "paid" || s.PaymentStatus == "no_payment_required"
}

// Booking decodes the booking details stored in the session metadata.
func (s *Session) Booking() domain.BookingDetails {
	return domain.BookingFromMetadata(s.Metadata)
}

// Provider opens and looks up hosted payment sessions.
type Provider interface {
	Name() string
	CreateSession(ctx context.Context, req *SessionRequest) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
}
