package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/event"
	"github.com/alexanderdross/V0-Desiree/internal/verification"
	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
)

// ContactService accepts verified contact-form submissions.
type ContactService struct {
	verifier verification.Verifier
	events   *event.Producer
	logger   *slog.Logger
	now      func() time.Time
}

// NewContactService creates a new contact service.
func NewContactService(verifier verification.Verifier, events *event.Producer, logger *slog.Logger) *ContactService {
	return &ContactService{
		verifier: verifier,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit checks that every field is present, verifies the widget token and
// records the submission.
func (s *ContactService) Submit(ctx context.Context, req domain.ContactRequest, remoteIP string) (domain.ContactSubmission, error) {
	if !req.Complete() {
		return domain.ContactSubmission{}, apperrors.InvalidInput("All fields are required")
	}

	ok, err := s.verifier.Verify(ctx, req.TurnstileToken, remoteIP)
	if err != nil && errors.Is(err, apperrors.ErrServiceUnavail) {
		return domain.ContactSubmission{}, err
	}
	if !ok {
		return domain.ContactSubmission{}, apperrors.VerificationFailed()
	}

	submission := req.Submission(s.now().UTC())
	s.logger.InfoContext(ctx, "contact form submission",
		slog.String("first_name", submission.FirstName),
		slog.String("last_name", submission.LastName),
		slog.String("email", submission.Email),
		slog.String("phone", submission.Phone),
		slog.String("event_date", submission.EventDate),
		slog.String("message", submission.Message),
		slog.Time("verified_at", submission.VerifiedAt),
	)

	if err := s.events.PublishContactSubmitted(ctx, submission); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish contact.submitted event",
			slog.String("email", submission.Email),
			slog.String("error", err.Error()),
		)
	}
	return submission, nil
}
