package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/event"
	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	args := m.Called(ctx, token, remoteIP)
	return args.Bool(0), args.Error(1)
}

func contactRequest() domain.ContactRequest {
	return domain.ContactRequest{
		FirstName:      "Ana",
		LastName:       "Lee",
		Email:          "ana@example.com",
		Phone:          "760-555-0100",
		EventDate:      "2026-07-04",
		Message:        "Do you deliver to Carlsbad?",
		TurnstileToken: "tok",
	}
}

func newTestContactService(t *testing.T, v *mockVerifier) (*ContactService, *fixture) {
	t.Helper()
	f := newFixture(t)
	svc := NewContactService(v, f.events, newTestLogger())
	svc.now = func() time.Time { return fixedNow }
	return svc, f
}

func TestSubmit_Success(t *testing.T) {
	v := new(mockVerifier)
	v.On("Verify", mock.Anything, "tok", "198.51.100.7").Return(true, nil)
	svc, f := newTestContactService(t, v)

	sub, err := svc.Submit(context.Background(), contactRequest(), "198.51.100.7")
	require.NoError(t, err)
	assert.Equal(t, fixedNow, sub.VerifiedAt)
	assert.Equal(t, 1, f.published(event.TopicContactSubmitted))
}

func TestSubmit_MissingFieldSkipsVerification(t *testing.T) {
	v := new(mockVerifier)
	svc, _ := newTestContactService(t, v)

	req := contactRequest()
	req.Phone = ""
	_, err := svc.Submit(context.Background(), req, "")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "All fields are required", appErr.Message)
	v.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_VerificationRejected(t *testing.T) {
	v := new(mockVerifier)
	v.On("Verify", mock.Anything, "tok", "").Return(false, nil)
	svc, f := newTestContactService(t, v)

	_, err := svc.Submit(context.Background(), contactRequest(), "")
	require.ErrorIs(t, err, apperrors.ErrVerificationFailed)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))
	assert.Equal(t, 0, f.published(event.TopicContactSubmitted))
}

func TestSubmit_VerifierErrorIsVerificationFailure(t *testing.T) {
	v := new(mockVerifier)
	v.On("Verify", mock.Anything, "tok", "").Return(false, errors.New("secret not configured"))
	svc, _ := newTestContactService(t, v)

	_, err := svc.Submit(context.Background(), contactRequest(), "")
	assert.ErrorIs(t, err, apperrors.ErrVerificationFailed)
}

func TestSubmit_BreakerOpenIsUnavailable(t *testing.T) {
	v := new(mockVerifier)
	v.On("Verify", mock.Anything, "tok", "").Return(false, apperrors.ServiceUnavailable("turnstile is temporarily unavailable"))
	svc, _ := newTestContactService(t, v)

	_, err := svc.Submit(context.Background(), contactRequest(), "")
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}
