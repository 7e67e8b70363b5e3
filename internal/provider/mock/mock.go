// Package mock is an in-memory payment provider for development and tests.
package mock

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/provider"
)

// Provider keeps sessions in memory. Sessions start open and unpaid; tests
// and the development server move them along with Complete and Expire. A
// repeated idempotency key returns the session it first created.
type Provider struct {
	mu       sync.RWMutex
	sessions map[string]*provider.Session
	byKey    map[string]string
	failNext error
}

var _ provider.Provider = (*Provider)(nil)

// New creates an empty mock provider.
func New() *Provider {
	return &Provider{
		sessions: make(map[string]*provider.Session),
		byKey:    make(map[string]string),
	}
}

func (p *Provider) Name() string { return "mock" }

// FailNext makes the next CreateSession return err.
func (p *Provider) FailNext(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failNext = err
}

func (p *Provider) CreateSession(ctx context.Context, req *provider.SessionRequest) (*provider.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.failNext; err != nil {
		p.failNext = nil
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, errors.New("mock: session needs at least one line item")
	}
	if id, ok := p.byKey[req.IdempotencyKey]; ok && req.IdempotencyKey != "" {
		return clone(p.sessions[id]), nil
	}

	var total int64
	for _, item := range req.Items {
		total += domain.ToMinorUnits(item.Subtotal())
	}

	id := "cs_mock_" + uuid.NewString()
	s := &provider.Session{
		ID:            id,
		ClientSecret:  id + "_secret_" + uuid.NewString()[:8],
		Status:        provider.SessionOpen,
		PaymentStatus: "unpaid",
		AmountTotal:   total,
		Currency:      req.Currency,
		CustomerEmail: req.Booking.Email,
		Metadata:      req.Booking.Metadata(),
	}
	p.sessions[id] = s
	if req.IdempotencyKey != "" {
		p.byKey[req.IdempotencyKey] = id
	}
	return clone(s), nil
}

func (p *Provider) GetSession(ctx context.Context, id string) (*provider.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", provider.ErrSessionNotFound, id)
	}
	return clone(s), nil
}

// Complete marks a session as paid.
func (p *Provider) Complete(id string) error {
	return p.set(id, provider.SessionComplete, "paid")
}

// Expire marks a session as abandoned.
func (p *Provider) Expire(id string) error {
	return p.set(id, provider.SessionExpired, "unpaid")
}

func (p *Provider) set(id string, status provider.SessionStatus, payment string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", provider.ErrSessionNotFound, id)
	}
	s.Status = status
	s.PaymentStatus = payment
	return nil
}

func clone(s *provider.Session) *provider.Session {
	out := *s
	out.Metadata = maps.Clone(s.Metadata)
	return &out
}
