package cartstore

import (
	"log/slog"

	"github.com/alexanderdross/V0-Desiree/internal/repository"
)

// Factory builds visitor stores that share a repository and a set of observers.
// Every store it builds persists through a Persister first.
type Factory struct {
	repo      repository.CartRepository
	logger    *slog.Logger
	observers []Observer
}

// NewFactory creates a store factory. Extra observers run after persistence.
func NewFactory(repo repository.CartRepository, logger *slog.Logger, observers ...Observer) *Factory {
	return &Factory{repo: repo, logger: logger, observers: observers}
}

// For returns a fresh store for visitorID.
func (f *Factory) For(visitorID string) *Store {
	observers := make([]Observer, 0, len(f.observers)+1)
	observers = append(observers, NewPersister(f.repo))
	observers = append(observers, f.observers...)
	return New(visitorID, f.repo, f.logger, observers...)
}
