package service

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/alexanderdross/V0-Desiree/internal/cartstore"
	"github.com/alexanderdross/V0-Desiree/internal/catalog"
	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/event"
	pkgkafka "github.com/alexanderdross/V0-Desiree/pkg/kafka"
)

// --- In-memory cart repository ---

type memRepo struct {
	mu      sync.Mutex
	slots   map[string][]domain.LineItem
	loadErr error
}

func newMemRepo() *memRepo { return &memRepo{slots: map[string][]domain.LineItem{}} }

func (r *memRepo) Load(_ context.Context, id string) ([]domain.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return append([]domain.LineItem(nil), r.slots[id]...), nil
}

func (r *memRepo) Save(_ context.Context, id string, items []domain.LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[id] = append([]domain.LineItem(nil), items...)
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, id)
	return nil
}

func (r *memRepo) get(id string) []domain.LineItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slots[id]
}

// --- Mock event publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, e *pkgkafka.Event) error {
	args := m.Called(ctx, topic, e)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fixture struct {
	repo    *memRepo
	pub     *mockPublisher
	events  *event.Producer
	stores  *cartstore.Factory
	catalog *catalog.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newMemRepo()
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	events := event.NewProducer(pub, newTestLogger())
	return &fixture{
		repo:    repo,
		pub:     pub,
		events:  events,
		stores:  cartstore.NewFactory(repo, newTestLogger(), events),
		catalog: catalog.Default(),
	}
}

func (f *fixture) published(topic string) int {
	n := 0
	for _, c := range f.pub.Calls {
		if c.Method == "Publish" && c.Arguments.String(1) == topic {
			n++
		}
	}
	return n
}
