package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/repository"
)

func setupTestRedis(t *testing.T) (*CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := NewCartRepository(client, "sol-social-cart", 24*time.Hour)
	return repo, mr
}

func sampleItems() []domain.LineItem {
	return []domain.LineItem{
		{ID: "classic-white", Name: "Classic White Mobile Bar Cart", Price: 150, Quantity: 1, Image: "/cart.jpg", Kind: domain.KindCart},
		{ID: "beach-umbrella:blue", Name: "Beach Umbrella (Blue)", Price: 25, Quantity: 2, Image: "/u.jpg", Kind: domain.KindEquipment, Variant: "Blue"},
	}
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestCartRepository_Load_Missing(t *testing.T) {
	repo, _ := setupTestRedis(t)

	items, err := repo.Load(context.Background(), "visitor-1")
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestCartRepository_Load_SlotFormat(t *testing.T) {
	repo, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("sol-social-cart:visitor-1",
		`[{"id":"classic-white","name":"Classic White","price":150,"quantity":2,"image":"/c.jpg","type":"cart"}]`))

	items, err := repo.Load(context.Background(), "visitor-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "classic-white", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, domain.KindCart, items[0].Kind)
}

func TestCartRepository_Load_Corrupt(t *testing.T) {
	repo, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("sol-social-cart:visitor-1", "{not json"))

	_, err := repo.Load(context.Background(), "visitor-1")
	require.ErrorIs(t, err, repository.ErrCorruptSlot)
}

func TestCartRepository_Load_ConnectionError(t *testing.T) {
	repo, mr := setupTestRedis(t)
	mr.Close()

	_, err := repo.Load(context.Background(), "visitor-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrCorruptSlot)
}

// ---------------------------------------------------------------------------
// Save / Delete
// ---------------------------------------------------------------------------

func TestCartRepository_SaveAndLoad(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "visitor-1", sampleItems()))
	assert.True(t, mr.Exists("sol-social-cart:visitor-1"))
	assert.Equal(t, 24*time.Hour, mr.TTL("sol-social-cart:visitor-1"))

	items, err := repo.Load(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, sampleItems(), items)
}

func TestCartRepository_SaveEmptyWritesArray(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, repo.Save(context.Background(), "visitor-1", nil))
	got, err := mr.Get("sol-social-cart:visitor-1")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestCartRepository_Delete(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "visitor-1", sampleItems()))
	require.NoError(t, repo.Delete(ctx, "visitor-1"))
	assert.False(t, mr.Exists("sol-social-cart:visitor-1"))

	// deleting a missing slot is not an error
	require.NoError(t, repo.Delete(ctx, "visitor-1"))
}

func TestCartRepository_VisitorsAreIsolated(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "a", sampleItems()))
	items, err := repo.Load(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNewCartRepository_DefaultSlotName(t *testing.T) {
	repo := NewCartRepository(nil, "", 0)
	assert.Equal(t, "sol-social-cart:v", repo.Key("v"))
}
