package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
)

func setupWishlistRepo(t *testing.T) (*WishlistRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := NewWishlistRepository(client, 24*time.Hour)
	return repo, mr
}

func sampleWishlist() *domain.Wishlist {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Wishlist{
		SessionID: "sess-001",
		Items: []domain.ProductSnapshot{
			{ProductID: 1, Name: "Котешка тоалетна", Brand: "Trixie", Price: 4550},
			{ProductID: 7, Name: "Гризалка", Brand: "Trixie", Price: 1299},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestWishlistRepository_RoundTrip(t *testing.T) {
	repo, _ := setupWishlistRepo(t)

	wl := sampleWishlist()
	require.NoError(t, repo.Save(context.Background(), wl))

	got, err := repo.Get(context.Background(), wl.SessionID)
	require.NoError(t, err)
	assert.Equal(t, wl, got)
}

func TestWishlistRepository_Get_NotFound(t *testing.T) {
	repo, _ := setupWishlistRepo(t)

	got, err := repo.Get(context.Background(), "nonexistent-session")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWishlistRepository_Get_CorruptSnapshot(t *testing.T) {
	repo, mr := setupWishlistRepo(t)

	require.NoError(t, mr.Set("wishlist:sess-bad", "not json at all"))

	got, err := repo.Get(context.Background(), "sess-bad")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrSnapshotCorrupt)
}

func TestWishlistRepository_Delete_RemovesKey(t *testing.T) {
	repo, mr := setupWishlistRepo(t)

	wl := sampleWishlist()
	require.NoError(t, repo.Save(context.Background(), wl))
	require.NoError(t, repo.Delete(context.Background(), wl.SessionID))

	assert.False(t, mr.Exists("wishlist:"+wl.SessionID))
}
