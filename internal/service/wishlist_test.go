package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
)

// --- Mock Repository ---

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) Get(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wishlist), args.Error(1)
}

func (m *mockWishlistRepository) Save(ctx context.Context, wishlist *domain.Wishlist) error {
	args := m.Called(ctx, wishlist)
	return args.Error(0)
}

func (m *mockWishlistRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func newWishlistService(repo *mockWishlistRepository) *WishlistService {
	return NewWishlistService(repo, newTestLogger())
}

func wishlistWithEntry(sessionID string) *domain.Wishlist {
	now := time.Now().UTC()
	return &domain.Wishlist{
		SessionID: sessionID,
		Items: []domain.ProductSnapshot{
			{ProductID: 1, Name: "Котешка тоалетна", Brand: "Trixie", Price: 4550},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// --- GetWishlist ---

func TestGetWishlist_MissingSnapshotYieldsEmpty(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newWishlistService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.NotFound("wishlist", "sess-1"))

	wl, status, err := svc.GetWishlist(ctx, "sess-1")

	require.NoError(t, err)
	assert.Equal(t, RestoreEmpty, status)
	assert.Empty(t, wl.Items)
}

func TestGetWishlist_CorruptSnapshotRecoversToEmpty(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newWishlistService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.ErrSnapshotCorrupt)

	wl, status, err := svc.GetWishlist(ctx, "sess-1")

	require.NoError(t, err)
	assert.Equal(t, RestoreCorrupt, status)
	assert.Empty(t, wl.Items)
}

// --- AddItem ---

func TestWishlistAddItem_Appends(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newWishlistService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.NotFound("wishlist", "sess-1"))
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Wishlist")).Return(nil)

	wl, err := svc.AddItem(ctx, "sess-1", AddWishlistInput{ProductID: 1, Name: "X", Price: 100})

	require.NoError(t, err)
	require.Len(t, wl.Items, 1)
	assert.True(t, wl.Contains(1))
}

func TestWishlistAddItem_DuplicateIsNoop(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newWishlistService(repo)
	ctx := context.Background()

	existing := wishlistWithEntry("sess-1")
	repo.On("Get", ctx, "sess-1").Return(existing, nil)

	wl, err := svc.AddItem(ctx, "sess-1", AddWishlistInput{ProductID: 1, Name: "Котешка тоалетна", Price: 4550})

	require.NoError(t, err)
	assert.Len(t, wl.Items, 1)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWishlistAddItem_NeverContainsDuplicates(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newWishlistService(repo)
	ctx := context.Background()

	state := &domain.Wishlist{SessionID: "sess-1", Items: []domain.ProductSnapshot{}}
	repo.On("Get", ctx, "sess-1").Return(state, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Wishlist")).Return(nil)

	for _, id := range []int64{1, 2, 1, 3, 2, 1} {
		var err error
		_, err = svc.AddItem(ctx, "sess-1", AddWishlistInput{ProductID: id, Name: "P", Price: 100})
		require.NoError(t, err)
	}

	seen := map[int64]int{}
	for _, item := range state.Items {
		seen[item.ProductID]++
	}
	assert.Len(t, state.Items, 3)
	for id, count := range seen {
		assert.Equal(t, 1, count, "product %d appears more than once", id)
	}
}

// --- RemoveItem ---

func TestWishlistRemoveItem_Removes(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newWishlistService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(wishlistWithEntry("sess-1"), nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Wishlist")).Return(nil)

	wl, err := svc.RemoveItem(ctx, "sess-1", 1)

	require.NoError(t, err)
	assert.Empty(t, wl.Items)
}

func TestWishlistRemoveItem_UnknownIsNoop(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newWishlistService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(wishlistWithEntry("sess-1"), nil)

	wl, err := svc.RemoveItem(ctx, "sess-1", 999)

	require.NoError(t, err)
	assert.Len(t, wl.Items, 1)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- Clear ---

func TestWishlistClear_DeletesSnapshot(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newWishlistService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "sess-1").Return(nil)

	require.NoError(t, svc.Clear(ctx, "sess-1"))
	repo.AssertExpectations(t)
}
