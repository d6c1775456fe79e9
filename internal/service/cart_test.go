package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
)

// --- Mock Repository ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newCartService(repo *mockCartRepository) *CartService {
	return NewCartService(repo, newTestLogger(), 30*24*time.Hour)
}

func cartWithLine(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Items: []domain.CartLine{
			{
				ProductSnapshot: domain.ProductSnapshot{
					ProductID: 1,
					Name:      "Premium суха храна за кучета",
					Brand:     "Royal Canin",
					Price:     8999,
				},
				Quantity: 2,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// --- GetCart ---

func TestGetCart_MissingSnapshotYieldsEmptyCart(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))

	cart, status, err := svc.GetCart(ctx, "sess-1")

	require.NoError(t, err)
	assert.Equal(t, RestoreEmpty, status)
	assert.Equal(t, "sess-1", cart.SessionID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount())
	assert.Equal(t, int64(0), cart.Subtotal())

	repo.AssertExpectations(t)
}

func TestGetCart_CorruptSnapshotRecoversToEmpty(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.ErrSnapshotCorrupt)

	cart, status, err := svc.GetCart(ctx, "sess-1")

	require.NoError(t, err)
	assert.Equal(t, RestoreCorrupt, status)
	assert.Empty(t, cart.Items)

	repo.AssertExpectations(t)
}

func TestGetCart_Existing(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	expected := cartWithLine("sess-1")
	repo.On("Get", ctx, "sess-1").Return(expected, nil)

	cart, status, err := svc.GetCart(ctx, "sess-1")

	require.NoError(t, err)
	assert.Equal(t, RestoreOK, status)
	assert.Equal(t, expected, cart)
}

func TestGetCart_EmptySessionID(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)

	_, _, err := svc.GetCart(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- AddItem ---

func TestAddItem_NewLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, "sess-1", AddItemInput{
		ProductID: 1, Name: "Гранули", Price: 8999, Quantity: 2,
	})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, int64(17998), cart.Subtotal())

	repo.AssertExpectations(t)
}

func TestAddItem_MergesByProductID(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	existing := cartWithLine("sess-1")
	repo.On("Get", ctx, "sess-1").Return(existing, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	// Product 1 already has quantity 2; adding 3 more yields one line of 5.
	cart, err := svc.AddItem(ctx, "sess-1", AddItemInput{
		ProductID: 1, Name: "Premium суха храна за кучета", Price: 8999, Quantity: 3,
	})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.ItemCount())
}

func TestAddItem_MergeKeepsOriginalSnapshot(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	existing := cartWithLine("sess-1")
	repo.On("Get", ctx, "sess-1").Return(existing, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, "sess-1", AddItemInput{
		ProductID: 1, Name: "Renamed", Price: 9999, Quantity: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "Premium суха храна за кучета", cart.Items[0].Name)
	assert.Equal(t, int64(8999), cart.Items[0].Price)
}

func TestAddItem_ZeroQuantityRejected(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)

	_, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{
		ProductID: 1, Name: "X", Price: 100, Quantity: 0,
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidQuantity)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddItem_NegativeQuantityRejected(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)

	_, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{
		ProductID: 1, Name: "X", Price: 100, Quantity: -3,
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidQuantity)
}

func TestAddItem_PersistenceFailureIsSwallowed(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(assert.AnError)

	cart, err := svc.AddItem(ctx, "sess-1", AddItemInput{
		ProductID: 1, Name: "X", Price: 100, Quantity: 1,
	})

	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

// --- UpdateQuantity ---

func TestUpdateQuantity_SetsQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithLine("sess-1"), nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.UpdateQuantity(ctx, "sess-1", 1, 7)

	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithLine("sess-1"), nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.UpdateQuantity(ctx, "sess-1", 1, 0)

	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestUpdateQuantity_UnknownProductIsNoop(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	existing := cartWithLine("sess-1")
	repo.On("Get", ctx, "sess-1").Return(existing, nil)

	cart, err := svc.UpdateQuantity(ctx, "sess-1", 999, 5)

	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- RemoveItem ---

func TestRemoveItem_RemovesLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(cartWithLine("sess-1"), nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.RemoveItem(ctx, "sess-1", 1)

	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestRemoveItem_UnknownProductIsNoop(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	existing := cartWithLine("sess-1")
	repo.On("Get", ctx, "sess-1").Return(existing, nil)

	cart, err := svc.RemoveItem(ctx, "sess-1", 999)

	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- ClearCart ---

func TestClearCart_DeletesSnapshot(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "sess-1").Return(nil)

	require.NoError(t, svc.ClearCart(ctx, "sess-1"))
	repo.AssertExpectations(t)
}

func TestClearCart_DeleteFailureIsSwallowed(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "sess-1").Return(assert.AnError)

	assert.NoError(t, svc.ClearCart(ctx, "sess-1"))
}

// --- Derived totals never drift ---

func TestCart_TotalsRecomputedAfterEveryMutation(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newCartService(repo)
	ctx := context.Background()

	state := &domain.Cart{SessionID: "sess-1", Items: []domain.CartLine{}}
	repo.On("Get", ctx, "sess-1").Return(state, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, "sess-1", AddItemInput{ProductID: 1, Name: "A", Price: 1000, Quantity: 2})
	require.NoError(t, err)
	cart, err = svc.AddItem(ctx, "sess-1", AddItemInput{ProductID: 2, Name: "B", Price: 500, Quantity: 3})
	require.NoError(t, err)
	cart, err = svc.UpdateQuantity(ctx, "sess-1", 1, 1)
	require.NoError(t, err)

	var wantCount int
	var wantTotal int64
	for _, line := range cart.Items {
		wantCount += line.Quantity
		wantTotal += line.Price * int64(line.Quantity)
	}
	assert.Equal(t, wantCount, cart.ItemCount())
	assert.Equal(t, wantTotal, cart.Subtotal())
	assert.Equal(t, 4, cart.ItemCount())
	assert.Equal(t, int64(2500), cart.Subtotal())
}
