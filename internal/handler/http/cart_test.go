package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	"github.com/zoobutik/zoobutik.bg/internal/service"
	apperrors "github.com/zoobutik/zoobutik.bg/pkg/errors"
	"github.com/zoobutik/zoobutik.bg/pkg/httputil"
)

// ============================================================================
// Mock CartRepository
// ============================================================================

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

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCartHandler(repo *mockCartRepository) *CartHandler {
	svc := service.NewCartService(repo, testLogger(), 24*time.Hour)
	return NewCartHandler(svc, testLogger())
}

// setupCartRouter creates a chi router matching the production route layout,
// including the SessionIDFromHeader middleware so the header requirement is
// tested end-to-end.
func setupCartRouter(handler *CartHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Get("/", handler.GetCart)
		r.Delete("/", handler.ClearCart)
		r.Post("/items", handler.AddItem)
		r.Put("/items/{productID}", handler.UpdateQuantity)
		r.Delete("/items/{productID}", handler.RemoveItem)
	})
	return r
}

func doRequest(t *testing.T, router *chi.Mux, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ============================================================================
// Tests
// ============================================================================

func TestGetCart_RequiresSessionHeader(t *testing.T) {
	router := setupCartRouter(testCartHandler(new(mockCartRepository)))

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cart", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestGetCart_EmptyCartWithDualTotals(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	router := setupCartRouter(testCartHandler(repo))

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cart", "sess-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Items     []json.RawMessage `json:"items"`
			ItemCount int               `json:"item_count"`
			Subtotal  struct {
				BGNFormatted string `json:"bgn_formatted"`
				EURFormatted string `json:"eur_formatted"`
			} `json:"subtotal"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Data.Items)
	assert.Equal(t, 0, resp.Data.ItemCount)
	assert.Equal(t, "0.00 лв", resp.Data.Subtotal.BGNFormatted)
	assert.Equal(t, "0.00 €", resp.Data.Subtotal.EURFormatted)
}

func TestAddItem_ReturnsUpdatedCart(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)
	router := setupCartRouter(testCartHandler(repo))

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cart/items", "sess-1", map[string]any{
		"product_id": 1,
		"name":       "Суха храна за кучета",
		"brand":      "Royal Canin",
		"price":      8999,
		"quantity":   2,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			ItemCount int `json:"item_count"`
			Items     []struct {
				Quantity  int `json:"quantity"`
				LineTotal struct {
					BGNFormatted string `json:"bgn_formatted"`
					EURFormatted string `json:"eur_formatted"`
				} `json:"line_total"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Data.ItemCount)
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, "179.98 лв", resp.Data.Items[0].LineTotal.BGNFormatted)
	assert.Equal(t, "92.02 €", resp.Data.Items[0].LineTotal.EURFormatted)
}

func TestAddItem_RejectsZeroQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	router := setupCartRouter(testCartHandler(repo))

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cart/items", "sess-1", map[string]any{
		"product_id": 1,
		"name":       "X",
		"price":      100,
		"quantity":   0,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_QUANTITY", resp.Error.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateQuantity_InvalidIDParameter(t *testing.T) {
	router := setupCartRouter(testCartHandler(new(mockCartRepository)))

	rec := doRequest(t, router, http.MethodPut, "/api/v1/cart/items/abc", "sess-1", map[string]any{"quantity": 2})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
}

func TestClearCart_ReturnsCleared(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Delete", mock.Anything, "sess-1").Return(nil)
	router := setupCartRouter(testCartHandler(repo))

	rec := doRequest(t, router, http.MethodDelete, "/api/v1/cart", "sess-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}
