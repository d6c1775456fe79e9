package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	"github.com/zoobutik/zoobutik.bg/internal/repository"
	"github.com/zoobutik/zoobutik.bg/internal/service"
	"github.com/zoobutik/zoobutik.bg/pkg/httputil"
	"github.com/zoobutik/zoobutik.bg/pkg/money"
	"github.com/zoobutik/zoobutik.bg/pkg/pagination"
	"github.com/zoobutik/zoobutik.bg/pkg/validator"
)

// CatalogHandler handles HTTP requests for product endpoints, both the public
// storefront and the admin back-office.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// productView is a product with its prices rendered in both currencies.
type productView struct {
	domain.Product
	PriceDual         money.DualAmount  `json:"price_dual"`
	OriginalPriceDual *money.DualAmount `json:"original_price_dual,omitempty"`
}

func newProductView(p domain.Product) productView {
	view := productView{
		Product:   p,
		PriceDual: money.Dual(p.Price),
	}
	if p.OnSale() {
		dual := money.Dual(p.OriginalPrice)
		view.OriginalPriceDual = &dual
	}
	return view
}

func newProductViews(products []domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}

// --- Storefront ---

// Browse handles GET /api/v1/products
//
// Query parameters: category, brand, price_min, price_max, search, sort.
// Prices are in stotinki; sort is one of name, price_asc, price_desc.
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	query := service.BrowseQuery{
		CategoryID: queryInt64(r, "category"),
		Brand:      r.URL.Query().Get("brand"),
		PriceMin:   queryInt64(r, "price_min"),
		PriceMax:   queryInt64(r, "price_max"),
		Search:     r.URL.Query().Get("search"),
		Sort:       r.URL.Query().Get("sort"),
	}

	products, err := h.service.Browse(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newProductViews(products)})
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newProductView(*product)})
}

// ListBrands handles GET /api/v1/products/brands
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.ListBrands(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brands})
}

// ListFeatured handles GET /api/v1/products/featured
func (h *CatalogHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListFeatured(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newProductViews(products)})
}

// --- Admin ---

// ListProducts handles GET /api/v1/admin/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	filter := repository.ProductFilter{
		Page:    params.Page,
		PerPage: params.PerPage,
	}
	if id := queryInt64(r, "category"); id > 0 {
		filter.CategoryID = &id
	}
	if brand := r.URL.Query().Get("brand"); brand != "" {
		filter.Brand = &brand
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	if v := r.URL.Query().Get("in_stock"); v != "" {
		inStock := v == "true"
		filter.InStock = &inStock
	}

	products, total, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result := pagination.NewResult(newProductViews(products), total, params)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// CreateProduct handles POST /api/v1/admin/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input service.ProductInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: newProductView(*product)})
}

// UpdateProduct handles PUT /api/v1/admin/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var input service.ProductInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newProductView(*product)})
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// SetFeaturedRequest is the JSON request body for replacing the featured list.
type SetFeaturedRequest struct {
	ProductIDs []int64 `json:"product_ids" validate:"required,max=20,dive,gt=0"`
}

// SetFeatured handles PUT /api/v1/admin/products/featured
func (h *CatalogHandler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	var req SetFeaturedRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.SetFeatured(r.Context(), req.ProductIDs); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "updated"}})
}

// queryInt64 parses an optional non-negative int64 query parameter, returning
// 0 when absent or malformed.
func queryInt64(r *http.Request, name string) int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
