package http

import (
	"log/slog"
	"net/http"

	"github.com/zoobutik/zoobutik.bg/internal/domain"
	"github.com/zoobutik/zoobutik.bg/internal/service"
	"github.com/zoobutik/zoobutik.bg/pkg/httputil"
	"github.com/zoobutik/zoobutik.bg/pkg/money"
	"github.com/zoobutik/zoobutik.bg/pkg/validator"
)

// CheckoutHandler handles HTTP requests for placing orders.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// orderView is an order with its total rendered in both currencies.
type orderView struct {
	domain.Order
	TotalDual money.DualAmount `json:"total_dual"`
}

func newOrderView(o domain.Order) orderView {
	return orderView{
		Order:     o,
		TotalDual: money.Dual(o.Total),
	}
}

func newOrderViews(orders []domain.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views
}

// PlaceOrder handles POST /api/v1/checkout
//
// The session cart becomes the order. A logged-in customer's order is linked
// to their account; guests check out with customer details only.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionIDFromContext(r.Context())

	var input service.CheckoutInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	var userID *int64
	if claims, ok := claimsFromContext(r.Context()); ok {
		userID = &claims.UserID
	}

	order, err := h.service.PlaceOrder(r.Context(), sessionID, userID, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: newOrderView(*order)})
}
