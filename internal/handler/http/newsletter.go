package http

import (
	"log/slog"
	"net/http"

	"github.com/zoobutik/zoobutik.bg/internal/service"
	"github.com/zoobutik/zoobutik.bg/pkg/httputil"
	"github.com/zoobutik/zoobutik.bg/pkg/pagination"
	"github.com/zoobutik/zoobutik.bg/pkg/validator"
)

// NewsletterHandler handles HTTP requests for newsletter endpoints.
type NewsletterHandler struct {
	service *service.NewsletterService
	logger  *slog.Logger
}

// NewNewsletterHandler creates a new newsletter HTTP handler.
func NewNewsletterHandler(svc *service.NewsletterService, logger *slog.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		service: svc,
		logger:  logger,
	}
}

// Subscribe handles POST /api/v1/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var input service.SubscribeInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	subscriber, err := h.service.Subscribe(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: subscriber})
}

// UnsubscribeRequest is the JSON request body for removing a subscription.
type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Unsubscribe handles POST /api/v1/newsletter/unsubscribe
func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req UnsubscribeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.Unsubscribe(r.Context(), req.Email); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "unsubscribed"}})
}

// ListSubscribers handles GET /api/v1/admin/newsletter/subscribers
func (h *NewsletterHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	subscribers, total, err := h.service.ListSubscribers(r.Context(), params.Page, params.PerPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result := pagination.NewResult(subscribers, total, params)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
