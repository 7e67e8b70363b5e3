package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/service"
	"github.com/alexanderdross/V0-Desiree/pkg/httputil"
	"github.com/alexanderdross/V0-Desiree/pkg/validator"
)

// CheckoutClientConfig is the public part of the payment setup the browser
// needs to mount the embedded widget.
type CheckoutClientConfig struct {
	Provider       string `json:"provider"`
	PublishableKey string `json:"publishableKey,omitempty"`
	Currency       string `json:"currency"`
}

// CheckoutHandler handles HTTP requests for checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	client  CheckoutClientConfig
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, client CheckoutClientConfig, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		client:  client,
		logger:  logger,
	}
}

// CreateSessionRequest is the JSON body for opening a checkout session. The
// line items always come from the visitor's stored cart.
type CreateSessionRequest struct {
	CustomerDetails domain.BookingDetails `json:"customerDetails"`
}

// CreateSession handles POST /api/v1/checkout/sessions
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := validator.DecodeJSON(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	result, err := h.service.StartCheckout(r.Context(), visitorID(r), req.CustomerDetails)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, result)
}

// GetSession handles GET /api/v1/checkout/sessions/{id}. It is the landing
// call of the success page and clears the cart once payment is confirmed, so
// unlike the other GETs it has a side effect. Only a paid session clears, and
// a repeat (reload or prefetch) finds the cart already empty and does not
// announce the booking again.
func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	conf, err := h.service.Confirm(r.Context(), visitorID(r), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, conf)
}

// Config handles GET /api/v1/checkout/config
func (h *CheckoutHandler) Config(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.client)
}
