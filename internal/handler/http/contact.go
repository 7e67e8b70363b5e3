package http

import (
	"log/slog"
	"net/http"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/service"
	"github.com/alexanderdross/V0-Desiree/pkg/httputil"
	"github.com/alexanderdross/V0-Desiree/pkg/middleware"
	"github.com/alexanderdross/V0-Desiree/pkg/validator"
)

// ContactHandler handles the contact form endpoint.
type ContactHandler struct {
	service *service.ContactService
	logger  *slog.Logger
}

// NewContactHandler creates a new contact HTTP handler.
func NewContactHandler(svc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		service: svc,
		logger:  logger,
	}
}

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact and /api/v1/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactRequest
	if err := validator.DecodeJSON(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	if _, err := h.service.Submit(r.Context(), req, middleware.ClientIP(r)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, contactResponse{
		Success: true,
		Message: "Contact form submitted successfully",
	})
}
