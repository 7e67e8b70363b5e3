package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderdross/V0-Desiree/internal/catalog"
	"github.com/alexanderdross/V0-Desiree/internal/seo"
	"github.com/alexanderdross/V0-Desiree/pkg/httputil"
)

// SiteHandler serves site-wide public endpoints.
type SiteHandler struct {
	catalog      *catalog.Catalog
	baseURL      string
	turnstileKey string
	lastModified time.Time
	logger       *slog.Logger
}

// NewSiteHandler creates a new site handler. turnstileKey is the public
// widget key handed to the contact form.
func NewSiteHandler(cat *catalog.Catalog, baseURL, turnstileKey string, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{
		catalog:      cat,
		baseURL:      baseURL,
		turnstileKey: turnstileKey,
		lastModified: time.Now().UTC(),
		logger:       logger,
	}
}

type siteKeyResponse struct {
	SiteKey string `json:"siteKey"`
}

// TurnstileSiteKey handles GET /api/v1/turnstile/site-key
func (h *SiteHandler) TurnstileSiteKey(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, siteKeyResponse{SiteKey: h.turnstileKey})
}

// Sitemap handles GET /sitemap.xml
func (h *SiteHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	set := seo.BuildSitemap(h.baseURL, h.catalog, h.lastModified)
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := seo.WriteSitemap(w, set); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write sitemap", slog.String("error", err.Error()))
	}
}
