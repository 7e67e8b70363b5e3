package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderdross/V0-Desiree/internal/catalog"
	"github.com/alexanderdross/V0-Desiree/internal/seo"
	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
	"github.com/alexanderdross/V0-Desiree/pkg/httputil"
)

// CatalogHandler serves the read-only rental catalog.
type CatalogHandler struct {
	catalog  *catalog.Catalog
	baseURL  string
	currency string
	logger   *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(cat *catalog.Catalog, baseURL, currency string, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  cat,
		baseURL:  baseURL,
		currency: currency,
		logger:   logger,
	}
}

type categoryResponse struct {
	Category      string      `json:"category"`
	SubCategories []string    `json:"subCategories,omitempty"`
	Entries       []entryView `json:"entries"`
}

type entryResponse struct {
	Entry  entryView   `json:"entry"`
	Schema seo.Product `json:"schema"`
}

// ListCategory handles GET /api/v1/catalog/{category}?sub=
func (h *CatalogHandler) ListCategory(w http.ResponseWriter, r *http.Request) {
	category, err := catalog.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		httputil.WriteError(w, r, apperrors.NotFound("category", chi.URLParam(r, "category")), h.logger)
		return
	}

	entries := h.catalog.Filter(category, r.URL.Query().Get("sub"))
	httputil.WriteData(w, http.StatusOK, categoryResponse{
		Category:      string(category),
		SubCategories: h.catalog.SubCategories(category),
		Entries:       newEntryViews(entries),
	})
}

// GetEntry handles GET /api/v1/catalog/{category}/{id}
func (h *CatalogHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	raw, id := chi.URLParam(r, "category"), chi.URLParam(r, "id")
	category, err := catalog.ParseCategory(raw)
	if err != nil {
		httputil.WriteError(w, r, apperrors.NotFound("category", raw), h.logger)
		return
	}

	entry, ok := h.catalog.FindByID(category, id)
	if !ok {
		httputil.WriteError(w, r, apperrors.NotFound(string(category.Kind()), id), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, entryResponse{
		Entry:  newEntryView(entry),
		Schema: seo.ProductSchema(h.baseURL, entry, h.currency),
	})
}
