package category

import (
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/response"
)

// HTTPHandler exposes the category listing.
type HTTPHandler struct {
	catalog *Catalog
	logger  zerolog.Logger
}

// NewHTTPHandler constructs a category HTTP handler.
func NewHTTPHandler(catalog *Catalog, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		catalog: catalog,
		logger:  logger.With().Str("component", "category_http").Logger(),
	}
}

// HandleList responds with every category and their count.
// Route: GET /categories
func (h *HTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	types, err := h.catalog.All(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("category listing failed")
		httperrors.RespondInternalError(w)
		return
	}
	total, err := h.catalog.Count(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("category count failed")
		httperrors.RespondInternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"categories":     types,
		"total_category": total,
	})
}
