package quiz

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/pkg/http/bind"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/response"
)

// allCategoriesID is the category id clients send to play across every category.
const allCategoriesID = 0

// HTTPHandler serves quiz turns.
type HTTPHandler struct {
	selector *Selector
	logger   zerolog.Logger
}

// NewHTTPHandler constructs a quiz HTTP handler.
func NewHTTPHandler(selector *Selector, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		selector: selector,
		logger:   logger.With().Str("component", "quiz_http").Logger(),
	}
}

// CategoryRef identifies the quiz scope; id 0 means all categories.
type CategoryRef struct {
	ID   *bind.Int `json:"id" validate:"required"`
	Type string    `json:"type"`
}

// NextRequest is the body of POST /quizzes.
type NextRequest struct {
	QuizCategory      *CategoryRef `json:"quiz_category" validate:"required"`
	PreviousQuestions []bind.Int   `json:"previous_questions"`
}

// Scope converts the requested category into a selection scope.
func (r NextRequest) Scope() Scope {
	id := int(*r.QuizCategory.ID)
	if id == allCategoriesID {
		return AllCategories()
	}
	return InCategory(id)
}

// HandleNext responds with one question the player has not seen yet.
// When the scope is used up the response carries a null question and exhausted=true.
// Route: POST /quizzes
func (h *HTTPHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req NextRequest
	if err := bind.JSON(r, &req); err != nil {
		var fieldErr *bind.FieldError
		if errors.As(err, &fieldErr) {
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, fieldErr.Error(), fieldErr.Field)
			return
		}
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest)
		return
	}

	scope := req.Scope()
	next, err := h.selector.Next(r.Context(), scope, bind.Ints(req.PreviousQuestions))
	if err != nil {
		if errors.Is(err, ErrPoolExhausted) {
			metrics.QuizSelections.WithLabelValues(metrics.OutcomeExhausted).Inc()
			response.JSON(w, http.StatusOK, map[string]interface{}{
				"success":   true,
				"question":  nil,
				"exhausted": true,
			})
			return
		}
		h.logger.Error().Err(err).Stringer("scope", scope).Msg("quiz selection failed")
		httperrors.RespondInternalError(w)
		return
	}

	metrics.QuizSelections.WithLabelValues(metrics.OutcomeServed).Inc()
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": next,
	})
}
