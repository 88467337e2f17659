package question

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/pkg/http/bind"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	"github.com/gokatarajesh/trivia-api/pkg/http/response"
)

type categoryLister interface {
	All(ctx context.Context) (map[int]string, error)
}

// HTTPHandler exposes REST endpoints for browsing and editing the question bank.
type HTTPHandler struct {
	svc        *Service
	categories categoryLister
	logger     zerolog.Logger
}

// NewHTTPHandler constructs a question HTTP handler.
func NewHTTPHandler(svc *Service, categories categoryLister, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:        svc,
		categories: categories,
		logger:     logger.With().Str("component", "question_http").Logger(),
	}
}

// CreateRequest is the body of POST /questions.
type CreateRequest struct {
	Question   *string   `json:"question" validate:"required,min=1"`
	Answer     *string   `json:"answer" validate:"required,min=1"`
	Category   *bind.Int `json:"category" validate:"required"`
	Difficulty *bind.Int `json:"difficulty" validate:"required"`
}

// SearchRequest is the body of POST /questions/search.
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// HandleCollection serves GET and POST on /questions?page=N.
func (h *HTTPHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

func (h *HTTPHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := h.svc.List(ctx, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, err)
		return
	}
	if len(page.Questions) == 0 {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound)
		return
	}

	categories, err := h.categories.All(ctx)
	if err != nil {
		h.fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"categories":       categories,
		"current_category": nil,
	})
}

func (h *HTTPHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := bind.JSON(r, &req); err != nil {
		h.failBind(w, err)
		return
	}

	q := Question{
		Question:   *req.Question,
		Answer:     *req.Answer,
		CategoryID: int(*req.Category),
		Difficulty: int(*req.Difficulty),
	}
	created, page, err := h.svc.Create(r.Context(), q, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{
		"success":           true,
		"created":           created.ID,
		"current_questions": page.Questions,
		"total_questions":   page.Total,
	})
}

// HandleItem serves DELETE /questions/{id}.
func (h *HTTPHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidQuestionID, "question id must be an integer", "id")
		return
	}

	page, err := h.svc.Delete(r.Context(), id, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"deleted":           id,
		"current_questions": page.Questions,
		"total_questions":   page.Total,
	})
}

// HandleSearch serves POST /questions/search?page=N.
func (h *HTTPHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req SearchRequest
	if err := bind.JSON(r, &req); err != nil {
		h.failBind(w, err)
		return
	}

	page, err := h.svc.Search(r.Context(), req.SearchTerm, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"current_category": nil,
	})
}

// HandleByCategory serves GET /categories/{id}/questions?page=N.
func (h *HTTPHandler) HandleByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	categoryID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidCategoryID, "category id must be an integer", "id")
		return
	}

	page, err := h.svc.InCategory(r.Context(), categoryID, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"current_category": categoryID,
	})
}

func (h *HTTPHandler) failBind(w http.ResponseWriter, err error) {
	var fieldErr *bind.FieldError
	if errors.As(err, &fieldErr) {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, fieldErr.Error(), fieldErr.Field)
		return
	}
	httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest)
}

func (h *HTTPHandler) fail(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, validationErr.Error(), validationErr.Field)
	case errors.Is(err, ErrNotFound):
		httperrors.RespondUnprocessable(w, httperrors.ErrCodeQuestionNotFound)
	case errors.Is(err, ErrPersistence):
		httperrors.RespondUnprocessable(w, httperrors.ErrCodeUnprocessable)
	default:
		h.logger.Error().Err(err).Msg("question request failed")
		httperrors.RespondInternalError(w)
	}
}
