package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Service pairs repository reads and writes with pagination for the HTTP layer.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "question_service").Logger(),
	}
}

// List returns one page of the whole bank ordered by category.
func (s *Service) List(ctx context.Context, page int) (Page, error) {
	all, err := s.repo.List(ctx, OrderByCategory)
	if err != nil {
		return Page{}, fmt.Errorf("list questions: %w", err)
	}
	return paged(page, all), nil
}

// Search returns one page of questions whose text contains term, ignoring case.
func (s *Service) Search(ctx context.Context, term string, page int) (Page, error) {
	if strings.TrimSpace(term) == "" {
		return Page{}, NewValidationError("searchTerm", "search term is required")
	}
	found, err := s.repo.Search(ctx, term)
	if err != nil {
		return Page{}, fmt.Errorf("search questions: %w", err)
	}
	return paged(page, found), nil
}

// InCategory returns one page of the questions filed under categoryID.
func (s *Service) InCategory(ctx context.Context, categoryID, page int) (Page, error) {
	found, err := s.repo.FilterByCategory(ctx, categoryID)
	if err != nil {
		return Page{}, fmt.Errorf("filter questions by category %d: %w", categoryID, err)
	}
	return paged(page, found), nil
}

// Create stores q and returns it with its assigned id, together with the
// requested page of the id-ordered bank so new questions land on the last page.
// Once the insert succeeds Create reports success; a failed listing yields an empty page.
func (s *Service) Create(ctx context.Context, q Question, page int) (Question, Page, error) {
	if strings.TrimSpace(q.Question) == "" {
		return Question{}, Page{}, NewValidationError("question", "question text is required")
	}
	if strings.TrimSpace(q.Answer) == "" {
		return Question{}, Page{}, NewValidationError("answer", "answer text is required")
	}

	q.ID = 0
	created, err := s.repo.Insert(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).Int("category", q.CategoryID).Msg("insert question failed")
		return Question{}, Page{}, fmt.Errorf("insert question: %w", asPersistence(err))
	}

	s.logger.Info().Int("question_id", created.ID).Msg("question created")
	all, err := s.repo.List(ctx, OrderByID)
	if err != nil {
		s.logger.Error().Err(err).Int("question_id", created.ID).Msg("list after create failed")
		return created, Page{Questions: []Question{}}, nil
	}
	return created, paged(page, all), nil
}

// Delete removes the question with id and returns the requested page of what remains.
// Deleting a missing question yields ErrNotFound.
func (s *Service) Delete(ctx context.Context, id, page int) (Page, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("question_id", id).Msg("delete question failed")
		return Page{}, fmt.Errorf("delete question %d: %w", id, asPersistence(err))
	}
	if !removed {
		return Page{}, fmt.Errorf("delete question %d: %w", id, ErrNotFound)
	}

	remaining, err := s.repo.List(ctx, OrderByCategory)
	if err != nil {
		return Page{}, fmt.Errorf("list questions: %w", err)
	}
	s.logger.Info().Int("question_id", id).Msg("question deleted")
	return paged(page, remaining), nil
}

func paged(page int, all []Question) Page {
	return Page{
		Questions: Paginate(page, PageSize, all),
		Total:     len(all),
	}
}

func asPersistence(err error) error {
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
