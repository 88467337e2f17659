package question

import "context"

// PageSize is the number of questions returned per page.
const PageSize = 10

// Order selects how a full listing is sorted.
type Order int

const (
	// OrderByID sorts by question id ascending.
	OrderByID Order = iota
	// OrderByCategory sorts by category id, then question id.
	OrderByCategory
)

// Question is a single trivia item as stored in the bank and delivered to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Repository is the storage contract the question and quiz logic depend on.
// Every listing is ordered; Search matches question text case-insensitively.
type Repository interface {
	List(ctx context.Context, order Order) ([]Question, error)
	FilterByCategory(ctx context.Context, categoryID int) ([]Question, error)
	Search(ctx context.Context, term string) ([]Question, error)
	Insert(ctx context.Context, q Question) (Question, error)
	// Delete reports whether a row existed and was removed.
	Delete(ctx context.Context, id int) (bool, error)
}

// Page is one slice of an ordered result set plus the size of the whole set.
type Page struct {
	Questions []Question
	Total     int
}
