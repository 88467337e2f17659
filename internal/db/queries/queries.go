// Package queries holds the SQL used by the Postgres repositories.
package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries runs the application's statements against a DBTX.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Question mirrors a row of the questions table.
type Question struct {
	ID         int32  `db:"id"`
	Question   string `db:"question"`
	Answer     string `db:"answer"`
	Category   int32  `db:"category"`
	Difficulty int32  `db:"difficulty"`
}

// Category mirrors a row of the categories table.
type Category struct {
	ID   int32  `db:"id"`
	Type string `db:"type"`
}

// InsertQuestionParams holds the columns of a new question row.
type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int32
	Difficulty int32
}

const questionColumns = `id, question, answer, category, difficulty`

const listQuestionsByID = `SELECT ` + questionColumns + ` FROM questions ORDER BY id`

func (q *Queries) ListQuestionsByID(ctx context.Context) ([]Question, error) {
	return q.questions(ctx, listQuestionsByID)
}

const listQuestionsByCategory = `SELECT ` + questionColumns + ` FROM questions ORDER BY category, id`

func (q *Queries) ListQuestionsByCategory(ctx context.Context) ([]Question, error) {
	return q.questions(ctx, listQuestionsByCategory)
}

const listQuestionsInCategory = `SELECT ` + questionColumns + ` FROM questions WHERE category = $1 ORDER BY id`

func (q *Queries) ListQuestionsInCategory(ctx context.Context, category int32) ([]Question, error) {
	return q.questions(ctx, listQuestionsInCategory, category)
}

// pattern is a LIKE pattern with its wildcards already escaped by the caller.
const searchQuestions = `SELECT ` + questionColumns + ` FROM questions WHERE question ILIKE '%' || $1 || '%' ESCAPE '\' ORDER BY id`

func (q *Queries) SearchQuestions(ctx context.Context, pattern string) ([]Question, error) {
	return q.questions(ctx, searchQuestions, pattern)
}

const insertQuestion = `INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING ` + questionColumns

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	rows, err := q.db.Query(ctx, insertQuestion, arg.Question, arg.Answer, arg.Category, arg.Difficulty)
	if err != nil {
		return Question{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Question])
}

const deleteQuestion = `DELETE FROM questions WHERE id = $1`

// DeleteQuestion returns the number of rows removed.
func (q *Queries) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listCategories = `SELECT id, type FROM categories ORDER BY id`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Category])
}

func (q *Queries) questions(ctx context.Context, sql string, args ...any) ([]Question, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Question])
}
