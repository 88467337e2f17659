package repository

import "github.com/gokatarajesh/trivia-api/internal/db/queries"

func questionRow(id, category int32) queries.Question {
	return queries.Question{
		ID:         id,
		Question:   "Question " + string(rune('A'+id-1)),
		Answer:     "Answer",
		Category:   category,
		Difficulty: 2,
	}
}
