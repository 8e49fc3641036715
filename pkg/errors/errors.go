package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingToken    = errors.New("missing API token")
	ErrMissingDueDate  = errors.New("quiz has no due date")
	ErrUnexpectedShape = errors.New("unexpected response shape")
	ErrEmptyCSV        = errors.New("gradebook CSV is empty")
	ErrMissingIDColumn = errors.New("gradebook CSV header has no ID column")
)

// APIStatusError is returned when the Canvas API answers with a non-2xx
// status. The run stops; there is no retry or partial-result fallback.
type APIStatusError struct {
	URL    string
	Status int
	Body   string
}

func (e APIStatusError) Error() string {
	return fmt.Sprintf("API request to %s failed with status %d: %s",
		e.URL, e.Status, e.Body)
}

// ColumnNotFoundError reports that no gradebook column could be resolved
// for a quiz, naming every source that was consulted.
type ColumnNotFoundError struct {
	QuizID    string
	Consulted []string
}

func (e ColumnNotFoundError) Error() string {
	return fmt.Sprintf("gradebook column for quiz %s not found (checked %s); "+
		"run 'quizgrade build-index' to refresh the metadata index, add an entry "+
		"to the mapping file, or pass --assignment-column 'Exact Name (id)'",
		e.QuizID, strings.Join(e.Consulted, ", "))
}
