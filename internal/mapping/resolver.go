package mapping

import (
	"github.com/rs/zerolog"

	"github.com/vandank/CanvasAutomateQuiz/internal/index"
	"github.com/vandank/CanvasAutomateQuiz/internal/logger"
	"github.com/vandank/CanvasAutomateQuiz/pkg/errors"
)

// Resolver determines which gradebook column a quiz maps to. Fallback
// chain, first hit wins: explicit override, metadata index, manual mapping
// file. A miss everywhere is fatal and names every source consulted.
type Resolver struct {
	index   *index.Store
	mapping *Store
	log     zerolog.Logger
}

func NewResolver(indexStore *index.Store, mappingStore *Store) *Resolver {
	return &Resolver{
		index:   indexStore,
		mapping: mappingStore,
		log:     logger.Get(),
	}
}

func (r *Resolver) Resolve(courseID, quizID, override string) (string, error) {
	if override != "" {
		r.log.Debug().Str("column", override).Msg("Using explicit assignment column")
		return override, nil
	}

	consulted := []string{"--assignment-column flag"}

	entry, ok, err := r.index.Lookup(courseID, quizID)
	if err != nil {
		return "", err
	}
	if ok && entry.GradebookColumn != "" {
		r.log.Debug().Str("column", entry.GradebookColumn).Msg("Column resolved from metadata index")
		return entry.GradebookColumn, nil
	}
	consulted = append(consulted, "metadata index "+r.index.Path())

	column, ok, err := r.mapping.Lookup(courseID, quizID)
	if err != nil {
		return "", err
	}
	if ok {
		r.log.Debug().Str("column", column).Msg("Column resolved from mapping file")
		return column, nil
	}
	consulted = append(consulted, "mapping file "+r.mapping.Path())

	return "", errors.ColumnNotFoundError{QuizID: quizID, Consulted: consulted}
}
