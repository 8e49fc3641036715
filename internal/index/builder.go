package index

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vandank/CanvasAutomateQuiz/internal/canvas"
	"github.com/vandank/CanvasAutomateQuiz/internal/logger"
	"github.com/vandank/CanvasAutomateQuiz/internal/model"
)

// Builder produces the durable quiz metadata index for a course by
// cross-referencing its quizzes with its quiz-type assignments.
type Builder struct {
	client *canvas.Client
	log    zerolog.Logger
}

func NewBuilder(client *canvas.Client) *Builder {
	return &Builder{
		client: client,
		log:    logger.Get(),
	}
}

// Build fetches the quiz-to-assignment mapping and all quizzes, then merges
// them into one entry per quiz. Quizzes without a linked gradebook
// assignment stay unmapped rather than failing the build.
func (b *Builder) Build(ctx context.Context, courseID string) ([]model.QuizMetadataEntry, error) {
	assignments, err := b.client.QuizAssignments(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to build quiz assignment mapping: %w", err)
	}
	b.log.Info().Str("course_id", courseID).Int("quiz_linked", len(assignments)).Msg("Fetched quiz-linked assignments")

	quizzes, err := b.client.ListQuizzes(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	entries := make([]model.QuizMetadataEntry, 0, len(quizzes))
	for _, q := range quizzes {
		entry := model.QuizMetadataEntry{
			CourseID:       courseID,
			QuizID:         q.ID,
			QuizTitle:      q.Title,
			DueAt:          q.DueAt,
			UnlockAt:       q.UnlockAt,
			LockAt:         q.LockAt,
			Published:      q.Published,
			PointsPossible: q.PointsPossible,
		}
		if info, ok := assignments[q.ID]; ok {
			entry.AssignmentID = info.AssignmentID
			entry.AssignmentName = info.AssignmentName
			entry.GradebookColumn = info.GradebookColumn
		}
		entries = append(entries, entry)
	}

	b.log.Info().Str("course_id", courseID).Int("quizzes", len(entries)).Msg("Quiz metadata index built")
	return entries, nil
}
