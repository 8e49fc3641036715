package classify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vandank/CanvasAutomateQuiz/internal/canvas"
	"github.com/vandank/CanvasAutomateQuiz/internal/logger"
	"github.com/vandank/CanvasAutomateQuiz/internal/model"
	"github.com/vandank/CanvasAutomateQuiz/pkg/errors"
	"github.com/vandank/CanvasAutomateQuiz/pkg/ordmap"
)

// Grade values written into the gradebook. Late and not-attempted collapse
// into the same value on purpose; reports keep the states apart.
const (
	GradeOnTime    = "1.00"
	GradeLateOrNot = "0.00"
)

// Result is one run's classification of the whole roster, in roster order.
type Result struct {
	CourseID  string
	QuizID    string
	QuizTitle string
	DueAt     time.Time
	Students  []model.Classification
}

// Counts returns the size of each bucket.
func (r *Result) Counts() (onTime, late, notAttempted int) {
	for _, s := range r.Students {
		switch s.Bucket {
		case model.BucketOnTime:
			onTime++
		case model.BucketLate:
			late++
		default:
			notAttempted++
		}
	}
	return onTime, late, notAttempted
}

// GradeValues projects the result into the gradebook patch input:
// student id -> two-decimal grade string.
func (r *Result) GradeValues() map[int64]string {
	grades := make(map[int64]string, len(r.Students))
	for _, s := range r.Students {
		if s.Bucket == model.BucketOnTime {
			grades[s.UserID] = GradeOnTime
		} else {
			grades[s.UserID] = GradeLateOrNot
		}
	}
	return grades
}

type Classifier struct {
	client *canvas.Client
	log    zerolog.Logger
}

func NewClassifier(client *canvas.Client) *Classifier {
	return &Classifier{
		client: client,
		log:    logger.Get(),
	}
}

// Classify pulls the quiz's due date, its submissions, and the course
// roster, then assigns every enrolled student exactly one bucket. A quiz
// without a due date cannot be classified; that is a configuration error,
// not an implicit "no deadline".
func (c *Classifier) Classify(ctx context.Context, courseID, quizID string) (*Result, error) {
	quiz, err := c.client.GetQuiz(ctx, courseID, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.DueAt == nil || *quiz.DueAt == "" {
		return nil, fmt.Errorf("quiz %s (%s): %w", quizID, quiz.Title, errors.ErrMissingDueDate)
	}
	due, err := parseTimestamp(*quiz.DueAt)
	if err != nil {
		return nil, fmt.Errorf("quiz %s due date: %w", quizID, err)
	}

	submissions, _, err := c.client.ListQuizSubmissions(ctx, courseID, quizID)
	if err != nil {
		return nil, err
	}
	enrollments, err := c.client.ListEnrollments(ctx, courseID)
	if err != nil {
		return nil, err
	}

	students, err := classifyRoster(due, submissions, enrollments)
	if err != nil {
		return nil, err
	}

	result := &Result{
		CourseID:  courseID,
		QuizID:    quizID,
		QuizTitle: quiz.Title,
		DueAt:     due,
		Students:  students,
	}
	onTime, late, notAttempted := result.Counts()
	c.log.Info().
		Str("quiz_id", quizID).
		Time("due_at", due).
		Int("on_time", onTime).
		Int("late", late).
		Int("not_attempted", notAttempted).
		Msg("Roster classified")
	return result, nil
}

// classifyRoster walks the roster in enrollment order. The roster is
// authoritative: submissions by non-enrolled users are discarded.
// Submissions are keyed by student, last write wins on duplicates.
func classifyRoster(due time.Time, submissions []model.Submission, enrollments []model.Enrollment) ([]model.Classification, error) {
	attempts := ordmap.New[int64, model.Submission]()
	for _, s := range submissions {
		attempts.Set(s.UserID, s)
	}

	roster := ordmap.New[int64, model.User]()
	for _, e := range enrollments {
		if e.User.ID == 0 {
			continue
		}
		roster.Set(e.User.ID, e.User)
	}

	out := make([]model.Classification, 0, roster.Len())
	for _, userID := range roster.Keys() {
		user, _ := roster.Get(userID)
		record := model.Classification{
			UserID:  userID,
			Name:    user.Name,
			LoginID: user.LoginID,
		}

		sub, attempted := attempts.Get(userID)
		switch {
		case !attempted:
			record.Bucket = model.BucketNotAttempted

		case sub.FinishedAt == nil || *sub.FinishedAt == "":
			// Started but never completed: graded like not-attempted,
			// flagged so reports can tell the two apart.
			record.Bucket = model.BucketNotAttempted
			record.InProgress = true
			record.Score = sub.Score

		default:
			finished, err := parseTimestamp(*sub.FinishedAt)
			if err != nil {
				return nil, fmt.Errorf("submission for student %d: %w", userID, err)
			}
			record.Score = sub.Score
			record.FinishedAt = sub.FinishedAt
			if finished.After(due) {
				record.Bucket = model.BucketLate
			} else {
				// Finishing exactly at the deadline counts as on time.
				record.Bucket = model.BucketOnTime
			}
		}

		out = append(out, record)
	}
	return out, nil
}

// parseTimestamp parses an RFC 3339 timestamp (Z-suffixed in practice) and
// pins it to UTC so comparisons ignore the wire offset.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
