package canvas

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vandank/CanvasAutomateQuiz/internal/model"
)

const (
	studentEnrollmentType = "StudentEnrollment"
	quizSubmissionType    = "online_quiz"
)

func (c *Client) perPage() string {
	return strconv.Itoa(c.cfg.API.PageSize)
}

// ListEnrollments returns every active student enrollment of a course.
// The server filters to student enrollments; nothing is reshaped here.
func (c *Client) ListEnrollments(ctx context.Context, courseID string) ([]model.Enrollment, error) {
	params := url.Values{}
	params.Add("type[]", studentEnrollmentType)
	params.Set("per_page", c.perPage())

	endpoint := fmt.Sprintf("%s/courses/%s/enrollments", c.cfg.API.BaseURL, courseID)
	raw, _, err := c.getPaginated(ctx, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch enrollments for course %s: %w", courseID, err)
	}

	enrollments, err := decodeAll[model.Enrollment](raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode enrollments: %w", err)
	}

	c.log.Debug().Str("course_id", courseID).Int("count", len(enrollments)).Msg("Fetched enrollments")
	return enrollments, nil
}

// ListQuizSubmissions returns all submissions of a quiz together with the
// related users requested via the include[]=user expansion.
func (c *Client) ListQuizSubmissions(ctx context.Context, courseID, quizID string) ([]model.Submission, []model.User, error) {
	params := url.Values{}
	params.Add("include[]", "user")
	params.Set("per_page", c.perPage())

	endpoint := fmt.Sprintf("%s/courses/%s/quizzes/%s/submissions", c.cfg.API.BaseURL, courseID, quizID)
	rawSubs, rawUsers, err := c.getPaginated(ctx, endpoint, params)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch submissions for quiz %s: %w", quizID, err)
	}

	subs, err := decodeAll[model.Submission](rawSubs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode quiz submissions: %w", err)
	}
	users, err := decodeAll[model.User](rawUsers)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode submission users: %w", err)
	}

	c.log.Debug().
		Str("quiz_id", quizID).
		Int("submissions", len(subs)).
		Int("users", len(users)).
		Msg("Fetched quiz submissions")
	return subs, users, nil
}

// GetQuiz fetches one quiz's metadata (title, due/unlock/lock timestamps).
func (c *Client) GetQuiz(ctx context.Context, courseID, quizID string) (*model.Quiz, error) {
	endpoint := fmt.Sprintf("%s/courses/%s/quizzes/%s", c.cfg.API.BaseURL, courseID, quizID)

	var quiz model.Quiz
	if err := c.getJSON(ctx, endpoint, nil, &quiz); err != nil {
		return nil, fmt.Errorf("failed to fetch quiz %s: %w", quizID, err)
	}
	return &quiz, nil
}

// ListQuizzes returns every quiz of a course.
func (c *Client) ListQuizzes(ctx context.Context, courseID string) ([]model.Quiz, error) {
	params := url.Values{}
	params.Set("per_page", c.perPage())

	endpoint := fmt.Sprintf("%s/courses/%s/quizzes", c.cfg.API.BaseURL, courseID)
	raw, _, err := c.getPaginated(ctx, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quizzes for course %s: %w", courseID, err)
	}

	quizzes, err := decodeAll[model.Quiz](raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode quizzes: %w", err)
	}

	c.log.Debug().Str("course_id", courseID).Int("count", len(quizzes)).Msg("Fetched quizzes")
	return quizzes, nil
}

// QuizAssignments scans the course's assignments and maps each quiz id to
// its gradebook assignment. Only assignments whose submission types include
// online_quiz count; assignments without a quiz id are skipped. The
// gradebook column name follows the export convention "<name> (<id>)".
func (c *Client) QuizAssignments(ctx context.Context, courseID string) (map[int64]model.AssignmentInfo, error) {
	params := url.Values{}
	params.Set("per_page", c.perPage())

	endpoint := fmt.Sprintf("%s/courses/%s/assignments", c.cfg.API.BaseURL, courseID)
	raw, _, err := c.getPaginated(ctx, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for course %s: %w", courseID, err)
	}

	assignments, err := decodeAll[model.Assignment](raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode assignments: %w", err)
	}

	result := make(map[int64]model.AssignmentInfo)
	for _, a := range assignments {
		if !hasSubmissionType(a.SubmissionTypes, quizSubmissionType) {
			continue
		}
		if a.QuizID == nil {
			continue
		}
		name := strings.TrimSpace(a.Name)
		result[*a.QuizID] = model.AssignmentInfo{
			AssignmentID:    a.ID,
			AssignmentName:  name,
			GradebookColumn: fmt.Sprintf("%s (%d)", name, a.ID),
		}
	}

	c.log.Debug().
		Str("course_id", courseID).
		Int("assignments", len(assignments)).
		Int("quiz_linked", len(result)).
		Msg("Built quiz to assignment mapping")
	return result, nil
}

func hasSubmissionType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
