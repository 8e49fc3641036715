package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vandank/CanvasAutomateQuiz/internal/classify"
	"github.com/vandank/CanvasAutomateQuiz/internal/model"
)

// File names of the per-bucket text reports.
const (
	OnTimeFile       = "quiz_on_time.txt"
	LateFile         = "quiz_late.txt"
	NotAttemptedFile = "quiz_not_attempted.txt"
)

// WriteTextReports renders one plain-text file per bucket into dir.
// In-progress attempts land in the not-attempted file but keep a marker so
// they stay recognizable.
func WriteTextReports(dir string, result *classify.Result) error {
	var onTime, late, notAttempted strings.Builder

	for _, s := range result.Students {
		switch s.Bucket {
		case model.BucketOnTime:
			fmt.Fprintf(&onTime, "%s (%s) | score=%s\n", s.Name, s.LoginID, formatScore(s.Score))
		case model.BucketLate:
			fmt.Fprintf(&late, "%s (%s) | score=%s | finished=%s\n",
				s.Name, s.LoginID, formatScore(s.Score), deref(s.FinishedAt))
		default:
			if s.InProgress {
				fmt.Fprintf(&notAttempted, "%s (%s) (in progress)\n", s.Name, s.LoginID)
			} else {
				fmt.Fprintf(&notAttempted, "%s (%s)\n", s.Name, s.LoginID)
			}
		}
	}

	files := map[string]string{
		OnTimeFile:       onTime.String(),
		LateFile:         late.String(),
		NotAttemptedFile: notAttempted.String(),
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write report %s: %w", path, err)
		}
	}
	return nil
}

// Summary is the machine-readable projection of one run.
type Summary struct {
	CourseID  string                 `json:"course_id"`
	QuizID    string                 `json:"quiz_id"`
	QuizTitle string                 `json:"quiz_title"`
	DueAt     time.Time              `json:"due_at"`
	Counts    Counts                 `json:"counts"`
	Students  []model.Classification `json:"students"`
}

type Counts struct {
	OnTime       int `json:"on_time"`
	Late         int `json:"late"`
	NotAttempted int `json:"not_attempted"`
}

// WriteJSONSummary writes the whole classification as one JSON document.
func WriteJSONSummary(path string, result *classify.Result) error {
	onTime, late, notAttempted := result.Counts()
	summary := Summary{
		CourseID:  result.CourseID,
		QuizID:    result.QuizID,
		QuizTitle: result.QuizTitle,
		DueAt:     result.DueAt,
		Counts:    Counts{OnTime: onTime, Late: late, NotAttempted: notAttempted},
		Students:  result.Students,
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", path, err)
	}
	return nil
}

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
