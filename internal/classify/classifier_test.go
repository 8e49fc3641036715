package classify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vandank/CanvasAutomateQuiz/internal/canvas"
	"github.com/vandank/CanvasAutomateQuiz/internal/config"
	"github.com/vandank/CanvasAutomateQuiz/internal/model"
	pkgerrors "github.com/vandank/CanvasAutomateQuiz/pkg/errors"
)

func strptr(s string) *string { return &s }

func enrollment(id int64, name, login string) model.Enrollment {
	return model.Enrollment{User: model.User{ID: id, Name: name, LoginID: login}}
}

func mustDue(t *testing.T) time.Time {
	t.Helper()
	due, err := time.Parse(time.RFC3339, "2026-03-01T06:59:00Z")
	if err != nil {
		t.Fatal(err)
	}
	return due
}

func TestClassifyRosterPartitionsEveryStudent(t *testing.T) {
	due := mustDue(t)
	enrollments := []model.Enrollment{
		enrollment(1, "Ada", "ada1"),
		enrollment(2, "Bob", "bob2"),
		enrollment(3, "Cyd", "cyd3"),
		enrollment(4, "Dee", "dee4"),
	}
	submissions := []model.Submission{
		{UserID: 1, FinishedAt: strptr("2026-03-01T06:59:00Z")}, // exactly at due: on time
		{UserID: 2, FinishedAt: strptr("2026-03-01T06:59:01Z")}, // one second late
		{UserID: 3},                                             // started, never finished
		{UserID: 99, FinishedAt: strptr("2026-02-01T00:00:00Z")}, // not enrolled
	}

	students, err := classifyRoster(due, submissions, enrollments)
	if err != nil {
		t.Fatalf("classifyRoster() error: %v", err)
	}

	if len(students) != len(enrollments) {
		t.Fatalf("got %d records, want one per enrolled student (%d)", len(students), len(enrollments))
	}

	byID := make(map[int64]model.Classification)
	for _, s := range students {
		byID[s.UserID] = s
	}
	if _, ok := byID[99]; ok {
		t.Error("non-enrolled submitter leaked into the output")
	}
	if got := byID[1].Bucket; got != model.BucketOnTime {
		t.Errorf("finish at due time -> %s, want on_time (inclusive boundary)", got)
	}
	if got := byID[2].Bucket; got != model.BucketLate {
		t.Errorf("finish one second after due -> %s, want late", got)
	}
	if got := byID[3]; got.Bucket != model.BucketNotAttempted || !got.InProgress {
		t.Errorf("unfinished attempt -> %+v, want not_attempted with InProgress", got)
	}
	if got := byID[4]; got.Bucket != model.BucketNotAttempted || got.InProgress {
		t.Errorf("no submission -> %+v, want plain not_attempted", got)
	}
}

func TestClassifyRosterDuplicateSubmissionLastWins(t *testing.T) {
	due := mustDue(t)
	enrollments := []model.Enrollment{enrollment(1, "Ada", "ada1")}
	submissions := []model.Submission{
		{UserID: 1, FinishedAt: strptr("2026-03-02T00:00:00Z")}, // late
		{UserID: 1, FinishedAt: strptr("2026-02-20T00:00:00Z")}, // on time, last wins
	}

	students, err := classifyRoster(due, submissions, enrollments)
	if err != nil {
		t.Fatal(err)
	}
	if students[0].Bucket != model.BucketOnTime {
		t.Errorf("bucket = %s, want on_time from the last-seen submission", students[0].Bucket)
	}
}

func TestClassifyRosterOffsetTimestamps(t *testing.T) {
	// A +00:00 offset and a Z suffix are the same instant.
	due := mustDue(t)
	enrollments := []model.Enrollment{enrollment(1, "Ada", "ada1")}
	submissions := []model.Submission{
		{UserID: 1, FinishedAt: strptr("2026-03-01T06:59:00+00:00")},
	}

	students, err := classifyRoster(due, submissions, enrollments)
	if err != nil {
		t.Fatal(err)
	}
	if students[0].Bucket != model.BucketOnTime {
		t.Errorf("bucket = %s, want on_time", students[0].Bucket)
	}
}

func TestGradeValues(t *testing.T) {
	result := &Result{Students: []model.Classification{
		{UserID: 1, Bucket: model.BucketOnTime},
		{UserID: 2, Bucket: model.BucketLate},
		{UserID: 3, Bucket: model.BucketNotAttempted},
		{UserID: 4, Bucket: model.BucketNotAttempted, InProgress: true},
	}}

	grades := result.GradeValues()
	if grades[1] != GradeOnTime {
		t.Errorf("on time -> %q", grades[1])
	}
	for _, id := range []int64{2, 3, 4} {
		if grades[id] != GradeLateOrNot {
			t.Errorf("student %d -> %q, want %q", id, grades[id], GradeLateOrNot)
		}
	}
}

func classifierAgainst(t *testing.T, handler http.HandlerFunc) *Classifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.API.BaseURL = srv.URL
	cfg.API.Token = "test-token"
	cfg.API.PageSize = 100
	cfg.API.Timeout = 5 * time.Second
	return NewClassifier(canvas.NewClient(cfg))
}

func TestClassifyMissingDueDateIsFatal(t *testing.T) {
	c := classifierAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":1938135,"title":"ER Diagram Quiz","due_at":null}`)
	})

	_, err := c.Classify(context.Background(), "249800", "1938135")
	if !errors.Is(err, pkgerrors.ErrMissingDueDate) {
		t.Fatalf("error = %v, want ErrMissingDueDate", err)
	}
}

func TestClassifyEndToEnd(t *testing.T) {
	c := classifierAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/submissions"):
			fmt.Fprint(w, `{"quiz_submissions":[
				{"id":10,"user_id":1,"score":9.5,"finished_at":"2026-02-28T22:00:00Z","workflow_state":"complete"},
				{"id":11,"user_id":2,"score":4,"finished_at":"2026-03-02T00:00:00Z","workflow_state":"complete"}
			],"users":[{"id":1,"name":"Ada","login_id":"ada1"},{"id":2,"name":"Bob","login_id":"bob2"}]}`)
		case strings.HasSuffix(r.URL.Path, "/enrollments"):
			fmt.Fprint(w, `[
				{"id":100,"type":"StudentEnrollment","user":{"id":1,"name":"Ada","login_id":"ada1"}},
				{"id":101,"type":"StudentEnrollment","user":{"id":2,"name":"Bob","login_id":"bob2"}},
				{"id":102,"type":"StudentEnrollment","user":{"id":3,"name":"Cyd","login_id":"cyd3"}}
			]`)
		default:
			fmt.Fprint(w, `{"id":1938135,"title":"ER Diagram Quiz","due_at":"2026-03-01T06:59:00Z"}`)
		}
	})

	result, err := c.Classify(context.Background(), "249800", "1938135")
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}

	onTime, late, notAttempted := result.Counts()
	if onTime != 1 || late != 1 || notAttempted != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", onTime, late, notAttempted)
	}
	if result.QuizTitle != "ER Diagram Quiz" {
		t.Errorf("QuizTitle = %q", result.QuizTitle)
	}
	if len(result.Students) != 3 {
		t.Fatalf("got %d students, want 3", len(result.Students))
	}
	// Roster order is preserved.
	if result.Students[0].UserID != 1 || result.Students[2].UserID != 3 {
		t.Errorf("roster order lost: %+v", result.Students)
	}
}
