package mapping

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vandank/CanvasAutomateQuiz/internal/index"
	"github.com/vandank/CanvasAutomateQuiz/internal/model"
	pkgerrors "github.com/vandank/CanvasAutomateQuiz/pkg/errors"
)

func testResolver(t *testing.T, entries []model.QuizMetadataEntry, mapping string) *Resolver {
	t.Helper()
	dir := t.TempDir()

	indexStore := index.NewStore(filepath.Join(dir, "quiz_metadata.json"))
	if entries != nil {
		if err := indexStore.Save(entries); err != nil {
			t.Fatal(err)
		}
	}

	mappingPath := filepath.Join(dir, "quiz_gradebook_columns.json")
	if mapping != "" {
		if err := os.WriteFile(mappingPath, []byte(mapping), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewResolver(indexStore, NewStore(mappingPath))
}

func TestResolveOverrideWinsUnconditionally(t *testing.T) {
	r := testResolver(t, []model.QuizMetadataEntry{
		{CourseID: "1", QuizID: 10, GradebookColumn: "From Index (11111)"},
	}, "")

	column, err := r.Resolve("1", "10", "Explicit (22222)")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if column != "Explicit (22222)" {
		t.Errorf("column = %q, want the explicit override", column)
	}
}

func TestResolveFromMetadataIndex(t *testing.T) {
	r := testResolver(t, []model.QuizMetadataEntry{
		{CourseID: "1", QuizID: 10, GradebookColumn: "From Index (11111)"},
	}, `{"1":{"10":"From Mapping (33333)"}}`)

	column, err := r.Resolve("1", "10", "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if column != "From Index (11111)" {
		t.Errorf("column = %q, index must win over mapping file", column)
	}
}

func TestResolveFallsThroughEmptyIndexColumn(t *testing.T) {
	// The index knows the quiz but has no gradebook column for it.
	r := testResolver(t, []model.QuizMetadataEntry{
		{CourseID: "1", QuizID: 10},
	}, `{"1":{"10":"From Mapping (33333)"}}`)

	column, err := r.Resolve("1", "10", "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if column != "From Mapping (33333)" {
		t.Errorf("column = %q, want mapping file fallback", column)
	}
}

func TestResolveMissEverywhereNamesAllSources(t *testing.T) {
	r := testResolver(t, nil, "")

	_, err := r.Resolve("1", "10", "")
	if err == nil {
		t.Fatal("expected resolution failure")
	}
	var notFound pkgerrors.ColumnNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want ColumnNotFoundError", err)
	}
	if len(notFound.Consulted) != 3 {
		t.Errorf("Consulted = %v, want all three sources", notFound.Consulted)
	}
	msg := err.Error()
	for _, source := range []string{"--assignment-column", "metadata index", "mapping file"} {
		if !strings.Contains(msg, source) {
			t.Errorf("error message %q does not name %q", msg, source)
		}
	}
}
