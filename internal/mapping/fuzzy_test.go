package mapping

import (
	"testing"

	"github.com/vandank/CanvasAutomateQuiz/internal/model"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ER Diagram Quiz", "erdiagramquiz"},
		{"  ER-Diagram_Quiz  ", "erdiagramquiz"},
		{"ERDiagram Quizz (7176714)", "erdiagramquizz7176714"},
		{"Week 3: SQL!", "week3sql"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAssignmentColumns(t *testing.T) {
	header := []string{
		"ID", "Student", "SIS Login ID",
		"ERDiagram Quizz (7176714)",
		"Short id (1234)",
		"", "  Final Exam (8888888)  ",
		"No id at all",
	}

	candidates := AssignmentColumns(header)
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2: %+v", len(candidates), candidates)
	}
	if candidates[0].Header != "ERDiagram Quizz (7176714)" || candidates[0].Index != 3 {
		t.Errorf("candidates[0] = %+v", candidates[0])
	}
	if candidates[1].Header != "Final Exam (8888888)" {
		t.Errorf("candidates[1] = %+v, want trimmed header", candidates[1])
	}
}

func TestSuggestMatchesNormalizedSubstring(t *testing.T) {
	candidates := []Candidate{
		{Index: 3, Header: "ERDiagram Quizz (7176714)"},
		{Index: 4, Header: "Final Exam (8888888)"},
	}
	quizzes := []model.QuizMetadataEntry{
		{QuizID: 1938135, QuizTitle: "ER Diagram Quiz"},
		{QuizID: 1941218, QuizTitle: "Unrelated Topic"},
	}

	got := Suggest(candidates, quizzes)
	if got["1938135"] != "ERDiagram Quizz (7176714)" {
		t.Errorf("quiz 1938135 -> %q", got["1938135"])
	}
	if _, ok := got["1941218"]; ok {
		t.Error("unrelated quiz must stay unmatched, never guessed")
	}
}

func TestSuggestPrefixFallback(t *testing.T) {
	// Titles diverge after a long shared prefix; only the first ten
	// normalized characters line up.
	candidates := []Candidate{
		{Index: 7, Header: "Relational Algebra Homework (7300001)"},
	}
	quizzes := []model.QuizMetadataEntry{
		{QuizID: 5, QuizTitle: "Relational Model Quiz"},
	}

	got := Suggest(candidates, quizzes)
	if got["5"] != "Relational Algebra Homework (7300001)" {
		t.Errorf("prefix fallback failed: %v", got)
	}
}

func TestSuggestPrefersLongestThenFirstSeen(t *testing.T) {
	candidates := []Candidate{
		{Index: 1, Header: "ER Quiz (1111111)"},
		{Index: 2, Header: "ER Quiz retake (2222222)"},
		{Index: 3, Header: "ER Quiz remake (3333333)"},
	}
	quizzes := []model.QuizMetadataEntry{{QuizID: 9, QuizTitle: "ER Quiz"}}

	got := Suggest(candidates, quizzes)
	// Both 24-char headers match; the first seen wins the tie.
	if got["9"] != "ER Quiz retake (2222222)" {
		t.Errorf("got %q, want longest match with first-seen tie-break", got["9"])
	}
}

func TestSuggestIgnoresEmptyTitles(t *testing.T) {
	candidates := []Candidate{{Index: 1, Header: "Something (1234567)"}}
	quizzes := []model.QuizMetadataEntry{{QuizID: 1, QuizTitle: "   "}}

	if got := Suggest(candidates, quizzes); len(got) != 0 {
		t.Errorf("empty title produced a suggestion: %v", got)
	}
}
