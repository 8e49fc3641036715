package mapping

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vandank/CanvasAutomateQuiz/internal/model"
)

// Assignment columns in a gradebook export end in a parenthesized numeric
// assignment id of at least five digits.
var columnIDPattern = regexp.MustCompile(`\(\d{5,}\)$`)

var (
	separatorRuns = regexp.MustCompile(`[\s\-_]+`)
	nonWordChars  = regexp.MustCompile(`[^\w]`)
)

// Normalize prepares a title or header for fuzzy comparison: lowercase,
// separator runs and remaining non-word characters stripped.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = separatorRuns.ReplaceAllString(s, "")
	return nonWordChars.ReplaceAllString(s, "")
}

// Candidate is one header cell that looks like an assignment column.
type Candidate struct {
	Index  int
	Header string
}

// AssignmentColumns returns the candidate columns of a header row in
// first-seen order.
func AssignmentColumns(header []string) []Candidate {
	var out []Candidate
	for i, cell := range header {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if columnIDPattern.MatchString(cell) {
			out = append(out, Candidate{Index: i, Header: cell})
		}
	}
	return out
}

// Suggest proposes a gradebook column per quiz by fuzzy-matching normalized
// titles against the candidate headers. The longest matching header wins,
// ties broken by first-seen order. Quizzes with no match are simply absent
// from the result; the suggestion tool is advisory and never guesses.
func Suggest(candidates []Candidate, quizzes []model.QuizMetadataEntry) map[string]string {
	suggestions := make(map[string]string)
	for _, q := range quizzes {
		normTitle := Normalize(q.QuizTitle)
		best := ""
		bestLen := 0
		for _, c := range candidates {
			if !titleMatches(normTitle, Normalize(c.Header)) {
				continue
			}
			if len(c.Header) > bestLen {
				best = c.Header
				bestLen = len(c.Header)
			}
		}
		if best != "" {
			suggestions[strconv.FormatInt(q.QuizID, 10)] = best
		}
	}
	return suggestions
}

// titleMatches reports whether two normalized strings plausibly name the
// same assignment: one contains the other, or as a weaker fallback the
// first ten characters of one appear in the other.
func titleMatches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return strings.Contains(b, head(a, 10)) || strings.Contains(a, head(b, 10))
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
