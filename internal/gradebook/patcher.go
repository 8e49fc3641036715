package gradebook

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vandank/CanvasAutomateQuiz/pkg/errors"
)

// IDHeader names the student-identifier column of a gradebook export.
const IDHeader = "ID"

// dataRowStart skips the header row plus the two platform metadata rows
// ("Points Possible" and the muted/manual-posting row) present in every
// export.
const dataRowStart = 3

// Load reads the whole export. Rows may be ragged; the reader does not
// enforce a uniform field count.
func Load(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gradebook CSV %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read gradebook CSV %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, errors.ErrEmptyCSV
	}
	return rows, nil
}

// Patch overwrites the target column of every data row whose id cell parses
// to a student present in grades; everything else is left exactly as read.
// Rows too short to hold both columns, and rows with blank or non-numeric
// ids, are skipped without error. Returns how many cells were updated.
func Patch(rows [][]string, targetColumn string, grades map[int64]string) (int, error) {
	header := rows[0]

	idCol := indexOf(header, IDHeader)
	if idCol < 0 {
		return 0, errors.ErrMissingIDColumn
	}
	targetCol := indexOf(header, targetColumn)
	if targetCol < 0 {
		return 0, fmt.Errorf("assignment column %q not found in CSV header; "+
			"check spelling and parentheses, e.g. 'ERDiagram Quizz (7176714)'", targetColumn)
	}

	updated := 0
	for i := dataRowStart; i < len(rows); i++ {
		row := rows[i]
		if len(row) <= idCol || len(row) <= targetCol {
			continue
		}
		raw := strings.TrimSpace(row[idCol])
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		grade, ok := grades[id]
		if !ok {
			continue
		}
		row[targetCol] = grade
		updated++
	}
	return updated, nil
}

// Write materializes the patched rows into a fresh file. The source export
// is never rewritten in place, so runs stay repeatable and diff-able.
func Write(rows [][]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output CSV %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write output CSV %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}

// DefaultOutputPath appends "-updated" before the extension of the source
// path.
func DefaultOutputPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + "-updated" + ext
}

func indexOf(header []string, name string) int {
	for i, cell := range header {
		if cell == name {
			return i
		}
	}
	return -1
}
