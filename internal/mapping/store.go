package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vandank/CanvasAutomateQuiz/internal/logger"
)

// Mapping is the manually curated override store:
// course id -> quiz id -> gradebook column name.
type Mapping map[string]map[string]string

// Store reads and (only via MergeWithBackup) rewrites the mapping file.
type Store struct {
	path string
	log  zerolog.Logger
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		log:  logger.Get(),
	}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the mapping; a missing file is an empty mapping, not an error.
func (s *Store) Load() (Mapping, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Mapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", s.path, err)
	}

	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mapping file %s: %w", s.path, err)
	}
	return m, nil
}

// Lookup returns the column name for one (course, quiz) pair.
func (s *Store) Lookup(courseID, quizID string) (string, bool, error) {
	m, err := s.Load()
	if err != nil {
		return "", false, err
	}
	byCourse, ok := m[courseID]
	if !ok {
		return "", false, nil
	}
	column, ok := byCourse[quizID]
	if !ok || column == "" {
		return "", false, nil
	}
	return column, true, nil
}

// MergeWithBackup merges suggestions into the course's section of the
// mapping file. When the file already exists its exact current bytes are
// written to a sibling backup first; entries for other quizzes and other
// courses are preserved. Returns the backup path ("" if nothing existed).
func (s *Store) MergeWithBackup(courseID string, suggestions map[string]string) (string, error) {
	existing := Mapping{}
	backupPath := ""

	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		backupPath = backupPathFor(s.path)
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup %s: %w", backupPath, err)
		}
		if err := json.Unmarshal(data, &existing); err != nil {
			return "", fmt.Errorf("failed to unmarshal mapping file %s: %w", s.path, err)
		}
		s.log.Info().Str("path", backupPath).Msg("Mapping backup written")
	case !os.IsNotExist(err):
		return "", fmt.Errorf("failed to read mapping file %s: %w", s.path, err)
	}

	byCourse := existing[courseID]
	if byCourse == nil {
		byCourse = make(map[string]string)
	}
	for quizID, column := range suggestions {
		byCourse[quizID] = column
	}
	existing[courseID] = byCourse

	out, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal mapping: %w", err)
	}
	if err := os.WriteFile(s.path, out, 0o644); err != nil {
		return "", fmt.Errorf("failed to write mapping file %s: %w", s.path, err)
	}

	s.log.Info().
		Str("path", s.path).
		Str("course_id", courseID).
		Int("merged", len(suggestions)).
		Msg("Mapping file updated")
	return backupPath, nil
}

func backupPathFor(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".backup" + ext
}
