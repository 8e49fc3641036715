package index

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/vandank/CanvasAutomateQuiz/internal/model"
)

// Store persists the metadata index as one JSON array. Saving replaces the
// file wholesale; there is no incremental merge at this layer.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Save(entries []model.QuizMetadataEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata index: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata index %s: %w", s.path, err)
	}
	return nil
}

// Load reads the whole index. A missing file yields an empty index, not an
// error; the resolver treats it as one more source with no hit.
func (s *Store) Load() ([]model.QuizMetadataEntry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata index %s: %w", s.path, err)
	}

	var entries []model.QuizMetadataEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata index %s: %w", s.path, err)
	}
	return entries, nil
}

// Lookup finds the entry for one (course, quiz) pair. IDs are compared in
// their canonical string forms, matching what the tools accept on the
// command line.
func (s *Store) Lookup(courseID, quizID string) (model.QuizMetadataEntry, bool, error) {
	entries, err := s.Load()
	if err != nil {
		return model.QuizMetadataEntry{}, false, err
	}
	for _, e := range entries {
		if e.CourseID == courseID && strconv.FormatInt(e.QuizID, 10) == quizID {
			return e, true, nil
		}
	}
	return model.QuizMetadataEntry{}, false, nil
}
