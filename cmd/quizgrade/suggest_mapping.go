package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vandank/CanvasAutomateQuiz/internal/gradebook"
	"github.com/vandank/CanvasAutomateQuiz/internal/index"
	"github.com/vandank/CanvasAutomateQuiz/internal/mapping"
	"github.com/vandank/CanvasAutomateQuiz/internal/model"
)

func suggestMappingCmd() *cobra.Command {
	var (
		courseID     string
		metadataPath string
		write        bool
	)

	cmd := &cobra.Command{
		Use:   "suggest-mapping <grades.csv>",
		Short: "Suggest quiz-to-gradebook-column mappings from an exported CSV",
		Long: "Matches quiz titles from the metadata index against the assignment\n" +
			"columns of a gradebook export. Suggestions are advisory: quizzes with no\n" +
			"satisfying column are reported as unmatched, never guessed. With --write\n" +
			"the suggestions are merged into the mapping file after a backup of its\n" +
			"current content is created.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Works offline against local files; no API token needed.
			cfg, log, err := setup(false)
			if err != nil {
				return err
			}
			course, err := requireCourseID(cfg, courseID)
			if err != nil {
				return err
			}
			if metadataPath == "" {
				metadataPath = cfg.Files.MetadataIndex
			}

			rows, err := gradebook.Load(args[0])
			if err != nil {
				return err
			}
			candidates := mapping.AssignmentColumns(rows[0])

			entries, err := index.NewStore(metadataPath).Load()
			if err != nil {
				return err
			}
			var quizzes []model.QuizMetadataEntry
			for _, e := range entries {
				if e.CourseID == course {
					quizzes = append(quizzes, e)
				}
			}
			if len(quizzes) == 0 {
				return fmt.Errorf("metadata index %s has no quizzes for course %s; run 'quizgrade build-index' first", metadataPath, course)
			}

			suggestions := mapping.Suggest(candidates, quizzes)

			fmt.Println("Suggested quiz id -> gradebook column (add missing entries to the mapping file):")
			for _, q := range quizzes {
				quizID := strconv.FormatInt(q.QuizID, 10)
				column, ok := suggestions[quizID]
				if !ok {
					column = "(no match)"
				}
				fmt.Printf("  %s  %q  ->  %s\n", quizID, q.QuizTitle, column)
			}

			if !write || len(suggestions) == 0 {
				return nil
			}

			store := mapping.NewStore(cfg.Files.Mapping)
			backupPath, err := store.MergeWithBackup(course, suggestions)
			if err != nil {
				return err
			}
			event := log.Info().
				Str("path", store.Path()).
				Int("merged", len(suggestions))
			if backupPath != "" {
				event = event.Str("backup", backupPath)
			}
			event.Msg("Mapping file updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&courseID, "course-id", "", "course id (default: CANVAS_COURSE_ID)")
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "quiz metadata index path (default from config)")
	cmd.Flags().BoolVar(&write, "write", false, "merge suggestions into the mapping file (creates a backup)")
	return cmd
}
