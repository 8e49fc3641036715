package main

import (
	"github.com/spf13/cobra"

	"github.com/vandank/CanvasAutomateQuiz/internal/canvas"
	"github.com/vandank/CanvasAutomateQuiz/internal/index"
)

func buildIndexCmd() *cobra.Command {
	var courseID string

	cmd := &cobra.Command{
		Use:   "build-index",
		Short: "Build the quiz metadata index for a course",
		Long: "Fetches every quiz of the course together with its quiz-type assignments\n" +
			"and writes the merged metadata index. Rebuilding replaces the index file\n" +
			"wholesale.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(true)
			if err != nil {
				return err
			}
			course, err := requireCourseID(cfg, courseID)
			if err != nil {
				return err
			}

			client := canvas.NewClient(cfg)
			entries, err := index.NewBuilder(client).Build(cmd.Context(), course)
			if err != nil {
				return err
			}

			store := index.NewStore(cfg.Files.MetadataIndex)
			if err := store.Save(entries); err != nil {
				return err
			}

			mapped := 0
			for _, e := range entries {
				if e.GradebookColumn != "" {
					mapped++
				}
			}
			log.Info().
				Str("course_id", course).
				Int("quizzes", len(entries)).
				Int("gradebook_mapped", mapped).
				Str("path", store.Path()).
				Msg("Quiz metadata index written")
			return nil
		},
	}

	cmd.Flags().StringVar(&courseID, "course-id", "", "course id (default: CANVAS_COURSE_ID)")
	return cmd
}
