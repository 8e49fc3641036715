package main

import (
	"github.com/spf13/cobra"

	"github.com/vandank/CanvasAutomateQuiz/internal/canvas"
	"github.com/vandank/CanvasAutomateQuiz/internal/classify"
	"github.com/vandank/CanvasAutomateQuiz/internal/gradebook"
	"github.com/vandank/CanvasAutomateQuiz/internal/index"
	"github.com/vandank/CanvasAutomateQuiz/internal/mapping"
)

func updateGradebookCmd() *cobra.Command {
	var (
		courseID         string
		quizID           string
		assignmentColumn string
		outPath          string
	)

	cmd := &cobra.Command{
		Use:   "update-gradebook <grades.csv>",
		Short: "Patch an exported gradebook CSV with quiz attempt grades",
		Long: "Classifies the roster for a quiz (on-time = 1.00, late or not attempted\n" +
			"= 0.00) and writes the grades into the quiz's gradebook column of an\n" +
			"exported CSV. A new file is written next to the export; the source is\n" +
			"never modified.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(true)
			if err != nil {
				return err
			}
			course, err := requireCourseID(cfg, courseID)
			if err != nil {
				return err
			}
			quiz, err := requireQuizID(cfg, quizID)
			if err != nil {
				return err
			}

			resolver := mapping.NewResolver(
				index.NewStore(cfg.Files.MetadataIndex),
				mapping.NewStore(cfg.Files.Mapping),
			)
			column, err := resolver.Resolve(course, quiz, assignmentColumn)
			if err != nil {
				return err
			}
			log.Info().Str("column", column).Msg("Gradebook column resolved")

			classifier := classify.NewClassifier(canvas.NewClient(cfg))
			result, err := classifier.Classify(cmd.Context(), course, quiz)
			if err != nil {
				return err
			}
			grades := result.GradeValues()
			log.Info().Int("students", len(grades)).Msg("Grades computed")

			rows, err := gradebook.Load(args[0])
			if err != nil {
				return err
			}
			updated, err := gradebook.Patch(rows, column, grades)
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = gradebook.DefaultOutputPath(args[0])
			}
			if err := gradebook.Write(rows, outPath); err != nil {
				return err
			}

			log.Info().
				Str("path", outPath).
				Int("rows_updated", updated).
				Msg("Updated gradebook written; import it in Canvas under Grades, Actions, Import")
			return nil
		},
	}

	cmd.Flags().StringVar(&courseID, "course-id", "", "course id (default: CANVAS_COURSE_ID)")
	cmd.Flags().StringVar(&quizID, "quiz-id", "", "quiz id (default: CANVAS_QUIZ_ID)")
	cmd.Flags().StringVar(&assignmentColumn, "assignment-column", "", "exact column name as in the CSV header, e.g. 'ERDiagram Quizz (7176714)'")
	cmd.Flags().StringVar(&outPath, "out", "", "output CSV path (default: <grades>-updated.csv)")
	return cmd
}
