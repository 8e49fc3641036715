package main

import (
	"github.com/spf13/cobra"

	"github.com/vandank/CanvasAutomateQuiz/internal/canvas"
	"github.com/vandank/CanvasAutomateQuiz/internal/classify"
	"github.com/vandank/CanvasAutomateQuiz/internal/report"
)

func attemptReportCmd() *cobra.Command {
	var (
		courseID string
		quizID   string
		outDir   string
		jsonPath string
		xlsxPath string
	)

	cmd := &cobra.Command{
		Use:   "attempt-report",
		Short: "Classify the roster for a quiz and write attempt reports",
		Long: "Classifies every enrolled student as on-time, late, or not-attempted\n" +
			"against the quiz due date and writes one text report per bucket,\n" +
			"optionally plus a JSON summary and an xlsx workbook.",
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
			quiz, err := requireQuizID(cfg, quizID)
			if err != nil {
				return err
			}

			classifier := classify.NewClassifier(canvas.NewClient(cfg))
			result, err := classifier.Classify(cmd.Context(), course, quiz)
			if err != nil {
				return err
			}

			if err := report.WriteTextReports(outDir, result); err != nil {
				return err
			}
			if jsonPath != "" {
				if err := report.WriteJSONSummary(jsonPath, result); err != nil {
					return err
				}
			}
			if xlsxPath != "" {
				if err := report.WriteWorkbook(xlsxPath, result); err != nil {
					return err
				}
			}

			onTime, late, notAttempted := result.Counts()
			log.Info().
				Str("quiz_id", quiz).
				Str("quiz_title", result.QuizTitle).
				Int("on_time", onTime).
				Int("late", late).
				Int("not_attempted", notAttempted).
				Str("out_dir", outDir).
				Msg("Attempt report written")
			return nil
		},
	}

	cmd.Flags().StringVar(&courseID, "course-id", "", "course id (default: CANVAS_COURSE_ID)")
	cmd.Flags().StringVar(&quizID, "quiz-id", "", "quiz id (default: CANVAS_QUIZ_ID)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for the per-bucket text reports")
	cmd.Flags().StringVar(&jsonPath, "json", "", "also write a JSON summary to this path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write an xlsx workbook to this path")
	return cmd
}
