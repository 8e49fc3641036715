package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vandank/CanvasAutomateQuiz/internal/config"
	"github.com/vandank/CanvasAutomateQuiz/internal/logger"
)

func main() {
	root := &cobra.Command{
		Use:           "quizgrade",
		Short:         "Reconcile Canvas quiz attempt timing against the course roster",
		Long: "quizgrade pulls quiz submissions, enrollments, and quiz metadata from\n" +
			"the Canvas API, classifies every enrolled student as on-time, late, or\n" +
			"not-attempted against the quiz due date, and writes the result as text\n" +
			"or JSON reports or directly into an exported gradebook CSV.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		buildIndexCmd(),
		suggestMappingCmd(),
		attemptReportCmd(),
		updateGradebookCmd(),
	)

	if err := root.Execute(); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// setup loads the configuration, initializes logging, and tags every log
// line of this invocation with a run id. Commands that talk to the API set
// requireToken so a missing token fails before any work starts.
func setup(requireToken bool) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, logger.Get(), fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get().With().Str("run_id", uuid.NewString()).Logger()

	if requireToken {
		if err := cfg.Validate(); err != nil {
			return nil, log, err
		}
	}
	return cfg, log, nil
}

func requireCourseID(cfg *config.Config, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.API.CourseID != "" {
		return cfg.API.CourseID, nil
	}
	return "", fmt.Errorf("course id is required: pass --course-id or set CANVAS_COURSE_ID")
}

func requireQuizID(cfg *config.Config, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.API.QuizID != "" {
		return cfg.API.QuizID, nil
	}
	return "", fmt.Errorf("quiz id is required: pass --quiz-id or set CANVAS_QUIZ_ID")
}
