package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vandank/CanvasAutomateQuiz/pkg/errors"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Files   FilesConfig   `yaml:"files"`
	Logging LoggingConfig `yaml:"logging"`
}

type APIConfig struct {
	BaseURL  string        `yaml:"base_url"`
	PageSize int           `yaml:"page_size"`
	Timeout  time.Duration `yaml:"timeout"`
	CourseID string        `yaml:"course_id"`
	QuizID   string        `yaml:"quiz_id"`

	// Token is never read from the config file; CANVAS_API_TOKEN only.
	Token string `yaml:"-"`
}

type FilesConfig struct {
	MetadataIndex string `yaml:"metadata_index"`
	Mapping       string `yaml:"mapping"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load builds the configuration once at process start: defaults, then the
// yaml file (CONFIG_PATH, default config.yaml, optional), then environment
// variables. A .env file in the working directory is picked up if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL:  "https://canvas.instructure.com/api/v1",
			PageSize: 100,
			Timeout:  60 * time.Second,
		},
		Files: FilesConfig{
			MetadataIndex: "quiz_metadata.json",
			Mapping:       "quiz_gradebook_columns.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if v := os.Getenv("CANVAS_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("CANVAS_COURSE_ID"); v != "" {
		cfg.API.CourseID = v
	}
	if v := os.Getenv("CANVAS_QUIZ_ID"); v != "" {
		cfg.API.QuizID = v
	}
	cfg.API.Token = os.Getenv("CANVAS_API_TOKEN")

	return cfg, nil
}

// Validate checks the parts every API-touching command needs up front.
func (c *Config) Validate() error {
	if c.API.Token == "" {
		return fmt.Errorf("%w: set CANVAS_API_TOKEN in the environment", errors.ErrMissingToken)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base URL is empty")
	}
	return nil
}
