package model

type Bucket string

const (
	BucketOnTime       Bucket = "on_time"
	BucketLate         Bucket = "late"
	BucketNotAttempted Bucket = "not_attempted"
)

// Classification is the per-student outcome of one reconciliation run.
// InProgress marks submissions that exist but never finished; they grade
// the same as not-attempted but reports keep them distinguishable.
type Classification struct {
	UserID     int64    `json:"user_id"`
	Name       string   `json:"name"`
	LoginID    string   `json:"login_id"`
	Bucket     Bucket   `json:"bucket"`
	InProgress bool     `json:"in_progress,omitempty"`
	Score      *float64 `json:"score,omitempty"`
	FinishedAt *string  `json:"finished_at,omitempty"`
}
