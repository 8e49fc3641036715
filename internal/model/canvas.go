package model

// User as embedded in enrollments or returned by the include[]=user
// expansion on quiz submission listings.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	LoginID string `json:"login_id"`
}

// Enrollment is one active registration in a course. The roster built from
// these is the ground truth for who gets classified.
type Enrollment struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	User User   `json:"user"`
}

// Submission is one quiz submission record. FinishedAt is nil while an
// attempt is still in progress or was abandoned.
type Submission struct {
	ID                 int64    `json:"id"`
	UserID             int64    `json:"user_id"`
	Attempt            int      `json:"attempt"`
	Score              *float64 `json:"score"`
	QuizPointsPossible *float64 `json:"quiz_points_possible"`
	StartedAt          *string  `json:"started_at"`
	FinishedAt         *string  `json:"finished_at"`
	TimeSpent          *int     `json:"time_spent"`
	WorkflowState      string   `json:"workflow_state"`
}

// Quiz metadata as returned by the quizzes endpoint. Timestamps are RFC 3339
// strings with a Z suffix; a nil DueAt means the quiz has no deadline set.
type Quiz struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	DueAt          *string  `json:"due_at"`
	UnlockAt       *string  `json:"unlock_at"`
	LockAt         *string  `json:"lock_at"`
	Published      bool     `json:"published"`
	PointsPossible *float64 `json:"points_possible"`
}

// Assignment is the gradebook-side entity. Quiz-backed assignments carry
// the quiz id and "online_quiz" in their submission types.
type Assignment struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	QuizID          *int64   `json:"quiz_id"`
	SubmissionTypes []string `json:"submission_types"`
}

// AssignmentInfo links a quiz to its gradebook column.
type AssignmentInfo struct {
	AssignmentID    int64
	AssignmentName  string
	GradebookColumn string
}

// QuizMetadataEntry is one record of the durable metadata index. Assignment
// fields stay empty for quizzes with no linked gradebook assignment.
type QuizMetadataEntry struct {
	CourseID        string   `json:"course_id"`
	QuizID          int64    `json:"quiz_id"`
	QuizTitle       string   `json:"quiz_title"`
	DueAt           *string  `json:"due_at"`
	UnlockAt        *string  `json:"unlock_at"`
	LockAt          *string  `json:"lock_at"`
	Published       bool     `json:"published"`
	PointsPossible  *float64 `json:"points_possible"`
	AssignmentID    int64    `json:"assignment_id,omitempty"`
	AssignmentName  string   `json:"assignment_name,omitempty"`
	GradebookColumn string   `json:"gradebook_column,omitempty"`
}
