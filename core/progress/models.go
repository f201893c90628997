package progress

import (
	"time"

	"github.com/trezcool/mazoezi/core"
)

// Statuses
const (
	StatusAttempted = "attempted"
	StatusCorrect   = "correct"
	StatusIncorrect = "incorrect"
)

// Progress is one row per (user, question) pair, overwritten on re-attempt.
type Progress struct {
	UserID     string    `json:"user_id"`
	QuestionID int       `json:"question_id"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// Stats is what the dashboard shows for the user's selected class.
type Stats struct {
	Total         int `json:"total"`
	Attempted     int `json:"attempted"`
	Correct       int `json:"correct"`
	CompletionPct int `json:"completion_pct"`
	AccuracyPct   int `json:"accuracy_pct"`
}

// NewProgress records an attempt on a question.
type NewProgress struct {
	QuestionID int    `json:"question_id" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=attempted correct incorrect"`
}

func (np *NewProgress) Validate() error {
	np.Status = core.CleanString(np.Status, true /* lower */)
	return core.Validate.Struct(np)
}
