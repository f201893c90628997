package progress

import (
	"context"
	"math"
	"time"
)

type (
	Repository interface {
		// CountClassQuestions counts questions whose chapter's subject belongs to the class.
		CountClassQuestions(ctx context.Context, classID int) (int, error)
		// CountAttempted counts the user's progress rows within the class's question set.
		CountAttempted(ctx context.Context, userID string, classID int) (int, error)
		// CountCorrect is CountAttempted additionally filtered to status = correct.
		CountCorrect(ctx context.Context, userID string, classID int) (int, error)
		QueryRecent(ctx context.Context, userID string, limit int) ([]Progress, error)
		// UpsertProgress inserts or replaces the row keyed by (user, question).
		UpsertProgress(ctx context.Context, p Progress) (Progress, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ClassStats computes the dashboard counts and percentages for the user's
// selected class. Correct is scoped to the class's question set so progress in
// another class never inflates accuracy.
func (svc *Service) ClassStats(ctx context.Context, userID string, classID int) (Stats, error) {
	total, err := svc.repo.CountClassQuestions(ctx, classID)
	if err != nil {
		return Stats{}, err
	}
	attempted, err := svc.repo.CountAttempted(ctx, userID, classID)
	if err != nil {
		return Stats{}, err
	}
	correct, err := svc.repo.CountCorrect(ctx, userID, classID)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		Total:         total,
		Attempted:     attempted,
		Correct:       correct,
		CompletionPct: pct(attempted, total),
		AccuracyPct:   pct(correct, attempted),
	}, nil
}

func (svc *Service) Recent(ctx context.Context, userID string, limit int) ([]Progress, error) {
	return svc.repo.QueryRecent(ctx, userID, limit)
}

func (svc *Service) Record(ctx context.Context, userID string, np NewProgress) (Progress, error) {
	if err := np.Validate(); err != nil {
		return Progress{}, err
	}
	return svc.repo.UpsertProgress(ctx, Progress{
		UserID:     userID,
		QuestionID: np.QuestionID,
		Status:     np.Status,
		UpdatedAt:  time.Now().UTC(),
	})
}

func pct(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
