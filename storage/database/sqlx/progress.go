package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/mazoezi/core"
	"github.com/trezcool/mazoezi/core/progress"
)

type progressRow struct {
	UserID     string    `db:"user_id"`
	QuestionID int       `db:"question_id"`
	Status     string    `db:"status"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

func (repo progressRepository) CountClassQuestions(ctx context.Context, classID int) (int, error) {
	var count int
	query := `
SELECT COUNT(*)
FROM question q
         JOIN chapter c ON c.id = q.chapter_id
         JOIN subject s ON s.id = c.subject_id
WHERE s.class_id = $1`
	if err := repo.db.GetContext(ctx, &count, query, classID); err != nil {
		return 0, errors.Wrap(err, "counting class questions")
	}
	return count, nil
}

func (repo progressRepository) CountAttempted(ctx context.Context, userID string, classID int) (int, error) {
	var count int
	query := `
SELECT COUNT(*)
FROM user_question_progress p
         JOIN question q ON q.id = p.question_id
         JOIN chapter c ON c.id = q.chapter_id
         JOIN subject s ON s.id = c.subject_id
WHERE p.user_id = $1
  AND s.class_id = $2`
	if err := repo.db.GetContext(ctx, &count, query, userID, classID); err != nil {
		return 0, errors.Wrap(err, "counting attempted questions")
	}
	return count, nil
}

func (repo progressRepository) CountCorrect(ctx context.Context, userID string, classID int) (int, error) {
	var count int
	query := `
SELECT COUNT(*)
FROM user_question_progress p
         JOIN question q ON q.id = p.question_id
         JOIN chapter c ON c.id = q.chapter_id
         JOIN subject s ON s.id = c.subject_id
WHERE p.user_id = $1
  AND s.class_id = $2
  AND p.status = 'correct'`
	if err := repo.db.GetContext(ctx, &count, query, userID, classID); err != nil {
		return 0, errors.Wrap(err, "counting correct questions")
	}
	return count, nil
}

func (repo progressRepository) QueryRecent(ctx context.Context, userID string, limit int) ([]progress.Progress, error) {
	rows := make([]progressRow, 0)
	ordering := core.DBOrdering{Field: "updated_at"}
	query := `
SELECT user_id, question_id, status, updated_at
FROM user_question_progress
WHERE user_id = $1
ORDER BY ` + ordering.String() + `
LIMIT $2`
	if err := repo.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, errors.Wrap(err, "querying recent progress")
	}

	recent := make([]progress.Progress, 0, len(rows))
	for _, row := range rows {
		recent = append(recent, progress.Progress(row))
	}
	return recent, nil
}

func (repo progressRepository) UpsertProgress(ctx context.Context, p progress.Progress) (progress.Progress, error) {
	query := `
INSERT INTO user_question_progress (user_id, question_id, status, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, question_id) DO UPDATE
    SET status     = EXCLUDED.status,
        updated_at = EXCLUDED.updated_at`
	_, err := repo.db.ExecContext(ctx, query, p.UserID, p.QuestionID, p.Status, p.UpdatedAt)
	if err != nil {
		return progress.Progress{}, errors.Wrap(err, "upserting progress")
	}
	return p, nil
}
