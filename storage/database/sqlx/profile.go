package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/mazoezi/core/profile"
)

type profileRow struct {
	UserID          string    `db:"user_id"`
	SelectedClassID int       `db:"selected_class_id"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type profileRepository struct {
	db *sqlx.DB
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *sqlx.DB) *profileRepository {
	return &profileRepository{db: db}
}

func (repo profileRepository) GetProfile(ctx context.Context, userID string) (profile.Profile, error) {
	var row profileRow
	query := `SELECT user_id, selected_class_id, updated_at FROM user_profile WHERE user_id = $1`
	if err := repo.db.GetContext(ctx, &row, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, errors.Wrap(err, "finding profile")
	}
	return profile.Profile(row), nil
}

func (repo profileRepository) UpsertProfile(ctx context.Context, prof profile.Profile) (profile.Profile, error) {
	query := `
INSERT INTO user_profile (user_id, selected_class_id, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE
    SET selected_class_id = EXCLUDED.selected_class_id,
        updated_at        = EXCLUDED.updated_at`
	_, err := repo.db.ExecContext(ctx, query, prof.UserID, prof.SelectedClassID, prof.UpdatedAt)
	if err != nil {
		return profile.Profile{}, errors.Wrap(err, "upserting profile")
	}
	return prof, nil
}
