package profile

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("profile not found")

type (
	Repository interface {
		GetProfile(ctx context.Context, userID string) (Profile, error)
		// UpsertProfile inserts or replaces the profile keyed by user; last write wins.
		UpsertProfile(ctx context.Context, prof Profile) (Profile, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Get(ctx context.Context, userID string) (Profile, error) {
	return svc.repo.GetProfile(ctx, userID)
}

// SelectClass records the user's chosen class. Safe to call repeatedly with
// different class ids.
func (svc *Service) SelectClass(ctx context.Context, userID string, classID int) (Profile, error) {
	return svc.repo.UpsertProfile(ctx, Profile{
		UserID:          userID,
		SelectedClassID: classID,
		UpdatedAt:       time.Now().UTC(),
	})
}
