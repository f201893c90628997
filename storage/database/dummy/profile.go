package dummydb

import (
	"context"

	"github.com/trezcool/mazoezi/core/profile"
)

type profileRepository struct {
	db *DB
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *DB) *profileRepository {
	return &profileRepository{db: db}
}

func (repo profileRepository) GetProfile(_ context.Context, userID string) (profile.Profile, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if prof, ok := repo.db.profiles[userID]; ok {
		return prof, nil
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (repo profileRepository) UpsertProfile(_ context.Context, prof profile.Profile) (profile.Profile, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.profiles[prof.UserID] = prof
	return prof, nil
}
