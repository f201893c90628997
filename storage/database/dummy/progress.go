package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/mazoezi/core/progress"
)

type progressRepository struct {
	db *DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) *progressRepository {
	return &progressRepository{db: db}
}

// classQuestionIDs must be called with db.mu held.
func (repo progressRepository) classQuestionIDs(classID int) map[int]bool {
	ids := make(map[int]bool)
	for _, q := range repo.db.questions {
		ch, ok := repo.db.chapters[q.ChapterID]
		if !ok {
			continue
		}
		sub, ok := repo.db.subjects[ch.SubjectID]
		if !ok {
			continue
		}
		if sub.ClassID == classID {
			ids[q.ID] = true
		}
	}
	return ids
}

func (repo progressRepository) CountClassQuestions(_ context.Context, classID int) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return len(repo.classQuestionIDs(classID)), nil
}

func (repo progressRepository) CountAttempted(_ context.Context, userID string, classID int) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	ids := repo.classQuestionIDs(classID)
	var count int
	for qid := range repo.db.progresses[userID] {
		if ids[qid] {
			count++
		}
	}
	return count, nil
}

func (repo progressRepository) CountCorrect(_ context.Context, userID string, classID int) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	ids := repo.classQuestionIDs(classID)
	var count int
	for qid, p := range repo.db.progresses[userID] {
		if ids[qid] && p.Status == progress.StatusCorrect {
			count++
		}
	}
	return count, nil
}

func (repo progressRepository) QueryRecent(_ context.Context, userID string, limit int) ([]progress.Progress, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	recent := make([]progress.Progress, 0, len(repo.db.progresses[userID]))
	for _, p := range repo.db.progresses[userID] {
		recent = append(recent, p)
	}
	sort.Slice(recent, func(i, j int) bool { return recent[i].UpdatedAt.After(recent[j].UpdatedAt) })
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

func (repo progressRepository) UpsertProgress(_ context.Context, p progress.Progress) (progress.Progress, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if repo.db.progresses[p.UserID] == nil {
		repo.db.progresses[p.UserID] = make(map[int]progress.Progress)
	}
	repo.db.progresses[p.UserID][p.QuestionID] = p
	return p, nil
}
