package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/mazoezi/core/content"
)

type contentRepository struct {
	db *DB
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *DB) *contentRepository {
	return &contentRepository{db: db}
}

func (repo contentRepository) QueryClasses(_ context.Context) ([]content.Class, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	classes := make([]content.Class, 0, len(repo.db.classes))
	for _, cls := range repo.db.classes {
		classes = append(classes, cls)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes, nil
}

func (repo contentRepository) GetClass(_ context.Context, id int) (content.Class, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if cls, ok := repo.db.classes[id]; ok {
		return cls, nil
	}
	return content.Class{}, content.ErrClassNotFound
}

func (repo contentRepository) CreateClass(_ context.Context, cls content.Class) (content.Class, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	cls.ID = repo.db.nextID()
	repo.db.classes[cls.ID] = cls
	return cls, nil
}

func (repo contentRepository) QuerySubjects(_ context.Context, classID int) ([]content.Subject, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	subjects := make([]content.Subject, 0)
	for _, sub := range repo.db.subjects {
		if sub.ClassID == classID {
			subjects = append(subjects, sub)
		}
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects, nil
}

func (repo contentRepository) QueryAllSubjects(_ context.Context) ([]content.Subject, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	subjects := make([]content.Subject, 0, len(repo.db.subjects))
	for _, sub := range repo.db.subjects {
		subjects = append(subjects, sub)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects, nil
}

func (repo contentRepository) GetSubject(_ context.Context, id int) (content.Subject, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if sub, ok := repo.db.subjects[id]; ok {
		return sub, nil
	}
	return content.Subject{}, content.ErrSubjectNotFound
}

func (repo contentRepository) CreateSubject(_ context.Context, sub content.Subject) (content.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	sub.ID = repo.db.nextID()
	repo.db.subjects[sub.ID] = sub
	return sub, nil
}

func (repo contentRepository) QueryChapters(_ context.Context, subjectID int) ([]content.Chapter, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	chapters := make([]content.Chapter, 0)
	for _, ch := range repo.db.chapters {
		if ch.SubjectID == subjectID {
			chapters = append(chapters, ch)
		}
	}
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].ID < chapters[j].ID })
	return chapters, nil
}

func (repo contentRepository) QueryAllChapters(_ context.Context) ([]content.Chapter, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	chapters := make([]content.Chapter, 0, len(repo.db.chapters))
	for _, ch := range repo.db.chapters {
		chapters = append(chapters, ch)
	}
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].ID < chapters[j].ID })
	return chapters, nil
}

func (repo contentRepository) GetChapter(_ context.Context, id int) (content.Chapter, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if ch, ok := repo.db.chapters[id]; ok {
		return ch, nil
	}
	return content.Chapter{}, content.ErrChapterNotFound
}

func (repo contentRepository) CreateChapter(_ context.Context, ch content.Chapter) (content.Chapter, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	ch.ID = repo.db.nextID()
	repo.db.chapters[ch.ID] = ch
	return ch, nil
}

func (repo contentRepository) QueryQuestions(_ context.Context, chapterID int) ([]content.Question, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	questions := make([]content.Question, 0)
	for _, q := range repo.db.questions {
		if q.ChapterID == chapterID {
			questions = append(questions, q)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}

func (repo contentRepository) CreateQuestion(_ context.Context, q content.Question) (content.Question, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	q.ID = repo.db.nextID()
	repo.db.questions[q.ID] = q
	return q, nil
}
