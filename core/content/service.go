package content

import (
	"context"
	"errors"
)

var (
	ErrClassNotFound   = errors.New("class not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrChapterNotFound = errors.New("chapter not found")
)

type (
	Repository interface {
		QueryClasses(ctx context.Context) ([]Class, error)
		GetClass(ctx context.Context, id int) (Class, error)
		CreateClass(ctx context.Context, cls Class) (Class, error)

		QuerySubjects(ctx context.Context, classID int) ([]Subject, error)
		QueryAllSubjects(ctx context.Context) ([]Subject, error)
		GetSubject(ctx context.Context, id int) (Subject, error)
		CreateSubject(ctx context.Context, sub Subject) (Subject, error)

		QueryChapters(ctx context.Context, subjectID int) ([]Chapter, error)
		QueryAllChapters(ctx context.Context) ([]Chapter, error)
		GetChapter(ctx context.Context, id int) (Chapter, error)
		CreateChapter(ctx context.Context, ch Chapter) (Chapter, error)

		QueryQuestions(ctx context.Context, chapterID int) ([]Question, error)
		CreateQuestion(ctx context.Context, q Question) (Question, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Classes(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryClasses(ctx)
}

func (svc *Service) Class(ctx context.Context, id int) (Class, error) {
	return svc.repo.GetClass(ctx, id)
}

func (svc *Service) Subjects(ctx context.Context, classID int) ([]Subject, error) {
	return svc.repo.QuerySubjects(ctx, classID)
}

func (svc *Service) AllSubjects(ctx context.Context) ([]Subject, error) {
	return svc.repo.QueryAllSubjects(ctx)
}

func (svc *Service) Subject(ctx context.Context, id int) (Subject, error) {
	return svc.repo.GetSubject(ctx, id)
}

func (svc *Service) Chapters(ctx context.Context, subjectID int) ([]Chapter, error) {
	return svc.repo.QueryChapters(ctx, subjectID)
}

func (svc *Service) AllChapters(ctx context.Context) ([]Chapter, error) {
	return svc.repo.QueryAllChapters(ctx)
}

func (svc *Service) Chapter(ctx context.Context, id int) (Chapter, error) {
	return svc.repo.GetChapter(ctx, id)
}

func (svc *Service) Questions(ctx context.Context, chapterID int) ([]Question, error) {
	return svc.repo.QueryQuestions(ctx, chapterID)
}

func (svc *Service) AddClass(ctx context.Context, nc NewClass) (Class, error) {
	if err := nc.Validate(); err != nil {
		return Class{}, err
	}
	return svc.repo.CreateClass(ctx, Class{Name: nc.Name})
}

func (svc *Service) AddSubject(ctx context.Context, ns NewSubject) (Subject, error) {
	if err := ns.Validate(); err != nil {
		return Subject{}, err
	}
	return svc.repo.CreateSubject(ctx, Subject{ClassID: ns.ClassID, Name: ns.Name})
}

func (svc *Service) AddChapter(ctx context.Context, nc NewChapter) (Chapter, error) {
	if err := nc.Validate(); err != nil {
		return Chapter{}, err
	}
	return svc.repo.CreateChapter(ctx, Chapter{SubjectID: nc.SubjectID, Name: nc.Name})
}

func (svc *Service) AddQuestion(ctx context.Context, nq NewQuestion) (Question, error) {
	if err := nq.Validate(); err != nil {
		return Question{}, err
	}
	return svc.repo.CreateQuestion(ctx, nq.question())
}
