package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/mazoezi/core/content"
)

type subjectRow struct {
	ID        int    `db:"id"`
	ClassID   int    `db:"class_id"`
	Name      string `db:"name"`
	IsPreview bool   `db:"is_preview"`
}

func (r subjectRow) subject() content.Subject {
	return content.Subject(r)
}

type chapterRow struct {
	ID        int    `db:"id"`
	SubjectID int    `db:"subject_id"`
	Name      string `db:"name"`
	IsPreview bool   `db:"is_preview"`
}

func (r chapterRow) chapter() content.Chapter {
	return content.Chapter(r)
}

type questionRow struct {
	ID            int          `db:"id"`
	ChapterID     int          `db:"chapter_id"`
	Question      string       `db:"question"`
	Answer        string       `db:"answer"`
	Difficulty    string       `db:"difficulty"`
	Type          string       `db:"question_type"`
	Options       jsonbStrings `db:"options"`
	CorrectOption null.Int     `db:"correct_option"`
	Explanation   null.String  `db:"explanation"`
}

func (r questionRow) question() content.Question {
	return content.Question{
		ID:            r.ID,
		ChapterID:     r.ChapterID,
		Question:      r.Question,
		Answer:        r.Answer,
		Difficulty:    r.Difficulty,
		Type:          r.Type,
		Options:       r.Options,
		CorrectOption: r.CorrectOption.Ptr(),
		Explanation:   r.Explanation.String,
	}
}

type contentRepository struct {
	db *sqlx.DB
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *sqlx.DB) *contentRepository {
	return &contentRepository{db: db}
}

func trapNoRowsErr(err, notFound error, msg string) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}

func (repo contentRepository) QueryClasses(ctx context.Context) ([]content.Class, error) {
	classes := make([]content.Class, 0)
	query := `SELECT id, name FROM class ORDER BY id`
	if err := repo.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	return classes, nil
}

func (repo contentRepository) GetClass(ctx context.Context, id int) (content.Class, error) {
	var cls content.Class
	query := `SELECT id, name FROM class WHERE id = $1`
	if err := repo.db.GetContext(ctx, &cls, query, id); err != nil {
		return content.Class{}, trapNoRowsErr(err, content.ErrClassNotFound, "finding class")
	}
	return cls, nil
}

func (repo contentRepository) CreateClass(ctx context.Context, cls content.Class) (content.Class, error) {
	query := `INSERT INTO class (name) VALUES ($1) RETURNING id`
	if err := repo.db.GetContext(ctx, &cls.ID, query, cls.Name); err != nil {
		return content.Class{}, errors.Wrap(err, "inserting class")
	}
	return cls, nil
}

func (repo contentRepository) querySubjects(ctx context.Context, query string, args ...interface{}) ([]content.Subject, error) {
	rows := make([]subjectRow, 0)
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	subjects := make([]content.Subject, 0, len(rows))
	for _, row := range rows {
		subjects = append(subjects, row.subject())
	}
	return subjects, nil
}

func (repo contentRepository) QuerySubjects(ctx context.Context, classID int) ([]content.Subject, error) {
	return repo.querySubjects(ctx, `SELECT id, class_id, name, is_preview FROM subject WHERE class_id = $1 ORDER BY id`, classID)
}

func (repo contentRepository) QueryAllSubjects(ctx context.Context) ([]content.Subject, error) {
	return repo.querySubjects(ctx, `SELECT id, class_id, name, is_preview FROM subject ORDER BY id`)
}

func (repo contentRepository) GetSubject(ctx context.Context, id int) (content.Subject, error) {
	var row subjectRow
	query := `SELECT id, class_id, name, is_preview FROM subject WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		return content.Subject{}, trapNoRowsErr(err, content.ErrSubjectNotFound, "finding subject")
	}
	return row.subject(), nil
}

func (repo contentRepository) CreateSubject(ctx context.Context, sub content.Subject) (content.Subject, error) {
	query := `INSERT INTO subject (class_id, name, is_preview) VALUES ($1, $2, $3) RETURNING id`
	if err := repo.db.GetContext(ctx, &sub.ID, query, sub.ClassID, sub.Name, sub.IsPreview); err != nil {
		return content.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return sub, nil
}

func (repo contentRepository) queryChapters(ctx context.Context, query string, args ...interface{}) ([]content.Chapter, error) {
	rows := make([]chapterRow, 0)
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying chapters")
	}
	chapters := make([]content.Chapter, 0, len(rows))
	for _, row := range rows {
		chapters = append(chapters, row.chapter())
	}
	return chapters, nil
}

func (repo contentRepository) QueryChapters(ctx context.Context, subjectID int) ([]content.Chapter, error) {
	return repo.queryChapters(ctx, `SELECT id, subject_id, name, is_preview FROM chapter WHERE subject_id = $1 ORDER BY id`, subjectID)
}

func (repo contentRepository) QueryAllChapters(ctx context.Context) ([]content.Chapter, error) {
	return repo.queryChapters(ctx, `SELECT id, subject_id, name, is_preview FROM chapter ORDER BY id`)
}

func (repo contentRepository) GetChapter(ctx context.Context, id int) (content.Chapter, error) {
	var row chapterRow
	query := `SELECT id, subject_id, name, is_preview FROM chapter WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		return content.Chapter{}, trapNoRowsErr(err, content.ErrChapterNotFound, "finding chapter")
	}
	return row.chapter(), nil
}

func (repo contentRepository) CreateChapter(ctx context.Context, ch content.Chapter) (content.Chapter, error) {
	query := `INSERT INTO chapter (subject_id, name, is_preview) VALUES ($1, $2, $3) RETURNING id`
	if err := repo.db.GetContext(ctx, &ch.ID, query, ch.SubjectID, ch.Name, ch.IsPreview); err != nil {
		return content.Chapter{}, errors.Wrap(err, "inserting chapter")
	}
	return ch, nil
}

func (repo contentRepository) QueryQuestions(ctx context.Context, chapterID int) ([]content.Question, error) {
	rows := make([]questionRow, 0)
	query := `
SELECT id, chapter_id, question, answer, difficulty, question_type, options, correct_option, explanation
FROM question
WHERE chapter_id = $1
ORDER BY id`
	if err := repo.db.SelectContext(ctx, &rows, query, chapterID); err != nil {
		return nil, errors.Wrap(err, "querying questions")
	}

	questions := make([]content.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, row.question())
	}
	return questions, nil
}

func (repo contentRepository) CreateQuestion(ctx context.Context, q content.Question) (content.Question, error) {
	query := `
INSERT INTO question (chapter_id, question, answer, difficulty, question_type, options, correct_option, explanation)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`
	err := repo.db.GetContext(
		ctx, &q.ID, query,
		q.ChapterID, q.Question, q.Answer, q.Difficulty, q.Type,
		jsonbStrings(q.Options), null.IntFromPtr(q.CorrectOption), null.NewString(q.Explanation, q.Explanation != ""),
	)
	if err != nil {
		return content.Question{}, errors.Wrap(err, "inserting question")
	}
	return q, nil
}
