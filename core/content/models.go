package content

import (
	"github.com/trezcool/mazoezi/core"
)

// Question types
const (
	TypeTheory = "theory"
	TypeMCQ    = "mcq"
)

// Difficulties
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const mcqOptionCount = 4

type Class struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Subject struct {
	ID        int    `json:"id"`
	ClassID   int    `json:"class_id"`
	Name      string `json:"name"`
	IsPreview bool   `json:"is_preview"`
}

type Chapter struct {
	ID        int    `json:"id"`
	SubjectID int    `json:"subject_id"`
	Name      string `json:"name"`
	IsPreview bool   `json:"is_preview"`
}

// Question is the flat persisted shape; the theory/mcq split lives in NewQuestion.
type Question struct {
	ID            int      `json:"id"`
	ChapterID     int      `json:"chapter_id"`
	Question      string   `json:"question"`
	Answer        string   `json:"answer"`
	Difficulty    string   `json:"difficulty"`
	Type          string   `json:"question_type"`
	Options       []string `json:"options,omitempty"`        // mcq only; always 4
	CorrectOption *int     `json:"correct_option,omitempty"` // mcq only; 0..3
	Explanation   string   `json:"explanation,omitempty"`
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name string `json:"name" validate:"required"`
}

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	return core.Validate.Struct(nc)
}

type NewSubject struct {
	ClassID int    `json:"class_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
}

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	return core.Validate.Struct(ns)
}

type NewChapter struct {
	SubjectID int    `json:"subject_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
}

func (nc *NewChapter) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	return core.Validate.Struct(nc)
}

// NewQuestion is the tagged theory|mcq boundary: Answer is required for theory,
// Options + CorrectOption for mcq. It is flattened to a Question only after
// Validate passes.
type NewQuestion struct {
	ChapterID     int      `json:"chapter_id"`
	Type          string   `json:"question_type"`
	Question      string   `json:"question"`
	Difficulty    string   `json:"difficulty"`
	Answer        string   `json:"answer"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation"`
}

func (nq *NewQuestion) Validate() error {
	nq.Question = core.CleanString(nq.Question)
	nq.Answer = core.CleanString(nq.Answer)
	nq.Explanation = core.CleanString(nq.Explanation)
	if nq.Type == "" {
		nq.Type = TypeTheory
	}
	if nq.Difficulty == "" {
		nq.Difficulty = DifficultyEasy
	}

	var flds []core.FieldError
	if nq.ChapterID == 0 {
		flds = append(flds, core.FieldError{Field: "chapter_id", Error: "Chapter is required."})
	}
	if nq.Question == "" {
		flds = append(flds, core.FieldError{Field: "question", Error: "Question is required."})
	}

	switch nq.Type {
	case TypeTheory:
		if nq.Answer == "" {
			flds = append(flds, core.FieldError{Field: "answer", Error: "Answer is required for theory questions."})
		}
	case TypeMCQ:
		opts := make([]string, 0, mcqOptionCount)
		for _, opt := range nq.Options {
			if opt = core.CleanString(opt); opt != "" {
				opts = append(opts, opt)
			}
		}
		if len(nq.Options) != mcqOptionCount || len(opts) != mcqOptionCount {
			flds = append(flds, core.FieldError{Field: "options", Error: "All 4 options are required for MCQ."})
		} else {
			nq.Options = opts
		}
		if nq.CorrectOption < 0 || nq.CorrectOption >= mcqOptionCount {
			flds = append(flds, core.FieldError{Field: "correct_option", Error: "Correct option must be between 0 and 3."})
		}
	default:
		flds = append(flds, core.FieldError{Field: "question_type", Error: "Question type must be theory or mcq."})
	}

	switch nq.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard: // pass
	default:
		flds = append(flds, core.FieldError{Field: "difficulty", Error: "Difficulty must be easy, medium or hard."})
	}

	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

// question flattens a validated NewQuestion to its persisted shape; for mcq the
// chosen option's text is duplicated into Answer for display/search convenience.
func (nq *NewQuestion) question() Question {
	q := Question{
		ChapterID:   nq.ChapterID,
		Question:    nq.Question,
		Difficulty:  nq.Difficulty,
		Type:        nq.Type,
		Explanation: nq.Explanation,
	}
	if nq.Type == TypeMCQ {
		correct := nq.CorrectOption
		q.Options = nq.Options
		q.CorrectOption = &correct
		q.Answer = nq.Options[correct]
	} else {
		q.Answer = nq.Answer
	}
	return q
}
