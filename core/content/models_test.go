package content

import (
	"testing"

	"github.com/trezcool/mazoezi/core"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("expected *core.ValidationError; got %T (%v)", err, err)
	}
	flds := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		flds[f.Field] = f.Error
	}
	return flds
}

func TestNewQuestion_Validate(t *testing.T) {
	tests := []struct {
		name     string
		nq       NewQuestion
		wantFlds map[string]string // nil means valid
	}{
		{
			name: "valid theory",
			nq:   NewQuestion{ChapterID: 1, Type: TypeTheory, Question: "What is 2+2?", Answer: "4"},
		},
		{
			name: "type defaults to theory",
			nq:   NewQuestion{ChapterID: 1, Question: "What is 2+2?", Answer: "4"},
		},
		{
			name: "valid mcq",
			nq: NewQuestion{
				ChapterID: 1, Type: TypeMCQ, Question: "Pick one",
				Options: []string{"a", "b", "c", "d"}, CorrectOption: 2,
			},
		},
		{
			name:     "missing question text",
			nq:       NewQuestion{ChapterID: 1, Type: TypeTheory, Question: "   ", Answer: "4"},
			wantFlds: map[string]string{"question": "Question is required."},
		},
		{
			name:     "theory without answer",
			nq:       NewQuestion{ChapterID: 1, Type: TypeTheory, Question: "What is 2+2?"},
			wantFlds: map[string]string{"answer": "Answer is required for theory questions."},
		},
		{
			name: "mcq with too few options",
			nq: NewQuestion{
				ChapterID: 1, Type: TypeMCQ, Question: "Pick one",
				Options: []string{"a", "b", "c"},
			},
			wantFlds: map[string]string{"options": "All 4 options are required for MCQ."},
		},
		{
			name: "mcq with a blank option",
			nq: NewQuestion{
				ChapterID: 1, Type: TypeMCQ, Question: "Pick one",
				Options: []string{"a", " ", "c", "d"},
			},
			wantFlds: map[string]string{"options": "All 4 options are required for MCQ."},
		},
		{
			name: "mcq with out-of-range correct option",
			nq: NewQuestion{
				ChapterID: 1, Type: TypeMCQ, Question: "Pick one",
				Options: []string{"a", "b", "c", "d"}, CorrectOption: 4,
			},
			wantFlds: map[string]string{"correct_option": "Correct option must be between 0 and 3."},
		},
		{
			name:     "unknown type",
			nq:       NewQuestion{ChapterID: 1, Type: "essay", Question: "Q", Answer: "A"},
			wantFlds: map[string]string{"question_type": "Question type must be theory or mcq."},
		},
		{
			name:     "unknown difficulty",
			nq:       NewQuestion{ChapterID: 1, Type: TypeTheory, Question: "Q", Answer: "A", Difficulty: "insane"},
			wantFlds: map[string]string{"difficulty": "Difficulty must be easy, medium or hard."},
		},
		{
			name:     "missing chapter",
			nq:       NewQuestion{Type: TypeTheory, Question: "Q", Answer: "A"},
			wantFlds: map[string]string{"chapter_id": "Chapter is required."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nq.Validate()
			if tt.wantFlds == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected an error")
			}
			flds := fieldErrors(t, err)
			for fld, msg := range tt.wantFlds {
				if got := flds[fld]; got != msg {
					t.Errorf("Validate() field %q = %q; want %q", fld, got, msg)
				}
			}
		})
	}
}

func TestNewQuestion_question(t *testing.T) {
	nq := NewQuestion{
		ChapterID: 1, Type: TypeMCQ, Question: "Pick one",
		Options: []string{"a", "b", "c", "d"}, CorrectOption: 2,
		Explanation: "because",
	}
	if err := nq.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	q := nq.question()
	if q.Answer != "c" {
		t.Errorf("question().Answer = %q; want the chosen option's text", q.Answer)
	}
	if q.CorrectOption == nil || *q.CorrectOption != 2 {
		t.Errorf("question().CorrectOption = %v; want 2", q.CorrectOption)
	}

	theory := NewQuestion{ChapterID: 1, Type: TypeTheory, Question: "Q", Answer: " 4 "}
	if err := theory.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	tq := theory.question()
	if tq.Answer != "4" {
		t.Errorf("question().Answer = %q; want %q", tq.Answer, "4")
	}
	if tq.Options != nil || tq.CorrectOption != nil {
		t.Errorf("question() theory must not carry options; got %+v", tq)
	}
}

func TestNewClass_Validate(t *testing.T) {
	nc := NewClass{Name: "  "}
	if err := nc.Validate(); err == nil {
		t.Error("Validate() expected an error for a blank name")
	}
	nc = NewClass{Name: " Form 1 "}
	if err := nc.Validate(); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}
	if nc.Name != "Form 1" {
		t.Errorf("Validate() Name = %q; want trimmed", nc.Name)
	}
}
