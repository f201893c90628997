package tests

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/trezcool/mazoezi/core/content"
	"github.com/trezcool/mazoezi/tests"
)

func Test_adminIndex(t *testing.T) {
	fix := setupContent(t)

	admin := testutil.CreateAdmin(t, fix.usrRepo, "boss@test.cd", "secret1")
	adminToken := getToken(t, admin, true)

	tests := []httpTest{
		{
			name:     "anonymous is sent to admin login",
			wantCode: http.StatusSeeOther,
			wantLoc:  "/login?next=%2Fadmin",
		},
		{
			name:     "non-admin is sent to admin login",
			token:    fix.token,
			wantCode: http.StatusSeeOther,
			wantLoc:  "/admin/login",
		},
		{
			name:     "admin gets the joined lists",
			token:    adminToken,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]interface{}{
				"page":     "admin",
				"classes":  []content.Class{fix.class1, fix.class2},
				"subjects": []content.Subject{fix.subj1, fix.subj2},
				"chapters": []content.Chapter{fix.chap1, fix.chap2},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/admin", tt.token)
			fix.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_adminForms(t *testing.T) {
	fix := setupContent(t)

	admin := testutil.CreateAdmin(t, fix.usrRepo, "boss@test.cd", "secret1")
	adminToken := getToken(t, admin, true)

	tests := []httpTest{
		{
			name:     "add class",
			path:     "/admin/classes",
			body:     []byte(`{"name":"Form 3"}`),
			wantCode: http.StatusCreated,
		},
		{
			name:     "add class without name",
			path:     "/admin/classes",
			body:     []byte(`{"name":"  "}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "add subject",
			path:     "/admin/subjects",
			body:     []byte(fmt.Sprintf(`{"class_id":%d,"name":"Chemistry"}`, fix.class1.ID)),
			wantCode: http.StatusCreated,
		},
		{
			name:     "add subject without class",
			path:     "/admin/subjects",
			body:     []byte(`{"name":"Chemistry"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "add chapter",
			path:     "/admin/chapters",
			body:     []byte(fmt.Sprintf(`{"subject_id":%d,"name":"Fractions"}`, fix.subj1.ID)),
			wantCode: http.StatusCreated,
		},
		{
			name:     "add theory question",
			path:     "/admin/questions",
			body:     []byte(fmt.Sprintf(`{"chapter_id":%d,"question_type":"theory","question":"What is 2+2?","answer":"4"}`, fix.chap1.ID)),
			wantCode: http.StatusCreated,
		},
		{
			name:     "add mcq question",
			path:     "/admin/questions",
			body:     []byte(fmt.Sprintf(`{"chapter_id":%d,"question_type":"mcq","question":"Pick one","options":["a","b","c","d"],"correct_option":1}`, fix.chap1.ID)),
			wantCode: http.StatusCreated,
		},
		{
			name:     "theory question without answer",
			path:     "/admin/questions",
			body:     []byte(fmt.Sprintf(`{"chapter_id":%d,"question_type":"theory","question":"What is 2+2?"}`, fix.chap1.ID)),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"answer":"Answer is required for theory questions."}`),
		},
		{
			name:     "mcq question with missing options",
			path:     "/admin/questions",
			body:     []byte(fmt.Sprintf(`{"chapter_id":%d,"question_type":"mcq","question":"Pick one","options":["a","b"]}`, fix.chap1.ID)),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"options":"All 4 options are required for MCQ."}`),
		},
		{
			name:     "question without text",
			path:     "/admin/questions",
			body:     []byte(fmt.Sprintf(`{"chapter_id":%d,"question_type":"theory","answer":"4"}`, fix.chap1.ID)),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"question":"Question is required."}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, tt.path, adminToken, tt.body)
			fix.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// mcq answer mirrors the chosen option
	questions, err := fix.contentRepo.QueryQuestions(context.Background(), fix.chap1.ID)
	if err != nil {
		t.Fatalf("QueryQuestions() failed: %v", err)
	}
	var found bool
	for _, q := range questions {
		if q.Type == content.TypeMCQ {
			found = true
			if q.Answer != "b" {
				t.Errorf("mcq answer = %q; want the chosen option's text", q.Answer)
			}
		}
	}
	if !found {
		t.Error("mcq question was not stored")
	}
}
