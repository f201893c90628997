package tests

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/trezcool/mazoezi/core/content"
	"github.com/trezcool/mazoezi/core/progress"
	"github.com/trezcool/mazoezi/core/user"
	"github.com/trezcool/mazoezi/tests"
)

type contentFixture struct {
	*fixture

	usr            user.User
	token          string
	class1, class2 content.Class
	subj1, subj2   content.Subject
	chap1, chap2   content.Chapter
}

// setupContent seeds two classes and locks usr to class1.
func setupContent(t *testing.T) *contentFixture {
	t.Helper()
	fix := &contentFixture{fixture: setup(t)}

	fix.usr = testutil.CreateUser(t, fix.usrRepo, "awe@test.cd", "secret1", true)
	fix.token = getToken(t, fix.usr, false)

	fix.class1 = testutil.CreateClass(t, fix.contentRepo, "Form 1")
	fix.class2 = testutil.CreateClass(t, fix.contentRepo, "Form 2")
	fix.subj1 = testutil.CreateSubject(t, fix.contentRepo, fix.class1.ID, "Math")
	fix.subj2 = testutil.CreateSubject(t, fix.contentRepo, fix.class2.ID, "Physics")
	fix.chap1 = testutil.CreateChapter(t, fix.contentRepo, fix.subj1.ID, "Algebra")
	fix.chap2 = testutil.CreateChapter(t, fix.contentRepo, fix.subj2.ID, "Motion")

	if _, err := fix.profileSvc.SelectClass(context.Background(), fix.usr.ID, fix.class1.ID); err != nil {
		t.Fatalf("SelectClass() failed: %v", err)
	}
	return fix
}

func Test_home(t *testing.T) {
	fix := setupContent(t)

	req, rec := newRequest(http.MethodGet, "/")
	fix.app.ServeHTTP(rec, req)

	tt := httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, map[string]interface{}{
			"page":    "home",
			"classes": []content.Class{fix.class1, fix.class2},
		}),
	}
	checkCodeAndData(t, tt, rec)
}

func Test_sessionRequired(t *testing.T) {
	fix := setupContent(t)

	tests := []httpTest{
		{
			name:     "dashboard",
			path:     "/dashboard",
			wantCode: http.StatusSeeOther,
			wantLoc:  "/login?next=%2Fdashboard",
		},
		{
			name:     "class page",
			path:     fmt.Sprintf("/class/%d", fix.class1.ID),
			wantCode: http.StatusSeeOther,
			wantLoc:  fmt.Sprintf("/login?next=%%2Fclass%%2F%d", fix.class1.ID),
		},
		{
			name:     "garbage token",
			path:     "/dashboard",
			token:    "lol",
			wantCode: http.StatusSeeOther,
			wantLoc:  "/login?next=%2Fdashboard",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			fix.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_navigationGuard(t *testing.T) {
	fix := setupContent(t)

	freshUsr := testutil.CreateUser(t, fix.usrRepo, "fresh@test.cd", "secret1", true)
	freshToken := getToken(t, freshUsr, false)

	classPath := fmt.Sprintf("/class/%d", fix.class1.ID)
	subjectPath := fmt.Sprintf("%s/subject/%d", classPath, fix.subj1.ID)

	tests := []httpTest{
		{
			name:     "no profile redirects to class selection",
			path:     classPath,
			token:    freshToken,
			wantCode: http.StatusSeeOther,
			wantLoc:  "/select-class",
		},
		{
			name:     "own class is served",
			path:     classPath,
			token:    fix.token,
			wantCode: http.StatusOK,
		},
		{
			name:     "another class rewrites to the selected class",
			path:     fmt.Sprintf("/class/%d", fix.class2.ID),
			token:    fix.token,
			wantCode: http.StatusSeeOther,
			wantLoc:  classPath,
		},
		{
			name:     "own subject is served",
			path:     subjectPath,
			token:    fix.token,
			wantCode: http.StatusOK,
		},
		{
			name:     "another class's subject redirects to the class",
			path:     fmt.Sprintf("%s/subject/%d", classPath, fix.subj2.ID),
			token:    fix.token,
			wantCode: http.StatusSeeOther,
			wantLoc:  classPath,
		},
		{
			name:     "own chapter is served",
			path:     fmt.Sprintf("%s/chapter/%d", subjectPath, fix.chap1.ID),
			token:    fix.token,
			wantCode: http.StatusOK,
		},
		{
			name:     "another subject's chapter redirects to the subject",
			path:     fmt.Sprintf("%s/chapter/%d", subjectPath, fix.chap2.ID),
			token:    fix.token,
			wantCode: http.StatusSeeOther,
			wantLoc:  subjectPath,
		},
		{
			name:     "non-numeric id",
			path:     "/class/lol",
			token:    fix.token,
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			fix.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_classPage(t *testing.T) {
	fix := setupContent(t)

	req, rec := newAuthRequest(http.MethodGet, fmt.Sprintf("/class/%d", fix.class1.ID), fix.token)
	fix.app.ServeHTTP(rec, req)

	tt := httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, map[string]interface{}{
			"page":     "class",
			"class":    fix.class1,
			"subjects": []content.Subject{fix.subj1},
		}),
	}
	checkCodeAndData(t, tt, rec)
}

func Test_dashboard(t *testing.T) {
	fix := setupContent(t)
	ctx := context.Background()

	var questions []content.Question
	for i := 0; i < 4; i++ {
		questions = append(questions, testutil.CreateQuestion(t, fix.contentRepo, fix.chap1.ID, "Q", "A"))
	}
	if _, err := fix.progressSvc.Record(ctx, fix.usr.ID, progress.NewProgress{QuestionID: questions[0].ID, Status: progress.StatusCorrect}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if _, err := fix.progressSvc.Record(ctx, fix.usr.ID, progress.NewProgress{QuestionID: questions[1].ID, Status: progress.StatusIncorrect}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	req, rec := newAuthRequest(http.MethodGet, "/dashboard", fix.token)
	fix.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard code = %v; want %v (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var payload struct {
		Page  string         `json:"page"`
		Email string         `json:"email"`
		Class content.Class  `json:"class"`
		Stats progress.Stats `json:"stats"`
	}
	if err := decodeBody(rec, &payload); err != nil {
		t.Fatalf("decoding dashboard payload: %v", err)
	}
	if payload.Email != fix.usr.Email {
		t.Errorf("dashboard email = %q; want %q", payload.Email, fix.usr.Email)
	}
	if payload.Class.ID != fix.class1.ID {
		t.Errorf("dashboard class = %+v; want the selected class", payload.Class)
	}
	want := progress.Stats{Total: 4, Attempted: 2, Correct: 1, CompletionPct: 50, AccuracyPct: 50}
	if payload.Stats != want {
		t.Errorf("dashboard stats = %+v; want %+v", payload.Stats, want)
	}

	// no profile yet -> class selection first
	freshUsr := testutil.CreateUser(t, fix.usrRepo, "fresh@test.cd", "secret1", true)
	req, rec = newAuthRequest(http.MethodGet, "/dashboard", getToken(t, freshUsr, false))
	fix.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusSeeOther, wantLoc: "/select-class"}, rec)
}

func Test_selectClass(t *testing.T) {
	fix := setupContent(t)

	freshUsr := testutil.CreateUser(t, fix.usrRepo, "fresh@test.cd", "secret1", true)
	freshToken := getToken(t, freshUsr, false)

	tests := []httpTest{
		{
			name:     "fresh user sees the class list",
			method:   http.MethodGet,
			path:     "/select-class",
			token:    freshToken,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]interface{}{
				"page":    "select-class",
				"classes": []content.Class{fix.class1, fix.class2},
			}),
		},
		{
			name:     "locked user is sent to their class",
			method:   http.MethodGet,
			path:     "/select-class",
			token:    fix.token,
			wantCode: http.StatusSeeOther,
			wantLoc:  fmt.Sprintf("/class/%d", fix.class1.ID),
		},
		{
			name:     "selecting a class redirects to it",
			method:   http.MethodPost,
			path:     "/select-class",
			token:    freshToken,
			body:     []byte(fmt.Sprintf(`{"class_id":%d}`, fix.class2.ID)),
			wantCode: http.StatusSeeOther,
			wantLoc:  fmt.Sprintf("/class/%d", fix.class2.ID),
		},
		{
			name:     "re-selecting overwrites",
			method:   http.MethodPost,
			path:     "/select-class",
			token:    fix.token,
			body:     []byte(fmt.Sprintf(`{"class_id":%d}`, fix.class2.ID)),
			wantCode: http.StatusSeeOther,
			wantLoc:  fmt.Sprintf("/class/%d", fix.class2.ID),
		},
		{
			name:     "unknown class",
			method:   http.MethodPost,
			path:     "/select-class",
			token:    freshToken,
			body:     []byte(`{"class_id":999}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing class",
			method:   http.MethodPost,
			path:     "/select-class",
			token:    freshToken,
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			fix.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
