package tests

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/trezcool/mazoezi/apps/api/echo"
	"github.com/trezcool/mazoezi/tests"
)

func Test_signup(t *testing.T) {
	fix := setup(t)
	testutil.CreateUser(t, fix.usrRepo, "taken@test.cd", "secret1", true)

	tests := []httpTest{
		{
			name:     "page payload",
			method:   http.MethodGet,
			path:     "/signup",
			wantCode: http.StatusOK,
			wantData: []byte(`{"page":"signup"}`),
		},
		{
			name:     "new account redirects to class selection",
			method:   http.MethodPost,
			path:     "/signup",
			body:     []byte(`{"email":"awe@test.cd","password":"secret1"}`),
			wantCode: http.StatusSeeOther,
			wantLoc:  "/select-class",
		},
		{
			name:     "duplicate email",
			method:   http.MethodPost,
			path:     "/signup",
			body:     []byte(`{"email":"taken@test.cd","password":"secret1"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "short password",
			method:   http.MethodPost,
			path:     "/signup",
			body:     []byte(`{"email":"awe2@test.cd","password":"meh"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad email",
			method:   http.MethodPost,
			path:     "/signup",
			body:     []byte(`{"email":"lol","password":"secret1"}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			fix.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusSeeOther && !hasSessionCookie(rec) {
				t.Error("signup did not set the session cookie")
			}
		})
	}
}

func Test_login(t *testing.T) {
	fix := setup(t)
	testutil.CreateUser(t, fix.usrRepo, "awe@test.cd", "secret1", true)
	testutil.CreateUser(t, fix.usrRepo, "gone@test.cd", "secret1", false)

	tests := []httpTest{
		{
			name:     "page payload carries next",
			method:   http.MethodGet,
			path:     "/login?next=/class/1",
			wantCode: http.StatusOK,
			wantData: []byte(`{"page":"login","next":"/class/1"}`),
		},
		{
			name:     "success redirects to dashboard",
			method:   http.MethodPost,
			path:     "/login",
			body:     []byte(`{"email":"awe@test.cd","password":"secret1"}`),
			wantCode: http.StatusSeeOther,
			wantLoc:  "/dashboard",
		},
		{
			name:     "success honours next",
			method:   http.MethodPost,
			path:     "/login?next=/class/1",
			body:     []byte(`{"email":"awe@test.cd","password":"secret1"}`),
			wantCode: http.StatusSeeOther,
			wantLoc:  "/class/1",
		},
		{
			name:     "off-site next falls back to dashboard",
			method:   http.MethodPost,
			path:     "/login?next=//evil.test",
			body:     []byte(`{"email":"awe@test.cd","password":"secret1"}`),
			wantCode: http.StatusSeeOther,
			wantLoc:  "/dashboard",
		},
		{
			name:     "wrong password",
			method:   http.MethodPost,
			path:     "/login",
			body:     []byte(`{"email":"awe@test.cd","password":"nope"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown account",
			method:   http.MethodPost,
			path:     "/login",
			body:     []byte(`{"email":"who@test.cd","password":"secret1"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "deactivated account",
			method:   http.MethodPost,
			path:     "/login",
			body:     []byte(`{"email":"gone@test.cd","password":"secret1"}`),
			wantCode: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			fix.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_adminLogin(t *testing.T) {
	fix := setup(t)
	testutil.CreateUser(t, fix.usrRepo, "plain@test.cd", "secret1", true)
	testutil.CreateAdmin(t, fix.usrRepo, "boss@test.cd", "secret1")

	tests := []httpTest{
		{
			name:     "admin lands on the admin page",
			method:   http.MethodPost,
			path:     "/admin/login",
			body:     []byte(`{"email":"boss@test.cd","password":"secret1"}`),
			wantCode: http.StatusSeeOther,
			wantLoc:  "/admin",
		},
		{
			name:     "valid account outside the allow-list",
			method:   http.MethodPost,
			path:     "/admin/login",
			body:     []byte(`{"email":"plain@test.cd","password":"secret1"}`),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "wrong password",
			method:   http.MethodPost,
			path:     "/admin/login",
			body:     []byte(`{"email":"boss@test.cd","password":"nope"}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			fix.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_logout(t *testing.T) {
	fix := setup(t)

	req, rec := newRequest(http.MethodPost, "/api/auth/logout")
	fix.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("logout code = %v; want %v", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("logout location = %v; want /login", loc)
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout did not clear the session cookie")
	}
}

func Test_tokenRefresh(t *testing.T) {
	fix := setup(t)
	usr := testutil.CreateUser(t, fix.usrRepo, "awe@test.cd", "secret1", true)
	gone := testutil.CreateUser(t, fix.usrRepo, "gone@test.cd", "secret1", false)

	// no session
	req, rec := newRequest(http.MethodPost, "/api/auth/token-refresh")
	fix.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("refresh without session code = %v; want %v", rec.Code, http.StatusUnauthorized)
	}

	// live session gets a fresh token and cookie
	req, rec = newAuthRequest(http.MethodPost, "/api/auth/token-refresh", getToken(t, usr, false))
	fix.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh code = %v; want %v", rec.Code, http.StatusOK)
	}
	var body map[string]string
	if err := decodeBody(rec, &body); err != nil {
		t.Fatalf("decoding refresh body: %v", err)
	}
	if body["token"] == "" {
		t.Error("refresh returned no token")
	}
	if !hasSessionCookie(rec) {
		t.Error("refresh did not renew the session cookie")
	}

	// refresh window exhausted; token itself still valid
	staleClaims := echoapi.GetUserClaims(usr, false, time.Now().Add(-5*time.Hour).Unix())
	staleToken, err := echoapi.GenerateToken(staleClaims)
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}
	req, rec = newAuthRequest(http.MethodPost, "/api/auth/token-refresh", staleToken)
	fix.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("exhausted refresh code = %v; want %v", rec.Code, http.StatusForbidden)
	}

	// deactivated account
	req, rec = newAuthRequest(http.MethodPost, "/api/auth/token-refresh", getToken(t, gone, false))
	fix.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("deactivated refresh code = %v; want %v", rec.Code, http.StatusForbidden)
	}
}

func hasSessionCookie(rec interface{ Header() http.Header }) bool {
	for _, sc := range rec.Header().Values("Set-Cookie") {
		if strings.HasPrefix(sc, "token=") && !strings.Contains(sc, "token=;") {
			return true
		}
	}
	return false
}
