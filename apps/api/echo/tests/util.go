package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mazoezi/apps/api/echo"
	"github.com/trezcool/mazoezi/core"
	"github.com/trezcool/mazoezi/core/access"
	"github.com/trezcool/mazoezi/core/content"
	"github.com/trezcool/mazoezi/core/profile"
	"github.com/trezcool/mazoezi/core/progress"
	"github.com/trezcool/mazoezi/core/user"
	"github.com/trezcool/mazoezi/services/email"
	"github.com/trezcool/mazoezi/services/logger"
	"github.com/trezcool/mazoezi/storage/database/dummy"
	"github.com/trezcool/mazoezi/tests"
)

type fixture struct {
	app  echoapi.Server
	conf *core.Config

	usrRepo     user.Repository
	contentRepo content.Repository

	usrSvc      *user.Service
	profileSvc  *profile.Service
	progressSvc *progress.Service
}

func setup(t *testing.T, confMods ...func(*core.Config)) *fixture {
	t.Helper()

	conf := testutil.NewConfig()
	for _, mod := range confMods {
		mod(conf)
	}

	db := dummydb.Open()
	fix := &fixture{
		conf:        conf,
		usrRepo:     dummydb.NewUserRepository(db),
		contentRepo: dummydb.NewContentRepository(db),
	}

	mailSvc := emailsvc.NewConsoleService(conf)
	fix.usrSvc = user.NewService(conf, fix.usrRepo, mailSvc)
	contentSvc := content.NewService(fix.contentRepo)
	fix.profileSvc = profile.NewService(dummydb.NewProfileRepository(db))
	fix.progressSvc = progress.NewService(dummydb.NewProgressRepository(db))

	fix.app = echoapi.NewServer(
		&echoapi.Options{
			Conf:           conf,
			Logger:         logsvc.NewStdLogger(log.New(io.Discard, "", 0)),
			DisableReqLogs: true,
			UserSvc:        fix.usrSvc,
			ContentSvc:     contentSvc,
			ProfileSvc:     fix.profileSvc,
			ProgressSvc:    fix.progressSvc,
			Guard:          access.NewGuard(fix.profileSvc, contentSvc),
		},
	)
	return fix
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantLoc  string // expected Location header, redirects only
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User, isAdmin bool) string {
	t.Helper()
	claims := echoapi.GetUserClaims(usr, isAdmin)
	token, err := echoapi.GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func decodeBody(rec *httptest.ResponseRecorder, v interface{}) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantLoc != "" {
		if loc := rec.Header().Get("Location"); loc != tt.wantLoc {
			t.Errorf("failed! location = %v; wantLoc %v", loc, tt.wantLoc)
		}
		return
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
