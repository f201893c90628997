package tests

import (
	"net/http"
	"testing"

	"github.com/trezcool/mazoezi/core"
)

func Test_siteLockout(t *testing.T) {
	fix := setup(t, func(conf *core.Config) {
		conf.Env = "PROD"
		conf.TestMode = false
		conf.Debug = false
		conf.ProtectSite = true
	})

	tests := []httpTest{
		{name: "home", path: "/", wantCode: http.StatusTemporaryRedirect, wantLoc: "/admin/login"},
		{name: "login page", path: "/login", wantCode: http.StatusTemporaryRedirect, wantLoc: "/admin/login"},
		{name: "dashboard", path: "/dashboard", wantCode: http.StatusTemporaryRedirect, wantLoc: "/admin/login"},
		{name: "admin page", path: "/admin", wantCode: http.StatusTemporaryRedirect, wantLoc: "/admin/login"},
		{name: "admin login stays reachable", path: "/admin/login", wantCode: http.StatusOK},
		{name: "api is exempt", method: http.MethodPost, path: "/api/auth/logout", wantCode: http.StatusSeeOther, wantLoc: "/login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newRequest(method, tt.path)
			fix.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_siteLockout_disabled(t *testing.T) {
	// ProtectSite outside PROD is a no-op
	fix := setup(t, func(conf *core.Config) {
		conf.ProtectSite = true
	})

	req, rec := newRequest(http.MethodGet, "/login")
	fix.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("login code = %v; want %v", rec.Code, http.StatusOK)
	}
}
