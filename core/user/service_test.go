package user_test

import (
	"context"
	"testing"

	"github.com/trezcool/mazoezi/core"
	"github.com/trezcool/mazoezi/core/user"
	"github.com/trezcool/mazoezi/services/email"
	"github.com/trezcool/mazoezi/storage/database/dummy"
	"github.com/trezcool/mazoezi/tests"
)

func setup() (*user.Service, user.Repository) {
	conf := testutil.NewConfig()
	repo := dummydb.NewUserRepository(dummydb.Open())
	return user.NewService(conf, repo, emailsvc.NewConsoleService(conf)), repo
}

func TestService_Create(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()

	nu := user.NewUser{Email: " Awe@Test.CD ", Password: "secret1"}
	if err := nu.Validate(ctx, svc); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	usr, err := svc.Create(ctx, nu)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if usr.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if usr.Email != "awe@test.cd" {
		t.Errorf("Create() Email = %q; want cleaned and lowered", usr.Email)
	}
	if !usr.IsActive {
		t.Error("Create() new accounts must be active")
	}
	if err = usr.CheckPassword("secret1"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}

	// duplicate email is a field error, not a store error
	dup := user.NewUser{Email: "awe@test.cd", Password: "secret1"}
	err = dup.Validate(ctx, svc)
	if err == nil {
		t.Fatal("Validate() expected a duplicate email error")
	}
	if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("Validate() error type = %T; want *core.ValidationError", err)
	}
}

func TestNewUser_Validate(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()

	tests := []struct {
		name    string
		nu      user.NewUser
		wantErr bool
	}{
		{name: "ok", nu: user.NewUser{Email: "awe@test.cd", Password: "secret1"}},
		{name: "missing email", nu: user.NewUser{Password: "secret1"}, wantErr: true},
		{name: "bad email", nu: user.NewUser{Email: "lol", Password: "secret1"}, wantErr: true},
		{name: "short password", nu: user.NewUser{Email: "awe@test.cd", Password: "meh"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.nu.Validate(ctx, svc); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_MakeAdmin(t *testing.T) {
	svc, repo := setup()
	ctx := context.Background()

	usr := testutil.CreateUser(t, repo, "awe@test.cd", "secret1", true)

	isAdmin, err := svc.IsAdmin(ctx, usr.ID)
	if err != nil {
		t.Fatalf("IsAdmin() error = %v", err)
	}
	if isAdmin {
		t.Error("IsAdmin() = true before MakeAdmin()")
	}

	if err = svc.MakeAdmin(ctx, usr.ID); err != nil {
		t.Fatalf("MakeAdmin() error = %v", err)
	}
	if isAdmin, err = svc.IsAdmin(ctx, usr.ID); err != nil || !isAdmin {
		t.Errorf("IsAdmin() = (%v, %v); want true", isAdmin, err)
	}
}
