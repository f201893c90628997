package testutil

import (
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/trezcool/mazoezi/core"
	"github.com/trezcool/mazoezi/core/content"
	"github.com/trezcool/mazoezi/core/user"
)

// NewConfig returns a self-contained test configuration; nothing is read from
// the environment.
func NewConfig() *core.Config {
	return &core.Config{
		Env:              "TEST",
		TestMode:         true,
		AppName:          "Mazoezi",
		SecretKey:        "test-secret-key",
		Build:            "test",
		DefaultFromEmail: mail.Address{Address: "noreply@test.cd"},
		FrontendBaseURL:  "http://localhost:8000",
		Server: core.ServerConfig{
			Host:                      "localhost",
			Address:                   ":0",
			JWTExpirationDelta:        7 * 24 * time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
}

func CreateUser(t *testing.T, repo user.Repository, email, pwd string, isActive bool) user.User {
	t.Helper()
	now := time.Now().UTC()
	usr := user.User{
		Email:     email,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateAdmin(t *testing.T, repo user.Repository, email, pwd string) user.User {
	t.Helper()
	usr := CreateUser(t, repo, email, pwd, true)
	if err := repo.AddAdmin(context.Background(), usr.ID); err != nil {
		t.Fatalf("CreateAdmin() failed: %v", err)
	}
	return usr
}

func CreateClass(t *testing.T, repo content.Repository, name string) content.Class {
	t.Helper()
	cls, err := repo.CreateClass(context.Background(), content.Class{Name: name})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return cls
}

func CreateSubject(t *testing.T, repo content.Repository, classID int, name string) content.Subject {
	t.Helper()
	sub, err := repo.CreateSubject(context.Background(), content.Subject{ClassID: classID, Name: name})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return sub
}

func CreateChapter(t *testing.T, repo content.Repository, subjectID int, name string) content.Chapter {
	t.Helper()
	ch, err := repo.CreateChapter(context.Background(), content.Chapter{SubjectID: subjectID, Name: name})
	if err != nil {
		t.Fatalf("CreateChapter() failed: %v", err)
	}
	return ch
}

func CreateQuestion(t *testing.T, repo content.Repository, chapterID int, question, answer string) content.Question {
	t.Helper()
	q, err := repo.CreateQuestion(context.Background(), content.Question{
		ChapterID:  chapterID,
		Question:   question,
		Answer:     answer,
		Difficulty: content.DifficultyEasy,
		Type:       content.TypeTheory,
	})
	if err != nil {
		t.Fatalf("CreateQuestion() failed: %v", err)
	}
	return q
}
