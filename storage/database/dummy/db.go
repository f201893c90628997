// Package dummydb provides in-memory repositories for tests and local hacking.
package dummydb

import (
	"sync"

	"github.com/trezcool/mazoezi/core/content"
	"github.com/trezcool/mazoezi/core/profile"
	"github.com/trezcool/mazoezi/core/progress"
	"github.com/trezcool/mazoezi/core/user"
)

type DB struct {
	mu sync.RWMutex

	users      map[string]user.User // keyed by ID
	admins     map[string]bool
	classes    map[int]content.Class
	subjects   map[int]content.Subject
	chapters   map[int]content.Chapter
	questions  map[int]content.Question
	profiles   map[string]profile.Profile
	progresses map[string]map[int]progress.Progress // userID -> questionID -> row

	lastID int
}

func Open() *DB {
	db := new(DB)
	db.Reset()
	return db
}

// Reset drops all rows; tests call it between cases.
func (db *DB) Reset() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users = make(map[string]user.User)
	db.admins = make(map[string]bool)
	db.classes = make(map[int]content.Class)
	db.subjects = make(map[int]content.Subject)
	db.chapters = make(map[int]content.Chapter)
	db.questions = make(map[int]content.Question)
	db.profiles = make(map[string]profile.Profile)
	db.progresses = make(map[string]map[int]progress.Progress)
	db.lastID = 0
}

// nextID must be called with db.mu held.
func (db *DB) nextID() int {
	db.lastID++
	return db.lastID
}
