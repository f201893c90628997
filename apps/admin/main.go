package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/mazoezi/core"
	"github.com/trezcool/mazoezi/core/user"
	emailsvc "github.com/trezcool/mazoezi/services/email"
	"github.com/trezcool/mazoezi/storage/database"
	sqlxrepos "github.com/trezcool/mazoezi/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig(".")
	errAndDie(err)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	// start CLI
	usrRepo := sqlxrepos.NewUserRepository(sqlx.NewDb(db, "postgres"))
	cli := commandLine{
		db:      db,
		usrRepo: usrRepo,
		usrSvc:  user.NewService(conf, usrRepo, emailsvc.NewConsoleService(conf)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
