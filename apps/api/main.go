package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/trezcool/mazoezi/apps/api/echo"
	"github.com/trezcool/mazoezi/core"
	"github.com/trezcool/mazoezi/core/access"
	"github.com/trezcool/mazoezi/core/content"
	"github.com/trezcool/mazoezi/core/profile"
	"github.com/trezcool/mazoezi/core/progress"
	"github.com/trezcool/mazoezi/core/user"
	emailsvc "github.com/trezcool/mazoezi/services/email"
	sendgridmail "github.com/trezcool/mazoezi/services/email/sendgrid"
	logsvc "github.com/trezcool/mazoezi/services/logger"
	"github.com/trezcool/mazoezi/storage/database"
	sqlxrepos "github.com/trezcool/mazoezi/storage/database/sqlx"
)

const shutdownTimeout = 20 * time.Second

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig(".")
	errAndDie(std, err)

	var logger core.Logger
	if conf.Debug || conf.TestMode {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}
	logger.Enable(!conf.Debug)

	// set up DB
	errAndDie(std, database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(std, err)
	defer db.Close()
	errAndDie(std, database.Migrate(db))
	sdb := sqlx.NewDb(db, "postgres")

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = sendgridmail.NewService(conf, logger)
	}
	usrSvc := user.NewService(conf, sqlxrepos.NewUserRepository(sdb), mailSvc)
	contentSvc := content.NewService(sqlxrepos.NewContentRepository(sdb))
	profileSvc := profile.NewService(sqlxrepos.NewProfileRepository(sdb))
	progressSvc := progress.NewService(sqlxrepos.NewProgressRepository(sdb))
	guard := access.NewGuard(profileSvc, contentSvc)

	app := echoapi.NewServer(
		&echoapi.Options{
			Conf:        conf,
			Logger:      logger,
			UserSvc:     usrSvc,
			ContentSvc:  contentSvc,
			ProfileSvc:  profileSvc,
			ProgressSvc: progressSvc,
			Guard:       guard,
		},
	)

	serverErrs := make(chan error, 1)
	go func() {
		std.Printf("%s API listening on %s [env=%s build=%s]", conf.AppName, conf.Server.Address, conf.Env, conf.Build)
		serverErrs <- app.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err = <-serverErrs:
		errAndDie(std, err)
	case sig := <-quit:
		std.Printf("%v: shutting down...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err = app.Stop(ctx); err != nil {
			std.Printf("graceful shutdown failed: %v", err)
		}
	}
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatalf("%+v", err)
	}
}
