package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/trezcool/mazoezi/core"
	"github.com/trezcool/mazoezi/core/access"
	"github.com/trezcool/mazoezi/core/content"
	"github.com/trezcool/mazoezi/core/profile"
	"github.com/trezcool/mazoezi/core/progress"
	"github.com/trezcool/mazoezi/core/user"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		UserSvc     *user.Service
		ContentSvc  *content.Service
		ProfileSvc  *profile.Service
		ProgressSvc *progress.Service
		Guard       *access.Guard
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan struct{}
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan struct{}, 1),
	}
	ConfigureAuth(
		opts.Conf.AppName,
		[]byte(opts.Conf.SecretKey),
		opts.Conf.Server.JWTExpirationDelta,
		opts.Conf.Server.JWTRefreshExpirationDelta,
	)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(siteLockoutMiddleware(conf))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.Static("/static", "web/static")
	s.app.File("/favicon.ico", "web/static/favicon.ico")

	registerAuthAPI(s.app, s.opts.UserSvc)
	registerPageAPI(s.app, s.opts.UserSvc, s.opts.ContentSvc, s.opts.ProfileSvc, s.opts.ProgressSvc, s.opts.Guard)
	registerAdminAPI(s.app, s.opts.ContentSvc)
	registerProgressAPI(s.app, s.opts.ProgressSvc)
}

// signalShutdown lets the error handler request a graceful stop when an
// unrecoverable error surfaces.
func (s *server) signalShutdown() {
	select {
	case s.shutdown <- struct{}{}:
	default:
	}
}

func (s *server) Start() error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.app.Start(s.opts.Conf.Server.Address)
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "server error")
	case <-s.shutdown:
		return core.NewShutdownError("integrity issue: shutting down")
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
