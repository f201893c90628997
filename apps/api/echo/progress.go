package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mazoezi/core/progress"
)

type progressApi struct {
	svc *progress.Service
}

func registerProgressAPI(app *echo.Echo, svc *progress.Service) {
	api := progressApi{svc: svc}

	g := app.Group("/api/progress", apiSessionMiddleware)
	g.POST("", api.record)
}

// record upserts the caller's progress on a question; re-attempts overwrite.
func (api *progressApi) record(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data progress.NewProgress
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProgress")
	}

	p, err := api.svc.Record(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, p)
}
