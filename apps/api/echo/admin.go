package echoapi

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mazoezi/core/content"
)

type adminApi struct {
	svc *content.Service
}

func registerAdminAPI(app *echo.Echo, svc *content.Service) {
	api := adminApi{svc: svc}

	g := app.Group("/admin", pageSessionMiddleware, adminPageMiddleware)
	g.GET("", api.index)
	g.POST("/classes", api.addClass)
	g.POST("/subjects", api.addSubject)
	g.POST("/chapters", api.addChapter)
	g.POST("/questions", api.addQuestion)
}

// Handlers

// index joins the three content lists. They are independent so they are
// fetched concurrently; the first error wins.
func (api *adminApi) index(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var (
		classes  []content.Class
		subjects []content.Subject
		chapters []content.Chapter

		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	capture := func(err error) {
		if err != nil {
			errOnce.Do(func() { firstErr = err })
		}
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		classes, err = api.svc.Classes(reqCtx)
		capture(errors.Wrap(err, "querying classes"))
	}()
	go func() {
		defer wg.Done()
		var err error
		subjects, err = api.svc.AllSubjects(reqCtx)
		capture(errors.Wrap(err, "querying subjects"))
	}()
	go func() {
		defer wg.Done()
		var err error
		chapters, err = api.svc.AllChapters(reqCtx)
		capture(errors.Wrap(err, "querying chapters"))
	}()
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	if classes == nil {
		classes = []content.Class{}
	}
	if subjects == nil {
		subjects = []content.Subject{}
	}
	if chapters == nil {
		chapters = []content.Chapter{}
	}
	return ctx.JSON(http.StatusOK, adminPayload{
		Page:     "admin",
		Classes:  classes,
		Subjects: subjects,
		Chapters: chapters,
	})
}

func (api *adminApi) addClass(ctx echo.Context) error {
	var data content.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	cls, err := api.svc.AddClass(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *adminApi) addSubject(ctx echo.Context) error {
	var data content.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	sub, err := api.svc.AddSubject(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *adminApi) addChapter(ctx echo.Context) error {
	var data content.NewChapter
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewChapter")
	}
	ch, err := api.svc.AddChapter(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ch)
}

func (api *adminApi) addQuestion(ctx echo.Context) error {
	var data content.NewQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuestion")
	}
	q, err := api.svc.AddQuestion(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, q)
}

type adminPayload struct {
	Page     string            `json:"page"`
	Classes  []content.Class   `json:"classes"`
	Subjects []content.Subject `json:"subjects"`
	Chapters []content.Chapter `json:"chapters"`
}
