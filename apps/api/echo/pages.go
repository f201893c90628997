package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mazoezi/core"
	"github.com/trezcool/mazoezi/core/access"
	"github.com/trezcool/mazoezi/core/content"
	"github.com/trezcool/mazoezi/core/profile"
	"github.com/trezcool/mazoezi/core/progress"
	"github.com/trezcool/mazoezi/core/user"
)

const recentActivityLimit = 5

type pageApi struct {
	usrSvc      *user.Service
	contentSvc  *content.Service
	profileSvc  *profile.Service
	progressSvc *progress.Service
	guard       *access.Guard
}

func registerPageAPI(
	app *echo.Echo,
	usrSvc *user.Service,
	contentSvc *content.Service,
	profileSvc *profile.Service,
	progressSvc *progress.Service,
	guard *access.Guard,
) {
	api := pageApi{
		usrSvc:      usrSvc,
		contentSvc:  contentSvc,
		profileSvc:  profileSvc,
		progressSvc: progressSvc,
		guard:       guard,
	}

	app.GET("/", api.home)

	// authed pages
	pg := app.Group("", pageSessionMiddleware)
	pg.GET("/dashboard", api.dashboard)
	pg.GET(access.SelectClassPath, api.selectClassPage)
	pg.POST(access.SelectClassPath, api.selectClass)
	pg.GET("/class/:classID", api.classPage)
	pg.GET("/class/:classID/subject/:subjectID", api.subjectPage)
	pg.GET("/class/:classID/subject/:subjectID/chapter/:chapterID", api.chapterPage)
}

// Handlers

func (api *pageApi) home(ctx echo.Context) error {
	classes, err := api.contentSvc.Classes(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []content.Class{}
	}
	return ctx.JSON(http.StatusOK, homePayload{Page: "home", Classes: classes})
}

func (api *pageApi) dashboard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	usr, err := getContextUser(ctx, api.usrSvc, claims)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	classID, decision, err := api.guard.SelectedClass(reqCtx, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "resolving selected class")
	}
	if !decision.Allow {
		return ctx.Redirect(http.StatusSeeOther, decision.RedirectTo)
	}

	cls, err := api.contentSvc.Class(reqCtx, classID)
	if err != nil {
		if errors.Cause(err) == content.ErrClassNotFound {
			return ctx.Redirect(http.StatusSeeOther, access.SelectClassPath)
		}
		return errors.Wrap(err, "finding class by ID")
	}
	stats, err := api.progressSvc.ClassStats(reqCtx, claims.Subject, classID)
	if err != nil {
		return errors.Wrap(err, "computing class stats")
	}
	recent, err := api.progressSvc.Recent(reqCtx, claims.Subject, recentActivityLimit)
	if err != nil {
		return errors.Wrap(err, "querying recent activity")
	}
	if recent == nil {
		recent = []progress.Progress{}
	}

	return ctx.JSON(http.StatusOK, dashboardPayload{
		Page:   "dashboard",
		Email:  usr.Email,
		Class:  cls,
		Stats:  stats,
		Recent: recent,
	})
}

func (api *pageApi) selectClassPage(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	// a user who already picked a class goes straight to it
	if prof, err := api.profileSvc.Get(reqCtx, claims.Subject); err == nil {
		return ctx.Redirect(http.StatusSeeOther, access.ClassPath(prof.SelectedClassID))
	} else if errors.Cause(err) != profile.ErrNotFound {
		return errors.Wrap(err, "finding profile")
	}

	classes, err := api.contentSvc.Classes(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []content.Class{}
	}
	return ctx.JSON(http.StatusOK, homePayload{Page: "select-class", Classes: classes})
}

func (api *pageApi) selectClass(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data SelectClassRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SelectClassRequest")
	}
	if err = data.Validate(); err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	if _, err = api.contentSvc.Class(reqCtx, data.ClassID); err != nil {
		if errors.Cause(err) == content.ErrClassNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "class_id", Error: "Class not found."})
		}
		return errors.Wrap(err, "finding class by ID")
	}

	if _, err = api.profileSvc.SelectClass(reqCtx, claims.Subject, data.ClassID); err != nil {
		return errors.Wrap(err, "selecting class")
	}
	return ctx.Redirect(http.StatusSeeOther, access.ClassPath(data.ClassID))
}

func (api *pageApi) classPage(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	classID, err := intParam(ctx, "classID")
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	decision, err := api.guard.Authorize(reqCtx, claims.Subject, classID, nil, nil)
	if err != nil {
		return errors.Wrap(err, "authorizing class page")
	}
	if !decision.Allow {
		return ctx.Redirect(http.StatusSeeOther, decision.RedirectTo)
	}

	cls, err := api.contentSvc.Class(reqCtx, classID)
	if err != nil {
		return errors.Wrap(err, "finding class by ID")
	}
	subjects, err := api.contentSvc.Subjects(reqCtx, classID)
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	if subjects == nil {
		subjects = []content.Subject{}
	}
	return ctx.JSON(http.StatusOK, classPayload{Page: "class", Class: cls, Subjects: subjects})
}

func (api *pageApi) subjectPage(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	classID, err := intParam(ctx, "classID")
	if err != nil {
		return err
	}
	subjectID, err := intParam(ctx, "subjectID")
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	decision, err := api.guard.Authorize(reqCtx, claims.Subject, classID, &subjectID, nil)
	if err != nil {
		return errors.Wrap(err, "authorizing subject page")
	}
	if !decision.Allow {
		return ctx.Redirect(http.StatusSeeOther, decision.RedirectTo)
	}

	sub, err := api.contentSvc.Subject(reqCtx, subjectID)
	if err != nil {
		return errors.Wrap(err, "finding subject by ID")
	}
	chapters, err := api.contentSvc.Chapters(reqCtx, subjectID)
	if err != nil {
		return errors.Wrap(err, "querying chapters")
	}
	if chapters == nil {
		chapters = []content.Chapter{}
	}
	return ctx.JSON(http.StatusOK, subjectPayload{Page: "subject", Subject: sub, Chapters: chapters})
}

func (api *pageApi) chapterPage(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	classID, err := intParam(ctx, "classID")
	if err != nil {
		return err
	}
	subjectID, err := intParam(ctx, "subjectID")
	if err != nil {
		return err
	}
	chapterID, err := intParam(ctx, "chapterID")
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	decision, err := api.guard.Authorize(reqCtx, claims.Subject, classID, &subjectID, &chapterID)
	if err != nil {
		return errors.Wrap(err, "authorizing chapter page")
	}
	if !decision.Allow {
		return ctx.Redirect(http.StatusSeeOther, decision.RedirectTo)
	}

	ch, err := api.contentSvc.Chapter(reqCtx, chapterID)
	if err != nil {
		return errors.Wrap(err, "finding chapter by ID")
	}
	questions, err := api.contentSvc.Questions(reqCtx, chapterID)
	if err != nil {
		return errors.Wrap(err, "querying questions")
	}
	if questions == nil {
		questions = []content.Question{}
	}
	return ctx.JSON(http.StatusOK, chapterPayload{Page: "chapter", Chapter: ch, Questions: questions})
}

func intParam(ctx echo.Context, name string) (int, error) {
	val, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHttpNotFound
	}
	return val, nil
}

type (
	homePayload struct {
		Page    string          `json:"page"`
		Classes []content.Class `json:"classes"`
	}

	dashboardPayload struct {
		Page   string              `json:"page"`
		Email  string              `json:"email"`
		Class  content.Class       `json:"class"`
		Stats  progress.Stats      `json:"stats"`
		Recent []progress.Progress `json:"recent_activity"`
	}

	classPayload struct {
		Page     string            `json:"page"`
		Class    content.Class     `json:"class"`
		Subjects []content.Subject `json:"subjects"`
	}

	subjectPayload struct {
		Page     string            `json:"page"`
		Subject  content.Subject   `json:"subject"`
		Chapters []content.Chapter `json:"chapters"`
	}

	chapterPayload struct {
		Page      string             `json:"page"`
		Chapter   content.Chapter    `json:"chapter"`
		Questions []content.Question `json:"questions"`
	}

	SelectClassRequest struct {
		ClassID int `json:"class_id" form:"class_id" validate:"required"`
	}
)

func (scr *SelectClassRequest) Validate() error {
	return core.Validate.Struct(scr)
}
