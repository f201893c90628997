package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mazoezi/core/access"
	"github.com/trezcool/mazoezi/core/user"
)

type authApi struct {
	svc *user.Service
}

func registerAuthAPI(app *echo.Echo, svc *user.Service) {
	api := authApi{svc: svc}

	app.GET("/login", api.loginPage)
	app.POST("/login", api.login)
	app.GET("/signup", api.signupPage)
	app.POST("/signup", api.signup)
	app.GET("/admin/login", api.adminLoginPage)
	app.POST("/admin/login", api.adminLogin)
	app.POST("/api/auth/logout", api.logout)
	app.POST("/api/auth/token-refresh", api.refreshToken, apiSessionMiddleware)
}

// Handlers

func (api *authApi) loginPage(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, pagePayload{Page: "login", Next: cleanNextPath(ctx.QueryParam("next"))})
}

func (api *authApi) login(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := authenticate(ctx.Request().Context(), data, false, api.svc)
	if err != nil {
		return err
	}
	if err = startSession(ctx, claims); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, cleanNextPath(ctx.QueryParam("next")))
}

func (api *authApi) signupPage(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, pagePayload{Page: "signup"})
}

func (api *authApi) signup(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(ctx.Request().Context(), api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}

	// fresh accounts have no profile yet; send them straight to class selection
	if err = startSession(ctx, GetUserClaims(usr, false)); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, access.SelectClassPath)
}

func (api *authApi) adminLoginPage(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, pagePayload{Page: "admin-login"})
}

func (api *authApi) adminLogin(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := authenticate(ctx.Request().Context(), data, true, api.svc)
	if err != nil {
		return err
	}
	if err = startSession(ctx, claims); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/admin")
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	claims, err := refreshToken(ctx, api.svc)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	setSessionCookie(ctx, token)
	return ctx.JSON(http.StatusOK, echo.Map{"token": token})
}

func (api *authApi) logout(ctx echo.Context) error {
	clearSessionCookie(ctx)
	return ctx.Redirect(http.StatusSeeOther, "/login")
}

func startSession(ctx echo.Context, claims *Claims) error {
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	setSessionCookie(ctx, token)
	return nil
}

type pagePayload struct {
	Page string `json:"page"`
	Next string `json:"next,omitempty"`
}
