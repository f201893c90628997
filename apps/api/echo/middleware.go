package echoapi

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mazoezi/core"
)

// siteLockoutMiddleware sends every page to the admin login when the site is
// locked down in PROD. Admin login, static assets and the JSON API stay
// reachable so the lockout can be lifted.
func siteLockoutMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !(conf.IsProd() && conf.ProtectSite) {
				return next(ctx)
			}
			path := ctx.Request().URL.Path
			switch {
			case strings.HasPrefix(path, "/admin/login"),
				strings.HasPrefix(path, "/static"),
				strings.HasPrefix(path, "/favicon.ico"),
				strings.HasPrefix(path, "/api"):
				return next(ctx)
			}
			return ctx.Redirect(http.StatusTemporaryRedirect, "/admin/login")
		}
	}
}

// pageSessionMiddleware authenticates browser navigation; unauthenticated
// requests are sent to the login page with the original path as `next`.
func pageSessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token, ok := extractToken(ctx)
		if !ok {
			return redirectToLogin(ctx)
		}
		claims, err := parseToken(token)
		if err != nil {
			clearSessionCookie(ctx)
			return redirectToLogin(ctx)
		}
		ctx.Set(contextClaimsKey, claims)
		return next(ctx)
	}
}

// apiSessionMiddleware authenticates JSON API calls; failures get a 401.
func apiSessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token, ok := extractToken(ctx)
		if !ok {
			return errUnauthorized
		}
		claims, err := parseToken(token)
		if err != nil {
			return err
		}
		ctx.Set(contextClaimsKey, claims)
		return next(ctx)
	}
}

// adminMiddleware restricts a route to members of the admin allow-list.
func adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		if !claims.IsAdmin {
			return errHttpForbidden
		}
		return next(ctx)
	}
}

// adminPageMiddleware is adminMiddleware for browser navigation: failures
// redirect to the admin login instead of erroring.
func adminPageMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil || !claims.IsAdmin {
			return ctx.Redirect(http.StatusSeeOther, "/admin/login")
		}
		return next(ctx)
	}
}

func redirectToLogin(ctx echo.Context) error {
	loc := "/login?next=" + url.QueryEscape(ctx.Request().URL.RequestURI())
	return ctx.Redirect(http.StatusSeeOther, loc)
}
