package echoapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mazoezi/core"
	"github.com/trezcool/mazoezi/core/user"
)

var (
	authConf = struct {
		appName                   string
		secretKey                 []byte
		jwtExpirationDelta        time.Duration
		jwtRefreshExpirationDelta time.Duration
	}{}

	sessionCookieName = "token"
	contextClaimsKey  = "userClaims"
	contextUserKey    = "user"
)

// ConfigureAuth sets the JWT session parameters; must be called before any
// token is generated or checked.
func ConfigureAuth(appName string, secretKey []byte, jwtExpiration, jwtRefreshExpiration time.Duration) {
	authConf.appName = appName
	authConf.secretKey = secretKey
	authConf.jwtExpirationDelta = jwtExpiration
	authConf.jwtRefreshExpirationDelta = jwtRefreshExpiration
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Email        string `json:"email,omitempty"`
	IsAdmin      bool   `json:"is_admin,omitempty"` // -> ADMIN PORTAL
}

func GetUserClaims(usr user.User, isAdmin bool, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    authConf.appName,
			Subject:   usr.ID,
			ExpiresAt: now.Add(authConf.jwtExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Email:        usr.Email,
		IsAdmin:      isAdmin,
	}
}

// authenticate checks the credentials and, when adminOnly is set, the admin
// allow-list; it returns the session claims on success.
func authenticate(ctx context.Context, creds user.Credentials, adminOnly bool, svc *user.Service) (*Claims, error) {
	usr, err := svc.GetByEmail(ctx, creds.Email)
	if err != nil {
		if err == user.ErrNotFound {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(creds.Password); err != nil {
		return nil, errAuthenticationFailed
	}
	if !usr.IsActive {
		return nil, errAccountDeactivated
	}

	isAdmin, err := svc.IsAdmin(ctx, usr.ID)
	if err != nil {
		return nil, errors.Wrap(err, "checking admin membership")
	}
	if adminOnly && !isAdmin {
		return nil, errNotAdmin
	}

	if usr, err = svc.SetLastLogin(ctx, usr); err != nil {
		return nil, errors.Wrap(err, "setting lastLogin")
	}
	return GetUserClaims(usr, isAdmin), nil
}

// refreshToken issues fresh claims for the current session as long as the
// account is still active and the original sign-in is within the refresh
// window. OrigIssuedAt carries over so the window cannot be extended.
func refreshToken(ctx echo.Context, svc *user.Service) (*Claims, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting context claims")
	}

	usr, err := getContextUser(ctx, svc, claims)
	if err != nil {
		return nil, errors.Wrap(err, "getting context user")
	}
	if !usr.IsActive {
		return nil, errAccountDeactivated
	}

	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(authConf.jwtRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return nil, errRefreshExpired
	}

	isAdmin, err := svc.IsAdmin(ctx.Request().Context(), usr.ID)
	if err != nil {
		return nil, errors.Wrap(err, "checking admin membership")
	}
	return GetUserClaims(usr, isAdmin, claims.OrigIssuedAt), nil
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(authConf.secretKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func parseToken(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return authConf.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errUnauthorized
	}
	return claims, nil
}

// extractToken looks for the session token in the Authorization header first,
// then the session cookie.
func extractToken(ctx echo.Context) (string, bool) {
	if auth := ctx.Request().Header.Get(echo.HeaderAuthorization); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1], true
		}
	}
	if cookie, err := ctx.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}

func setSessionCookie(ctx echo.Context, token string) {
	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(authConf.jwtExpirationDelta / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(*Claims); ok {
		return *claims, nil
	}
	return Claims{}, errUnauthorized
}

func getContextUser(ctx echo.Context, svc *user.Service, clms ...Claims) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}

	var claims Claims
	var err error
	if len(clms) > 0 {
		claims = clms[0]
	} else {
		claims, err = getContextClaims(ctx)
		if err != nil {
			return user.User{}, errors.Wrap(err, "getting context claims")
		}
	}

	usr, err := svc.GetByID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	ctx.Set(contextUserKey, usr)
	return usr, nil
}

func cleanNextPath(next string) string {
	next = core.CleanString(next)
	// only same-site relative targets
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/dashboard"
	}
	return next
}
