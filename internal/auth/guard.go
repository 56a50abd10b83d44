package auth

import (
	"context"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "fieldserv/internal/errors"
	"fieldserv/internal/model"
)

// userContextKey is where the resolved user is stored on the echo context.
// The raw JWT lives under echo-jwt's default "user" key.
const userContextKey = "currentUser"

// UserResolver loads users by id when resolving token subjects.
type UserResolver interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// Guard resolves the acting user behind a validated bearer token and
// enforces role requirements. Signature and expiry checks happen earlier
// in the chain (echo-jwt); the guard only trusts what survived them.
type Guard struct {
	users UserResolver
}

// NewGuard creates a guard backed by the given user resolver.
func NewGuard(users UserResolver) *Guard {
	return &Guard{users: users}
}

// LoadUser resolves the token subject to a stored user and places it on the
// context. A token whose user has since disappeared is treated the same as
// no token at all.
func (g *Guard) LoadUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwtv5.Token)
		if !ok {
			return unauthenticated()
		}
		claims, ok := token.Claims.(jwtv5.MapClaims)
		if !ok {
			return unauthenticated()
		}
		rawID, ok := claims["user_id"].(float64)
		if !ok || rawID <= 0 {
			return unauthenticated()
		}
		user, err := g.users.GetUser(c.Request().Context(), uint(rawID))
		if err != nil {
			return unauthenticated()
		}
		c.Set(userContextKey, user)
		return next(c)
	}
}

// RequireAdmin rejects non-admin users with 403.
func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthenticated()
		}
		if user.Role != model.RoleAdmin {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrForbidden)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return next(c)
	}
}

// CurrentUser returns the user resolved by LoadUser, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

func unauthenticated() *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
