package auth

import (
	stderrors "errors"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"roomnest/internal/errors"
	"roomnest/internal/model"
	"roomnest/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const identityContextKey = "identity"

// Identity is the authenticated caller attached to the request context after
// the gate resolves a bearer token against the identity store.
type Identity struct {
	ID    uuid.UUID
	Email string
	Role  model.Role
}

// GateConfig returns the echo-jwt configuration that checks token signature
// and expiry before the identity middleware runs.
func GateConfig(secret string) echojwt.Config {
	return echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ErrorHandler: func(c echo.Context, err error) error {
			mapped := errors.ErrInvalidCredential
			if stderrors.Is(err, echojwt.ErrJWTMissing) {
				mapped = errors.ErrUnauthenticated
			}
			httpErr := errors.MapErrorToHTTP(mapped)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	}
}

// Identify resolves the already-verified bearer token to a stored identity and
// attaches it to the context. A token whose subject was deleted since issuance
// is rejected.
func Identify(jwtService *JWTService, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			claims, err := jwtService.ValidateToken(raw)
			if err != nil {
				httpErr := errors.MapErrorToHTTP(errors.ErrInvalidCredential)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				mapped := errors.ErrIdentityNotFound
				if !stderrors.Is(err, gorm.ErrRecordNotFound) {
					mapped = err
				}
				httpErr := errors.MapErrorToHTTP(mapped)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set(identityContextKey, &Identity{
				ID:    user.ID,
				Email: user.Email,
				Role:  user.Role,
			})
			return next(c)
		}
	}
}

// RequireRole rejects requests whose identity holds none of the given roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFrom(c)
			if identity == nil {
				httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			for _, role := range roles {
				if identity.Role == role {
					return next(c)
				}
			}
			httpErr := errors.MapErrorToHTTP(errors.ErrForbidden)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
	}
}

// IdentityFrom returns the authenticated identity attached by Identify, or nil.
func IdentityFrom(c echo.Context) *Identity {
	identity, _ := c.Get(identityContextKey).(*Identity)
	return identity
}
