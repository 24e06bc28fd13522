package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "log"       // validation failures are logged, never surfaced by the gate
    "net/http"  // HTTP status codes for responses
    "strings"   // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/lexisware/portfolio-backend/internal/auth"
)

// identityKey is the context key under which the gate stores the resolved
// identity.  Handlers read it through IdentityFrom.
const identityKey = "identity"

// Authenticate returns the authentication gate that runs in front of every
// route.  It extracts the bearer credential from the Authorization header
// and, when the token validates, attaches the resolved *auth.Identity to the
// request context.  An absent header, a wrong scheme or an invalid token
// leaves the request unauthenticated and lets it proceed: rejection is the
// job of route-level authorization, which keeps public routes able to
// personalize behavior when a token happens to be present.
func Authenticate(tokens *auth.TokenService) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            header := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(header, "Bearer ") {
                return next(c)
            }
            raw := strings.TrimPrefix(header, "Bearer ")

            ident, err := tokens.Validate(raw)
            if err != nil {
                // The failure kind (expired, bad signature, malformed,
                // unsupported) matters only for the log line.
                log.Printf("auth: token rejected: %v (%s %s)", err, c.Request().Method, c.Path())
                return next(c)
            }
            c.Set(identityKey, &ident)
            return next(c)
        }
    }
}

// IdentityFrom returns the identity attached by the gate, or nil when the
// request is unauthenticated.
func IdentityFrom(c echo.Context) *auth.Identity {
    if v, ok := c.Get(identityKey).(*auth.Identity); ok {
        return v
    }
    return nil
}

// RequireAuth rejects requests that reached a protected route without a
// resolved identity.  It runs after Authenticate.
func RequireAuth() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if IdentityFrom(c) == nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
            }
            return next(c)
        }
    }
}

// RequireRole enforces that the authenticated identity carries one of the
// given roles.  Missing identity yields 401, a role outside the set 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            err := auth.RequireRole(IdentityFrom(c), roles...)
            switch err {
            case nil:
                return next(c)
            case auth.ErrUnauthenticated:
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
            default:
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
        }
    }
}
