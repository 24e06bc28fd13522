package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/lexisware/portfolio-backend/internal/auth"
)

func newGateEnv(t *testing.T) (*echo.Echo, *auth.TokenService) {
    t.Helper()
    e := echo.New()
    tokens := auth.NewTokenService("middleware-test-secret", time.Hour)
    return e, tokens
}

// run sends a request through Authenticate plus the given extra middleware
// and returns the recorder together with the identity observed by the final
// handler.
func run(e *echo.Echo, tokens *auth.TokenService, header string, extra ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, *auth.Identity) {
    req := httptest.NewRequest(http.MethodGet, "/probe", nil)
    if header != "" {
        req.Header.Set("Authorization", header)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    var seen *auth.Identity
    h := func(c echo.Context) error {
        seen = IdentityFrom(c)
        return c.NoContent(http.StatusOK)
    }
    for i := len(extra) - 1; i >= 0; i-- {
        h = extra[i](h)
    }
    _ = Authenticate(tokens)(h)(c)
    return rec, seen
}

func TestGateAttachesIdentity(t *testing.T) {
    e, tokens := newGateEnv(t)
    raw, err := tokens.Issue("p1", "p1@example.com", auth.RoleProgrammer)
    require.NoError(t, err)

    rec, ident := run(e, tokens, "Bearer "+raw)
    assert.Equal(t, http.StatusOK, rec.Code)
    require.NotNil(t, ident)
    assert.Equal(t, "p1", ident.Subject)
    assert.Equal(t, auth.RoleProgrammer, ident.Role)
}

func TestGateProceedsUnauthenticated(t *testing.T) {
    e, tokens := newGateEnv(t)

    // No header, wrong scheme and an invalid token all proceed with no
    // identity attached; the gate never rejects on its own.
    for _, header := range []string{"", "Basic abc123", "Bearer not-a-token"} {
        rec, ident := run(e, tokens, header)
        assert.Equal(t, http.StatusOK, rec.Code, "header %q", header)
        assert.Nil(t, ident, "header %q", header)
    }
}

func TestGateIgnoresExpiredToken(t *testing.T) {
    e, tokens := newGateEnv(t)
    expired := auth.NewTokenService("middleware-test-secret", -time.Minute)
    raw, err := expired.Issue("p1", "p1@example.com", auth.RoleProgrammer)
    require.NoError(t, err)

    rec, ident := run(e, tokens, "Bearer "+raw)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Nil(t, ident)
}

func TestRequireAuth(t *testing.T) {
    e, tokens := newGateEnv(t)

    rec, _ := run(e, tokens, "", RequireAuth())
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    raw, err := tokens.Issue("p1", "p1@example.com", auth.RoleExternal)
    require.NoError(t, err)
    rec, _ = run(e, tokens, "Bearer "+raw, RequireAuth())
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
    e, tokens := newGateEnv(t)

    raw, err := tokens.Issue("p1", "p1@example.com", auth.RoleProgrammer)
    require.NoError(t, err)

    // Role mismatch is 403, missing identity 401.
    rec, _ := run(e, tokens, "Bearer "+raw, RequireRole(auth.RoleAdmin))
    assert.Equal(t, http.StatusForbidden, rec.Code)

    rec, _ = run(e, tokens, "", RequireRole(auth.RoleAdmin))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    rec, _ = run(e, tokens, "Bearer "+raw, RequireRole(auth.RoleAdmin, auth.RoleProgrammer))
    assert.Equal(t, http.StatusOK, rec.Code)
}
