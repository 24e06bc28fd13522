package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexisware/portfolio-backend/internal/auth"
	"github.com/lexisware/portfolio-backend/internal/config"
	"github.com/lexisware/portfolio-backend/internal/model"
	"github.com/lexisware/portfolio-backend/internal/repository"
	"github.com/lexisware/portfolio-backend/internal/utils"
)

// stubNotifier satisfies service.Notifier without a broker.
type stubNotifier struct{}

func (stubNotifier) Welcome(context.Context, string, string) error          { return nil }
func (stubNotifier) AdvisoryRequested(context.Context, model.Advisory) error { return nil }
func (stubNotifier) AdvisoryReceived(context.Context, model.Advisory) error  { return nil }
func (stubNotifier) AdvisoryDecided(context.Context, model.Advisory) error   { return nil }
func (stubNotifier) AdvisoryReminder(context.Context, model.Advisory) error  { return nil }

func newAuthEnv(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, *auth.TokenService) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour, BcryptCost: 4}
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	h := NewAuthHandler(cfg, repository.NewUserRepo(db), tokens, stubNotifier{})
	return h, mock, tokens
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))
	return rec
}

func userRow(uid, email, hash, role string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"uid", "email", "password_hash", "display_name", "role", "specialty", "bio",
		"photo_url", "available", "github", "instagram", "whatsapp", "created_at", "updated_at",
	}).AddRow(uid, email, hash, "Ana", role, "backend", "", "", true, "", "", "", now, now)
}

func TestRegisterDefaultsToExternal(t *testing.T) {
	h, mock, tokens := newAuthEnv(t)

	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE uid=").
		WillReturnRows(userRow("U1", "ana@example.com", "x", auth.RoleExternal))

	rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register",
		`{"email":"ana@example.com","password":"supersecret","display_name":"Ana"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"token"`)
	assert.Contains(t, body, `"role":"EXTERNAL"`)
	assert.NotContains(t, body, "password")

	// The issued token must validate against the same service.
	tok := extractJSONField(t, body, "token")
	ident, err := tokens.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleExternal, ident.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock, _ := newAuthEnv(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errDuplicateKey{})

	rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register",
		`{"email":"ana@example.com","password":"supersecret","display_name":"Ana"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")
}

func TestRegisterValidation(t *testing.T) {
	h, _, _ := newAuthEnv(t)

	rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register",
		`{"email":"not-an-email","password":"short","display_name":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errors"`)
}

func TestLoginRoundTrip(t *testing.T) {
	h, mock, tokens := newAuthEnv(t)

	hash, err := utils.HashPassword("supersecret", 4)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(userRow("U1", "ana@example.com", hash, auth.RoleProgrammer))
	mock.ExpectExec("UPDATE users SET updated_at").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
		`{"email":"ana@example.com","password":"supersecret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	tok := extractJSONField(t, rec.Body.String(), "token")
	ident, err := tokens.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "U1", ident.Subject)
	assert.Equal(t, auth.RoleProgrammer, ident.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock, _ := newAuthEnv(t)

	hash, err := utils.HashPassword("supersecret", 4)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(userRow("U1", "ana@example.com", hash, auth.RoleProgrammer))

	rec := doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
		`{"email":"ana@example.com","password":"wrong-password"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	h, mock, _ := newAuthEnv(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(sqlmock.NewRows([]string{"uid"})) // no rows

	rec := doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
		`{"email":"ghost@example.com","password":"whatever123"}`)

	// Indistinguishable from a wrong password.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

// errDuplicateKey mimics the driver error text for a unique index violation.
type errDuplicateKey struct{}

func (errDuplicateKey) Error() string { return "Error 1062: Duplicate entry 'ana@example.com'" }

// extractJSONField pulls a top-level string field out of a JSON body without
// committing the test to the full response shape.
func extractJSONField(t *testing.T, body, field string) string {
	t.Helper()
	marker := `"` + field + `":"`
	i := strings.Index(body, marker)
	require.GreaterOrEqual(t, i, 0, "field %q missing in %s", field, body)
	rest := body[i+len(marker):]
	j := strings.Index(rest, `"`)
	require.GreaterOrEqual(t, j, 0)
	return rest[:j]
}
