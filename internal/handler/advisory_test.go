package handler

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexisware/portfolio-backend/internal/repository"
	"github.com/lexisware/portfolio-backend/internal/service"
)

func newAdvisoryEnv(t *testing.T) (*AdvisoryHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := repository.NewUserRepo(db)
	svc := service.NewAdvisoryService(repository.NewAdvisoryRepo(db), stubNotifier{})
	return NewAdvisoryHandler(svc, users), mock
}

const createAdvisoryBody = `{
	"programmer_id":"P1",
	"requester_name":"Requester",
	"requester_email":"req@example.com",
	"date":"2026-09-10",
	"time":"10:00",
	"note":"help with Go"
}`

func TestCreateAdvisoryUnknownProgrammer(t *testing.T) {
	h, mock := newAdvisoryEnv(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE uid=").
		WillReturnError(sql.ErrNoRows)

	rec := doJSON(t, h.Create, http.MethodPost, "/api/public/advisories", createAdvisoryBody)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAdvisoryProgrammerUnavailable(t *testing.T) {
	h, mock := newAdvisoryEnv(t)

	now := time.Now()
	row := sqlmock.NewRows([]string{
		"uid", "email", "password_hash", "display_name", "role", "specialty", "bio",
		"photo_url", "available", "github", "instagram", "whatsapp", "created_at", "updated_at",
	}).AddRow("P1", "prog@example.com", "x", "Ana", "PROGRAMMER", "", "", "", false, "", "", "", now, now)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE uid=").WillReturnRows(row)

	rec := doJSON(t, h.Create, http.MethodPost, "/api/public/advisories", createAdvisoryBody)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "not accepting advisories")
}

func TestCreateAdvisoryValidation(t *testing.T) {
	h, _ := newAdvisoryEnv(t)

	rec := doJSON(t, h.Create, http.MethodPost, "/api/public/advisories",
		`{"programmer_id":"","requester_name":"R","requester_email":"bad","date":"10/09/2026","time":"25:99"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errors"`)
}
