package service

import (
    "context"
    "database/sql"
    "errors"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/lexisware/portfolio-backend/internal/auth"
    "github.com/lexisware/portfolio-backend/internal/model"
    "github.com/lexisware/portfolio-backend/internal/repository"
)

// fakeNotifier records dispatched notification names on a channel so tests
// can wait for the detached goroutines.  When fail is set every dispatch
// returns an error.
type fakeNotifier struct {
    calls chan string
    fail  bool
}

func newFakeNotifier(fail bool) *fakeNotifier {
    return &fakeNotifier{calls: make(chan string, 8), fail: fail}
}

func (f *fakeNotifier) record(name string) error {
    f.calls <- name
    if f.fail {
        return errors.New("broker unreachable")
    }
    return nil
}

func (f *fakeNotifier) Welcome(context.Context, string, string) error { return f.record("welcome") }
func (f *fakeNotifier) AdvisoryRequested(context.Context, model.Advisory) error {
    return f.record("requested")
}
func (f *fakeNotifier) AdvisoryReceived(context.Context, model.Advisory) error {
    return f.record("received")
}
func (f *fakeNotifier) AdvisoryDecided(context.Context, model.Advisory) error {
    return f.record("decided")
}
func (f *fakeNotifier) AdvisoryReminder(context.Context, model.Advisory) error {
    return f.record("reminder")
}

func waitCall(t *testing.T, f *fakeNotifier) string {
    t.Helper()
    select {
    case name := <-f.calls:
        return name
    case <-time.After(2 * time.Second):
        t.Fatal("timed out waiting for notification dispatch")
        return ""
    }
}

func newServiceEnv(t *testing.T, fail bool) (*AdvisoryService, sqlmock.Sqlmock, *fakeNotifier) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { _ = db.Close() })

    notifier := newFakeNotifier(fail)
    return NewAdvisoryService(repository.NewAdvisoryRepo(db), notifier), mock, notifier
}

func advisoryRow(id int64, programmerID, status string) *sqlmock.Rows {
    return sqlmock.NewRows([]string{
        "id", "programmer_id", "programmer_email", "programmer_name",
        "requester_name", "requester_email", "date", "time", "note", "status", "created_at",
    }).AddRow(id, programmerID, "prog@example.com", "Ana",
        "Requester", "requester@example.com", "2026-09-10", "10:00", "help with Go", status, time.Now())
}

func TestCreateForcesPending(t *testing.T) {
    svc, mock, notifier := newServiceEnv(t, false)

    mock.ExpectExec("INSERT INTO advisories").
        WithArgs("P1", "prog@example.com", "Ana", "Requester", "requester@example.com",
            "2026-09-10", "10:00", "help with Go", model.StatusPending).
        WillReturnResult(sqlmock.NewResult(7, 1))
    mock.ExpectQuery("SELECT (.+) FROM advisories WHERE id=").
        WithArgs(int64(7)).
        WillReturnRows(advisoryRow(7, "P1", model.StatusPending))

    created, err := svc.Create(context.Background(), model.Advisory{
        ProgrammerID:    "P1",
        ProgrammerEmail: "prog@example.com",
        ProgrammerName:  "Ana",
        RequesterName:   "Requester",
        RequesterEmail:  "requester@example.com",
        Date:            "2026-09-10",
        Time:            "10:00",
        Note:            "help with Go",
        // A caller-supplied status must be overridden.
        Status: model.StatusApproved,
    })
    require.NoError(t, err)
    assert.Equal(t, model.StatusPending, created.Status)
    assert.Equal(t, "help with Go", created.Note)

    // Programmer notification plus requester confirmation, in some order.
    got := map[string]bool{waitCall(t, notifier): true, waitCall(t, notifier): true}
    assert.True(t, got["requested"] && got["received"])
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSucceedsWhenNotificationFails(t *testing.T) {
    svc, mock, notifier := newServiceEnv(t, true)

    mock.ExpectExec("INSERT INTO advisories").
        WillReturnResult(sqlmock.NewResult(8, 1))
    mock.ExpectQuery("SELECT (.+) FROM advisories WHERE id=").
        WillReturnRows(advisoryRow(8, "P1", model.StatusPending))

    _, err := svc.Create(context.Background(), model.Advisory{ProgrammerID: "P1"})
    require.NoError(t, err, "creation success is defined by persistence alone")

    waitCall(t, notifier)
    waitCall(t, notifier)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func expectTransition(mock sqlmock.Sqlmock, id int64, programmerID, fromStatus, toStatus string) {
    mock.ExpectQuery("SELECT (.+) FROM advisories WHERE id=").
        WithArgs(id).
        WillReturnRows(advisoryRow(id, programmerID, fromStatus))
    mock.ExpectBegin()
    mock.ExpectQuery("SELECT (.+) FROM advisories WHERE id=(.+) FOR UPDATE").
        WithArgs(id).
        WillReturnRows(advisoryRow(id, programmerID, fromStatus))
    mock.ExpectExec("UPDATE advisories SET status=").
        WithArgs(toStatus, id).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()
}

func TestApproveByOwner(t *testing.T) {
    svc, mock, notifier := newServiceEnv(t, false)
    expectTransition(mock, 7, "P1", model.StatusPending, model.StatusApproved)

    owner := &auth.Identity{Subject: "P1", Role: auth.RoleProgrammer}
    updated, err := svc.Approve(context.Background(), 7, owner)
    require.NoError(t, err)
    assert.Equal(t, model.StatusApproved, updated.Status)

    assert.Equal(t, "decided", waitCall(t, notifier))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveByNonOwnerForbidden(t *testing.T) {
    svc, mock, _ := newServiceEnv(t, false)
    mock.ExpectQuery("SELECT (.+) FROM advisories WHERE id=").
        WithArgs(int64(7)).
        WillReturnRows(advisoryRow(7, "P1", model.StatusPending))

    intruder := &auth.Identity{Subject: "P2", Role: auth.RoleProgrammer}
    _, err := svc.Approve(context.Background(), 7, intruder)
    assert.ErrorIs(t, err, auth.ErrForbidden)

    // No transaction may have been opened.
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveWithoutIdentityUnauthenticated(t *testing.T) {
    svc, mock, _ := newServiceEnv(t, false)
    mock.ExpectQuery("SELECT (.+) FROM advisories WHERE id=").
        WillReturnRows(advisoryRow(7, "P1", model.StatusPending))

    _, err := svc.Approve(context.Background(), 7, nil)
    assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestRejectByAdminBypassesOwnership(t *testing.T) {
    svc, mock, notifier := newServiceEnv(t, false)
    expectTransition(mock, 7, "P1", model.StatusPending, model.StatusRejected)

    admin := &auth.Identity{Subject: "A9", Role: auth.RoleAdmin}
    updated, err := svc.Reject(context.Background(), 7, admin)
    require.NoError(t, err)
    assert.Equal(t, model.StatusRejected, updated.Status)

    assert.Equal(t, "decided", waitCall(t, notifier))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveTwiceIsNotAnError(t *testing.T) {
    svc, mock, notifier := newServiceEnv(t, false)
    owner := &auth.Identity{Subject: "P1", Role: auth.RoleProgrammer}

    expectTransition(mock, 7, "P1", model.StatusPending, model.StatusApproved)
    expectTransition(mock, 7, "P1", model.StatusApproved, model.StatusApproved)

    first, err := svc.Approve(context.Background(), 7, owner)
    require.NoError(t, err)
    assert.Equal(t, model.StatusApproved, first.Status)

    second, err := svc.Approve(context.Background(), 7, owner)
    require.NoError(t, err)
    assert.Equal(t, model.StatusApproved, second.Status)

    waitCall(t, notifier)
    waitCall(t, notifier)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionNotFound(t *testing.T) {
    svc, mock, _ := newServiceEnv(t, false)
    mock.ExpectQuery("SELECT (.+) FROM advisories WHERE id=").
        WillReturnError(sql.ErrNoRows)

    owner := &auth.Identity{Subject: "P1", Role: auth.RoleProgrammer}
    _, err := svc.Approve(context.Background(), 404, owner)
    assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteByOwner(t *testing.T) {
    svc, mock, _ := newServiceEnv(t, false)
    mock.ExpectQuery("SELECT (.+) FROM advisories WHERE id=").
        WillReturnRows(advisoryRow(7, "P1", model.StatusPending))
    mock.ExpectExec("DELETE FROM advisories").
        WithArgs(int64(7)).
        WillReturnResult(sqlmock.NewResult(0, 1))

    owner := &auth.Identity{Subject: "P1", Role: auth.RoleProgrammer}
    require.NoError(t, svc.Delete(context.Background(), 7, owner))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByNonOwnerForbidden(t *testing.T) {
    svc, mock, _ := newServiceEnv(t, false)
    mock.ExpectQuery("SELECT (.+) FROM advisories WHERE id=").
        WillReturnRows(advisoryRow(7, "P1", model.StatusPending))

    intruder := &auth.Identity{Subject: "P2", Role: auth.RoleExternal}
    assert.ErrorIs(t, svc.Delete(context.Background(), 7, intruder), auth.ErrForbidden)
}

func TestDeleteNotFound(t *testing.T) {
    svc, mock, _ := newServiceEnv(t, false)
    mock.ExpectQuery("SELECT (.+) FROM advisories WHERE id=").
        WillReturnError(sql.ErrNoRows)

    admin := &auth.Identity{Subject: "A9", Role: auth.RoleAdmin}
    assert.ErrorIs(t, svc.Delete(context.Background(), 404, admin), repository.ErrNotFound)
}
