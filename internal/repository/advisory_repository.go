package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/lexisware/portfolio-backend/internal/model"
)

// AdvisoryRepo provides persistence for advisory bookings.  All timestamp
// fields are stored in UTC.  Reads carry no ownership filtering; access
// control for mutations is enforced by the service layer before any write
// reaches this repository.
type AdvisoryRepo struct {
    db *sql.DB
}

// NewAdvisoryRepo returns a new AdvisoryRepo bound to the given database.
func NewAdvisoryRepo(db *sql.DB) *AdvisoryRepo { return &AdvisoryRepo{db: db} }

const advisoryColumns = "id,programmer_id,programmer_email,programmer_name,requester_name,requester_email,date,time,note,status,created_at"

func scanAdvisory(row interface{ Scan(...any) error }) (model.Advisory, error) {
    var a model.Advisory
    err := row.Scan(&a.ID, &a.ProgrammerID, &a.ProgrammerEmail, &a.ProgrammerName,
        &a.RequesterName, &a.RequesterEmail, &a.Date, &a.Time, &a.Note, &a.Status, &a.CreatedAt)
    return a, err
}

// Create inserts a new advisory and returns the stored row, including the
// generated id and database-assigned creation timestamp.  The caller is
// responsible for having set the status; the service always forces pending.
func (r *AdvisoryRepo) Create(ctx context.Context, a model.Advisory) (model.Advisory, error) {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO advisories (programmer_id,programmer_email,programmer_name,requester_name,requester_email,date,time,note,status)
         VALUES (?,?,?,?,?,?,?,?,?)`,
        a.ProgrammerID, a.ProgrammerEmail, a.ProgrammerName, a.RequesterName, a.RequesterEmail,
        a.Date, a.Time, a.Note, a.Status)
    if err != nil {
        return model.Advisory{}, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return model.Advisory{}, err
    }
    // Query back the full row to populate timestamps and defaults.
    return r.GetByID(ctx, id)
}

// GetByID returns a single advisory or ErrNotFound.
func (r *AdvisoryRepo) GetByID(ctx context.Context, id int64) (model.Advisory, error) {
    a, err := scanAdvisory(r.db.QueryRowContext(ctx,
        "SELECT "+advisoryColumns+" FROM advisories WHERE id=? LIMIT 1", id))
    if errors.Is(err, sql.ErrNoRows) {
        return model.Advisory{}, ErrNotFound
    }
    return a, err
}

// UpdateStatus sets the booking status inside a single transaction.  The row
// is locked for the read-modify-write so concurrent transitions on the same
// booking serialize at the database; the last writer wins.  Returns the
// updated row or ErrNotFound.
func (r *AdvisoryRepo) UpdateStatus(ctx context.Context, id int64, status string) (model.Advisory, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return model.Advisory{}, err
    }
    defer func() { _ = tx.Rollback() }()

    a, err := scanAdvisory(tx.QueryRowContext(ctx,
        "SELECT "+advisoryColumns+" FROM advisories WHERE id=? FOR UPDATE", id))
    if errors.Is(err, sql.ErrNoRows) {
        return model.Advisory{}, ErrNotFound
    }
    if err != nil {
        return model.Advisory{}, err
    }

    if _, err := tx.ExecContext(ctx,
        "UPDATE advisories SET status=? WHERE id=?", status, id); err != nil {
        return model.Advisory{}, err
    }
    if err := tx.Commit(); err != nil {
        return model.Advisory{}, err
    }
    a.Status = status
    return a, nil
}

// Delete hard-deletes the booking.  Missing ids are ErrNotFound.
func (r *AdvisoryRepo) Delete(ctx context.Context, id int64) error {
    res, err := r.db.ExecContext(ctx, "DELETE FROM advisories WHERE id=?", id)
    if err != nil {
        return err
    }
    return requireRowAffected(res)
}

// listPage runs a filtered, paginated select plus the matching count.  The
// where clause must already contain placeholders matching args.
func (r *AdvisoryRepo) listPage(ctx context.Context, where string, args []any, page, size int) ([]model.Advisory, int64, error) {
    var total int64
    if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM advisories"+where, args...).Scan(&total); err != nil {
        return nil, 0, err
    }
    query := "SELECT " + advisoryColumns + " FROM advisories" + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
    rows, err := r.db.QueryContext(ctx, query, append(args, size, page*size)...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    items := make([]model.Advisory, 0, size)
    for rows.Next() {
        a, err := scanAdvisory(rows)
        if err != nil {
            return nil, 0, err
        }
        items = append(items, a)
    }
    return items, total, rows.Err()
}

// ListAll returns every advisory, newest first.
func (r *AdvisoryRepo) ListAll(ctx context.Context, page, size int) ([]model.Advisory, int64, error) {
    return r.listPage(ctx, "", nil, page, size)
}

// ListByProgrammer returns the advisories assigned to one programmer.
func (r *AdvisoryRepo) ListByProgrammer(ctx context.Context, programmerID string, page, size int) ([]model.Advisory, int64, error) {
    return r.listPage(ctx, " WHERE programmer_id=?", []any{programmerID}, page, size)
}

// ListByRequester returns the advisories requested from one email address.
func (r *AdvisoryRepo) ListByRequester(ctx context.Context, email string, page, size int) ([]model.Advisory, int64, error) {
    return r.listPage(ctx, " WHERE requester_email=?", []any{email}, page, size)
}

// ListByStatus filters advisories by processing state.
func (r *AdvisoryRepo) ListByStatus(ctx context.Context, status string, page, size int) ([]model.Advisory, int64, error) {
    return r.listPage(ctx, " WHERE status=?", []any{status}, page, size)
}

// ListApprovedForDate returns approved advisories scheduled on the given
// YYYY-MM-DD date.  Used by the daily reminder job.
func (r *AdvisoryRepo) ListApprovedForDate(ctx context.Context, date string) ([]model.Advisory, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+advisoryColumns+" FROM advisories WHERE date=? AND status=?",
        date, model.StatusApproved)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var items []model.Advisory
    for rows.Next() {
        a, err := scanAdvisory(rows)
        if err != nil {
            return nil, err
        }
        items = append(items, a)
    }
    return items, rows.Err()
}
