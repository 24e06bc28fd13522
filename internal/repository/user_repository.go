package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lexisware/portfolio-backend/internal/model"
)

const userColumns = "uid,email,password_hash,display_name,role,specialty,bio,photo_url,available,github,instagram,whatsapp,created_at,updated_at"

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Role,
		&u.Specialty, &u.Bio, &u.PhotoURL, &u.Available,
		&u.GitHub, &u.Instagram, &u.WhatsApp, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a new user row. The caller supplies the uid and the
// already-hashed password. Duplicate emails are reported as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u model.User) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (uid,email,password_hash,display_name,role,specialty,bio,photo_url,available,github,instagram,whatsapp)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		u.UID, strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, u.DisplayName, u.Role,
		u.Specialty, u.Bio, u.PhotoURL, u.Available, u.GitHub, u.Instagram, u.WhatsApp)
	if err != nil {
		// MySQL duplicate-key errors carry code 1062.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByUID fetches a user by primary key.
func (r *UserRepo) GetByUID(ctx context.Context, uid string) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE uid=? LIMIT 1", uid))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// List returns a page of users ordered by creation time together with the
// total row count.
func (r *UserRepo) List(ctx context.Context, page, size int) ([]model.User, int64, error) {
	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC LIMIT ? OFFSET ?",
		size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]model.User, 0, size)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// ListByRole returns a page of users holding one role, newest first.  Backs
// the public programmer directory.
func (r *UserRepo) ListByRole(ctx context.Context, role string, page, size int) ([]model.User, int64, error) {
	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE role=?", role).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE role=? ORDER BY created_at DESC LIMIT ? OFFSET ?",
		role, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]model.User, 0, size)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// UpdateProfile overwrites the mutable profile fields of a user. Role and
// credentials are untouched here.
func (r *UserRepo) UpdateProfile(ctx context.Context, u model.User) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET display_name=?, specialty=?, bio=?, photo_url=?, github=?, instagram=?, whatsapp=?, updated_at=NOW()
		 WHERE uid=?`,
		u.DisplayName, u.Specialty, u.Bio, u.PhotoURL, u.GitHub, u.Instagram, u.WhatsApp, u.UID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// SetAvailability flips the advisory availability flag.
func (r *UserRepo) SetAvailability(ctx context.Context, uid string, available bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET available=?, updated_at=NOW() WHERE uid=?", available, uid)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// TouchUpdatedAt records activity on login.
func (r *UserRepo) TouchUpdatedAt(ctx context.Context, uid string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET updated_at=NOW() WHERE uid=?", uid)
	return err
}

// Delete removes a user row.
func (r *UserRepo) Delete(ctx context.Context, uid string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE uid=?", uid)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// requireRowAffected maps "zero rows touched" onto ErrNotFound so mutating
// calls against missing ids surface uniformly.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
