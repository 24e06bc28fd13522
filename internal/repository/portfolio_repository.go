package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/lexisware/portfolio-backend/internal/model"
)

// PortfolioRepo provides persistence for programmer portfolios.  A user owns
// at most one portfolio, enforced by a unique index on user_id.
type PortfolioRepo struct {
    db *sql.DB
}

func NewPortfolioRepo(db *sql.DB) *PortfolioRepo { return &PortfolioRepo{db: db} }

const portfolioColumns = "id,user_id,title,description,theme,is_public,created_at,updated_at"

func scanPortfolio(row interface{ Scan(...any) error }) (model.Portfolio, error) {
    var p model.Portfolio
    err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Theme, &p.IsPublic,
        &p.CreatedAt, &p.UpdatedAt)
    return p, err
}

// Create inserts a portfolio and returns the stored row.  A second portfolio
// for the same user is reported as ErrDuplicate.
func (r *PortfolioRepo) Create(ctx context.Context, p model.Portfolio) (model.Portfolio, error) {
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO portfolios (user_id,title,description,theme,is_public) VALUES (?,?,?,?,?)",
        p.UserID, p.Title, p.Description, p.Theme, p.IsPublic)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return model.Portfolio{}, ErrDuplicate
        }
        return model.Portfolio{}, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return model.Portfolio{}, err
    }
    return r.GetByID(ctx, id)
}

// GetByID returns one portfolio or ErrNotFound.
func (r *PortfolioRepo) GetByID(ctx context.Context, id int64) (model.Portfolio, error) {
    p, err := scanPortfolio(r.db.QueryRowContext(ctx,
        "SELECT "+portfolioColumns+" FROM portfolios WHERE id=? LIMIT 1", id))
    if errors.Is(err, sql.ErrNoRows) {
        return model.Portfolio{}, ErrNotFound
    }
    return p, err
}

// GetByUser returns the portfolio owned by the given user.
func (r *PortfolioRepo) GetByUser(ctx context.Context, userID string) (model.Portfolio, error) {
    p, err := scanPortfolio(r.db.QueryRowContext(ctx,
        "SELECT "+portfolioColumns+" FROM portfolios WHERE user_id=? LIMIT 1", userID))
    if errors.Is(err, sql.ErrNoRows) {
        return model.Portfolio{}, ErrNotFound
    }
    return p, err
}

// ListPublic returns a page of publicly visible portfolios.
func (r *PortfolioRepo) ListPublic(ctx context.Context, page, size int) ([]model.Portfolio, int64, error) {
    var total int64
    if err := r.db.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM portfolios WHERE is_public=TRUE").Scan(&total); err != nil {
        return nil, 0, err
    }
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+portfolioColumns+" FROM portfolios WHERE is_public=TRUE ORDER BY created_at DESC LIMIT ? OFFSET ?",
        size, page*size)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    items := make([]model.Portfolio, 0, size)
    for rows.Next() {
        p, err := scanPortfolio(rows)
        if err != nil {
            return nil, 0, err
        }
        items = append(items, p)
    }
    return items, total, rows.Err()
}

// Update overwrites the mutable fields of a portfolio.
func (r *PortfolioRepo) Update(ctx context.Context, p model.Portfolio) error {
    res, err := r.db.ExecContext(ctx,
        "UPDATE portfolios SET title=?, description=?, theme=?, is_public=?, updated_at=NOW() WHERE id=?",
        p.Title, p.Description, p.Theme, p.IsPublic, p.ID)
    if err != nil {
        return err
    }
    return requireRowAffected(res)
}

// Delete removes a portfolio row.
func (r *PortfolioRepo) Delete(ctx context.Context, id int64) error {
    res, err := r.db.ExecContext(ctx, "DELETE FROM portfolios WHERE id=?", id)
    if err != nil {
        return err
    }
    return requireRowAffected(res)
}
