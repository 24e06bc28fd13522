package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/lexisware/portfolio-backend/internal/model"
)

// ProjectRepo provides persistence for portfolio projects.
type ProjectRepo struct {
    db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{db: db} }

const projectColumns = "id,owner_id,portfolio_id,title,description,category,role,tech_stack,repo_url,demo_url,image_url,programmer_name,created_at"

func scanProject(row interface{ Scan(...any) error }) (model.Project, error) {
    var p model.Project
    err := row.Scan(&p.ID, &p.OwnerID, &p.PortfolioID, &p.Title, &p.Description,
        &p.Category, &p.Role, &p.TechStack, &p.RepoURL, &p.DemoURL, &p.ImageURL,
        &p.ProgrammerName, &p.CreatedAt)
    return p, err
}

// Create inserts a project and returns the stored row.
func (r *ProjectRepo) Create(ctx context.Context, p model.Project) (model.Project, error) {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO projects (owner_id,portfolio_id,title,description,category,role,tech_stack,repo_url,demo_url,image_url,programmer_name)
         VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
        p.OwnerID, p.PortfolioID, p.Title, p.Description, p.Category, p.Role,
        p.TechStack, p.RepoURL, p.DemoURL, p.ImageURL, p.ProgrammerName)
    if err != nil {
        return model.Project{}, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return model.Project{}, err
    }
    return r.GetByID(ctx, id)
}

// GetByID returns one project or ErrNotFound.
func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (model.Project, error) {
    p, err := scanProject(r.db.QueryRowContext(ctx,
        "SELECT "+projectColumns+" FROM projects WHERE id=? LIMIT 1", id))
    if errors.Is(err, sql.ErrNoRows) {
        return model.Project{}, ErrNotFound
    }
    return p, err
}

// List returns a page of projects, optionally filtered by owner.  An empty
// ownerID means no filter.
func (r *ProjectRepo) List(ctx context.Context, ownerID string, page, size int) ([]model.Project, int64, error) {
    where := ""
    var args []any
    if ownerID != "" {
        where = " WHERE owner_id=?"
        args = append(args, ownerID)
    }

    var total int64
    if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects"+where, args...).Scan(&total); err != nil {
        return nil, 0, err
    }
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+projectColumns+" FROM projects"+where+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
        append(args, size, page*size)...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    items := make([]model.Project, 0, size)
    for rows.Next() {
        p, err := scanProject(rows)
        if err != nil {
            return nil, 0, err
        }
        items = append(items, p)
    }
    return items, total, rows.Err()
}

// Update overwrites the mutable fields of a project.
func (r *ProjectRepo) Update(ctx context.Context, p model.Project) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE projects SET title=?, description=?, category=?, role=?, tech_stack=?, repo_url=?, demo_url=?, image_url=?
         WHERE id=?`,
        p.Title, p.Description, p.Category, p.Role, p.TechStack, p.RepoURL, p.DemoURL, p.ImageURL, p.ID)
    if err != nil {
        return err
    }
    return requireRowAffected(res)
}

// Delete removes a project row.
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
    res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id=?", id)
    if err != nil {
        return err
    }
    return requireRowAffected(res)
}
