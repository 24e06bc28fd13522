package repository

import (
    "context"
    "database/sql"

    "github.com/lexisware/portfolio-backend/internal/auth"
    "github.com/lexisware/portfolio-backend/internal/model"
)

// StatsRepo runs the aggregation queries behind the admin dashboard.  These
// are plain read-only GROUP BY queries over the existing tables; no derived
// state is stored anywhere.
type StatsRepo struct {
    db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// DashboardStats aggregates platform-wide totals.
type DashboardStats struct {
    ProgrammersCount   int64 `json:"programmers_count"`
    ProjectsCount      int64 `json:"projects_count"`
    AdvisoriesPending  int64 `json:"advisories_pending"`
    AdvisoriesApproved int64 `json:"advisories_approved"`
    AdvisoriesRejected int64 `json:"advisories_rejected"`
}

// MonthCount is one bucket of a per-month series.
type MonthCount struct {
    Month string `json:"month"` // YYYY-MM
    Count int64  `json:"count"`
}

// LabelCount is a generic label/count pair (per programmer, per user).
type LabelCount struct {
    Label string `json:"label"`
    Count int64  `json:"count"`
}

// Totals returns the headline dashboard numbers.
func (r *StatsRepo) Totals(ctx context.Context) (DashboardStats, error) {
    var s DashboardStats
    if err := r.db.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM users WHERE role=?", auth.RoleProgrammer).Scan(&s.ProgrammersCount); err != nil {
        return s, err
    }
    if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&s.ProjectsCount); err != nil {
        return s, err
    }
    for status, dst := range map[string]*int64{
        model.StatusPending:  &s.AdvisoriesPending,
        model.StatusApproved: &s.AdvisoriesApproved,
        model.StatusRejected: &s.AdvisoriesRejected,
    } {
        if err := r.db.QueryRowContext(ctx,
            "SELECT COUNT(*) FROM advisories WHERE status=?", status).Scan(dst); err != nil {
            return s, err
        }
    }
    return s, nil
}

func (r *StatsRepo) monthSeries(ctx context.Context, query string) ([]MonthCount, error) {
    rows, err := r.db.QueryContext(ctx, query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []MonthCount
    for rows.Next() {
        var m MonthCount
        if err := rows.Scan(&m.Month, &m.Count); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    return out, rows.Err()
}

func (r *StatsRepo) labelSeries(ctx context.Context, query string) ([]LabelCount, error) {
    rows, err := r.db.QueryContext(ctx, query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []LabelCount
    for rows.Next() {
        var l LabelCount
        if err := rows.Scan(&l.Label, &l.Count); err != nil {
            return nil, err
        }
        out = append(out, l)
    }
    return out, rows.Err()
}

// AdvisoriesByMonth buckets bookings by creation month.
func (r *StatsRepo) AdvisoriesByMonth(ctx context.Context) ([]MonthCount, error) {
    return r.monthSeries(ctx,
        `SELECT DATE_FORMAT(created_at,'%Y-%m') AS m, COUNT(*) FROM advisories GROUP BY m ORDER BY m`)
}

// UserGrowthByMonth buckets registrations by month.
func (r *StatsRepo) UserGrowthByMonth(ctx context.Context) ([]MonthCount, error) {
    return r.monthSeries(ctx,
        `SELECT DATE_FORMAT(created_at,'%Y-%m') AS m, COUNT(*) FROM users GROUP BY m ORDER BY m`)
}

// AdvisoriesByProgrammer counts bookings per assigned programmer.
func (r *StatsRepo) AdvisoriesByProgrammer(ctx context.Context) ([]LabelCount, error) {
    return r.labelSeries(ctx,
        `SELECT programmer_name, COUNT(*) FROM advisories GROUP BY programmer_name ORDER BY COUNT(*) DESC`)
}

// ProjectsByUser counts projects per owner.
func (r *StatsRepo) ProjectsByUser(ctx context.Context) ([]LabelCount, error) {
    return r.labelSeries(ctx,
        `SELECT programmer_name, COUNT(*) FROM projects GROUP BY programmer_name ORDER BY COUNT(*) DESC`)
}
