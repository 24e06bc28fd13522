package model

import "time"

// Project categories and author roles, stored as strings in the projects
// table.
const (
    CategoryAcademic = "academico"
    CategoryWork     = "laboral"
)

// ValidCategory reports whether s is a known project category.
func ValidCategory(s string) bool {
    return s == CategoryAcademic || s == CategoryWork
}

// ValidProjectRole reports whether s is a known project author role.
func ValidProjectRole(s string) bool {
    switch s {
    case "frontend", "backend", "fullstack", "db":
        return true
    }
    return false
}

// Project is a single entry inside a programmer's portfolio.
//
// Fields:
//  ID             – primary key identifier.
//  OwnerID        – uid of the owning user (ownership field).
//  PortfolioID    – portfolio the project belongs to, zero when unattached.
//  Title          – project title.
//  Description    – short functional description.
//  Category       – academico or laboral.
//  Role           – frontend, backend, fullstack or db.
//  TechStack      – comma-separated technologies (flattened, no join table).
//  RepoURL        – source repository link.
//  DemoURL        – live demo link.
//  ImageURL       – representative image.
//  ProgrammerName – denormalized author name for quick search.
//  CreatedAt      – creation timestamp.
type Project struct {
    ID             int64     // projects.id
    OwnerID        string    // projects.owner_id
    PortfolioID    int64     // projects.portfolio_id
    Title          string    // projects.title
    Description    string    // projects.description
    Category       string    // projects.category
    Role           string    // projects.role
    TechStack      string    // projects.tech_stack
    RepoURL        string    // projects.repo_url
    DemoURL        string    // projects.demo_url
    ImageURL       string    // projects.image_url
    ProgrammerName string    // projects.programmer_name
    CreatedAt      time.Time // projects.created_at
}
