package model

import "time"

// Portfolio is a programmer's public portfolio page.  Each user owns at most
// one portfolio; projects reference it by id.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – uid of the owning user (ownership field).
//  Title       – headline of the portfolio.
//  Description – profile text.
//  Theme       – visual theme preference.
//  IsPublic    – whether the portfolio is publicly visible.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Portfolio struct {
    ID          int64     // portfolios.id
    UserID      string    // portfolios.user_id
    Title       string    // portfolios.title
    Description string    // portfolios.description
    Theme       string    // portfolios.theme
    IsPublic    bool      // portfolios.is_public
    CreatedAt   time.Time // portfolios.created_at
    UpdatedAt   time.Time // portfolios.updated_at
}
