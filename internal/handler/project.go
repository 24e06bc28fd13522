package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lexisware/portfolio-backend/internal/auth"
	"github.com/lexisware/portfolio-backend/internal/middleware"
	"github.com/lexisware/portfolio-backend/internal/model"
	"github.com/lexisware/portfolio-backend/internal/repository"
)

// ProjectHandler exposes project endpoints.  Reads are public; mutations
// apply the owner-or-admin rule against the project's owner uid.
type ProjectHandler struct {
	Projects *repository.ProjectRepo
	Users    *repository.UserRepo
}

func NewProjectHandler(p *repository.ProjectRepo, u *repository.UserRepo) *ProjectHandler {
	return &ProjectHandler{Projects: p, Users: u}
}

type projectReq struct {
	PortfolioID int64  `json:"portfolio_id"`
	Title       string `json:"title" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category" validate:"required,oneof=academico laboral"`
	Role        string `json:"role" validate:"required,oneof=frontend backend fullstack db"`
	TechStack   string `json:"tech_stack" validate:"max=500"`
	RepoURL     string `json:"repo_url" validate:"omitempty,url"`
	DemoURL     string `json:"demo_url" validate:"omitempty,url"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

type projectView struct {
	ID             int64     `json:"id"`
	OwnerID        string    `json:"owner_id"`
	PortfolioID    int64     `json:"portfolio_id,omitempty"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category"`
	Role           string    `json:"role"`
	TechStack      string    `json:"tech_stack,omitempty"`
	RepoURL        string    `json:"repo_url,omitempty"`
	DemoURL        string    `json:"demo_url,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	ProgrammerName string    `json:"programmer_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type projectPage struct {
	Items []projectView `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}

func toProjectView(p model.Project) projectView {
	return projectView{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		PortfolioID:    p.PortfolioID,
		Title:          p.Title,
		Description:    p.Description,
		Category:       p.Category,
		Role:           p.Role,
		TechStack:      p.TechStack,
		RepoURL:        p.RepoURL,
		DemoURL:        p.DemoURL,
		ImageURL:       p.ImageURL,
		ProgrammerName: p.ProgrammerName,
		CreatedAt:      p.CreatedAt,
	}
}

// Create registers a project owned by the caller.  The author name is
// denormalized from the caller's profile for search.
func (h *ProjectHandler) Create(c echo.Context) error {
	ident := middleware.IdentityFrom(c)

	var req projectReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	name := ""
	if u, err := h.Users.GetByUID(ctx, ident.Subject); err == nil {
		name = u.DisplayName
	}

	created, err := h.Projects.Create(ctx, model.Project{
		OwnerID:        ident.Subject,
		PortfolioID:    req.PortfolioID,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Role:           req.Role,
		TechStack:      req.TechStack,
		RepoURL:        req.RepoURL,
		DemoURL:        req.DemoURL,
		ImageURL:       req.ImageURL,
		ProgrammerName: name,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toProjectView(created))
}

// Get returns one project by id.
func (h *ProjectHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toProjectView(p))
}

// List returns a page of projects, optionally filtered by ?owner=.
func (h *ProjectHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, total, err := h.Projects.List(ctx, c.QueryParam("owner"), page, size)
	if err != nil {
		return writeError(c, err)
	}
	views := make([]projectView, 0, len(items))
	for _, p := range items {
		views = append(views, toProjectView(p))
	}
	return c.JSON(http.StatusOK, projectPage{Items: views, Total: total, Page: page, Size: size})
}

// Update overwrites the mutable fields.  Owner or admin.
func (h *ProjectHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}

	var req projectReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if err := auth.RequireOwnerOrAdmin(middleware.IdentityFrom(c), p.OwnerID); err != nil {
		return writeError(c, err)
	}

	p.Title = req.Title
	p.Description = req.Description
	p.Category = req.Category
	p.Role = req.Role
	p.TechStack = req.TechStack
	p.RepoURL = req.RepoURL
	p.DemoURL = req.DemoURL
	p.ImageURL = req.ImageURL
	if err := h.Projects.Update(ctx, p); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toProjectView(p))
}

// Delete removes a project.  Owner or admin.
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if err := auth.RequireOwnerOrAdmin(middleware.IdentityFrom(c), p.OwnerID); err != nil {
		return writeError(c, err)
	}
	if err := h.Projects.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
