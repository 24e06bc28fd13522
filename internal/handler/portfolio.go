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

// PortfolioHandler exposes portfolio endpoints.  Each user owns at most one
// portfolio; public reads show only portfolios flagged public.
type PortfolioHandler struct {
	Portfolios *repository.PortfolioRepo
}

func NewPortfolioHandler(p *repository.PortfolioRepo) *PortfolioHandler {
	return &PortfolioHandler{Portfolios: p}
}

type portfolioReq struct {
	Title       string `json:"title" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Theme       string `json:"theme" validate:"max=40"`
	IsPublic    bool   `json:"is_public"`
}

type portfolioView struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Theme       string    `json:"theme,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type portfolioPage struct {
	Items []portfolioView `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

func toPortfolioView(p model.Portfolio) portfolioView {
	return portfolioView{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Theme:       p.Theme,
		IsPublic:    p.IsPublic,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Create registers the caller's portfolio.  A second portfolio for the same
// user is a conflict.
func (h *PortfolioHandler) Create(c echo.Context) error {
	ident := middleware.IdentityFrom(c)

	var req portfolioReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	created, err := h.Portfolios.Create(ctx, model.Portfolio{
		UserID:      ident.Subject,
		Title:       req.Title,
		Description: req.Description,
		Theme:       req.Theme,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toPortfolioView(created))
}

// Get returns one portfolio by id.
func (h *PortfolioHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Portfolios.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toPortfolioView(p))
}

// GetByUser returns the portfolio owned by the path uid.
func (h *PortfolioHandler) GetByUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Portfolios.GetByUser(ctx, c.Param("uid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toPortfolioView(p))
}

// ListPublic returns a page of publicly visible portfolios.
func (h *PortfolioHandler) ListPublic(c echo.Context) error {
	page, size := pageParams(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, total, err := h.Portfolios.ListPublic(ctx, page, size)
	if err != nil {
		return writeError(c, err)
	}
	views := make([]portfolioView, 0, len(items))
	for _, p := range items {
		views = append(views, toPortfolioView(p))
	}
	return c.JSON(http.StatusOK, portfolioPage{Items: views, Total: total, Page: page, Size: size})
}

// Update overwrites the mutable fields.  Owner or admin.
func (h *PortfolioHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}

	var req portfolioReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Portfolios.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if err := auth.RequireOwnerOrAdmin(middleware.IdentityFrom(c), p.UserID); err != nil {
		return writeError(c, err)
	}

	p.Title = req.Title
	p.Description = req.Description
	p.Theme = req.Theme
	p.IsPublic = req.IsPublic
	if err := h.Portfolios.Update(ctx, p); err != nil {
		return writeError(c, err)
	}

	updated, err := h.Portfolios.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toPortfolioView(updated))
}

// Delete removes a portfolio.  Owner or admin.
func (h *PortfolioHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Portfolios.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if err := auth.RequireOwnerOrAdmin(middleware.IdentityFrom(c), p.UserID); err != nil {
		return writeError(c, err)
	}
	if err := h.Portfolios.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
