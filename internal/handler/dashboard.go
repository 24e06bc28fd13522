package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lexisware/portfolio-backend/internal/repository"
)

// DashboardHandler serves the admin aggregation endpoints.  All routes are
// wired behind RequireRole(ADMIN).
type DashboardHandler struct {
	Stats *repository.StatsRepo
}

func NewDashboardHandler(s *repository.StatsRepo) *DashboardHandler {
	return &DashboardHandler{Stats: s}
}

// Totals returns the headline platform numbers.
func (h *DashboardHandler) Totals(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Stats.Totals(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// AdvisoriesByMonth returns the per-month booking series.
func (h *DashboardHandler) AdvisoriesByMonth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Stats.AdvisoriesByMonth(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// UserGrowth returns the per-month registration series.
func (h *DashboardHandler) UserGrowth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Stats.UserGrowthByMonth(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// AdvisoriesByProgrammer returns booking counts per assigned programmer.
func (h *DashboardHandler) AdvisoriesByProgrammer(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Stats.AdvisoriesByProgrammer(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ProjectsByUser returns project counts per owner.
func (h *DashboardHandler) ProjectsByUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Stats.ProjectsByUser(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
