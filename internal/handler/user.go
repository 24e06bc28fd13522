package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lexisware/portfolio-backend/internal/auth"
	"github.com/lexisware/portfolio-backend/internal/middleware"
	"github.com/lexisware/portfolio-backend/internal/repository"
)

// UserHandler exposes profile endpoints.  Reads are public; mutations apply
// the owner-or-admin rule against the path uid.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler {
	return &UserHandler{Users: u}
}

type updateProfileReq struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=80"`
	Specialty   string `json:"specialty" validate:"max=120"`
	Bio         string `json:"bio" validate:"max=1000"`
	PhotoURL    string `json:"photo_url" validate:"omitempty,url"`
	GitHub      string `json:"github" validate:"omitempty,url"`
	Instagram   string `json:"instagram" validate:"omitempty,url"`
	WhatsApp    string `json:"whatsapp" validate:"max=30"`
}

type availabilityReq struct {
	Available *bool `json:"available" validate:"required"`
}

type userPage struct {
	Items []userView `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
}

// ListProgrammers is the public directory of programmers.
func (h *UserHandler) ListProgrammers(c echo.Context) error {
	page, size := pageParams(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, total, err := h.Users.ListByRole(ctx, auth.RoleProgrammer, page, size)
	if err != nil {
		return writeError(c, err)
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	return c.JSON(http.StatusOK, userPage{Items: views, Total: total, Page: page, Size: size})
}

// List returns every user.  Admin only, wired behind RequireRole.
func (h *UserHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, total, err := h.Users.List(ctx, page, size)
	if err != nil {
		return writeError(c, err)
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	return c.JSON(http.StatusOK, userPage{Items: views, Total: total, Page: page, Size: size})
}

// Get returns one public profile by uid.
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toUserView(u))
}

// UpdateProfile overwrites the mutable profile fields.  Only the profile
// owner or an administrator may write.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid := c.Param("uid")
	if err := auth.RequireOwnerOrAdmin(middleware.IdentityFrom(c), uid); err != nil {
		return writeError(c, err)
	}

	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByUID(ctx, uid)
	if err != nil {
		return writeError(c, err)
	}
	u.DisplayName = req.DisplayName
	u.Specialty = req.Specialty
	u.Bio = req.Bio
	u.PhotoURL = req.PhotoURL
	u.GitHub = req.GitHub
	u.Instagram = req.Instagram
	u.WhatsApp = req.WhatsApp

	if err := h.Users.UpdateProfile(ctx, u); err != nil {
		return writeError(c, err)
	}
	updated, err := h.Users.GetByUID(ctx, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toUserView(updated))
}

// SetAvailability flips whether the programmer accepts new advisories.
func (h *UserHandler) SetAvailability(c echo.Context) error {
	uid := c.Param("uid")
	if err := auth.RequireOwnerOrAdmin(middleware.IdentityFrom(c), uid); err != nil {
		return writeError(c, err)
	}

	var req availabilityReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.SetAvailability(ctx, uid, *req.Available); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a user account.  Owner or admin.
func (h *UserHandler) Delete(c echo.Context) error {
	uid := c.Param("uid")
	if err := auth.RequireOwnerOrAdmin(middleware.IdentityFrom(c), uid); err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.Delete(ctx, uid); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
