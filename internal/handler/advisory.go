package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lexisware/portfolio-backend/internal/middleware"
	"github.com/lexisware/portfolio-backend/internal/model"
	"github.com/lexisware/portfolio-backend/internal/repository"
	"github.com/lexisware/portfolio-backend/internal/service"
)

// AdvisoryHandler exposes the booking endpoints.  Creation is public (the
// requester needs no account); status transitions and deletes go through the
// service, which enforces ownership against the acting identity.
type AdvisoryHandler struct {
	Svc   *service.AdvisoryService
	Users *repository.UserRepo
}

func NewAdvisoryHandler(s *service.AdvisoryService, u *repository.UserRepo) *AdvisoryHandler {
	return &AdvisoryHandler{Svc: s, Users: u}
}

// ----- DTOs -----

type createAdvisoryReq struct {
	ProgrammerID   string `json:"programmer_id" validate:"required"`
	RequesterName  string `json:"requester_name" validate:"required,min=2,max=80"`
	RequesterEmail string `json:"requester_email" validate:"required,email"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required,datetime=15:04"`
	Note           string `json:"note" validate:"max=500"`
}

type statusReq struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type advisoryView struct {
	ID              int64     `json:"id"`
	ProgrammerID    string    `json:"programmer_id"`
	ProgrammerEmail string    `json:"programmer_email"`
	ProgrammerName  string    `json:"programmer_name"`
	RequesterName   string    `json:"requester_name"`
	RequesterEmail  string    `json:"requester_email"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Note            string    `json:"note,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type advisoryPage struct {
	Items []advisoryView `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

func toAdvisoryView(a model.Advisory) advisoryView {
	return advisoryView{
		ID:              a.ID,
		ProgrammerID:    a.ProgrammerID,
		ProgrammerEmail: a.ProgrammerEmail,
		ProgrammerName:  a.ProgrammerName,
		RequesterName:   a.RequesterName,
		RequesterEmail:  a.RequesterEmail,
		Date:            a.Date,
		Time:            a.Time,
		Note:            a.Note,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
	}
}

func toAdvisoryPage(items []model.Advisory, total int64, page, size int) advisoryPage {
	views := make([]advisoryView, 0, len(items))
	for _, a := range items {
		views = append(views, toAdvisoryView(a))
	}
	return advisoryPage{Items: views, Total: total, Page: page, Size: size}
}

// pageParams reads ?page= and ?size= with defaults and a hard cap.
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 0 {
		page = 0
	}
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// Create registers a new booking.  The assigned programmer must exist; their
// email and display name are denormalized onto the row.  Whatever the caller
// says, the booking starts pending.
func (h *AdvisoryHandler) Create(c echo.Context) error {
	var req createAdvisoryReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	programmer, err := h.Users.GetByUID(ctx, req.ProgrammerID)
	if err != nil {
		return writeError(c, err)
	}
	if !programmer.Available {
		return errJSON(c, http.StatusConflict, "programmer is not accepting advisories")
	}

	created, err := h.Svc.Create(ctx, model.Advisory{
		ProgrammerID:    programmer.UID,
		ProgrammerEmail: programmer.Email,
		ProgrammerName:  programmer.DisplayName,
		RequesterName:   req.RequesterName,
		RequesterEmail:  req.RequesterEmail,
		Date:            req.Date,
		Time:            req.Time,
		Note:            req.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toAdvisoryView(created))
}

// Get returns one booking by id.
func (h *AdvisoryHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a, err := h.Svc.Get(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAdvisoryView(a))
}

// List returns all bookings, optionally filtered by ?status=.
func (h *AdvisoryHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if status := c.QueryParam("status"); status != "" {
		if !model.ValidStatus(status) {
			return errJSON(c, http.StatusBadRequest, "invalid status")
		}
		items, total, err := h.Svc.ListByStatus(ctx, status, page, size)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, toAdvisoryPage(items, total, page, size))
	}

	items, total, err := h.Svc.ListAll(ctx, page, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAdvisoryPage(items, total, page, size))
}

// ListByProgrammer returns the bookings assigned to one programmer.
func (h *AdvisoryHandler) ListByProgrammer(c echo.Context) error {
	page, size := pageParams(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, total, err := h.Svc.ListByProgrammer(ctx, c.Param("uid"), page, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAdvisoryPage(items, total, page, size))
}

// ListMine returns the bookings assigned to the authenticated programmer.
func (h *AdvisoryHandler) ListMine(c echo.Context) error {
	ident := middleware.IdentityFrom(c)
	page, size := pageParams(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, total, err := h.Svc.ListByProgrammer(ctx, ident.Subject, page, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAdvisoryPage(items, total, page, size))
}

// ListByRequester returns the bookings requested from the path email.
func (h *AdvisoryHandler) ListByRequester(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return errJSON(c, http.StatusBadRequest, "email required")
	}
	page, size := pageParams(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, total, err := h.Svc.ListByRequester(ctx, email, page, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAdvisoryPage(items, total, page, size))
}

// ListByStatus filters bookings by the path status.
func (h *AdvisoryHandler) ListByStatus(c echo.Context) error {
	status := c.Param("status")
	if !model.ValidStatus(status) {
		return errJSON(c, http.StatusBadRequest, "invalid status")
	}
	page, size := pageParams(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, total, err := h.Svc.ListByStatus(ctx, status, page, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAdvisoryPage(items, total, page, size))
}

// Approve transitions the booking to approved.
func (h *AdvisoryHandler) Approve(c echo.Context) error {
	return h.transition(c, model.StatusApproved)
}

// Reject transitions the booking to rejected.
func (h *AdvisoryHandler) Reject(c echo.Context) error {
	return h.transition(c, model.StatusRejected)
}

// UpdateStatus transitions the booking to the status named in the body.
func (h *AdvisoryHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}
	return h.transition(c, req.Status)
}

func (h *AdvisoryHandler) transition(c echo.Context, status string) error {
	id, ok := pathID(c)
	if !ok {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	updated, err := h.Svc.UpdateStatus(ctx, id, status, middleware.IdentityFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAdvisoryView(updated))
}

// Delete removes a booking under the same ownership rule as transitions.
func (h *AdvisoryHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return errJSON(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Svc.Delete(ctx, id, middleware.IdentityFrom(c)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
