package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lexisware/portfolio-backend/internal/auth"
	"github.com/lexisware/portfolio-backend/internal/config"
	"github.com/lexisware/portfolio-backend/internal/middleware"
	"github.com/lexisware/portfolio-backend/internal/model"
	"github.com/lexisware/portfolio-backend/internal/repository"
	"github.com/lexisware/portfolio-backend/internal/service"
	"github.com/lexisware/portfolio-backend/internal/utils"
)

// dbTimeout bounds handler-level database calls.
const dbTimeout = 5 * time.Second

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Tokens   *auth.TokenService
	Notifier service.Notifier
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *auth.TokenService, n service.Notifier) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Notifier: n}
}

// ----- DTOs -----

type registerReq struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=80"`
	// Self-registration may not claim ADMIN.
	Role string `json:"role" validate:"omitempty,oneof=PROGRAMMER EXTERNAL"`
	Specialty   string `json:"specialty"`
	Bio         string `json:"bio"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userView struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Specialty   string    `json:"specialty,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Available   bool      `json:"available"`
	GitHub      string    `json:"github,omitempty"`
	Instagram   string    `json:"instagram,omitempty"`
	WhatsApp    string    `json:"whatsapp,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type authResp struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func toUserView(u model.User) userView {
	return userView{
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Specialty:   u.Specialty,
		Bio:         u.Bio,
		PhotoURL:    u.PhotoURL,
		Available:   u.Available,
		GitHub:      u.GitHub,
		Instagram:   u.Instagram,
		WhatsApp:    u.WhatsApp,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// Register creates a user and returns a signed token immediately.  The role
// defaults to EXTERNAL when omitted.  The welcome mail is dispatched on its
// own goroutine; a broker failure never fails the registration.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = auth.RoleExternal
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return writeError(c, err)
	}

	u := model.User{
		UID:          uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Role:         role,
		Specialty:    req.Specialty,
		Bio:          req.Bio,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.Create(ctx, u); err != nil {
		return writeError(c, err)
	}

	token, err := h.Tokens.Issue(u.UID, u.Email, u.Role)
	if err != nil {
		return writeError(c, err)
	}

	go func(email, name string) {
		nctx, ncancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer ncancel()
		_ = h.Notifier.Welcome(nctx, email, name) // best-effort, logged by the publisher
	}(u.Email, u.DisplayName)

	created, err := h.Users.GetByUID(ctx, u.UID)
	if err != nil {
		created = u // timestamps missing, but registration already succeeded
	}
	return c.JSON(http.StatusCreated, authResp{Token: token, User: toUserView(created)})
}

// Login verifies credentials and returns a fresh token.  Unknown email and
// wrong password are indistinguishable to the caller.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusUnauthorized, "invalid credentials")
		}
		return writeError(c, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return errJSON(c, http.StatusUnauthorized, "invalid credentials")
	}

	token, err := h.Tokens.Issue(u.UID, u.Email, u.Role)
	if err != nil {
		return writeError(c, err)
	}
	_ = h.Users.TouchUpdatedAt(ctx, u.UID) // activity marker only

	return c.JSON(http.StatusOK, authResp{Token: token, User: toUserView(u)})
}

// Me returns the profile of the authenticated caller.
func (h *AuthHandler) Me(c echo.Context) error {
	ident := middleware.IdentityFrom(c)
	if ident == nil {
		return writeError(c, auth.ErrUnauthenticated)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByUID(ctx, ident.Subject)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toUserView(u))
}
