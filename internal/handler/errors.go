package handler // declare the package name; contains HTTP handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/lexisware/portfolio-backend/internal/auth"
	"github.com/lexisware/portfolio-backend/internal/repository"
)

// errorBody is the uniform error envelope returned by every failing
// endpoint: the HTTP status repeated in the body, a human message and the
// moment the error was produced.
type errorBody struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// validationBody extends the envelope with a field-to-message map for input
// validation failures.
type validationBody struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors"`
	Timestamp string            `json:"timestamp"`
}

func nowStamp() string { return time.Now().UTC().Format(time.RFC3339) }

func errJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorBody{Status: status, Message: msg, Timestamp: nowStamp()})
}

// writeError maps domain errors onto HTTP responses in one place so every
// handler fails identically.  Unknown errors become an opaque 500; internal
// detail never reaches the client.
func writeError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		return c.JSON(http.StatusBadRequest, validationBody{
			Status:    http.StatusBadRequest,
			Message:   "validation failed",
			Errors:    fields,
			Timestamp: nowStamp(),
		})
	case errors.Is(err, repository.ErrNotFound):
		return errJSON(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, repository.ErrEmailExists):
		return errJSON(c, http.StatusConflict, "email already registered")
	case errors.Is(err, repository.ErrDuplicate):
		return errJSON(c, http.StatusConflict, "resource already exists")
	case errors.Is(err, auth.ErrUnauthenticated):
		return errJSON(c, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, auth.ErrForbidden):
		return errJSON(c, http.StatusForbidden, "forbidden")
	default:
		log.Printf("handler: internal error on %s %s: %v", c.Request().Method, c.Path(), err)
		return errJSON(c, http.StatusInternalServerError, "internal server error")
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
