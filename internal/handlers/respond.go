package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"emkaan/api/internal/repository"
	"emkaan/api/internal/service"
)

// envelope is the uniform response shape of every operation.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, err any) {
	c.JSON(status, envelope{Success: false, Error: err})
}

// respondFromError maps domain errors onto the taxonomy: invalid ids and
// constraint violations are 400, missing records 404, everything else
// collapses to a generic 500 with the cause logged only.
func respondFromError(c *gin.Context, log zerolog.Logger, err error) {
	var validation *service.ValidationError

	switch {
	case errors.Is(err, service.ErrInvalidID):
		respondError(c, http.StatusBadRequest, "Invalid ID")
	case errors.As(err, &validation):
		respondError(c, http.StatusBadRequest, validation.Messages)
	case errors.Is(err, repository.ErrDuplicateSlug),
		errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrPageReference):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrPageNotFound):
		respondError(c, http.StatusNotFound, "Page not found")
	case errors.Is(err, repository.ErrSectionNotFound):
		respondError(c, http.StatusNotFound, "Section not found")
	case errors.Is(err, repository.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("operation failed")
		respondError(c, http.StatusInternalServerError, "Server Error")
	}
}
