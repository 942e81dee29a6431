package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ListResponse is the envelope of every list or search endpoint.
type ListResponse struct {
	Results interface{} `json:"results"`
	Total   int         `json:"total"`
}

// Success writes a bare JSON body; used for single entities and tokens.
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// List writes a {results, total} envelope.
func List(c *gin.Context, results interface{}, total int) {
	c.JSON(http.StatusOK, ListResponse{Results: results, Total: total})
}

// Error writes an error response with the given status.
func Error(c *gin.Context, code int, message, details string) {
	c.JSON(code, ErrorResponse{Error: message, Details: details})
}

// Fail maps err onto a status code and writes the error response.
func Fail(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logFailure(c, err)
		}
		Error(c, appErr.Status, appErr.Message, appErr.Details)
		return
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			Error(c, http.StatusConflict, "Record already exists", pqErr.Detail)
			return
		case "foreign_key_violation":
			Error(c, http.StatusBadRequest, "Referenced record does not exist", pqErr.Detail)
			return
		case "not_null_violation":
			Error(c, http.StatusBadRequest, "Missing required field", pqErr.Message)
			return
		}
	}

	switch {
	case errors.Is(err, ErrNoFilter):
		Error(c, http.StatusBadRequest, "No search query provided", "")
	case errors.Is(err, ErrInvalidPage):
		Error(c, http.StatusBadRequest, "Invalid limit or offset", "")
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, "Invalid credentials", "")
	case errors.Is(err, ErrTooManyAttempts):
		Error(c, http.StatusTooManyRequests, "Too many failed login attempts", "")
	case errors.Is(err, ErrNotFound):
		Error(c, http.StatusNotFound, "Record not found", "")
	default:
		logFailure(c, err)
		Error(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

func logFailure(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.FullPath()).
		Msg("request failed")
}
