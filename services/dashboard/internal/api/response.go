package api

import (
	"net/http"

	"gigdash/services/dashboard/internal/errors"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = errors.Message(err)
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// StatusFor maps a domain error onto an HTTP status.
func StatusFor(err error) int {
	switch errors.TypeOf(err) {
	case errors.ErrTypeDataUnavailable, errors.ErrTypeUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrTypeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
