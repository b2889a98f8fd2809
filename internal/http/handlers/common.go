package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dedekindkali/FFF/internal/domain"
	"github.com/dedekindkali/FFF/internal/http/middleware"
	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsUnauthorized(err):
		RespondError(c, http.StatusUnauthorized, err.Error(), nil)
	case domain.IsForbidden(err):
		RespondError(c, http.StatusForbidden, err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error(), nil)
	default:
		RespondError(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// MustAuth returns the request identity; it aborts with 401 when missing.
// Routes behind the Auth middleware always have one.
func MustAuth(c *gin.Context) (domain.RequestContext, bool) {
	rc, ok := middleware.GetAuth(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "not authenticated", nil)
	}
	return rc, ok
}

// PathID parses a numeric :param from the URL.
func PathID(c *gin.Context, name string) (int64, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}
