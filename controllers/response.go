// Package controllers holds the gin handlers of the /api/v1 surface.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/gin-gonic/gin"
)

// respondSuccess writes the standard success envelope.
func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"status":  "Success",
		"message": message,
		"data":    data,
	})
}

// respondError turns a service error into its HTTP status and error envelope.
// Anything unexpected is a 500 and is attached to the context for reporting.
func respondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": svcErr.Message}
	if len(svcErr.Fields) > 0 {
		body["errors"] = svcErr.Fields
	}
	status := statusOf(svcErr.Kind)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, body)
}

func statusOf(kind error) int {
	switch {
	case errors.Is(kind, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(kind, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, services.ErrConflict),
		errors.Is(kind, services.ErrInvalidTransition),
		errors.Is(kind, services.ErrFullyBooked):
		return http.StatusConflict
	case errors.Is(kind, services.ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(kind, services.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// bindJSON decodes the request body, answering 400 itself when it is malformed.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to parse JSON data"})
		return false
	}
	return true
}

// paramID reads a positive numeric path parameter, answering 400 when it is not one.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
