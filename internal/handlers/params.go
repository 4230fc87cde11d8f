package handlers

import (
	"strconv"

	apierrors "github.com/andestrack/field-service-api/internal/errors"
	"github.com/gin-gonic/gin"
)

// parseIDParam parses a uint64 path parameter, responding with 400 on failure
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
