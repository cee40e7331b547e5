// Package controllers holds helpers shared by the resource controllers.
package controllers

import (
	"strconv"

	"github.com/doughreme/bakery-api/apperr"
	"github.com/gin-gonic/gin"
)

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.InvalidFields(apperr.FieldError{
			Field:   name,
			Message: "value is not a valid integer",
		})
	}
	return uint(id), nil
}
