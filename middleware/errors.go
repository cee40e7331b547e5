package middleware

import (
	"errors"
	"net/http"

	"github.com/doughreme/bakery-api/apperr"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Known application errors keep their status and message; anything else is
// logged and hidden behind a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			c.JSON(appErr.HTTPStatus(), appErr)
			return
		}

		log.WithFields(log.Fields{
			"request_id": c.GetString(RequestIDKey),
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("❌ request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
