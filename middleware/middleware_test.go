package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doughreme/bakery-api/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestEngine(h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(), ErrorHandler())
	r.GET("/x", h)
	return r
}

func do(r http.Handler, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandler_AppError(t *testing.T) {
	r := newTestEngine(func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("lookup: %w", apperr.NotFound("Product not found")))
	})

	w := do(r, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Product not found"}`, w.Body.String())
}

func TestErrorHandler_ValidationFields(t *testing.T) {
	r := newTestEngine(func(c *gin.Context) {
		_ = c.Error(apperr.InvalidFields(apperr.FieldError{Field: "price", Message: "ensure this value is greater than 0"}))
	})

	w := do(r, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error": "validation failed", "fields": [{"field": "price", "message": "ensure this value is greater than 0"}]}`, w.Body.String())
}

func TestErrorHandler_UnknownError(t *testing.T) {
	r := newTestEngine(func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection reset"))
	})

	w := do(r, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
}

func TestErrorHandler_AlreadyWritten(t *testing.T) {
	r := newTestEngine(func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"ok": true})
		_ = c.Error(errors.New("late"))
	})

	w := do(r, nil)
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRequestLogger_RequestID(t *testing.T) {
	r := newTestEngine(func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := do(r, http.Header{RequestIDHeader: []string{"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())

	// Lower-case header names from clients are matched too.
	w = do(r, http.Header{"x-request-id": []string{"lower-1"}})
	assert.Equal(t, "lower-1", w.Body.String())

	w = do(r, nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())
}
