package apperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("product %d not found", 7).HTTPStatus())
	assert.Equal(t, http.StatusUnprocessableEntity, Validation("bad").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, Domain("out of stock").HTTPStatus())
	assert.Equal(t, http.StatusConflict, Conflict("in use").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, Validation("bad status").WithStatus(http.StatusBadRequest).HTTPStatus())
}

func TestWithStatusKeepsOriginal(t *testing.T) {
	orig := Validation("bad")
	_ = orig.WithStatus(http.StatusBadRequest)
	assert.Equal(t, http.StatusUnprocessableEntity, orig.HTTPStatus())
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("create order: %w", NotFound("product 3 not found"))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsDomain(err))
	assert.Equal(t, Kind(0), KindOf(fmt.Errorf("plain")))
	assert.Equal(t, "product 3 not found", NotFound("product %d not found", 3).Error())
}
