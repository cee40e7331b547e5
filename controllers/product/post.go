package productcontroller

import (
	"net/http"

	"github.com/doughreme/bakery-api/schemas"
	"github.com/gin-gonic/gin"
)

// CreateProduct handles POST /api/v1/products/.
func CreateProduct(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in schemas.ProductCreate
		if err := c.ShouldBindJSON(&in); err != nil {
			_ = c.Error(schemas.FromBindingError(err))
			return
		}

		product, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, schemas.NewProductOut(product))
	}
}
