package productcontroller

import (
	"net/http"

	"github.com/doughreme/bakery-api/schemas"
	"github.com/gin-gonic/gin"
)

// GetProducts lists products with optional category and in_stock filters.
func GetProducts(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q ListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			_ = c.Error(schemas.FromBindingError(err))
			return
		}

		products, err := svc.List(c.Request.Context(), q)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, schemas.NewProductOuts(products))
	}
}
