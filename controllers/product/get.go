package productcontroller

import (
	"net/http"

	"github.com/doughreme/bakery-api/controllers"
	"github.com/doughreme/bakery-api/schemas"
	"github.com/gin-gonic/gin"
)

// GetProductByID returns a single product.
// URL param: /products/:id
func GetProductByID(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParseID(c, "id")
		if err != nil {
			_ = c.Error(err)
			return
		}

		product, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, schemas.NewProductOut(product))
	}
}
