package productcontroller

import (
	"net/http"

	"github.com/doughreme/bakery-api/controllers"
	"github.com/doughreme/bakery-api/schemas"
	"github.com/gin-gonic/gin"
)

// UpdateProduct updates an existing product by ID. Only the fields present in
// the body change; description and image_url can be cleared with null.
func UpdateProduct(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParseID(c, "id")
		if err != nil {
			_ = c.Error(err)
			return
		}

		var in schemas.ProductUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			_ = c.Error(schemas.FromBindingError(err))
			return
		}

		product, err := svc.Update(c.Request.Context(), id, in)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, schemas.NewProductOut(product))
	}
}
