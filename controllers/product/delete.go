package productcontroller

import (
	"net/http"

	"github.com/doughreme/bakery-api/controllers"
	"github.com/gin-gonic/gin"
)

func DeleteProduct(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParseID(c, "id")
		if err != nil {
			_ = c.Error(err)
			return
		}

		if err := svc.Delete(c.Request.Context(), id); err != nil {
			_ = c.Error(err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
