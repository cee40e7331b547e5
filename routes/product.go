package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/doughreme/bakery-api/controllers/product"
)

func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	svc := productcontroller.NewService(db)

	products := api.Group("/products")
	{
		products.POST("/", productcontroller.CreateProduct(svc))
		products.GET("/", productcontroller.GetProducts(svc))

		// Spreadsheet round trip
		products.GET("/export", productcontroller.ExportProductsToExcel(svc))
		products.POST("/import", productcontroller.ImportProductsFromExcel(svc))

		products.GET("/:id", productcontroller.GetProductByID(svc))
		products.PUT("/:id", productcontroller.UpdateProduct(svc))
		products.DELETE("/:id", productcontroller.DeleteProduct(svc))
	}
}
