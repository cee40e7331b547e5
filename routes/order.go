package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	ordercontroller "github.com/doughreme/bakery-api/controllers/order"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, hub *ordercontroller.Hub) {
	svc := ordercontroller.NewService(db)

	orders := api.Group("/orders")
	{
		orders.POST("/", ordercontroller.PlaceOrderHandler(svc, hub))
		orders.GET("/", ordercontroller.GetAllOrdersHandler(svc))

		// websocket feed of order events
		orders.GET("/ws", ordercontroller.OrderWebSocketHandler(hub))

		orders.GET("/:orderID", ordercontroller.GetOrderByIDHandler(svc))
		orders.PATCH("/:orderID/status", ordercontroller.UpdateOrderStatusHandler(svc, hub))
		orders.DELETE("/:orderID", ordercontroller.DeleteOrderHandler(svc, hub))
	}
}
