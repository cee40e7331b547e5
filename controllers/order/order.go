package ordercontroller

import (
	"net/http"

	"github.com/doughreme/bakery-api/apperr"
	"github.com/doughreme/bakery-api/controllers"
	"github.com/doughreme/bakery-api/metrics"
	"github.com/doughreme/bakery-api/schemas"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// PlaceOrderHandler handles POST /api/v1/orders/.
func PlaceOrderHandler(svc *Service, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in schemas.OrderCreate
		if err := c.ShouldBindJSON(&in); err != nil {
			metrics.OrdersTotal.WithLabelValues(metrics.OrderResultInvalid).Inc()
			_ = c.Error(schemas.FromBindingError(err))
			return
		}

		order, err := svc.CreateOrder(c.Request.Context(), in)
		if err != nil {
			switch apperr.KindOf(err) {
			case apperr.KindNotFound:
				metrics.OrdersTotal.WithLabelValues(metrics.OrderResultProductNotFound).Inc()
			case apperr.KindDomain:
				metrics.OrdersTotal.WithLabelValues(metrics.OrderResultOutOfStock).Inc()
			case apperr.KindValidation:
				metrics.OrdersTotal.WithLabelValues(metrics.OrderResultInvalid).Inc()
			}
			_ = c.Error(err)
			return
		}

		out := schemas.NewOrderOut(order)
		metrics.OrdersTotal.WithLabelValues(metrics.OrderResultCreated).Inc()
		metrics.OrderAmount.Observe(out.TotalAmount)
		log.WithFields(log.Fields{
			"order_id": order.ID,
			"items":    len(order.Items),
			"total":    order.TotalAmount.StringFixed(2),
		}).Info("✅ order placed")

		hub.Broadcast(EventOrderCreated, out)
		c.JSON(http.StatusCreated, out)
	}
}

// GetAllOrdersHandler lists orders, optionally filtered by status_filter.
func GetAllOrdersHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q ListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			_ = c.Error(schemas.FromBindingError(err))
			return
		}

		orders, err := svc.List(c.Request.Context(), q)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, schemas.NewOrderOuts(orders))
	}
}

func GetOrderByIDHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParseID(c, "orderID")
		if err != nil {
			_ = c.Error(err)
			return
		}

		order, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, schemas.NewOrderOut(order))
	}
}

// UpdateOrderStatusHandler handles PATCH /api/v1/orders/:orderID/status?new_status=...
func UpdateOrderStatusHandler(svc *Service, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParseID(c, "orderID")
		if err != nil {
			_ = c.Error(err)
			return
		}

		newStatus, ok := c.GetQuery("new_status")
		if !ok {
			_ = c.Error(apperr.InvalidFields(apperr.FieldError{Field: "new_status", Message: "field required"}))
			return
		}

		order, err := svc.UpdateStatus(c.Request.Context(), id, newStatus)
		if err != nil {
			_ = c.Error(err)
			return
		}

		out := schemas.NewOrderOut(order)
		hub.Broadcast(EventOrderStatusUpdated, out)
		c.JSON(http.StatusOK, out)
	}
}

// DeleteOrderHandler removes an order and its items.
func DeleteOrderHandler(svc *Service, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := controllers.ParseID(c, "orderID")
		if err != nil {
			_ = c.Error(err)
			return
		}

		order, err := svc.Delete(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}

		hub.Broadcast(EventOrderDeleted, schemas.NewOrderOut(order))
		c.Status(http.StatusNoContent)
	}
}
