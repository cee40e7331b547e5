package schemas

import (
	"time"

	"github.com/doughreme/bakery-api/models"
)

// OrderItemCreate is one requested line: a product and how many of it.
type OrderItemCreate struct {
	ProductID uint `json:"product_id" binding:"gt=0"`
	Quantity  int  `json:"quantity" binding:"gt=0"`
}

// OrderCreate is the body of POST /orders. Totals and prices are never taken
// from the client.
type OrderCreate struct {
	CustomerName  string            `json:"customer_name" binding:"required,max=100"`
	CustomerEmail string            `json:"customer_email" binding:"required,email,max=100"`
	CustomerPhone *string           `json:"customer_phone" binding:"omitempty,max=20"`
	Items         []OrderItemCreate `json:"items" binding:"required,min=1,dive"`
}

type OrderItemOut struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderOut struct {
	ID            uint           `json:"id"`
	CustomerName  string         `json:"customer_name"`
	CustomerEmail string         `json:"customer_email"`
	CustomerPhone *string        `json:"customer_phone"`
	TotalAmount   float64        `json:"total_amount"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	Items         []OrderItemOut `json:"items"`
}

func NewOrderOut(o *models.Order) OrderOut {
	items := make([]OrderItemOut, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemOut{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price.InexactFloat64(),
		})
	}
	return OrderOut{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		TotalAmount:   o.TotalAmount.InexactFloat64(),
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
}

func NewOrderOuts(orders []models.Order) []OrderOut {
	out := make([]OrderOut, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderOut(&orders[i]))
	}
	return out
}
