package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Accepted by the bakery
	OrderStatusCompleted OrderStatus = "completed" // Picked up or delivered
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every accepted status in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// ParseOrderStatus maps a raw value onto a known status. Matching is exact.
func ParseOrderStatus(status string) (OrderStatus, error) {
	for _, s := range OrderStatuses {
		if string(s) == status {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid status. Must be one of: %s", JoinOrderStatuses(", "))
}

func JoinOrderStatuses(sep string) string {
	parts := make([]string, len(OrderStatuses))
	for i, s := range OrderStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, sep)
}

// Order is a customer order. TotalAmount is computed once at creation from the
// item price snapshots and never recomputed.
type Order struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	CustomerName  string          `gorm:"size:100;not null"`
	CustomerEmail string          `gorm:"size:100;not null"`
	CustomerPhone *string         `gorm:"size:20"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status        OrderStatus     `gorm:"type:VARCHAR(20);not null;default:'pending';index"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. Price is the product price at the time
// the order was placed.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	OrderID   uint            `gorm:"not null;index"`
	ProductID uint            `gorm:"not null;index"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal is price × quantity for this item.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
