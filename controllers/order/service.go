package ordercontroller

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/doughreme/bakery-api/apperr"
	"github.com/doughreme/bakery-api/models"
	"github.com/doughreme/bakery-api/schemas"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListQuery holds the filters accepted by GET /orders.
type ListQuery struct {
	Skip         int    `form:"skip,default=0" binding:"min=0"`
	Limit        int    `form:"limit,default=100" binding:"min=0"`
	StatusFilter string `form:"status_filter"`
}

// Service implements order placement and bookkeeping. Every call opens its
// own session bound to ctx.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func notFound() *apperr.Error {
	return apperr.NotFound("Order not found")
}

// CreateOrder places an order in a single transaction.
//
// Lines are checked in request order against the current catalog; the first
// missing or out-of-stock product aborts the whole order before anything is
// written. Each item stores the product price read here, and the order total
// is the sum of those snapshots.
func (s *Service) CreateOrder(ctx context.Context, in schemas.OrderCreate) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.InvalidFields(apperr.FieldError{Field: "items", Message: "ensure this list has at least 1 items"})
	}

	var orderID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(in.Items))

		for _, line := range in.Items {
			if line.Quantity <= 0 {
				return apperr.InvalidFields(apperr.FieldError{Field: "quantity", Message: "ensure this value is greater than 0"})
			}

			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("Product with id %d not found", line.ProductID)
				}
				return fmt.Errorf("find product %d: %w", line.ProductID, err)
			}
			if !product.InStock {
				return apperr.Domain("Product '%s' is out of stock", product.Name)
			}

			item := models.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			}
			total = total.Add(item.LineTotal())
			items = append(items, item)
		}

		order := models.Order{
			CustomerName:  in.CustomerName,
			CustomerEmail: in.CustomerEmail,
			CustomerPhone: in.CustomerPhone,
			TotalAmount:   total,
			Status:        models.OrderStatusPending,
		}
		// The order row goes first so the items can reference its id.
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, orderID)
}

// List returns one page of orders, optionally filtered by status, in id order.
func (s *Service) List(ctx context.Context, q ListQuery) ([]models.Order, error) {
	query := withItems(s.db.WithContext(ctx))
	if q.StatusFilter != "" {
		query = query.Where("status = ?", q.StatusFilter)
	}

	var orders []models.Order
	if err := query.Order("id").Offset(q.Skip).Limit(q.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Order, error) {
	return findOrder(s.db.WithContext(ctx), id)
}

// UpdateStatus overwrites the order status. Any known status may follow any
// other, including itself.
func (s *Service) UpdateStatus(ctx context.Context, id uint, newStatus string) (*models.Order, error) {
	status, err := models.ParseOrderStatus(newStatus)
	if err != nil {
		return nil, apperr.Validation("Invalid status. Must be one of: %s", models.JoinOrderStatuses(", ")).
			WithStatus(http.StatusBadRequest)
	}

	var order *models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := findOrder(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(o).Update("status", status).Error; err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		o.Status = status
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes an order together with its items. Products are untouched.
func (s *Service) Delete(ctx context.Context, id uint) (*models.Order, error) {
	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := findOrder(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
		if err := tx.Delete(&models.Order{}, id).Error; err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id")
	})
}

func findOrder(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := withItems(db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}
