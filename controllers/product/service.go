package productcontroller

import (
	"context"
	"errors"
	"fmt"

	"github.com/doughreme/bakery-api/apperr"
	"github.com/doughreme/bakery-api/models"
	"github.com/doughreme/bakery-api/schemas"
	"gorm.io/gorm"
)

// ListQuery holds the filters accepted by GET /products.
type ListQuery struct {
	Skip     int    `form:"skip,default=0" binding:"min=0"`
	Limit    int    `form:"limit,default=100" binding:"min=0"`
	Category string `form:"category"`
	InStock  *bool  `form:"in_stock"`
}

// Service implements the catalog operations on top of a shared pool.
// Every call opens its own session bound to ctx.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func notFound() *apperr.Error {
	return apperr.NotFound("Product not found")
}

// Create stores a new product. Names are not required to be unique.
func (s *Service) Create(ctx context.Context, in schemas.ProductCreate) (*models.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	product := in.ToModel()
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

// List returns one page of products matching the optional filters, in id order.
func (s *Service) List(ctx context.Context, q ListQuery) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.InStock != nil {
		query = query.Where("in_stock = ?", *q.InStock)
	}

	var products []models.Product
	if err := query.Order("id").Offset(q.Skip).Limit(q.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// All returns the whole catalog, used by the spreadsheet export.
func (s *Service) All(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	return findProduct(s.db.WithContext(ctx), id)
}

// Update applies only the fields present in the request.
func (s *Service) Update(ctx context.Context, id uint, in schemas.ProductUpdate) (*models.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var product *models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findProduct(tx, id)
		if err != nil {
			return err
		}
		in.Apply(p)
		if err := tx.Save(p).Error; err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product row. Order items that reference it are left as
// they are; if the storage engine enforces the reference the delete fails
// with a conflict.
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperr.Conflict("Product %d is referenced by existing orders", id)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected == 0 {
		return notFound()
	}
	return nil
}

func findProduct(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

// ImportRow is one spreadsheet row. A non-zero ID updates that product when
// it exists; otherwise the row creates a new product.
type ImportRow struct {
	ID      uint
	Product schemas.ProductCreate
}

type ImportResult struct {
	Created int `json:"created_count"`
	Updated int `json:"updated_count"`
	Skipped int `json:"skipped_count"`
}

// Import upserts rows one by one. Invalid rows are skipped and counted; a
// storage failure stops the import.
func (s *Service) Import(ctx context.Context, rows []ImportRow) (ImportResult, error) {
	var res ImportResult
	db := s.db.WithContext(ctx)

	for _, row := range rows {
		if err := row.Product.Validate(); err != nil {
			res.Skipped++
			continue
		}
		incoming := row.Product.ToModel()

		if row.ID != 0 {
			existing, err := findProduct(db, row.ID)
			switch {
			case err == nil:
				incoming.ID = existing.ID
				incoming.CreatedAt = existing.CreatedAt
				if err := db.Save(&incoming).Error; err != nil {
					return res, fmt.Errorf("update product %d: %w", row.ID, err)
				}
				res.Updated++
				continue
			case !apperr.IsNotFound(err):
				return res, err
			}
		}

		if err := db.Create(&incoming).Error; err != nil {
			return res, fmt.Errorf("create product: %w", err)
		}
		res.Created++
	}
	return res, nil
}
