package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a bakery item in the catalog. Deletion is a hard delete.
type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"size:100;not null;index"`
	Description *string         `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Category    string          `gorm:"size:50;not null;index"` // e.g. "cake", "bread", "pastry"
	ImageURL    *string         `gorm:"size:255"`
	InStock     bool            `gorm:"not null"` // defaults to true in schemas.ProductCreate
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Product) TableName() string {
	return "products"
}
