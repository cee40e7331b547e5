package database

import (
	"context"
	"fmt"

	"github.com/doughreme/bakery-api/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SampleProducts is the starter catalog inserted into an empty database.
func SampleProducts() []models.Product {
	item := func(name, desc, price, category, image string) models.Product {
		return models.Product{
			Name:        name,
			Description: &desc,
			Price:       decimal.RequireFromString(price),
			Category:    category,
			ImageURL:    &image,
			InStock:     true,
		}
	}
	return []models.Product{
		item("Chocolate Brownie", "Rich, fudgy chocolate brownie with walnuts", "4.99", "brownie", "/static/images/brownie.jpeg"),
		item("Blueberry Crumble", "Fresh blueberries with buttery crumble topping", "5.99", "cake", "/static/images/blueberry_crumble.jpeg"),
		item("Banana Walnut Bread", "Moist banana bread with crunchy walnuts", "6.99", "bread", "/static/images/banana_walnut.jpeg"),
		item("Tiramisu", "Classic Italian dessert with mascarpone and espresso", "7.99", "cake", "/static/images/tiramisu.jpeg"),
		item("Mango Cheesecake", "Creamy cheesecake with fresh mango topping", "8.99", "cake", "/static/images/mango_cheesecake.jpeg"),
		item("Caramel Custard", "Silky smooth custard with rich caramel sauce", "5.49", "dessert", "/static/images/caramel_custard.jpeg"),
	}
}

// Seed inserts the sample catalog when the products table is empty and
// returns how many rows it added. A failed insert is rolled back as a whole.
func Seed(ctx context.Context, db *gorm.DB) (int, error) {
	db = db.WithContext(ctx)

	var existing int64
	if err := db.Model(&models.Product{}).Count(&existing).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if existing > 0 {
		log.WithField("count", existing).Info("products already present, skipping seed")
		return 0, nil
	}

	products := SampleProducts()
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&products).Error
	}); err != nil {
		return 0, fmt.Errorf("insert sample products: %w", err)
	}
	return len(products), nil
}
