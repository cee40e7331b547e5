package ordercontroller

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/doughreme/bakery-api/apperr"
	"github.com/doughreme/bakery-api/config"
	"github.com/doughreme/bakery-api/database"
	"github.com/doughreme/bakery-api/models"
	"github.com/doughreme/bakery-api/schemas"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Settings{DBDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "orders.db")}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	return db
}

func addProduct(t *testing.T, db *gorm.DB, name, price string, inStock bool) models.Product {
	t.Helper()
	p := models.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "cake",
		InStock:  inStock,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func countRows(t *testing.T, db *gorm.DB) (orders, items int64) {
	t.Helper()
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	return orders, items
}

func orderFor(lines ...schemas.OrderItemCreate) schemas.OrderCreate {
	return schemas.OrderCreate{
		CustomerName:  "A",
		CustomerEmail: "a@x.com",
		Items:         lines,
	}
}

func TestCreateOrder_ComputesTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	brownie := addProduct(t, db, "Chocolate Brownie", "4.99", true)

	order, err := svc.CreateOrder(context.Background(), orderFor(schemas.OrderItemCreate{ProductID: brownie.ID, Quantity: 2}))
	require.NoError(t, err)

	assert.Equal(t, "9.98", order.TotalAmount.StringFixed(2))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "4.99", order.Items[0].Price.StringFixed(2))
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, brownie.ID, order.Items[0].ProductID)
	assert.Nil(t, order.CustomerPhone)
}

func TestCreateOrder_MultipleLines(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	a := addProduct(t, db, "Tiramisu", "7.99", true)
	b := addProduct(t, db, "Caramel Custard", "5.49", true)

	order, err := svc.CreateOrder(context.Background(), orderFor(
		schemas.OrderItemCreate{ProductID: a.ID, Quantity: 1},
		schemas.OrderItemCreate{ProductID: b.ID, Quantity: 3},
		schemas.OrderItemCreate{ProductID: a.ID, Quantity: 2},
	))
	require.NoError(t, err)

	// 7.99 + 3×5.49 + 2×7.99
	assert.Equal(t, "40.44", order.TotalAmount.StringFixed(2))
	require.Len(t, order.Items, 3)
	assert.Equal(t, []uint{a.ID, b.ID, a.ID}, []uint{order.Items[0].ProductID, order.Items[1].ProductID, order.Items[2].ProductID})

	sum := decimal.Zero
	for _, it := range order.Items {
		sum = sum.Add(it.LineTotal())
	}
	assert.True(t, sum.Equal(order.TotalAmount))
}

func TestCreateOrder_PriceSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	brownie := addProduct(t, db, "Chocolate Brownie", "4.99", true)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, orderFor(schemas.OrderItemCreate{ProductID: brownie.ID, Quantity: 2}))
	require.NoError(t, err)

	require.NoError(t, db.Model(&brownie).Update("price", decimal.RequireFromString("6.50")).Error)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "4.99", got.Items[0].Price.StringFixed(2))
	assert.Equal(t, "9.98", got.TotalAmount.StringFixed(2))
}

func TestCreateOrder_UnknownProductWritesNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	brownie := addProduct(t, db, "Chocolate Brownie", "4.99", true)

	_, err := svc.CreateOrder(context.Background(), orderFor(
		schemas.OrderItemCreate{ProductID: brownie.ID, Quantity: 1},
		schemas.OrderItemCreate{ProductID: 999, Quantity: 1},
	))
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.EqualError(t, err, "Product with id 999 not found")

	orders, items := countRows(t, db)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestCreateOrder_OutOfStockWritesNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	brownie := addProduct(t, db, "Chocolate Brownie", "4.99", true)
	cheesecake := addProduct(t, db, "Mango Cheesecake", "8.99", false)

	_, err := svc.CreateOrder(context.Background(), orderFor(
		schemas.OrderItemCreate{ProductID: brownie.ID, Quantity: 1},
		schemas.OrderItemCreate{ProductID: cheesecake.ID, Quantity: 1},
	))
	require.Error(t, err)
	assert.True(t, apperr.IsDomain(err))
	assert.EqualError(t, err, "Product 'Mango Cheesecake' is out of stock")

	orders, items := countRows(t, db)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestCreateOrder_FirstFailingLineWins(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	cheesecake := addProduct(t, db, "Mango Cheesecake", "8.99", false)

	_, err := svc.CreateOrder(context.Background(), orderFor(
		schemas.OrderItemCreate{ProductID: cheesecake.ID, Quantity: 1},
		schemas.OrderItemCreate{ProductID: 999, Quantity: 1},
	))
	assert.True(t, apperr.IsDomain(err))
}

func TestCreateOrder_RejectsEmptyAndNonPositive(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	brownie := addProduct(t, db, "Chocolate Brownie", "4.99", true)

	_, err := svc.CreateOrder(context.Background(), orderFor())
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.CreateOrder(context.Background(), orderFor(schemas.OrderItemCreate{ProductID: brownie.ID, Quantity: 0}))
	assert.True(t, apperr.IsValidation(err))

	orders, _ := countRows(t, db)
	assert.Zero(t, orders)
}

func TestListOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	brownie := addProduct(t, db, "Chocolate Brownie", "4.99", true)

	var ids []uint
	for i := 0; i < 3; i++ {
		o, err := svc.CreateOrder(ctx, orderFor(schemas.OrderItemCreate{ProductID: brownie.ID, Quantity: i + 1}))
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	_, err := svc.UpdateStatus(ctx, ids[1], "confirmed")
	require.NoError(t, err)

	all, err := svc.List(ctx, ListQuery{Limit: 100})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, o := range all {
		assert.Equal(t, ids[i], o.ID)
		assert.Len(t, o.Items, 1, "items are loaded")
	}

	pending, err := svc.List(ctx, ListQuery{Limit: 100, StatusFilter: "pending"})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	confirmed, err := svc.List(ctx, ListQuery{Limit: 100, StatusFilter: "confirmed"})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, ids[1], confirmed[0].ID)

	page, err := svc.List(ctx, ListQuery{Skip: 2, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[2], page[0].ID)
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	brownie := addProduct(t, db, "Chocolate Brownie", "4.99", true)

	created, err := svc.CreateOrder(ctx, orderFor(schemas.OrderItemCreate{ProductID: brownie.ID, Quantity: 1}))
	require.NoError(t, err)

	// Any status may follow any other, including itself.
	for _, status := range []string{"completed", "pending", "pending", "cancelled", "confirmed"} {
		updated, err := svc.UpdateStatus(ctx, created.ID, status)
		require.NoError(t, err, status)
		assert.Equal(t, models.OrderStatus(status), updated.Status)

		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatus(status), got.Status)
	}
}

func TestUpdateStatus_InvalidLeavesOrderUnchanged(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	brownie := addProduct(t, db, "Chocolate Brownie", "4.99", true)

	created, err := svc.CreateOrder(ctx, orderFor(schemas.OrderItemCreate{ProductID: brownie.ID, Quantity: 1}))
	require.NoError(t, err)

	for _, status := range []string{"shipped", "PENDING", ""} {
		_, err = svc.UpdateStatus(ctx, created.ID, status)
		require.Error(t, err, status)
		assert.True(t, apperr.IsValidation(err))

		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus())
		assert.Contains(t, appErr.Message, "pending, confirmed, completed, cancelled")
	}

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestUpdateStatus_Missing(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.UpdateStatus(context.Background(), 5, "confirmed")
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteOrder_RemovesItemsKeepsProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	brownie := addProduct(t, db, "Chocolate Brownie", "4.99", true)

	first, err := svc.CreateOrder(ctx, orderFor(schemas.OrderItemCreate{ProductID: brownie.ID, Quantity: 1}))
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, orderFor(schemas.OrderItemCreate{ProductID: brownie.ID, Quantity: 4}))
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, deleted.ID)

	_, err = svc.Get(ctx, first.ID)
	assert.True(t, apperr.IsNotFound(err))

	orders, items := countRows(t, db)
	assert.EqualValues(t, 1, orders)
	assert.EqualValues(t, 1, items)

	remaining, err := svc.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Len(t, remaining.Items, 1)

	var product models.Product
	require.NoError(t, db.First(&product, brownie.ID).Error)

	_, err = svc.Delete(ctx, first.ID)
	assert.True(t, apperr.IsNotFound(err))
}
