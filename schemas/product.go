package schemas

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/doughreme/bakery-api/apperr"
	"github.com/doughreme/bakery-api/models"
	"github.com/oapi-codegen/nullable"
	"github.com/shopspring/decimal"
)

const (
	maxProductName     = 100
	maxProductCategory = 50
	maxImageURL        = 255
	priceScale         = 2
)

// ProductCreate is the body of POST /products.
type ProductCreate struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"gt=0"`
	Category    string          `json:"category" binding:"required,max=50"`
	ImageURL    *string         `json:"image_url" binding:"omitempty,max=255"`
	InStock     *bool           `json:"in_stock"`
}

// ToModel builds a new storage record; in_stock defaults to true.
func (in ProductCreate) ToModel() models.Product {
	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}
	return models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		InStock:     inStock,
	}
}

// Validate applies the same rules as the binding tags. It is used for input
// that does not come through gin binding, such as spreadsheet rows.
func (in ProductCreate) Validate() error {
	var fields []apperr.FieldError
	fields = checkLength(fields, "name", in.Name, maxProductName, true)
	fields = checkPrice(fields, in.Price)
	fields = checkLength(fields, "category", in.Category, maxProductCategory, true)
	if in.ImageURL != nil {
		fields = checkLength(fields, "image_url", *in.ImageURL, maxImageURL, false)
	}
	if len(fields) > 0 {
		return apperr.InvalidFields(fields...)
	}
	return nil
}

// ProductUpdate is the body of PUT /products/{id}. Only fields present in the
// payload are applied. Description and image_url may be cleared with null.
type ProductUpdate struct {
	Name        nullable.Nullable[string]          `json:"name"`
	Description nullable.Nullable[string]          `json:"description"`
	Price       nullable.Nullable[decimal.Decimal] `json:"price"`
	Category    nullable.Nullable[string]          `json:"category"`
	ImageURL    nullable.Nullable[string]          `json:"image_url"`
	InStock     nullable.Nullable[bool]            `json:"in_stock"`
}

func (u ProductUpdate) Validate() error {
	var fields []apperr.FieldError

	if u.Name.IsSpecified() {
		if u.Name.IsNull() {
			fields = append(fields, notNull("name"))
		} else {
			fields = checkLength(fields, "name", u.Name.MustGet(), maxProductName, true)
		}
	}
	if u.Price.IsSpecified() {
		if u.Price.IsNull() {
			fields = append(fields, notNull("price"))
		} else {
			fields = checkPrice(fields, u.Price.MustGet())
		}
	}
	if u.Category.IsSpecified() {
		if u.Category.IsNull() {
			fields = append(fields, notNull("category"))
		} else {
			fields = checkLength(fields, "category", u.Category.MustGet(), maxProductCategory, true)
		}
	}
	if u.ImageURL.IsSpecified() && !u.ImageURL.IsNull() {
		fields = checkLength(fields, "image_url", u.ImageURL.MustGet(), maxImageURL, false)
	}
	if u.InStock.IsSpecified() && u.InStock.IsNull() {
		fields = append(fields, notNull("in_stock"))
	}

	if len(fields) > 0 {
		return apperr.InvalidFields(fields...)
	}
	return nil
}

// Apply copies the present fields onto p. Call Validate first.
func (u ProductUpdate) Apply(p *models.Product) {
	if u.Name.IsSpecified() {
		p.Name = u.Name.MustGet()
	}
	if u.Description.IsSpecified() {
		p.Description = valueOrNil(u.Description)
	}
	if u.Price.IsSpecified() {
		p.Price = u.Price.MustGet()
	}
	if u.Category.IsSpecified() {
		p.Category = u.Category.MustGet()
	}
	if u.ImageURL.IsSpecified() {
		p.ImageURL = valueOrNil(u.ImageURL)
	}
	if u.InStock.IsSpecified() {
		p.InStock = u.InStock.MustGet()
	}
}

// valueOrNil maps an explicit null to nil.
func valueOrNil(n nullable.Nullable[string]) *string {
	v, err := n.Get()
	if err != nil {
		return nil
	}
	return &v
}

// ProductOut is the response shape for a product.
type ProductOut struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    *string   `json:"image_url"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewProductOut(p *models.Product) ProductOut {
	return ProductOut{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewProductOuts(products []models.Product) []ProductOut {
	out := make([]ProductOut, 0, len(products))
	for i := range products {
		out = append(out, NewProductOut(&products[i]))
	}
	return out
}

func checkLength(fields []apperr.FieldError, name, value string, limit int, required bool) []apperr.FieldError {
	if required && value == "" {
		return append(fields, apperr.FieldError{Field: name, Message: "field required"})
	}
	if utf8.RuneCountInString(value) > limit {
		return append(fields, apperr.FieldError{
			Field:   name,
			Message: "ensure this value has at most " + strconv.Itoa(limit) + " characters",
		})
	}
	return fields
}

// checkPrice enforces price > 0 with at most two decimal places, the
// precision of the price columns.
func checkPrice(fields []apperr.FieldError, price decimal.Decimal) []apperr.FieldError {
	if !price.IsPositive() {
		return append(fields, apperr.FieldError{Field: "price", Message: "ensure this value is greater than 0"})
	}
	if !price.Equal(price.Round(priceScale)) {
		return append(fields, apperr.FieldError{Field: "price", Message: "ensure that there are no more than 2 decimal places"})
	}
	return fields
}

func notNull(name string) apperr.FieldError {
	return apperr.FieldError{Field: name, Message: "field may not be null"}
}
