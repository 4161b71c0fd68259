package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxProductNameLen = 200
	// MaxPriceScale is the number of decimal places the store keeps.
	MaxPriceScale = 2
)

// Product is a catalog item. Soft deletion is one-way.
type Product struct {
	ID        uuid.UUID
	Name      string
	Price     decimal.Decimal
	Stock     int
	CreatedAt time.Time
	IsDeleted bool
	DeletedAt *time.Time
}

// NewProduct validates name, price and stock and assigns a fresh id.
func NewProduct(name string, price decimal.Decimal, stock int) (*Product, error) {
	fields := map[string]string{}
	switch {
	case strings.TrimSpace(name) == "":
		fields["Name"] = "required"
	case utf8.RuneCountInString(name) > MaxProductNameLen:
		fields["Name"] = "max"
	}
	switch {
	case !price.IsPositive():
		fields["Price"] = "gt"
	case !price.Equal(price.Truncate(MaxPriceScale)):
		fields["Price"] = "scale"
	}
	if stock < 0 {
		fields["Stock"] = "gte"
	}
	if len(fields) > 0 {
		return nil, ValidationFailed("invalid product", fields)
	}
	return &Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// RehydrateProduct rebuilds a stored product without re-checking invariants.
func RehydrateProduct(id uuid.UUID, name string, price decimal.Decimal, stock int, createdAt time.Time, isDeleted bool, deletedAt *time.Time) *Product {
	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: createdAt,
		IsDeleted: isDeleted,
		DeletedAt: deletedAt,
	}
}

// Update replaces name, price and stock as given. Unlike NewProduct it does
// not validate its arguments.
func (p *Product) Update(name string, price decimal.Decimal, stock int) {
	p.Name = name
	p.Price = price
	p.Stock = stock
}

// SoftDelete marks the product deleted. Repositories never return deleted
// products, so the AlreadyDeleted branch is a guard only.
func (p *Product) SoftDelete() error {
	if p.IsDeleted {
		return AlreadyDeleted("product already deleted")
	}
	now := time.Now().UTC()
	p.IsDeleted = true
	p.DeletedAt = &now
	return nil
}

// ProductRepository persists products. Every read excludes soft-deleted rows.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, pageNumber, pageSize int) (PagedResult[Product], error)
	LowStock(ctx context.Context, threshold int) ([]Product, error)
	SearchByName(ctx context.Context, keyword string) ([]Product, error)
}
