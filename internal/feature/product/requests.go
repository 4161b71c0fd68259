package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-gin-gorm-shop/internal/domain"
)

// CreateProductCommand returns the new product id.
type CreateProductCommand struct {
	Name  string          `json:"name"  validate:"required,max=200"`
	Price decimal.Decimal `json:"price" validate:"gt=0"`
	Stock int             `json:"stock" validate:"gte=0"`
}

func (CreateProductCommand) RequestName() string { return "product.Create" }

// UpdateProductCommand overwrites name, price and stock. Only the id is checked.
type UpdateProductCommand struct {
	ID    uuid.UUID       `json:"-"     validate:"required"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func (UpdateProductCommand) RequestName() string { return "product.Update" }

type DeleteProductCommand struct {
	ID uuid.UUID `json:"-" validate:"required"`
}

func (DeleteProductCommand) RequestName() string { return "product.Delete" }

type GetProductByIDQuery struct {
	ID uuid.UUID `validate:"required"`
}

func (GetProductByIDQuery) RequestName() string { return "product.GetByID" }

// ListProductsQuery pages through live products; PageSize is capped at
// domain.MaxPageSize.
type ListProductsQuery struct {
	PageNumber int `form:"pageNumber" validate:"gte=1"`
	PageSize   int `form:"pageSize"   validate:"gte=1,lte=100"`
}

func (ListProductsQuery) RequestName() string { return "product.List" }

type LowStockProductsQuery struct {
	Threshold int `form:"threshold" validate:"gte=0"`
}

func (LowStockProductsQuery) RequestName() string { return "product.LowStock" }

type SearchProductsQuery struct {
	Keyword string `form:"keyword" validate:"required"`
}

func (SearchProductsQuery) RequestName() string { return "product.Search" }

// ProductResponse is the read shape returned by every product query.
type ProductResponse struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func toResponse(p domain.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
}

func toResponses(ps []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toResponse(p))
	}
	return out
}
