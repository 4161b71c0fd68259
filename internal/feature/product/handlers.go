// Package product implements the catalog commands and queries.
package product

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/core/dispatch"
	"go-gin-gorm-shop/internal/domain"
)

type Handlers struct {
	products domain.ProductRepository
	log      *zap.Logger
}

func NewHandlers(products domain.ProductRepository, l *zap.Logger) *Handlers {
	if l == nil {
		l = zap.NewNop()
	}
	return &Handlers{products: products, log: l}
}

func (h *Handlers) Register(d *dispatch.Dispatcher) {
	dispatch.Register(d, h.Create)
	dispatch.Register(d, h.Update)
	dispatch.Register(d, h.Delete)
	dispatch.Register(d, h.GetByID)
	dispatch.Register(d, h.List)
	dispatch.Register(d, h.LowStock)
	dispatch.Register(d, h.Search)
}

func (h *Handlers) Create(ctx context.Context, cmd CreateProductCommand) (uuid.UUID, error) {
	p, err := domain.NewProduct(cmd.Name, cmd.Price, cmd.Stock)
	if err != nil {
		return uuid.Nil, err
	}
	if err := h.products.Create(ctx, p); err != nil {
		return uuid.Nil, err
	}
	h.log.Info("product created", zap.String("product_id", p.ID.String()))
	return p.ID, nil
}

func (h *Handlers) Update(ctx context.Context, cmd UpdateProductCommand) (dispatch.Unit, error) {
	p, err := h.products.FindByID(ctx, cmd.ID)
	if err != nil {
		return dispatch.Unit{}, err
	}
	p.Update(cmd.Name, cmd.Price, cmd.Stock)
	return dispatch.Unit{}, h.products.Update(ctx, p)
}

func (h *Handlers) Delete(ctx context.Context, cmd DeleteProductCommand) (dispatch.Unit, error) {
	p, err := h.products.FindByID(ctx, cmd.ID)
	if err != nil {
		return dispatch.Unit{}, err
	}
	if err := p.SoftDelete(); err != nil {
		return dispatch.Unit{}, err
	}
	if err := h.products.Update(ctx, p); err != nil {
		return dispatch.Unit{}, err
	}
	h.log.Info("product deleted", zap.String("product_id", p.ID.String()))
	return dispatch.Unit{}, nil
}

func (h *Handlers) GetByID(ctx context.Context, q GetProductByIDQuery) (ProductResponse, error) {
	p, err := h.products.FindByID(ctx, q.ID)
	if err != nil {
		return ProductResponse{}, err
	}
	return toResponse(*p), nil
}

func (h *Handlers) List(ctx context.Context, q ListProductsQuery) (domain.PagedResult[ProductResponse], error) {
	page, err := h.products.List(ctx, q.PageNumber, q.PageSize)
	if err != nil {
		return domain.PagedResult[ProductResponse]{}, err
	}
	return domain.MapPage(page, toResponse), nil
}

func (h *Handlers) LowStock(ctx context.Context, q LowStockProductsQuery) ([]ProductResponse, error) {
	ps, err := h.products.LowStock(ctx, q.Threshold)
	if err != nil {
		return nil, err
	}
	return toResponses(ps), nil
}

func (h *Handlers) Search(ctx context.Context, q SearchProductsQuery) ([]ProductResponse, error) {
	ps, err := h.products.SearchByName(ctx, q.Keyword)
	if err != nil {
		return nil, err
	}
	return toResponses(ps), nil
}
