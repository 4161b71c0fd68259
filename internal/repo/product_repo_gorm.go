package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-gorm-shop/internal/domain"
)

var _ domain.ProductRepository = (*ProductRepo)(nil)

// listOrder keeps paging deterministic: creation order, id as tie-breaker.
var listOrder = []clause.OrderByColumn{
	{Column: clause.Column{Name: "created_at"}},
	{Column: clause.Column{Name: "id"}},
}

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

// live is the mandatory soft-delete predicate; every read starts from it.
func (r *ProductRepo) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&ProductModel{}).Where("is_deleted = ?", false)
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(productRow(p)).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update writes the mutable columns of p, including the soft-delete flag.
// Only live rows are written, so a copy loaded before a concurrent delete
// cannot bring the product back; that case reports NotFound.
func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	row := productRow(p)
	row.UpdatedAt = time.Now().UTC()
	res := r.live(ctx).Where("id = ?", row.ID).
		Select("name", "price", "stock", "is_deleted", "deleted_at", "updated_at").
		Updates(row)
	if res.Error != nil {
		return fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("product not found")
	}
	return nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var m ProductModel
	err := r.live(ctx).Where("id = ?", id.String()).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return m.toDomain()
}

func (r *ProductRepo) List(ctx context.Context, pageNumber, pageSize int) (domain.PagedResult[domain.Product], error) {
	out := domain.PagedResult[domain.Product]{PageNumber: pageNumber, PageSize: pageSize}

	if err := r.live(ctx).Count(&out.TotalCount).Error; err != nil {
		return out, fmt.Errorf("count products: %w", err)
	}
	offset, ok := domain.Offset(pageNumber, pageSize)
	if !ok || int64(offset) >= out.TotalCount {
		out.Items = []domain.Product{}
		return out, nil
	}
	var rows []ProductModel
	err := r.live(ctx).
		Order(clause.OrderBy{Columns: listOrder}).
		Offset(offset).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return out, fmt.Errorf("list products: %w", err)
	}
	items, err := toProducts(rows)
	if err != nil {
		return out, err
	}
	out.Items = items
	return out, nil
}

func (r *ProductRepo) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	var rows []ProductModel
	err := r.live(ctx).Where("stock <= ?", threshold).
		Order(clause.OrderBy{Columns: listOrder}).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	return toProducts(rows)
}

// SearchByName matches keyword as a case-insensitive literal substring.
func (r *ProductRepo) SearchByName(ctx context.Context, keyword string) ([]domain.Product, error) {
	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	var rows []ProductModel
	err := r.live(ctx).Where("LOWER(name) LIKE ? ESCAPE '!'", pattern).
		Order(clause.OrderBy{Columns: listOrder}).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return toProducts(rows)
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func toProducts(rows []ProductModel) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}
