package repo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-gin-gorm-shop/internal/domain"
)

// UserModel is the users row. The unique index on email closes the
// check-then-insert race in registration.
type UserModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	Role         string `gorm:"size:64;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UserModel) TableName() string { return "users" }

func userRow(u *domain.User) *UserModel {
	return &UserModel{
		ID:           u.ID.String(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	}
}

func (m *UserModel) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateUser(id, m.Email, m.PasswordHash, m.Role), nil
}

// ProductModel is the products row. Soft deletion uses an explicit flag
// instead of gorm.DeletedAt so no implicit query scope applies; every
// repository query adds the predicate itself.
type ProductModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Name      string          `gorm:"size:200;not null;index"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Stock     int             `gorm:"not null"`
	CreatedAt time.Time       `gorm:"not null;index"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
	IsDeleted bool            `gorm:"not null;default:false;index"`
	DeletedAt *time.Time
}

func (ProductModel) TableName() string { return "products" }

func productRow(p *domain.Product) *ProductModel {
	return &ProductModel{
		ID:        p.ID.String(),
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		IsDeleted: p.IsDeleted,
		DeletedAt: p.DeletedAt,
	}
}

func (m *ProductModel) toDomain() (*domain.Product, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateProduct(id, m.Name, m.Price, m.Stock, m.CreatedAt, m.IsDeleted, m.DeletedAt), nil
}

// Models lists every row type for AutoMigrate.
func Models() []any { return []any{&UserModel{}, &ProductModel{}} }
