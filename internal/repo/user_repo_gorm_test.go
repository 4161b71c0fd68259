package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/testutil"
)

func TestUserRepo_CreateAndFind(t *testing.T) {
	r := NewUserRepo(testutil.OpenDB(t, Models()...))
	ctx := context.Background()
	u, err := domain.NewUser("a@b.c", "hash", domain.DefaultRole)
	require.NoError(t, err)
	require.NoError(t, r.Create(ctx, u))

	got, err := r.FindByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, domain.DefaultRole, got.Role)

	byID, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", byID.Email)
}

func TestUserRepo_EmailIsExactMatch(t *testing.T) {
	r := NewUserRepo(testutil.OpenDB(t, Models()...))
	u, _ := domain.NewUser("a@b.c", "hash", "Customer")
	require.NoError(t, r.Create(context.Background(), u))

	_, err := r.FindByEmail(context.Background(), "A@B.C")
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestUserRepo_NotFound(t *testing.T) {
	r := NewUserRepo(testutil.OpenDB(t, Models()...))
	_, err := r.FindByID(context.Background(), uuid.New())
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestUserRepo_DuplicateEmailIsConflict(t *testing.T) {
	db := testutil.OpenDB(t, Models()...)
	r := NewUserRepo(db)
	ctx := context.Background()

	first, _ := domain.NewUser("dup@b.c", "h1", "Customer")
	second, _ := domain.NewUser("dup@b.c", "h2", "Customer")
	require.NoError(t, r.Create(ctx, first))

	err := r.Create(ctx, second)
	assert.True(t, domain.IsKind(err, domain.KindConflict), "got %v", err)

	var n int64
	require.NoError(t, db.Model(&UserModel{}).Where("email = ?", "dup@b.c").Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestIsDupKey(t *testing.T) {
	assert.False(t, isDupKey(nil))
	assert.True(t, isDupKey(errors.New("UNIQUE constraint failed: users.email")))
	assert.True(t, isDupKey(errors.New("Error 1062: Duplicate entry")))
	assert.False(t, isDupKey(errors.New("connection refused")))
}
