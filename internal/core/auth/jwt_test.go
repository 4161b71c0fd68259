package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-shop/internal/domain"
)

func newTestJWTer() *JWTer {
	return NewJWTer("secret", "shop", "shop-clients", 15*time.Minute)
}

func TestJWTer_Roundtrip(t *testing.T) {
	j := newTestJWTer()
	u, err := domain.NewUser("a@b.c", "h", "Admin")
	require.NoError(t, err)

	tok, err := j.GenerateToken(u)
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), c.UID())
	assert.Equal(t, "a@b.c", c.Email)
	assert.Equal(t, "Admin", c.Role)
	assert.Equal(t, "shop", c.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"shop-clients"}, c.Audience)
	assert.NotEmpty(t, c.ID)
}

func TestJWTer_RejectsWrongAudienceAndIssuer(t *testing.T) {
	u, _ := domain.NewUser("a@b.c", "h", "Customer")
	tok, err := newTestJWTer().GenerateToken(u)
	require.NoError(t, err)

	otherAud := NewJWTer("secret", "shop", "elsewhere", time.Minute)
	_, err = otherAud.Parse(tok)
	assert.Error(t, err)

	otherIss := NewJWTer("secret", "other", "shop-clients", time.Minute)
	_, err = otherIss.Parse(tok)
	assert.Error(t, err)

	otherKey := NewJWTer("nope", "shop", "shop-clients", time.Minute)
	_, err = otherKey.Parse(tok)
	assert.Error(t, err)
}

func TestJWTer_Expired(t *testing.T) {
	j := newTestJWTer()
	j.now = func() time.Time { return time.Now().Add(-time.Hour) }
	u, _ := domain.NewUser("a@b.c", "h", "Customer")
	tok, err := j.GenerateToken(u)
	require.NoError(t, err)

	_, err = newTestJWTer().Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTer_RejectsOtherAlg(t *testing.T) {
	j := newTestJWTer()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    j.Issuer,
		Audience:  jwt.ClaimStrings{j.Audience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(j.Secret)
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.Error(t, err)
}

func TestJWTer_EmptySecret(t *testing.T) {
	j := NewJWTer("", "i", "a", time.Minute)
	u, _ := domain.NewUser("a@b.c", "h", "Customer")
	_, err := j.GenerateToken(u)
	assert.Error(t, err)
}
