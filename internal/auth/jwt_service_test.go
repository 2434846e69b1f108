package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulsmc/internal/model"
)

func TestIssueAndVerifyToken(t *testing.T) {
	svc := NewJWTService("test-secret")
	memberID := uint(7)
	user := &model.User{
		ID:       42,
		Username: "reaper",
		Role:     model.RoleAdmin,
		MemberID: &memberID,
	}

	token, err := svc.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "reaper", claims.Username)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	require.NotNil(t, claims.MemberID)
	assert.Equal(t, uint(7), *claims.MemberID)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").IssueToken(&model.User{ID: 1, Username: "x", Role: model.RoleMember})
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	svc := NewJWTService("test-secret")

	claims := &Claims{
		UserID:   1,
		Username: "reaper",
		Role:     model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(expired)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsUnexpectedMethod(t *testing.T) {
	svc := NewJWTService("test-secret")

	// alg=none style token must never pass.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Error(t, err)
}
