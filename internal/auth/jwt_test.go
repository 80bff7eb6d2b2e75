package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() models.User {
	user := models.User{Email: "ana@example.com", Name: "Ana", Role: models.RoleAdmin}
	user.ID = uuid.New()
	return user
}

func TestGenerateAndVerify(t *testing.T) {
	manager, err := NewTokenManager("segredo", time.Hour)
	require.NoError(t, err)

	user := testUser()

	token, err := manager.Generate(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager, err := NewTokenManager("segredo", time.Hour)
	require.NoError(t, err)

	manager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := manager.Generate(testUser())
	require.NoError(t, err)

	manager.now = time.Now
	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	issuer, _ := NewTokenManager("um", time.Hour)
	verifier, _ := NewTokenManager("outro", time.Hour)

	token, err := issuer.Generate(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	manager, _ := NewTokenManager("segredo", time.Hour)

	claims := Claims{UserID: uuid.NewString(), Role: models.RoleAdmin}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("senha-forte")
	require.NoError(t, err)

	assert.NotEqual(t, "senha-forte", hash)
	assert.True(t, CheckPassword(hash, "senha-forte"))
	assert.False(t, CheckPassword(hash, "errada"))
}
