package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workbridge/workbridge/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	provider := NewJWTProvider("test-secret", time.Hour)
	userID := uuid.New()

	token, expiresAt, err := provider.Generate(userID, models.RoleEmployer)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	principal, err := provider.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.ID)
	assert.Equal(t, models.RoleEmployer, principal.Role)
}

func TestJWTWrongSecret(t *testing.T) {
	token, _, err := NewJWTProvider("secret-a", time.Hour).Generate(uuid.New(), models.RoleJobSeeker)
	require.NoError(t, err)

	_, err = NewJWTProvider("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	provider := NewJWTProvider("test-secret", -time.Minute)
	token, _, err := provider.Generate(uuid.New(), models.RoleJobSeeker)
	require.NoError(t, err)

	_, err = provider.Parse(token)
	assert.Error(t, err)
}

func TestJWTGarbage(t *testing.T) {
	_, err := NewJWTProvider("test-secret", time.Hour).Parse("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)
	assert.True(t, CheckPassword(hash, "hunter2hunter2"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
