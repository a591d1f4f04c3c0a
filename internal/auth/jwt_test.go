package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hosteldesk/backend/internal/models"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	u := models.User{ID: "STAFF002", Name: "Staff Member 2", Role: models.RoleStaff}

	token, err := GenerateToken(u, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "STAFF002", claims.UserID)
	assert.Equal(t, "Staff Member 2", claims.Name)
	assert.Equal(t, models.RoleStaff, claims.Role)
	assert.Equal(t, "hosteldesk", claims.Issuer)
}

func TestParseToken_WrongSecret(t *testing.T) {
	u := models.User{ID: "STU001", Role: models.RoleStudent}
	token, err := GenerateToken(u, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	u := models.User{ID: "STU001", Role: models.RoleStudent}
	token, err := GenerateToken(u, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	assert.Error(t, err)
}
