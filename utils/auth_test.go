package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"petshop-server/config"
)

func TestMain(m *testing.M) {
	config.Load()
	m.Run()
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
	assert.False(t, CheckPasswordHash("s3cret-pass", "not-a-hash"))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := VerifyToken("not.a.token")
	assert.Error(t, err)

	_, err = VerifyToken("")
	assert.Error(t, err)
}
