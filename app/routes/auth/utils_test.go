package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	jwtSecret = []byte("test-secret")

	token, err := GenerateJWT("prof-1", "bruna@uni.br", "Bruna")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "prof-1", claims.ProfessorID)
	assert.Equal(t, "bruna@uni.br", claims.Email)
	assert.Equal(t, "Bruna", claims.Name)
	assert.Equal(t, "siga", claims.Issuer)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	jwtSecret = []byte("test-secret")
	token, err := GenerateJWT("prof-1", "bruna@uni.br", "Bruna")
	require.NoError(t, err)

	jwtSecret = []byte("another-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	jwtSecret = []byte("test-secret")
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("correct-horse", string(hash)))
	assert.False(t, CheckPasswordHash("wrong", string(hash)))
}
