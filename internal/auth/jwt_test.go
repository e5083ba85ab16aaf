package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateRoundTrip(t *testing.T) {
	m := NewJWTManager("secret-1", time.Hour)

	token, err := m.GenerateAccessToken("user-1", "ana@example.com")
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "ana@example.com", claims.Email)
	require.Equal(t, tokenIssuer, claims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-1", time.Hour).GenerateAccessToken("user-1", "ana@example.com")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-2", time.Hour).ParseAndValidate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("secret-1", -time.Hour)

	token, err := m.GenerateAccessToken("user-1", "ana@example.com")
	require.NoError(t, err)

	_, err = m.ParseAndValidate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignIssuer(t *testing.T) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "another-service",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret-1"))
	require.NoError(t, err)

	_, err = NewJWTManager("secret-1", time.Hour).ParseAndValidate(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("secret-1", time.Hour).ParseAndValidate(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsTokenWithoutExpiry(t *testing.T) {
	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   tokenIssuer,
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret-1"))
	require.NoError(t, err)

	_, err = NewJWTManager("secret-1", time.Hour).ParseAndValidate(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}
