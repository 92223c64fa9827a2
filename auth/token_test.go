package auth_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/college-portal/auth"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestInspectToken(t *testing.T) {
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	expiry := issued.Add(5 * time.Minute)

	raw := signedToken(t, jwtlib.MapClaims{
		"token_type": "access",
		"user_id":    42,
		"iat":        issued.Unix(),
		"exp":        expiry.Unix(),
	})

	info, err := auth.InspectToken(raw)
	require.NoError(t, err)
	require.Equal(t, "42", info.UserID)
	require.Equal(t, "access", info.TokenType)
	require.True(t, info.IssuedAt.Equal(issued))
	require.True(t, info.Expiry.Equal(expiry))
	require.False(t, info.Expired(issued))
	require.True(t, info.Expired(expiry))
}

func TestInspectTokenSubjectFallback(t *testing.T) {
	info, err := auth.InspectToken(signedToken(t, jwtlib.MapClaims{"sub": "user-9"}))
	require.NoError(t, err)
	require.Equal(t, "user-9", info.UserID)
	require.True(t, info.Expiry.IsZero())
	require.False(t, info.Expired(time.Now()))
}

func TestInspectTokenRejectsGarbage(t *testing.T) {
	_, err := auth.InspectToken("")
	require.Error(t, err)

	_, err = auth.InspectToken("T1")
	require.Error(t, err)
}
