package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TokenInfo holds display-only claims of an access token. The signature is
// not verified here; the backend remains the authority.
type TokenInfo struct {
	UserID    string
	TokenType string
	IssuedAt  time.Time
	Expiry    time.Time
}

// InspectToken decodes the claims of a JWT access token without verifying it
func InspectToken(rawToken string) (TokenInfo, error) {
	if strings.TrimSpace(rawToken) == "" {
		return TokenInfo{}, errors.New("[InspectToken] empty token")
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return TokenInfo{}, fmt.Errorf("[InspectToken] parse: %w", err)
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return TokenInfo{}, errors.New("[InspectToken] error extracting claims")
	}

	var info TokenInfo
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.Expiry = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if userID, ok := claims["user_id"]; ok {
		info.UserID = claimString(userID)
	} else if sub, err := claims.GetSubject(); err == nil {
		info.UserID = sub
	}
	if tokenType, ok := claims["token_type"].(string); ok {
		info.TokenType = tokenType
	}
	return info, nil
}

// Expired reports whether the token has an expiry before now
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.Expiry.IsZero() && !now.Before(t.Expiry)
}

func claimString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return fmt.Sprintf("%.0f", value)
	default:
		return fmt.Sprint(value)
	}
}
