package auth

import (
	"context"

	"github.com/jrsteele09/college-portal/college"
)

// Prober lists the role-scoped profile collections; only emptiness matters
type Prober interface {
	ListFaculty(ctx context.Context, token string) ([]college.Faculty, error)
	ListStudents(ctx context.Context, token string) ([]college.Student, error)
}

// TokenIssuer exchanges credentials or refresh tokens for access tokens
type TokenIssuer interface {
	Login(ctx context.Context, creds college.Credentials) (college.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// Backend is everything the resolver needs from the REST backend
type Backend interface {
	Prober
	TokenIssuer
}
