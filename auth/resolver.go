package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jrsteele09/college-portal/college"
	"github.com/jrsteele09/college-portal/sessions"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Resolver turns a bearer token into a Session by probing which profile
// collection the caller owns. Faculty is probed first and wins ties.
type Resolver struct {
	backend Backend
	store   sessions.Store
}

// NewResolver initializes a Resolver with its backend and session store
func NewResolver(backend Backend, store sessions.Store) (*Resolver, error) {
	if backend == nil {
		return nil, errors.New("[NewResolver] backend is required")
	}
	if store == nil {
		return nil, errors.New("[NewResolver] session store is required")
	}
	return &Resolver{backend: backend, store: store}, nil
}

// Resolve determines the role and principal of token.
//
//  1. faculty collection non-empty => Faculty, first record's id
//  2. else student collection non-empty => Student, first record's id
//  3. else ErrNoProfileFound
//
// Any probe failure is ErrTokenInvalid. On success {token, role} is persisted,
// on failure the store is cleared. Nothing is retried.
func (r *Resolver) Resolve(ctx context.Context, token string) (sessions.Session, error) {
	session, err := r.probe(ctx, token)
	if err != nil {
		// A cancelled caller is not evidence against the token
		if ctxErr := ctx.Err(); ctxErr != nil {
			return sessions.Unauthenticated(), ctxErr
		}
		if clearErr := r.store.Clear(ctx); clearErr != nil {
			log.Err(clearErr).Msg("Resolve: failed to clear stored session")
		}
		log.Warn().Err(err).Msg("Resolve: session resolution failed")
		return sessions.Unauthenticated(), err
	}

	if err := r.store.Save(ctx, token, session.Role); err != nil {
		log.Err(err).Str("role", session.Role.String()).Msg("Resolve: failed to persist session")
	}

	log.Info().Str("role", session.Role.String()).Int64("principal_id", session.Principal()).Msg("Session resolved")
	return session, nil
}

func (r *Resolver) probe(ctx context.Context, token string) (sessions.Session, error) {
	if strings.TrimSpace(token) == "" {
		return sessions.Session{}, fmt.Errorf("[Resolver.Resolve] empty token: %w", ErrTokenInvalid)
	}

	faculty, err := r.backend.ListFaculty(ctx, token)
	if err != nil {
		return sessions.Session{}, fmt.Errorf("[Resolver.Resolve] faculty probe: %w: %w", ErrTokenInvalid, err)
	}
	if len(faculty) > 0 {
		return sessions.NewFaculty(token, faculty[0].ID), nil
	}

	// The student probe is only issued once the faculty probe came back empty
	students, err := r.backend.ListStudents(ctx, token)
	if err != nil {
		return sessions.Session{}, fmt.Errorf("[Resolver.Resolve] student probe: %w: %w", ErrTokenInvalid, err)
	}
	if len(students) > 0 {
		return sessions.NewStudent(token, students[0].ID), nil
	}

	return sessions.Session{}, fmt.Errorf("[Resolver.Resolve] %w", ErrNoProfileFound)
}

// Login exchanges credentials for a token pair and resolves the access token.
// The refresh token is returned to the caller and never persisted.
func (r *Resolver) Login(ctx context.Context, creds college.Credentials) (sessions.Session, college.TokenPair, error) {
	if err := college.Validate(creds); err != nil {
		return sessions.Unauthenticated(), college.TokenPair{}, fmt.Errorf("[Resolver.Login] %w: username and password are required", ErrInvalidCredentials)
	}

	pair, err := r.backend.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, college.ErrUnauthorized) {
			return sessions.Unauthenticated(), college.TokenPair{}, fmt.Errorf("[Resolver.Login] %w: %w", ErrInvalidCredentials, err)
		}
		return sessions.Unauthenticated(), college.TokenPair{}, pkgerrors.Wrap(err, "[Resolver.Login] token request")
	}

	session, err := r.Resolve(ctx, pair.Access)
	if err != nil {
		return sessions.Unauthenticated(), college.TokenPair{}, err
	}
	return session, pair, nil
}

// Renew exchanges a refresh token for a new access token and resolves it.
// It is only called on explicit user request.
func (r *Resolver) Renew(ctx context.Context, refreshToken string) (sessions.Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return sessions.Unauthenticated(), fmt.Errorf("[Resolver.Renew] empty refresh token: %w", ErrTokenInvalid)
	}

	access, err := r.backend.Refresh(ctx, refreshToken)
	if err != nil {
		if clearErr := r.store.Clear(ctx); clearErr != nil {
			log.Err(clearErr).Msg("Renew: failed to clear stored session")
		}
		return sessions.Unauthenticated(), fmt.Errorf("[Resolver.Renew] %w: %w", ErrTokenInvalid, err)
	}
	return r.Resolve(ctx, access)
}

// Restore resolves the persisted token so that a new process can skip the
// credential prompt. The stored role is advisory; the probes decide.
func (r *Resolver) Restore(ctx context.Context) (sessions.Session, error) {
	stored, err := r.store.Load(ctx)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return sessions.Unauthenticated(), ErrNoStoredSession
		}
		return sessions.Unauthenticated(), pkgerrors.Wrap(err, "[Resolver.Restore] load stored session")
	}

	session, err := r.Resolve(ctx, stored.Token)
	if err != nil {
		return sessions.Unauthenticated(), err
	}
	if stored.Role != session.Role {
		log.Warn().
			Str("stored_role", stored.Role.String()).
			Str("resolved_role", session.Role.String()).
			Msg("Restore: stored role differs from resolved role")
	}
	return session, nil
}

// Logout clears the persisted session
func (r *Resolver) Logout(ctx context.Context) error {
	if err := r.store.Clear(ctx); err != nil {
		return pkgerrors.Wrap(err, "[Resolver.Logout] clear stored session")
	}
	return nil
}
