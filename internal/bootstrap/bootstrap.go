package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jrsteele09/college-portal/auth"
	"github.com/jrsteele09/college-portal/college"
	"github.com/jrsteele09/college-portal/internal/config"
	apperrors "github.com/jrsteele09/college-portal/internal/errors"
	"github.com/jrsteele09/college-portal/portal"
	"github.com/jrsteele09/college-portal/sessions"
	"github.com/jrsteele09/college-portal/sessions/filestore"
	"github.com/jrsteele09/college-portal/sessions/redisstore"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging configures the global zerolog logger. DEV gets a console
// writer, other environments JSON.
func SetupLogging(c config.EnvConfig, out io.Writer) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.GetEnv() == "DEV" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// OpenStore returns the configured session store and a closer for it
func OpenStore(ctx context.Context, c config.StoreConfig) (sessions.Store, func() error, error) {
	switch c.GetStoreKind() {
	case config.StoreRedis:
		store, err := redisstore.Dial(ctx, c.GetRedisAddr(), c.GetRedisKey())
		if err != nil {
			return nil, nil, apperrors.Wrapf(err, "[OpenStore] redis %s", c.GetRedisAddr())
		}
		log.Info().Str("addr", c.GetRedisAddr()).Str("key", c.GetRedisKey()).Msg("Using redis session store")
		return store, store.Close, nil
	default:
		store, err := filestore.New(c.GetSessionFile())
		if err != nil {
			return nil, nil, apperrors.Wrapf(err, "[OpenStore] session file %s", c.GetSessionFile())
		}
		log.Info().Str("path", store.Path()).Msg("Using file session store")
		return store, func() error { return nil }, nil
	}
}

// Portal wires backend client, session store, resolver and controller
type Portal struct {
	Controller *portal.Controller
	Resolver   *auth.Resolver
	Client     *college.Client
	close      func() error
}

func (p *Portal) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

// NewPortal builds the portal controller from configuration. backendURL
// overrides the configured backend when not empty.
func NewPortal(ctx context.Context, c config.Config, backendURL string) (*Portal, error) {
	if backendURL == "" {
		backendURL = c.GetBackendURL()
	}

	store, closeStore, err := OpenStore(ctx, c)
	if err != nil {
		return nil, err
	}

	client := college.NewClient(backendURL, college.WithTimeout(c.GetBackendTimeout()))
	resolver, err := auth.NewResolver(client, store)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("[NewPortal] %w", err)
	}
	controller, err := portal.NewController(resolver, client)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("[NewPortal] %w", err)
	}

	log.Info().Str("backend", backendURL).Dur("timeout", c.GetBackendTimeout()).Msg("Portal ready")
	return &Portal{Controller: controller, Resolver: resolver, Client: client, close: closeStore}, nil
}
