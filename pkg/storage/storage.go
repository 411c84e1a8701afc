package storage

import (
	"context"
	"errors"
	"fmt"

	"staffdesk/pkg/config"
	"staffdesk/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module      = fx.Provide(New)
	ErrNotFound = errors.New("key not found")
)

type (
	Params struct {
		fx.In

		Config config.IConfig
		Logger logger.Logger
	}

	// Store is a durable key-value capability. The gateway keeps only the
	// bearer token and the current-user blob in it, so the surface stays
	// deliberately small.
	Store interface {
		Get(ctx context.Context, key string) (string, error)
		Set(ctx context.Context, key string, value string) error
		Remove(ctx context.Context, key string) error
	}
)

func New(p Params) (Store, error) {
	backend := p.Config.GetString("storage.backend")
	switch backend {
	case "redis":
		s, err := newRedisStore(p.Config)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		p.Logger.Info(context.Background(), "using redis storage backend")
		return s, nil
	case "", "file":
		s, err := newFileStore(p.Config.GetString("storage.path"))
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		p.Logger.Info(context.Background(), "using file storage backend",
			zap.String("path", p.Config.GetString("storage.path")))
		return s, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
