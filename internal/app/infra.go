package app

import (
	"github.com/lucas-hallgren/automatizador-backend/internal/config"
	"github.com/lucas-hallgren/automatizador-backend/internal/logger"
	"github.com/lucas-hallgren/automatizador-backend/internal/redis"
	"github.com/lucas-hallgren/automatizador-backend/internal/session"
)

type Infra struct {
	SessionStore session.Store
	cleanup      func() error
}

// setupInfra picks the session backend: Redis when REDIS_ADDR is set,
// an in-process store otherwise. Both satisfy session.Store; nothing
// downstream knows which one is active.
func setupInfra(cfg config.Config) (*Infra, error) {

	if cfg.RedisAddr == "" {
		logger.Info("session store ready", map[string]any{
			"backend": "memory",
		})
		return &Infra{
			SessionStore: session.NewMemoryStore(),
		}, nil
	}

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("session store ready", map[string]any{
		"backend": "redis",
	})

	return &Infra{
		SessionStore: session.NewRedisStore(redisClient.Client),
		cleanup:      redisClient.Close,
	}, nil
}
