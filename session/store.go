// Package session хранит серверные сессии и выдаёт клиенту подписанную cookie
// с непрозрачным идентификатором.
package session

import (
	"blog-backend/config"
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	BackendMemory    = "memory"
	BackendRedis     = "redis"
	BackendAerospike = "aerospike"
)

var ErrNotFound = errors.New("сессия не найдена")

// Data is what a successful login leaves behind.
type Data struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

type Store interface {
	Save(ctx context.Context, id string, data Data, ttl time.Duration) error
	// Load returns ErrNotFound for unknown or expired ids.
	Load(ctx context.Context, id string) (Data, error)
	Close() error
}

// NewStore открывает хранилище сессий, выбранное в SESSION_BACKEND.
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.SessionBackend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		store, err := NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendAerospike:
		store, err := NewAerospikeStore(cfg.AerospikeHost, cfg.AerospikePort, cfg.AerospikeNamespace)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("неподдерживаемое хранилище сессий: %s", cfg.SessionBackend)
	}
}
