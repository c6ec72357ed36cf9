package redis

import (
	"context"
	"fmt"
	"time"

	"cattle-records/internal/domain/layout"

	"github.com/go-redis/redis/v8"
)

// LayoutStore comparte layouts entre instancias de la API vía Redis.
type LayoutStore struct {
	client *redis.Client
}

var _ layout.Store = (*LayoutStore)(nil)

// Open parsea la URL (redis://host:port/db) y verifica la conexión.
func Open(ctx context.Context, redisURL string) (*LayoutStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &LayoutStore{client: client}, nil
}

// NewLayoutStore usa un cliente ya configurado.
func NewLayoutStore(client *redis.Client) *LayoutStore {
	return &LayoutStore{client: client}
}

func (s *LayoutStore) Close() error {
	return s.client.Close()
}

func (s *LayoutStore) Load(ctx context.Context, profileID string) (layout.Blob, error) {
	vals, err := s.client.MGet(ctx, layout.ColumnsKey(profileID), layout.VersionKey(profileID)).Result()
	if err != nil {
		return layout.Blob{}, fmt.Errorf("redis mget failed: %w", err)
	}

	cols, okCols := vals[0].(string)
	version, okVersion := vals[1].(string)
	if !okCols || !okVersion {
		return layout.Blob{}, layout.ErrNotFound
	}
	return layout.Blob{Columns: []byte(cols), Version: version}, nil
}

// Save escribe ambas claves en un MULTI para no dejar versión y columnas desparejas.
func (s *LayoutStore) Save(ctx context.Context, profileID string, b layout.Blob) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, layout.ColumnsKey(profileID), b.Columns, 0)
		p.Set(ctx, layout.VersionKey(profileID), b.Version, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save layout failed: %w", err)
	}
	return nil
}
