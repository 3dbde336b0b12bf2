package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// ValkeyStorage keeps the booking record under a single Valkey/Redis key.
type ValkeyStorage struct {
	client *redis.Client
	key    string
}

func NewValkeyStorage(cfg Config, key string) (*ValkeyStorage, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return NewValkeyStorageWithClient(rdb, key), nil
}

// NewValkeyStorageWithClient wraps an existing client.
func NewValkeyStorageWithClient(client *redis.Client, key string) *ValkeyStorage {
	return &ValkeyStorage{client: client, key: key}
}

func (v *ValkeyStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := v.client.Get(ctx, v.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

func (v *ValkeyStorage) Save(ctx context.Context, data []byte) error {
	if err := v.client.Set(ctx, v.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", v.key, err)
	}
	return nil
}

func (v *ValkeyStorage) Ping(ctx context.Context) error {
	return v.client.Ping(ctx).Err()
}

func (v *ValkeyStorage) Close() error {
	return v.client.Close()
}
