package snapshot

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yatelabs/faire-sync/internal/config"
)

const redisSnapshotKey = "faire:orders:snapshot"

const defaultSnapshotTTL = 5 * time.Minute

// RedisStore keeps the snapshot in redis with a TTL, so a stale snapshot
// expires on its own and the next sync fetches live data.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore creates a redis-backed snapshot store.
func NewRedisStore(cfg config.RedisConfig, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultSnapshotTTL
	}

	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

// Load reads the cached payload. An expired or absent key is ErrNoSnapshot.
func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, redisSnapshotKey).Bytes()
	if err == redis.Nil {
		s.logger.Debug("Snapshot cache miss")
		return nil, ErrNoSnapshot
	}
	if err != nil {
		s.logger.Error("Snapshot cache read failed", zap.Error(err))
		return nil, err
	}

	s.logger.Debug("Snapshot cache hit", zap.Int("bytes", len(data)))
	return data, nil
}

// Save caches the payload with the configured TTL.
func (s *RedisStore) Save(ctx context.Context, payload []byte) error {
	if err := s.client.Set(ctx, redisSnapshotKey, payload, s.ttl).Err(); err != nil {
		s.logger.Error("Snapshot cache write failed", zap.Error(err))
		return err
	}
	return nil
}

// Close releases the redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
