package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	moodtrack "github.com/cyberFlowTech/moodtrack-go"
)

// RedisSessionRepository implements moodtrack.SessionRepository using Redis.
// Keys are namespaced as "{prefix}:session:{id}" for the context (JSON string)
// and "{prefix}:turns:{id}" for the history (list of JSON turns, oldest first).
type RedisSessionRepository struct {
	client   redis.UniversalClient
	prefix   string
	ttl      time.Duration
	maxTurns int
}

// RedisStoreConfig configures the Redis store.
type RedisStoreConfig struct {
	Prefix   string        // key prefix, default "moodtrack"
	TTL      time.Duration // expiry refreshed on every write, 0 = no expiry
	MaxTurns int           // history cap per session, default 200
}

// NewRedisSessionRepository creates a repository backed by Redis.
func NewRedisSessionRepository(client redis.UniversalClient, config ...RedisStoreConfig) *RedisSessionRepository {
	cfg := RedisStoreConfig{Prefix: "moodtrack", MaxTurns: 200}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "moodtrack"
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 200
	}
	return &RedisSessionRepository{
		client:   client,
		prefix:   cfg.Prefix,
		ttl:      cfg.TTL,
		maxTurns: cfg.MaxTurns,
	}
}

// NewRedisSessionRepositoryFromURL parses a redis:// URL and pings the server.
func NewRedisSessionRepositoryFromURL(ctx context.Context, url string, config ...RedisStoreConfig) (*RedisSessionRepository, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return NewRedisSessionRepository(client, config...), nil
}

func (r *RedisSessionRepository) sessionKey(id string) string {
	return fmt.Sprintf("%s:session:%s", r.prefix, id)
}

func (r *RedisSessionRepository) turnsKey(id string) string {
	return fmt.Sprintf("%s:turns:%s", r.prefix, id)
}

func (r *RedisSessionRepository) Load(ctx context.Context, sessionID string) (*moodtrack.SessionContext, error) {
	data, err := r.client.Get(ctx, r.sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, moodtrack.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var sess moodtrack.SessionContext
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", moodtrack.ErrInvalidSessionState, err)
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *RedisSessionRepository) Save(ctx context.Context, sess *moodtrack.SessionContext) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, r.sessionKey(sess.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) AppendTurn(ctx context.Context, sessionID string, turn moodtrack.Turn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}
	key := r.turnsKey(sessionID)
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, data)
		p.LTrim(ctx, key, int64(-r.maxTurns), -1)
		if r.ttl > 0 {
			p.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) RecentTurns(ctx context.Context, sessionID string, limit int) ([]moodtrack.Turn, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	items, err := r.client.LRange(ctx, r.turnsKey(sessionID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %w", err)
	}
	turns := make([]moodtrack.Turn, 0, len(items))
	for _, item := range items {
		var t moodtrack.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("%w: bad turn: %v", moodtrack.ErrInvalidSessionState, err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (r *RedisSessionRepository) Close() error {
	return r.client.Close()
}

// Compile-time interface check.
var _ moodtrack.SessionRepository = (*RedisSessionRepository)(nil)
