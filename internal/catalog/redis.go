package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/battlebrain/predict-api/internal/models"
)

// DefaultRedisKey is the hash holding one JSON-encoded Pokemon per field
const DefaultRedisKey = "battlebrain:pokedex"

// RedisHashReader is the subset of the Redis client the source needs
type RedisHashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// RedisSource loads the catalog from a Redis hash keyed by Pokemon id
type RedisSource struct {
	client RedisHashReader
	key    string
}

func NewRedisSource(client RedisHashReader, key string) *RedisSource {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSource{client: client, key: key}
}

func (s *RedisSource) Name() string { return "redis" }

func (s *RedisSource) Load(ctx context.Context) ([]models.Pokemon, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.key, err)
	}

	out := make([]models.Pokemon, 0, len(fields))
	for field, raw := range fields {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("field %q: not an id", field)
		}
		var p models.Pokemon
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		if p.ID != id {
			return nil, fmt.Errorf("field %q: record id %d does not match", field, p.ID)
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if err := validateRecords(out); err != nil {
		return nil, err
	}
	return out, nil
}
