package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/doffpett/evhenter/internal/entity"
)

const (
	metadataKey    = "listing:metadata"
	eventKeyPrefix = "event:"
)

// CacheRepository keeps filter metadata and single events in redis so
// repeat reads skip the store. TTLs are short; listings churn with "now".
type CacheRepository struct {
	client      *redis.Client
	metadataTTL time.Duration
	eventTTL    time.Duration
}

func NewCacheRepository(client *redis.Client, metadataTTL, eventTTL time.Duration) *CacheRepository {
	return &CacheRepository{
		client:      client,
		metadataTTL: metadataTTL,
		eventTTL:    eventTTL,
	}
}

func (r *CacheRepository) GetMetadata(ctx context.Context) (*entity.ListMetadata, error) {
	data, err := r.client.Get(ctx, metadataKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var metadata entity.ListMetadata
	if err := json.Unmarshal([]byte(data), &metadata); err != nil {
		return nil, err
	}

	return &metadata, nil
}

func (r *CacheRepository) SetMetadata(ctx context.Context, metadata *entity.ListMetadata) error {
	data, err := json.Marshal(metadata)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, metadataKey, data, r.metadataTTL).Err()
}

func (r *CacheRepository) GetEvent(ctx context.Context, identifier string) (*entity.Event, error) {
	data, err := r.client.Get(ctx, eventKeyPrefix+identifier).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var event entity.Event
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *CacheRepository) SetEvent(ctx context.Context, identifier string, event *entity.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, eventKeyPrefix+identifier, data, r.eventTTL).Err()
}
