package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/rmaciel/atendimento/internal/model"
	"github.com/vmihailenco/msgpack/v5"
)

const cachedStatisticsTimeToLive = 30 * time.Minute

const latestStatisticsKey = "statistics:latest"

// StatisticsCacheRepository caches statistics of the latest simulation run
type StatisticsCacheRepository interface {
	FindLatest(context.Context) (*model.Statistics, error)
	Store(context.Context, *model.Statistics) error
}

type redisStatisticsCacheRepository struct {
	client *redis.Client
}

// NewRedisStatisticsCacheRepository builds redis statistics cache
func NewRedisStatisticsCacheRepository(client *redis.Client) StatisticsCacheRepository {
	return &redisStatisticsCacheRepository{client: client}
}

func (r *redisStatisticsCacheRepository) FindLatest(ctx context.Context) (*model.Statistics, error) {
	res, err := r.client.Get(ctx, latestStatisticsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats model.Statistics
	if err := msgpack.Unmarshal([]byte(res), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *redisStatisticsCacheRepository) Store(ctx context.Context, stats *model.Statistics) error {
	encoded, err := msgpack.Marshal(stats)
	if err != nil {
		return err
	}

	// each run overwrites the previous statistics
	if _, err := r.client.Set(ctx, latestStatisticsKey, encoded, cachedStatisticsTimeToLive).Result(); err != nil {
		return err
	}
	return nil
}
