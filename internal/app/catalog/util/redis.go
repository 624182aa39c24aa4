package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ksscientifique/internal/app/catalog/entity"
	"ksscientifique/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName        = "catalog-admin"
	categoriesCacheKey = "categories:all"
)

// RedisClient обертка над go-redis для кеширования списка категорий.
// Значение кеша - JSON-массив категорий вместе с base64-представлением изображений.
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	err = r.client.Set(ctx, categoriesCacheKey, data, ttl).Err()
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set categories in cache: %w", err)
	}

	return nil
}

// GetCategories возвращает (nil, nil) при отсутствии ключа - cache miss не ошибка
func (r *RedisClient) GetCategories(ctx context.Context) ([]entity.Category, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	data, err := r.client.Get(ctx, categoriesCacheKey).Bytes()
	timer.ObserveDuration()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get categories from cache: %w", err)
	}

	var categories []entity.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}

	return categories, nil
}

func (r *RedisClient) DeleteCategories(ctx context.Context) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	err := r.client.Del(ctx, categoriesCacheKey).Err()
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete categories from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
