package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stocktrack/internal/models"
)

// CacheService is a read-through cache for barcode lookups. Cache
// failures are never fatal; callers fall back to the registries.
type CacheService interface {
	GetStock(ctx context.Context, barcode string) (*models.StockResponse, error)
	SetStock(ctx context.Context, stock *models.StockResponse, ttl time.Duration) error
	DeleteStock(ctx context.Context, barcode string) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

// NewRedisCacheService connects to Redis. Accepts a bare host:port or a
// redis:// URL.
func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func stockKey(barcode string) string {
	return fmt.Sprintf("stocktrack:stock:%s", barcode)
}

func (r *redisCacheService) GetStock(ctx context.Context, barcode string) (*models.StockResponse, error) {
	data, err := r.client.Get(ctx, stockKey(barcode)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stock models.StockResponse
	if err := json.Unmarshal(data, &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *redisCacheService) SetStock(ctx context.Context, stock *models.StockResponse, ttl time.Duration) error {
	data, err := json.Marshal(stock)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, stockKey(stock.Barcode), data, ttl).Err()
}

func (r *redisCacheService) DeleteStock(ctx context.Context, barcode string) error {
	return r.client.Del(ctx, stockKey(barcode)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// NewNoopCacheService returns a cache that stores nothing, for running
// without Redis.
func NewNoopCacheService() CacheService {
	return noopCacheService{}
}

type noopCacheService struct{}

func (noopCacheService) GetStock(context.Context, string) (*models.StockResponse, error) {
	return nil, nil
}

func (noopCacheService) SetStock(context.Context, *models.StockResponse, time.Duration) error {
	return nil
}

func (noopCacheService) DeleteStock(context.Context, string) error { return nil }

func (noopCacheService) Ping(context.Context) error { return nil }
