// Package cache implementa la caché opcional de reportes sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/seller-analytics/internal/application/ports"
	"github.com/jhoicas/seller-analytics/pkg/config"
)

var _ ports.ReportCache = (*RedisReportCache)(nil)

// RedisReportCache guarda reportes serializados en JSON con TTL.
// Los reportes son deterministas para (tenant, reporte, parámetros), así que no hace falta invalidar.
type RedisReportCache struct {
	client     *redis.Client
	ownsClient bool
}

// NewRedisReportCache conecta con Redis y verifica la conexión.
func NewRedisReportCache(ctx context.Context, cfg config.RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return &RedisReportCache{client: client, ownsClient: true}, nil
}

// NewRedisReportCacheWithClient usa un cliente existente; el llamador conserva su ownership.
func NewRedisReportCacheWithClient(client *redis.Client) *RedisReportCache {
	return &RedisReportCache{client: client}
}

// Get decodifica el reporte guardado en dst. false si no existe.
func (c *RedisReportCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache.Get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// Entrada corrupta: se borra y se recalcula.
		_ = c.client.Del(ctx, key).Err()
		return false, fmt.Errorf("cache.Get %s: decodificar: %w", key, err)
	}
	return true, nil
}

// Set guarda value con el TTL indicado.
func (c *RedisReportCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache.Set %s: codificar: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache.Set %s: %w", key, err)
	}
	return nil
}

// Ping verifica la conexión (usado por /health).
func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente si fue creado por esta caché.
func (c *RedisReportCache) Close() error {
	if !c.ownsClient {
		return nil
	}
	return c.client.Close()
}
