package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
)

var _ ports.TraceCache = (*RedisTraceCache)(nil)

const (
	traceKeyPrefix = "trace:qr:"
	tagKeyPrefix   = "trace:tag:"
)

// RedisTraceCache caché de la consulta pública por QR. Cada entrada se registra en un
// set por etiqueta (trace:tag:factory:<id>, trace:tag:supplier:<id>) para poder
// invalidarla cuando cambia la fábrica o un proveedor; el TTL acota el resto.
type RedisTraceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTraceCache conecta con la URL (redis://...) y verifica con Ping.
func NewRedisTraceCache(ctx context.Context, url string, ttl time.Duration) (*RedisTraceCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisTraceCacheFromClient(client, ttl), nil
}

// NewRedisTraceCacheFromClient envuelve un cliente existente.
func NewRedisTraceCacheFromClient(client *redis.Client, ttl time.Duration) *RedisTraceCache {
	return &RedisTraceCache{client: client, ttl: ttl}
}

// Get devuelve (nil, nil) si no hay entrada.
func (c *RedisTraceCache) Get(ctx context.Context, qrCodeID string) (*dto.TraceResponse, error) {
	data, err := c.client.Get(ctx, traceKeyPrefix+qrCodeID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var trace dto.TraceResponse
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("decode cached trace: %w", err)
	}
	return &trace, nil
}

// Set guarda la entrada y la agrega a los sets de sus etiquetas en una sola transacción.
func (c *RedisTraceCache) Set(ctx context.Context, qrCodeID string, trace *dto.TraceResponse, tags ...string) error {
	data, err := json.Marshal(trace)
	if err != nil {
		return err
	}
	key := traceKeyPrefix + qrCodeID
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, c.ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, tagKeyPrefix+tag, key)
			if c.ttl > 0 {
				pipe.Expire(ctx, tagKeyPrefix+tag, c.ttl)
			}
		}
		return nil
	})
	return err
}

// Invalidate borra las entradas de cada etiqueta y el set de la etiqueta.
func (c *RedisTraceCache) Invalidate(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		setKey := tagKeyPrefix + tag
		keys, err := c.client.SMembers(ctx, setKey).Result()
		if err != nil {
			return fmt.Errorf("smembers %s: %w", setKey, err)
		}
		if err := c.client.Del(ctx, append(keys, setKey)...).Err(); err != nil {
			return fmt.Errorf("del %s: %w", setKey, err)
		}
	}
	return nil
}

// Close libera el cliente.
func (c *RedisTraceCache) Close() error {
	return c.client.Close()
}
