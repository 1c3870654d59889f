package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BerylCAtieno/document-validator-api/internal/models"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Prefix   string
}

// RedisRepository keeps current documents in Redis.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisRepository stores each session's document as a JSON value that
// expires after TTL of inactivity.
func NewRedisRepository(ctx context.Context, cfg RedisConfig) (*RedisRepository, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "current_document"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	return &RedisRepository{client: client, ttl: cfg.TTL, prefix: cfg.Prefix}, nil
}

func (r *RedisRepository) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, sessionID)
}

func (r *RedisRepository) Get(ctx context.Context, sessionID string) (*models.UploadedDocument, error) {
	raw, err := r.client.GetEx(ctx, r.key(sessionID), r.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc models.UploadedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode current document: %w", err)
	}
	return &doc, nil
}

func (r *RedisRepository) Set(ctx context.Context, sessionID string, doc *models.UploadedDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(sessionID), raw, r.ttl).Err()
}

func (r *RedisRepository) Clear(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
