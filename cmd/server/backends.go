package main

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/document-validator-api/internal/config"
	"github.com/BerylCAtieno/document-validator-api/internal/db"
	"github.com/BerylCAtieno/document-validator-api/internal/repository"
	"github.com/BerylCAtieno/document-validator-api/internal/storage"
)

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageS3:
		return storage.NewS3Storage(ctx, storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3BucketName,
			UseSSL:          cfg.S3UseSSL,
		})
	case config.StorageLocal:
		return storage.NewLocalStorage(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// newRepository returns the session store and a func releasing whatever it
// holds open.
func newRepository(ctx context.Context, cfg *config.Config) (repository.Repository, func(), error) {
	switch cfg.SessionBackend {
	case config.SessionMemory:
		return repository.NewMemoryRepository(), func() {}, nil

	case config.SessionRedis:
		repo, err := repository.NewRedisRepository(ctx, repository.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SessionTTL,
		})
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { repo.Close() }, nil

	case config.SessionSQLite:
		database, err := db.NewSQLiteDB(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(database); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return repository.NewRepository(database), func() { database.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
