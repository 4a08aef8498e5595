package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/purinx/my-blog/pkg/blog"
	memoryrepo "github.com/purinx/my-blog/pkg/blog/repo/memory"
	postgresrepo "github.com/purinx/my-blog/pkg/blog/repo/postgres"
	fsstorage "github.com/purinx/my-blog/pkg/blog/storage/fs"
	memorystorage "github.com/purinx/my-blog/pkg/blog/storage/memory"
	s3storage "github.com/purinx/my-blog/pkg/blog/storage/s3"
)

// ServerConfig represents server configuration for the blog service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// API key expected by the admin API
	APIKey string

	// Database configuration
	DatabaseType string // "memory", "postgres"
	DatabaseURL  string

	// Storage configuration
	StorageBackend string // "memory", "fs", "s3"
	FSBaseDir      string
	S3             S3Config
}

// S3Config represents configuration for the S3-compatible storage backend
type S3Config struct {
	Region                 string
	Bucket                 string
	AccessKeyID            string
	SecretAccessKey        string
	Endpoint               string
	UsePathStyle           bool
	CreateBucketIfNotExist bool
}

// Default returns the development defaults: everything in memory.
func Default() ServerConfig {
	return ServerConfig{
		Port:           "8080",
		Environment:    "development",
		DatabaseType:   "memory",
		StorageBackend: "memory",
	}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.StorageBackend {
	case "memory":
	case "fs":
		if c.FSBaseDir == "" {
			return errors.New("fs_base_dir is required when using fs storage")
		}
	case "s3":
		if c.S3.Bucket == "" {
			return errors.New("s3 bucket is required when using s3 storage")
		}
	default:
		return errors.New("storage_backend must be 'memory', 'fs' or 's3'")
	}

	return nil
}

// BuildService wires the configured metadata store and blob store into a
// blog.Service.
func (c *ServerConfig) BuildService(ctx context.Context) (blog.Service, error) {
	metadata, err := c.buildMetadataStore(ctx)
	if err != nil {
		return nil, err
	}

	blobs, err := c.buildBlobStore()
	if err != nil {
		return nil, err
	}

	return blog.New(
		blog.WithMetadataStore(metadata),
		blog.WithBlobStore(blobs),
	)
}

func (c *ServerConfig) buildMetadataStore(ctx context.Context) (blog.MetadataStore, error) {
	switch c.DatabaseType {
	case "postgres":
		pool, err := pgxpool.New(ctx, c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return postgresrepo.NewWithPool(pool), nil
	case "memory":
		return memoryrepo.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

func (c *ServerConfig) buildBlobStore() (blog.BlobStore, error) {
	switch c.StorageBackend {
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.S3.Region,
			Bucket:                 c.S3.Bucket,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			Endpoint:               c.S3.Endpoint,
			UsePathStyle:           c.S3.UsePathStyle,
			CreateBucketIfNotExist: c.S3.CreateBucketIfNotExist,
		})
	case "fs":
		return fsstorage.New(fsstorage.Config{BaseDir: c.FSBaseDir})
	case "memory":
		return memorystorage.New(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", c.StorageBackend)
	}
}
