package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ServerConfig)
		expectError bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *ServerConfig) {},
		},
		{
			name:        "empty port",
			mutate:      func(c *ServerConfig) { c.Port = "" },
			expectError: true,
		},
		{
			name:        "unknown database type",
			mutate:      func(c *ServerConfig) { c.DatabaseType = "mysql" },
			expectError: true,
		},
		{
			name:        "postgres without url",
			mutate:      func(c *ServerConfig) { c.DatabaseType = "postgres" },
			expectError: true,
		},
		{
			name: "postgres with url",
			mutate: func(c *ServerConfig) {
				c.DatabaseType = "postgres"
				c.DatabaseURL = "postgres://localhost:5432/blog"
			},
		},
		{
			name:        "fs without base dir",
			mutate:      func(c *ServerConfig) { c.StorageBackend = "fs" },
			expectError: true,
		},
		{
			name:        "s3 without bucket",
			mutate:      func(c *ServerConfig) { c.StorageBackend = "s3" },
			expectError: true,
		},
		{
			name:        "unknown storage backend",
			mutate:      func(c *ServerConfig) { c.StorageBackend = "tape" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildServiceMemory(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	svc, err := cfg.BuildService(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestBuildServiceFS(t *testing.T) {
	cfg := Default()
	cfg.StorageBackend = "fs"
	cfg.FSBaseDir = t.TempDir()
	require.NoError(t, cfg.Validate())

	svc, err := cfg.BuildService(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
