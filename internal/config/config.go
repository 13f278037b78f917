package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // SEASONPLAN_DATABASE_URL (required)
	HTTPAddr    string // SEASONPLAN_HTTP_ADDR (default ":8080")
	NATSURL     string // SEASONPLAN_NATS_URL (optional, empty = no events)
	AuthToken   string // SEASONPLAN_AUTH_TOKEN (optional, empty = auth disabled)

	// Snapshot sync settings
	SyncInterval   time.Duration // SEASONPLAN_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // SEASONPLAN_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // SEASONPLAN_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // SEASONPLAN_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // SEASONPLAN_SYNC_S3_KEY (default "seasonplan/backup.jsonl")
	SyncGitRepo    string        // SEASONPLAN_SYNC_GIT_REPO (enables git when set; path to a local clone)
	SyncGitFile    string        // SEASONPLAN_SYNC_GIT_FILE (default "seasonplan.jsonl")
	SyncGitBranch  string        // SEASONPLAN_SYNC_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("SEASONPLAN_DATABASE_URL"),
		HTTPAddr:       envOrDefault("SEASONPLAN_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("SEASONPLAN_NATS_URL"),
		AuthToken:      os.Getenv("SEASONPLAN_AUTH_TOKEN"),
		SyncS3Bucket:   os.Getenv("SEASONPLAN_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("SEASONPLAN_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("SEASONPLAN_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("SEASONPLAN_SYNC_S3_KEY", "seasonplan/backup.jsonl"),
		SyncGitRepo:    os.Getenv("SEASONPLAN_SYNC_GIT_REPO"),
		SyncGitFile:    envOrDefault("SEASONPLAN_SYNC_GIT_FILE", "seasonplan.jsonl"),
		SyncGitBranch:  envOrDefault("SEASONPLAN_SYNC_GIT_BRANCH", "main"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("SEASONPLAN_DATABASE_URL is required")
	}

	intervalStr := envOrDefault("SEASONPLAN_SYNC_INTERVAL", "3m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("SEASONPLAN_SYNC_INTERVAL: %w", err)
		}
		c.SyncInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
