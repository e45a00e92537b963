package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/graphattr"
	"github.com/hupe1980/graphattr/attribute/temporal"
	"github.com/hupe1980/graphattr/blobstore"
	miniostore "github.com/hupe1980/graphattr/blobstore/minio"
	s3store "github.com/hupe1980/graphattr/blobstore/s3"
	"github.com/hupe1980/graphattr/codec"
	"github.com/hupe1980/graphattr/persistence"
	"github.com/hupe1980/graphattr/resource"
)

// Config is the YAML configuration of the CLI.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Engine EngineConfig `yaml:"engine"`
	Store  StoreConfig  `yaml:"store"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// EngineConfig maps onto graphattr options.
type EngineConfig struct {
	Temporal    string `yaml:"temporal"` // lenient or strict
	Workers     int    `yaml:"workers"`
	Codec       string `yaml:"codec"`
	Compression string `yaml:"compression"`

	MaxColumnLength int `yaml:"max_column_length"` // 0 keeps the default

	MemoryLimitBytes   int64 `yaml:"memory_limit_bytes"`
	MaxWorkers         int64 `yaml:"max_workers"`
	IOLimitBytesPerSec int64 `yaml:"io_limit_bytes_per_sec"`
}

// StoreConfig selects the snapshot backend.
type StoreConfig struct {
	Type   string `yaml:"type"` // local, s3 or minio
	Path   string `yaml:"path"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`

	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`

	// MinIO credentials. Empty values fall back to MINIO_ACCESS_KEY and
	// MINIO_SECRET_KEY.
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`

	// CacheBytes caches blobs read from s3 or minio in memory.
	CacheBytes int64 `yaml:"cache_bytes"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: "warn", Format: "text"},
		Engine: EngineConfig{
			Temporal:    temporal.Lenient.String(),
			Codec:       codec.Default.Name(),
			Compression: persistence.CompressionZstd.String(),
		},
		Store: StoreConfig{Type: "local", Path: "./data"},
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the configuration into engine options.
func (c Config) Options() ([]graphattr.Option, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	var logger *graphattr.Logger
	switch c.Log.Format {
	case "", "text":
		logger = graphattr.NewTextLogger(level)
	case "json":
		logger = graphattr.NewJSONLogger(level)
	default:
		return nil, fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	mode, err := temporal.ParseMode(c.Engine.Temporal)
	if err != nil {
		return nil, err
	}
	cd, ok := codec.ByName(c.Engine.Codec)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (want one of %v)", c.Engine.Codec, codec.Names())
	}
	comp, err := persistence.ParseCompression(c.Engine.Compression)
	if err != nil {
		return nil, err
	}

	opts := []graphattr.Option{
		graphattr.WithLogger(logger),
		graphattr.WithTemporalMode(mode),
		graphattr.WithWorkers(c.Engine.Workers),
		graphattr.WithMaxColumnLength(c.Engine.MaxColumnLength),
		graphattr.WithCodec(cd),
		graphattr.WithCompression(comp),
	}
	if c.Engine.MemoryLimitBytes > 0 || c.Engine.MaxWorkers > 0 || c.Engine.IOLimitBytesPerSec > 0 {
		opts = append(opts, graphattr.WithResourceLimits(resource.Config{
			MemoryLimitBytes:   c.Engine.MemoryLimitBytes,
			MaxWorkers:         c.Engine.MaxWorkers,
			IOLimitBytesPerSec: c.Engine.IOLimitBytesPerSec,
		}))
	}
	return opts, nil
}

var errNoBucket = errors.New("store: bucket is required")

// Open connects to the configured backend.
func (s StoreConfig) Open(ctx context.Context) (blobstore.Store, error) {
	store, err := s.backend(ctx)
	if err != nil {
		return nil, err
	}
	if s.CacheBytes > 0 && s.Type != "" && s.Type != "local" {
		return blobstore.NewCachingStore(store, s.CacheBytes, nil), nil
	}
	return store, nil
}

func (s StoreConfig) backend(ctx context.Context) (blobstore.Store, error) {
	switch s.Type {
	case "", "local":
		if s.Path == "" {
			return nil, errors.New("store: path is required")
		}
		return blobstore.NewLocalStore(s.Path), nil
	case "s3":
		if s.Bucket == "" {
			return nil, errNoBucket
		}
		var opts []s3store.Option
		if s.Prefix != "" {
			opts = append(opts, s3store.WithPrefix(s.Prefix))
		}
		if s.Region != "" {
			opts = append(opts, s3store.WithRegion(s.Region))
		}
		if s.Endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(s.Endpoint))
		}
		return s3store.New(ctx, s.Bucket, opts...)
	case "minio":
		if s.Bucket == "" {
			return nil, errNoBucket
		}
		access, secret := s.AccessKey, s.SecretKey
		if access == "" {
			access = os.Getenv("MINIO_ACCESS_KEY")
		}
		if secret == "" {
			secret = os.Getenv("MINIO_SECRET_KEY")
		}
		client, err := minio.New(s.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(access, secret, ""),
			Secure: s.UseSSL,
			Region: s.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("store: minio client: %w", err)
		}
		return miniostore.NewStore(client, s.Bucket, s.Prefix), nil
	}
	return nil, fmt.Errorf("store: unknown type %q", s.Type)
}
