package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/soarespng/cv-scanner/internal/services"
)

// NewStorageService builds the backend selected by STORAGE_BACKEND and makes
// sure it is ready to accept uploads.
func NewStorageService(ctx context.Context, cfg *Config, log *zap.Logger) (services.StorageService, error) {
	var storage services.StorageService

	switch cfg.Storage.Backend {
	case StorageBackendLocal, "":
		storage = services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	case StorageBackendS3:
		client, err := newS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		storage = services.NewS3StorageService(client, services.S3StorageOptions{
			Bucket:        cfg.S3.Bucket,
			Region:        cfg.S3.Region,
			PublicBaseURL: cfg.S3.PublicBaseURL,
			MaxFileSize:   cfg.Storage.MaxFileSize,
		}, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if err := storage.EnsureReady(ctx); err != nil {
		return nil, err
	}

	log.Info("storage ready", zap.String("backend", cfg.Storage.Backend))
	return storage, nil
}

func newS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}
