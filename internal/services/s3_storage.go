package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// S3API is the subset of *s3.Client the object storage backend needs.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type S3StorageOptions struct {
	Bucket        string
	Region        string
	PublicBaseURL string
	MaxFileSize   int64
}

type s3StorageService struct {
	client S3API
	opts   S3StorageOptions
	log    *zap.Logger
}

func NewS3StorageService(client S3API, opts S3StorageOptions, log *zap.Logger) StorageService {
	return &s3StorageService{
		client: client,
		opts:   opts,
		log:    log,
	}
}

func (s *s3StorageService) EnsureReady(ctx context.Context) error {
	if s.opts.Bucket == "" {
		return wrapKind(ErrStorage, errors.New("S3 bucket is not configured"))
	}

	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.opts.Bucket)}); err != nil {
		return wrapKind(ErrStorage, fmt.Errorf("bucket %s is not reachable: %w", s.opts.Bucket, err))
	}

	return nil
}

func (s *s3StorageService) SaveFile(ctx context.Context, filename string, data []byte, contentType string) (*StoredFile, error) {
	if err := ValidatePDFUpload(filename, data, s.opts.MaxFileSize); err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType = pdfMIME
	}

	key := newLocator(filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.opts.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, wrapKind(ErrStorage, fmt.Errorf("failed to upload object: %w", err))
	}

	s.log.Debug("object uploaded", zap.String("bucket", s.opts.Bucket), zap.String("key", key))

	return &StoredFile{
		Locator: key,
		URL:     s.objectURL(key),
		Backend: "s3",
	}, nil
}

// ResolveFile confirms the object exists and hands back its public URL. The
// content itself is never proxied.
func (s *s3StorageService) ResolveFile(ctx context.Context, locator string) (*ResolvedFile, error) {
	if !isSafeLocator(locator) {
		return nil, wrapKind(ErrNotFound, fmt.Errorf("file %s not found", locator))
	}

	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(locator),
	})
	if err != nil {
		if isMissingObject(err) {
			return nil, wrapKind(ErrNotFound, fmt.Errorf("file %s not found", locator))
		}
		return nil, wrapKind(ErrStorage, fmt.Errorf("failed to stat object: %w", err))
	}

	contentType := pdfMIME
	if out.ContentType != nil && *out.ContentType != "" {
		contentType = *out.ContentType
	}

	return &ResolvedFile{
		Locator:     locator,
		ContentType: contentType,
		RedirectURL: s.objectURL(locator),
	}, nil
}

func (s *s3StorageService) DeleteFile(ctx context.Context, locator string) error {
	if !isSafeLocator(locator) {
		return wrapKind(ErrNotFound, fmt.Errorf("file %s not found", locator))
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(locator),
	})
	if err != nil {
		return wrapKind(ErrStorage, fmt.Errorf("failed to delete object: %w", err))
	}
	return nil
}

func (s *s3StorageService) objectURL(key string) string {
	escaped := url.PathEscape(key)
	if s.opts.PublicBaseURL != "" {
		return strings.TrimRight(s.opts.PublicBaseURL, "/") + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, escaped)
}

func isMissingObject(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}

	return false
}
