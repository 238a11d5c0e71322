// Package storage provides S3-backed blob storage for generated images.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/receitario/v1/internal/infrastructure/config"
	"github.com/receitario/v1/internal/ports/outbound"
)

// S3Storage implements the StorageService interface on top of S3
type S3Storage struct {
	uploader *s3manager.Uploader
	client   *s3.S3
	bucket   string
	cdnBase  string
	logger   *zap.Logger
}

// NewS3Storage creates a new S3 storage service
func NewS3Storage(cfg config.AWSConfig, logger *zap.Logger) (outbound.StorageService, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		// Custom endpoint supports S3-compatible stores in development
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Storage{
		uploader: s3manager.NewUploader(sess),
		client:   s3.New(sess),
		bucket:   cfg.S3Bucket,
		cdnBase:  strings.TrimRight(cfg.CDNBaseURL, "/"),
		logger:   logger.Named("s3-storage"),
	}, nil
}

// UploadImage stores raw image bytes under the given folder and returns
// the public URL
func (s *S3Storage) UploadImage(ctx context.Context, data []byte, folder string) (string, error) {
	contentType := http.DetectContentType(data)
	ext := extensionFor(contentType)
	key := fmt.Sprintf("%s/%d-%s%s", folder, time.Now().Unix(), uuid.NewString()[:8], ext)

	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := s.publicURL(key)
	s.logger.Info("Image uploaded",
		zap.String("key", key),
		zap.Int("bytes", len(data)))

	return url, nil
}

// Delete removes an object by key
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) publicURL(key string) string {
	if s.cdnBase != "" {
		return s.cdnBase + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
