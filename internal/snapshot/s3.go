package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/yatelabs/faire-sync/internal/config"
)

// S3Archiver uploads each freshly fetched raw payload to an object store
// for later inspection. Archiving is best-effort: callers log failures and
// carry on.
type S3Archiver struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewS3Archiver creates an archiver for the configured bucket. It works
// against AWS S3 or any S3-compatible endpoint.
func NewS3Archiver(cfg config.S3Config, logger *zap.Logger) (*S3Archiver, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("snapshot: loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archiver{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

// Archive uploads the payload under a timestamped key.
func (a *S3Archiver) Archive(ctx context.Context, payload []byte) error {
	key := fmt.Sprintf("snapshots/orders-%s.json", time.Now().UTC().Format("20060102T150405Z"))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("snapshot: archiving to s3://%s/%s: %w", a.bucket, key, err)
	}

	a.logger.Info("Snapshot archived",
		zap.String("bucket", a.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(payload)),
	)
	return nil
}
