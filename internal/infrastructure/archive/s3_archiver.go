package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Config holds the object storage settings
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

// ObjectPutter is the subset of the s3 client used by the archiver
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver writes tournament snapshots as JSON objects
type S3Archiver struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *logger.Logger
}

var _ domain.TournamentArchiver = (*S3Archiver)(nil)

// NewS3Client builds an s3 client. A custom endpoint selects path-style addressing for S3-compatible stores.
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive storage config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewS3Archiver creates an archiver writing into bucket under prefix
func NewS3Archiver(client ObjectPutter, bucket, prefix string, logger *logger.Logger) *S3Archiver {
	return &S3Archiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Archive uploads the snapshot to <prefix>/<tournament id>.json
func (a *S3Archiver) Archive(ctx context.Context, snapshot *domain.TournamentSnapshot) error {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := ObjectKey(a.prefix, snapshot.Tournament.ID)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return domain.NewExternalServiceError("archive", "put_object", err)
	}

	a.logger.Info("Tournament archived",
		zap.String("tournamentID", snapshot.Tournament.ID),
		zap.String("bucket", a.bucket),
		zap.String("key", key))
	return nil
}

// ObjectKey returns the object key of a tournament snapshot
func ObjectKey(prefix, tournamentID string) string {
	return path.Join(prefix, tournamentID+".json")
}

// NoopArchiver drops snapshots; used when no bucket is configured
type NoopArchiver struct {
	logger *logger.Logger
}

// NewNoopArchiver creates an archiver that only logs
func NewNoopArchiver(logger *logger.Logger) *NoopArchiver {
	return &NoopArchiver{logger: logger}
}

// Archive logs and discards the snapshot
func (a *NoopArchiver) Archive(_ context.Context, snapshot *domain.TournamentSnapshot) error {
	a.logger.Debug("Archive disabled, dropping snapshot", zap.String("tournamentID", snapshot.Tournament.ID))
	return nil
}
