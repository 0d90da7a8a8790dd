package app

import (
	"context"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/archive"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
)

// InitArchiver returns the S3 archiver when a bucket is configured and a no-op otherwise
func (a *application) InitArchiver(log *logger.Logger) (domain.TournamentArchiver, error) {
	log = log.Named("archive")
	cfg := a.config.Archive
	if cfg.Bucket == "" {
		return archive.NewNoopArchiver(log), nil
	}

	ctx, cancel := context.WithTimeout(a.ctx, 10*time.Second)
	defer cancel()

	client, err := archive.NewS3Client(ctx, archive.Config{
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Prefix:    cfg.Prefix,
	})
	if err != nil {
		return nil, err
	}
	return archive.NewS3Archiver(client, cfg.Bucket, cfg.Prefix, log), nil
}
