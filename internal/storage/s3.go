package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/bilgisen/ytfeed/internal/models"
)

const latestKey = "snapshots/latest.json"

// S3Store archives snapshots in an S3-compatible bucket such as Cloudflare R2.
type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKey, cfg.R2SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2Endpoint)
		o.UsePathStyle = true
	})

	return &S3Store{client: client, bucket: cfg.R2Bucket}, nil
}

// SnapshotKey is the dated object key a snapshot is archived under.
func SnapshotKey(snap *models.VideosResponse) string {
	return fmt.Sprintf("snapshots/%s/%d.json", snap.FetchedAt.UTC().Format("2006/01/02"), snap.FetchedAt.Unix())
}

// Save writes the dated object and then repoints latest.json at the same content.
func (s *S3Store) Save(ctx context.Context, snap *models.VideosResponse) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	for _, key := range []string{SnapshotKey(snap), latestKey} {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return fmt.Errorf("put %s: %w", key, err)
		}
	}
	return nil
}

func (s *S3Store) Latest(ctx context.Context) (*models.VideosResponse, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(latestKey),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("get %s: %w", latestKey, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", latestKey, err)
	}

	var snap models.VideosResponse
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// NewArchive picks the R2 archive when it is configured and the local file store otherwise.
func NewArchive(ctx context.Context, cfg *config.Config) (Archive, error) {
	if cfg.R2Enabled() {
		s, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	fs, err := NewFileStore(cfg.SnapshotPath)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
