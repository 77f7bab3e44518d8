package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/config"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const gpxContentType = "application/gpx+xml"

type r2TrackStore struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	publicBaseURL string
	logger        logger.Logger
}

// NewR2TrackStore creates a TrackStore backed by a Cloudflare R2 bucket via the
// S3 API. Track references are s3://bucket/key, or public https URLs when a
// public base URL is configured.
func NewR2TrackStore(ctx context.Context, settings *config.StorageSettings, logger logger.Logger) (rides.TrackStore, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage settings: %w", err)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.R2AccessKeyID, settings.R2SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 client config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", settings.R2AccountID)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &r2TrackStore{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        settings.R2Bucket,
		publicBaseURL: strings.TrimRight(settings.R2PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

func (s *r2TrackStore) Upload(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Base(name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(gpxContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload track object %s: %w", key, err)
	}

	s.logger.Info("Stored track object ", key, " in bucket ", s.bucket)

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

func (s *r2TrackStore) Download(ctx context.Context, ref string) ([]byte, error) {
	bucket, key, err := splitObjectRef(ref)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch track object %s: %w", ref, rides.ErrTrackMissing)
	}
	defer func() {
		_ = out.Body.Close()
	}()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read track object %s: %w", ref, err)
	}
	return data, nil
}

func (s *r2TrackStore) Delete(ctx context.Context, ref string) error {
	bucket, key, err := splitObjectRef(ref)
	if err != nil {
		return err
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete track object %s: %w", ref, err)
	}

	s.logger.Info("Deleted track object ", ref)
	return nil
}

func (s *r2TrackStore) PresignURL(ctx context.Context, ref string, expiry time.Duration) (string, error) {
	bucket, key, err := splitObjectRef(ref)
	if err != nil {
		return "", err
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign track object %s: %w", ref, err)
	}

	return req.URL, nil
}

// splitObjectRef parses an s3://bucket/key track reference.
func splitObjectRef(ref string) (bucket, key string, err error) {
	rest, found := strings.CutPrefix(ref, "s3://")
	if !found {
		return "", "", fmt.Errorf("track reference %q is not an object reference", ref)
	}

	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("track reference %q has no bucket/key pair", ref)
	}
	return bucket, key, nil
}
