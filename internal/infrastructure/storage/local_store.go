package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rolfovo/gpx-analyzer/internal/domain/rides"
	"github.com/rolfovo/gpx-analyzer/internal/pkg/logger"
)

type localTrackStore struct {
	dir    string
	logger logger.Logger
}

// NewLocalTrackStore creates a TrackStore keeping raw GPX files in a local
// directory. Track references are absolute file paths.
func NewLocalTrackStore(dir string, logger logger.Logger) (rides.TrackStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create track directory %s: %w", dir, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve track directory %s: %w", dir, err)
	}

	return &localTrackStore{dir: abs, logger: logger}, nil
}

func (s *localTrackStore) Upload(ctx context.Context, name string, data []byte) (string, error) {
	dest := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(dest, data, 0640); err != nil {
		return "", fmt.Errorf("failed to write track file %s: %w", dest, err)
	}

	s.logger.Info("Stored track file ", dest)
	return dest, nil
}

func (s *localTrackStore) Download(ctx context.Context, ref string) ([]byte, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("track file %s: %w", ref, rides.ErrTrackMissing)
		}
		return nil, fmt.Errorf("failed to read track file %s: %w", ref, err)
	}
	return data, nil
}

func (s *localTrackStore) Delete(ctx context.Context, ref string) error {
	if err := os.Remove(ref); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("track file %s: %w", ref, rides.ErrTrackMissing)
		}
		return fmt.Errorf("failed to delete track file %s: %w", ref, err)
	}

	s.logger.Info("Deleted track file ", ref)
	return nil
}

func (s *localTrackStore) PresignURL(ctx context.Context, ref string, expiry time.Duration) (string, error) {
	return "", fmt.Errorf("local track store: %w", rides.ErrPresignUnsupported)
}
