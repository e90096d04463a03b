package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bilgisen/ytfeed/internal/models"
)

// ErrNoSnapshot is returned by Latest when nothing has been archived yet.
var ErrNoSnapshot = errors.New("no snapshot archived")

// Archive keeps aggregated envelopes durably so consumers can serve the
// last good result while the pipeline is unavailable.
type Archive interface {
	Save(ctx context.Context, snap *models.VideosResponse) error
	Latest(ctx context.Context) (*models.VideosResponse, error)
}

// FileStore archives snapshots as dated JSON files on local disk.
type FileStore struct {
	basePath string
	mu       sync.RWMutex
}

func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(basePath, "snapshots"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	return &FileStore{
		basePath: basePath,
	}, nil
}

// Save writes snap under snapshots/YYYY/MM/DD/<unix>_<handle>.json
func (s *FileStore) Save(ctx context.Context, snap *models.VideosResponse) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	datePath := filepath.Join(s.basePath, "snapshots", snap.FetchedAt.UTC().Format("2006/01/02"))
	if err := os.MkdirAll(datePath, 0755); err != nil {
		return fmt.Errorf("failed to create date directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	filename := fmt.Sprintf("%d_%s.json", snap.FetchedAt.Unix(), snap.Channel.Handle)
	tmp, err := os.CreateTemp(datePath, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(datePath, filename)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move snapshot file: %w", err)
	}
	return nil
}

// Latest returns the most recently fetched snapshot on disk
func (s *FileStore) Latest(ctx context.Context) (*models.VideosResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	root := filepath.Join(s.basePath, "snapshots")
	var latest string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		// dated directories and fixed-width unix prefixes sort chronologically
		if path > latest {
			latest = path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking the path: %w", err)
	}
	if latest == "" {
		return nil, ErrNoSnapshot
	}

	data, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", latest, err)
	}

	var snap models.VideosResponse
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", latest, err)
	}
	return &snap, nil
}
