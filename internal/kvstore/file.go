package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileStore implements Store with one JSON file per key inside a root
// directory. It is the on-device storage backend: no server, durable across
// restarts.
type fileStore struct {
	root   string
	logger zerolog.Logger
}

// NewFileStore creates a file-backed document store rooted at dir, creating
// the directory if needed.
func NewFileStore(dir string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	return &fileStore{
		root:   dir,
		logger: logger.With().Str("store", "file").Logger(),
	}, nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.root, key+".json")
}

// Get retrieves the document stored under key.
func (s *fileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to read document")
		return nil, fmt.Errorf("failed to read document %s: %w", key, err)
	}

	return data, nil
}

// Set durably stores value under key. The write goes to a temp file first and
// is renamed into place so readers never observe a partial document.
func (s *fileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.root, key+".*.tmp")
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to create temp file")
		return fmt.Errorf("failed to write document %s: %w", key, err)
	}

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		s.logger.Error().Err(err).Str("key", key).Msg("failed to write temp file")
		return fmt.Errorf("failed to write document %s: %w", key, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write document %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		s.logger.Error().Err(err).Str("key", key).Msg("failed to replace document")
		return fmt.Errorf("failed to write document %s: %w", key, err)
	}

	s.logger.Debug().Str("key", key).Int("bytes", len(value)).Msg("document written")

	return nil
}

// Delete removes the document stored under key.
func (s *fileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to delete document")
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}

	return nil
}

// Close is a no-op for the file store.
func (s *fileStore) Close() error {
	return nil
}
