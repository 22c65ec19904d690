package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lox/squares/internal/fileutil"
)

// File keeps each key in <dir>/<key>.json, replaced atomically on write.
//
// The ETag check and the rename happen under a process-local mutex, so two
// processes sharing a directory can still race between check and rename.
type File struct {
	dir string
	mu  sync.Mutex
}

// OpenFile creates dir if needed.
func OpenFile(dir string) (*File, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("store directory is required")
	}
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) read(key string) ([]byte, string, bool, error) {
	data, ok, err := fileutil.ReadFileIfExists(f.path(key))
	if err != nil {
		return nil, "", false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return nil, "", false, nil
	}
	return data, ETag(data), true, nil
}

func (f *File) Get(ctx context.Context, key string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if err := checkKey(key); err != nil {
		return nil, "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, etag, ok, err := f.read(key)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", ErrNotFound
	}
	return data, etag, nil
}

func (f *File) Put(ctx context.Context, key string, data []byte, expect string) (string, error) {
	if err := f.PutAll(ctx, []Write{{Key: key, Data: data, Expect: expect}}); err != nil {
		return "", err
	}
	return ETag(data), nil
}

func (f *File) PutAll(ctx context.Context, writes []Write) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkWrites(writes); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, w := range writes {
		_, etag, ok, err := f.read(w.Key)
		if err != nil {
			return err
		}
		if err := checkExpect(w.Key, etag, ok, w.Expect); err != nil {
			return err
		}
	}

	var batch fileutil.Batch
	for _, w := range writes {
		if err := batch.Add(f.path(w.Key), w.Data, 0o644); err != nil {
			return fmt.Errorf("stage %s: %w", w.Key, err)
		}
	}
	return batch.Commit()
}

func (f *File) Close() error { return nil }

var _ KV = (*File)(nil)
