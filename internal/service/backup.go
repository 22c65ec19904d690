package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lox/squares/internal/backup"
	"github.com/lox/squares/internal/store"
)

// ExportBackup returns both documents as one indented JSON envelope. Missing
// documents are exported as their defaults.
func (s *Service) ExportBackup(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, _, err := s.loadProps(ctx)
	if err != nil {
		return nil, err
	}
	st, _, err := s.loadSquares(ctx)
	if err != nil {
		return nil, err
	}
	return backup.Encode(backup.Backup{Props: p, Squares: st})
}

// ImportBackup replaces the stored documents with the halves present in data.
// The document is rejected whole if it is malformed or the board breaks an
// invariant, and present halves are written together.
func (s *Service) ImportBackup(ctx context.Context, data []byte) (backup.Backup, error) {
	b, err := backup.Decode(data)
	if err != nil {
		return backup.Backup{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var writes []store.Write
	if b.Props != nil {
		etag, err := s.currentETag(ctx, KeyProps)
		if err != nil {
			return backup.Backup{}, err
		}
		encoded, err := json.Marshal(b.Props)
		if err != nil {
			return backup.Backup{}, fmt.Errorf("encode props: %w", err)
		}
		writes = append(writes, store.Write{Key: KeyProps, Data: encoded, Expect: etag})
	}
	if b.Squares != nil {
		etag, err := s.currentETag(ctx, KeySquares)
		if err != nil {
			return backup.Backup{}, err
		}
		encoded, err := json.Marshal(b.Squares)
		if err != nil {
			return backup.Backup{}, fmt.Errorf("encode squares: %w", err)
		}
		writes = append(writes, store.Write{Key: KeySquares, Data: encoded, Expect: etag})
	}

	if err := s.kv.PutAll(ctx, writes); err != nil {
		return backup.Backup{}, fmt.Errorf("import backup: %w", err)
	}
	s.logger.Info("Backup imported", "props", b.Props != nil, "squares", b.Squares != nil)
	return b, nil
}

// currentETag reads the ETag of whatever is stored under key, without
// decoding it, so a corrupt document can still be replaced.
func (s *Service) currentETag(ctx context.Context, key string) (string, error) {
	_, etag, err := s.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return store.MustNotExist, nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return etag, nil
}
