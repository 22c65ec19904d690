package store

import (
	"context"
	"slices"
	"sync"
)

type memEntry struct {
	data []byte
	etag string
}

// Memory is an in-process KV used by tests and throwaway boards.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memEntry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memEntry)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if err := checkKey(key); err != nil {
		return nil, "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, "", ErrNotFound
	}
	return slices.Clone(e.data), e.etag, nil
}

func (m *Memory) Put(ctx context.Context, key string, data []byte, expect string) (string, error) {
	if err := m.PutAll(ctx, []Write{{Key: key, Data: data, Expect: expect}}); err != nil {
		return "", err
	}
	return ETag(data), nil
}

func (m *Memory) PutAll(ctx context.Context, writes []Write) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkWrites(writes); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range writes {
		e, ok := m.entries[w.Key]
		if err := checkExpect(w.Key, e.etag, ok, w.Expect); err != nil {
			return err
		}
	}
	for _, w := range writes {
		m.entries[w.Key] = memEntry{data: slices.Clone(w.Data), etag: ETag(w.Data)}
	}
	return nil
}

func (m *Memory) Close() error { return nil }

var _ KV = (*Memory)(nil)
