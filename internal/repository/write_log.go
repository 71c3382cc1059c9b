package repository

import (
	"context"
	"sync"
)

// WriteLog remembers which sheet rows were already sent.
type WriteLog interface {
	// Claim returns false when key was claimed before.
	Claim(ctx context.Context, key, sheetName string) (bool, error)
	Release(ctx context.Context, key string) error
}

type memoryWriteLog struct {
	mu   sync.Mutex
	keys map[string]string
}

func NewMemoryWriteLog() *memoryWriteLog {
	return &memoryWriteLog{keys: make(map[string]string)}
}

func (l *memoryWriteLog) Claim(ctx context.Context, key, sheetName string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.keys[key]; ok {
		return false, nil
	}
	l.keys[key] = sheetName
	return true, nil
}

func (l *memoryWriteLog) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.keys, key)
	return nil
}
