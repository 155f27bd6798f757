package storage

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	TaskKey     = "task_management_tasks"
	CategoryKey = "task_management_categories"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrCorrupt        = errors.New("storage: corrupted collection")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// KV is a synchronous string key-value store, the only durability layer.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// ClosableKV is a KV that owns a resource such as a file or database handle.
type ClosableKV interface {
	KV
	io.Closer
}

type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendMemory, BackendFile, BackendSQLite:
		return true
	default:
		return false
	}
}

// Open returns the backend named by backend, rooted at path where it needs one.
func Open(backend Backend, path string) (ClosableKV, error) {
	switch Backend(strings.ToLower(string(backend))) {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendFile:
		return NewFileKV(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Close() error { return nil }
