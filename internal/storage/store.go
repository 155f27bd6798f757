package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Store keeps the task and category collections in a KV. It caches
// nothing: every call reads the whole collection and writes it back whole.
//
// The mutex only serializes callers inside this process. Two processes
// sharing a backend still race, and the last full write wins.
type Store struct {
	mu     sync.Mutex
	kv     KV
	logger *log.Logger
}

type Option func(*Store)

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// object is one stored element kept as raw JSON so merges preserve keys
// this program does not know about.
type object map[string]json.RawMessage

func (o object) id() string {
	raw, ok := o["id"]
	if !ok {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return ""
	}
	return id
}

func toObject(v any) (object, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make(object)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// load returns the raw collection. present is false when the key is absent,
// blank, or holds JSON null.
func (s *Store) load(key string) (raw []byte, present bool, err error) {
	value, ok, err := s.kv.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("storage: read %s: %w", key, err)
	}
	trimmed := strings.TrimSpace(value)
	if !ok || trimmed == "" || trimmed == "null" {
		return nil, false, nil
	}
	return []byte(trimmed), true, nil
}

func decodeAll[T any](s *Store, key string) ([]T, bool, error) {
	raw, present, err := s.load(key)
	if err != nil || !present {
		return []T{}, false, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, true, nil
}

func (s *Store) readObjects(key string) ([]object, error) {
	raw, present, err := s.load(key)
	if err != nil || !present {
		return []object{}, err
	}
	var out []object
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return out, nil
}

func (s *Store) writeObjects(key string, items []object) error {
	if items == nil {
		items = []object{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(payload)); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}

// modify runs one read-modify-write cycle over the collection at key.
func (s *Store) modify(key, op, id string, fn func([]object) ([]object, int)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readObjects(key)
	if err != nil {
		return err
	}
	items, touched := fn(items)
	if err := s.writeObjects(key, items); err != nil {
		return err
	}
	s.logger.Debug("collection written", "key", key, "op", op, "id", id, "matched", touched, "size", len(items))
	return nil
}

func (s *Store) appendEntity(key string, entity interface{ EntityID() string }) error {
	obj, err := toObject(entity)
	if err != nil {
		return fmt.Errorf("storage: encode entity: %w", err)
	}
	return s.modify(key, "save", entity.EntityID(), func(items []object) ([]object, int) {
		return append(items, obj), 1
	})
}

// merge overlays every key of patch onto each element whose id matches.
func (s *Store) merge(key, op, id string, patch object) error {
	return s.modify(key, op, id, func(items []object) ([]object, int) {
		return overlay(items, id, patch)
	})
}

func overlay(items []object, id string, patch object) ([]object, int) {
	touched := 0
	for i, item := range items {
		if item == nil || item.id() != id {
			continue
		}
		merged := make(object, len(item)+len(patch))
		for k, v := range item {
			merged[k] = v
		}
		for k, v := range patch {
			merged[k] = v
		}
		items[i] = merged
		touched++
	}
	return items, touched
}

func (s *Store) remove(key, id string) error {
	return s.modify(key, "delete", id, func(items []object) ([]object, int) {
		kept := make([]object, 0, len(items))
		for _, item := range items {
			if item != nil && item.id() == id {
				continue
			}
			kept = append(kept, item)
		}
		return kept, len(items) - len(kept)
	})
}

// upsert merges entity over the elements sharing its id, or appends it when
// no element matches.
func (s *Store) upsert(key string, entity interface{ EntityID() string }) error {
	obj, err := toObject(entity)
	if err != nil {
		return fmt.Errorf("storage: encode entity: %w", err)
	}
	id := entity.EntityID()
	return s.modify(key, "upsert", id, func(items []object) ([]object, int) {
		items, touched := overlay(items, id, obj)
		if touched == 0 {
			items = append(items, obj)
		}
		return items, touched
	})
}
