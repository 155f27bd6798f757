package storage

import (
	"fmt"

	"github.com/sandeepkv93/taskboard/internal/model"
)

func (s *Store) SaveCategory(cat model.Category) error {
	return s.appendEntity(CategoryKey, cat)
}

// Categories returns the stored categories. Only a missing (or null) value
// falls back to the seeded defaults; a stored empty list stays empty.
func (s *Store) Categories() ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cats, present, err := decodeAll[model.Category](s, CategoryKey)
	if err != nil {
		return nil, err
	}
	if !present {
		return model.DefaultCategories(), nil
	}
	return cats, nil
}

func (s *Store) UpdateCategory(cat model.Category) error {
	obj, err := toObject(cat)
	if err != nil {
		return fmt.Errorf("storage: encode category: %w", err)
	}
	return s.merge(CategoryKey, "update", cat.ID, obj)
}

func (s *Store) DeleteCategory(id string) error {
	return s.remove(CategoryKey, id)
}

func (s *Store) UpsertCategory(cat model.Category) error {
	return s.upsert(CategoryKey, cat)
}
