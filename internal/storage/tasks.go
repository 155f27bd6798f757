package storage

import (
	"encoding/json"
	"fmt"

	"github.com/sandeepkv93/taskboard/internal/model"
)

// SaveTask appends task to the stored collection. Ids are not checked for
// uniqueness.
func (s *Store) SaveTask(task model.Task) error {
	return s.appendEntity(TaskKey, task)
}

// Tasks returns every stored task in stored order, or an empty slice when
// nothing has been saved yet.
func (s *Store) Tasks() ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, _, err := decodeAll[model.Task](s, TaskKey)
	return tasks, err
}

func (s *Store) Task(id string) (model.Task, error) {
	tasks, err := s.Tasks()
	if err != nil {
		return model.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, ErrNotFound
}

// UpdateTask overlays every field of task onto the stored task with the same
// id. Unknown ids leave the collection unchanged.
func (s *Store) UpdateTask(task model.Task) error {
	obj, err := toObject(task)
	if err != nil {
		return fmt.Errorf("storage: encode task: %w", err)
	}
	return s.merge(TaskKey, "update", task.ID, obj)
}

// PatchTask overlays only the fields set in patch.
func (s *Store) PatchTask(id string, patch model.TaskPatch) error {
	obj, err := toObject(patch)
	if err != nil {
		return fmt.Errorf("storage: encode task patch: %w", err)
	}
	return s.merge(TaskKey, "patch", id, obj)
}

func (s *Store) UpdateTaskStatus(id string, status model.Status) error {
	raw, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return s.merge(TaskKey, "update_status", id, object{"status": raw})
}

func (s *Store) DeleteTask(id string) error {
	return s.remove(TaskKey, id)
}

// UpsertTask updates the task with the same id, or appends it.
func (s *Store) UpsertTask(task model.Task) error {
	return s.upsert(TaskKey, task)
}
