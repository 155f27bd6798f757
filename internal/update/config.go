package update

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sandeepkv93/taskboard/internal/dateutil"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/storage"
)

// Store is the part of storage.Store the UI drives.
type Store interface {
	Tasks() ([]model.Task, error)
	Categories() ([]model.Category, error)
	SaveTask(model.Task) error
	UpdateTask(model.Task) error
	UpdateTaskStatus(id string, status model.Status) error
	DeleteTask(id string) error
	SaveCategory(model.Category) error
	UpsertCategory(model.Category) error
}

type Options struct {
	// Store defaults to an in-memory store.
	Store Store
	// Clock defaults to the system clock when left zero.
	Clock  dateutil.Clock
	Logger *log.Logger
	// Theme is the glamour style used for description previews.
	Theme string
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Store == nil {
		o.Store = storage.NewStore(storage.NewMemoryKV(), storage.WithLogger(o.Logger))
	}
	if strings.TrimSpace(o.Theme) == "" {
		o.Theme = "dark"
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}
