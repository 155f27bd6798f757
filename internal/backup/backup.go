// Package backup moves the task and category collections in and out of a
// single versioned JSON document.
package backup

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sandeepkv93/taskboard/internal/model"
)

const Version = 1

const schemaURL = "taskboard-backup.schema.json"

//go:embed schema.json
var schemaJSON []byte

var ErrInvalidDocument = errors.New("backup: invalid document")

type Document struct {
	Version    int              `json:"version"`
	ExportedAt string           `json:"exportedAt,omitempty"`
	Tasks      []model.Task     `json:"tasks"`
	Categories []model.Category `json:"categories"`
}

type Source interface {
	Tasks() ([]model.Task, error)
	Categories() ([]model.Category, error)
}

type Sink interface {
	UpsertTask(model.Task) error
	UpsertCategory(model.Category) error
}

type Result struct {
	Tasks      int
	Categories int
}

// FieldError is one schema violation. Path is a dotted location such as
// tasks[2].priority.
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			compileErr = fmt.Errorf("backup: load schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("backup: compile schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Export writes every task and category as one indented document.
func Export(src Source, w io.Writer, now time.Time) error {
	tasks, err := src.Tasks()
	if err != nil {
		return fmt.Errorf("backup: read tasks: %w", err)
	}
	cats, err := src.Categories()
	if err != nil {
		return fmt.Errorf("backup: read categories: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	if cats == nil {
		cats = []model.Category{}
	}
	doc := Document{
		Version:    Version,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Tasks:      tasks,
		Categories: cats,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("backup: encode: %w", err)
	}
	return nil
}

// Validate checks raw against the backup schema and returns the decoded
// document. Every violation is reported, joined into one error that wraps
// ErrInvalidDocument.
func Validate(raw []byte) (Document, error) {
	s, err := schema()
	if err != nil {
		return Document{}, err
	}
	var instance interface{}
	if err := json.Unmarshal(raw, &instance); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := s.Validate(instance); err != nil {
		var fields []error
		collect(err, &fields)
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(fields...))
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	// The schema accepts whitespace-only ids; the model does not.
	var fields []error
	for i, t := range doc.Tasks {
		if err := t.CheckEnums(); err != nil {
			fields = append(fields, FieldError{Path: fmt.Sprintf("tasks[%d]", i), Message: err.Error()})
		}
	}
	for i, c := range doc.Categories {
		if err := c.Validate(); err != nil {
			fields = append(fields, FieldError{Path: fmt.Sprintf("categories[%d]", i), Message: err.Error()})
		}
	}
	if len(fields) > 0 {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(fields...))
	}
	return doc, nil
}

// Import validates the whole document before touching dst, then upserts
// categories followed by tasks. Items already present by id are overwritten.
func Import(dst Sink, r io.Reader) (Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("backup: read: %w", err)
	}
	doc, err := Validate(raw)
	if err != nil {
		return Result{}, err
	}
	var res Result
	for _, c := range doc.Categories {
		if err := dst.UpsertCategory(c); err != nil {
			return res, fmt.Errorf("backup: import category %s: %w", c.ID, err)
		}
		res.Categories++
	}
	for _, t := range doc.Tasks {
		if err := dst.UpsertTask(t); err != nil {
			return res, fmt.Errorf("backup: import task %s: %w", t.ID, err)
		}
		res.Tasks++
	}
	return res, nil
}

func collect(err error, out *[]error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		*out = append(*out, err)
		return
	}
	if len(ve.Causes) == 0 {
		*out = append(*out, FieldError{Path: pointerToPath(ve.InstanceLocation), Message: ve.Message})
		return
	}
	for _, cause := range ve.Causes {
		collect(cause, out)
	}
}

// pointerToPath turns /tasks/2/priority into tasks[2].priority.
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
