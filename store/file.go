package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/raywall/onet-interest-profiler/errs"
	"github.com/raywall/onet-interest-profiler/schema"
)

// FileBackend grava o documento em um arquivo local.
type FileBackend struct {
	path string
}

// NewFileBackend cria o backend. Caminho vazio equivale a DefaultPath.
func NewFileBackend(path string) *FileBackend {
	if path == "" {
		path = DefaultPath
	}
	return &FileBackend{path: path}
}

func (f *FileBackend) Location() string { return f.path }

// Put cria os diretórios pai e sobrescreve o arquivo.
func (f *FileBackend) Put(_ context.Context, data []byte) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &errs.IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return &errs.IOError{Op: "write", Path: f.path, Err: err}
	}
	return nil
}

func (f *FileBackend) Get(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &errs.NotFoundError{Path: f.path, Err: err}
		}
		return nil, &errs.IOError{Op: "read", Path: f.path, Err: err}
	}
	return data, nil
}

// Save persiste o conjunto em path (DefaultPath se vazio).
func Save(qs *schema.QuestionSet, path string) error {
	return SaveTo(context.Background(), NewFileBackend(path), qs)
}

// Load lê de volta um conjunto gravado por Save.
func Load(path string) (*schema.QuestionSet, error) {
	return LoadFrom(context.Background(), NewFileBackend(path))
}
