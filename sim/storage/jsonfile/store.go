// Package jsonfile stores tournament histories as one JSON document per name.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inference-sim/match-sim/sim/storage"
)

const ext = ".json"

// Store keeps histories in dir/<name>.json.
type Store struct {
	dir string
}

// Open creates dir if needed and returns a store rooted there.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Store{dir: filepath.Clean(dir)}, nil
}

func (s *Store) path(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid history name %q", name)
	}
	return filepath.Join(s.dir, name+ext), nil
}

// Save writes h, replacing any history with the same name. The file is
// written to a temporary name first so a failed save leaves the old one.
func (s *Store) Save(ctx context.Context, name string, h storage.History) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// Load reads the history saved under name.
func (s *Store) Load(ctx context.Context, name string) (storage.History, error) {
	if err := ctx.Err(); err != nil {
		return storage.History{}, err
	}
	path, err := s.path(name)
	if err != nil {
		return storage.History{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return storage.History{}, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}
	if err != nil {
		return storage.History{}, fmt.Errorf("load %s: %w", name, err)
	}
	var h storage.History
	if err := json.Unmarshal(data, &h); err != nil {
		return storage.History{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return h, nil
}

// List returns the saved history names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list histories: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op; it satisfies storage.Store.
func (s *Store) Close() error { return nil }
