package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type fileBackend struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// NewFileBackend returns a Backend persisted as a single JSON object at path.
// A missing file starts empty; a corrupt file is an error.
func NewFileBackend(path string) (Backend, error) {
	b := &fileBackend{path: path, data: make(map[string]json.RawMessage)}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return b, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(raw) == 0 {
		return b, nil
	}
	if err := json.Unmarshal(raw, &b.data); err != nil {
		return nil, fmt.Errorf("decode store file: %w", err)
	}
	if b.data == nil {
		b.data = make(map[string]json.RawMessage)
	}
	return b, nil
}

func (b *fileBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (b *fileBackend) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	prev, had := b.data[key]
	b.data[key] = json.RawMessage(append([]byte(nil), value...))
	if err := b.flush(); err != nil {
		if had {
			b.data[key] = prev
		} else {
			delete(b.data, key)
		}
		return err
	}
	return nil
}

// flush writes the whole document through a temp file and rename. Caller holds mu.
func (b *fileBackend) flush() error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	raw, err := json.MarshalIndent(b.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
