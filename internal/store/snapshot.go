package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"llm-investment-advisor/internal/ledger"
)

// FileStore persists one ledger snapshot as a JSON document at a fixed
// path. Every save rewrites the whole snapshot; a temp-file rename keeps
// a crashed write from leaving a partial snapshot behind.
type FileStore struct {
	path string
}

var _ ledger.Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

func (f *FileStore) Load() (*ledger.State, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %v: %w", f.path, err, ledger.ErrStoreUnavailable)
	}

	var state ledger.State
	if err := json.Unmarshal(b, &state); err != nil {
		return nil, fmt.Errorf("decode %s: %v: %w", f.path, err, ledger.ErrMalformedState)
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", f.path, err)
	}
	return &state, nil
}

func (f *FileStore) Save(state *ledger.State) error {
	b, err := json.MarshalIndent(state, "", "    ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %v: %w", dir, err, ledger.ErrStoreUnavailable)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %v: %w", tmp, err, ledger.ErrStoreUnavailable)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename %s: %v: %w", tmp, err, ledger.ErrStoreUnavailable)
	}
	return nil
}
