// Package file is a storage.Store persisted as a JSON snapshot.
//
// Every write rewrites the whole snapshot through a temporary file and a rename,
// so a crash mid-write leaves the previous snapshot intact. Writers hold an
// exclusive lock on a sibling ".lock" file and re-read the snapshot before
// applying their single-key change, so processes sharing one path only race on
// the same key.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type snapshot struct {
	SavedAt time.Time `json:"saved_at"`
	Entries []entry   `json:"entries"`
}

type Store struct {
	mu      sync.Mutex
	path    string
	entries []entry
}

// Open loads path if it exists; a missing file starts an empty store.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	s := &Store{path: path}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reload(); err != nil {
		return "", false, err
	}
	if i := s.index(key); i >= 0 {
		return s.entries[i].Value, true, nil
	}
	return "", false, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.update(ctx, func() bool {
		if i := s.index(key); i >= 0 {
			s.entries[i].Value = value
		} else {
			s.entries = append(s.entries, entry{Key: key, Value: value})
		}
		return true
	})
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.update(ctx, func() bool {
		i := s.index(key)
		if i < 0 {
			return false
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		return true
	})
}

func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reload(); err != nil {
		return nil, err
	}
	keys := make([]string, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.Key
	}
	return keys, nil
}

// update applies change to the latest snapshot under the file lock and saves
// the result when change reports a modification.
func (s *Store) update(ctx context.Context, change func() bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := acquire(ctx, s.path+".lock")
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.reload(); err != nil {
		return err
	}
	prev := append([]entry(nil), s.entries...)
	if !change() {
		return nil
	}
	if err := s.save(); err != nil {
		s.entries = prev
		return err
	}
	return nil
}

// reload replaces the cached entries with the snapshot on disk.
func (s *Store) reload() error {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.entries = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var snap snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	s.entries = snap.Entries
	return nil
}

func (s *Store) index(key string) int {
	for i, e := range s.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

func (s *Store) save() error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot{SavedAt: time.Now().UTC(), Entries: s.entries}); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
