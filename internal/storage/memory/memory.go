// Package memory is a volatile storage.Store, used for tests and throwaway runs.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu     sync.Mutex
	values map[string]string
	order  []string
}

func New() *Store {
	return &Store{values: map[string]string{}}
}

// NewFromMap seeds the store; keys enumerate in the order given.
func NewFromMap(keys []string, values map[string]string) *Store {
	s := New()
	for _, k := range keys {
		if v, ok := values[k]; ok {
			s.set(k, v)
		}
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, value)
	return nil
}

func (s *Store) set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...), nil
}
