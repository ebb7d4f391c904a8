package model

import (
	"fmt"
	"sync"
	"time"
)

// #region repository

// Repository is the storage abstraction the engine depends on. The
// engine never sees a concrete storage technology, so the same logic
// runs against the in-memory stub in tests.
type Repository interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// #endregion repository

// #region memory-repo

// MemoryRepository is a map-backed Repository for tests and ephemeral
// sessions.
type MemoryRepository struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: map[string][]byte{}}
}

// Get implements Repository.
func (r *MemoryRepository) Get(key string) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set implements Repository.
func (r *MemoryRepository) Set(key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	r.data[key] = v
	return nil
}

// Remove implements Repository.
func (r *MemoryRepository) Remove(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

// #endregion memory-repo

// #region model-store

// Store loads and saves predictor models through a Repository.
type Store struct {
	repo Repository
}

// NewStore wraps a repository.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

func modelKey(profileID string) string {
	return "model:" + profileID
}

// Load returns the profile's stored model, falling back to a fresh
// version-1 model when the record is missing, unreadable, or
// malformed. Load never fails outward.
func (s *Store) Load(profileID string) StoredModel {
	data, ok, err := s.repo.Get(modelKey(profileID))
	if err != nil || !ok {
		return Fresh(profileID)
	}
	return Decode(profileID, data)
}

// Save persists the model, stamping UpdatedAt.
func (s *Store) Save(m StoredModel) error {
	m.UpdatedAt = time.Now().UTC()
	data, err := Encode(m)
	if err != nil {
		return err
	}
	if err := s.repo.Set(modelKey(m.ProfileID), data); err != nil {
		return fmt.Errorf("save model %s: %w", m.ProfileID, err)
	}
	return nil
}

// Delete removes the profile's stored model.
func (s *Store) Delete(profileID string) error {
	return s.repo.Remove(modelKey(profileID))
}

// #endregion model-store
