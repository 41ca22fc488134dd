package services

import (
	"context"
	"sync"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/wkaram/expense_tracker_app/internal/core/ports/repositories"
)

// Store is the explicit state container for the whole application document.
// It owns the in-memory AppData, guards it with a mutex (one mutation at a
// time), and writes the full document through to the repository after every
// successful mutation. Operations never see partially-applied state: the
// mutation runs against a clone, which only becomes current once both the
// mutation and the persist succeed.
type Store struct {
	mu   sync.Mutex
	data domain.AppData
	repo portsrepo.AppDataRepository
}

// NewStore creates a store backed by the given repository. Call Load before
// first use.
func NewStore(repo portsrepo.AppDataRepository) *Store {
	return &Store{
		repo: repo,
		data: domain.DefaultAppData(),
	}
}

// Load reads the persisted document and normalizes it into memory. A missing
// or unparseable blob falls back to the default document.
func (s *Store) Load(ctx context.Context) error {
	raw, found, err := s.repo.LoadAppData(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !found {
		s.data = domain.DefaultAppData()
		return nil
	}
	s.data = domain.NormalizeAppData(raw)
	return nil
}

// Replace substitutes the in-memory document wholesale with an externally
// supplied one (e.g. the storage changed underneath us). Last writer wins:
// no merge, no conflict detection, and nothing is written back.
func (s *Store) Replace(raw domain.AppData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = domain.NormalizeAppData(raw)
}

// View runs fn against the current document under the lock. fn must not
// retain references past its return.
func (s *Store) View(fn func(data *domain.AppData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() domain.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Update applies fn to a clone of the document and, when fn succeeds,
// persists the result and makes it current. When fn or the persist fails the
// previous document stays in place untouched.
func (s *Store) Update(ctx context.Context, fn func(data *domain.AppData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.repo.SaveAppData(ctx, next); err != nil {
		return err
	}
	s.data = next
	return nil
}
