// Package session manages the lifecycle of assessment sessions: creating a
// fresh profile, serializing concurrent updates, and finishing the intake.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finnav/finnav/internal/calculation"
	"github.com/finnav/finnav/internal/domain"
)

// ErrNotFound is returned when a session id is unknown to the store.
var ErrNotFound = fmt.Errorf("session not found")

// NewProfile creates a blank profile with a fresh session id, creation
// timestamps, and the intake defaults preselected.
func NewProfile() domain.Profile {
	now := time.Now().UTC()
	return domain.Profile{
		Meta: domain.Meta{
			SessionID:     uuid.NewString(),
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
		Basic: domain.Basic{
			HouseholdType: domain.HouseholdSingle,
			Employment:    domain.EmploymentEmployed,
		},
		Protection: domain.Protection{
			PrivatePension:   domain.AnswerUnknown,
			IncomeProtection: domain.AnswerUnknown,
		},
	}
}

// Store keeps live sessions in memory, keyed by session id. All methods are
// safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{profiles: make(map[string]domain.Profile)}
}

// Create starts a new session and returns its profile.
func (s *Store) Create() domain.Profile {
	p := NewProfile()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.Meta.SessionID] = p
	return p
}

// Get returns the profile for a session id.
func (s *Store) Get(id string) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return domain.Profile{}, ErrNotFound
	}
	return p, nil
}

// Update applies fn to the stored profile under the store lock and returns
// the updated profile. The session id and creation time cannot be changed by
// fn; the update timestamp is refreshed on every call.
func (s *Store) Update(id string, fn func(domain.Profile) (domain.Profile, error)) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return domain.Profile{}, ErrNotFound
	}

	updated, err := fn(p)
	if err != nil {
		return domain.Profile{}, err
	}

	updated.Meta.SessionID = p.Meta.SessionID
	updated.Meta.CreatedAt = p.Meta.CreatedAt
	updated.Meta.LastUpdatedAt = time.Now().UTC()

	s.profiles[id] = updated
	return updated, nil
}

// Finish completes the basic intake: it scores the profile, derives the
// module recommendations, and marks the session finished. Finishing an
// already finished session just re-scores it.
func (s *Store) Finish(id string) (domain.Profile, error) {
	return s.Update(id, func(p domain.Profile) (domain.Profile, error) {
		p = calculation.CalculateScores(p)
		p.Meta.IsFinished = true
		return p, nil
	})
}

// Reset discards a session.
func (s *Store) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}
