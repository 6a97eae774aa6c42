// Package memstore provides an in-memory implementation of the repository
// interfaces. It enforces the same unique and foreign key constraints as the
// Postgres schema and is used for local runs without a database and in tests.
package memstore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Marga-Ghale/ora-lists/internal/repository"
)

// Store keeps every entity in maps guarded by a single mutex, so each
// operation is atomic with respect to the others.
type Store struct {
	mu         sync.RWMutex
	profiles   map[string]repository.Profile
	lists      map[string]repository.List
	members    map[string]repository.Member
	categories map[string]repository.Category
	items      map[string]repository.Item
	now        func() time.Time
}

func New() *Store {
	return &Store{
		profiles:   make(map[string]repository.Profile),
		lists:      make(map[string]repository.List),
		members:    make(map[string]repository.Member),
		categories: make(map[string]repository.Category),
		items:      make(map[string]repository.Item),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// NewRepositories returns a repository container backed by a fresh Store.
func NewRepositories() *repository.Repositories {
	return New().Repositories()
}

func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		ProfileRepo: &profileRepository{s},
		ListRepo:    &listRepository{s},
		ContentRepo: &contentRepository{s},
		StatsRepo:   &statsRepository{s},
	}
}

func duplicate(constraint string) error {
	return fmt.Errorf("%w (%s)", repository.ErrDuplicate, constraint)
}

func foreignKey(constraint string) error {
	return fmt.Errorf("%w (%s)", repository.ErrForeignKey, constraint)
}

// profileOf returns a copy of the stored profile, nil when missing.
// Callers hold the lock.
func (s *Store) profileOf(id string) *repository.Profile {
	p, ok := s.profiles[id]
	if !ok {
		return nil
	}
	return &p
}

func (s *Store) listOf(id string) *repository.List {
	l, ok := s.lists[id]
	if !ok {
		return nil
	}
	l.Members = nil
	return &l
}

func (s *Store) isMember(profileID, listID string) bool {
	for _, m := range s.members {
		if m.ListID == listID && m.ProfileID == profileID {
			return true
		}
	}
	return false
}

// membersOf returns the list's members with their profiles, ordered by role
// and then profile name.
func (s *Store) membersOf(listID string) []*repository.Member {
	members := []*repository.Member{}
	for _, m := range s.members {
		if m.ListID != listID {
			continue
		}
		m := m
		m.Profile = s.profileOf(m.ProfileID)
		members = append(members, &m)
	}
	sort.Slice(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if a.Role != b.Role {
			return a.Role < b.Role
		}
		an, bn := "", ""
		if a.Profile != nil {
			an = a.Profile.Name
		}
		if b.Profile != nil {
			bn = b.Profile.Name
		}
		if an != bn {
			return an < bn
		}
		return a.ID < b.ID
	})
	return members
}
