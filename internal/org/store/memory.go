// Package store provides the organization directory backends. The in-memory
// implementation favors clarity over performance and is the default for tests
// and local runs.
package store

import (
	"context"
	"sync"

	"givelink/internal/org"
	"givelink/pkg/platform/sentinel"
)

// Memory keeps organizations in maps guarded by one mutex, so Create observes
// and updates all three uniqueness indexes atomically.
type Memory struct {
	mu      sync.RWMutex
	byID    map[string]org.Organization
	byEmail map[string]string
	byEIN   map[string]string
	byCode  map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		byID:    make(map[string]org.Organization),
		byEmail: make(map[string]string),
		byEIN:   make(map[string]string),
		byCode:  make(map[string]string),
	}
}

func (m *Memory) Create(_ context.Context, o org.Organization) (org.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[o.Email]; exists {
		return org.Organization{}, org.DuplicateKeyError{Field: org.FieldEmail}
	}
	if _, exists := m.byEIN[o.EIN]; exists {
		return org.Organization{}, org.DuplicateKeyError{Field: org.FieldEIN}
	}
	if _, exists := m.byCode[o.ShortCode]; exists {
		return org.Organization{}, org.DuplicateKeyError{Field: org.FieldShortCode}
	}

	id := o.ID.String()
	m.byID[id] = o
	m.byEmail[o.Email] = id
	m.byEIN[o.EIN] = id
	m.byCode[o.ShortCode] = id
	return o, nil
}

func (m *Memory) FindByEmail(_ context.Context, email string) (org.Organization, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup(m.byEmail, email)
}

func (m *Memory) FindByEIN(_ context.Context, ein string) (org.Organization, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup(m.byEIN, ein)
}

func (m *Memory) FindByShortCode(_ context.Context, code string) (org.Organization, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup(m.byCode, code)
}

// FindByID supports the redirect log's referential check in memory-backed runs.
func (m *Memory) FindByID(_ context.Context, id string) (org.Organization, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.byID[id]; ok {
		return o, nil
	}
	return org.Organization{}, sentinel.ErrNotFound
}

// Count reports how many organizations are stored. Tests use it to assert
// that rejected registrations perform no mutation.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

func (m *Memory) lookup(index map[string]string, key string) (org.Organization, error) {
	id, ok := index[key]
	if !ok {
		return org.Organization{}, sentinel.ErrNotFound
	}
	return m.byID[id], nil
}
