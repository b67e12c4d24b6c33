// Package termcache remembers WordPress term ids (tags, categories) so each
// name is looked up on the platform only once.
package termcache

import (
	"strings"
	"sync"
)

// Cache maps (taxonomy, name) to a platform term id. Names are compared
// case-insensitively.
type Cache interface {
	Get(taxonomy, name string) (int, bool)
	Put(taxonomy, name string, id int) error
}

// Memory is a process-lifetime cache.
type Memory struct {
	mu    sync.RWMutex
	terms map[string]map[string]int
}

var _ Cache = (*Memory)(nil)

// NewMemory builds an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{terms: map[string]map[string]int{}}
}

// Get returns a cached id.
func (m *Memory) Get(taxonomy, name string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.terms[taxonomy][key(name)]
	return id, ok && id > 0
}

// Put stores an id; non-positive ids are ignored.
func (m *Memory) Put(taxonomy, name string, id int) error {
	if id <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.terms[taxonomy] == nil {
		m.terms[taxonomy] = map[string]int{}
	}
	m.terms[taxonomy][key(name)] = id
	return nil
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
