package vip

import (
	"fmt"
	"sync"
)

// Repository knows how to look up a template by name.
type Repository interface {
	Lookup(name string) (*VIP, bool)
}

// MemoryRepository holds parsed templates in declaration order.
type MemoryRepository struct {
	mu     sync.RWMutex
	byName map[string]*VIP
	order  []*VIP
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byName: make(map[string]*VIP),
	}
}

// Add registers a template. Names must be unique.
func (r *MemoryRepository) Add(v *VIP) error {
	if v == nil {
		return fmt.Errorf("vip: nil template")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[v.Name]; ok {
		return fmt.Errorf("vip: duplicate template %q", v.Name)
	}
	r.byName[v.Name] = v
	r.order = append(r.order, v)
	return nil
}

// AddConfig parses c and registers the result.
func (r *MemoryRepository) AddConfig(c Config) (*VIP, error) {
	v, err := New(c)
	if err != nil {
		return nil, err
	}
	if err := r.Add(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Lookup implements the Repository interface.
func (r *MemoryRepository) Lookup(name string) (*VIP, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byName[name]
	return v, ok
}

// All returns the templates in the order they were added.
func (r *MemoryRepository) All() []*VIP {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*VIP, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered templates.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
