package candidates

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*Candidate
}

// NewMemory creates an in-process store, used by tests and dry runs.
func NewMemory() Store {
	return &memoryStore{items: make(map[int64]*Candidate)}
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) Create(_ context.Context, c *Candidate) (int64, error) {
	if err := Validate(c); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.items {
		if strings.EqualFold(existing.Email, c.Email) {
			return 0, fmt.Errorf("insert candidate: email %q already exists", c.Email)
		}
	}

	m.nextID++
	stored := *c
	stored.ID = m.nextID
	stored.Level = defaultLevel(c)
	m.items[stored.ID] = &stored

	return stored.ID, nil
}

func (m *memoryStore) Get(_ context.Context, id int64) (*Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *c
	return &copied, nil
}

func (m *memoryStore) List(_ context.Context) ([]*Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Candidate, 0, len(m.items))
	for _, c := range m.items {
		copied := *c
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memoryStore) UpdateFields(_ context.Context, id int64, fields Fields) error {
	if _, _, err := fields.columns(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}

	c.ExperienceYears = fields.ExperienceYears
	c.Level = fields.Level
	c.Skills = fields.Skills
	c.DocumentPath = fields.DocumentPath

	return nil
}
