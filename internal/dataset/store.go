package dataset

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

// Store keeps loaded datasets in memory and tracks the active one
type Store struct {
	mu       sync.RWMutex
	datasets map[string]models.Dataset
	active   string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{datasets: make(map[string]models.Dataset)}
}

// Add registers ds. The first dataset added becomes active.
func (s *Store) Add(ds models.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[ds.ID] = ds
	if s.active == "" {
		s.active = ds.ID
	}
}

// Get returns the dataset with the given id
func (s *Store) Get(id string) (models.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[id]
	return ds, ok
}

// Active returns the dataset analyses run against by default
func (s *Store) Active() (models.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[s.active]
	return ds, ok
}

// SetActive selects the dataset analyses run against by default
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return fmt.Errorf("dataset %s not found", id)
	}
	s.active = id
	return nil
}

// Summary describes a stored dataset without its rows
type Summary struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
	Active  bool     `json:"active"`
}

// List summarizes every stored dataset, ordered by name
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.datasets))
	for id, ds := range s.datasets {
		out = append(out, Summary{
			ID:      id,
			Name:    ds.Name,
			Columns: ds.Columns,
			Rows:    len(ds.Rows),
			Active:  id == s.active,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
