package store

import (
	"sync"

	"routedash/internal/domain"
)

// Store holds route documents and serviceable locations in memory. Routes are
// produced by the external planner and ingested wholesale; the store never
// edits individual stops.
type Store struct {
	mu        sync.RWMutex
	routes    map[string]*domain.Route
	locations map[string]*domain.Location
}

func New() *Store {
	return &Store{
		routes:    make(map[string]*domain.Route),
		locations: make(map[string]*domain.Location),
	}
}

func (s *Store) UpsertRoute(r *domain.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[r.ID] = copyRoute(r)
}

func (s *Store) Route(id string) (*domain.Route, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.routes[id]
	if !ok {
		return nil, false
	}
	return copyRoute(r), true
}

func (s *Store) Routes() []*domain.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Route, 0, len(s.routes))
	for _, r := range s.routes {
		result = append(result, copyRoute(r))
	}
	return result
}

func (s *Store) RouteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.routes)
}

func (s *Store) UpsertLocation(loc domain.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := loc
	s.locations[loc.ID] = &copied
}

func (s *Store) Location(id string) (domain.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.locations[id]
	if !ok {
		return domain.Location{}, false
	}
	return *loc, true
}

func (s *Store) LocationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.locations)
}

// FindStop locates a stop on a route by location id.
func (s *Store) FindStop(routeID, locationID string) (domain.Stop, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.routes[routeID]
	if !ok {
		return domain.Stop{}, false
	}
	for _, st := range r.Stops {
		if st.LocationID == locationID {
			return st, true
		}
	}
	return domain.Stop{}, false
}

func copyRoute(r *domain.Route) *domain.Route {
	copied := *r
	copied.Stops = make([]domain.Stop, len(r.Stops))
	copy(copied.Stops, r.Stops)
	if r.Depot != nil {
		depot := *r.Depot
		copied.Depot = &depot
	}
	return &copied
}
