// pkg/memcache/sessions.go
package memcache

import (
	"strings"
	"sync"
	"time"

	"wayfare/internal/models/response_models"
)

// GeocodeCache maps normalized queries to a coordinate or a "not found"
// sentinel. Each distinct query is resolved at most once per session;
// negative results are cached too so a failing address is not retried.
type GeocodeCache struct {
	mu      sync.RWMutex
	entries map[string]geocodeEntry
}

type geocodeEntry struct {
	coord *response_models.Coordinate
	found bool
}

func NewGeocodeCache() *GeocodeCache {
	return &GeocodeCache{
		entries: make(map[string]geocodeEntry),
	}
}

// normalizeQuery lowercases and collapses whitespace so cosmetic
// differences in AI-produced addresses do not defeat the cache.
func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Lookup returns (coord, found, cached). cached=false means the query has
// never been resolved this session.
func (g *GeocodeCache) Lookup(query string) (*response_models.Coordinate, bool, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, ok := g.entries[normalizeQuery(query)]
	if !ok {
		return nil, false, false
	}
	return e.coord, e.found, true
}

func (g *GeocodeCache) StoreHit(query string, coord *response_models.Coordinate) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries[normalizeQuery(query)] = geocodeEntry{coord: coord, found: true}
}

// StoreMiss records a failed resolution. A previously stored success is
// never overwritten by a later failure.
func (g *GeocodeCache) StoreMiss(query string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := normalizeQuery(query)
	if e, ok := g.entries[key]; ok && e.found {
		return
	}
	g.entries[key] = geocodeEntry{}
}

func (g *GeocodeCache) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// PlanSession is the explicit session-scoped object replacing ambient
// framework state: one generated itinerary, its geocode cache, and its
// budget summary travel together.
type PlanSession struct {
	ID        string
	Itinerary *response_models.Itinerary
	Budget    response_models.BudgetSummary
	Geocodes  *GeocodeCache
	Warnings  []string
}

type PlanSessionStore interface {
	Put(session *PlanSession, ttl time.Duration)

	// Get returns the session if present and not expired.
	Get(id string) (*PlanSession, bool)

	Delete(id string)
}

type sessionEntry struct {
	session   *PlanSession
	expiresAt time.Time
}

type PlanSessions struct {
	mu   sync.RWMutex
	data map[string]sessionEntry
}

func NewPlanSessions() *PlanSessions {
	return &PlanSessions{
		data: make(map[string]sessionEntry),
	}
}

func (s *PlanSessions) Put(session *PlanSession, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[session.ID] = sessionEntry{
		session:   session,
		expiresAt: time.Now().Add(ttl),
	}

	// Opportunistic cleanup instead of a background janitor: evict
	// expired entries once the map grows past a sane bound.
	if len(s.data) > 1000 {
		now := time.Now()
		for id, e := range s.data {
			if now.After(e.expiresAt) {
				delete(s.data, id)
			}
		}
	}
}

func (s *PlanSessions) Get(id string) (*PlanSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, id)
		return nil, false
	}
	return e.session, true
}

func (s *PlanSessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}
