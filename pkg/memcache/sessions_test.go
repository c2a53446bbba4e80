package memcache

import (
	"testing"
	"time"

	"wayfare/internal/models/response_models"
)

func TestGeocodeCache_LookupStates(t *testing.T) {
	cache := NewGeocodeCache()
	coord := &response_models.Coordinate{Lat: 1, Lng: 2}

	if _, _, cached := cache.Lookup("louvre"); cached {
		t.Error("fresh cache should report uncached")
	}

	cache.StoreHit("louvre", coord)
	got, found, cached := cache.Lookup("louvre")
	if !cached || !found || got != coord {
		t.Errorf("Lookup() = (%v, %v, %v), want hit", got, found, cached)
	}

	cache.StoreMiss("atlantis")
	got, found, cached = cache.Lookup("atlantis")
	if !cached || found || got != nil {
		t.Errorf("Lookup() = (%v, %v, %v), want cached miss", got, found, cached)
	}
}

func TestGeocodeCache_NormalizesQueries(t *testing.T) {
	cache := NewGeocodeCache()
	coord := &response_models.Coordinate{Lat: 1, Lng: 2}

	cache.StoreHit("  Louvre   Museum ", coord)

	got, found, cached := cache.Lookup("louvre museum")
	if !cached || !found || got != coord {
		t.Error("lookup should be case- and whitespace-insensitive")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestGeocodeCache_MissNeverOverwritesHit(t *testing.T) {
	cache := NewGeocodeCache()
	coord := &response_models.Coordinate{Lat: 1, Lng: 2}

	cache.StoreHit("louvre", coord)
	cache.StoreMiss("louvre")

	got, found, cached := cache.Lookup("louvre")
	if !cached || !found || got != coord {
		t.Error("a stored success must survive a later StoreMiss")
	}
}

func TestPlanSessions_PutGet(t *testing.T) {
	store := NewPlanSessions()
	session := &PlanSession{
		ID:        "s1",
		Itinerary: &response_models.Itinerary{Destination: "Paris"},
		Geocodes:  NewGeocodeCache(),
	}

	store.Put(session, time.Minute)

	got, ok := store.Get("s1")
	if !ok {
		t.Fatal("Get() miss for stored session")
	}
	if got != session {
		t.Error("Get() returned a different session")
	}

	if _, ok := store.Get("missing"); ok {
		t.Error("Get() hit for unknown id")
	}
}

func TestPlanSessions_Expiry(t *testing.T) {
	store := NewPlanSessions()
	store.Put(&PlanSession{ID: "old"}, -time.Second)

	if _, ok := store.Get("old"); ok {
		t.Error("expired session should not be returned")
	}
	// Expired entry is dropped on access.
	store.mu.RLock()
	_, stillThere := store.data["old"]
	store.mu.RUnlock()
	if stillThere {
		t.Error("expired session should be deleted on Get")
	}
}

func TestPlanSessions_Delete(t *testing.T) {
	store := NewPlanSessions()
	store.Put(&PlanSession{ID: "s1"}, time.Minute)
	store.Delete("s1")

	if _, ok := store.Get("s1"); ok {
		t.Error("deleted session should be gone")
	}
}
