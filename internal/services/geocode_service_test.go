package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"wayfare/internal/models/response_models"
	"wayfare/pkg/memcache"
	"wayfare/pkg/utils"
)

// fakeLookup resolves only the queries listed in hits and records every
// query it receives.
type fakeLookup struct {
	hits    map[string]*response_models.Coordinate
	queries []string
}

func (f *fakeLookup) Lookup(_ context.Context, query string) (*response_models.Coordinate, error) {
	f.queries = append(f.queries, query)
	if coord, ok := f.hits[query]; ok {
		return coord, nil
	}
	return nil, utils.ErrGeocodeNotFound
}

func TestFallbackQueries(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		destination string
		want        []string
	}{
		{
			name:        "venue detail stripped tier by tier",
			query:       "Eiffel Tower Gift Shop, 5th Floor",
			destination: "Paris",
			want: []string{
				"Eiffel Tower Gift Shop, 5th Floor",
				"Eiffel Tower Gift Shop",
				"Eiffel Tower Gift Shop, Paris",
				"Paris",
			},
		},
		{
			name:        "three segments",
			query:       "Blue Bottle, Shibuya, Tokyo",
			destination: "Tokyo, Japan",
			want: []string{
				"Blue Bottle, Shibuya, Tokyo",
				"Blue Bottle, Shibuya",
				"Blue Bottle",
				"Blue Bottle, Tokyo, Japan",
				"Tokyo, Japan",
			},
		},
		{
			name:        "single segment no destination",
			query:       "Louvre Museum",
			destination: "",
			want:        []string{"Louvre Museum"},
		},
		{
			name:        "query already equals destination",
			query:       "Paris",
			destination: "Paris",
			want:        []string{"Paris", "Paris, Paris"},
		},
		{
			name:        "full postal address keeps destination tiers",
			query:       "221B Baker Street, Marylebone, London, NW1 6XE, United Kingdom",
			destination: "London",
			want: []string{
				"221B Baker Street, Marylebone, London, NW1 6XE, United Kingdom",
				"221B Baker Street, Marylebone, London, NW1 6XE",
				"221B Baker Street, Marylebone, London",
				"221B Baker Street, Marylebone",
				"221B Baker Street",
				"221B Baker Street, London",
				"London",
			},
		},
		{
			name:        "segment cap never cuts destination tiers",
			query:       "A, B, C, D, E, F, G, H",
			destination: "Z",
			want: []string{
				"A, B, C, D, E, F, G, H",
				"A, B, C, D, E, F, G",
				"A, B, C, D, E, F",
				"A, B, C, D, E",
				"A, B, C, D",
				"A, B, C",
				"A, Z",
				"Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackQueries(tt.query, tt.destination)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FallbackQueries() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_CacheShortCircuit(t *testing.T) {
	coord := &response_models.Coordinate{Lat: 48.86, Lng: 2.35}
	lookup := &fakeLookup{hits: map[string]*response_models.Coordinate{
		"Louvre Museum, Paris": coord,
	}}
	svc := NewGeocodeService(lookup)
	cache := memcache.NewGeocodeCache()

	first, err := svc.Resolve(context.Background(), cache, "Louvre Museum, Paris", "Paris")
	if err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	second, err := svc.Resolve(context.Background(), cache, "Louvre Museum, Paris", "Paris")
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}

	if first != second {
		t.Errorf("expected identical cached result, got %v and %v", first, second)
	}
	if len(lookup.queries) != 1 {
		t.Errorf("lookup called %d times, want 1 (cache hit)", len(lookup.queries))
	}
}

func TestResolve_FallbackTierSuccess(t *testing.T) {
	// Only the destination-qualified tier resolves.
	coord := &response_models.Coordinate{Lat: 48.8584, Lng: 2.2945}
	lookup := &fakeLookup{hits: map[string]*response_models.Coordinate{
		"Eiffel Tower Gift Shop, Paris": coord,
	}}
	svc := NewGeocodeService(lookup)
	cache := memcache.NewGeocodeCache()

	got, err := svc.Resolve(context.Background(), cache, "Eiffel Tower Gift Shop, 5th Floor", "Paris")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != coord {
		t.Errorf("Resolve() = %v, want %v", got, coord)
	}

	wantQueries := []string{
		"Eiffel Tower Gift Shop, 5th Floor",
		"Eiffel Tower Gift Shop",
		"Eiffel Tower Gift Shop, Paris",
	}
	if !reflect.DeepEqual(lookup.queries, wantQueries) {
		t.Errorf("tier order = %v, want %v", lookup.queries, wantQueries)
	}

	// The fallback result is cached under the original query.
	cached, err := svc.Resolve(context.Background(), cache, "Eiffel Tower Gift Shop, 5th Floor", "Paris")
	if err != nil {
		t.Fatalf("cached Resolve() error = %v", err)
	}
	if cached != coord {
		t.Errorf("cached Resolve() = %v, want %v", cached, coord)
	}
	if len(lookup.queries) != len(wantQueries) {
		t.Errorf("lookup called again after cache fill: %v", lookup.queries)
	}
}

func TestResolve_DestinationTierForLongAddress(t *testing.T) {
	// A full postal address where nothing but the destination itself
	// resolves; the coarsest tier must still be reached.
	coord := &response_models.Coordinate{Lat: 51.5072, Lng: -0.1276}
	lookup := &fakeLookup{hits: map[string]*response_models.Coordinate{
		"London": coord,
	}}
	svc := NewGeocodeService(lookup)

	got, err := svc.Resolve(context.Background(), memcache.NewGeocodeCache(),
		"221B Baker Street, Marylebone, London, NW1 6XE, United Kingdom", "London")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != coord {
		t.Errorf("Resolve() = %v, want %v", got, coord)
	}
	if last := lookup.queries[len(lookup.queries)-1]; last != "London" {
		t.Errorf("last tier tried = %q, want London", last)
	}
}

// errLookup fails every query with a transport error.
type errLookup struct {
	calls int
}

func (e *errLookup) Lookup(_ context.Context, _ string) (*response_models.Coordinate, error) {
	e.calls++
	return nil, errors.New("connection timeout")
}

func TestResolve_TransportErrorsCountAsFailedTiers(t *testing.T) {
	lookup := &errLookup{}
	svc := NewGeocodeService(lookup)
	cache := memcache.NewGeocodeCache()

	_, err := svc.Resolve(context.Background(), cache, "Louvre Museum, Paris", "Paris")
	if !errors.Is(err, utils.ErrGeocodeNotFound) {
		t.Fatalf("Resolve() error = %v, want ErrGeocodeNotFound", err)
	}

	calls := lookup.calls
	_, err = svc.Resolve(context.Background(), cache, "Louvre Museum, Paris", "Paris")
	if !errors.Is(err, utils.ErrGeocodeNotFound) {
		t.Fatalf("second Resolve() error = %v, want ErrGeocodeNotFound", err)
	}
	if lookup.calls != calls {
		t.Errorf("failing query was retried; calls = %d, want %d", lookup.calls, calls)
	}
}

func TestResolve_NotFoundCached(t *testing.T) {
	lookup := &fakeLookup{}
	svc := NewGeocodeService(lookup)
	cache := memcache.NewGeocodeCache()

	_, err := svc.Resolve(context.Background(), cache, "Atlantis", "")
	if !errors.Is(err, utils.ErrGeocodeNotFound) {
		t.Fatalf("Resolve() error = %v, want ErrGeocodeNotFound", err)
	}
	calls := len(lookup.queries)
	if calls == 0 {
		t.Fatal("expected at least one lookup attempt")
	}

	_, err = svc.Resolve(context.Background(), cache, "Atlantis", "")
	if !errors.Is(err, utils.ErrGeocodeNotFound) {
		t.Fatalf("second Resolve() error = %v, want ErrGeocodeNotFound", err)
	}
	if len(lookup.queries) != calls {
		t.Errorf("failed query was retried; lookups = %d, want %d", len(lookup.queries), calls)
	}
}

func TestResolve_EmptyQuery(t *testing.T) {
	lookup := &fakeLookup{}
	svc := NewGeocodeService(lookup)

	_, err := svc.Resolve(context.Background(), memcache.NewGeocodeCache(), "   ", "Paris")
	if !errors.Is(err, utils.ErrGeocodeNotFound) {
		t.Errorf("Resolve() error = %v, want ErrGeocodeNotFound", err)
	}
	if len(lookup.queries) != 0 {
		t.Errorf("empty query should not reach the lookup, got %v", lookup.queries)
	}
}
