package services

import (
	"context"
	"log"
	"strings"

	"wayfare/internal/models/response_models"
	"wayfare/pkg/memcache"
	"wayfare/pkg/utils"
)

// maxSegmentTiers bounds the query-plus-segment-drop tiers per lookup.
// The two destination tiers sit outside the cap, so the coarsest
// fallback survives arbitrarily long addresses. The tier list is fixed
// up front; there is no backoff and no retry beyond it.
const maxSegmentTiers = 6

type GeocodeServiceInterface interface {
	// Resolve tries the query at progressively coarser tiers and caches
	// the outcome (success or ErrGeocodeNotFound) under the original
	// query, so repeated calls for the same activity short-circuit.
	Resolve(ctx context.Context, cache *memcache.GeocodeCache, query, destination string) (*response_models.Coordinate, error)
}

type GeocodeService struct {
	lookup utils.GeoLookupInterface
}

func NewGeocodeService(lookup utils.GeoLookupInterface) GeocodeServiceInterface {
	return &GeocodeService{lookup: lookup}
}

func (g *GeocodeService) Resolve(ctx context.Context, cache *memcache.GeocodeCache, query, destination string) (*response_models.Coordinate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.ErrGeocodeNotFound
	}

	if coord, found, cached := cache.Lookup(query); cached {
		if !found {
			return nil, utils.ErrGeocodeNotFound
		}
		return coord, nil
	}

	for _, tier := range FallbackQueries(query, destination) {
		coord, err := g.lookup.Lookup(ctx, tier)
		if err == nil {
			if tier != query {
				log.Printf("geocode: %q resolved via fallback tier %q", query, tier)
			}
			cache.StoreHit(query, coord)
			return coord, nil
		}
		// Timeouts and upstream errors count as a failed tier, same as
		// an empty result; the lookup stays bounded either way.
	}

	cache.StoreMiss(query)
	return nil, utils.ErrGeocodeNotFound
}

// FallbackQueries builds the fixed tier list, most specific first:
// the query as given, then progressively dropping trailing comma
// segments, then the leading segment qualified with the destination,
// then the destination alone. Duplicates are collapsed. Only the
// segment-drop tiers are capped; the destination tiers are always
// present when a destination is given.
func FallbackQueries(query, destination string) []string {
	var tiers []string
	seen := make(map[string]bool)

	add := func(q string) {
		q = strings.TrimSpace(q)
		key := strings.ToLower(q)
		if q == "" || seen[key] {
			return
		}
		seen[key] = true
		tiers = append(tiers, q)
	}

	add(query)

	segments := strings.Split(query, ",")
	for end := len(segments) - 1; end >= 1 && len(tiers) < maxSegmentTiers; end-- {
		add(strings.Join(segments[:end], ","))
	}

	destination = strings.TrimSpace(destination)
	if destination != "" {
		add(strings.TrimSpace(segments[0]) + ", " + destination)
		add(destination)
	}

	return tiers
}
