package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"wayfare/internal/models/request_models"
	"wayfare/internal/models/response_models"
	"wayfare/pkg/memcache"
	"wayfare/pkg/utils"
)

const (
	minTripDays = 1
	maxTripDays = 14

	sessionTTL = 2 * time.Hour
)

type TripServiceInterface interface {
	GenerateTrip(ctx context.Context, req request_models.TripRequest) (*response_models.TripResponse, error)
	GetTrip(id string) (*response_models.TripResponse, error)

	// Export renders the stored itinerary as a downloadable document.
	// Returns the payload and its content type.
	Export(id, format string) ([]byte, string, error)
}

type TripService struct {
	planner    utils.PlannerClientInterface
	normalizer NormalizerInterface
	geocoder   GeocodeServiceInterface
	budget     BudgetServiceInterface
	exporter   ExportServiceInterface
	sessions   memcache.PlanSessionStore
}

func NewTripService(
	planner utils.PlannerClientInterface,
	normalizer NormalizerInterface,
	geocoder GeocodeServiceInterface,
	budget BudgetServiceInterface,
	exporter ExportServiceInterface,
	sessions memcache.PlanSessionStore,
) TripServiceInterface {
	return &TripService{
		planner:    planner,
		normalizer: normalizer,
		geocoder:   geocoder,
		budget:     budget,
		exporter:   exporter,
		sessions:   sessions,
	}
}

func (t *TripService) GenerateTrip(ctx context.Context, req request_models.TripRequest) (*response_models.TripResponse, error) {
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" {
		return nil, fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	if req.DurationDays < minTripDays || req.DurationDays > maxTripDays {
		return nil, fmt.Errorf("%w: duration_days must be between %d and %d", utils.ErrInvalidInput, minTripDays, maxTripDays)
	}
	if req.Budget < 0 {
		return nil, fmt.Errorf("%w: budget cannot be negative", utils.ErrInvalidInput)
	}

	prompt := buildPlannerPrompt(req)

	rawJSON, err := t.planner.GenerateItineraryJSON(ctx, prompt)
	if err != nil {
		log.Printf("planner generation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", utils.ErrPlannerUnavailable, err)
	}

	itinerary, err := t.normalizer.Normalize(rawJSON)
	if err != nil {
		log.Printf("normalization failed: %v", err)
		return nil, err
	}
	itinerary.Destination = req.Destination

	session := &memcache.PlanSession{
		ID:        uuid.New().String(),
		Itinerary: itinerary,
		Geocodes:  memcache.NewGeocodeCache(),
	}

	// Sequential on purpose: the geocoding service rate-limits, and one
	// request only carries a handful of activities.
	session.Warnings = t.annotateCoordinates(ctx, session.Geocodes, itinerary)
	session.Budget = t.budget.Reconcile(itinerary, req.Budget)

	t.sessions.Put(session, sessionTTL)

	return sessionToResponse(session), nil
}

func (t *TripService) GetTrip(id string) (*response_models.TripResponse, error) {
	session, ok := t.sessions.Get(id)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return sessionToResponse(session), nil
}

func (t *TripService) Export(id, format string) ([]byte, string, error) {
	session, ok := t.sessions.Get(id)
	if !ok {
		return nil, "", utils.ErrSessionNotFound
	}

	switch format {
	case "", "text":
		return t.exporter.RenderText(session.Itinerary, session.Budget), "text/plain; charset=utf-8", nil
	case "pdf":
		data, err := t.exporter.RenderPDF(session.Itinerary, session.Budget)
		if err != nil {
			return nil, "", err
		}
		return data, "application/pdf", nil
	default:
		return nil, "", fmt.Errorf("%w: unsupported export format %q", utils.ErrInvalidInput, format)
	}
}

// annotateCoordinates runs the per-activity geocoding pass, mutating
// coordinates in place. Failures are non-fatal: the activity is listed
// but unpinned, with a user-visible warning. An already-set coordinate
// is never re-resolved, so a fallback can only fill gaps.
func (t *TripService) annotateCoordinates(ctx context.Context, cache *memcache.GeocodeCache, itinerary *response_models.Itinerary) []string {
	var warnings []string

	for di := range itinerary.Days {
		day := &itinerary.Days[di]
		for ai := range day.Activities {
			act := &day.Activities[ai]
			if act.Coordinate != nil {
				continue
			}

			// Resolve folds timeouts and upstream errors into
			// ErrGeocodeNotFound, so any failure here is warning-only.
			coord, err := t.geocoder.Resolve(ctx, cache, act.Location, itinerary.Destination)
			if err != nil {
				warnings = append(warnings,
					fmt.Sprintf("could not locate %q (day %d); it will not appear on the map", act.Location, day.Day))
				continue
			}
			act.Coordinate = coord
		}
	}

	return warnings
}

func sessionToResponse(session *memcache.PlanSession) *response_models.TripResponse {
	return &response_models.TripResponse{
		SessionID: session.ID,
		Itinerary: session.Itinerary,
		Budget:    session.Budget,
		Pins:      buildPins(session.Itinerary),
		Warnings:  session.Warnings,
	}
}

func buildPins(itinerary *response_models.Itinerary) []response_models.MapPin {
	var pins []response_models.MapPin
	for _, day := range itinerary.Days {
		for _, act := range day.Activities {
			if act.Coordinate == nil {
				continue
			}
			pins = append(pins, response_models.MapPin{
				Coordinate: *act.Coordinate,
				Label:      act.Name,
				Day:        day.Day,
			})
		}
	}
	return pins
}

// buildPlannerPrompt asks for strict JSON matching the normalizer's
// expected schema.
func buildPlannerPrompt(req request_models.TripRequest) string {
	interests := "General exploring"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "You are a budget-savvy student travel expert.\n")
	fmt.Fprintf(&prompt, "Create a %d-day travel itinerary for a student visiting %s.\n", req.DurationDays, req.Destination)
	fmt.Fprintf(&prompt, "Their maximum total budget is $%.0f USD.\n", req.Budget)
	fmt.Fprintf(&prompt, "Their interests are: %s.\n\n", interests)

	prompt.WriteString("You MUST return the output strictly as a valid JSON object matching this exact schema. Do not include any markdown formatting or introductory text.\n")
	prompt.WriteString(`{
  "trip_summary": "A brief, exciting summary of the trip.",
  "itinerary": [
    {
      "day": 1,
      "activities": [
        {
          "time": "Morning",
          "place_name": "Specific place name",
          "description": "Activity description and why it fits the budget.",
          "category": "Food",
          "estimated_cost": 10,
          "address_for_geocoding": "Full verifiable address or highly specific landmark name for map plotting"
        }
      ]
    }
  ]
}`)
	fmt.Fprintf(&prompt, "\n\nHard constraints:\n")
	fmt.Fprintf(&prompt, "- Exactly %d day objects in \"itinerary\", numbered 1..%d with no gaps.\n", req.DurationDays, req.DurationDays)
	prompt.WriteString("- Every day has at least one activity.\n")
	prompt.WriteString("- estimated_cost is a plain number in USD; use 0 for free activities.\n")
	prompt.WriteString("- category is one of: Food, Culture, Nature, Nightlife, Shopping, Free.\n")

	return prompt.String()
}
