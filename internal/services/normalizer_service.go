package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"wayfare/internal/models/response_models"
	"wayfare/pkg/utils"
)

// NormalizerInterface is the sole validation gate between the raw AI
// response and the rest of the pipeline. Either a fully valid Itinerary
// comes out, or ErrInvalidItinerary does; partially-typed data never
// flows downstream.
type NormalizerInterface interface {
	Normalize(raw string) (*response_models.Itinerary, error)
}

type Normalizer struct{}

func NewNormalizer() NormalizerInterface {
	return &Normalizer{}
}

// rawItinerary mirrors the JSON schema the planner prompt asks for.
// Costs stay raw here because models alternate between numbers and
// strings for money.
type rawItinerary struct {
	TripSummary string `json:"trip_summary"`
	Itinerary   []struct {
		Day        int `json:"day"`
		Activities []struct {
			Time          string          `json:"time"`
			PlaceName     string          `json:"place_name"`
			Description   string          `json:"description"`
			Category      string          `json:"category"`
			EstimatedCost json.RawMessage `json:"estimated_cost"`
			Address       string          `json:"address_for_geocoding"`
		} `json:"activities"`
	} `json:"itinerary"`
}

func (n *Normalizer) Normalize(raw string) (*response_models.Itinerary, error) {
	raw = cleanRawJSON(raw)

	var doc rawItinerary
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidItinerary, err)
	}

	if len(doc.Itinerary) == 0 {
		return nil, fmt.Errorf("%w: itinerary has no days", utils.ErrInvalidItinerary)
	}

	itinerary := &response_models.Itinerary{
		Summary: strings.TrimSpace(doc.TripSummary),
		Days:    make([]response_models.Day, 0, len(doc.Itinerary)),
	}

	for i, rawDay := range doc.Itinerary {
		if len(rawDay.Activities) == 0 {
			return nil, fmt.Errorf("%w: day %d has no activities", utils.ErrInvalidItinerary, i+1)
		}

		day := response_models.Day{
			// Re-index contiguously from 1, preserving the given order.
			// Models sometimes skip or repeat day numbers.
			Day:        i + 1,
			Activities: make([]response_models.Activity, 0, len(rawDay.Activities)),
		}

		for j, rawAct := range rawDay.Activities {
			name := strings.TrimSpace(rawAct.PlaceName)
			if name == "" {
				return nil, fmt.Errorf("%w: day %d activity %d has no name", utils.ErrInvalidItinerary, i+1, j+1)
			}

			location := strings.TrimSpace(rawAct.Address)
			if location == "" {
				// A bare place name is still a geocodable description.
				location = name
			}

			cost := coerceCost(rawAct.EstimatedCost)

			category := strings.TrimSpace(rawAct.Category)
			if category == "" && cost == 0 {
				category = "Free"
			}

			day.Activities = append(day.Activities, response_models.Activity{
				Name:          name,
				Location:      location,
				Description:   strings.TrimSpace(rawAct.Description),
				TimeOfDay:     strings.TrimSpace(rawAct.Time),
				Category:      category,
				EstimatedCost: cost,
			})
		}

		itinerary.Days = append(itinerary.Days, day)
	}

	return itinerary, nil
}

// cleanRawJSON strips fences the planner client may have missed when the
// normalizer is fed a raw provider response directly.
func cleanRawJSON(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}

// coerceCost accepts a JSON number or a numeric string ("12", "$12.50",
// "12 USD"). Anything unparseable defaults to zero; a bad cost field is
// never a reason to reject an itinerary.
func coerceCost(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if num < 0 {
			return 0
		}
		return num
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}

	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	if i := strings.IndexByte(s, ' '); i != -1 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, ",", "")

	num, err := strconv.ParseFloat(s, 64)
	if err != nil || num < 0 {
		return 0
	}
	return num
}
