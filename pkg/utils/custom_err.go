package utils

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid request input")
	ErrInvalidItinerary   = errors.New("could not parse itinerary")
	ErrSessionNotFound    = errors.New("trip session not found")
	ErrPlannerUnavailable = errors.New("planner service unavailable")

	// ErrGeocodeNotFound is per-activity and non-fatal: the activity is
	// still listed, it just gets no pin.
	ErrGeocodeNotFound = errors.New("location not found")
)
