package response_models

// Coordinate is a WGS 84 point. It stays nil on an Activity until a
// geocode lookup succeeds.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Activity struct {
	Name          string      `json:"name"`
	Location      string      `json:"location"`
	Description   string      `json:"description,omitempty"`
	TimeOfDay     string      `json:"time_of_day,omitempty"`
	Category      string      `json:"category,omitempty"`
	EstimatedCost float64     `json:"estimated_cost"`
	Coordinate    *Coordinate `json:"coordinate,omitempty"`
}

type Day struct {
	Day        int        `json:"day"`
	Activities []Activity `json:"activities"`
}

// Itinerary is immutable once normalized, except for in-place coordinate
// annotation during the geocoding pass.
type Itinerary struct {
	Destination string `json:"destination,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Days        []Day  `json:"days"`
}

type BudgetStatus string

const (
	BudgetUnder BudgetStatus = "under"
	BudgetNear  BudgetStatus = "near"
	BudgetOver  BudgetStatus = "over"
)

type BudgetSummary struct {
	Total   float64      `json:"total"`
	Ceiling float64      `json:"ceiling"`
	Delta   float64      `json:"delta"`
	Status  BudgetStatus `json:"status"`
}

// MapPin is what the map widget consumes: one pin per successfully
// geocoded activity.
type MapPin struct {
	Coordinate Coordinate `json:"coordinate"`
	Label      string     `json:"label"`
	Day        int        `json:"day"`
}

type TripResponse struct {
	SessionID string        `json:"session_id"`
	Itinerary *Itinerary    `json:"itinerary"`
	Budget    BudgetSummary `json:"budget"`
	Pins      []MapPin      `json:"pins"`
	Warnings  []string      `json:"warnings,omitempty"`
}
