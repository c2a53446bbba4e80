package services

import (
	"wayfare/internal/models/response_models"
)

// BudgetMargin is the near-band width as a fraction of the ceiling:
// totals within ±10% of the ceiling classify as "near".
const BudgetMargin = 0.10

type BudgetServiceInterface interface {
	Reconcile(itinerary *response_models.Itinerary, ceiling float64) response_models.BudgetSummary
}

type BudgetService struct{}

func NewBudgetService() BudgetServiceInterface {
	return &BudgetService{}
}

// Reconcile sums every activity's estimated cost (zero-defaulted costs
// included) and classifies the total against the ceiling. Status is
// monotonic in the total: under < near < over.
func (b *BudgetService) Reconcile(itinerary *response_models.Itinerary, ceiling float64) response_models.BudgetSummary {
	var total float64
	for _, day := range itinerary.Days {
		for _, act := range day.Activities {
			total += act.EstimatedCost
		}
	}

	delta := total - ceiling
	band := ceiling * BudgetMargin

	status := response_models.BudgetNear
	switch {
	case delta > band:
		status = response_models.BudgetOver
	case delta < -band:
		status = response_models.BudgetUnder
	}

	return response_models.BudgetSummary{
		Total:   total,
		Ceiling: ceiling,
		Delta:   delta,
		Status:  status,
	}
}
