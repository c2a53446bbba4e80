package tripfx

import (
	"go.uber.org/fx"

	"wayfare/internal/api/controllers"
	"wayfare/internal/services"
	"wayfare/pkg/memcache"
	"wayfare/pkg/utils"
)

var Module = fx.Provide(
	provideSessionStore,
	provideNormalizer,
	provideBudgetService,
	provideExportService,
	ProvideTripService,
	ProvideTripController)

func provideSessionStore() memcache.PlanSessionStore {
	return memcache.NewPlanSessions()
}

func provideNormalizer() services.NormalizerInterface {
	return services.NewNormalizer()
}

func provideBudgetService() services.BudgetServiceInterface {
	return services.NewBudgetService()
}

func provideExportService() services.ExportServiceInterface {
	return services.NewExportService()
}

// ProvideTripService creates the trip service with all dependencies
func ProvideTripService(
	planner utils.PlannerClientInterface,
	normalizer services.NormalizerInterface,
	geocoder services.GeocodeServiceInterface,
	budget services.BudgetServiceInterface,
	exporter services.ExportServiceInterface,
	sessions memcache.PlanSessionStore,
) services.TripServiceInterface {
	return services.NewTripService(
		planner,
		normalizer,
		geocoder,
		budget,
		exporter,
		sessions,
	)
}

func ProvideTripController(
	tripService services.TripServiceInterface,
) *controllers.TripController {
	return controllers.NewTripController(tripService)
}
