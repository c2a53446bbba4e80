package geocodefx

import (
	"os"

	"go.uber.org/fx"

	"wayfare/internal/services"
	"wayfare/pkg/utils"
)

var Module = fx.Provide(
	provideNominatimClient, provideGeocodeService)

func provideNominatimClient() utils.GeoLookupInterface {
	return utils.NewNominatimClient(os.Getenv("NOMINATIM_URL"))
}

func provideGeocodeService(lookup utils.GeoLookupInterface) services.GeocodeServiceInterface {
	return services.NewGeocodeService(lookup)
}
