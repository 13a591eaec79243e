package services

import (
	portsrepo "github.com/ratesworks/fx_rates_app/internal/core/ports/repositories"
	portssvc "github.com/ratesworks/fx_rates_app/internal/core/ports/services"
	"github.com/ratesworks/fx_rates_app/internal/providers"
)

// NewServiceContainer wires every service with its repositories and the
// provider registry. This is the single composition point used by main.
func NewServiceContainer(repos portsrepo.RepositoryProvider, registry *providers.Registry) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Provider:   NewProviderService(registry),
		PairSource: NewPairSourceService(repos.PairSourceRepo, registry),
		Sync:       NewSyncService(repos.RateRepo, repos.PairSourceRepo, registry),
		Conversion: NewConversionService(repos.RateRepo),
		Rate:       NewRateService(repos.RateRepo),
	}
}
