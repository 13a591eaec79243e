package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ratesworks/fx_rates_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RateRepo:       newPgxRateRepository(dbPool),
		PairSourceRepo: newPgxPairSourceRepository(dbPool),
	}
}
