package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	portsrepo "github.com/ratesworks/fx_rates_app/internal/core/ports/repositories"
	"github.com/ratesworks/fx_rates_app/internal/dto"
	"github.com/ratesworks/fx_rates_app/internal/middleware"
	"github.com/ratesworks/fx_rates_app/internal/providers"
	"golang.org/x/sync/errgroup"
)

// SyncService orchestrates rate acquisition: provider fetches, fallback
// routing, normalization and truncation-aware upserts.
type SyncService struct {
	rateRepo portsrepo.RateRepositoryFacade
	pairRepo portsrepo.PairSourceReader
	registry *providers.Registry
	now      func() time.Time
}

// NewSyncService creates a new SyncService.
func NewSyncService(rateRepo portsrepo.RateRepositoryFacade, pairRepo portsrepo.PairSourceReader, registry *providers.Registry) *SyncService {
	return &SyncService{
		rateRepo: rateRepo,
		pairRepo: pairRepo,
		registry: registry,
		now:      time.Now,
	}
}

// fetchTask is one provider invocation covering every pair that currently
// routes to that provider and home currency.
type fetchTask struct {
	providerCode string
	home         string
	pairs        []domain.PairKey
}

// candidate is a normalized rate awaiting the upsert comparison.
type candidate struct {
	day   string
	base  string
	quote string
	rate  domain.ExchangeRate
}

// Sync runs one acquisition call. The existing-rate lookup and the provider
// fetches run concurrently; all normalized rates are computed before any row
// is written.
func (s *SyncService) Sync(ctx context.Context, req dto.SyncRequest) (*domain.SyncResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	start, err := domain.ParseDay(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, req.StartDate)
	}
	end, err := domain.ParseDay(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, req.EndDate)
	}
	if err := domain.ValidateDateRange(start, end); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if len(req.Currencies) == 0 {
		return nil, fmt.Errorf("%w: no currencies requested", apperrors.ErrValidation)
	}
	currencies := make([]string, len(req.Currencies))
	for i, c := range req.Currencies {
		currencies[i] = domain.NormalizeCode(c)
	}

	result := &domain.SyncResult{}

	// Resolve the routing plan before touching any provider so caller
	// errors surface without I/O.
	var routes map[domain.PairKey][]domain.PairSource
	if req.ProviderCode != "" {
		routes, err = s.explicitRoutes(req, currencies, result)
	} else {
		routes, err = s.autoRoutes(ctx, currencies, result)
	}
	if err != nil {
		return nil, err
	}

	allPairs := make([]domain.PairKey, 0, len(routes))
	for pair := range routes {
		allPairs = append(allPairs, pair)
	}
	if len(allPairs) == 0 {
		return result, nil
	}

	// Fetch from providers and look up pre-existing rows concurrently; the
	// comparison joins both once complete.
	var existing map[domain.RateKey]domain.ExchangeRate
	var candidates []candidate
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var lookupErr error
		existing, lookupErr = s.rateRepo.FindRatesInRange(gctx, allPairs, start, end)
		return lookupErr
	})
	g.Go(func() error {
		candidates = s.fetchWithFallback(gctx, logger, routes, start, end, result)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to look up existing rates: %w", err)
	}

	// Truncation-aware no-op detection: an existing row quantized to the
	// storage scale that equals the incoming value is skipped entirely, so
	// re-syncing unchanged data writes nothing.
	fetchedAt := s.now()
	var changed []domain.ExchangeRate
	for _, c := range candidates {
		key := domain.RateKey{Day: c.day, Base: c.base, Quote: c.quote}
		if prev, ok := existing[key]; ok && domain.QuantizeRate(prev.Rate).Equal(c.rate.Rate) {
			continue
		}
		row := c.rate
		row.FetchedAt = fetchedAt
		changed = append(changed, row)
	}
	if len(changed) > 0 {
		if err := s.rateRepo.UpsertRates(ctx, changed); err != nil {
			return nil, fmt.Errorf("failed to upsert rates: %w", err)
		}
	}
	result.SyncedCount = len(changed)
	return result, nil
}

// explicitRoutes builds a single-provider plan with no fallback.
func (s *SyncService) explicitRoutes(req dto.SyncRequest, currencies []string, result *domain.SyncResult) (map[domain.PairKey][]domain.PairSource, error) {
	p, err := s.registry.Get(req.ProviderCode)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown provider %q", apperrors.ErrValidation, req.ProviderCode)
	}

	home := domain.NormalizeCode(req.HomeCurrency)
	if home == "" {
		home = p.HomeCurrencies()[0]
	} else if !providers.SupportsHome(p, home) {
		return nil, fmt.Errorf("%w: provider %s cannot quote against %s", apperrors.ErrUnsupportedBase, p.Code(), home)
	}

	supported := make(map[string]bool, len(p.SupportedCurrencies()))
	for _, c := range p.SupportedCurrencies() {
		supported[c] = true
	}

	routes := make(map[domain.PairKey][]domain.PairSource)
	for _, c := range currencies {
		if c == home {
			continue
		}
		if !supported[c] {
			result.Errors = append(result.Errors, domain.SyncError{
				BaseCode:     home,
				QuoteCode:    c,
				ProviderCode: p.Code(),
				Message:      fmt.Sprintf("currency %s is not supported by provider %s", c, p.Code()),
			})
			continue
		}
		routes[domain.PairKey{Base: home, Quote: c}] = []domain.PairSource{{
			BaseCode:     home,
			QuoteCode:    c,
			ProviderCode: p.Code(),
			Priority:     1,
		}}
	}
	return routes, nil
}

// autoRoutes resolves each requested currency to its configured directed
// pairs. A currency with no pair source is reported per-currency and does
// not abort the rest of the batch.
func (s *SyncService) autoRoutes(ctx context.Context, currencies []string, result *domain.SyncResult) (map[domain.PairKey][]domain.PairSource, error) {
	sources, err := s.pairRepo.ListPairSourcesForQuotes(ctx, currencies)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pair sources: %w", err)
	}

	routes := make(map[domain.PairKey][]domain.PairSource)
	for _, ps := range sources {
		pair := domain.PairKey{Base: ps.BaseCode, Quote: ps.QuoteCode}
		routes[pair] = append(routes[pair], ps)
	}
	for _, list := range routes {
		sort.Slice(list, func(i, j int) bool { return list[i].Priority < list[j].Priority })
	}

	configured := make(map[string]bool)
	for _, ps := range sources {
		configured[ps.QuoteCode] = true
	}
	for _, c := range currencies {
		if !configured[c] {
			result.Errors = append(result.Errors, domain.SyncError{
				QuoteCode: c,
				Message:   fmt.Sprintf("%v for currency %s", apperrors.ErrNoPairSource, c),
			})
		}
	}
	return routes, nil
}

// fetchWithFallback attempts providers per pair in ascending priority
// order. Each round groups the pairs whose next attempt points at the same
// provider and home currency, so a provider is invoked once per group, not
// once per currency. A recoverable fetch failure advances only the affected
// pairs to their next priority; a caller-class rejection fails its pairs
// immediately without trying lower priorities.
func (s *SyncService) fetchWithFallback(ctx context.Context, logger *slog.Logger, routes map[domain.PairKey][]domain.PairSource, start, end time.Time, result *domain.SyncResult) []candidate {
	attempt := make(map[domain.PairKey]int, len(routes))
	pending := make(map[domain.PairKey]bool, len(routes))
	for pair := range routes {
		pending[pair] = true
	}

	var candidates []candidate
	for len(pending) > 0 {
		for _, task := range groupPending(routes, attempt, pending) {
			fetched, fetchErr := s.runFetchTask(ctx, logger, task, start, end)
			for _, pair := range task.pairs {
				if fetchErr == nil {
					if attempt[pair] > 0 {
						logger.Info("Fallback provider succeeded",
							slog.String("pair", pair.String()),
							slog.String("provider", task.providerCode))
					}
					candidates = append(candidates, s.extractPair(fetched, task, pair)...)
					delete(pending, pair)
					continue
				}

				cause := fmt.Sprintf("provider %s: %v", task.providerCode, fetchErr)
				if !errors.Is(fetchErr, apperrors.ErrProviderFetch) {
					// Caller-class rejections are not retried against
					// lower priorities.
					result.Errors = append(result.Errors, domain.SyncError{
						BaseCode:     pair.Base,
						QuoteCode:    pair.Quote,
						ProviderCode: task.providerCode,
						Message:      fmt.Sprintf("%s (remaining providers skipped for %s)", cause, pair),
					})
					delete(pending, pair)
					continue
				}

				attempt[pair]++
				if attempt[pair] >= len(routes[pair]) {
					result.Errors = append(result.Errors, domain.SyncError{
						BaseCode:  pair.Base,
						QuoteCode: pair.Quote,
						Message:   fmt.Sprintf("all %d configured providers failed for %s, last error: %s", len(routes[pair]), pair, cause),
					})
					delete(pending, pair)
				}
			}
		}
	}
	return candidates
}

// groupPending buckets pending pairs by the provider and home currency of
// their current attempt.
func groupPending(routes map[domain.PairKey][]domain.PairSource, attempt map[domain.PairKey]int, pending map[domain.PairKey]bool) []fetchTask {
	byGroup := make(map[string]*fetchTask)
	for pair := range pending {
		src := routes[pair][attempt[pair]]
		key := src.ProviderCode + "|" + src.BaseCode
		task, ok := byGroup[key]
		if !ok {
			task = &fetchTask{providerCode: src.ProviderCode, home: src.BaseCode}
			byGroup[key] = task
		}
		task.pairs = append(task.pairs, pair)
	}

	tasks := make([]fetchTask, 0, len(byGroup))
	for _, task := range byGroup {
		sort.Slice(task.pairs, func(i, j int) bool { return task.pairs[i].String() < task.pairs[j].String() })
		tasks = append(tasks, *task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].providerCode+tasks[i].home < tasks[j].providerCode+tasks[j].home
	})
	return tasks
}

// runFetchTask invokes one provider for its currency group. The caller
// decides from the error whether the task's pairs fall back or fail.
func (s *SyncService) runFetchTask(ctx context.Context, logger *slog.Logger, task fetchTask, start, end time.Time) (domain.RateTable, error) {
	p, err := s.registry.Get(task.providerCode)
	if err != nil {
		logger.Warn("Pair source references unknown provider",
			slog.String("provider", task.providerCode))
		// A stale route falls back like a fetch failure would.
		return nil, fmt.Errorf("%w: unknown provider %q", apperrors.ErrProviderFetch, task.providerCode)
	}

	quotes := make([]string, len(task.pairs))
	for i, pair := range task.pairs {
		quotes[i] = pair.Quote
	}

	table, err := p.FetchRates(ctx, start, end, quotes, task.home)
	if err != nil {
		if errors.Is(err, apperrors.ErrProviderFetch) {
			logger.Warn("Provider fetch failed, falling back",
				slog.String("provider", task.providerCode),
				slog.String("home", task.home),
				slog.String("error", err.Error()))
		} else {
			logger.Warn("Provider rejected fetch",
				slog.String("provider", task.providerCode),
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	return table, nil
}

// extractPair normalizes the fetched quotes for one directed pair.
func (s *SyncService) extractPair(table domain.RateTable, task fetchTask, pair domain.PairKey) []candidate {
	p, err := s.registry.Get(task.providerCode)
	if err != nil {
		return nil
	}
	multiUnit := p.MultiUnitCurrencies()

	var out []candidate
	for day, quotes := range table {
		raw, ok := quotes[pair.Quote]
		if !ok {
			continue
		}
		date, err := domain.ParseDay(day)
		if err != nil {
			continue
		}
		mult := int64(1)
		if m, ok := multiUnit[pair.Quote]; ok {
			mult = m
		}
		base, quote, rate := domain.NormalizeRate(task.home, pair.Quote, raw, mult)
		out = append(out, candidate{
			day:   day,
			base:  base,
			quote: quote,
			rate: domain.ExchangeRate{
				Date:      date,
				BaseCode:  base,
				QuoteCode: quote,
				Rate:      rate,
				Source:    task.providerCode,
			},
		})
	}
	return out
}
