package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
)

// PgxPairSourceRepository implements the pair-source repository ports using
// pgxpool.
type PgxPairSourceRepository struct {
	BaseRepository
}

func newPgxPairSourceRepository(db *pgxpool.Pool) *PgxPairSourceRepository {
	return &PgxPairSourceRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const pairSourceColumns = `base_code, quote_code, provider_code, priority, created_at, updated_at`

func scanPairSources(rows pgx.Rows) ([]domain.PairSource, error) {
	defer rows.Close()

	var sources []domain.PairSource
	for rows.Next() {
		var ps domain.PairSource
		if err := rows.Scan(&ps.BaseCode, &ps.QuoteCode, &ps.ProviderCode, &ps.Priority, &ps.CreatedAt, &ps.UpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan pair source", err)
		}
		sources = append(sources, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating pair sources", err)
	}
	return sources, nil
}

// ListPairSources retrieves configured pair sources matching the filter,
// ordered by base, quote, priority.
func (r *PgxPairSourceRepository) ListPairSources(ctx context.Context, filter domain.PairSourceFilter) ([]domain.PairSource, error) {
	query := `SELECT ` + pairSourceColumns + ` FROM pair_sources WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.BaseCode != "" {
		query += fmt.Sprintf(" AND base_code = $%d", argNum)
		args = append(args, filter.BaseCode)
		argNum++
	}
	if filter.QuoteCode != "" {
		query += fmt.Sprintf(" AND quote_code = $%d", argNum)
		args = append(args, filter.QuoteCode)
		argNum++
	}
	if filter.ProviderCode != "" {
		query += fmt.Sprintf(" AND provider_code = $%d", argNum)
		args = append(args, filter.ProviderCode)
		argNum++
	}
	query += " ORDER BY base_code, quote_code, priority;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list pair sources", err)
	}
	return scanPairSources(rows)
}

// keysPerQuery keeps a row-value key IN list under the placeholder ceiling:
// three placeholders per (base, quote, priority) key.
const keysPerQuery = maxQueryParams / 3

// FindPairSourcesByKeys retrieves the stored rows for the given
// (base, quote, priority) keys, in row-value IN queries chunked to stay
// under the placeholder ceiling.
func (r *PgxPairSourceRepository) FindPairSourcesByKeys(ctx context.Context, keys []domain.PairSourceKey) ([]domain.PairSource, error) {
	var sources []domain.PairSource
	for _, chunk := range chunkSlice(keys, keysPerQuery) {
		args := []interface{}{}
		placeholders := make([]string, len(chunk))
		for i, k := range chunk {
			placeholders[i] = fmt.Sprintf("($%d, $%d, $%d)", len(args)+1, len(args)+2, len(args)+3)
			args = append(args, k.Base, k.Quote, k.Priority)
		}

		query := `
			SELECT ` + pairSourceColumns + `
			FROM pair_sources
			WHERE (base_code, quote_code, priority) IN (` + strings.Join(placeholders, ", ") + `);
		`

		rows, err := r.Pool.Query(ctx, query, args...)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to find pair sources by keys", err)
		}
		scanned, err := scanPairSources(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, scanned...)
	}
	return sources, nil
}

// ListPairSourcesForQuotes retrieves every pair source whose quote currency
// is in quotes, ordered by base, quote, priority.
func (r *PgxPairSourceRepository) ListPairSourcesForQuotes(ctx context.Context, quotes []string) ([]domain.PairSource, error) {
	if len(quotes) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + pairSourceColumns + `
		FROM pair_sources
		WHERE quote_code = ANY($1)
		ORDER BY base_code, quote_code, priority;
	`

	rows, err := r.Pool.Query(ctx, query, quotes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list pair sources for quotes", err)
	}
	return scanPairSources(rows)
}

// UpsertPairSources inserts or updates the batch on the
// (base, quote, priority) natural key, atomically. created_at survives
// updates; updated_at does not.
func (r *PgxPairSourceRepository) UpsertPairSources(ctx context.Context, items []domain.PairSource) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	upsertQuery := `
		INSERT INTO pair_sources (base_code, quote_code, provider_code, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (base_code, quote_code, priority)
		DO UPDATE SET provider_code = EXCLUDED.provider_code, updated_at = EXCLUDED.updated_at;
	`
	for _, item := range items {
		batch.Queue(upsertQuery, item.BaseCode, item.QuoteCode, item.ProviderCode, item.Priority, item.CreatedAt, item.UpdatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to execute pair source upsert batch", err)
	}

	return r.Commit(ctx, tx)
}

// DeletePairSources removes pair sources for a directed pair, optionally
// narrowed to one provider, and reports how many rows were removed.
func (r *PgxPairSourceRepository) DeletePairSources(ctx context.Context, base, quote, providerCode string) (int, error) {
	query := `DELETE FROM pair_sources WHERE base_code = $1 AND quote_code = $2`
	args := []interface{}{base, quote}
	if providerCode != "" {
		query += " AND provider_code = $3"
		args = append(args, providerCode)
	}

	tag, err := r.Pool.Exec(ctx, query+";", args...)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete pair sources", err)
	}
	return int(tag.RowsAffected()), nil
}
