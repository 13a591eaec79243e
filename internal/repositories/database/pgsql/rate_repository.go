package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ratesworks/fx_rates_app/internal/apperrors"
	"github.com/ratesworks/fx_rates_app/internal/core/domain"
)

// maxQueryParams is the postgres placeholder ceiling this repository stays
// under. Statements that could exceed it are chunked.
const maxQueryParams = 500

// PgxRateRepository implements the rate repository ports using pgxpool.
type PgxRateRepository struct {
	BaseRepository
}

func newPgxRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const rateColumns = `rate_date, base_code, quote_code, rate, source, fetched_at`

// pairsPerQuery keeps a row-value pair IN list under the placeholder
// ceiling: two placeholders per pair plus the two range bounds.
const pairsPerQuery = (maxQueryParams - 2) / 2

// FindRatesInRange retrieves every stored rate for the given directed pairs
// within [start, end], keyed by (day, base, quote). The pair list goes into
// row-value IN clauses, chunked to stay under the placeholder ceiling.
func (r *PgxRateRepository) FindRatesInRange(ctx context.Context, pairs []domain.PairKey, start, end time.Time) (map[domain.RateKey]domain.ExchangeRate, error) {
	result := make(map[domain.RateKey]domain.ExchangeRate)

	for _, chunk := range chunkSlice(pairs, pairsPerQuery) {
		args := []interface{}{start, end}
		placeholders := make([]string, len(chunk))
		for i, p := range chunk {
			placeholders[i] = fmt.Sprintf("($%d, $%d)", len(args)+1, len(args)+2)
			args = append(args, p.Base, p.Quote)
		}

		query := `
			SELECT ` + rateColumns + `
			FROM exchange_rates
			WHERE rate_date BETWEEN $1 AND $2
			AND (base_code, quote_code) IN (` + strings.Join(placeholders, ", ") + `);
		`

		rows, err := r.Pool.Query(ctx, query, args...)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to find rates in range", err)
		}

		for rows.Next() {
			var rate domain.ExchangeRate
			if err := rows.Scan(&rate.Date, &rate.BaseCode, &rate.QuoteCode, &rate.Rate, &rate.Source, &rate.FetchedAt); err != nil {
				rows.Close()
				return nil, apperrors.NewAppError(500, "failed to scan rate", err)
			}
			result[domain.KeyOf(rate)] = rate
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, apperrors.NewAppError(500, "error iterating rates", err)
		}
	}
	return result, nil
}

// FindRateOnOrBefore retrieves the most recent rate for the directed pair at
// or before date. There is no limit on how far back the scan reaches.
func (r *PgxRateRepository) FindRateOnOrBefore(ctx context.Context, base, quote string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE base_code = $1 AND quote_code = $2 AND rate_date <= $3
		ORDER BY rate_date DESC
		LIMIT 1;
	`

	var rate domain.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, base, quote, date).Scan(
		&rate.Date, &rate.BaseCode, &rate.QuoteCode, &rate.Rate, &rate.Source, &rate.FetchedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rate for " + base + "/" + quote + " on or before " + domain.DayKey(date))
		}
		return nil, apperrors.NewAppError(500, "failed to find rate on or before date", err)
	}
	return &rate, nil
}

// ListRates retrieves stored rates matching the filter, newest first, with
// offset pagination. The second result is the total match count.
func (r *PgxRateRepository) ListRates(ctx context.Context, filter domain.RateFilter, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	baseQuery := `FROM exchange_rates WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.BaseCode != "" {
		baseQuery += fmt.Sprintf(" AND base_code = $%d", argNum)
		args = append(args, filter.BaseCode)
		argNum++
	}
	if filter.QuoteCode != "" {
		baseQuery += fmt.Sprintf(" AND quote_code = $%d", argNum)
		args = append(args, filter.QuoteCode)
		argNum++
	}
	if filter.Source != "" {
		baseQuery += fmt.Sprintf(" AND source = $%d", argNum)
		args = append(args, filter.Source)
		argNum++
	}
	if filter.From != nil {
		baseQuery += fmt.Sprintf(" AND rate_date >= $%d", argNum)
		args = append(args, *filter.From)
		argNum++
	}
	if filter.To != nil {
		baseQuery += fmt.Sprintf(" AND rate_date <= $%d", argNum)
		args = append(args, *filter.To)
		argNum++
	}

	var total int
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count rates", err)
	}
	if total == 0 {
		return []domain.ExchangeRate{}, 0, nil
	}

	baseQuery += " ORDER BY rate_date DESC, base_code, quote_code"
	offset := (page - 1) * pageSize
	baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, pageSize, offset)

	rows, err := r.Pool.Query(ctx, "SELECT "+rateColumns+" "+baseQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list rates", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var rate domain.ExchangeRate
		if err := rows.Scan(&rate.Date, &rate.BaseCode, &rate.QuoteCode, &rate.Rate, &rate.Source, &rate.FetchedAt); err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan rate", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating rates", err)
	}
	return rates, total, nil
}

// UpsertRates inserts or replaces rates on their (date, base, quote) natural
// key. All statements go out in one batch inside one transaction.
func (r *PgxRateRepository) UpsertRates(ctx context.Context, rates []domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	upsertQuery := `
		INSERT INTO exchange_rates (rate_date, base_code, quote_code, rate, source, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (rate_date, base_code, quote_code)
		DO UPDATE SET rate = EXCLUDED.rate, source = EXCLUDED.source, fetched_at = EXCLUDED.fetched_at;
	`
	for _, rate := range rates {
		batch.Queue(upsertQuery, rate.Date, rate.BaseCode, rate.QuoteCode, rate.Rate, rate.Source, rate.FetchedAt)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to execute rate upsert batch", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteRatesInRange removes every rate for the directed pair within
// [start, end]. The matching dates are read first, then deleted in IN-list
// chunks that stay under the placeholder ceiling, all inside one transaction
// so a partially applied deletion can never be observed.
func (r *PgxRateRepository) DeleteRatesInRange(ctx context.Context, base, quote string, start, end time.Time) (int, int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}

	rows, err := tx.Query(ctx, `
		SELECT rate_date FROM exchange_rates
		WHERE base_code = $1 AND quote_code = $2 AND rate_date BETWEEN $3 AND $4;
	`, base, quote, start, end)
	if err != nil {
		_ = r.Rollback(ctx, tx)
		return 0, 0, apperrors.NewAppError(500, "failed to find rates to delete", err)
	}

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			rows.Close()
			_ = r.Rollback(ctx, tx)
			return 0, 0, apperrors.NewAppError(500, "failed to scan rate date", err)
		}
		dates = append(dates, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		_ = r.Rollback(ctx, tx)
		return 0, 0, apperrors.NewAppError(500, "error iterating rate dates", err)
	}

	existing := len(dates)
	if existing == 0 {
		_ = r.Rollback(ctx, tx)
		return 0, 0, nil
	}

	deleted := 0
	for _, chunk := range chunkSlice(dates, maxQueryParams-2) {
		args := []interface{}{base, quote}
		placeholders := make([]string, len(chunk))
		for i, d := range chunk {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, d)
		}
		tag, err := tx.Exec(ctx, `
			DELETE FROM exchange_rates
			WHERE base_code = $1 AND quote_code = $2
			AND rate_date IN (`+strings.Join(placeholders, ", ")+`);
		`, args...)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return 0, 0, apperrors.NewAppError(500, "failed to delete rates", err)
		}
		deleted += int(tag.RowsAffected())
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, 0, err
	}
	return existing, deleted, nil
}

// chunkSlice splits items into slices of at most size elements.
func chunkSlice[T any](items []T, size int) [][]T {
	var chunks [][]T
	for len(items) > size {
		chunks = append(chunks, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}
