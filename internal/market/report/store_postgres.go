package report

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lekhoa/reloop/internal/platform/dberr"
	"github.com/lekhoa/reloop/internal/platform/identifier"
	"github.com/lekhoa/reloop/internal/platform/upsert"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the PostgreSQL report store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// UpsertByReporter inserts or replaces the report keyed by reporter email.
func (store *PostgresStore) UpsertByReporter(ctx context.Context, report *Report) (*upsert.Result, error) {
	const query = `
		INSERT INTO market.product_report (id, reporter_email, product_id, details, createdat, updatedat)
		VALUES ($1, $2, NULLIF($3, ''), $4, now(), now())
		ON CONFLICT (reporter_email) DO UPDATE
		SET product_id = EXCLUDED.product_id,
		    details = EXCLUDED.details,
		    updatedat = now()
		RETURNING id, (xmax = 0) AS created`

	if report.Details == nil {
		report.Details = map[string]any{}
	}

	result := &upsert.Result{}
	err := store.pool.QueryRow(ctx, query,
		identifier.New(),
		report.ReporterEmail,
		report.ProductID,
		report.Details,
	).Scan(&result.ID, &result.Created)
	if err != nil {
		return nil, dberr.Wrap(err, "report_upsert_by_reporter")
	}

	return result, nil
}

// List returns every report, newest first.
func (store *PostgresStore) List(ctx context.Context) ([]*Report, error) {
	const query = `
		SELECT id, reporter_email, COALESCE(product_id, ''), details, createdat, updatedat
		FROM market.product_report
		ORDER BY createdat DESC`

	rows, err := store.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "report_list")
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		report := &Report{}
		if err := rows.Scan(
			&report.ID,
			&report.ReporterEmail,
			&report.ProductID,
			&report.Details,
			&report.CreatedAt,
			&report.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "report_scan")
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}
