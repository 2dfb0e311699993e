package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/ratesapi-nz/rates-api/infrastructure/database/postgres"
	"github.com/ratesapi-nz/rates-api/internal/domain"
)

// IngestionRunRepository records runs that never reach the snapshot write
// transaction (skipped and failed ones) and serves the run history. Success
// rows are appended by RatesStore.Write inside its transaction.
type IngestionRunRepository interface {
	Record(ctx context.Context, run domain.IngestionRun) error
	ListRecent(ctx context.Context, dataType domain.DataType, limit uint64) ([]domain.IngestionRun, error)
}

type ingestionRunRepository struct {
	conn *postgres.Connection
}

func NewIngestionRunRepository(conn *postgres.Connection) IngestionRunRepository {
	return &ingestionRunRepository{conn: conn}
}

func (r *ingestionRunRepository) Record(ctx context.Context, run domain.IngestionRun) error {
	if run.ID == "" {
		run.ID = newRowID()
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(ingestionRunsTable).
		Columns("id", "data_type", "snapshot_date", "status", "reason", "started_at", "finished_at", "payload_hash").
		Values(
			run.ID,
			run.DataType,
			run.SnapshotDate,
			run.Status,
			run.Reason,
			run.StartedAt,
			run.FinishedAt,
			run.PayloadHash,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building ingestion run insert: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("recording ingestion run: %w", err)
	}
	return nil
}

func (r *ingestionRunRepository) ListRecent(ctx context.Context, dataType domain.DataType, limit uint64) ([]domain.IngestionRun, error) {
	builder := squirrel.
		Select("id, data_type, snapshot_date, status, reason, started_at, finished_at, payload_hash").
		From(ingestionRunsTable).
		OrderBy("started_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar)

	if dataType != "" {
		builder = builder.Where(squirrel.Eq{"data_type": dataType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.IngestionRun, 0)
	for rows.Next() {
		var run domain.IngestionRun
		if err := rows.Scan(
			&run.ID,
			&run.DataType,
			&run.SnapshotDate,
			&run.Status,
			&run.Reason,
			&run.StartedAt,
			&run.FinishedAt,
			&run.PayloadHash,
		); err != nil {
			return nil, fmt.Errorf("scanning ingestion run: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingestion runs: %w", err)
	}

	return runs, nil
}
