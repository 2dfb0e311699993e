package repository

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/ratesapi-nz/rates-api/infrastructure/database/postgres"
	"github.com/ratesapi-nz/rates-api/internal/config"
	"github.com/ratesapi-nz/rates-api/internal/domain"
)

const (
	rateSnapshotsTable       = "rate_snapshots"
	dailyRateAggregatesTable = "daily_rate_aggregates"
	latestRateDataTable      = "latest_rate_data"
	ingestionRunsTable       = "ingestion_runs"

	rowIDLength     = 12
	rowIDCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// ErrInvalidIngestSecret rejects a write whose caller-supplied secret does
// not match the configured one. This is the only authentication on the
// write path.
var ErrInvalidIngestSecret = fmt.Errorf("invalid ingest secret")

// WriteResult reports what a snapshot write changed.
type WriteResult struct {
	SnapshotDate  string
	LatestUpdated bool
}

// RatesStore is the snapshot store: append-only history by (dataType, date),
// a single latest row per data type, one aggregate row per (dataType, date)
// and an ingestion audit log.
type RatesStore interface {
	GetLatest(ctx context.Context, dataType domain.DataType) (*domain.LatestRate, error)
	GetHistorical(ctx context.Context, dataType domain.DataType, date string) (*domain.Snapshot, error)
	ListDates(ctx context.Context, dataType domain.DataType) ([]string, error)
	GetTimeSeries(ctx context.Context, dataType domain.DataType, startDate, endDate string) (map[string]json.RawMessage, error)
	GetAggregate(ctx context.Context, dataType domain.DataType, date string) (*domain.DailyAggregate, error)
	GetAggregateTimeSeries(ctx context.Context, dataType domain.DataType, startDate, endDate string) (map[string]domain.DailyAggregate, error)
	Write(ctx context.Context, snapshot domain.Snapshot, aggregate domain.DailyAggregate, ingestSecret string) (*WriteResult, error)
}

type ratesStore struct {
	conn      *postgres.Connection
	ingestion config.Ingestion
}

func NewRatesStore(conn *postgres.Connection, ingestion config.Ingestion) RatesStore {
	return &ratesStore{
		conn:      conn,
		ingestion: ingestion,
	}
}

func (r *ratesStore) GetLatest(ctx context.Context, dataType domain.DataType) (*domain.LatestRate, error) {
	query, args, err := squirrel.
		Select("data_type, snapshot_date, model_type, payload, payload_hash, record_count, scraped_at, source_last_updated, updated_at").
		From(latestRateDataTable).
		Where(squirrel.Eq{"data_type": dataType}).
		OrderBy("snapshot_date DESC", "scraped_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	latest := &domain.LatestRate{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&latest.DataType,
		&latest.SnapshotDate,
		&latest.ModelType,
		&latest.Payload,
		&latest.PayloadHash,
		&latest.RecordCount,
		&latest.ScrapedAt,
		&latest.SourceLastUpdated,
		&latest.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning latest row: %w", err)
	}

	return latest, nil
}

func (r *ratesStore) GetHistorical(ctx context.Context, dataType domain.DataType, date string) (*domain.Snapshot, error) {
	query, args, err := squirrel.
		Select("data_type, snapshot_date, model_type, payload, payload_hash, record_count, scraped_at, source_last_updated").
		From(rateSnapshotsTable).
		Where(squirrel.Eq{"data_type": dataType, "snapshot_date": date}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	snapshot := &domain.Snapshot{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&snapshot.DataType,
		&snapshot.SnapshotDate,
		&snapshot.ModelType,
		&snapshot.Payload,
		&snapshot.PayloadHash,
		&snapshot.RecordCount,
		&snapshot.ScrapedAt,
		&snapshot.SourceLastUpdated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning snapshot row: %w", err)
	}

	return snapshot, nil
}

func (r *ratesStore) ListDates(ctx context.Context, dataType domain.DataType) ([]string, error) {
	query, args, err := squirrel.
		Select("snapshot_date").
		From(rateSnapshotsTable).
		Where(squirrel.Eq{"data_type": dataType}).
		OrderBy("snapshot_date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scanning snapshot date: %w", err)
		}
		dates = append(dates, date)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot dates: %w", err)
	}

	return dates, nil
}

func (r *ratesStore) GetTimeSeries(ctx context.Context, dataType domain.DataType, startDate, endDate string) (map[string]json.RawMessage, error) {
	query, args, err := squirrel.
		Select("snapshot_date, payload").
		From(rateSnapshotsTable).
		Where(squirrel.Eq{"data_type": dataType}).
		Where(squirrel.GtOrEq{"snapshot_date": startDate}).
		Where(squirrel.LtOrEq{"snapshot_date": endDate}).
		OrderBy("snapshot_date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	series := make(map[string]json.RawMessage)
	for rows.Next() {
		var date string
		var payload []byte
		if err := rows.Scan(&date, &payload); err != nil {
			return nil, fmt.Errorf("scanning time series row: %w", err)
		}
		series[date] = json.RawMessage(payload)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time series rows: %w", err)
	}

	return series, nil
}

func (r *ratesStore) GetAggregate(ctx context.Context, dataType domain.DataType, date string) (*domain.DailyAggregate, error) {
	query, args, err := squirrel.
		Select("aggregate").
		From(dailyRateAggregatesTable).
		Where(squirrel.Eq{"data_type": dataType, "snapshot_date": date}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	var aggregateJSON []byte
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&aggregateJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning aggregate row: %w", err)
	}

	aggregate := &domain.DailyAggregate{}
	if err := json.Unmarshal(aggregateJSON, aggregate); err != nil {
		return nil, fmt.Errorf("decoding aggregate JSON: %w", err)
	}

	return aggregate, nil
}

func (r *ratesStore) GetAggregateTimeSeries(ctx context.Context, dataType domain.DataType, startDate, endDate string) (map[string]domain.DailyAggregate, error) {
	query, args, err := squirrel.
		Select("snapshot_date, aggregate").
		From(dailyRateAggregatesTable).
		Where(squirrel.Eq{"data_type": dataType}).
		Where(squirrel.GtOrEq{"snapshot_date": startDate}).
		Where(squirrel.LtOrEq{"snapshot_date": endDate}).
		OrderBy("snapshot_date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	series := make(map[string]domain.DailyAggregate)
	for rows.Next() {
		var date string
		var aggregateJSON []byte
		if err := rows.Scan(&date, &aggregateJSON); err != nil {
			return nil, fmt.Errorf("scanning aggregate row: %w", err)
		}

		var aggregate domain.DailyAggregate
		if err := json.Unmarshal(aggregateJSON, &aggregate); err != nil {
			return nil, fmt.Errorf("decoding aggregate JSON for %s: %w", date, err)
		}
		series[date] = aggregate
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating aggregate rows: %w", err)
	}

	return series, nil
}

// Write applies the whole ingestion as one transaction: snapshot upsert,
// aggregate upsert, conditional latest upsert with duplicate pruning, and the
// success audit row. The ingest secret is checked before any SQL runs.
func (r *ratesStore) Write(ctx context.Context, snapshot domain.Snapshot, aggregate domain.DailyAggregate, ingestSecret string) (*WriteResult, error) {
	if r.ingestion.IngestSecret == "" {
		return nil, fmt.Errorf("ingest secret is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(ingestSecret), []byte(r.ingestion.IngestSecret)) != 1 {
		return nil, ErrInvalidIngestSecret
	}

	now := time.Now().UTC().Format(time.RFC3339)
	result := &WriteResult{SnapshotDate: snapshot.SnapshotDate}

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := r.upsertSnapshot(ctx, tx, snapshot); err != nil {
			return err
		}

		if err := r.upsertAggregate(ctx, tx, snapshot, aggregate, now); err != nil {
			return err
		}

		latestUpdated, err := r.reconcileLatest(ctx, tx, snapshot, now)
		if err != nil {
			return err
		}
		result.LatestUpdated = latestUpdated

		return r.appendRun(ctx, tx, domain.IngestionRun{
			DataType:     snapshot.DataType,
			SnapshotDate: snapshot.SnapshotDate,
			Status:       domain.RunStatusSuccess,
			StartedAt:    snapshot.ScrapedAt,
			FinishedAt:   now,
			PayloadHash:  snapshot.PayloadHash,
		})
	})
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return nil, err
	}

	return result, nil
}

func (r *ratesStore) upsertSnapshot(ctx context.Context, tx *sql.Tx, snapshot domain.Snapshot) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(rateSnapshotsTable).
		Columns("id", "data_type", "snapshot_date", "model_type", "payload", "payload_hash", "record_count", "scraped_at", "source_last_updated").
		Values(
			newRowID(),
			snapshot.DataType,
			snapshot.SnapshotDate,
			snapshot.ModelType,
			[]byte(snapshot.Payload),
			snapshot.PayloadHash,
			snapshot.RecordCount,
			snapshot.ScrapedAt,
			snapshot.SourceLastUpdated,
		).
		Suffix(`
			ON CONFLICT (data_type, snapshot_date) DO UPDATE SET
				model_type = EXCLUDED.model_type,
				payload = EXCLUDED.payload,
				payload_hash = EXCLUDED.payload_hash,
				record_count = EXCLUDED.record_count,
				scraped_at = EXCLUDED.scraped_at,
				source_last_updated = EXCLUDED.source_last_updated
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building snapshot upsert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting snapshot: %w", err)
	}
	return nil
}

func (r *ratesStore) upsertAggregate(ctx context.Context, tx *sql.Tx, snapshot domain.Snapshot, aggregate domain.DailyAggregate, now string) error {
	aggregateJSON, err := json.Marshal(aggregate)
	if err != nil {
		return fmt.Errorf("encoding aggregate JSON: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(dailyRateAggregatesTable).
		Columns("id", "data_type", "snapshot_date", "aggregate", "payload_hash", "generated_at").
		Values(
			newRowID(),
			snapshot.DataType,
			snapshot.SnapshotDate,
			aggregateJSON,
			snapshot.PayloadHash,
			now,
		).
		Suffix(`
			ON CONFLICT (data_type, snapshot_date) DO UPDATE SET
				aggregate = EXCLUDED.aggregate,
				payload_hash = EXCLUDED.payload_hash,
				generated_at = EXCLUDED.generated_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building aggregate upsert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting aggregate: %w", err)
	}
	return nil
}

// reconcileLatest updates the latest pointer only when the new snapshot is at
// least as recent under the (snapshotDate, scrapedAt) lexical order, and
// prunes any duplicate latest rows left behind by earlier write races.
func (r *ratesStore) reconcileLatest(ctx context.Context, tx *sql.Tx, snapshot domain.Snapshot, now string) (bool, error) {
	query, args, err := squirrel.
		Select("id, snapshot_date, scraped_at").
		From(latestRateDataTable).
		Where(squirrel.Eq{"data_type": snapshot.DataType}).
		OrderBy("snapshot_date DESC", "scraped_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("building latest query: %w", err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("querying latest rows: %w", err)
	}

	type latestRow struct {
		id           string
		snapshotDate string
		scrapedAt    string
	}
	var latestRows []latestRow
	for rows.Next() {
		var row latestRow
		if err := rows.Scan(&row.id, &row.snapshotDate, &row.scrapedAt); err != nil {
			rows.Close()
			return false, fmt.Errorf("scanning latest row: %w", err)
		}
		latestRows = append(latestRows, row)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return false, fmt.Errorf("iterating latest rows: %w", err)
	}
	rows.Close()

	shouldUpdate := len(latestRows) == 0 ||
		domain.CompareSnapshotRecency(
			snapshot.SnapshotDate, snapshot.ScrapedAt,
			latestRows[0].snapshotDate, latestRows[0].scrapedAt,
		) >= 0

	if len(latestRows) == 0 {
		insert, insertArgs, err := squirrel.StatementBuilder.
			Insert(latestRateDataTable).
			Columns("id", "data_type", "snapshot_date", "model_type", "payload", "payload_hash", "record_count", "scraped_at", "source_last_updated", "updated_at").
			Values(
				newRowID(),
				snapshot.DataType,
				snapshot.SnapshotDate,
				snapshot.ModelType,
				[]byte(snapshot.Payload),
				snapshot.PayloadHash,
				snapshot.RecordCount,
				snapshot.ScrapedAt,
				snapshot.SourceLastUpdated,
				now,
			).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return false, fmt.Errorf("building latest insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insert, insertArgs...); err != nil {
			return false, fmt.Errorf("inserting latest row: %w", err)
		}
	} else if shouldUpdate {
		update, updateArgs, err := squirrel.StatementBuilder.
			Update(latestRateDataTable).
			Set("snapshot_date", snapshot.SnapshotDate).
			Set("model_type", snapshot.ModelType).
			Set("payload", []byte(snapshot.Payload)).
			Set("payload_hash", snapshot.PayloadHash).
			Set("record_count", snapshot.RecordCount).
			Set("scraped_at", snapshot.ScrapedAt).
			Set("source_last_updated", snapshot.SourceLastUpdated).
			Set("updated_at", now).
			Where(squirrel.Eq{"id": latestRows[0].id}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return false, fmt.Errorf("building latest update: %w", err)
		}
		if _, err := tx.ExecContext(ctx, update, updateArgs...); err != nil {
			return false, fmt.Errorf("updating latest row: %w", err)
		}
	}

	if len(latestRows) > 1 {
		duplicateIDs := make([]string, 0, len(latestRows)-1)
		for _, duplicate := range latestRows[1:] {
			duplicateIDs = append(duplicateIDs, duplicate.id)
		}

		prune, pruneArgs, err := squirrel.
			Delete(latestRateDataTable).
			Where(squirrel.Eq{"id": duplicateIDs}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return false, fmt.Errorf("building latest prune: %w", err)
		}
		if _, err := tx.ExecContext(ctx, prune, pruneArgs...); err != nil {
			return false, fmt.Errorf("pruning duplicate latest rows: %w", err)
		}
	}

	return shouldUpdate, nil
}

func (r *ratesStore) appendRun(ctx context.Context, tx *sql.Tx, run domain.IngestionRun) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(ingestionRunsTable).
		Columns("id", "data_type", "snapshot_date", "status", "reason", "started_at", "finished_at", "payload_hash").
		Values(
			newRowID(),
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

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("appending ingestion run: %w", err)
	}
	return nil
}

func newRowID() string {
	id, _ := gonanoid.Generate(rowIDCharacters, rowIDLength)
	return id
}
