// Package ingesting runs the scrape-to-store pipeline: fetch, extract,
// validate, change-detect, guardrail, aggregate, write. One run owns one
// write; nothing here is shared mutable state.
package ingesting

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ratesapi-nz/rates-api/infrastructure/integrator/interest"
	"github.com/ratesapi-nz/rates-api/infrastructure/repository"
	"github.com/ratesapi-nz/rates-api/internal/config"
	"github.com/ratesapi-nz/rates-api/internal/domain"
	"github.com/ratesapi-nz/rates-api/internal/extractor"
	"github.com/ratesapi-nz/rates-api/internal/usecases/aggregating"
	"github.com/ratesapi-nz/rates-api/pkg/utils"
)

var (
	// ErrNoChanges reports that the scraped data equals the stored latest
	// payload. Expected on most runs; the caller skips the write.
	ErrNoChanges = errors.New("scraped data matches the stored latest payload")

	// ErrQualityRejected reports a guardrail rejection. Recoverable: the next
	// scheduled run usually resolves it.
	ErrQualityRejected = errors.New("payload rejected by the quality guardrail")

	// ErrValidationFailed reports an extracted document that fails shape
	// constraints. The stored latest payload is untouched.
	ErrValidationFailed = errors.New("extracted document failed validation")
)

// Result reports one completed ingestion run.
type Result struct {
	DataType      domain.DataType
	SnapshotDate  string
	RecordCount   int
	PayloadHash   string
	LatestUpdated bool
}

// Ingester runs the pipeline for one data type per call.
type Ingester interface {
	Ingest(ctx context.Context, dataType domain.DataType) (*Result, error)
}

type Service struct {
	ingestion  config.Ingestion
	integrator interest.Integrator
	store      repository.RatesStore
	runs       repository.IngestionRunRepository
	now        func() time.Time
}

func NewService(
	ingestion config.Ingestion,
	integrator interest.Integrator,
	store repository.RatesStore,
	runs repository.IngestionRunRepository,
) *Service {
	return &Service{
		ingestion:  ingestion,
		integrator: integrator,
		store:      store,
		runs:       runs,
		now:        time.Now,
	}
}

// Ingest runs fetch, extract, validate, change detection, guardrail,
// aggregation and the store write for one data type. ErrNoChanges and
// ErrQualityRejected are expected outcomes, not hard failures; both leave the
// stored latest payload untouched and append an audit row.
func (s *Service) Ingest(ctx context.Context, dataType domain.DataType) (*Result, error) {
	startedAt := s.now().UTC()
	scrapedAt := startedAt.Format(time.RFC3339)
	snapshotDate := domain.SnapshotDateOf(startedAt)

	logger := logrus.WithFields(logrus.Fields{
		"data_type":     dataType,
		"snapshot_date": snapshotDate,
	})

	pageHTML, err := s.integrator.FetchPage(ctx, dataType)
	if err != nil {
		logger.WithError(err).WithField("stage", "fetch").Error("Fetching source page failed")
		s.recordRun(ctx, dataType, snapshotDate, domain.RunStatusFailed, "fetch: "+err.Error(), scrapedAt, "")
		return nil, errors.Wrap(err, "fetching source page")
	}

	doc, err := extractor.Extract(dataType, pageHTML, startedAt)
	if err != nil {
		logger.WithError(err).WithField("stage", "extract").Error("Extraction failed")
		s.recordRun(ctx, dataType, snapshotDate, domain.RunStatusFailed, "extract: "+err.Error(), scrapedAt, "")
		return nil, errors.Wrap(err, "extracting document")
	}

	if reasons := domain.ValidateDocument(doc); len(reasons) > 0 {
		logger.WithFields(logrus.Fields{
			"stage":   "validate",
			"reasons": reasons,
		}).Error("Extracted document failed validation")
		s.recordRun(ctx, dataType, snapshotDate, domain.RunStatusFailed, "validate: "+strings.Join(reasons, "; "), scrapedAt, "")
		return nil, ErrValidationFailed
	}

	latest, err := s.store.GetLatest(ctx, dataType)
	if err != nil {
		logger.WithError(err).WithField("stage", "latest").Error("Loading stored latest payload failed")
		return nil, errors.Wrap(err, "loading stored latest payload")
	}

	summary := doc.Summary()
	logger = logger.WithFields(logrus.Fields{
		"entities":    summary.Entities,
		"products":    summary.Products,
		"rate_points": summary.RatePoints,
	})

	if latest != nil {
		changed, err := HasDataChanged(doc, latest.Payload)
		if err != nil {
			logger.WithError(err).WithField("stage", "change_detect").Error("Change detection failed")
			return nil, errors.Wrap(err, "detecting changes")
		}
		if !changed {
			logger.WithField("stage", "change_detect").Info("No changes since last accepted payload, skipping write")
			s.recordRun(ctx, dataType, snapshotDate, domain.RunStatusSkipped, "no changes", scrapedAt, latest.PayloadHash)
			return nil, ErrNoChanges
		}
	}

	previousSummary := s.previousSummary(dataType, latest, logger)
	if reasons := EvaluateGuardrail(s.ingestion, dataType, summary, previousSummary); len(reasons) > 0 {
		if !s.ingestion.AllowSuspiciousData {
			logger.WithFields(logrus.Fields{
				"stage":   "guardrail",
				"reasons": reasons,
			}).Warn("Payload rejected by quality guardrail")
			s.recordRun(ctx, dataType, snapshotDate, domain.RunStatusSkipped, "guardrail: "+strings.Join(reasons, "; "), scrapedAt, "")
			return nil, ErrQualityRejected
		}

		logger.WithFields(logrus.Fields{
			"stage":   "guardrail",
			"reasons": reasons,
		}).Warn("Guardrail failure overridden by operator configuration, storing anyway")
	}

	aggregate, err := aggregating.ComputeDailyAggregate(doc, snapshotDate, startedAt)
	if err != nil {
		logger.WithError(err).WithField("stage", "aggregate").Error("Computing daily aggregate failed")
		return nil, errors.Wrap(err, "computing daily aggregate")
	}

	payload, err := doc.DataJSON()
	if err != nil {
		return nil, errors.Wrap(err, "encoding payload")
	}
	payloadHash, err := utils.HashJSON(json.RawMessage(payload))
	if err != nil {
		return nil, errors.Wrap(err, "hashing payload")
	}

	snapshot := domain.Snapshot{
		DataType:          dataType,
		SnapshotDate:      snapshotDate,
		ModelType:         doc.ModelType(),
		Payload:           payload,
		PayloadHash:       payloadHash,
		RecordCount:       summary.RatePoints,
		ScrapedAt:         scrapedAt,
		SourceLastUpdated: doc.LastUpdatedAt(),
	}

	writeResult, err := s.store.Write(ctx, snapshot, aggregate, s.ingestion.IngestSecret)
	if err != nil {
		logger.WithError(err).WithField("stage", "store").Error("Snapshot write failed")
		s.recordRun(ctx, dataType, snapshotDate, domain.RunStatusFailed, "store: "+err.Error(), scrapedAt, payloadHash)
		return nil, errors.Wrap(err, "writing snapshot")
	}

	logger.WithFields(logrus.Fields{
		"stage":          "store",
		"payload_hash":   payloadHash,
		"latest_updated": writeResult.LatestUpdated,
	}).Info("Snapshot stored")

	return &Result{
		DataType:      dataType,
		SnapshotDate:  snapshotDate,
		RecordCount:   summary.RatePoints,
		PayloadHash:   payloadHash,
		LatestUpdated: writeResult.LatestUpdated,
	}, nil
}

// previousSummary recounts the stored latest payload so the guardrail's
// relative floors compare like with like. A payload that fails to parse is
// treated as absent rather than failing the run.
func (s *Service) previousSummary(dataType domain.DataType, latest *domain.LatestRate, logger *logrus.Entry) *domain.DatasetSummary {
	if latest == nil {
		return nil
	}

	wrapped, err := wrapDataArray(latest.ModelType, latest.Payload)
	if err != nil {
		logger.WithError(err).Warn("Stored latest payload failed to parse, skipping relative guardrail")
		return nil
	}
	previous, err := domain.ParseDocument(dataType, wrapped)
	if err != nil {
		logger.WithError(err).Warn("Stored latest payload failed to parse, skipping relative guardrail")
		return nil
	}

	summary := previous.Summary()
	return &summary
}

func (s *Service) recordRun(ctx context.Context, dataType domain.DataType, snapshotDate string, status domain.RunStatus, reason, startedAt, payloadHash string) {
	run := domain.IngestionRun{
		DataType:     dataType,
		SnapshotDate: snapshotDate,
		Status:       status,
		Reason:       reason,
		StartedAt:    startedAt,
		FinishedAt:   s.now().UTC().Format(time.RFC3339),
		PayloadHash:  payloadHash,
	}

	if err := s.runs.Record(ctx, run); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"data_type": dataType,
			"status":    status,
		}).Error("Recording ingestion run failed")
	}
}
