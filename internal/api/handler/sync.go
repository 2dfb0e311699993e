package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ratesapi-nz/rates-api/internal/domain"
	"github.com/ratesapi-nz/rates-api/internal/scheduler"
	"github.com/ratesapi-nz/rates-api/internal/usecases/ingesting"
	"github.com/ratesapi-nz/rates-api/internal/usecases/querying"
	"github.com/ratesapi-nz/rates-api/pkg/apiErrors"
	"github.com/ratesapi-nz/rates-api/pkg/log"
)

const defaultRunHistoryLimit = 50

// RunSync triggers one ingestion outside the schedule. "No changes" and a
// guardrail rejection are reported as outcomes, not errors; the caller
// already authenticated via the ingest secret middleware.
func RunSync(syncService *scheduler.RatesSyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		dataType, apiErr := dataTypeFromRequest(r)
		if apiErr != nil {
			apiErrors.Write(w, apiErr)
			return
		}

		logger.WithField("data_type", dataType).Info("sync: manual run requested")

		result, err := syncService.RunOnce(r.Context(), dataType)
		switch err {
		case nil:
			respondJSON(w, http.StatusOK, map[string]any{
				"outcome":       "stored",
				"dataType":      result.DataType,
				"snapshotDate":  result.SnapshotDate,
				"recordCount":   result.RecordCount,
				"latestUpdated": result.LatestUpdated,
			})
		case ingesting.ErrNoChanges:
			respondJSON(w, http.StatusOK, map[string]any{
				"outcome":  "skipped",
				"dataType": dataType,
				"reason":   "no changes since the last accepted payload",
			})
		case ingesting.ErrQualityRejected:
			respondJSON(w, http.StatusOK, map[string]any{
				"outcome":  "rejected",
				"dataType": dataType,
				"reason":   "payload failed the quality guardrail",
			})
		default:
			logger.WithError(err).WithField("data_type", dataType).Error("sync: manual run failed")
			apiErrors.Write(w, apiErrors.New(apiErrors.ErrExternalService, "ingestion run failed"))
		}
	})
}

func GetSyncStatus(syncService *scheduler.RatesSyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		running, startedAt, completedAt := syncService.Status()

		body := map[string]any{
			"running": running,
		}
		if !startedAt.IsZero() {
			body["lastStartedAt"] = startedAt.Format(time.RFC3339)
		}
		if !completedAt.IsZero() {
			body["lastCompletedAt"] = completedAt.Format(time.RFC3339)
		}

		respondJSON(w, http.StatusOK, body)
	})
}

func GetSyncRuns(service querying.Querier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var dataType domain.DataType
		if raw := r.URL.Query().Get("type"); raw != "" {
			if !domain.IsDataType(raw) {
				apiErrors.Write(w, apiErrors.New(apiErrors.ErrInvalidDataType, "unknown data type"))
				return
			}
			dataType = domain.DataType(raw)
		}

		limit := uint64(defaultRunHistoryLimit)
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || parsed == 0 {
				apiErrors.Write(w, apiErrors.New(apiErrors.ErrInvalidRequest, "limit must be a positive integer"))
				return
			}
			limit = parsed
		}

		runs, err := service.RecentRuns(r.Context(), dataType, limit)
		if err != nil {
			logger.WithError(err).Error("sync: failed to list ingestion runs")
			apiErrors.Write(w, apiErrors.New(apiErrors.ErrDatabaseOperation, "failed to list ingestion runs"))
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"runs": runs})
	})
}
