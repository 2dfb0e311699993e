package handler

import (
	"net/http"

	"github.com/ratesapi-nz/rates-api/internal/api/handler/router"
	"github.com/ratesapi-nz/rates-api/internal/config"
	"github.com/ratesapi-nz/rates-api/internal/scheduler"
	"github.com/ratesapi-nz/rates-api/internal/usecases/querying"
	"github.com/ratesapi-nz/rates-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Rates(service querying.Querier) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/rates/:type",
			Method:  http.MethodGet,
			Handler: GetLatestRates(service),
		},
		{
			Path:    "/v1/rates/:type/institutions/:id",
			Method:  http.MethodGet,
			Handler: GetLatestRatesByEntity(service),
		},
		{
			Path:    "/v1/rates/:type/dates",
			Method:  http.MethodGet,
			Handler: GetSnapshotDates(service),
		},
		{
			Path:    "/v1/rates/:type/historical/:date",
			Method:  http.MethodGet,
			Handler: GetHistoricalRates(service),
		},
		{
			Path:    "/v1/rates/:type/series",
			Method:  http.MethodGet,
			Handler: GetRatesTimeSeries(service),
		},
		{
			Path:    "/v1/rates/:type/aggregates",
			Method:  http.MethodGet,
			Handler: GetAggregateTimeSeries(service),
		},
		{
			Path:    "/v1/rates/:type/aggregates/:date",
			Method:  http.MethodGet,
			Handler: GetDailyAggregate(service),
		},
	}
}

// Sync exposes the manual trigger and run history. Both routes require the
// ingest secret; they exist for operators, not public consumers.
func Sync(syncService *scheduler.RatesSyncService, querier querying.Querier, ingestion config.Ingestion) []router.Route {
	secret := middleware.IngestSecret(ingestion.IngestSecret)

	return []router.Route{
		{
			Path:        "/v1/sync/:type/run",
			Method:      http.MethodPost,
			Handler:     RunSync(syncService),
			Middlewares: []func(http.Handler) http.Handler{secret},
		},
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(syncService),
			Middlewares: []func(http.Handler) http.Handler{secret},
		},
		{
			Path:        "/v1/sync/runs",
			Method:      http.MethodGet,
			Handler:     GetSyncRuns(querier),
			Middlewares: []func(http.Handler) http.Handler{secret},
		},
	}
}
