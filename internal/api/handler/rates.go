package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/ratesapi-nz/rates-api/internal/usecases/querying"
	"github.com/ratesapi-nz/rates-api/pkg/apiErrors"
	"github.com/ratesapi-nz/rates-api/pkg/log"
	"github.com/ratesapi-nz/rates-api/pkg/utils"
)

func GetLatestRates(service querying.Querier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		dataType, apiErr := dataTypeFromRequest(r)
		if apiErr != nil {
			apiErrors.Write(w, apiErr)
			return
		}

		result, err := service.Latest(r.Context(), dataType)
		if err != nil {
			if err == querying.ErrNotFound {
				apiErrors.Write(w, apiErrors.New(apiErrors.ErrNotFound, "no data has been ingested for this data type yet"))
				return
			}

			logger.WithError(err).WithField("data_type", dataType).Error("rates: failed to load latest payload")
			apiErrors.Write(w, apiErrors.New(apiErrors.ErrDatabaseOperation, "failed to load latest rates"))
			return
		}

		w.Header().Set("X-Snapshot-Date", result.SnapshotDate)
		respondJSON(w, http.StatusOK, result.Document)
	})
}

func GetLatestRatesByEntity(service querying.Querier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		dataType, apiErr := dataTypeFromRequest(r)
		if apiErr != nil {
			apiErrors.Write(w, apiErr)
			return
		}

		entityID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		result, err := service.LatestEntity(r.Context(), dataType, entityID)
		if err != nil {
			if err == querying.ErrNotFound {
				apiErrors.Write(w, apiErrors.New(apiErrors.ErrNotFound, "no such institution or issuer in the latest data"))
				return
			}

			logger.WithError(err).WithFields(log.Fields{
				"data_type": dataType,
				"entity_id": entityID,
			}).Error("rates: failed to load latest payload for entity")
			apiErrors.Write(w, apiErrors.New(apiErrors.ErrDatabaseOperation, "failed to load latest rates"))
			return
		}

		w.Header().Set("X-Snapshot-Date", result.SnapshotDate)
		respondJSON(w, http.StatusOK, result.Document)
	})
}

func GetSnapshotDates(service querying.Querier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		dataType, apiErr := dataTypeFromRequest(r)
		if apiErr != nil {
			apiErrors.Write(w, apiErr)
			return
		}

		dates, err := service.Dates(r.Context(), dataType)
		if err != nil {
			logger.WithError(err).WithField("data_type", dataType).Error("rates: failed to list snapshot dates")
			apiErrors.Write(w, apiErrors.New(apiErrors.ErrDatabaseOperation, "failed to list snapshot dates"))
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"dates": dates})
	})
}

func GetHistoricalRates(service querying.Querier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		dataType, apiErr := dataTypeFromRequest(r)
		if apiErr != nil {
			apiErrors.Write(w, apiErr)
			return
		}

		date, err := utils.ValidateISODate(httprouter.ParamsFromContext(r.Context()).ByName("date"))
		if err != nil {
			apiErrors.Write(w, apiErrors.New(apiErrors.ErrInvalidDate, "date must be formatted as YYYY-MM-DD"))
			return
		}

		result, err := service.Historical(r.Context(), dataType, date)
		if err != nil {
			if err == querying.ErrNotFound {
				apiErrors.Write(w, apiErrors.New(apiErrors.ErrNotFound, "no snapshot exists for this date"))
				return
			}

			logger.WithError(err).WithFields(log.Fields{
				"data_type": dataType,
				"date":      date,
			}).Error("rates: failed to load historical snapshot")
			apiErrors.Write(w, apiErrors.New(apiErrors.ErrDatabaseOperation, "failed to load historical snapshot"))
			return
		}

		respondJSON(w, http.StatusOK, result.Document)
	})
}

func GetRatesTimeSeries(service querying.Querier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		dataType, apiErr := dataTypeFromRequest(r)
		if apiErr != nil {
			apiErrors.Write(w, apiErr)
			return
		}

		startDate, endDate, apiErr := dateRangeFromRequest(r)
		if apiErr != nil {
			apiErrors.Write(w, apiErr)
			return
		}

		series, err := service.TimeSeries(r.Context(), dataType, startDate, endDate)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"data_type":  dataType,
				"start_date": startDate,
				"end_date":   endDate,
			}).Error("rates: failed to load time series")
			apiErrors.Write(w, apiErrors.New(apiErrors.ErrDatabaseOperation, "failed to load time series"))
			return
		}

		respondJSON(w, http.StatusOK, series)
	})
}

func dateRangeFromRequest(r *http.Request) (string, string, *apiErrors.APIError) {
	startDate, err := utils.ValidateISODate(r.URL.Query().Get("start_date"))
	if err != nil {
		return "", "", apiErrors.New(apiErrors.ErrInvalidDate, "start_date must be formatted as YYYY-MM-DD")
	}

	endDate, err := utils.ValidateISODate(r.URL.Query().Get("end_date"))
	if err != nil {
		return "", "", apiErrors.New(apiErrors.ErrInvalidDate, "end_date must be formatted as YYYY-MM-DD")
	}

	if startDate > endDate {
		return "", "", apiErrors.New(apiErrors.ErrInvalidRange, "start_date must not be after end_date")
	}

	return startDate, endDate, nil
}
