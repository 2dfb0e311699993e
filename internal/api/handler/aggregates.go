package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/ratesapi-nz/rates-api/internal/usecases/querying"
	"github.com/ratesapi-nz/rates-api/pkg/apiErrors"
	"github.com/ratesapi-nz/rates-api/pkg/log"
	"github.com/ratesapi-nz/rates-api/pkg/utils"
)

func GetDailyAggregate(service querying.Querier) http.Handler {
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

		aggregate, err := service.Aggregate(r.Context(), dataType, date)
		if err != nil {
			if err == querying.ErrNotFound {
				apiErrors.Write(w, apiErrors.New(apiErrors.ErrNotFound, "no aggregate exists for this date"))
				return
			}

			logger.WithError(err).WithFields(log.Fields{
				"data_type": dataType,
				"date":      date,
			}).Error("aggregates: failed to load daily aggregate")
			apiErrors.Write(w, apiErrors.New(apiErrors.ErrDatabaseOperation, "failed to load daily aggregate"))
			return
		}

		respondJSON(w, http.StatusOK, aggregate)
	})
}

func GetAggregateTimeSeries(service querying.Querier) http.Handler {
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

		series, err := service.AggregateTimeSeries(r.Context(), dataType, startDate, endDate)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"data_type":  dataType,
				"start_date": startDate,
				"end_date":   endDate,
			}).Error("aggregates: failed to load aggregate time series")
			apiErrors.Write(w, apiErrors.New(apiErrors.ErrDatabaseOperation, "failed to load aggregate time series"))
			return
		}

		respondJSON(w, http.StatusOK, series)
	})
}
