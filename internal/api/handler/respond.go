package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/ratesapi-nz/rates-api/internal/domain"
	"github.com/ratesapi-nz/rates-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("error encoding response body")
	}
}

// dataTypeFromRequest validates the :type path segment against the known
// data types.
func dataTypeFromRequest(r *http.Request) (domain.DataType, *apiErrors.APIError) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("type")
	if !domain.IsDataType(raw) {
		return "", apiErrors.New(
			apiErrors.ErrInvalidDataType,
			"unknown data type, expected one of: mortgage-rates, personal-loan-rates, car-loan-rates, credit-card-rates",
		)
	}
	return domain.DataType(raw), nil
}
