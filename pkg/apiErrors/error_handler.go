package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Error codes returned by the API
const (
	// Validation errors (VAL)
	ErrInvalidRequest  = "VAL_001" // Malformed request
	ErrInvalidDataType = "VAL_002" // Unknown rates data type
	ErrInvalidDate     = "VAL_003" // Date is not YYYY-MM-DD
	ErrInvalidRange    = "VAL_004" // start/end range is inconsistent

	// Lookup errors (RES)
	ErrNotFound = "RES_001" // No data for the requested key

	// Ingestion errors (ING)
	ErrInvalidIngestSecret = "ING_001" // Ingest secret missing or wrong
	ErrSyncAlreadyRunning  = "ING_002" // A sync run is already in flight

	// Server errors (SRV)
	ErrInternalServer    = "SRV_001" // Unhandled server error
	ErrDatabaseOperation = "SRV_002" // Store query/write failed
	ErrExternalService   = "SRV_003" // Upstream site failure
)

var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrInvalidDataType:     http.StatusBadRequest,
	ErrInvalidDate:         http.StatusBadRequest,
	ErrInvalidRange:        http.StatusBadRequest,
	ErrNotFound:            http.StatusNotFound,
	ErrInvalidIngestSecret: http.StatusUnauthorized,
	ErrSyncAlreadyRunning:  http.StatusConflict,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
}

// APIError is the standard error body
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// New creates an APIError with the given code and message
func New(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// StatusFor maps an error code to its HTTP status, defaulting to 500
func StatusFor(code string) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Write renders the error as JSON with the mapped status code
func Write(w http.ResponseWriter, apiErr *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(apiErr.Code))
	_ = json.NewEncoder(w).Encode(apiErr)
}
