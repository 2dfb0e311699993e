package ingesting

import (
	"bytes"
	"encoding/json"

	"github.com/ratesapi-nz/rates-api/internal/domain"
)

// HasDataChanged compares the canonical encoding of the new document's data
// array against the stored latest payload. Any difference counts as changed,
// reordering included: a false "changed" only costs an extra write, a false
// "unchanged" would silently stop the time series.
func HasDataChanged(next domain.Document, latestPayload json.RawMessage) (bool, error) {
	if len(latestPayload) == 0 {
		return true, nil
	}

	nextJSON, err := next.DataJSON()
	if err != nil {
		return false, err
	}

	// Re-encode the stored payload through the typed model so both sides use
	// the same field order and number formatting.
	wrapped, err := wrapDataArray(next.ModelType(), latestPayload)
	if err != nil {
		return false, err
	}
	previous, err := domain.ParseDocument(next.DataType(), wrapped)
	if err != nil {
		return false, err
	}
	previousJSON, err := previous.DataJSON()
	if err != nil {
		return false, err
	}

	return !bytes.Equal(nextJSON, previousJSON), nil
}

func wrapDataArray(modelType string, data json.RawMessage) ([]byte, error) {
	return json.Marshal(struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}{
		Type: modelType,
		Data: data,
	})
}
