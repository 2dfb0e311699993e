package domain

import (
	"encoding/json"
	"fmt"
)

// DatasetSummary holds the raw counts the quality guardrail reasons about.
type DatasetSummary struct {
	Entities   int `json:"entities"`
	Products   int `json:"products"`
	RatePoints int `json:"ratePoints"`
}

// Document is the behaviour shared by the four rates payloads: the unit of
// storage, hashing and change detection.
type Document interface {
	DataType() DataType
	ModelType() string
	LastUpdatedAt() string
	Summary() DatasetSummary
	// DataJSON is the canonical encoding of the data array. Struct field
	// order makes it deterministic, so equal documents encode identically.
	DataJSON() ([]byte, error)
}

// ParseDocument decodes a stored payload back into its typed model.
func ParseDocument(dataType DataType, payload []byte) (Document, error) {
	switch dataType {
	case DataTypeMortgage:
		var doc MortgageRates
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s payload: %w", dataType, err)
		}
		return doc, nil
	case DataTypePersonalLoan:
		var doc PersonalLoanRates
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s payload: %w", dataType, err)
		}
		return doc, nil
	case DataTypeCarLoan:
		var doc CarLoanRates
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s payload: %w", dataType, err)
		}
		return doc, nil
	case DataTypeCreditCard:
		var doc CreditCardRates
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s payload: %w", dataType, err)
		}
		return doc, nil
	}

	return nil, fmt.Errorf("unsupported data type %q", dataType)
}
