package domain

import "encoding/json"

// MortgageRate is one numeric fact for a fixed term.
type MortgageRate struct {
	ID           string   `json:"id"`
	Term         RateTerm `json:"term"`
	TermInMonths *int     `json:"termInMonths"`
	Rate         float64  `json:"rate"`
}

type MortgageProduct struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Rates []MortgageRate `json:"rates"`
}

type MortgageInstitution struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Products []MortgageProduct `json:"products"`
}

// MortgageRates is the full mortgage payload, rebuilt fresh on every scrape.
type MortgageRates struct {
	Type        string                `json:"type"`
	Data        []MortgageInstitution `json:"data"`
	LastUpdated string                `json:"lastUpdated"`
}

func (m MortgageRates) DataType() DataType { return DataTypeMortgage }

func (m MortgageRates) ModelType() string { return m.Type }

func (m MortgageRates) LastUpdatedAt() string { return m.LastUpdated }

func (m MortgageRates) DataJSON() ([]byte, error) {
	return json.Marshal(m.Data)
}

func (m MortgageRates) Summary() DatasetSummary {
	summary := DatasetSummary{Entities: len(m.Data)}
	for _, institution := range m.Data {
		summary.Products += len(institution.Products)
		for _, product := range institution.Products {
			summary.RatePoints += len(product.Rates)
		}
	}
	return summary
}
