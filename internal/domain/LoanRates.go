package domain

import "encoding/json"

// LoanRate is one numeric fact for a personal- or car-loan product. Plan and
// condition are free text from the source table, not a fixed vocabulary.
type LoanRate struct {
	ID        string  `json:"id"`
	Plan      *string `json:"plan"`
	Condition *string `json:"condition"`
	Rate      float64 `json:"rate"`
}

type LoanProduct struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Rates []LoanRate `json:"rates"`
}

type LoanInstitution struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Products []LoanProduct `json:"products"`
}

// PersonalLoanRates is the full personal-loan payload.
type PersonalLoanRates struct {
	Type        string            `json:"type"`
	Data        []LoanInstitution `json:"data"`
	LastUpdated string            `json:"lastUpdated"`
}

func (p PersonalLoanRates) DataType() DataType { return DataTypePersonalLoan }

func (p PersonalLoanRates) ModelType() string { return p.Type }

func (p PersonalLoanRates) LastUpdatedAt() string { return p.LastUpdated }

func (p PersonalLoanRates) DataJSON() ([]byte, error) {
	return json.Marshal(p.Data)
}

func (p PersonalLoanRates) Summary() DatasetSummary {
	return summarizeLoanInstitutions(p.Data)
}

// CarLoanRates is the full car-loan payload.
type CarLoanRates struct {
	Type        string            `json:"type"`
	Data        []LoanInstitution `json:"data"`
	LastUpdated string            `json:"lastUpdated"`
}

func (c CarLoanRates) DataType() DataType { return DataTypeCarLoan }

func (c CarLoanRates) ModelType() string { return c.Type }

func (c CarLoanRates) LastUpdatedAt() string { return c.LastUpdated }

func (c CarLoanRates) DataJSON() ([]byte, error) {
	return json.Marshal(c.Data)
}

func (c CarLoanRates) Summary() DatasetSummary {
	return summarizeLoanInstitutions(c.Data)
}

func summarizeLoanInstitutions(institutions []LoanInstitution) DatasetSummary {
	summary := DatasetSummary{Entities: len(institutions)}
	for _, institution := range institutions {
		summary.Products += len(institution.Products)
		for _, product := range institution.Products {
			summary.RatePoints += len(product.Rates)
		}
	}
	return summary
}
