package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validMortgageDoc() MortgageRates {
	six := 6
	return MortgageRates{
		Type: "MortgageRates",
		Data: []MortgageInstitution{
			{
				ID:   "institution:anz",
				Name: "ANZ",
				Products: []MortgageProduct{
					{
						ID:   "product:anz:standard",
						Name: "Standard",
						Rates: []MortgageRate{
							{ID: "rate:anz:standard:variable-floating", Term: TermVariableFloating, Rate: 4.5},
							{ID: "rate:anz:standard:6-months", Term: Term6Months, TermInMonths: &six, Rate: 5.1},
						},
					},
				},
			},
		},
		LastUpdated: "2026-08-31T02:00:00Z",
	}
}

func TestValidateDocumentAcceptsValidMortgageDoc(t *testing.T) {
	assert.Empty(t, ValidateDocument(validMortgageDoc()))
}

func TestValidateDocumentReportsViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MortgageRates)
	}{
		{
			name:   "wrong model type literal",
			mutate: func(doc *MortgageRates) { doc.Type = "Mortgages" },
		},
		{
			name:   "lastUpdated not a timestamp",
			mutate: func(doc *MortgageRates) { doc.LastUpdated = "today" },
		},
		{
			name:   "institution ID with wrong prefix",
			mutate: func(doc *MortgageRates) { doc.Data[0].ID = "issuer:anz" },
		},
		{
			name:   "empty institution name",
			mutate: func(doc *MortgageRates) { doc.Data[0].Name = " " },
		},
		{
			name:   "rate ID with wrong prefix",
			mutate: func(doc *MortgageRates) { doc.Data[0].Products[0].Rates[0].ID = "anz:standard" },
		},
		{
			name:   "non-finite rate value",
			mutate: func(doc *MortgageRates) { doc.Data[0].Products[0].Rates[0].Rate = math.NaN() },
		},
		{
			name:   "unknown rate term",
			mutate: func(doc *MortgageRates) { doc.Data[0].Products[0].Rates[0].Term = "7 months" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validMortgageDoc()
			tt.mutate(&doc)
			assert.NotEmpty(t, ValidateDocument(doc))
		})
	}
}

// The source table can leave a product or plan name cell blank; that must not
// block the snapshot. Only institutions and issuers require a name.
func TestValidateDocumentAcceptsEmptyProductAndPlanNames(t *testing.T) {
	doc := validMortgageDoc()
	doc.Data[0].Products[0].Name = ""
	assert.Empty(t, ValidateDocument(doc))

	cards := CreditCardRates{
		Type: "CreditCardRates",
		Data: []Issuer{
			{
				ID:   "issuer:anz",
				Name: "ANZ",
				Plans: []CreditCardPlan{
					{ID: "plan:anz:low-rate", Name: ""},
				},
			},
		},
		LastUpdated: "2026-08-31T02:00:00Z",
	}
	assert.Empty(t, ValidateDocument(cards))
}

func TestValidateDocumentCreditCardSampledRates(t *testing.T) {
	inf := math.Inf(1)
	doc := CreditCardRates{
		Type: "CreditCardRates",
		Data: []Issuer{
			{
				ID:   "issuer:anz",
				Name: "ANZ",
				Plans: []CreditCardPlan{
					{ID: "plan:anz:low-rate", Name: "Low Rate", PurchaseRate: &inf},
				},
			},
		},
		LastUpdated: "2026-08-31T02:00:00Z",
	}

	reasons := ValidateDocument(doc)
	assert.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "non-finite")
}
