package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratesapi-nz/rates-api/internal/domain"
)

var generatedAt = time.Date(2026, 8, 31, 2, 0, 0, 0, time.UTC)

func TestComputeDailyAggregateEmptyDocument(t *testing.T) {
	doc := domain.MortgageRates{
		Type:        "MortgageRates",
		LastUpdated: "2026-08-31T02:00:00Z",
	}

	aggregate, err := ComputeDailyAggregate(doc, "2026-08-31", generatedAt)
	require.NoError(t, err)

	assert.Equal(t, domain.DataTypeMortgage, aggregate.DataType)
	assert.Equal(t, "2026-08-31", aggregate.SnapshotDate)
	assert.Equal(t, "2026-08-31T02:00:00Z", aggregate.GeneratedAt)

	assert.Nil(t, aggregate.Overall.Min)
	assert.Nil(t, aggregate.Overall.Max)
	assert.Nil(t, aggregate.Overall.Avg)
	assert.Zero(t, aggregate.Overall.Samples)

	assert.Empty(t, aggregate.ByEntity)
	assert.Empty(t, aggregate.ByTermInMonths)
	assert.Equal(t, domain.DatasetSummary{}, aggregate.Totals)
}

func TestComputeDailyAggregateMortgage(t *testing.T) {
	six, twelve := 6, 12
	doc := domain.MortgageRates{
		Type: "MortgageRates",
		Data: []domain.MortgageInstitution{
			{
				ID:   "institution:anz",
				Name: "ANZ",
				Products: []domain.MortgageProduct{
					{
						ID:   "product:anz:standard",
						Name: "Standard",
						Rates: []domain.MortgageRate{
							{ID: "rate:anz:standard:variable-floating", Term: domain.TermVariableFloating, Rate: 4.5},
							{ID: "rate:anz:standard:6-months", Term: domain.Term6Months, TermInMonths: &six, Rate: 5.1},
							{ID: "rate:anz:standard:1-year", Term: domain.Term1Year, TermInMonths: &twelve, Rate: 5.3},
						},
					},
				},
			},
			{
				ID:   "institution:bnz",
				Name: "BNZ",
				Products: []domain.MortgageProduct{
					{
						ID:   "product:bnz:standard",
						Name: "Standard",
						Rates: []domain.MortgageRate{
							{ID: "rate:bnz:standard:6-months", Term: domain.Term6Months, TermInMonths: &six, Rate: 4.9},
						},
					},
				},
			},
		},
		LastUpdated: "2026-08-31T02:00:00Z",
	}

	aggregate, err := ComputeDailyAggregate(doc, "2026-08-31", generatedAt)
	require.NoError(t, err)

	require.NotNil(t, aggregate.Overall.Min)
	assert.Equal(t, 4.5, *aggregate.Overall.Min)
	require.NotNil(t, aggregate.Overall.Max)
	assert.Equal(t, 5.3, *aggregate.Overall.Max)
	require.NotNil(t, aggregate.Overall.Avg)
	assert.Equal(t, 4.95, *aggregate.Overall.Avg)
	assert.Equal(t, 4, aggregate.Overall.Samples)

	require.Len(t, aggregate.ByEntity, 2)
	assert.Equal(t, "institution:anz", aggregate.ByEntity[0].EntityID)
	assert.Equal(t, 3, aggregate.ByEntity[0].Stats.Samples)
	assert.Equal(t, "institution:bnz", aggregate.ByEntity[1].EntityID)
	require.NotNil(t, aggregate.ByEntity[1].Stats.Avg)
	assert.Equal(t, 4.9, *aggregate.ByEntity[1].Stats.Avg)

	// Variable floating carries no term, so only 6 and 12 month buckets
	// exist, sorted ascending.
	require.Len(t, aggregate.ByTermInMonths, 2)
	assert.Equal(t, 6, aggregate.ByTermInMonths[0].TermInMonths)
	assert.Equal(t, 2, aggregate.ByTermInMonths[0].Stats.Samples)
	require.NotNil(t, aggregate.ByTermInMonths[0].Stats.Avg)
	assert.Equal(t, 5.0, *aggregate.ByTermInMonths[0].Stats.Avg)
	assert.Equal(t, 12, aggregate.ByTermInMonths[1].TermInMonths)
	assert.Equal(t, 1, aggregate.ByTermInMonths[1].Stats.Samples)

	assert.Equal(t, domain.DatasetSummary{Entities: 2, Products: 2, RatePoints: 4}, aggregate.Totals)
}

func TestComputeDailyAggregateRoundsToSixDecimals(t *testing.T) {
	doc := domain.PersonalLoanRates{
		Type: "PersonalLoanRates",
		Data: []domain.LoanInstitution{
			{
				ID:   "institution:kiwibank",
				Name: "Kiwibank",
				Products: []domain.LoanProduct{
					{
						ID:   "product:kiwibank:personal-loan",
						Name: "Personal Loan",
						Rates: []domain.LoanRate{
							{ID: "rate:kiwibank:personal-loan:a", Rate: 10.0},
							{ID: "rate:kiwibank:personal-loan:b", Rate: 10.1},
							{ID: "rate:kiwibank:personal-loan:c", Rate: 10.1},
						},
					},
				},
			},
		},
		LastUpdated: "2026-08-31T02:00:00Z",
	}

	aggregate, err := ComputeDailyAggregate(doc, "2026-08-31", generatedAt)
	require.NoError(t, err)

	require.NotNil(t, aggregate.Overall.Avg)
	assert.Equal(t, 10.066667, *aggregate.Overall.Avg)
	assert.Empty(t, aggregate.ByTermInMonths)
}

func TestComputeDailyAggregateCreditCardSampledRates(t *testing.T) {
	purchase, cashAdvance := 12.9, 22.95
	fee := 32.5
	doc := domain.CreditCardRates{
		Type: "CreditCardRates",
		Data: []domain.Issuer{
			{
				ID:   "issuer:anz",
				Name: "ANZ",
				Plans: []domain.CreditCardPlan{
					{
						ID:           "plan:anz:low-rate",
						Name:         "Low Rate",
						PurchaseRate: &purchase,
						// The fee is descriptive, never sampled.
						PrimaryFeeNZD:   &fee,
						CashAdvanceRate: &cashAdvance,
					},
				},
			},
		},
		LastUpdated: "2026-08-31T02:00:00Z",
	}

	aggregate, err := ComputeDailyAggregate(doc, "2026-08-31", generatedAt)
	require.NoError(t, err)

	assert.Equal(t, 2, aggregate.Overall.Samples)
	require.NotNil(t, aggregate.Overall.Min)
	assert.Equal(t, 12.9, *aggregate.Overall.Min)
	require.NotNil(t, aggregate.Overall.Max)
	assert.Equal(t, 22.95, *aggregate.Overall.Max)
	assert.Equal(t, domain.DatasetSummary{Entities: 1, Products: 1, RatePoints: 2}, aggregate.Totals)
}

func TestComputeDailyAggregateEntityWithoutRatesGetsNullStats(t *testing.T) {
	doc := domain.CarLoanRates{
		Type: "CarLoanRates",
		Data: []domain.LoanInstitution{
			{ID: "institution:mtf-finance", Name: "MTF Finance"},
		},
		LastUpdated: "2026-08-31T02:00:00Z",
	}

	aggregate, err := ComputeDailyAggregate(doc, "2026-08-31", generatedAt)
	require.NoError(t, err)

	require.Len(t, aggregate.ByEntity, 1)
	assert.Nil(t, aggregate.ByEntity[0].Stats.Min)
	assert.Nil(t, aggregate.ByEntity[0].Stats.Avg)
	assert.Zero(t, aggregate.ByEntity[0].Stats.Samples)
}
