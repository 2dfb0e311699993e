package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditCardExtraction(t *testing.T) {
	page := wrapTable(`
		<tr class="primary_row">
			<td><img src="anz.png" alt="ANZ"/></td>
			<td>Low Rate</td>
			<td>55</td>
			<td>32.50</td>
			<td>1.99</td>
			<td>6 mths on bal tsfrd</td>
			<td>22.95</td>
			<td>12.90</td>
		</tr>
	`)

	doc, err := CreditCard(page, testScrapedAt)
	require.NoError(t, err)

	assert.Equal(t, "CreditCardRates", doc.Type)
	require.Len(t, doc.Data, 1)

	issuer := doc.Data[0]
	assert.Equal(t, "issuer:anz", issuer.ID)
	require.Len(t, issuer.Plans, 1)

	plan := issuer.Plans[0]
	assert.Equal(t, "plan:anz:low-rate", plan.ID)
	require.NotNil(t, plan.InterestFreePeriodInMonths)
	assert.Equal(t, 55.0, *plan.InterestFreePeriodInMonths)
	require.NotNil(t, plan.PrimaryFeeNZD)
	assert.Equal(t, 32.50, *plan.PrimaryFeeNZD)
	require.NotNil(t, plan.BalanceTransferRate)
	assert.Equal(t, 1.99, *plan.BalanceTransferRate)
	require.NotNil(t, plan.BalanceTransferPeriod)
	assert.Equal(t, "6 months on balance transferred", *plan.BalanceTransferPeriod)
	require.NotNil(t, plan.CashAdvanceRate)
	assert.Equal(t, 22.95, *plan.CashAdvanceRate)
	require.NotNil(t, plan.PurchaseRate)
	assert.Equal(t, 12.90, *plan.PurchaseRate)

	assert.Equal(t, []float64{12.90, 22.95, 1.99}, plan.SampledRates())
}

func TestCreditCardMissingCellsStayNil(t *testing.T) {
	page := wrapTable(`
		<tr class="primary_row">
			<td>Westpac</td>
			<td>Airpoint World</td>
			<td></td>
			<td>n/a</td>
			<td>0</td>
		</tr>
	`)

	doc, err := CreditCard(page, testScrapedAt)
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)
	require.Len(t, doc.Data[0].Plans, 1)

	plan := doc.Data[0].Plans[0]
	// Known upstream typo is normalized.
	assert.Equal(t, "Airpoints World", plan.Name)
	assert.Nil(t, plan.InterestFreePeriodInMonths)
	assert.Nil(t, plan.PrimaryFeeNZD)
	// A zero cell is treated as no data, not a zero-percent rate.
	assert.Nil(t, plan.BalanceTransferRate)
	assert.Nil(t, plan.BalanceTransferPeriod)
	assert.Nil(t, plan.CashAdvanceRate)
	assert.Nil(t, plan.PurchaseRate)
	assert.Empty(t, plan.SampledRates())
}

func TestCreditCardPlanNameFixups(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"airpoint Platinum", "Airpoints Platinum"},
		{"onesmart", "OneSmart"},
		{"FarmersCard", "Farmers Finance Card"},
		{"Warehose Money", "Warehouse Money"},
		{"Low Rate", "Low Rate"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizePlanName(tt.raw))
		})
	}
}
