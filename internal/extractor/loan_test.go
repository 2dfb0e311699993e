package extractor

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalLoanExtraction(t *testing.T) {
	page := wrapTable(`
		<tr class="primary_row">
			<td><img src="kiwibank.png" alt="Kiwibank"/></td>
			<td>Personal Loan</td>
			<td>Unsecured</td>
			<td>Good credit</td>
			<td>13.95</td>
		</tr>
		<tr>
			<td></td>
			<td>Personal Loan</td>
			<td>Secured</td>
			<td></td>
			<td>9.95</td>
		</tr>
	`)

	doc, err := PersonalLoan(page, testScrapedAt)
	require.NoError(t, err)

	assert.Equal(t, "PersonalLoanRates", doc.Type)
	require.Len(t, doc.Data, 1)

	institution := doc.Data[0]
	assert.Equal(t, "institution:kiwibank", institution.ID)
	require.Len(t, institution.Products, 1)

	product := institution.Products[0]
	assert.Equal(t, "product:kiwibank:personal-loan", product.ID)
	require.Len(t, product.Rates, 2)

	ids := []string{product.Rates[0].ID, product.Rates[1].ID}
	assert.True(t, sort.StringsAreSorted(ids))

	for _, rate := range product.Rates {
		if rate.Condition == nil {
			assert.Equal(t, 9.95, rate.Rate)
			require.NotNil(t, rate.Plan)
			assert.Equal(t, "Secured", *rate.Plan)
		} else {
			assert.Equal(t, 13.95, rate.Rate)
			assert.Equal(t, "Good credit", *rate.Condition)
		}
	}
}

func TestLoanRowWithoutNumericRateYieldsEmptyProduct(t *testing.T) {
	page := wrapTable(`
		<tr class="primary_row">
			<td>Kiwibank</td>
			<td>Personal Loan</td>
			<td>Unsecured</td>
			<td></td>
			<td>from 9.95</td>
		</tr>
	`)

	doc, err := CarLoan(page, testScrapedAt)
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)
	require.Len(t, doc.Data[0].Products, 1)
	assert.Empty(t, doc.Data[0].Products[0].Rates)
}

func TestCarLoanUsesSameLayout(t *testing.T) {
	page := wrapTable(`
		<tr class="primary_row">
			<td>MTF Finance</td>
			<td>Car Loan</td>
			<td></td>
			<td>Secured</td>
			<td>8.20</td>
		</tr>
	`)

	doc, err := CarLoan(page, testScrapedAt)
	require.NoError(t, err)

	assert.Equal(t, "CarLoanRates", doc.Type)
	require.Len(t, doc.Data, 1)
	require.Len(t, doc.Data[0].Products, 1)

	rates := doc.Data[0].Products[0].Rates
	require.Len(t, rates, 1)
	assert.Equal(t, "rate:mtf-finance:car-loan:secured", rates[0].ID)
	assert.Nil(t, rates[0].Plan)
	require.NotNil(t, rates[0].Condition)
	assert.Equal(t, "Secured", *rates[0].Condition)
	assert.Equal(t, 8.20, rates[0].Rate)
}
