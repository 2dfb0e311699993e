package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratesapi-nz/rates-api/internal/domain"
)

var testScrapedAt = time.Date(2026, 8, 31, 2, 0, 0, 0, time.UTC)

func wrapTable(rows string) string {
	return `<html><body><table id="interest_financial_datatable"><tbody>` + rows + `</tbody></table></body></html>`
}

func TestMortgageExtractsPrimaryAndContinuationRows(t *testing.T) {
	page := wrapTable(`
		<tr class="primary_row">
			<td><img src="anz.png" alt="ANZ"/></td>
			<td>Standard</td>
			<td>4.50</td>
			<td>5.10</td>
		</tr>
		<tr>
			<td></td>
			<td>Special LVR &lt;80%</td>
			<td>4.10</td>
			<td></td>
		</tr>
	`)

	doc, err := Mortgage(page, testScrapedAt)
	require.NoError(t, err)

	assert.Equal(t, "MortgageRates", doc.Type)
	assert.Equal(t, "2026-08-31T02:00:00Z", doc.LastUpdated)
	require.Len(t, doc.Data, 1)

	institution := doc.Data[0]
	assert.Equal(t, "institution:anz", institution.ID)
	assert.Equal(t, "ANZ", institution.Name)
	require.Len(t, institution.Products, 2)

	standard := institution.Products[0]
	assert.Equal(t, "product:anz:standard", standard.ID)
	require.Len(t, standard.Rates, 2)

	variable := standard.Rates[0]
	assert.Equal(t, domain.TermVariableFloating, variable.Term)
	assert.Nil(t, variable.TermInMonths)
	assert.Equal(t, 4.50, variable.Rate)

	sixMonths := standard.Rates[1]
	assert.Equal(t, domain.Term6Months, sixMonths.Term)
	require.NotNil(t, sixMonths.TermInMonths)
	assert.Equal(t, 6, *sixMonths.TermInMonths)
	assert.Equal(t, 5.10, sixMonths.Rate)

	special := institution.Products[1]
	assert.Equal(t, "Special", special.Name)
	assert.Equal(t, "product:anz:special", special.ID)
	require.Len(t, special.Rates, 1)
	assert.Equal(t, 4.10, special.Rates[0].Rate)
}

func TestMortgageSpecialLineCell(t *testing.T) {
	page := wrapTable(`
		<tr class="primary_row">
			<td>Kiwibank</td>
			<td>Standard</td>
			<td>4.50</td>
			<td class="special-line">18 months
 = 5.25</td>
		</tr>
	`)

	doc, err := Mortgage(page, testScrapedAt)
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)
	require.Len(t, doc.Data[0].Products, 1)

	rates := doc.Data[0].Products[0].Rates
	require.Len(t, rates, 2)

	// Sorted by term length: Variable floating first, then 18 months.
	assert.Equal(t, domain.TermVariableFloating, rates[0].Term)

	eighteen := rates[1]
	assert.Equal(t, domain.Term18Months, eighteen.Term)
	require.NotNil(t, eighteen.TermInMonths)
	assert.Equal(t, 18, *eighteen.TermInMonths)
	assert.Equal(t, 5.25, eighteen.Rate)
}

func TestMortgageDropsRowsBeforeFirstPrimaryRow(t *testing.T) {
	page := wrapTable(`
		<tr>
			<td>Orphan</td>
			<td>Standard</td>
			<td>4.50</td>
		</tr>
		<tr class="primary_row">
			<td>ANZ</td>
			<td>Standard</td>
			<td>4.50</td>
		</tr>
	`)

	doc, err := Mortgage(page, testScrapedAt)
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)
	assert.Equal(t, "ANZ", doc.Data[0].Name)
}

func TestMortgageSkipsMalformedCells(t *testing.T) {
	page := wrapTable(`
		<tr class="primary_row">
			<td>ANZ</td>
			<td>Standard</td>
			<td>n/a</td>
			<td>5.10</td>
			<td></td>
		</tr>
	`)

	doc, err := Mortgage(page, testScrapedAt)
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)
	require.Len(t, doc.Data[0].Products, 1)

	rates := doc.Data[0].Products[0].Rates
	require.Len(t, rates, 1)
	assert.Equal(t, domain.Term6Months, rates[0].Term)
	assert.Equal(t, 5.10, rates[0].Rate)
}

// An empty product cell still yields the product, named "" with the ID built
// from the institution alone, and emits no rates. The document it ends up in
// must pass validation so one blank cell cannot block a snapshot.
func TestMortgageEmptyProductCellIsStored(t *testing.T) {
	page := wrapTable(`
		<tr class="primary_row">
			<td>ANZ</td>
			<td></td>
			<td>4.50</td>
		</tr>
	`)

	doc, err := Mortgage(page, testScrapedAt)
	require.NoError(t, err)
	require.Len(t, doc.Data, 1)
	require.Len(t, doc.Data[0].Products, 1)

	product := doc.Data[0].Products[0]
	assert.Equal(t, "product:anz", product.ID)
	assert.Equal(t, "", product.Name)
	assert.Empty(t, product.Rates)

	assert.Empty(t, domain.ValidateDocument(doc))
}

func TestMortgageEmptyTableIsLegal(t *testing.T) {
	doc, err := Mortgage(wrapTable(""), testScrapedAt)
	require.NoError(t, err)
	assert.Empty(t, doc.Data)
	assert.Equal(t, domain.DatasetSummary{}, doc.Summary())
}

func TestMortgageRatesSortedByTermLength(t *testing.T) {
	page := wrapTable(`
		<tr class="primary_row">
			<td>ANZ</td>
			<td>Standard</td>
			<td>4.50</td>
			<td>5.10</td>
			<td>5.20</td>
			<td>5.30</td>
		</tr>
	`)

	doc, err := Mortgage(page, testScrapedAt)
	require.NoError(t, err)

	rates := doc.Data[0].Products[0].Rates
	require.Len(t, rates, 4)

	previous := -1
	for _, rate := range rates {
		months := 0
		if rate.TermInMonths != nil {
			months = *rate.TermInMonths
		}
		assert.GreaterOrEqual(t, months, previous)
		previous = months
	}
}
