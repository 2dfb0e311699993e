package ingesting

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratesapi-nz/rates-api/internal/domain"
	"github.com/ratesapi-nz/rates-api/internal/extractor"
)

func sampleMortgageDoc(rate float64) domain.MortgageRates {
	six := 6
	return domain.MortgageRates{
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
							{ID: "rate:anz:standard:6-months", Term: domain.Term6Months, TermInMonths: &six, Rate: rate},
						},
					},
				},
			},
		},
		LastUpdated: "2026-08-31T02:00:00Z",
	}
}

func payloadOf(t *testing.T, doc domain.Document) json.RawMessage {
	t.Helper()
	payload, err := doc.DataJSON()
	require.NoError(t, err)
	return payload
}

func TestHasDataChangedDetectsValueChange(t *testing.T) {
	previous := payloadOf(t, sampleMortgageDoc(5.10))

	changed, err := HasDataChanged(sampleMortgageDoc(5.15), previous)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestHasDataChangedIgnoresTimestampOnlyDifference(t *testing.T) {
	previous := payloadOf(t, sampleMortgageDoc(5.10))

	next := sampleMortgageDoc(5.10)
	next.LastUpdated = "2026-09-01T02:00:00Z"

	changed, err := HasDataChanged(next, previous)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestHasDataChangedTreatsReorderingAsChanged(t *testing.T) {
	doc := sampleMortgageDoc(5.10)
	doc.Data = append(doc.Data, domain.MortgageInstitution{ID: "institution:bnz", Name: "BNZ"})
	previous := payloadOf(t, doc)

	reordered := sampleMortgageDoc(5.10)
	reordered.Data = append([]domain.MortgageInstitution{{ID: "institution:bnz", Name: "BNZ"}}, reordered.Data...)

	changed, err := HasDataChanged(reordered, previous)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestHasDataChangedWithEmptyPreviousPayload(t *testing.T) {
	changed, err := HasDataChanged(sampleMortgageDoc(5.10), nil)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestHasDataChangedSurfacesMalformedStoredPayload(t *testing.T) {
	_, err := HasDataChanged(sampleMortgageDoc(5.10), json.RawMessage(`{not json`))
	assert.Error(t, err)
}

func TestReextractionOfIdenticalHTMLIsUnchanged(t *testing.T) {
	page := `<html><body><table id="interest_financial_datatable"><tbody>
		<tr class="primary_row">
			<td><img src="anz.png" alt="ANZ"/></td>
			<td>Standard</td>
			<td>4.50</td>
			<td>5.10</td>
		</tr>
	</tbody></table></body></html>`
	scrapedAt := time.Date(2026, 8, 31, 2, 0, 0, 0, time.UTC)

	first, err := extractor.Extract(domain.DataTypeMortgage, page, scrapedAt)
	require.NoError(t, err)

	second, err := extractor.Extract(domain.DataTypeMortgage, page, scrapedAt.Add(time.Hour))
	require.NoError(t, err)

	changed, err := HasDataChanged(second, payloadOf(t, first))
	require.NoError(t, err)
	assert.False(t, changed)
}
