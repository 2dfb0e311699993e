package extractor

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ratesapi-nz/rates-api/internal/domain"
	"github.com/ratesapi-nz/rates-api/pkg/utils"
)

var (
	airpointsTypo = regexp.MustCompile(`(?i)airpoint `)
	oneSmartTypo  = regexp.MustCompile(`(?i)onesmart`)
)

// CreditCard extracts the credit-card-rates document from a borrowing page.
func CreditCard(pageHTML string, scrapedAt time.Time) (domain.CreditCardRates, error) {
	rows, err := tableRows(pageHTML)
	if err != nil {
		return domain.CreditCardRates{}, err
	}

	state := creditCardState{current: -1}
	for _, row := range rows {
		state, err = nextCreditCardState(state, row)
		if err != nil {
			return domain.CreditCardRates{}, err
		}
	}

	return domain.CreditCardRates{
		Type:        domain.DataTypeCreditCard.ModelType(),
		Data:        state.issuers,
		LastUpdated: scrapedAt.UTC().Format(time.RFC3339),
	}, nil
}

type creditCardState struct {
	issuers []domain.Issuer
	current int
}

// nextCreditCardState folds one row: a primary row starts a new issuer, then
// every row with a current issuer adds one plan with positionally fixed
// numeric fields, each independently nil when its cell fails to parse.
func nextCreditCardState(state creditCardState, row *html.Node) (creditCardState, error) {
	cells := rowCells(row)

	if isPrimaryRow(row) && len(cells) > 0 {
		name := entityName(cells[0])
		id, err := domain.GenerateID(domain.KindIssuer, name)
		if err != nil {
			return state, err
		}

		state.issuers = append(state.issuers, domain.Issuer{
			ID:   id,
			Name: name,
		})
		state.current = len(state.issuers) - 1
	}

	if state.current < 0 {
		return state, nil
	}

	issuer := &state.issuers[state.current]
	planName := normalizePlanName(cellTextAt(cells, 1))

	id, err := domain.GenerateID(domain.KindPlan, issuer.Name, planName)
	if err != nil {
		return state, err
	}

	issuer.Plans = append(issuer.Plans, domain.CreditCardPlan{
		ID:                         id,
		Name:                       planName,
		InterestFreePeriodInMonths: utils.ParseOptionalFloat(cellTextAt(cells, 2)),
		PrimaryFeeNZD:              utils.ParseOptionalFloat(cellTextAt(cells, 3)),
		BalanceTransferRate:        utils.ParseOptionalFloat(cellTextAt(cells, 4)),
		BalanceTransferPeriod:      optionalText(balanceTransferPeriod(cellTextAt(cells, 5))),
		CashAdvanceRate:            utils.ParseOptionalFloat(cellTextAt(cells, 6)),
		PurchaseRate:               utils.ParseOptionalFloat(cellTextAt(cells, 7)),
	})

	return state, nil
}

func balanceTransferPeriod(text string) string {
	text = strings.ReplaceAll(text, "mths", "months")
	return strings.ReplaceAll(text, "bal tsfrd", "balance transferred")
}

// normalizePlanName fixes known upstream naming inconsistencies, including a
// long-standing typo in the source table.
func normalizePlanName(name string) string {
	name = airpointsTypo.ReplaceAllString(name, "Airpoints ")
	name = oneSmartTypo.ReplaceAllString(name, "OneSmart")
	name = strings.ReplaceAll(name, "FarmersCard", "Farmers Finance Card")
	return strings.ReplaceAll(name, "Warehose", "Warehouse")
}
