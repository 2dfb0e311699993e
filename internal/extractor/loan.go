package extractor

import (
	"sort"
	"time"

	"golang.org/x/net/html"

	"github.com/ratesapi-nz/rates-api/internal/domain"
	"github.com/ratesapi-nz/rates-api/pkg/utils"
)

// PersonalLoan extracts the personal-loan-rates document from a borrowing page.
func PersonalLoan(pageHTML string, scrapedAt time.Time) (domain.PersonalLoanRates, error) {
	institutions, err := loanInstitutions(pageHTML)
	if err != nil {
		return domain.PersonalLoanRates{}, err
	}

	return domain.PersonalLoanRates{
		Type:        domain.DataTypePersonalLoan.ModelType(),
		Data:        institutions,
		LastUpdated: scrapedAt.UTC().Format(time.RFC3339),
	}, nil
}

// CarLoan extracts the car-loan-rates document from a borrowing page.
func CarLoan(pageHTML string, scrapedAt time.Time) (domain.CarLoanRates, error) {
	institutions, err := loanInstitutions(pageHTML)
	if err != nil {
		return domain.CarLoanRates{}, err
	}

	return domain.CarLoanRates{
		Type:        domain.DataTypeCarLoan.ModelType(),
		Data:        institutions,
		LastUpdated: scrapedAt.UTC().Format(time.RFC3339),
	}, nil
}

// Personal and car loan tables share one layout: institution, product, then
// exactly three trailing columns for plan, condition and rate.
func loanInstitutions(pageHTML string) ([]domain.LoanInstitution, error) {
	rows, err := tableRows(pageHTML)
	if err != nil {
		return nil, err
	}

	state := loanState{current: -1}
	for _, row := range rows {
		state, err = nextLoanState(state, row)
		if err != nil {
			return nil, err
		}
	}

	return state.institutions, nil
}

type loanState struct {
	institutions []domain.LoanInstitution
	current      int
}

func nextLoanState(state loanState, row *html.Node) (loanState, error) {
	cells := rowCells(row)

	if isPrimaryRow(row) && len(cells) > 0 {
		name := entityName(cells[0])
		id, err := domain.GenerateID(domain.KindInstitution, name)
		if err != nil {
			return state, err
		}

		state.institutions = append(state.institutions, domain.LoanInstitution{
			ID:   id,
			Name: name,
		})
		state.current = len(state.institutions) - 1
	}

	if state.current < 0 {
		return state, nil
	}

	institution := &state.institutions[state.current]
	productName := cellTextAt(cells, 1)

	productIndex, err := findOrCreateLoanProduct(institution, productName)
	if err != nil {
		return state, err
	}

	rate, err := loanRateForRow(institution.Name, productName, cells)
	if err != nil {
		return state, err
	}

	product := &institution.Products[productIndex]
	if rate != nil {
		product.Rates = append(product.Rates, *rate)
	}
	sortLoanRates(product.Rates)

	return state, nil
}

func findOrCreateLoanProduct(institution *domain.LoanInstitution, productName string) (int, error) {
	for i, product := range institution.Products {
		if product.Name == productName {
			return i, nil
		}
	}

	id, err := domain.GenerateID(domain.KindProduct, institution.Name, productName)
	if err != nil {
		return 0, err
	}

	institution.Products = append(institution.Products, domain.LoanProduct{
		ID:   id,
		Name: productName,
	})
	return len(institution.Products) - 1, nil
}

// loanRateForRow reads the three trailing columns. A rate exists only when
// the rate cell holds a number; plan and condition are optional free text.
func loanRateForRow(institutionName, productName string, cells []*html.Node) (*domain.LoanRate, error) {
	plan := cellTextAt(cells, 2)
	condition := cellTextAt(cells, 3)
	rateText := cellTextAt(cells, 4)

	value, ok := utils.ParseFiniteFloat(rateText)
	if !ok {
		return nil, nil
	}

	id, err := domain.GenerateID(domain.KindRate, institutionName, productName, plan, condition)
	if err != nil {
		return nil, err
	}

	return &domain.LoanRate{
		ID:        id,
		Plan:      optionalText(plan),
		Condition: optionalText(condition),
		Rate:      value,
	}, nil
}

// sortLoanRates orders by generated ID so document order is content-derived,
// independent of source row order.
func sortLoanRates(rates []domain.LoanRate) {
	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].ID < rates[j].ID
	})
}

func optionalText(text string) *string {
	if text == "" {
		return nil
	}
	return &text
}
