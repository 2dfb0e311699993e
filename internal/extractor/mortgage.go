package extractor

import (
	"regexp"
	"sort"
	"time"

	"golang.org/x/net/html"

	"github.com/ratesapi-nz/rates-api/internal/domain"
	"github.com/ratesapi-nz/rates-api/pkg/utils"
)

// mortgageColumnHeaders maps rate cell positions (from the third column on)
// to their terms. The source table has no 18-months column; those arrive as
// special-line cells instead.
var mortgageColumnHeaders = []domain.RateTerm{
	domain.TermVariableFloating,
	domain.Term6Months,
	domain.Term1Year,
	domain.Term2Years,
	domain.Term3Years,
	domain.Term4Years,
	domain.Term5Years,
}

// alternativeSpecialProductNames are the source site's variant labels for the
// same discounted product; they collapse to the one canonical name so product
// identity stays stable across relabelings.
var alternativeSpecialProductNames = []string{
	"Special LVR under 80%",
	"Special - Classic",
	"Special LVR <80%",
	"Special LVR < 80%",
}

const specialLineClass = "special-line"

// specialLinePattern recovers the ad-hoc "18 months = 5.25" facts the site
// injects as cells spanning multiple columns.
var specialLinePattern = regexp.MustCompile(`(\d+ months) = (.+)`)

// Mortgage extracts the mortgage-rates document from a borrowing page.
func Mortgage(pageHTML string, scrapedAt time.Time) (domain.MortgageRates, error) {
	rows, err := tableRows(pageHTML)
	if err != nil {
		return domain.MortgageRates{}, err
	}

	state := mortgageState{current: -1}
	for _, row := range rows {
		state, err = nextMortgageState(state, row)
		if err != nil {
			return domain.MortgageRates{}, err
		}
	}

	return domain.MortgageRates{
		Type:        domain.DataTypeMortgage.ModelType(),
		Data:        state.institutions,
		LastUpdated: scrapedAt.UTC().Format(time.RFC3339),
	}, nil
}

// mortgageState is the fold state for the row walk: the institutions built so
// far and the index of the one currently receiving rows, -1 before the first
// primary row.
type mortgageState struct {
	institutions []domain.MortgageInstitution
	current      int
}

func nextMortgageState(state mortgageState, row *html.Node) (mortgageState, error) {
	cells := rowCells(row)

	if isPrimaryRow(row) && len(cells) > 0 {
		name := entityName(cells[0])
		id, err := domain.GenerateID(domain.KindInstitution, name)
		if err != nil {
			return state, err
		}

		state.institutions = append(state.institutions, domain.MortgageInstitution{
			ID:   id,
			Name: name,
		})
		state.current = len(state.institutions) - 1
	}

	if state.current < 0 {
		return state, nil
	}

	institution := &state.institutions[state.current]
	productName := normalizeMortgageProductName(cellTextAt(cells, 1))

	productIndex, err := findOrCreateMortgageProduct(institution, productName)
	if err != nil {
		return state, err
	}

	rates, err := mortgageRatesForRow(institution.Name, productName, cells)
	if err != nil {
		return state, err
	}

	product := &institution.Products[productIndex]
	product.Rates = append(product.Rates, rates...)
	sortMortgageRates(product.Rates)

	return state, nil
}

func findOrCreateMortgageProduct(institution *domain.MortgageInstitution, productName string) (int, error) {
	for i, product := range institution.Products {
		if product.Name == productName {
			return i, nil
		}
	}

	id, err := domain.GenerateID(domain.KindProduct, institution.Name, productName)
	if err != nil {
		return 0, err
	}

	institution.Products = append(institution.Products, domain.MortgageProduct{
		ID:   id,
		Name: productName,
	})
	return len(institution.Products) - 1, nil
}

// mortgageRatesForRow reads the rate cells from the third column on. Regular
// cells map positionally onto the column headers; special-line cells carry
// their own term. Cells with unknown terms or non-numeric text contribute
// nothing.
func mortgageRatesForRow(institutionName, productName string, cells []*html.Node) ([]domain.MortgageRate, error) {
	var rates []domain.MortgageRate

	for i := 2; i < len(cells); i++ {
		cell := cells[i]

		var termText, rateText string
		if hasClass(cell, specialLineClass) {
			matches := specialLinePattern.FindStringSubmatch(stripLineBreaks(cellText(cell)))
			if len(matches) != 3 {
				continue
			}
			termText, rateText = matches[1], matches[2]
		} else {
			headerIndex := i - 2 // rate columns start at the third cell
			if headerIndex >= len(mortgageColumnHeaders) {
				continue
			}
			termText = stripLineBreaks(string(mortgageColumnHeaders[headerIndex]))
			rateText = cellText(cell)
		}

		if productName == "" || !domain.IsRateTerm(termText) {
			continue
		}

		value, ok := utils.ParseFiniteFloat(rateText)
		if !ok {
			continue
		}

		term := domain.RateTerm(termText)
		id, err := domain.GenerateID(domain.KindRate, institutionName, productName, termText)
		if err != nil {
			return nil, err
		}

		rates = append(rates, domain.MortgageRate{
			ID:           id,
			Term:         term,
			TermInMonths: term.InMonths(),
			Rate:         value,
		})
	}

	return rates, nil
}

// sortMortgageRates orders rates by term length so document order is a pure
// function of content. Variable floating has no term length and sorts first.
func sortMortgageRates(rates []domain.MortgageRate) {
	sort.SliceStable(rates, func(i, j int) bool {
		return termMonthsOrZero(rates[i].TermInMonths) < termMonthsOrZero(rates[j].TermInMonths)
	})
}

func termMonthsOrZero(months *int) int {
	if months == nil {
		return 0
	}
	return *months
}

func normalizeMortgageProductName(name string) string {
	for _, alternative := range alternativeSpecialProductNames {
		if name == alternative {
			return "Special"
		}
	}
	return name
}
