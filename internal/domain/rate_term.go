package domain

import (
	"regexp"
	"strconv"
)

// RateTerm is the closed vocabulary of mortgage rate terms. The feed may omit
// terms we model, but it never introduces new ones: anything outside this set
// is dropped during extraction.
type RateTerm string

const (
	TermVariableFloating RateTerm = "Variable floating"
	Term6Months          RateTerm = "6 months"
	Term18Months         RateTerm = "18 months"
	Term1Year            RateTerm = "1 year"
	Term2Years           RateTerm = "2 years"
	Term3Years           RateTerm = "3 years"
	Term4Years           RateTerm = "4 years"
	Term5Years           RateTerm = "5 years"
)

var rateTerms = map[RateTerm]struct{}{
	TermVariableFloating: {},
	Term6Months:          {},
	Term18Months:         {},
	Term1Year:            {},
	Term2Years:           {},
	Term3Years:           {},
	Term4Years:           {},
	Term5Years:           {},
}

var (
	monthsPattern = regexp.MustCompile(`(\d+) months?`)
	yearsPattern  = regexp.MustCompile(`(\d+) years?`)
)

func IsRateTerm(term string) bool {
	_, ok := rateTerms[RateTerm(term)]
	return ok
}

// InMonths converts a term to its length in months. "Variable floating" has
// no fixed length and returns nil.
func (t RateTerm) InMonths() *int {
	if matches := monthsPattern.FindStringSubmatch(string(t)); len(matches) == 2 {
		months, err := strconv.Atoi(matches[1])
		if err == nil {
			return &months
		}
	}

	if matches := yearsPattern.FindStringSubmatch(string(t)); len(matches) == 2 {
		years, err := strconv.Atoi(matches[1])
		if err == nil {
			months := years * 12
			return &months
		}
	}

	return nil
}
