package extractor

import (
	"fmt"
	"time"

	"github.com/ratesapi-nz/rates-api/internal/domain"
)

// Extract runs the state machine for the given data type. An empty entity
// list is a legal, if useless, outcome; the quality guardrail decides whether
// it may be stored.
func Extract(dataType domain.DataType, pageHTML string, scrapedAt time.Time) (domain.Document, error) {
	switch dataType {
	case domain.DataTypeMortgage:
		return Mortgage(pageHTML, scrapedAt)
	case domain.DataTypePersonalLoan:
		return PersonalLoan(pageHTML, scrapedAt)
	case domain.DataTypeCarLoan:
		return CarLoan(pageHTML, scrapedAt)
	case domain.DataTypeCreditCard:
		return CreditCard(pageHTML, scrapedAt)
	}

	return nil, fmt.Errorf("no extractor for data type %q", dataType)
}
